/*
 * proposal_test.go, part of expanded-ensembles.
 *
 * Copyright 2016 the expanded-ensembles developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package proposal

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/choderalab/expanded-ensembles/chem"
	"github.com/choderalab/expanded-ensembles/ff"
	"github.com/choderalab/expanded-ensembles/match"
)

func linearAlkane(n int) *chem.Topology {
	atoms := make([]*chem.Atom, 0, 3*n+2)
	for i := 0; i < n; i++ {
		atoms = append(atoms, &chem.Atom{Name: fmt.Sprintf("C%d", i+1), Symbol: "C", Molname: "ALK"})
	}
	bid := 0
	for i := 1; i < n; i++ {
		chem.NewBond(bid, atoms[i-1], atoms[i])
		bid++
	}
	for i := 0; i < n; i++ {
		nh := 2
		if i == 0 || i == n-1 {
			nh = 3
		}
		for j := 0; j < nh; j++ {
			h := &chem.Atom{Name: fmt.Sprintf("H%d%d", i+1, j+1), Symbol: "H", Molname: "ALK"}
			chem.NewBond(bid, atoms[i], h)
			bid++
			atoms = append(atoms, h)
		}
	}
	top, err := chem.MakeTopology(atoms, 0)
	if err != nil {
		panic(err)
	}
	return top
}

// alkaneTemplates covers every atom name up to pentane
func alkaneTemplates() *ff.Templates {
	T := ff.NewTemplates()
	mol := &ff.MoleculeTemplate{Name: "ALK", Atoms: map[string]ff.AtomType{}}
	for i := 1; i <= 5; i++ {
		mol.Atoms[fmt.Sprintf("C%d", i)] = ff.AtomType{Charge: -0.06, Sigma: 0.34, Epsilon: 0.45}
		for j := 1; j <= 3; j++ {
			mol.Atoms[fmt.Sprintf("H%d%d", i, j)] = ff.AtomType{Charge: 0.03, Sigma: 0.26, Epsilon: 0.07}
		}
	}
	T.AddMoleculeTemplate(mol)
	T.SetBondType("C", "C", ff.BondType{R0: 0.153, K: 250000})
	T.SetBondType("C", "H", ff.BondType{R0: 0.109, K: 280000})
	T.SetAngleType("C", "C", "C", ff.AngleType{Theta0: 1.966, K: 500})
	T.SetAngleType("C", "C", "H", ff.AngleType{Theta0: 1.911, K: 400})
	T.SetAngleType("H", "C", "H", ff.AngleType{Theta0: 1.881, K: 300})
	T.SetTorsionType("H", "C", "C", "H", []ff.TorsionType{{Periodicity: 3, Phase: 0, Barrier: 0.6}})
	T.SetTorsionType("C", "C", "C", "H", []ff.TorsionType{{Periodicity: 3, Phase: 0, Barrier: 0.7}})
	T.SetTorsionType("C", "C", "C", "C", []ff.TorsionType{{Periodicity: 3, Phase: 0, Barrier: 0.8}})
	return T
}

func testEngine(Te *testing.T) *Engine {
	cands := []Candidate{
		{Key: "butane", Topology: linearAlkane(4)},
		{Key: "pentane", Topology: linearAlkane(5)},
	}
	e, err := NewEngine(Config{Solvent: Vacuum}, alkaneTemplates(), cands)
	if err != nil {
		Te.Fatal(err)
	}
	return e
}

func TestProposeJump(Te *testing.T) {
	e := testEngine(Te)
	rng := rand.New(rand.NewPCG(1, 2))
	prop, err := e.Propose("butane", rng)
	if err != nil {
		Te.Fatal(err)
	}
	if prop.OldKey() != "butane" || prop.NewKey() != "pentane" {
		Te.Errorf("jump %s -> %s, want butane -> pentane", prop.OldKey(), prop.NewKey())
	}
	if prop.NOldAtoms() != 14 || prop.NNewAtoms() != 17 {
		Te.Errorf("atom counts %d/%d, want 14/17", prop.NOldAtoms(), prop.NNewAtoms())
	}
	//with only one candidate to jump to, the choice carries no correction
	if prop.LogPProposal() != 0 {
		Te.Errorf("logp %v, want 0", prop.LogPProposal())
	}
	if got := len(prop.UniqueNewAtoms()); got != 4 {
		Te.Errorf("%d unique new atoms, want 4 (the extra methyl)", got)
	}
	if got := len(prop.UniqueOldAtoms()); got != 1 {
		Te.Errorf("%d unique old atoms, want 1", got)
	}
	if prop.ChargeDiff() != 0 {
		Te.Errorf("charge diff %d between neutral alkanes", prop.ChargeDiff())
	}
	if prop.OldSystem().NumParticles() != 14 || prop.NewSystem().NumParticles() != 17 {
		Te.Error("systems do not match the topologies atom for atom")
	}
}

// chargedAlkane rebuilds a linear alkane topology carrying a formal charge,
// for anionic and cationic analogues.
func chargedAlkane(n, charge int) *chem.Topology {
	base := linearAlkane(n)
	atoms := make([]*chem.Atom, base.Len())
	for i := range atoms {
		atoms[i] = base.Atom(i)
	}
	top, err := chem.MakeTopology(atoms, charge)
	if err != nil {
		panic(err)
	}
	return top
}

func TestChargeDiff(Te *testing.T) {
	//deprotonated, protonated and neutral analogues of the same skeleton
	cases := []struct {
		key    string
		charge int
	}{
		{"pentanide", -1},
		{"pentanium", 1},
		{"pentane", 0},
	}
	for _, c := range cases {
		cands := []Candidate{
			{Key: "butane", Topology: linearAlkane(4)},
			{Key: c.key, Topology: chargedAlkane(5, c.charge)},
		}
		e, err := NewEngine(Config{Solvent: Vacuum}, alkaneTemplates(), cands)
		if err != nil {
			Te.Fatal(err)
		}
		prop, err := e.Propose("butane", rand.New(rand.NewPCG(9, 10)))
		if err != nil {
			Te.Fatal(err)
		}
		if prop.ChargeDiff() != c.charge {
			Te.Errorf("jump to %s gave charge diff %d, want %d", c.key, prop.ChargeDiff(), c.charge)
		}
	}
}

func TestSystemCache(Te *testing.T) {
	e := testEngine(Te)
	rng := rand.New(rand.NewPCG(3, 4))
	p1, err := e.Propose("butane", rng)
	if err != nil {
		Te.Fatal(err)
	}
	p2, err := e.Propose("butane", rng)
	if err != nil {
		Te.Fatal(err)
	}
	if p1.OldSystem() != p2.OldSystem() || p1.NewSystem() != p2.NewSystem() {
		Te.Error("parameterized systems should be cached per chemical key")
	}
}

func TestProposeUnknownState(Te *testing.T) {
	e := testEngine(Te)
	rng := rand.New(rand.NewPCG(5, 6))
	if _, err := e.Propose("hexane", rng); err == nil {
		Te.Error("proposing from an unregistered state should fail")
	}
}

func TestEngineConfigValidation(Te *testing.T) {
	cands := []Candidate{
		{Key: "butane", Topology: linearAlkane(4)},
		{Key: "pentane", Topology: linearAlkane(5)},
	}
	T := alkaneTemplates()
	var cfgErr chem.ConfigError
	if _, err := NewEngine(Config{Solvent: Vacuum}, T, cands[:1]); err == nil {
		Te.Error("a single candidate should be rejected")
	} else if !errors.As(err, &cfgErr) {
		Te.Errorf("want a ConfigError, got %v", err)
	}
	dup := []Candidate{cands[0], {Key: "butane", Topology: linearAlkane(5)}}
	if _, err := NewEngine(Config{Solvent: Vacuum}, T, dup); err == nil {
		Te.Error("duplicate keys should be rejected")
	}
	if _, err := NewEngine(Config{Solvent: Vacuum, HasReceptor: true}, T, cands); err == nil {
		Te.Error("HasReceptor without a receptor topology should be rejected")
	}
	if _, err := NewEngine(Config{Solvent: Explicit}, T, cands); err == nil {
		Te.Error("explicit solvent without boxes should be rejected")
	}
	if _, err := NewEngine(Config{Solvent: Vacuum}, nil, cands); err == nil {
		Te.Error("nil parameterizer should be rejected")
	}
}

func TestParameterizationFailure(Te *testing.T) {
	//empty templates cannot parameterize anything
	cands := []Candidate{
		{Key: "butane", Topology: linearAlkane(4)},
		{Key: "pentane", Topology: linearAlkane(5)},
	}
	e, err := NewEngine(Config{Solvent: Vacuum}, ff.NewTemplates(), cands)
	if err != nil {
		Te.Fatal(err)
	}
	rng := rand.New(rand.NewPCG(7, 8))
	_, err = e.Propose("butane", rng)
	var perr *ParameterizationError
	if !errors.As(err, &perr) {
		Te.Fatalf("want a ParameterizationError, got %v", err)
	}
	if perr.Key == "" {
		Te.Error("the failing chemical key should be recorded")
	}
	var missTmpl *ff.MissingTemplateError
	if !errors.As(err, &missTmpl) {
		Te.Error("the underlying template error should be reachable through Unwrap")
	}
}

func TestArchiveRoundTrip(Te *testing.T) {
	m, err := match.MakeAtomMap(map[int]int{0: 0, 1: 1}, 3, 4)
	if err != nil {
		Te.Fatal(err)
	}
	a := &Archive{
		Keys: []string{"butane", "pentane"},
		Probabilities: [][]float64{
			{0, 1},
			{1, 0},
		},
		Maps: map[string]*match.AtomMap{MapKey("butane", "pentane"): m},
	}
	var buf bytes.Buffer
	if err := WriteProposalArchive(&buf, a); err != nil {
		Te.Fatal(err)
	}
	back, err := ReadProposalArchive(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if len(back.Keys) != 2 || back.Keys[1] != "pentane" {
		Te.Errorf("keys came back as %v", back.Keys)
	}
	if back.Probabilities[0][1] != 1 {
		Te.Error("probability matrix did not survive the round trip")
	}
	bm := back.Maps[MapKey("butane", "pentane")]
	if bm == nil || bm.Len() != 2 || bm.NumNew() != 4 {
		Te.Error("atom map did not survive the round trip")
	}
}

func TestArchiveValidation(Te *testing.T) {
	a := &Archive{
		Keys:          []string{"a", "b"},
		Probabilities: [][]float64{{0, 1}},
	}
	var buf bytes.Buffer
	if err := WriteProposalArchive(&buf, a); err == nil {
		Te.Error("a non-square probability matrix should be rejected")
	}
}
