/*
 * ff_test.go, part of expanded-ensembles.
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

package ff

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/choderalab/expanded-ensembles/chem"
	v3 "github.com/choderalab/expanded-ensembles/v3"
)

// ethane with explicit bonds
func ethane() *chem.Topology {
	c1 := &chem.Atom{Name: "C1", Symbol: "C", Molname: "ETH"}
	c2 := &chem.Atom{Name: "C2", Symbol: "C", Molname: "ETH"}
	atoms := []*chem.Atom{c1, c2}
	chem.NewBond(0, c1, c2)
	for i := 0; i < 3; i++ {
		h := &chem.Atom{Name: fmt.Sprintf("H1%d", i+1), Symbol: "H", Molname: "ETH"}
		chem.NewBond(1+i, c1, h)
		atoms = append(atoms, h)
	}
	for i := 0; i < 3; i++ {
		h := &chem.Atom{Name: fmt.Sprintf("H2%d", i+1), Symbol: "H", Molname: "ETH"}
		chem.NewBond(4+i, c2, h)
		atoms = append(atoms, h)
	}
	top, err := chem.MakeTopology(atoms, 0)
	if err != nil {
		panic(err)
	}
	return top
}

func ethaneTemplates() *Templates {
	T := NewTemplates()
	mol := &MoleculeTemplate{Name: "ETH", Atoms: map[string]AtomType{
		"C1": {Charge: -0.09, Sigma: 0.34, Epsilon: 0.45},
		"C2": {Charge: -0.09, Sigma: 0.34, Epsilon: 0.45},
	}}
	for _, h := range []string{"H11", "H12", "H13", "H21", "H22", "H23"} {
		mol.Atoms[h] = AtomType{Charge: 0.03, Sigma: 0.26, Epsilon: 0.07}
	}
	T.AddMoleculeTemplate(mol)
	T.SetBondType("C", "C", BondType{R0: 0.153, K: 250000})
	T.SetBondType("C", "H", BondType{R0: 0.109, K: 280000})
	T.SetAngleType("C", "C", "H", AngleType{Theta0: 1.911, K: 400})
	T.SetAngleType("H", "C", "H", AngleType{Theta0: 1.881, K: 300})
	T.SetTorsionType("H", "C", "C", "H", []TorsionType{{Periodicity: 3, Phase: 0, Barrier: 0.6}})
	return T
}

func TestParameterizeEthane(Te *testing.T) {
	sys, err := ethaneTemplates().Parameterize(ethane())
	if err != nil {
		Te.Fatal(err)
	}
	if sys.NumParticles() != 8 {
		Te.Errorf("got %d particles, want 8", sys.NumParticles())
	}
	if sys.NumBonds() != 7 {
		Te.Errorf("got %d bonds, want 7", sys.NumBonds())
	}
	if sys.NumAngles() != 12 {
		Te.Errorf("got %d angles, want 12", sys.NumAngles())
	}
	if sys.NumTorsions() != 9 {
		Te.Errorf("got %d torsions, want 9", sys.NumTorsions())
	}
	//every atom pair of ethane is within 3 bonds, so all 28 pairs get
	//an exception
	if sys.NumExceptions() != 28 {
		Te.Errorf("got %d exceptions, want 28", sys.NumExceptions())
	}
	if m := sys.ParticleParameters(0).Mass; math.Abs(m-12.011) > 1e-6 {
		Te.Errorf("carbon mass came out as %v", m)
	}
}

func TestParameterizeMissing(Te *testing.T) {
	T := ethaneTemplates()
	top := ethane()
	top.Atom(0).Molname = "XXX"
	_, err := T.Parameterize(top)
	var missTmpl *MissingTemplateError
	if !errors.As(err, &missTmpl) {
		Te.Fatalf("expected a MissingTemplateError, got %v", err)
	}
	var paramErr chem.ParameterError
	if !errors.As(err, &paramErr) {
		Te.Error("MissingTemplateError should be a ParameterError")
	}
}

func TestSystemEnergyHarmonic(Te *testing.T) {
	sys := NewSystem()
	sys.AddParticle(Particle{Mass: 12})
	sys.AddParticle(Particle{Mass: 12})
	sys.AddBond(HarmonicBond{At1: 0, At2: 1, R0: 0.15, K: 1000})
	sys.AddException(Exception{At1: 0, At2: 1}) //bonded pairs don't see each other
	coord, _ := v3.NewMatrix([]float64{
		0, 0, 0,
		0.16, 0, 0,
	})
	e, err := sys.PotentialEnergy(coord)
	if err != nil {
		Te.Fatal(err)
	}
	want := 0.5 * 1000 * 0.01 * 0.01
	if math.Abs(e-want) > 1e-9 {
		Te.Errorf("energy %v, want %v", e, want)
	}
}

func TestSystemEnergyCoulomb(Te *testing.T) {
	sys := NewSystem()
	sys.AddParticle(Particle{Charge: 1})
	sys.AddParticle(Particle{Charge: -1})
	coord, _ := v3.NewMatrix([]float64{
		0, 0, 0,
		1, 0, 0,
	})
	e, err := sys.PotentialEnergy(coord)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(e+ONE_4PI_EPS0) > 1e-9 {
		Te.Errorf("unit charges at 1 nm gave %v, want %v", e, -ONE_4PI_EPS0)
	}
}

func TestForcesEnumeration(Te *testing.T) {
	sys, err := ethaneTemplates().Parameterize(ethane())
	if err != nil {
		Te.Fatal(err)
	}
	kinds := sys.Forces()
	want := map[ForceKind]bool{Bond: true, Angle: true, Torsion: true, Nonbonded: true}
	for _, k := range kinds {
		if !want[k] {
			Te.Errorf("unexpected force kind %v", k)
		}
		delete(want, k)
	}
	if len(want) != 0 {
		Te.Errorf("force kinds missing from enumeration: %v", want)
	}
	sys.AddUnsupportedForce("SomeExoticForce")
	found := false
	for _, k := range sys.Forces() {
		if k == Unsupported {
			found = true
		}
	}
	if !found {
		Te.Error("registered unsupported force not enumerated")
	}
}

func TestTermLookups(Te *testing.T) {
	sys, err := ethaneTemplates().Parameterize(ethane())
	if err != nil {
		Te.Fatal(err)
	}
	if _, ok := sys.BondOn(0, 1); !ok {
		Te.Error("C1-C2 bond term not found")
	}
	if _, ok := sys.BondOn(0, 7); ok {
		Te.Error("found a bond term that should not exist")
	}
	if _, ok := sys.AngleOn(2, 0, 1); !ok {
		Te.Error("H-C-C angle term not found")
	}
	if ts := sys.TorsionsOn(2, 0, 1, 5); len(ts) != 1 {
		Te.Errorf("got %d torsion terms on H-C-C-H, want 1", len(ts))
	}
}
