/*
 * parameterize.go, part of expanded-ensembles.
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
	"fmt"
	"math"

	"github.com/choderalab/expanded-ensembles/chem"
)

// Parameterizer turns a topology into a parameterized System. The topology
// proposal machinery only depends on this interface, so any force field
// backend can be plugged in.
type Parameterizer interface {
	Parameterize(top *chem.Topology) (*System, error)
}

// AtomType holds the nonbonded parameters assigned to one named atom of a
// molecule template.
type AtomType struct {
	Charge  float64
	Sigma   float64
	Epsilon float64
}

// BondType holds harmonic stretch parameters for an element pair.
type BondType struct {
	R0 float64
	K  float64
}

// AngleType holds harmonic bend parameters for an element triple.
type AngleType struct {
	Theta0 float64
	K      float64
}

// TorsionType is one cosine term of a proper torsion type.
type TorsionType struct {
	Periodicity int
	Phase       float64
	Barrier     float64
}

// MoleculeTemplate assigns nonbonded atom types to the named atoms of one
// residue. Bonded parameters are element-typed and live on the Templates set
// itself.
type MoleculeTemplate struct {
	Name  string
	Atoms map[string]AtomType
}

// Templates is a Parameterizer backed by residue templates for nonbonded
// parameters and element-keyed type tables for bonded terms. It is the
// self-contained stand-in for a full force-field engine, sufficient for the
// small-molecule systems this library manipulates.
type Templates struct {
	mols           map[string]*MoleculeTemplate
	bonds          map[[2]string]BondType
	angles         map[[3]string]AngleType
	torsions       map[[4]string][]TorsionType
	scale14LJ      float64
	scale14Coulomb float64
}

// NewTemplates returns an empty template set with Amber-style 1-4 scalings
// (1/2 for Lennard-Jones, 1/1.2 for electrostatics).
func NewTemplates() *Templates {
	return &Templates{
		mols:           make(map[string]*MoleculeTemplate),
		bonds:          make(map[[2]string]BondType),
		angles:         make(map[[3]string]AngleType),
		torsions:       make(map[[4]string][]TorsionType),
		scale14LJ:      0.5,
		scale14Coulomb: 1.0 / 1.2,
	}
}

// AddMoleculeTemplate registers (or replaces) the template for one residue
// name.
func (T *Templates) AddMoleculeTemplate(t *MoleculeTemplate) {
	T.mols[t.Name] = t
}

func bondKey(s1, s2 string) [2]string {
	if s1 > s2 {
		s1, s2 = s2, s1
	}
	return [2]string{s1, s2}
}

func angleKey(s1, s2, s3 string) [3]string {
	if s1 > s3 {
		s1, s3 = s3, s1
	}
	return [3]string{s1, s2, s3}
}

func torsionKey(s1, s2, s3, s4 string) [4]string {
	if s2 > s3 || (s2 == s3 && s1 > s4) {
		s1, s2, s3, s4 = s4, s3, s2, s1
	}
	return [4]string{s1, s2, s3, s4}
}

// SetBondType registers the stretch parameters for an element pair, in
// either order.
func (T *Templates) SetBondType(s1, s2 string, b BondType) {
	T.bonds[bondKey(s1, s2)] = b
}

// SetAngleType registers the bend parameters for an element triple with s2
// central, in either direction.
func (T *Templates) SetAngleType(s1, s2, s3 string, a AngleType) {
	T.angles[angleKey(s1, s2, s3)] = a
}

// SetTorsionType registers the cosine terms for an element quadruple, in
// either direction. A quadruple without registered terms simply contributes
// no torsion energy.
func (T *Templates) SetTorsionType(s1, s2, s3, s4 string, terms []TorsionType) {
	T.torsions[torsionKey(s1, s2, s3, s4)] = terms
}

// Parameterize builds a System for the topology. Every atom must be covered
// by a registered molecule template, and every bond and angle by a bonded
// type; a missing torsion type is treated as a zero torsion term.
func (T *Templates) Parameterize(top *chem.Topology) (*System, error) {
	sys := NewSystem()
	for i := 0; i < top.Len(); i++ {
		at := top.Atom(i)
		tmpl, ok := T.mols[at.Molname]
		if !ok {
			return nil, &MissingTemplateError{
				CError:  chem.NewError("Parameterize", fmt.Sprintf("no template for residue %q (atom %d)", at.Molname, i)),
				Molname: at.Molname,
			}
		}
		atype, ok := tmpl.Atoms[at.Name]
		if !ok {
			return nil, &MissingTermError{
				CError: chem.NewError("Parameterize", fmt.Sprintf("template %q has no atom %q (atom %d)", at.Molname, at.Name, i)),
				Atoms:  []int{i},
			}
		}
		mass := at.Mass
		if mass == 0 {
			mass = chem.SymbolMass(at.Symbol)
		}
		sys.AddParticle(Particle{Mass: mass, Charge: atype.Charge, Sigma: atype.Sigma, Epsilon: atype.Epsilon})
	}
	if err := T.addBonded(sys, top); err != nil {
		return nil, chem.DecorateError(err, "Parameterize")
	}
	T.addExceptions(sys, top)
	if top.Box() != nil {
		sys.SetBox(top.Box())
	}
	return sys, nil
}

func (T *Templates) addBonded(sys *System, top *chem.Topology) error {
	for _, b := range top.Bonds() {
		i, j := b.At1.Index, b.At2.Index
		bt, ok := T.bonds[bondKey(b.At1.Symbol, b.At2.Symbol)]
		if !ok {
			return &MissingTermError{
				CError: chem.NewError("addBonded", fmt.Sprintf("no bond type %s-%s (atoms %d-%d)", b.At1.Symbol, b.At2.Symbol, i, j)),
				Atoms:  []int{i, j},
			}
		}
		sys.AddBond(HarmonicBond{At1: i, At2: j, R0: bt.R0, K: bt.K})
	}
	//angles: every pair of distinct neighbors around every central atom
	for j := 0; j < top.Len(); j++ {
		center := top.Atom(j)
		neigh := neighborIndices(center)
		for a := 0; a < len(neigh); a++ {
			for b := a + 1; b < len(neigh); b++ {
				i, k := neigh[a], neigh[b]
				at, ok := T.angles[angleKey(top.Atom(i).Symbol, center.Symbol, top.Atom(k).Symbol)]
				if !ok {
					return &MissingTermError{
						CError: chem.NewError("addBonded", fmt.Sprintf("no angle type %s-%s-%s (atoms %d-%d-%d)",
							top.Atom(i).Symbol, center.Symbol, top.Atom(k).Symbol, i, j, k)),
						Atoms: []int{i, j, k},
					}
				}
				sys.AddAngle(HarmonicAngle{At1: i, At2: j, At3: k, Theta0: at.Theta0, K: at.K})
			}
		}
	}
	//propers: every i-j-k-l with j-k a bond, i a neighbor of j and l of k
	for _, b := range top.Bonds() {
		j, k := b.At1.Index, b.At2.Index
		for _, i := range neighborIndices(top.Atom(j)) {
			if i == k {
				continue
			}
			for _, l := range neighborIndices(top.Atom(k)) {
				if l == j || l == i {
					continue
				}
				key := torsionKey(top.Atom(i).Symbol, top.Atom(j).Symbol, top.Atom(k).Symbol, top.Atom(l).Symbol)
				for _, tt := range T.torsions[key] {
					sys.AddTorsion(PeriodicTorsion{At1: i, At2: j, At3: k, At4: l,
						Periodicity: tt.Periodicity, Phase: tt.Phase, Barrier: tt.Barrier})
				}
			}
		}
	}
	return nil
}

// addExceptions excludes 1-2 and 1-3 pairs and scales 1-4 pairs, once each.
func (T *Templates) addExceptions(sys *System, top *chem.Topology) {
	type pair = [2]int
	dist := make(map[pair]int) //smallest bond-count separation seen, up to 3
	for i := 0; i < top.Len(); i++ {
		for _, b1 := range top.Atom(i).Bonds {
			j := b1.Cross(top.Atom(i)).Index
			record(dist, i, j, 1)
			for _, b2 := range top.Atom(j).Bonds {
				k := b2.Cross(top.Atom(j)).Index
				if k == i {
					continue
				}
				record(dist, i, k, 2)
				for _, b3 := range top.Atom(k).Bonds {
					l := b3.Cross(top.Atom(k)).Index
					if l == j || l == i {
						continue
					}
					record(dist, i, l, 3)
				}
			}
		}
	}
	for p, d := range dist {
		i, j := p[0], p[1]
		switch d {
		case 1, 2:
			sys.AddException(Exception{At1: i, At2: j})
		case 3:
			pi := sys.ParticleParameters(i)
			pj := sys.ParticleParameters(j)
			sys.AddException(Exception{
				At1:        i,
				At2:        j,
				ChargeProd: pi.Charge * pj.Charge * T.scale14Coulomb,
				Sigma:      0.5 * (pi.Sigma + pj.Sigma),
				Epsilon:    math.Sqrt(pi.Epsilon*pj.Epsilon) * T.scale14LJ,
			})
		}
	}
}

func record(dist map[[2]int]int, i, j, d int) {
	if i == j {
		return
	}
	k := pairKey(i, j)
	if prev, ok := dist[k]; !ok || d < prev {
		dist[k] = d
	}
}

func neighborIndices(at *chem.Atom) []int {
	out := make([]int, 0, len(at.Bonds))
	for _, b := range at.Bonds {
		out = append(out, b.Cross(at).Index)
	}
	return out
}
