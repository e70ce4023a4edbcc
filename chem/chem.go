/*
 * chem.go, part of expanded-ensembles.
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

package chem

import "fmt"

/*Note: Several functions here panic instead of returning errors. They are
"fundamental" functions: if something goes wrong in them (nil receivers,
out-of-bounds accesses) the program is way-most-likely wrong and should crash.*/

// Atom contains the properties of one atom that do not change with the
// coordinates. Bonded partners are kept on the atom itself so the molecular
// graph can be walked without going through the topology.
type Atom struct {
	Name    string  //force-field atom name (e.g. "CA", "HB1")
	Index   int     //zero-based position in the topology
	Molname string  //residue name (e.g. "ALA")
	Molid   int     //residue number
	Chain   string
	Symbol  string  //element symbol
	Mass    float64
	Charge  float64 //partial charge, in elementary charges
	Bonds   []*Bond
}

// Copy returns a copy of the Atom. The bond list is not copied: bonds belong
// to the topology that owns the atom pair.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("chem: attempted to copy a nil atom")
	}
	at := new(Atom)
	at.Name = A.Name
	at.Index = A.Index
	at.Molname = A.Molname
	at.Molid = A.Molid
	at.Chain = A.Chain
	at.Symbol = A.Symbol
	at.Mass = A.Mass
	at.Charge = A.Charge
	return at
}

// Topology contains the information about a molecule that is not expected to
// change in time: atoms, bonds, total charge and the (optional) periodic box.
// Once built it is read-only; components that need a different chemical state
// build a new Topology.
type Topology struct {
	atoms  []*Atom
	bonds  []*Bond
	charge int
	box    []float64 //9 elements, the 3 box vectors row-major. nil if not periodic
}

// MakeTopology builds a topology from the given atoms and total charge. It
// fills the Index field of every atom with its position in the slice. An
// optional 9-element box (three row-major box vectors) makes the topology
// periodic.
func MakeTopology(atoms []*Atom, charge int, box ...[]float64) (*Topology, error) {
	if atoms == nil {
		return nil, NewError("MakeTopology", "supplied a nil atom slice")
	}
	top := new(Topology)
	top.atoms = atoms
	top.charge = charge
	seen := make(map[*Bond]bool)
	for i, at := range atoms {
		at.Index = i
	}
	//collect the bonds already wired into the atoms, once each
	for _, at := range atoms {
		for _, b := range at.Bonds {
			if !seen[b] {
				seen[b] = true
				top.bonds = append(top.bonds, b)
			}
		}
	}
	if len(box) > 0 && box[0] != nil {
		if len(box[0]) != 9 {
			return nil, NewError("MakeTopology", fmt.Sprintf("box needs 9 elements, got %d", len(box[0])))
		}
		top.box = box[0]
	}
	return top, nil
}

// Atom returns the atom at index i. Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i < 0 || i >= T.Len() {
		panic(fmt.Sprintf("chem: requested atom %d out of bounds (%d atoms)", i, T.Len()))
	}
	return T.atoms[i]
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

// Charge returns the total charge of the topology.
func (T *Topology) Charge() int {
	return T.charge
}

// Box returns the periodic box vectors (9 elements, row-major) or nil for a
// non-periodic topology. The caller must not modify the returned slice.
func (T *Topology) Box() []float64 {
	return T.box
}

// Bonds returns the bonds of the topology. Read-only.
func (T *Topology) Bonds() []*Bond {
	return T.bonds
}

// BondBetween returns the bond joining atoms i and j, or nil if they are not
// bonded.
func (T *Topology) BondBetween(i, j int) *Bond {
	for _, b := range T.Atom(i).Bonds {
		if b.Cross(T.Atom(i)).Index == j {
			return b
		}
	}
	return nil
}

// SomeAtoms returns a new topology containing copies of the atoms at the
// given positions, without bonds. The charge of the result is just the parent
// charge and is not guaranteed to be meaningful for the selection.
func (T *Topology) SomeAtoms(atomlist []int) (*Topology, error) {
	ret := make([]*Atom, 0, len(atomlist))
	for k, j := range atomlist {
		if j < 0 || j >= T.Len() {
			return nil, NewError("SomeAtoms", fmt.Sprintf("atom requested (number %d, value %d) out of range", k, j))
		}
		ret = append(ret, T.atoms[j].Copy())
	}
	return MakeTopology(ret, T.charge, T.box)
}

// Masses returns a slice with the mass of each atom, or an error if any mass
// is missing.
func (T *Topology) Masses() ([]float64, error) {
	masses := make([]float64, T.Len())
	for i := 0; i < T.Len(); i++ {
		at := T.Atom(i)
		if at.Mass == 0 {
			return nil, NewError("Masses", fmt.Sprintf("no mass for atom %d (%s %s%d)", i, at.Name, at.Molname, at.Molid))
		}
		masses[i] = at.Mass
	}
	return masses, nil
}
