/*
 * bonds.go, part of expanded-ensembles.
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

import (
	"fmt"
	"sort"

	v3 "github.com/choderalab/expanded-ensembles/v3"
)

//distance criteria from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.063 //nm
	bondtol  = 0.045 //nm
)

// Bond is a covalent bond between two atoms. Order 0 means undetermined; the
// atom-mapping machinery ignores bond order either way.
type Bond struct {
	Index int
	At1   *Atom
	At2   *Atom
	Dist  float64
	Order float64
}

// Cross returns the atom at the other end of the bond from origin. Panics if
// origin is not part of the bond, as that has to be a programming error.
// Atoms are compared by identity, not index: bonds may be wired before
// MakeTopology assigns indices.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin == B.At1 {
		return B.At2
	}
	if origin == B.At2 {
		return B.At1
	}
	panic("chem: trying to cross a bond from an atom not present in the bond")
}

// NewBond creates a bond between at1 and at2 with the given index and appends
// it to the adjacency list of both atoms. Call before MakeTopology so the
// topology collects it.
func NewBond(index int, at1, at2 *Atom) *Bond {
	b := &Bond{Index: index, At1: at1, At2: at2}
	at1.Bonds = append(at1.Bonds, b)
	at2.Bonds = append(at2.Bonds, b)
	return b
}

// Bonded reports whether the two atoms share a bond in the adjacency lists.
func Bonded(at1, at2 *Atom) bool {
	for _, b := range at1.Bonds {
		if b.Cross(at1) == at2 {
			return true
		}
	}
	return false
}

// AssignBonds assigns bonds to the atoms of mol based on a simple distance
// criterium, similar to that described in DOI:10.1186/1758-2946-3-33. It is
// meant for small molecules; it gets slow for macromolecules. Distances are
// in nm.
func AssignBonds(coord *v3.Matrix, mol *Topology) error {
	var at1, at2 *Atom
	t3 := v3.Zeros(1)
	bonds := make([]*Bond, 0, 10)
	tot := mol.Len()
	var nextIndex int
	for i := 0; i < tot; i++ {
		t1 := coord.VecView(i)
		at1 = mol.Atom(i)
		cov1 := symbolCovrad[at1.Symbol]
		if cov1 == 0 {
			return NewError("AssignBonds", fmt.Sprintf("couldn't find the covalent radius for %s (atom %d)", at1.Symbol, i))
		}
		for j := i + 1; j < tot; j++ {
			t2 := coord.VecView(j)
			at2 = mol.Atom(j)
			cov2 := symbolCovrad[at2.Symbol]
			if cov2 == 0 {
				return NewError("AssignBonds", fmt.Sprintf("couldn't find the covalent radius for %s (atom %d)", at2.Symbol, j))
			}
			t3.Sub(t2, t1)
			d := t3.Norm(2)
			if d < cov1+cov2+bondtol && d > tooclose {
				b := &Bond{Index: nextIndex, Dist: d, At1: at1, At2: at2}
				at1.Bonds = append(at1.Bonds, b)
				at2.Bonds = append(at2.Bonds, b)
				bonds = append(bonds, b)
				nextIndex++
			}
		}
	}
	//Now check that no atom exceeds its maximum number of bonds, removing the
	//longest offenders.
	removed := make(map[int]bool)
	for i := 0; i < tot; i++ {
		at := mol.Atom(i)
		max := symbolMaxBonds[at.Symbol]
		if max == 0 { //no specified maximum for this element
			continue
		}
		sort.Slice(at.Bonds, func(i, j int) bool { return at.Bonds[i].Dist < at.Bonds[j].Dist })
		for len(at.Bonds) > max {
			doomed := at.Bonds[len(at.Bonds)-1]
			if err := removeBond(doomed); err != nil {
				return DecorateError(err, "AssignBonds")
			}
			removed[doomed.Index] = true
		}
	}
	mol.bonds = make([]*Bond, 0, len(bonds))
	for _, b := range bonds {
		if !removed[b.Index] {
			mol.bonds = append(mol.bonds, b)
		}
	}
	return nil
}

// removeBond takes the bond out of the adjacency lists of both its atoms.
func removeBond(b *Bond) error {
	lenb1 := len(b.At1.Bonds)
	lenb2 := len(b.At2.Bonds)
	b.At1.Bonds = takefromslice(b.At1.Bonds, b.Index)
	b.At2.Bonds = takefromslice(b.At2.Bonds, b.Index)
	if len(b.At1.Bonds) == lenb1 || len(b.At2.Bonds) == lenb2 {
		return NewError("removeBond", fmt.Sprintf("failed to remove bond %d between atoms %d and %d", b.Index, b.At1.Index, b.At2.Index))
	}
	return nil
}

// returns a new *Bond slice with the element id removed
func takefromslice(bonds []*Bond, id int) []*Bond {
	newb := make([]*Bond, 0, len(bonds)-1)
	for _, v := range bonds {
		if v.Index != id {
			newb = append(newb, v)
		}
	}
	return newb
}
