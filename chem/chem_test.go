/*
 * chem_test.go, part of expanded-ensembles.
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
	"testing"

	v3 "github.com/choderalab/expanded-ensembles/v3"
)

// ethanol heavy atoms plus bonds wired by hand
func testMolecule() ([]*Atom, []*Bond) {
	c1 := &Atom{Name: "C1", Symbol: "C", Molname: "EOH"}
	c2 := &Atom{Name: "C2", Symbol: "C", Molname: "EOH"}
	o := &Atom{Name: "O", Symbol: "O", Molname: "EOH"}
	b1 := NewBond(0, c1, c2)
	b2 := NewBond(1, c2, o)
	return []*Atom{c1, c2, o}, []*Bond{b1, b2}
}

func TestMakeTopology(Te *testing.T) {
	atoms, _ := testMolecule()
	top, err := MakeTopology(atoms, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if top.Len() != 3 {
		Te.Errorf("topology has %d atoms", top.Len())
	}
	if len(top.Bonds()) != 2 {
		Te.Errorf("topology collected %d bonds, want 2", len(top.Bonds()))
	}
	for i := 0; i < top.Len(); i++ {
		if top.Atom(i).Index != i {
			Te.Errorf("atom %d carries index %d", i, top.Atom(i).Index)
		}
	}
	if top.BondBetween(0, 1) == nil || top.BondBetween(1, 2) == nil {
		Te.Error("expected bonds 0-1 and 1-2")
	}
	if top.BondBetween(0, 2) != nil {
		Te.Error("atoms 0 and 2 should not be bonded")
	}
}

func TestBondCross(Te *testing.T) {
	atoms, bonds := testMolecule()
	if bonds[0].Cross(atoms[0]).Name != "C2" {
		Te.Error("crossing bond 0 from C1 should give C2")
	}
	if !Bonded(atoms[1], atoms[2]) {
		Te.Error("C2 and O should be bonded")
	}
	if Bonded(atoms[0], atoms[2]) {
		Te.Error("C1 and O should not be bonded")
	}
}

func TestAssignBonds(Te *testing.T) {
	//water: O-H distances ~0.096 nm, H-H ~0.15 nm but capped at 1 bond each
	atoms := []*Atom{
		{Name: "O", Symbol: "O"},
		{Name: "H1", Symbol: "H"},
		{Name: "H2", Symbol: "H"},
	}
	top, err := MakeTopology(atoms, 0)
	if err != nil {
		Te.Fatal(err)
	}
	coord, _ := v3.NewMatrix([]float64{
		0, 0, 0,
		0.096, 0, 0,
		-0.024, 0.093, 0,
	})
	if err := AssignBonds(coord, top); err != nil {
		Te.Fatal(err)
	}
	if len(top.Bonds()) != 2 {
		Te.Errorf("water got %d bonds, want 2", len(top.Bonds()))
	}
	if !Bonded(atoms[0], atoms[1]) || !Bonded(atoms[0], atoms[2]) {
		Te.Error("O should bond both hydrogens")
	}
	if Bonded(atoms[1], atoms[2]) {
		Te.Error("the hydrogens should not bond each other")
	}
}

func TestSomeAtoms(Te *testing.T) {
	atoms, _ := testMolecule()
	top, _ := MakeTopology(atoms, 0)
	sub, err := top.SomeAtoms([]int{2, 0})
	if err != nil {
		Te.Fatal(err)
	}
	if sub.Len() != 2 || sub.Atom(0).Name != "O" || sub.Atom(1).Name != "C1" {
		Te.Error("selection returned the wrong atoms")
	}
	if _, err := top.SomeAtoms([]int{5}); err == nil {
		Te.Error("out of range selection should fail")
	}
}

func TestErrorDecoration(Te *testing.T) {
	err := NewError("inner", "something broke")
	DecorateError(err, "outer")
	if err.Error() != "outer/inner: something broke" {
		Te.Errorf("unexpected decorated message %q", err.Error())
	}
}
