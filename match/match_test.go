/*
 * match_test.go, part of expanded-ensembles.
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

package match

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/choderalab/expanded-ensembles/chem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearAlkane builds CnH2n+2 with carbons first, then the hydrogens of each
// carbon in chain order.
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

func cyclopropane() *chem.Topology {
	atoms := make([]*chem.Atom, 3)
	for i := range atoms {
		atoms[i] = &chem.Atom{Name: fmt.Sprintf("C%d", i+1), Symbol: "C", Molname: "CPR"}
	}
	chem.NewBond(0, atoms[0], atoms[1])
	chem.NewBond(1, atoms[1], atoms[2])
	chem.NewBond(2, atoms[2], atoms[0])
	top, err := chem.MakeTopology(atoms, 0)
	if err != nil {
		panic(err)
	}
	return top
}

func TestButaneToPentane(Te *testing.T) {
	butane := linearAlkane(4)
	pentane := linearAlkane(5)
	m, err := Match(butane, pentane)
	require.NoError(Te, err)
	//the shared substructure is butane minus one terminal hydrogen
	assert.Equal(Te, 13, m.Len())
	//the appended methyl: carbon 5 and its three hydrogens
	assert.Equal(Te, []int{4, 14, 15, 16}, m.UniqueNew())
	assert.Equal(Te, []int{13}, m.UniqueOld())
	//determinism: a second run gives the identical map
	m2, err := Match(butane, pentane)
	require.NoError(Te, err)
	assert.Equal(Te, m.Pairs(), m2.Pairs())
}

func TestIdentityMatch(Te *testing.T) {
	a := linearAlkane(3)
	b := linearAlkane(3)
	m, err := Match(a, b)
	require.NoError(Te, err)
	assert.Equal(Te, a.Len(), m.Len())
	assert.Empty(Te, m.UniqueNew())
	assert.Empty(Te, m.UniqueOld())
}

func TestNoCommonSubstructure(Te *testing.T) {
	//water and methane share hydrogens but no mappable bond, since the
	//heavy atoms differ
	o := &chem.Atom{Name: "O", Symbol: "O", Molname: "HOH"}
	h1 := &chem.Atom{Name: "H1", Symbol: "H", Molname: "HOH"}
	h2 := &chem.Atom{Name: "H2", Symbol: "H", Molname: "HOH"}
	chem.NewBond(0, o, h1)
	chem.NewBond(1, o, h2)
	water, err := chem.MakeTopology([]*chem.Atom{o, h1, h2}, 0)
	require.NoError(Te, err)

	c := &chem.Atom{Name: "C", Symbol: "C", Molname: "CH4"}
	methaneAtoms := []*chem.Atom{c}
	for i := 0; i < 4; i++ {
		h := &chem.Atom{Name: fmt.Sprintf("H%d", i+1), Symbol: "H", Molname: "CH4"}
		chem.NewBond(i, c, h)
		methaneAtoms = append(methaneAtoms, h)
	}
	methane, err := chem.MakeTopology(methaneAtoms, 0)
	require.NoError(Te, err)

	_, err = Match(water, methane)
	var nocs *NoCommonSubstructureError
	require.True(Te, errors.As(err, &nocs), "want NoCommonSubstructureError, got %v", err)
	var graphErr chem.GraphError
	assert.True(Te, errors.As(err, &graphErr), "NoCommonSubstructureError should be a GraphError")
}

func TestRingMembershipBlocksMapping(Te *testing.T) {
	//a ring carbon never maps onto a chain carbon
	chain := linearAlkane(3)
	ring := cyclopropane()
	_, err := Match(chain, ring)
	var nocs *NoCommonSubstructureError
	assert.True(Te, errors.As(err, &nocs), "chain/ring carbons should not map, got %v", err)
}

func TestMakeAtomMapValidation(Te *testing.T) {
	_, err := MakeAtomMap(map[int]int{0: 0, 1: 0}, 3, 3)
	assert.Error(Te, err, "two new atoms mapped onto one old atom")
	_, err = MakeAtomMap(map[int]int{5: 0}, 3, 3)
	assert.Error(Te, err, "new index out of range")
	_, err = MakeAtomMap(map[int]int{0: 5}, 3, 3)
	assert.Error(Te, err, "old index out of range")
	m, err := MakeAtomMap(map[int]int{0: 2, 1: 0}, 3, 3)
	require.NoError(Te, err)
	o, ok := m.NewToOld(0)
	assert.True(Te, ok)
	assert.Equal(Te, 2, o)
	n, ok := m.OldToNew(0)
	assert.True(Te, ok)
	assert.Equal(Te, 1, n)
	assert.Equal(Te, []int{2}, m.UniqueNew())
	assert.Equal(Te, []int{1}, m.UniqueOld())
}

func TestAtomMapJSONRoundTrip(Te *testing.T) {
	m, err := MakeAtomMap(map[int]int{0: 3, 2: 1, 7: 0}, 9, 11)
	require.NoError(Te, err)
	data, err := json.Marshal(m)
	require.NoError(Te, err)
	back := new(AtomMap)
	require.NoError(Te, json.Unmarshal(data, back))
	assert.Equal(Te, m.Pairs(), back.Pairs())
	assert.Equal(Te, m.NumOld(), back.NumOld())
	assert.Equal(Te, m.NumNew(), back.NumNew())
	assert.Equal(Te, m.UniqueNew(), back.UniqueNew())
}

func TestAtomMapOffset(Te *testing.T) {
	m, err := MakeAtomMap(map[int]int{0: 0, 1: 2}, 3, 3)
	require.NoError(Te, err)
	off, err := m.Offset(10, 10)
	require.NoError(Te, err)
	o, ok := off.NewToOld(11)
	require.True(Te, ok)
	assert.Equal(Te, 12, o)
	assert.Equal(Te, 13, off.NumOld())
}
