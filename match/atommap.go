/*
 * atommap.go, part of expanded-ensembles.
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
	"fmt"
	"sort"
	"strconv"

	"github.com/choderalab/expanded-ensembles/chem"
)

// AtomMap is an injective partial correspondence from the atoms of a "new"
// topology to the atoms of an "old" one. It is immutable after construction;
// the unique-atom sets are derived, never stored by the caller.
type AtomMap struct {
	newToOld map[int]int
	oldToNew map[int]int
	nOld     int
	nNew     int
}

// MakeAtomMap validates and packages a new-to-old index correspondence.
// Every key must be a valid new-topology index, every value a valid
// old-topology index, and no two keys may share a value.
func MakeAtomMap(newToOld map[int]int, nOld, nNew int) (*AtomMap, error) {
	m := &AtomMap{
		newToOld: make(map[int]int, len(newToOld)),
		oldToNew: make(map[int]int, len(newToOld)),
		nOld:     nOld,
		nNew:     nNew,
	}
	for n, o := range newToOld {
		if n < 0 || n >= nNew {
			return nil, chem.NewError("MakeAtomMap", fmt.Sprintf("new index %d out of range (%d atoms)", n, nNew))
		}
		if o < 0 || o >= nOld {
			return nil, chem.NewError("MakeAtomMap", fmt.Sprintf("old index %d out of range (%d atoms)", o, nOld))
		}
		if prev, taken := m.oldToNew[o]; taken {
			return nil, chem.NewError("MakeAtomMap", fmt.Sprintf("old index %d mapped twice (new %d and %d)", o, prev, n))
		}
		m.newToOld[n] = o
		m.oldToNew[o] = n
	}
	return m, nil
}

// Len returns the number of mapped atom pairs.
func (m *AtomMap) Len() int {
	return len(m.newToOld)
}

// NumOld returns the atom count of the old topology the map was built against.
func (m *AtomMap) NumOld() int {
	return m.nOld
}

// NumNew returns the atom count of the new topology the map was built against.
func (m *AtomMap) NumNew() int {
	return m.nNew
}

// NewToOld returns the old-topology image of new-topology atom n, and whether
// n is mapped.
func (m *AtomMap) NewToOld(n int) (int, bool) {
	o, ok := m.newToOld[n]
	return o, ok
}

// OldToNew returns the new-topology image of old-topology atom o, and whether
// o is mapped.
func (m *AtomMap) OldToNew(o int) (int, bool) {
	n, ok := m.oldToNew[o]
	return n, ok
}

// Pairs returns the mapped (new, old) index pairs sorted by new index.
func (m *AtomMap) Pairs() [][2]int {
	out := make([][2]int, 0, len(m.newToOld))
	for n, o := range m.newToOld {
		out = append(out, [2]int{n, o})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// UniqueNew returns the sorted new-topology indices with no old counterpart.
// These are the atoms the geometry engine has to place.
func (m *AtomMap) UniqueNew() []int {
	out := make([]int, 0, m.nNew-len(m.newToOld))
	for i := 0; i < m.nNew; i++ {
		if _, ok := m.newToOld[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}

// UniqueOld returns the sorted old-topology indices with no new counterpart.
func (m *AtomMap) UniqueOld() []int {
	out := make([]int, 0, m.nOld-len(m.oldToNew))
	for i := 0; i < m.nOld; i++ {
		if _, ok := m.oldToNew[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}

type atomMapJSON struct {
	NOld     int            `json:"n_old"`
	NNew     int            `json:"n_new"`
	NewToOld map[string]int `json:"new_to_old"`
}

// MarshalJSON encodes the map with string-formatted integer keys, so the
// round trip through JSON preserves the indices exactly.
func (m *AtomMap) MarshalJSON() ([]byte, error) {
	enc := atomMapJSON{NOld: m.nOld, NNew: m.nNew, NewToOld: make(map[string]int, len(m.newToOld))}
	for n, o := range m.newToOld {
		enc.NewToOld[strconv.Itoa(n)] = o
	}
	return json.Marshal(enc)
}

// UnmarshalJSON decodes and revalidates a map produced by MarshalJSON.
func (m *AtomMap) UnmarshalJSON(data []byte) error {
	var enc atomMapJSON
	if err := json.Unmarshal(data, &enc); err != nil {
		return chem.NewError("AtomMap.UnmarshalJSON", err.Error())
	}
	newToOld := make(map[int]int, len(enc.NewToOld))
	for ks, o := range enc.NewToOld {
		n, err := strconv.Atoi(ks)
		if err != nil {
			return chem.NewError("AtomMap.UnmarshalJSON", fmt.Sprintf("non-integer key %q", ks))
		}
		newToOld[n] = o
	}
	dec, err := MakeAtomMap(newToOld, enc.NOld, enc.NNew)
	if err != nil {
		return chem.DecorateError(err, "AtomMap.UnmarshalJSON")
	}
	*m = *dec
	return nil
}

// Offset returns a copy of the map with every old index shifted by oldOffset
// and every new index by newOffset, with the topology sizes grown to keep the
// shifted indices in range. Used when the mapped molecules sit after a
// receptor in their respective systems.
func (m *AtomMap) Offset(oldOffset, newOffset int) (*AtomMap, error) {
	shifted := make(map[int]int, len(m.newToOld))
	for n, o := range m.newToOld {
		shifted[n+newOffset] = o + oldOffset
	}
	return MakeAtomMap(shifted, m.nOld+oldOffset, m.nNew+newOffset)
}
