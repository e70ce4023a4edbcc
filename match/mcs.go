/*
 * mcs.go, part of expanded-ensembles.
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
	"sort"

	"github.com/choderalab/expanded-ensembles/chem"
)

// NoCommonSubstructureError signals that the two molecules share no mappable
// bond. It is a chem.GraphError: a transformation between the two molecules
// cannot be set up at all.
type NoCommonSubstructureError struct {
	*chem.CError
}

func (err *NoCommonSubstructureError) GraphProblem() {}

// Match finds the maximum common connected induced subgraph between the old
// and new topologies and returns it as an AtomMap (new indices to old
// indices). Atoms are compatible when element and ring membership agree; the
// common subgraph is grown one bond at a time, so the result is connected and
// always maps at least one bond. When several maximal matches exist the
// first one in atom index order wins, making the result deterministic.
//
// Returns a NoCommonSubstructureError when no bond can be mapped.
func Match(old, new *chem.Topology) (*AtomMap, error) {
	s := &searcher{
		old: makeMolGraph(old),
		new: makeMolGraph(new),
	}
	s.extend(nil, make(map[int]bool), make(map[int]bool))
	if len(s.best) < 2 {
		return nil, &NoCommonSubstructureError{
			CError: chem.NewError("Match", "no common bond between the two molecules"),
		}
	}
	newToOld := make(map[int]int, len(s.best))
	for o, n := range s.best {
		newToOld[n] = o
	}
	m, err := MakeAtomMap(newToOld, old.Len(), new.Len())
	if err != nil {
		return nil, chem.DecorateError(err, "Match")
	}
	return m, nil
}

type mappedPair struct {
	o, n int
}

type searcher struct {
	old  *molGraph
	new  *molGraph
	best map[int]int //old index to new index
}

// extend grows the current mapping by one pair and recurses. mapping holds
// the (old, new) pairs in insertion order, usedNew the new indices taken, and
// excluded the old indices this branch has renounced. Branching follows the
// smallest eligible old atom: one branch per compatible new partner, plus the
// branch that excludes the atom for good. Every mapping subset is therefore
// visited exactly once.
func (s *searcher) extend(mapping []mappedPair, usedNew, excluded map[int]bool) {
	//bound: even mapping everything left we cannot beat the best
	if len(mapping)+s.remaining(mapping, usedNew, excluded) <= len(s.best) {
		return
	}
	u := s.nextOld(mapping, excluded)
	if u < 0 {
		if len(mapping) > len(s.best) {
			s.best = make(map[int]int, len(mapping))
			for _, p := range mapping {
				s.best[p.o] = p.n
			}
		}
		return
	}
	for _, v := range s.partners(u, mapping, usedNew) {
		usedNew[v] = true
		s.extend(append(mapping, mappedPair{o: u, n: v}), usedNew, excluded)
		delete(usedNew, v)
	}
	excluded[u] = true
	s.extend(mapping, usedNew, excluded)
	delete(excluded, u)
}

// nextOld picks the smallest old atom that can extend the mapping: unmapped,
// not excluded and, once the mapping is non-empty, adjacent to a mapped atom
// so the common subgraph stays connected. Returns -1 when no atom qualifies.
func (s *searcher) nextOld(mapping []mappedPair, excluded map[int]bool) int {
	mapped := make(map[int]bool, len(mapping))
	for _, p := range mapping {
		mapped[p.o] = true
	}
	for u := 0; u < s.old.len(); u++ {
		if mapped[u] || excluded[u] {
			continue
		}
		if len(mapping) == 0 {
			return u
		}
		for _, a := range s.old.neighbors(u) {
			if mapped[a] {
				return u
			}
		}
	}
	return -1
}

// partners lists the new atoms that can take old atom u: compatible, unused,
// and agreeing with every mapped pair on adjacency, so the mapped subgraph
// stays induced on both sides.
func (s *searcher) partners(u int, mapping []mappedPair, usedNew map[int]bool) []int {
	var out []int
	for v := 0; v < s.new.len(); v++ {
		if usedNew[v] || !compatible(s.old, u, s.new, v) {
			continue
		}
		ok := true
		connected := len(mapping) == 0
		for _, p := range mapping {
			adjOld := s.old.adjacent(u, p.o)
			adjNew := s.new.adjacent(v, p.n)
			if adjOld != adjNew {
				ok = false
				break
			}
			if adjOld {
				connected = true
			}
		}
		if ok && connected {
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

// remaining is the optimistic number of additional pairs this branch could
// still map.
func (s *searcher) remaining(mapping []mappedPair, usedNew, excluded map[int]bool) int {
	oldLeft := s.old.len() - len(mapping) - len(excluded)
	newLeft := s.new.len() - len(usedNew)
	if newLeft < oldLeft {
		return newLeft
	}
	return oldLeft
}
