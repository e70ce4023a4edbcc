/*
 * graph.go, part of expanded-ensembles.
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
	"github.com/choderalab/expanded-ensembles/chem"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// molGraph is the view of a topology the subgraph search works on: the gonum
// graph for connectivity plus the per-atom data the compatibility predicate
// needs.
type molGraph struct {
	top    *chem.Topology
	g      *simple.UndirectedGraph
	inRing []bool
}

// makeMolGraph builds the gonum graph of a topology and marks every atom that
// belongs to at least one cycle of the fundamental cycle basis.
func makeMolGraph(top *chem.Topology) *molGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < top.Len(); i++ {
		g.AddNode(simple.Node(i))
	}
	for _, b := range top.Bonds() {
		if b.At1.Index == b.At2.Index {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(b.At1.Index), T: simple.Node(b.At2.Index)})
	}
	inRing := make([]bool, top.Len())
	for _, cycle := range topo.UndirectedCyclesIn(g) {
		for _, n := range cycle {
			inRing[int(n.ID())] = true
		}
	}
	return &molGraph{top: top, g: g, inRing: inRing}
}

func (m *molGraph) len() int {
	return m.top.Len()
}

func (m *molGraph) adjacent(i, j int) bool {
	return m.g.HasEdgeBetween(int64(i), int64(j))
}

// neighbors returns the indices adjacent to i, in increasing order. Ordered
// iteration keeps the subgraph search deterministic.
func (m *molGraph) neighbors(i int) []int {
	at := m.top.Atom(i)
	out := make([]int, 0, len(at.Bonds))
	for _, b := range at.Bonds {
		out = append(out, b.Cross(at).Index)
	}
	//bonds are appended in creation order, which need not be index order
	for a := 1; a < len(out); a++ {
		for b := a; b > 0 && out[b] < out[b-1]; b-- {
			out[b], out[b-1] = out[b-1], out[b]
		}
	}
	return out
}

// compatible is the node predicate of the search: same element, same ring
// membership. Bond order is deliberately ignored.
func compatible(ga *molGraph, i int, gb *molGraph, j int) bool {
	return ga.top.Atom(i).Symbol == gb.top.Atom(j).Symbol &&
		ga.inRing[i] == gb.inRing[j]
}
