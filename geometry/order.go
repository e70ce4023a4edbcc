/*
 * order.go, part of expanded-ensembles.
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

package geometry

import (
	"github.com/choderalab/expanded-ensembles/chem"
)

// proper is a torsion i-j-k-l whose three consecutive pairs are all bonded.
// Propers come from the molecular graph, not from the force terms, so every
// atom of a connected molecule is reachable even when the force field
// assigns no torsion term to its quadruple.
type proper struct {
	at1, at2, at3, at4 int
}

// topologicalPropers enumerates every proper torsion of the topology, once
// per direction-independent quadruple, in bond/neighbor index order.
func topologicalPropers(top *chem.Topology) []proper {
	var out []proper
	for _, b := range top.Bonds() {
		j := b.At1
		k := b.At2
		for _, bi := range j.Bonds {
			i := bi.Cross(j)
			if i.Index == k.Index {
				continue
			}
			for _, bl := range k.Bonds {
				l := bl.Cross(k)
				if l.Index == j.Index || l.Index == i.Index {
					continue
				}
				out = append(out, proper{at1: i.Index, at2: j.Index, at3: k.Index, at4: l.Index})
			}
		}
	}
	return out
}

// placement is one eligible way to position an atom: the torsion oriented so
// the atom to place comes first and its three positioned references follow.
type placement struct {
	atom    int //the atom to place
	bondAt  int //positioned, bonded to atom
	angleAt int
	torsAt  int
}

// eligiblePlacements scans the propers for torsions able to place an atom
// right now: exactly one terminal atom unpositioned, everything else
// positioned.
func eligiblePlacements(propers []proper, positioned []bool) []placement {
	var out []placement
	for _, t := range propers {
		if !positioned[t.at2] || !positioned[t.at3] {
			continue
		}
		switch {
		case !positioned[t.at1] && positioned[t.at4]:
			out = append(out, placement{atom: t.at1, bondAt: t.at2, angleAt: t.at3, torsAt: t.at4})
		case positioned[t.at1] && !positioned[t.at4]:
			out = append(out, placement{atom: t.at4, bondAt: t.at3, angleAt: t.at2, torsAt: t.at1})
		}
	}
	return out
}

func unpositionedAtoms(positioned []bool) []int {
	var out []int
	for i, p := range positioned {
		if !p {
			out = append(out, i)
		}
	}
	return out
}
