/*
 * proposal.go, part of expanded-ensembles.
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

package proposal

import (
	"fmt"

	"github.com/choderalab/expanded-ensembles/chem"
	"github.com/choderalab/expanded-ensembles/ff"
	"github.com/choderalab/expanded-ensembles/match"
)

// TopologyProposal is the immutable record of one proposed jump between
// chemical states. Everything the geometry engine and the hybrid factory
// need is in here; neither of them goes back to the proposal Engine.
type TopologyProposal struct {
	oldTopology *chem.Topology
	newTopology *chem.Topology
	oldSystem   *ff.System
	newSystem   *ff.System
	atomMap     *match.AtomMap
	logP        float64
	oldKey      string
	newKey      string
}

// NewTopologyProposal validates the pieces of a proposal against each other
// and packages them. The atom map must have been built for topologies of
// exactly these sizes, and the systems must have one particle per topology
// atom.
func NewTopologyProposal(oldTop, newTop *chem.Topology, oldSys, newSys *ff.System,
	m *match.AtomMap, logP float64, oldKey, newKey string) (*TopologyProposal, error) {
	if m.NumOld() != oldTop.Len() || m.NumNew() != newTop.Len() {
		return nil, chem.NewError("NewTopologyProposal",
			fmt.Sprintf("atom map built for %d/%d atoms, topologies have %d/%d",
				m.NumOld(), m.NumNew(), oldTop.Len(), newTop.Len()))
	}
	if oldSys.NumParticles() != oldTop.Len() {
		return nil, chem.NewError("NewTopologyProposal",
			fmt.Sprintf("old system has %d particles for %d atoms", oldSys.NumParticles(), oldTop.Len()))
	}
	if newSys.NumParticles() != newTop.Len() {
		return nil, chem.NewError("NewTopologyProposal",
			fmt.Sprintf("new system has %d particles for %d atoms", newSys.NumParticles(), newTop.Len()))
	}
	return &TopologyProposal{
		oldTopology: oldTop,
		newTopology: newTop,
		oldSystem:   oldSys,
		newSystem:   newSys,
		atomMap:     m,
		logP:        logP,
		oldKey:      oldKey,
		newKey:      newKey,
	}, nil
}

// OldTopology returns the current-state topology.
func (p *TopologyProposal) OldTopology() *chem.Topology { return p.oldTopology }

// NewTopology returns the proposed-state topology.
func (p *TopologyProposal) NewTopology() *chem.Topology { return p.newTopology }

// OldSystem returns the parameterized current-state system.
func (p *TopologyProposal) OldSystem() *ff.System { return p.oldSystem }

// NewSystem returns the parameterized proposed-state system.
func (p *TopologyProposal) NewSystem() *ff.System { return p.newSystem }

// AtomMap returns the new-to-old atom correspondence.
func (p *TopologyProposal) AtomMap() *match.AtomMap { return p.atomMap }

// LogPProposal returns the log probability of this jump having been proposed,
// excluding the geometry contribution.
func (p *TopologyProposal) LogPProposal() float64 { return p.logP }

// OldKey returns the chemical key of the current state.
func (p *TopologyProposal) OldKey() string { return p.oldKey }

// NewKey returns the chemical key of the proposed state.
func (p *TopologyProposal) NewKey() string { return p.newKey }

// NOldAtoms returns the atom count of the current state.
func (p *TopologyProposal) NOldAtoms() int { return p.oldTopology.Len() }

// NNewAtoms returns the atom count of the proposed state.
func (p *TopologyProposal) NNewAtoms() int { return p.newTopology.Len() }

// UniqueNewAtoms returns the sorted new-topology indices with no old
// counterpart. The geometry engine must grow these.
func (p *TopologyProposal) UniqueNewAtoms() []int { return p.atomMap.UniqueNew() }

// UniqueOldAtoms returns the sorted old-topology indices with no new
// counterpart.
func (p *TopologyProposal) UniqueOldAtoms() []int { return p.atomMap.UniqueOld() }

// ChargeDiff returns the total charge of the proposed state minus that of the
// current state, in elementary charges. Charge-changing jumps need special
// treatment by the sampler, so this is checked a lot.
func (p *TopologyProposal) ChargeDiff() int {
	return p.newTopology.Charge() - p.oldTopology.Charge()
}
