/*
 * factory.go, part of expanded-ensembles.
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

package hybrid

import (
	"math"

	"github.com/choderalab/expanded-ensembles/chem"
	"github.com/choderalab/expanded-ensembles/ff"
	"github.com/choderalab/expanded-ensembles/proposal"
	v3 "github.com/choderalab/expanded-ensembles/v3"
)

const defaultSoftcoreAlpha = 0.5

// Options collects the optional knobs of a Factory.
type Options struct {
	alpha float64
}

// DefaultOptions returns an Options with the default settings.
func DefaultOptions() *Options {
	return &Options{}
}

// SetSoftcoreAlpha sets the softcore alpha of the Beutler Lennard-Jones
// form.
func (O *Options) SetSoftcoreAlpha(a float64) {
	O.alpha = a
}

// Factory builds hybrid systems. It is stateless apart from configuration.
type Factory struct {
	alpha float64
}

// NewFactory returns a hybrid system factory.
func NewFactory(options ...*Options) *Factory {
	f := &Factory{alpha: defaultSoftcoreAlpha}
	for _, o := range options {
		if o == nil {
			continue
		}
		if o.alpha > 0 {
			f.alpha = o.alpha
		}
	}
	return f
}

// Build merges the two end states of a proposal into one frozen hybrid
// System, with all lambdas initially 0 (the old end state). The coordinate
// sets are validated against the topologies and kept as the initial hybrid
// positions.
func (F *Factory) Build(prop *proposal.TopologyProposal, oldPositions, newPositions *v3.Matrix) (*System, error) {
	if names := unsupportedNames(prop.OldSystem()); len(names) > 0 {
		return nil, newUnsupportedForceError("Build", names)
	}
	if names := unsupportedNames(prop.NewSystem()); len(names) > 0 {
		return nil, newUnsupportedForceError("Build", names)
	}
	if oldPositions.NVecs() != prop.NOldAtoms() {
		return nil, configErrorf("Build", "old positions have %d rows for %d atoms", oldPositions.NVecs(), prop.NOldAtoms())
	}
	if newPositions.NVecs() != prop.NNewAtoms() {
		return nil, configErrorf("Build", "new positions have %d rows for %d atoms", newPositions.NVecs(), prop.NNewAtoms())
	}

	S := &System{
		override: make(map[[2]int]bool),
		globals:  make(map[string]float64, 9),
		alpha:    F.alpha,
	}
	for _, name := range LambdaNames() {
		S.globals[name] = 0
	}
	F.assignParticles(S, prop)
	F.assignBonds(S, prop)
	F.assignAngles(S, prop)
	F.assignTorsions(S, prop)
	if err := F.assignExceptions(S, prop); err != nil {
		return nil, chem.DecorateError(err, "Build")
	}
	S.box = prop.OldSystem().Box()
	if S.box == nil {
		S.box = prop.NewSystem().Box()
	}
	S.barostat = prop.OldSystem().GetBarostat()
	if S.barostat == nil {
		S.barostat = prop.NewSystem().GetBarostat()
	}
	initPos, err := S.HybridPositions(oldPositions, newPositions)
	if err != nil {
		return nil, chem.DecorateError(err, "Build")
	}
	S.initPos = initPos
	return S, nil
}

func unsupportedNames(sys *ff.System) []string {
	return sys.UnsupportedForces()
}

// assignParticles lays out the hybrid index space: old atoms keep their
// indices, unique new atoms are appended in index order.
func (F *Factory) assignParticles(S *System, prop *proposal.TopologyProposal) {
	nOld := prop.NOldAtoms()
	nNew := prop.NNewAtoms()
	m := prop.AtomMap()
	oldSys := prop.OldSystem()
	newSys := prop.NewSystem()

	S.oldToHybrid = make([]int, nOld)
	S.newToHybrid = make([]int, nNew)
	for i := 0; i < nOld; i++ {
		S.oldToHybrid[i] = i
		po := oldSys.ParticleParameters(i)
		if n, mapped := m.OldToNew(i); mapped {
			pn := newSys.ParticleParameters(n)
			region := Core
			if po.Charge == pn.Charge && po.Sigma == pn.Sigma && po.Epsilon == pn.Epsilon {
				region = Environment
			}
			S.particles = append(S.particles, particle{mass: po.Mass, region: region, old: po, new: pn})
		} else {
			S.uniqueOld = append(S.uniqueOld, i)
			//sigma carried into the zero side keeps the softcore well-behaved
			S.particles = append(S.particles, particle{mass: po.Mass, region: UniqueOld,
				old: po, new: ff.Particle{Sigma: po.Sigma}})
		}
	}
	for n := 0; n < nNew; n++ {
		if o, mapped := m.NewToOld(n); mapped {
			S.newToHybrid[n] = o
			continue
		}
		pn := newSys.ParticleParameters(n)
		h := len(S.particles)
		S.newToHybrid[n] = h
		S.uniqueNew = append(S.uniqueNew, h)
		S.particles = append(S.particles, particle{mass: pn.Mass, region: UniqueNew,
			old: ff.Particle{Sigma: pn.Sigma}, new: pn})
	}
}

func (F *Factory) assignBonds(S *System, prop *proposal.TopologyProposal) {
	newByPair := make(map[[2]int]ff.HarmonicBond)
	for i := 0; i < prop.NewSystem().NumBonds(); i++ {
		b := prop.NewSystem().BondParameters(i)
		newByPair[pairKey(S.newToHybrid[b.At1], S.newToHybrid[b.At2])] = b
	}
	for i := 0; i < prop.OldSystem().NumBonds(); i++ {
		b := prop.OldSystem().BondParameters(i)
		key := pairKey(S.oldToHybrid[b.At1], S.oldToHybrid[b.At2])
		t := bondTerm{at1: key[0], at2: key[1], r0Old: b.R0, kOld: b.K}
		if nb, ok := newByPair[key]; ok {
			t.r0New, t.kNew = nb.R0, nb.K
			if nb.R0 == b.R0 && nb.K == b.K {
				t.cls = classUnchanged
			} else {
				t.cls = classCore
			}
			delete(newByPair, key)
		} else {
			t.cls = classOldOnly
		}
		S.bonds = append(S.bonds, t)
	}
	for key, nb := range newByPair {
		S.bonds = append(S.bonds, bondTerm{at1: key[0], at2: key[1], cls: classNewOnly,
			r0New: nb.R0, kNew: nb.K})
	}
}

func tripleKey(a, b, c int) [3]int {
	if a > c {
		a, c = c, a
	}
	return [3]int{a, b, c}
}

func (F *Factory) assignAngles(S *System, prop *proposal.TopologyProposal) {
	newByTriple := make(map[[3]int]ff.HarmonicAngle)
	for i := 0; i < prop.NewSystem().NumAngles(); i++ {
		a := prop.NewSystem().AngleParameters(i)
		newByTriple[tripleKey(S.newToHybrid[a.At1], S.newToHybrid[a.At2], S.newToHybrid[a.At3])] = a
	}
	for i := 0; i < prop.OldSystem().NumAngles(); i++ {
		a := prop.OldSystem().AngleParameters(i)
		key := tripleKey(S.oldToHybrid[a.At1], S.oldToHybrid[a.At2], S.oldToHybrid[a.At3])
		t := angleTerm{at1: key[0], at2: key[1], at3: key[2], t0Old: a.Theta0, kOld: a.K}
		if na, ok := newByTriple[key]; ok {
			t.t0New, t.kNew = na.Theta0, na.K
			if na.Theta0 == a.Theta0 && na.K == a.K {
				t.cls = classUnchanged
			} else {
				t.cls = classCore
			}
			delete(newByTriple, key)
		} else {
			t.cls = classOldOnly
		}
		S.angles = append(S.angles, t)
	}
	for key, na := range newByTriple {
		S.angles = append(S.angles, angleTerm{at1: key[0], at2: key[1], at3: key[2],
			cls: classNewOnly, t0New: na.Theta0, kNew: na.K})
	}
}

// torsionID identifies a torsion term up to direction reversal. Periodic
// torsions are never parameter-interpolated; an old term either has an
// identical new twin (kept once at full strength) or scales out while the
// unmatched new terms scale in.
type torsionID struct {
	at1, at2, at3, at4 int
	periodicity        int
	phase              float64
	barrier            float64
}

func makeTorsionID(a, b, c, d, periodicity int, phase, barrier float64) torsionID {
	if b > c || (b == c && a > d) {
		a, b, c, d = d, c, b, a
	}
	return torsionID{at1: a, at2: b, at3: c, at4: d, periodicity: periodicity, phase: phase, barrier: barrier}
}

func (F *Factory) assignTorsions(S *System, prop *proposal.TopologyProposal) {
	newByID := make(map[torsionID]int) //count, torsion types can repeat
	for i := 0; i < prop.NewSystem().NumTorsions(); i++ {
		t := prop.NewSystem().TorsionParameters(i)
		id := makeTorsionID(S.newToHybrid[t.At1], S.newToHybrid[t.At2], S.newToHybrid[t.At3],
			S.newToHybrid[t.At4], t.Periodicity, t.Phase, t.Barrier)
		newByID[id]++
	}
	for i := 0; i < prop.OldSystem().NumTorsions(); i++ {
		t := prop.OldSystem().TorsionParameters(i)
		id := makeTorsionID(S.oldToHybrid[t.At1], S.oldToHybrid[t.At2], S.oldToHybrid[t.At3],
			S.oldToHybrid[t.At4], t.Periodicity, t.Phase, t.Barrier)
		term := torsionTerm{at1: id.at1, at2: id.at2, at3: id.at3, at4: id.at4,
			periodicity: t.Periodicity, phase: t.Phase, barrier: t.Barrier}
		if newByID[id] > 0 {
			newByID[id]--
			term.cls = classUnchanged
		} else {
			term.cls = classOldOnly
		}
		S.torsions = append(S.torsions, term)
	}
	for id, count := range newByID {
		for c := 0; c < count; c++ {
			S.torsions = append(S.torsions, torsionTerm{at1: id.at1, at2: id.at2, at3: id.at3, at4: id.at4,
				cls: classNewOnly, periodicity: id.periodicity, phase: id.phase, barrier: id.barrier})
		}
	}
}

// assignExceptions merges the 1-4 exception lists. A pair with an exception
// in both states interpolates between them; a pair with an exception in only
// one state, both atoms mapped, interpolates against the plain
// combination-rule interaction of the other state, since that is what the
// other state's regular nonbonded loop would have computed. Exceptions
// touching unique atoms scale with their parent atoms' insert or delete
// lambdas.
func (F *Factory) assignExceptions(S *System, prop *proposal.TopologyProposal) error {
	oldByPair := make(map[[2]int]ff.Exception)
	for i := 0; i < prop.OldSystem().NumExceptions(); i++ {
		ex := prop.OldSystem().ExceptionParameters(i)
		oldByPair[pairKey(S.oldToHybrid[ex.At1], S.oldToHybrid[ex.At2])] = ex
	}
	newByPair := make(map[[2]int]ff.Exception)
	for i := 0; i < prop.NewSystem().NumExceptions(); i++ {
		ex := prop.NewSystem().ExceptionParameters(i)
		newByPair[pairKey(S.newToHybrid[ex.At1], S.newToHybrid[ex.At2])] = ex
	}
	pairs := make(map[[2]int]bool, len(oldByPair)+len(newByPair))
	for k := range oldByPair {
		pairs[k] = true
	}
	for k := range newByPair {
		pairs[k] = true
	}
	for key := range pairs {
		ri := S.particles[key[0]].region
		rj := S.particles[key[1]].region
		oldEx, hasOld := oldByPair[key]
		newEx, hasNew := newByPair[key]
		term := exceptionTerm{at1: key[0], at2: key[1]}
		switch {
		case ri == UniqueOld || rj == UniqueOld:
			if !hasOld {
				return configErrorf("assignExceptions",
					"new-state exception on unique-old pair %v", key)
			}
			term.cls = excOld
			term.qpOld, term.sigOld, term.epsOld = oldEx.ChargeProd, oldEx.Sigma, oldEx.Epsilon
		case ri == UniqueNew || rj == UniqueNew:
			if !hasNew {
				return configErrorf("assignExceptions",
					"old-state exception on unique-new pair %v", key)
			}
			term.cls = excNew
			term.qpNew, term.sigNew, term.epsNew = newEx.ChargeProd, newEx.Sigma, newEx.Epsilon
		default:
			term.cls = excCore
			if hasOld {
				term.qpOld, term.sigOld, term.epsOld = oldEx.ChargeProd, oldEx.Sigma, oldEx.Epsilon
			} else {
				term.qpOld, term.sigOld, term.epsOld = combined(S.particles[key[0]].old, S.particles[key[1]].old)
			}
			if hasNew {
				term.qpNew, term.sigNew, term.epsNew = newEx.ChargeProd, newEx.Sigma, newEx.Epsilon
			} else {
				term.qpNew, term.sigNew, term.epsNew = combined(S.particles[key[0]].new, S.particles[key[1]].new)
			}
		}
		S.override[key] = true
		S.exceptions = append(S.exceptions, term)
	}
	return nil
}

// combined gives the regular Lorentz-Berthelot interaction parameters of a
// pair, the value an exception-free nonbonded loop would use.
func combined(a, b ff.Particle) (chargeProd, sigma, eps float64) {
	return a.Charge * b.Charge, 0.5 * (a.Sigma + b.Sigma), math.Sqrt(a.Epsilon * b.Epsilon)
}
