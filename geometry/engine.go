/*
 * engine.go, part of expanded-ensembles.
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
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/choderalab/expanded-ensembles/chem"
	"github.com/choderalab/expanded-ensembles/ff"
	"github.com/choderalab/expanded-ensembles/proposal"
	v3 "github.com/choderalab/expanded-ensembles/v3"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	defaultGridPoints = 5000
	defaultMaxReject  = 100000
)

// Proposal is the result of growing the unique atoms of a new chemical
// state: a full coordinate set for the new topology and the cumulative log
// probability of having generated it, Jacobian correction included.
type Proposal struct {
	NewPositions *v3.Matrix
	LogP         float64
}

// Options collects the optional knobs of a geometry Engine. The zero value
// (or DefaultOptions) uses a 5000-point torsion grid, a 100000-iteration
// rejection cap and no logging.
type Options struct {
	gridPoints int
	maxReject  int
	log        *zap.Logger
}

// DefaultOptions returns an Options with the default settings.
func DefaultOptions() *Options {
	return &Options{}
}

// SetGridPoints sets the number of points of the torsion discretization
// grid.
func (O *Options) SetGridPoints(n int) {
	O.gridPoints = n
}

// SetMaxRejections sets the iteration cap of the torsion rejection sampler.
// The cap exists only to turn a pathological density into an error; it must
// stay generous enough never to bite on sane chemistry.
func (O *Options) SetMaxRejections(n int) {
	O.maxReject = n
}

// SetLogger sets a logger for debug traces of each atomic placement.
func (O *Options) SetLogger(l *zap.Logger) {
	O.log = l
}

// distSource adapts the threaded random generator to the source interface
// gonum's distributions draw from. Seeding goes through the generator, never
// through the distribution.
type distSource struct {
	rng *rand.Rand
}

func (s distSource) Uint64() uint64 { return s.rng.Uint64() }

func (s distSource) Seed(uint64) {}

// Engine generates and evaluates internal-coordinate placements. It holds
// only configuration, so one Engine may serve concurrent proposals as long
// as each call gets its own random generator.
type Engine struct {
	grid      int
	maxReject int
	log       *zap.Logger
}

// NewEngine builds a geometry engine.
func NewEngine(options ...*Options) *Engine {
	e := &Engine{grid: defaultGridPoints, maxReject: defaultMaxReject, log: zap.NewNop()}
	for _, o := range options {
		if o == nil {
			continue
		}
		if o.gridPoints > 1 {
			e.grid = o.gridPoints
		}
		if o.maxReject > 0 {
			e.maxReject = o.maxReject
		}
		if o.log != nil {
			e.log = o.log
		}
	}
	return e
}

// Propose builds a full coordinate set for the proposed topology: mapped
// atoms inherit their old-state coordinates, unique new atoms are grown one
// torsion at a time. beta is the inverse temperature in mol/kJ; it shapes
// every sampling density.
func (E *Engine) Propose(prop *proposal.TopologyProposal, oldPositions *v3.Matrix, beta float64, rng *rand.Rand) (*Proposal, error) {
	if oldPositions.NVecs() != prop.NOldAtoms() {
		return nil, chem.NewError("Propose",
			fmt.Sprintf("old positions have %d rows for %d atoms", oldPositions.NVecs(), prop.NOldAtoms()))
	}
	if beta <= 0 {
		return nil, chem.NewError("Propose", fmt.Sprintf("non-positive beta %v", beta))
	}
	newPos := v3.Zeros(prop.NNewAtoms())
	positioned := make([]bool, prop.NNewAtoms())
	for _, p := range prop.AtomMap().Pairs() {
		newPos.SetVec(p[0], oldPositions.VecView(p[1]))
		positioned[p[0]] = true
	}
	logp, err := E.run(prop.NewTopology(), prop.NewSystem(), newPos, positioned, beta, rng, true)
	if err != nil {
		return nil, chem.DecorateError(err, "Propose")
	}
	return &Proposal{NewPositions: newPos, LogP: logp}, nil
}

// LogPReverse computes the log probability that the engine, asked to jump
// from the new state back to the old one, would have regrown the unique old
// atoms exactly where they are. Mapped atoms take their coordinates from the
// new state, unique old atoms from the old state; densities are evaluated,
// never sampled, but the torsion used for each atom is still chosen at
// random among the eligible ones, mirroring the forward pass.
func (E *Engine) LogPReverse(prop *proposal.TopologyProposal, newPositions, oldPositions *v3.Matrix, beta float64, rng *rand.Rand) (float64, error) {
	if newPositions.NVecs() != prop.NNewAtoms() {
		return 0, chem.NewError("LogPReverse",
			fmt.Sprintf("new positions have %d rows for %d atoms", newPositions.NVecs(), prop.NNewAtoms()))
	}
	if oldPositions.NVecs() != prop.NOldAtoms() {
		return 0, chem.NewError("LogPReverse",
			fmt.Sprintf("old positions have %d rows for %d atoms", oldPositions.NVecs(), prop.NOldAtoms()))
	}
	if beta <= 0 {
		return 0, chem.NewError("LogPReverse", fmt.Sprintf("non-positive beta %v", beta))
	}
	pos := v3.Zeros(prop.NOldAtoms())
	positioned := make([]bool, prop.NOldAtoms())
	for _, p := range prop.AtomMap().Pairs() {
		pos.SetVec(p[1], newPositions.VecView(p[0]))
		positioned[p[1]] = true
	}
	for _, o := range prop.UniqueOldAtoms() {
		pos.SetVec(o, oldPositions.VecView(o))
	}
	logp, err := E.run(prop.OldTopology(), prop.OldSystem(), pos, positioned, beta, rng, false)
	if err != nil {
		return 0, chem.DecorateError(err, "LogPReverse")
	}
	return logp, nil
}

// run is the shared placement loop. With sample set it draws internals and
// writes Cartesian coordinates into pos; without it, pos already holds every
// coordinate and the densities are evaluated at the known internals. Every
// round picks one eligible torsion uniformly at random, places (or
// evaluates) its free terminal atom and marks it positioned.
func (E *Engine) run(top *chem.Topology, sys *ff.System, pos *v3.Matrix, positioned []bool, beta float64, rng *rand.Rand, sample bool) (float64, error) {
	propers := topologicalPropers(top)
	remaining := len(unpositionedAtoms(positioned))
	var logp float64
	for remaining > 0 {
		eligible := eligiblePlacements(propers, positioned)
		if len(eligible) == 0 {
			return 0, newUnplaceableAtomError("run", unpositionedAtoms(positioned))
		}
		pl := eligible[rng.IntN(len(eligible))]
		logp -= math.Log(float64(len(eligible)))
		lp, err := E.placeAtom(sys, pos, pl, beta, rng, sample)
		if err != nil {
			return 0, chem.DecorateError(err, "run")
		}
		logp += lp
		positioned[pl.atom] = true
		remaining--
		E.log.Debug("atom placed",
			zap.Int("atom", pl.atom),
			zap.Ints("references", []int{pl.bondAt, pl.angleAt, pl.torsAt}),
			zap.Float64("logp", lp),
			zap.Bool("sampled", sample))
	}
	return logp, nil
}

// placeAtom draws (or evaluates) one atom's internal coordinate against its
// three reference atoms and returns the log density of the result, including
// log|detJ| of the internal to Cartesian transform.
func (E *Engine) placeAtom(sys *ff.System, pos *v3.Matrix, pl placement, beta float64, rng *rand.Rand, sample bool) (float64, error) {
	bt, ok := sys.BondOn(pl.atom, pl.bondAt)
	if !ok {
		return 0, newMissingParameterError("placeAtom", "bond", []int{pl.atom, pl.bondAt})
	}
	at, ok := sys.AngleOn(pl.atom, pl.bondAt, pl.angleAt)
	if !ok {
		return 0, newMissingParameterError("placeAtom", "angle", []int{pl.atom, pl.bondAt, pl.angleAt})
	}
	torsions := sys.TorsionsOn(pl.atom, pl.bondAt, pl.angleAt, pl.torsAt)
	rDist := distuv.Normal{Mu: bt.R0, Sigma: 1 / math.Sqrt(2*beta*bt.K), Src: distSource{rng}}
	thetaDist := distuv.Normal{Mu: at.Theta0, Sigma: 1 / math.Sqrt(2*beta*at.K), Src: distSource{rng}}
	grid := E.torsionGrid(torsions, beta)

	var r, theta, phi, detJ float64
	if sample {
		r = rDist.Rand()
		theta = thetaDist.Rand()
		var err error
		phi, err = E.samplePhi(grid, rng)
		if err != nil {
			return 0, chem.DecorateError(err, "placeAtom")
		}
		newPos, dj, err := v3.InternalToCartesian(pos.VecView(pl.bondAt), pos.VecView(pl.angleAt), pos.VecView(pl.torsAt), r, theta, phi)
		if err != nil {
			return 0, numericErrorf("placeAtom", "atom %d: %v", pl.atom, err)
		}
		for k := 0; k < 3; k++ {
			if c := newPos.At(0, k); math.IsNaN(c) || math.IsInf(c, 0) {
				return 0, numericErrorf("placeAtom", "atom %d got a non-finite coordinate", pl.atom)
			}
		}
		pos.SetVec(pl.atom, newPos)
		detJ = dj
	} else {
		var err error
		r, theta, phi, detJ, err = v3.CartesianToInternal(pos.VecView(pl.atom),
			pos.VecView(pl.bondAt), pos.VecView(pl.angleAt), pos.VecView(pl.torsAt))
		if err != nil {
			return 0, numericErrorf("placeAtom", "atom %d: %v", pl.atom, err)
		}
	}
	if detJ <= 0 {
		return 0, numericErrorf("placeAtom", "atom %d: degenerate Jacobian", pl.atom)
	}
	logp := rDist.LogProb(r) + thetaDist.LogProb(theta) + grid.logProb(phi) + math.Log(detJ)
	if math.IsNaN(logp) || math.IsInf(logp, 0) {
		return 0, numericErrorf("placeAtom", "atom %d: non-finite log probability", pl.atom)
	}
	return logp, nil
}

// torsionDensity is the normalized Boltzmann density of a torsion angle,
// discretized for normalization and rejection sampling.
type torsionDensity struct {
	terms []ff.PeriodicTorsion
	beta  float64
	logZ  float64
	pmax  float64 //maximum of the normalized density over the grid
}

// torsionGrid tabulates exp(-beta U(phi)) over the torsion grid and
// normalizes it by trapezoid integration. With no torsion terms the density
// is flat and Z is 2 pi.
func (E *Engine) torsionGrid(terms []ff.PeriodicTorsion, beta float64) *torsionDensity {
	xs := make([]float64, E.grid)
	ys := make([]float64, E.grid)
	floats.Span(xs, 0, 2*math.Pi)
	d := &torsionDensity{terms: terms, beta: beta}
	for i, x := range xs {
		ys[i] = math.Exp(-beta * d.energy(x))
	}
	z := integrate.Trapezoidal(xs, ys)
	d.logZ = math.Log(z)
	d.pmax = floats.Max(ys) / z
	return d
}

func (d *torsionDensity) energy(phi float64) float64 {
	var u float64
	for _, t := range d.terms {
		u += t.Barrier * (1 + math.Cos(float64(t.Periodicity)*phi-t.Phase))
	}
	return u
}

func (d *torsionDensity) logProb(phi float64) float64 {
	return -d.beta*d.energy(phi) - d.logZ
}

// samplePhi draws a torsion angle by rejection against the flat envelope
// topped at the density maximum. The iteration cap turns a pathological
// density into an ExhaustedSamplerError instead of a biased sample.
func (E *Engine) samplePhi(d *torsionDensity, rng *rand.Rand) (float64, error) {
	for i := 0; i < E.maxReject; i++ {
		phi := rng.Float64() * 2 * math.Pi
		if rng.Float64()*d.pmax <= math.Exp(d.logProb(phi)) {
			return phi, nil
		}
	}
	return 0, &ExhaustedSamplerError{
		CError:     chem.NewError("samplePhi", fmt.Sprintf("rejection sampler exhausted after %d iterations", E.maxReject)),
		Iterations: E.maxReject,
	}
}
