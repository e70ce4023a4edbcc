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

/*Package engine is a small pure-Go physics execution backend: it evaluates
energies and finite-difference forces for anything exposing the Energizer
interface, relaxes structures by steepest descent and advances them with an
overdamped (Brownian) integrator.

It exists to make the library self-validating. Production sampling belongs
to a real simulation engine; this one is for endstate checks, placement
sanity tests and small-system experiments, where a quadratic direct-space
evaluation is perfectly adequate.*/
package engine

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/choderalab/expanded-ensembles/chem"
	v3 "github.com/choderalab/expanded-ensembles/v3"
	"gonum.org/v1/gonum/stat/distuv"
)

// BoltzmannKJ is the Boltzmann constant in kJ/mol/K.
const BoltzmannKJ = 0.008314462618

// Energizer is what a system must expose to be simulated here. Both the
// plain and the hybrid system types satisfy it.
type Energizer interface {
	NumParticles() int
	PotentialEnergy(coord *v3.Matrix) (float64, error)
}

// BrownianIntegrator advances coordinates with overdamped Langevin dynamics:
// a drift along the force plus a thermal kick, no inertia. Timestep in ps,
// friction in 1/ps (per unit mass), temperature in K.
type BrownianIntegrator struct {
	Timestep    float64
	Friction    float64
	Temperature float64
}

// distSource adapts the context's random generator to the source interface
// gonum's distributions draw from. Seeding goes through the generator, never
// through the distribution.
type distSource struct {
	rng *rand.Rand
}

func (s distSource) Uint64() uint64 { return s.rng.Uint64() }

func (s distSource) Seed(uint64) {}

type numericError struct {
	*chem.CError
}

func (err *numericError) NumericProblem() {}

func numericErrorf(origin, format string, a ...interface{}) error {
	return &numericError{CError: chem.NewError(origin, fmt.Sprintf(format, a...))}
}

// Context owns the mutable simulation state for one Energizer: current
// coordinates and the random stream. Contexts must not be shared between
// concurrent replicas; the underlying Energizer may be.
type Context struct {
	sys   Energizer
	integ *BrownianIntegrator
	pos   *v3.Matrix
	rng   *rand.Rand
	h     float64 //finite-difference displacement, nm
}

// NewContext creates a context. The integrator may be nil if Step is never
// called.
func NewContext(sys Energizer, integ *BrownianIntegrator, rng *rand.Rand) (*Context, error) {
	if sys == nil {
		return nil, chem.NewError("NewContext", "nil system")
	}
	if integ != nil {
		if integ.Timestep <= 0 || integ.Friction <= 0 || integ.Temperature < 0 {
			return nil, chem.NewError("NewContext",
				fmt.Sprintf("bad integrator parameters: dt=%v friction=%v T=%v",
					integ.Timestep, integ.Friction, integ.Temperature))
		}
	}
	return &Context{sys: sys, integ: integ, rng: rng, h: 1e-5}, nil
}

// SetPositions copies the given coordinates into the context.
func (C *Context) SetPositions(coord *v3.Matrix) error {
	if coord.NVecs() != C.sys.NumParticles() {
		return chem.NewError("SetPositions",
			fmt.Sprintf("coordinates have %d rows for %d particles", coord.NVecs(), C.sys.NumParticles()))
	}
	C.pos = coord.Clone()
	return nil
}

// Positions returns a copy of the current coordinates.
func (C *Context) Positions() (*v3.Matrix, error) {
	if C.pos == nil {
		return nil, chem.NewError("Positions", "no positions set")
	}
	return C.pos.Clone(), nil
}

// Energy evaluates the potential at the current coordinates.
func (C *Context) Energy() (float64, error) {
	if C.pos == nil {
		return 0, chem.NewError("Energy", "no positions set")
	}
	e, err := C.sys.PotentialEnergy(C.pos)
	return e, chem.DecorateError(err, "Energy")
}

// Forces returns minus the energy gradient at the current coordinates, by
// central differences.
func (C *Context) Forces() (*v3.Matrix, error) {
	if C.pos == nil {
		return nil, chem.NewError("Forces", "no positions set")
	}
	f, err := C.forcesAt(C.pos)
	return f, chem.DecorateError(err, "Forces")
}

func (C *Context) forcesAt(pos *v3.Matrix) (*v3.Matrix, error) {
	n := C.sys.NumParticles()
	forces := v3.Zeros(n)
	work := pos.Clone()
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			orig := work.At(i, k)
			work.Set(i, k, orig+C.h)
			eplus, err := C.sys.PotentialEnergy(work)
			if err != nil {
				return nil, err
			}
			work.Set(i, k, orig-C.h)
			eminus, err := C.sys.PotentialEnergy(work)
			if err != nil {
				return nil, err
			}
			work.Set(i, k, orig)
			f := -(eplus - eminus) / (2 * C.h)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, numericErrorf("forcesAt", "non-finite force on particle %d", i)
			}
			forces.Set(i, k, f)
		}
	}
	return forces, nil
}

// Minimize relaxes the current coordinates by steepest descent with an
// adaptive step, until the force norm drops below ftol (kJ/mol/nm) or
// maxIter steps ran.
func (C *Context) Minimize(maxIter int, ftol float64) error {
	if C.pos == nil {
		return chem.NewError("Minimize", "no positions set")
	}
	step := 1e-4 //nm per unit force, adapted as we go
	e, err := C.sys.PotentialEnergy(C.pos)
	if err != nil {
		return chem.DecorateError(err, "Minimize")
	}
	for iter := 0; iter < maxIter; iter++ {
		forces, err := C.forcesAt(C.pos)
		if err != nil {
			return chem.DecorateError(err, "Minimize")
		}
		if forces.Norm(2) < ftol {
			return nil
		}
		trial := v3.Zeros(C.pos.NVecs())
		scaled := v3.Zeros(forces.NVecs())
		scaled.Scale(step, forces)
		trial.Add(C.pos, scaled)
		etrial, err := C.sys.PotentialEnergy(trial)
		if err == nil && etrial < e {
			C.pos = trial
			e = etrial
			step *= 1.2
			continue
		}
		step *= 0.5
		if step < 1e-12 {
			return nil //converged as far as the arithmetic allows
		}
	}
	return nil
}

// Step advances the coordinates n integrator steps.
func (C *Context) Step(n int) error {
	if C.pos == nil {
		return chem.NewError("Step", "no positions set")
	}
	if C.integ == nil {
		return chem.NewError("Step", "no integrator attached")
	}
	if C.rng == nil {
		return chem.NewError("Step", "no random source attached")
	}
	kick := math.Sqrt(2 * BoltzmannKJ * C.integ.Temperature * C.integ.Timestep / C.integ.Friction)
	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: distSource{C.rng}}
	np := C.pos.NVecs()
	for s := 0; s < n; s++ {
		forces, err := C.forcesAt(C.pos)
		if err != nil {
			return chem.DecorateError(err, "Step")
		}
		for i := 0; i < np; i++ {
			for k := 0; k < 3; k++ {
				x := C.pos.At(i, k) +
					C.integ.Timestep/C.integ.Friction*forces.At(i, k) +
					kick*noise.Rand()
				if math.IsNaN(x) || math.IsInf(x, 0) {
					return numericErrorf("Step", "non-finite coordinate for particle %d", i)
				}
				C.pos.Set(i, k, x)
			}
		}
	}
	return nil
}
