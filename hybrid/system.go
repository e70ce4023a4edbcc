/*
 * system.go, part of expanded-ensembles.
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
	"fmt"
	"math"
	"sort"

	"github.com/choderalab/expanded-ensembles/chem"
	"github.com/choderalab/expanded-ensembles/ff"
	v3 "github.com/choderalab/expanded-ensembles/v3"
)

// Region classifies a hybrid particle by which end states it exists in and
// whether its parameters change between them.
type Region int

const (
	//Environment atoms exist in both states with identical parameters.
	Environment Region = iota
	//Core atoms exist in both states with different parameters.
	Core
	//UniqueOld atoms exist only in the old state.
	UniqueOld
	//UniqueNew atoms exist only in the new state.
	UniqueNew
)

func (r Region) String() string {
	switch r {
	case Environment:
		return "environment"
	case Core:
		return "core"
	case UniqueOld:
		return "unique-old"
	case UniqueNew:
		return "unique-new"
	}
	return fmt.Sprintf("Region(%d)", int(r))
}

type particle struct {
	mass   float64
	region Region
	old    ff.Particle //zero interaction for unique-new atoms
	new    ff.Particle //zero interaction for unique-old atoms
}

type termClass int

const (
	classUnchanged termClass = iota
	classCore
	classOldOnly
	classNewOnly
)

type bondTerm struct {
	at1, at2    int
	cls         termClass
	r0Old, kOld float64
	r0New, kNew float64
}

type angleTerm struct {
	at1, at2, at3 int
	cls           termClass
	t0Old, kOld   float64
	t0New, kNew   float64
}

type torsionTerm struct {
	at1, at2, at3, at4 int
	cls                termClass //unchanged, old-only or new-only; never core
	periodicity        int
	phase              float64
	barrier            float64
}

type excClass int

const (
	excCore excClass = iota //both atoms mapped: interpolate endpoints
	excOld                  //involves a unique-old atom: gated by the delete lambdas
	excNew                  //involves a unique-new atom: gated by the insert lambdas
)

type exceptionTerm struct {
	at1, at2              int
	cls                   excClass
	qpOld, sigOld, epsOld float64
	qpNew, sigNew, epsNew float64
}

// System is a frozen hybrid of two end states. Term lists never change after
// construction; only the global lambda table is mutable, through
// SetGlobalParameter (normally via an AlchemicalState).
type System struct {
	particles  []particle
	bonds      []bondTerm
	angles     []angleTerm
	torsions   []torsionTerm
	exceptions []exceptionTerm

	//pairs whose regular nonbonded interaction is replaced by an exception
	override    map[[2]int]bool
	oldToHybrid []int
	newToHybrid []int
	uniqueOld   []int //hybrid indices, sorted
	uniqueNew   []int
	globals     map[string]float64
	alpha       float64 //softcore alpha
	box         []float64
	barostat    *ff.MonteCarloBarostat
	initPos     *v3.Matrix
}

// NumParticles returns the number of hybrid particles.
func (S *System) NumParticles() int {
	return len(S.particles)
}

// NumOldAtoms returns the particle count of the old end state.
func (S *System) NumOldAtoms() int { return len(S.oldToHybrid) }

// NumNewAtoms returns the particle count of the new end state.
func (S *System) NumNewAtoms() int { return len(S.newToHybrid) }

// ParticleRegion returns the region of hybrid particle i.
func (S *System) ParticleRegion(i int) Region {
	return S.particles[i].region
}

// UniqueOldAtoms returns the hybrid indices of the atoms only the old state
// has, sorted.
func (S *System) UniqueOldAtoms() []int {
	return append([]int(nil), S.uniqueOld...)
}

// UniqueNewAtoms returns the hybrid indices of the atoms only the new state
// has, sorted.
func (S *System) UniqueNewAtoms() []int {
	return append([]int(nil), S.uniqueNew...)
}

// OldToHybrid returns the hybrid index of old-state atom i.
func (S *System) OldToHybrid(i int) int { return S.oldToHybrid[i] }

// NewToHybrid returns the hybrid index of new-state atom i.
func (S *System) NewToHybrid(i int) int { return S.newToHybrid[i] }

// Box returns the periodic box vectors, or nil.
func (S *System) Box() []float64 { return S.box }

// GetBarostat returns the barostat carried over from the end states, or nil.
func (S *System) GetBarostat() *ff.MonteCarloBarostat { return S.barostat }

// GlobalParameterNames returns the names of the global lambda parameters,
// sorted.
func (S *System) GlobalParameterNames() []string {
	names := make([]string, 0, len(S.globals))
	for n := range S.globals {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// GetGlobalParameter returns the value of a named lambda.
func (S *System) GetGlobalParameter(name string) (float64, error) {
	v, ok := S.globals[name]
	if !ok {
		return 0, configErrorf("GetGlobalParameter", "unknown global parameter %q", name)
	}
	return v, nil
}

// SetGlobalParameter sets a named lambda. Values must stay in [0,1].
func (S *System) SetGlobalParameter(name string, v float64) error {
	if _, ok := S.globals[name]; !ok {
		return configErrorf("SetGlobalParameter", "unknown global parameter %q", name)
	}
	if v < 0 || v > 1 {
		return configErrorf("SetGlobalParameter", "%s=%v outside [0,1]", name, v)
	}
	S.globals[name] = v
	return nil
}

// InitialPositions returns a copy of the hybrid coordinates the system was
// built with.
func (S *System) InitialPositions() *v3.Matrix {
	return S.initPos.Clone()
}

// HybridPositions assembles the hybrid coordinate array from the two end
// state coordinate sets. Mapped and unique-old atoms take old coordinates,
// unique-new atoms take new coordinates. Pure index selection.
func (S *System) HybridPositions(oldPositions, newPositions *v3.Matrix) (*v3.Matrix, error) {
	if oldPositions.NVecs() != S.NumOldAtoms() {
		return nil, chem.NewError("HybridPositions",
			fmt.Sprintf("old positions have %d rows for %d atoms", oldPositions.NVecs(), S.NumOldAtoms()))
	}
	if newPositions.NVecs() != S.NumNewAtoms() {
		return nil, chem.NewError("HybridPositions",
			fmt.Sprintf("new positions have %d rows for %d atoms", newPositions.NVecs(), S.NumNewAtoms()))
	}
	out := v3.Zeros(S.NumParticles())
	for i, h := range S.oldToHybrid {
		out.SetVec(h, oldPositions.VecView(i))
	}
	for i, h := range S.newToHybrid {
		if S.particles[h].region == UniqueNew {
			out.SetVec(h, newPositions.VecView(i))
		}
	}
	return out, nil
}

// OldPositions projects hybrid coordinates onto the old end state's atom
// order. Pure index selection, no recomputation.
func (S *System) OldPositions(hybrid *v3.Matrix) *v3.Matrix {
	out := v3.Zeros(len(S.oldToHybrid))
	out.SomeVecs(hybrid, S.oldToHybrid)
	return out
}

// NewPositions projects hybrid coordinates onto the new end state's atom
// order. Pure index selection, no recomputation.
func (S *System) NewPositions(hybrid *v3.Matrix) *v3.Matrix {
	out := v3.Zeros(len(S.newToHybrid))
	out.SomeVecs(hybrid, S.newToHybrid)
	return out
}

// PotentialEnergy evaluates the hybrid potential at the given coordinates
// and the current global lambdas, in kJ/mol.
func (S *System) PotentialEnergy(coord *v3.Matrix) (float64, error) {
	if coord.NVecs() != S.NumParticles() {
		return 0, chem.NewError("PotentialEnergy",
			fmt.Sprintf("coordinates have %d rows for %d particles", coord.NVecs(), S.NumParticles()))
	}
	e := S.bondEnergy(coord) + S.angleEnergy(coord) + S.torsionEnergy(coord)
	nb, err := S.nonbondedEnergy(coord)
	if err != nil {
		return 0, chem.DecorateError(err, "PotentialEnergy")
	}
	e += nb
	if math.IsNaN(e) || math.IsInf(e, 0) {
		return 0, numericErrorf("PotentialEnergy", "potential energy is not finite: %v", e)
	}
	return e, nil
}

func (S *System) bondEnergy(coord *v3.Matrix) float64 {
	lb := S.globals[LambdaBonds]
	var e float64
	d := v3.Zeros(1)
	for _, b := range S.bonds {
		var r0, k float64
		switch b.cls {
		case classUnchanged:
			r0, k = b.r0Old, b.kOld
		case classCore:
			r0 = (1-lb)*b.r0Old + lb*b.r0New
			k = (1-lb)*b.kOld + lb*b.kNew
		case classOldOnly:
			r0, k = b.r0Old, (1-lb)*b.kOld
		case classNewOnly:
			r0, k = b.r0New, lb*b.kNew
		}
		d.Sub(coord.VecView(b.at2), coord.VecView(b.at1))
		r := d.Norm(2)
		e += 0.5 * k * (r - r0) * (r - r0)
	}
	return e
}

func (S *System) angleEnergy(coord *v3.Matrix) float64 {
	la := S.globals[LambdaAngles]
	var e float64
	v1 := v3.Zeros(1)
	v2 := v3.Zeros(1)
	for _, a := range S.angles {
		var t0, k float64
		switch a.cls {
		case classUnchanged:
			t0, k = a.t0Old, a.kOld
		case classCore:
			t0 = (1-la)*a.t0Old + la*a.t0New
			k = (1-la)*a.kOld + la*a.kNew
		case classOldOnly:
			t0, k = a.t0Old, (1-la)*a.kOld
		case classNewOnly:
			t0, k = a.t0New, la*a.kNew
		}
		v1.Sub(coord.VecView(a.at1), coord.VecView(a.at2))
		v2.Sub(coord.VecView(a.at3), coord.VecView(a.at2))
		theta := v3.Angle(v1, v2)
		e += 0.5 * k * (theta - t0) * (theta - t0)
	}
	return e
}

func (S *System) torsionEnergy(coord *v3.Matrix) float64 {
	lt := S.globals[LambdaTorsions]
	var e float64
	for _, t := range S.torsions {
		barrier := t.barrier
		switch t.cls {
		case classOldOnly:
			barrier *= 1 - lt
		case classNewOnly:
			barrier *= lt
		}
		if barrier == 0 {
			continue
		}
		phi := v3.Dihedral(coord.VecView(t.at1), coord.VecView(t.at2),
			coord.VecView(t.at3), coord.VecView(t.at4))
		e += barrier * (1 + math.Cos(float64(t.periodicity)*phi-t.phase))
	}
	return e
}

// effParams returns the nonbonded parameters of hybrid particle i at the
// current core lambdas. Unique atoms keep their full single-state
// parameters; their scaling happens per pair, through the coupling factors.
func (S *System) effParams(i int) (q, sigma, eps float64) {
	p := S.particles[i]
	switch p.region {
	case UniqueOld:
		return p.old.Charge, p.old.Sigma, p.old.Epsilon
	case UniqueNew:
		return p.new.Charge, p.new.Sigma, p.new.Epsilon
	case Environment:
		return p.old.Charge, p.old.Sigma, p.old.Epsilon
	}
	lsc := S.globals[LambdaStericsCore]
	lec := S.globals[LambdaElectrostaticsCore]
	q = (1-lec)*p.old.Charge + lec*p.new.Charge
	sigma = (1-lsc)*p.old.Sigma + lsc*p.new.Sigma
	eps = (1-lsc)*p.old.Epsilon + lsc*p.new.Epsilon
	return q, sigma, eps
}

// coupling returns the steric and electrostatic pair coupling factors for a
// pair of regions. 1 means fully interacting.
func (S *System) coupling(ri, rj Region) (cs, ce float64) {
	if ri == UniqueNew || rj == UniqueNew {
		return S.globals[LambdaStericsInsert], S.globals[LambdaElectrostaticsInsert]
	}
	if ri == UniqueOld || rj == UniqueOld {
		return 1 - S.globals[LambdaStericsDelete], 1 - S.globals[LambdaElectrostaticsDelete]
	}
	return 1, 1
}

// softcoreLJ is the Beutler form: finite at r=0 for any coupling below 1,
// exactly Lennard-Jones at coupling 1, identically zero at coupling 0.
func (S *System) softcoreLJ(r, sigma, eps, coupling float64) float64 {
	if eps == 0 || coupling == 0 {
		return 0
	}
	r6 := math.Pow(r, 6)
	s6 := math.Pow(sigma, 6)
	frac := s6 / (S.alpha*(1-coupling)*s6 + r6)
	return 4 * eps * coupling * (frac*frac - frac)
}

func (S *System) nonbondedEnergy(coord *v3.Matrix) (float64, error) {
	n := S.NumParticles()
	var e float64
	d := v3.Zeros(1)
	for i := 0; i < n; i++ {
		qi, sigi, epsi := S.effParams(i)
		for j := i + 1; j < n; j++ {
			if S.override[pairKey(i, j)] {
				continue
			}
			ri := S.particles[i].region
			rj := S.particles[j].region
			if (ri == UniqueOld && rj == UniqueNew) || (ri == UniqueNew && rj == UniqueOld) {
				continue
			}
			cs, ce := S.coupling(ri, rj)
			if cs == 0 && ce == 0 {
				continue
			}
			qj, sigj, epsj := S.effParams(j)
			d.Sub(coord.VecView(j), coord.VecView(i))
			r := d.Norm(2)
			if r <= 0 {
				return 0, numericErrorf("nonbondedEnergy", "particles %d and %d overlap exactly", i, j)
			}
			e += S.softcoreLJ(r, 0.5*(sigi+sigj), math.Sqrt(epsi*epsj), cs)
			e += ce * ff.ONE_4PI_EPS0 * qi * qj / r
		}
	}
	ex, err := S.exceptionEnergy(coord)
	if err != nil {
		return 0, err
	}
	return e + ex, nil
}

func (S *System) exceptionEnergy(coord *v3.Matrix) (float64, error) {
	lsc := S.globals[LambdaStericsCore]
	lec := S.globals[LambdaElectrostaticsCore]
	lsi := S.globals[LambdaStericsInsert]
	lei := S.globals[LambdaElectrostaticsInsert]
	lsd := S.globals[LambdaStericsDelete]
	led := S.globals[LambdaElectrostaticsDelete]
	var e float64
	d := v3.Zeros(1)
	for _, ex := range S.exceptions {
		var qp, sigma, eps float64
		switch ex.cls {
		case excCore:
			qp = (1-lec)*ex.qpOld + lec*ex.qpNew
			sigma = (1-lsc)*ex.sigOld + lsc*ex.sigNew
			eps = (1-lsc)*ex.epsOld + lsc*ex.epsNew
		case excOld:
			qp = (1 - led) * ex.qpOld
			sigma = ex.sigOld
			eps = (1 - lsd) * ex.epsOld
		case excNew:
			qp = lei * ex.qpNew
			sigma = ex.sigNew
			eps = lsi * ex.epsNew
		}
		if qp == 0 && eps == 0 {
			continue
		}
		d.Sub(coord.VecView(ex.at2), coord.VecView(ex.at1))
		r := d.Norm(2)
		if r <= 0 {
			return 0, numericErrorf("exceptionEnergy", "particles %d and %d overlap exactly", ex.at1, ex.at2)
		}
		sr6 := math.Pow(sigma/r, 6)
		e += 4*eps*(sr6*sr6-sr6) + ff.ONE_4PI_EPS0*qp/r
	}
	return e, nil
}

func pairKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}
