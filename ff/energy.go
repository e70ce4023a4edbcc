/*
 * energy.go, part of expanded-ensembles.
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

package ff

import (
	"fmt"
	"math"

	"github.com/choderalab/expanded-ensembles/chem"
	v3 "github.com/choderalab/expanded-ensembles/v3"
)

// ONE_4PI_EPS0 is the Coulomb constant in kJ/mol nm e^-2.
const ONE_4PI_EPS0 = 138.935456

// pairKey builds an order-insensitive key for a particle pair.
func pairKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}

// PotentialEnergy evaluates the full potential at the given coordinates, in
// kJ/mol. All pairs interact through Lorentz-Berthelot combination unless an
// exception replaces (or excludes) the pair. No cutoff is applied.
//
// The evaluation is direct-space and quadratic in the number of particles,
// which is fine for the validation work this library does with it.
func (S *System) PotentialEnergy(coord *v3.Matrix) (float64, error) {
	n := S.NumParticles()
	if coord.NVecs() != n {
		return 0, chem.NewError("PotentialEnergy",
			fmt.Sprintf("coordinates have %d rows for %d particles", coord.NVecs(), n))
	}
	var energy float64
	energy += S.bondEnergy(coord)
	energy += S.angleEnergy(coord)
	energy += S.torsionEnergy(coord)
	nb, err := S.nonbondedEnergy(coord)
	if err != nil {
		return 0, chem.DecorateError(err, "PotentialEnergy")
	}
	energy += nb
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return 0, numericErrorf("PotentialEnergy", "potential energy is not finite: %v", energy)
	}
	return energy, nil
}

func (S *System) bondEnergy(coord *v3.Matrix) float64 {
	var e float64
	d := v3.Zeros(1)
	for _, b := range S.bonds {
		d.Sub(coord.VecView(b.At2), coord.VecView(b.At1))
		r := d.Norm(2)
		e += 0.5 * b.K * (r - b.R0) * (r - b.R0)
	}
	return e
}

func (S *System) angleEnergy(coord *v3.Matrix) float64 {
	var e float64
	v1 := v3.Zeros(1)
	v2 := v3.Zeros(1)
	for _, a := range S.angles {
		v1.Sub(coord.VecView(a.At1), coord.VecView(a.At2))
		v2.Sub(coord.VecView(a.At3), coord.VecView(a.At2))
		theta := v3.Angle(v1, v2)
		e += 0.5 * a.K * (theta - a.Theta0) * (theta - a.Theta0)
	}
	return e
}

func (S *System) torsionEnergy(coord *v3.Matrix) float64 {
	var e float64
	for _, t := range S.torsions {
		phi := v3.Dihedral(coord.VecView(t.At1), coord.VecView(t.At2),
			coord.VecView(t.At3), coord.VecView(t.At4))
		e += t.Barrier * (1 + math.Cos(float64(t.Periodicity)*phi-t.Phase))
	}
	return e
}

func (S *System) nonbondedEnergy(coord *v3.Matrix) (float64, error) {
	n := S.NumParticles()
	excep := make(map[[2]int]Exception, len(S.exceptions))
	for _, ex := range S.exceptions {
		excep[pairKey(ex.At1, ex.At2)] = ex
	}
	var e float64
	d := v3.Zeros(1)
	for i := 0; i < n; i++ {
		pi := S.particles[i]
		for j := i + 1; j < n; j++ {
			var chargeProd, sigma, epsilon float64
			if ex, ok := excep[pairKey(i, j)]; ok {
				chargeProd = ex.ChargeProd
				sigma = ex.Sigma
				epsilon = ex.Epsilon
			} else {
				pj := S.particles[j]
				chargeProd = pi.Charge * pj.Charge
				sigma = 0.5 * (pi.Sigma + pj.Sigma)
				epsilon = math.Sqrt(pi.Epsilon * pj.Epsilon)
			}
			if chargeProd == 0 && epsilon == 0 {
				continue
			}
			d.Sub(coord.VecView(j), coord.VecView(i))
			r := d.Norm(2)
			if r <= 0 {
				return 0, numericErrorf("nonbondedEnergy",
					"particles %d and %d overlap exactly", i, j)
			}
			sr6 := math.Pow(sigma/r, 6)
			e += 4*epsilon*(sr6*sr6-sr6) + ONE_4PI_EPS0*chargeProd/r
		}
	}
	return e, nil
}
