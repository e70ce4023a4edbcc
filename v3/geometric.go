/*
 * geometric.go, part of expanded-ensembles.
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

package v3

import (
	"fmt"
	"math"
)

// Angle takes 2 vectors and calculates the angle in radians between them.
func Angle(v1, v2 *Matrix) float64 {
	normproduct := v1.Norm(2) * v2.Norm(2)
	argument := v1.Dot(v2) / normproduct
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.0
	}
	return angle
}

// Dihedral calculates the dihedral between the points a, b, c, d, where the
// first plane is defined by abc and the second by bcd.
func Dihedral(a, b, c, d *Matrix) float64 {
	all := []*Matrix{a, b, c, d}
	for number, point := range all {
		if point == nil {
			panic(fmt.Sprintf("v3: Dihedral: vector %d is nil", number))
		}
		if point.NVecs() != 1 {
			panic(fmt.Sprintf("v3: Dihedral: vector %d has invalid shape", number))
		}
	}
	bma := Zeros(1)
	cmb := Zeros(1)
	dmc := Zeros(1)
	bmascaled := Zeros(1)
	bma.Sub(b, a)
	cmb.Sub(c, b)
	dmc.Sub(d, c)
	bmascaled.Scale(cmb.Norm(2), bma)
	v1 := Zeros(1)
	v2 := Zeros(1)
	v1.Cross(cmb, dmc)
	first := bmascaled.Dot(v1)
	v1.Cross(bma, cmb)
	v2.Cross(cmb, dmc)
	second := v1.Dot(v2)
	return math.Atan2(first, second)
}

/*The internal-coordinate conversions below share one local frame, so they are
exact inverses of each other. For an atom D placed against reference atoms
A (bond), B (angle) and C (torsion):

	r     = |D-A|
	theta = angle D-A-B
	phi   = rotation of D about the A-B axis, measured from the C-B-A plane

The frame at A is (bc, m, n) with bc the unit vector from B to A, n the unit
normal of the C-B-A plane and m completing the right-handed set. The absolute
Jacobian determinant of (r,theta,phi) -> (x,y,z) is the standard spherical
volume element r^2*sin(theta).*/

// frame computes the right-handed local frame at bondPos. It errors when the
// three reference atoms are collinear, since then the torsion plane is
// undefined.
func frame(bondPos, anglePos, torsionPos *Matrix) (bc, m, n *Matrix, err error) {
	bc = Zeros(1)
	bc.Sub(bondPos, anglePos)
	if bc.Norm(2) <= appzero {
		return nil, nil, nil, fmt.Errorf("v3: coincident bond and angle reference atoms")
	}
	bc.Scale(1/bc.Norm(2), bc)
	t := Zeros(1)
	t.Sub(anglePos, torsionPos)
	n = Zeros(1)
	n.Cross(t, bc)
	if n.Norm(2) <= appzero {
		return nil, nil, nil, fmt.Errorf("v3: collinear reference atoms, torsion plane undefined")
	}
	n.Scale(1/n.Norm(2), n)
	m = Zeros(1)
	m.Cross(n, bc)
	return bc, m, n, nil
}

// InternalToCartesian converts the internal coordinate (r, theta, phi),
// anchored at the three reference positions, to a Cartesian position. It
// returns the new position and the absolute Jacobian determinant r^2*sin(theta)
// of the transform.
func InternalToCartesian(bondPos, anglePos, torsionPos *Matrix, r, theta, phi float64) (*Matrix, float64, error) {
	bc, m, n, err := frame(bondPos, anglePos, torsionPos)
	if err != nil {
		return nil, 0, err
	}
	x := -r * math.Cos(theta)
	y := r * math.Sin(theta) * math.Cos(phi)
	z := r * math.Sin(theta) * math.Sin(phi)
	pos := Zeros(1)
	for k := 0; k < 3; k++ {
		pos.Set(0, k, bondPos.At(0, k)+x*bc.At(0, k)+y*m.At(0, k)+z*n.At(0, k))
	}
	detJ := r * r * math.Sin(theta)
	return pos, math.Abs(detJ), nil
}

// CartesianToInternal recovers (r, theta, phi) for the position atomPos
// against the three reference positions, under the same frame convention as
// InternalToCartesian, plus the absolute Jacobian determinant r^2*sin(theta)
// of the forward transform evaluated at those internals.
func CartesianToInternal(atomPos, bondPos, anglePos, torsionPos *Matrix) (r, theta, phi, detJ float64, err error) {
	bc, m, n, err := frame(bondPos, anglePos, torsionPos)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	v := Zeros(1)
	v.Sub(atomPos, bondPos)
	r = v.Norm(2)
	if r <= appzero {
		return 0, 0, 0, 0, fmt.Errorf("v3: atom coincides with its bond reference atom")
	}
	x := v.Dot(bc)
	y := v.Dot(m)
	z := v.Dot(n)
	arg := -x / r
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	theta = math.Acos(arg)
	phi = math.Atan2(z, y)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	detJ = math.Abs(r * r * math.Sin(theta))
	return r, theta, phi, detJ, nil
}
