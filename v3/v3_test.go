/*
 * v3_test.go, part of expanded-ensembles.
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
	"math"
	"testing"
)

func vec(x, y, z float64) *Matrix {
	m, _ := NewMatrix([]float64{x, y, z})
	return m
}

func TestAngle(Te *testing.T) {
	a := vec(1, 0, 0)
	b := vec(0, 1, 0)
	if ang := Angle(a, b); math.Abs(ang-math.Pi/2) > 1e-12 {
		Te.Errorf("right angle came out as %v", ang)
	}
	if ang := Angle(a, a); ang != 0 {
		Te.Errorf("parallel vectors gave angle %v", ang)
	}
}

func TestDihedral(Te *testing.T) {
	//a staggered arrangement: the dihedral a-b-c-d is 180 degrees
	a := vec(0, 1, 0)
	b := vec(0, 0, 0)
	c := vec(1, 0, 0)
	d := vec(1, -1, 0)
	if dih := Dihedral(a, b, c, d); math.Abs(math.Abs(dih)-math.Pi) > 1e-10 {
		Te.Errorf("staggered dihedral came out as %v", dih)
	}
	//eclipsed: 0 degrees
	d2 := vec(1, 1, 0)
	if dih := Dihedral(a, b, c, d2); math.Abs(dih) > 1e-10 {
		Te.Errorf("eclipsed dihedral came out as %v", dih)
	}
}

// The internal and Cartesian conversions must invert each other exactly, as
// the reverse proposal probabilities are evaluated on recovered internals.
func TestInternalCartesianRoundTrip(Te *testing.T) {
	bondPos := vec(0.1, 0.2, -0.05)
	anglePos := vec(0.25, 0.21, 0.0)
	torsionPos := vec(0.31, 0.35, 0.02)
	cases := []struct{ r, theta, phi float64 }{
		{0.109, 1.91, 0.3},
		{0.153, 1.91, math.Pi},
		{0.152, 2.0, 5.9},
		{0.2, 0.5, 0.0},
	}
	for _, c := range cases {
		pos, detJ, err := InternalToCartesian(bondPos, anglePos, torsionPos, c.r, c.theta, c.phi)
		if err != nil {
			Te.Fatal(err)
		}
		wantJ := c.r * c.r * math.Sin(c.theta)
		if math.Abs(detJ-wantJ) > 1e-12 {
			Te.Errorf("detJ %v, want %v", detJ, wantJ)
		}
		r, theta, phi, detJ2, err := CartesianToInternal(pos, bondPos, anglePos, torsionPos)
		if err != nil {
			Te.Fatal(err)
		}
		if math.Abs(r-c.r) > 1e-10 || math.Abs(theta-c.theta) > 1e-10 || math.Abs(phi-c.phi) > 1e-9 {
			Te.Errorf("round trip gave (%v %v %v), want (%v %v %v)", r, theta, phi, c.r, c.theta, c.phi)
		}
		if math.Abs(detJ2-detJ) > 1e-10 {
			Te.Errorf("Jacobians disagree between directions: %v vs %v", detJ, detJ2)
		}
	}
}

func TestInternalToCartesianDegenerate(Te *testing.T) {
	//collinear references leave the torsion plane undefined
	a := vec(0, 0, 0)
	b := vec(0.1, 0, 0)
	c := vec(0.2, 0, 0)
	if _, _, err := InternalToCartesian(a, b, c, 0.1, 1.9, 0.5); err == nil {
		Te.Error("expected an error for collinear reference atoms")
	}
}

func TestSomeVecs(Te *testing.T) {
	A, _ := NewMatrix([]float64{
		0, 0, 0,
		1, 1, 1,
		2, 2, 2,
		3, 3, 3,
	})
	sel := Zeros(2)
	sel.SomeVecs(A, []int{3, 1})
	if sel.At(0, 0) != 3 || sel.At(1, 2) != 1 {
		Te.Errorf("selection picked the wrong vectors: %v", sel)
	}
}

func TestUnit(Te *testing.T) {
	a := vec(3, 0, 4)
	u := Zeros(1)
	n := u.Unit(a)
	if n != 5 {
		Te.Errorf("norm %v, want 5", n)
	}
	if math.Abs(u.Norm(2)-1) > 1e-12 {
		Te.Errorf("unit vector has norm %v", u.Norm(2))
	}
}
