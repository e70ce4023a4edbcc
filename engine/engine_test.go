/*
 * engine_test.go, part of expanded-ensembles.
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

package engine

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/choderalab/expanded-ensembles/ff"
	v3 "github.com/choderalab/expanded-ensembles/v3"
)

// diatomic is two particles on a stiff harmonic bond, the smallest system
// with a restoring force.
func diatomic() *ff.System {
	sys := ff.NewSystem()
	sys.AddParticle(ff.Particle{Mass: 12})
	sys.AddParticle(ff.Particle{Mass: 12})
	sys.AddBond(ff.HarmonicBond{At1: 0, At2: 1, R0: 0.15, K: 1000})
	sys.AddException(ff.Exception{At1: 0, At2: 1})
	return sys
}

func stretched() *v3.Matrix {
	m, _ := v3.NewMatrix([]float64{
		0, 0, 0,
		0.25, 0, 0,
	})
	return m
}

func TestForcesMatchAnalytic(Te *testing.T) {
	ctx, err := NewContext(diatomic(), nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if err := ctx.SetPositions(stretched()); err != nil {
		Te.Fatal(err)
	}
	f, err := ctx.Forces()
	if err != nil {
		Te.Fatal(err)
	}
	//dE/dx on particle 1 is k(r-r0) along the bond
	want := -1000 * (0.25 - 0.15)
	if got := f.At(1, 0); math.Abs(got-want) > 1e-3 {
		Te.Errorf("force on the stretched particle is %v, want %v", got, want)
	}
	if got := f.At(0, 0); math.Abs(got+want) > 1e-3 {
		Te.Errorf("forces are not equal and opposite: %v vs %v", f.At(0, 0), f.At(1, 0))
	}
	for _, k := range []int{1, 2} {
		if math.Abs(f.At(0, k)) > 1e-3 || math.Abs(f.At(1, k)) > 1e-3 {
			Te.Error("off-axis force on an axial bond")
		}
	}
}

func TestMinimize(Te *testing.T) {
	ctx, err := NewContext(diatomic(), nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if err := ctx.SetPositions(stretched()); err != nil {
		Te.Fatal(err)
	}
	before, err := ctx.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	if err := ctx.Minimize(500, 0.1); err != nil {
		Te.Fatal(err)
	}
	after, err := ctx.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	if after >= before {
		Te.Errorf("minimization went from %v to %v", before, after)
	}
	//the bond should relax to its equilibrium length
	pos, err := ctx.Positions()
	if err != nil {
		Te.Fatal(err)
	}
	d := v3.Zeros(1)
	d.Sub(pos.VecView(1), pos.VecView(0))
	if r := d.Norm(2); math.Abs(r-0.15) > 1e-3 {
		Te.Errorf("minimized bond length %v, want 0.15", r)
	}
}

func TestBrownianStep(Te *testing.T) {
	integ := &BrownianIntegrator{Timestep: 0.001, Friction: 100, Temperature: 300}
	ctx, err := NewContext(diatomic(), integ, rand.New(rand.NewPCG(81, 83)))
	if err != nil {
		Te.Fatal(err)
	}
	if err := ctx.SetPositions(stretched()); err != nil {
		Te.Fatal(err)
	}
	if err := ctx.Step(50); err != nil {
		Te.Fatal(err)
	}
	pos, err := ctx.Positions()
	if err != nil {
		Te.Fatal(err)
	}
	moved := false
	for i := 0; i < 2; i++ {
		for k := 0; k < 3; k++ {
			c := pos.At(i, k)
			if math.IsNaN(c) || math.IsInf(c, 0) {
				Te.Fatal("integration produced a non-finite coordinate")
			}
			if c != stretched().At(i, k) {
				moved = true
			}
		}
	}
	if !moved {
		Te.Error("fifty steps at 300 K moved nothing")
	}
}

func TestContextValidation(Te *testing.T) {
	if _, err := NewContext(nil, nil, nil); err == nil {
		Te.Error("nil system accepted")
	}
	bad := &BrownianIntegrator{Timestep: -1, Friction: 1, Temperature: 300}
	if _, err := NewContext(diatomic(), bad, nil); err == nil {
		Te.Error("negative timestep accepted")
	}
	ctx, err := NewContext(diatomic(), nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := ctx.Energy(); err == nil {
		Te.Error("energy without positions accepted")
	}
	if err := ctx.SetPositions(v3.Zeros(5)); err == nil {
		Te.Error("wrong position count accepted")
	}
	if err := ctx.SetPositions(stretched()); err != nil {
		Te.Fatal(err)
	}
	if err := ctx.Step(1); err == nil {
		Te.Error("stepping without an integrator accepted")
	}
}
