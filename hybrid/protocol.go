/*
 * protocol.go, part of expanded-ensembles.
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
	"sort"
)

// The named global lambda parameters of a hybrid system.
const (
	LambdaStericsCore          = "lambda_sterics_core"
	LambdaElectrostaticsCore   = "lambda_electrostatics_core"
	LambdaStericsInsert        = "lambda_sterics_insert"
	LambdaStericsDelete        = "lambda_sterics_delete"
	LambdaElectrostaticsInsert = "lambda_electrostatics_insert"
	LambdaElectrostaticsDelete = "lambda_electrostatics_delete"
	LambdaBonds                = "lambda_bonds"
	LambdaAngles               = "lambda_angles"
	LambdaTorsions             = "lambda_torsions"
)

// LambdaNames returns all lambda parameter names, sorted.
func LambdaNames() []string {
	names := []string{
		LambdaStericsCore, LambdaElectrostaticsCore,
		LambdaStericsInsert, LambdaStericsDelete,
		LambdaElectrostaticsInsert, LambdaElectrostaticsDelete,
		LambdaBonds, LambdaAngles, LambdaTorsions,
	}
	sort.Strings(names)
	return names
}

// LambdaFunc maps the master lambda in [0,1] to the value of one named
// lambda parameter.
type LambdaFunc func(master float64) float64

// LambdaProtocol maps one master lambda to all named lambda parameters.
// Protocols are validated eagerly at construction; a built protocol can be
// applied blindly.
type LambdaProtocol struct {
	fns map[string]LambdaFunc
}

// DefaultProtocol returns the staged protocol: core parameters and valence
// terms interpolate linearly over the whole switch, new sterics grow in
// during the first half, old electrostatics turn off during the first half,
// and the remaining two run over the second half. New charges thus never
// appear before their excluded volume exists, and old charges are gone
// before their excluded volume starts shrinking.
func DefaultProtocol() *LambdaProtocol {
	linear := func(x float64) float64 { return x }
	firstHalf := func(x float64) float64 {
		if x < 0.5 {
			return 2 * x
		}
		return 1
	}
	secondHalf := func(x float64) float64 {
		if x < 0.5 {
			return 0
		}
		return 2 * (x - 0.5)
	}
	p, err := NewProtocol(map[string]LambdaFunc{
		LambdaStericsCore:          linear,
		LambdaElectrostaticsCore:   linear,
		LambdaStericsInsert:        firstHalf,
		LambdaStericsDelete:        secondHalf,
		LambdaElectrostaticsInsert: secondHalf,
		LambdaElectrostaticsDelete: firstHalf,
		LambdaBonds:                linear,
		LambdaAngles:               linear,
		LambdaTorsions:             linear,
	})
	if err != nil { //the default protocol cannot fail validation
		panic(err)
	}
	return p
}

// NewProtocol validates and packages a custom protocol. Every named lambda
// must have a function, and every function must be monotonic, stay in [0,1]
// and span it exactly: f(0)=0 and f(1)=1. Violations are chem.ConfigErrors,
// raised here and not at application time.
func NewProtocol(fns map[string]LambdaFunc) (*LambdaProtocol, error) {
	const gridpoints = 101
	for _, name := range LambdaNames() {
		f, ok := fns[name]
		if !ok || f == nil {
			return nil, configErrorf("NewProtocol", "no function for %s", name)
		}
		prev := math.Inf(-1)
		for i := 0; i < gridpoints; i++ {
			x := float64(i) / float64(gridpoints-1)
			y := f(x)
			if y < 0 || y > 1 {
				return nil, configErrorf("NewProtocol", "%s leaves [0,1]: f(%v)=%v", name, x, y)
			}
			if y < prev {
				return nil, configErrorf("NewProtocol", "%s is not monotonic near %v", name, x)
			}
			prev = y
		}
		if f(0) != 0 || f(1) != 1 {
			return nil, configErrorf("NewProtocol", "%s does not span [0,1]: f(0)=%v, f(1)=%v", name, f(0), f(1))
		}
	}
	cp := make(map[string]LambdaFunc, len(fns))
	for k, v := range fns {
		cp[k] = v
	}
	return &LambdaProtocol{fns: cp}, nil
}

// Value returns the value of the named lambda at the given master lambda.
// Panics on an unknown name, since protocols are total by construction.
func (P *LambdaProtocol) Value(name string, master float64) float64 {
	f, ok := P.fns[name]
	if !ok {
		panic("hybrid: protocol queried for unknown lambda " + name)
	}
	return f(master)
}

// Names returns the lambda names this protocol drives, sorted.
func (P *LambdaProtocol) Names() []string {
	names := make([]string, 0, len(P.fns))
	for n := range P.fns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
