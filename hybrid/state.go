/*
 * state.go, part of expanded-ensembles.
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

import "github.com/choderalab/expanded-ensembles/chem"

// AlchemicalState presents the lambda parameters of one hybrid System as a
// settable state vector, the view outer samplers drive. With Strict set,
// touching a parameter the system does not carry is a chem.ConfigError;
// without it, such sets are silent no-ops and gets return 0, which lets one
// sampler loop drive systems with differing parameter sets.
type AlchemicalState struct {
	sys    *System
	strict bool
}

// NewAlchemicalState binds an adapter to a built system.
func NewAlchemicalState(sys *System, strict bool) (*AlchemicalState, error) {
	if sys == nil {
		return nil, configErrorf("NewAlchemicalState", "nil system")
	}
	return &AlchemicalState{sys: sys, strict: strict}, nil
}

// Strict reports whether unknown parameter names are errors.
func (A *AlchemicalState) Strict() bool {
	return A.strict
}

// Names returns the lambda names of the bound system, sorted.
func (A *AlchemicalState) Names() []string {
	return A.sys.GlobalParameterNames()
}

// Get returns the value of a named lambda. Unknown names are an error under
// Strict and read as 0 otherwise.
func (A *AlchemicalState) Get(name string) (float64, error) {
	v, err := A.sys.GetGlobalParameter(name)
	if err != nil && !A.strict {
		return 0, nil
	}
	return v, chem.DecorateError(err, "Get")
}

// Set assigns a named lambda. Unknown names are an error under Strict and a
// no-op otherwise; out-of-range values are always an error.
func (A *AlchemicalState) Set(name string, v float64) error {
	err := A.sys.SetGlobalParameter(name, v)
	if err == nil {
		return nil
	}
	if _, known := A.sys.globals[name]; !known && !A.strict {
		return nil
	}
	return chem.DecorateError(err, "Set")
}

// ApplyProtocol drives every lambda of the protocol to its value at the
// given master lambda.
func (A *AlchemicalState) ApplyProtocol(p *LambdaProtocol, master float64) error {
	if master < 0 || master > 1 {
		return configErrorf("ApplyProtocol", "master lambda %v outside [0,1]", master)
	}
	for _, name := range p.Names() {
		if err := A.Set(name, p.Value(name, master)); err != nil {
			return chem.DecorateError(err, "ApplyProtocol")
		}
	}
	return nil
}
