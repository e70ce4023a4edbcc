/*
 * errors.go, part of expanded-ensembles.
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

	"github.com/choderalab/expanded-ensembles/chem"
)

// UnplaceableAtomError reports atoms that no eligible torsion can place,
// which means the placement graph is disconnected or torsion-incomplete. It
// is a chem.GraphError and fatal to the proposal attempt.
type UnplaceableAtomError struct {
	*chem.CError
	Atoms []int
}

func (err *UnplaceableAtomError) GraphProblem() {}

func newUnplaceableAtomError(origin string, atoms []int) *UnplaceableAtomError {
	return &UnplaceableAtomError{
		CError: chem.NewError(origin, fmt.Sprintf("no eligible torsion can place atoms %v", atoms)),
		Atoms:  atoms,
	}
}

// MissingParameterError reports a bond or angle the force field has no term
// for, even though the placement machinery needs it. It is a
// chem.ParameterError.
type MissingParameterError struct {
	*chem.CError
	Atoms []int
}

func (err *MissingParameterError) ParameterProblem() {}

func newMissingParameterError(origin, what string, atoms []int) *MissingParameterError {
	return &MissingParameterError{
		CError: chem.NewError(origin, fmt.Sprintf("no %s parameters for atoms %v", what, atoms)),
		Atoms:  atoms,
	}
}

// ExhaustedSamplerError reports a rejection sampler that hit its iteration
// cap. The cap only exists to turn a pathological density into a loud error
// instead of an endless loop or a biased sample. It is a chem.NumericError.
type ExhaustedSamplerError struct {
	*chem.CError
	Iterations int
}

func (err *ExhaustedSamplerError) NumericProblem() {}

// numericError is the plain chem.NumericError for non-finite intermediate
// results.
type numericError struct {
	*chem.CError
}

func (err *numericError) NumericProblem() {}

func numericErrorf(origin, format string, a ...interface{}) error {
	return &numericError{CError: chem.NewError(origin, fmt.Sprintf(format, a...))}
}
