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

package ff

import (
	"fmt"

	"github.com/choderalab/expanded-ensembles/chem"
)

// MissingTemplateError reports a residue for which no molecule template was
// registered. It is a chem.ParameterError.
type MissingTemplateError struct {
	*chem.CError
	Molname string
}

func (err *MissingTemplateError) ParameterProblem() {}

// MissingTermError reports an atom, bond or angle for which the matched
// template has no parameters. It is a chem.ParameterError. Atoms holds the
// topology indices of the offending atoms.
type MissingTermError struct {
	*chem.CError
	Atoms []int
}

func (err *MissingTermError) ParameterProblem() {}

// numericError is the chem.NumericError for non-finite results in this
// package.
type numericError struct {
	*chem.CError
}

func (err *numericError) NumericProblem() {}

func numericErrorf(origin, format string, a ...interface{}) error {
	return &numericError{CError: chem.NewError(origin, fmt.Sprintf(format, a...))}
}
