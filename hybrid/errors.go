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

package hybrid

import (
	"fmt"

	"github.com/choderalab/expanded-ensembles/chem"
)

// UnsupportedForceError reports a force kind the factory does not know how
// to merge. Refusing the whole system beats silently dropping energy terms.
// It is a chem.ConfigError.
type UnsupportedForceError struct {
	*chem.CError
	Names []string
}

func (err *UnsupportedForceError) ConfigProblem() {}

func newUnsupportedForceError(origin string, names []string) *UnsupportedForceError {
	return &UnsupportedForceError{
		CError: chem.NewError(origin, fmt.Sprintf("system carries unsupported forces %v", names)),
		Names:  names,
	}
}

// configError is the plain chem.ConfigError of this package.
type configError struct {
	*chem.CError
}

func (err *configError) ConfigProblem() {}

func configErrorf(origin, format string, a ...interface{}) error {
	return &configError{CError: chem.NewError(origin, fmt.Sprintf(format, a...))}
}

// numericError is the chem.NumericError for non-finite energies.
type numericError struct {
	*chem.CError
}

func (err *numericError) NumericProblem() {}

func numericErrorf(origin, format string, a ...interface{}) error {
	return &numericError{CError: chem.NewError(origin, fmt.Sprintf(format, a...))}
}
