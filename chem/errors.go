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

package chem

import "strings"

// Error is the interface implemented by all errors in this library. The
// Decorate method adds information (normally, the name of the function passing
// the error up, plus anything relevant) without changing the error's type.
// If passed an empty string it returns the current decoration without adding
// to it.
type Error interface {
	Error() string
	Decorate(string) []string
}

// The four error categories of the library. Calling code switches on these to
// decide whether to abort, retry the whole step, or log and skip. Each is an
// Error plus a dummy marker method.

// GraphError covers input/graph problems: no common substructure, disconnected
// placement graphs, atoms that cannot be reached by any proper torsion. Fatal
// to the current proposal attempt, never silently recovered.
type GraphError interface {
	Error
	GraphProblem()
}

// ParameterError covers missing or failed force-field parameterization:
// a bonded pair with no bond term, a residue with no template. Fatal to the
// current proposal attempt; retries belong to the outer sampler.
type ParameterError interface {
	Error
	ParameterProblem()
}

// NumericError covers NaN/Inf positions or energies. The caller treats these
// as a rejected proposal, not as a crash.
type NumericError interface {
	Error
	NumericProblem()
}

// ConfigError covers construction-time misconfiguration: unsupported force
// types in hybrid construction, lambda schedules that are not monotonic or do
// not span [0,1]. Checked eagerly, before any expensive work.
type ConfigError interface {
	Error
	ConfigProblem()
}

// CError is the concrete error used by this package, and embedded by the
// concrete errors of the subpackages.
type CError struct {
	msg  string
	deco []string
}

// NewError returns a CError decorated with the name of the function creating it.
func NewError(origin, msg string) *CError {
	err := &CError{msg: msg}
	err.Decorate(origin)
	return err
}

func (err *CError) Error() string {
	if len(err.deco) == 0 {
		return err.msg
	}
	return strings.Join(err.deco, "/") + ": " + err.msg
}

// Decorate adds the given string to the decoration slice and returns the
// current decoration. An empty string only queries.
func (err *CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append([]string{deco}, err.deco...)
	}
	return err.deco
}

// DecorateError decorates err with the caller name if err implements Error,
// and returns it unchanged otherwise.
func DecorateError(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}
