/*
 * atomicdata.go, part of expanded-ensembles.
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

//Covalent radii in nm, from Cordero et al., Dalton Trans., 2008.
var symbolCovrad = map[string]float64{
	"H":  0.031,
	"C":  0.076,
	"N":  0.071,
	"O":  0.066,
	"F":  0.057,
	"P":  0.107,
	"S":  0.105,
	"Cl": 0.102,
	"Br": 0.120,
	"I":  0.139,
	"Na": 0.166,
	"K":  0.203,
	"Mg": 0.141,
	"Ca": 0.176,
	"Zn": 0.122,
	"Fe": 0.132,
}

//Atomic masses in g/mol.
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"Br": 79.904,
	"I":  126.904,
	"Na": 22.990,
	"K":  39.098,
	"Mg": 24.305,
	"Ca": 40.078,
	"Zn": 65.38,
	"Fe": 55.845,
}

//Maximum sensible number of bonds per element, for the distance-based bond
//assignment. 0 means no maximum enforced.
var symbolMaxBonds = map[string]int{
	"H":  1,
	"C":  4,
	"N":  4,
	"O":  2,
	"F":  1,
	"S":  6,
	"P":  5,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

// SymbolMass returns the atomic mass for an element symbol, or 0 if unknown.
func SymbolMass(symbol string) float64 {
	return symbolMass[symbol]
}

// SymbolCovrad returns the covalent radius (nm) for an element symbol, or 0
// if unknown.
func SymbolCovrad(symbol string) float64 {
	return symbolCovrad[symbol]
}
