/*
 * doc.go, part of expanded-ensembles.
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

/*Package chem provides the molecular data model shared by the rest of the
library: atoms, bonds and immutable topologies, plus element data and the
typed error system used across packages.

A Topology is an ordered sequence of atoms, each knowing its element, residue
and bonded partners, plus optional periodic box vectors. Topologies are built
once, by whichever component owns the chemical state, and read-only afterward:
the proposal machinery never mutates a topology in place, it builds new ones.
*/
package chem
