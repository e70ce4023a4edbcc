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

/*Package ff holds the parameterized representation of a molecular system:
per-particle nonbonded parameters, harmonic bond and angle terms, periodic
torsion terms and the 1-4 exception list, plus the Parameterizer machinery
that builds a System from a Topology and a set of molecule templates.

Units follow the usual molecular-simulation conventions: kJ/mol for energies,
nm for distances, radians for angles and elementary charges for charges.

A System is a plain container with enumerated accessors. Energy evaluation
(PotentialEnergy) is provided mostly for validation; production sampling is
expected to hand the System to a real simulation engine.*/
package ff
