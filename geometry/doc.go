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

/*Package geometry grows Cartesian coordinates for the atoms that exist in
one chemical state but not the other, one atom at a time along the bonded
graph, and keeps the probability bookkeeping a reversible-jump sampler needs.

Each atom is placed off a proper torsion whose other three atoms already have
positions: a bond length and an angle are drawn from Gaussians set by the
force-field equilibrium values and the supplied inverse temperature, the
torsion angle is drawn from its Boltzmann density by rejection sampling, and
the internal coordinate is converted to Cartesian with the analytic Jacobian
determinant r^2 sin(theta) entering the log probability. The reverse
direction evaluates the same densities at known positions instead of
sampling.

Engines hold no state between calls; randomness comes only from the
generator threaded through each call, so independent proposals may run
concurrently.*/
package geometry
