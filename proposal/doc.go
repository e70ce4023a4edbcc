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

/*Package proposal chooses the next chemical state of an expanded-ensemble
simulation and packages everything downstream machinery needs to know about
the jump into an immutable TopologyProposal: old and new topologies and
parameterized systems, the atom correspondence between them, and the log
probability of having proposed this particular jump.

One Engine serves every environment; vacuum, solvated and receptor-bound
setups differ only through the Config it is built with. Parameterized systems
are cached per chemical key, since parameterization is by far the most
expensive step of a proposal.*/
package proposal
