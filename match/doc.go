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

/*Package match finds the atoms shared between two small molecules and
represents the correspondence as an AtomMap.

The search is a maximum common connected induced subgraph over the molecular
graphs: atoms are compatible when they have the same element and the same
ring membership, bond order is ignored, and the result always maps at least
one bond, since a match without a mapped bond gives the geometry machinery
nothing to build on. Ties break deterministically on atom index order, so the
same pair of molecules always yields the same map.*/
package match
