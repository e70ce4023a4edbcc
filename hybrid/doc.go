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

/*Package hybrid merges the two parameterized end states of a topology
proposal into one alchemical system whose energy interpolates between them.

Every shared atom appears once; atoms unique to either state are carried as
dummies whose nonbonded interactions are gated by named global lambda
parameters, with a Beutler softcore form keeping the Lennard-Jones terms
finite while they switch on or off. Setting all lambdas to 0 reproduces the
old state's energy exactly, all to 1 the new state's; the staged
LambdaProtocol drives the individual lambdas from one master parameter.

A built System is frozen: replicas at different lambda values share the term
lists read-only and differ only in the small global parameter table, which
the AlchemicalState adapter mutates.*/
package hybrid
