/*
 * doc.go, part of gomd
 *
 * Copyright 2025 Raul Mera <rmeraa{at}academicosDOTutaDOTcl>
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

/*
Package mm implements the molecular-mechanics machinery of goMD: the
System type with its bonded and nonbonded terms, energy and force
evaluation, Ewald summation for long-range electrostatics, a Verlet
neighbor list, and the SHAKE/RATTLE holonomic constraints.

A System is normally built from a structure and a parameter set by the
ff package, not by hand. Everything here is in nm, ps, amu, kJ/mol
and K. The nonbonded inner loop is split across goroutines, one
force buffer per worker, so evaluation scales with the available cores
without locking.
*/
package mm
