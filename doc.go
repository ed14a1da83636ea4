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
Package md provides the chemical entities used by the goMD molecular
dynamics engine: atoms, topologies and molecules, PDB reading and writing,
atomic data tables and distance-based bond perception.

The force-field parameterization lives in the ff subpackage, the
molecular-mechanics system and its energy/force evaluation in mm,
time integration in integrate, and the simulation context with its
reporters and minimizer in simulate. The gomd command under cmd drives
the whole thing.

All quantities in this library are in nm, ps, amu, kJ/mol and K.
PDB files, which use Å, are converted on reading and writing.
*/
package md

//Version is the version of the goMD library and command.
const Version = "0.9.1"
