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

//Package v3 implements a 3-column matrix for sets of points in 3D space,
//such as the coordinates of the atoms in a simulated system.
//It is based on gonum's Dense type, with the restriction that the number
//of columns is always 3. Within the package, a "vector" is a 1x3 row
//of such a matrix, i.e. the cartesian coordinates of one atom.
//All quantities are in nm, following the units used across goMD.
package v3
