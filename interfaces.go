/*
 * interfaces.go, part of gomd
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

package md

import v3 "github.com/rmera/gomd/v3"

// Traj is an interface for any trajectory object, including a Molecule.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next reads the next frame into output, or discards it if output
	//is nil. It can also fill the (optional) box with the box vectors,
	//if present in the frame.
	Next(output *v3.Matrix, box ...[]float64) error

	//Returns the number of atoms per frame
	Len() int
}

// Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

// Masser can return a slice with the masses of each atom in the reference.
type Masser interface {

	//Returns a slice with the masses of all atoms
	Masses() ([]float64, error)
}

// AtomIndexesFiller is an Atomer that can set the Index field of its
// atoms to match their position in the topology.
type AtomIndexesFiller interface {
	Atomer
	FillIndexes()
}

//Errors

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from
// the error, without changing its type or wrapping it around something
// else. Each element of the returned slice should be a function in the
// calling stack, possibly with extra info appended as
// "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

// TrajError is the interface for errors in trajectories.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError is implemented by the harmless errors signaling the
// last frame of a trajectory, so they can be filtered in a typeswitch
// that looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}
