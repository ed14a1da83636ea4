/*
 * chem.go, part of gomd
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

import (
	"fmt"

	v3 "github.com/rmera/gomd/v3"
)

/**Note: Several functions here panic instead of returning errors. They are "fundamental"
 * functions, so, if something goes wrong there, the program is way-most likely wrong and
 * should crash. Most panics are related to calling a function on a nil object or trying
 * to access out-of-bounds fields**/

//Atom contains the info for an atom, except for the coordinates, which
//go in a v3.Matrix, and the b-factors, which go in a separate slice of
//float64.
type Atom struct {
	Name      string  //PDB name of the atom
	ID        int     //The PDB Index of the atom
	Index     int     //The place of the atom in a topology. Should be the same as its place in the coordinate matrix.
	MolName   string  //PDB name of the residue or molecule
	MolName1  byte    //the one-letter name for residues and nucleotides
	MolID     int     //PDB index of the corresponding residue or molecule
	Chain     string  //One-character PDB chain identifier
	Mass      float64 //in amu
	Occupancy float64
	Vdw       float64 //radius in nm
	Charge    float64 //partial charge, in e
	Symbol    string
	Het       bool //is the atom an hetatm in the pdb file?
	Bonds     []*Bond
}

//Copy returns a copy of the Atom object. The bonds are copied
//as pointers, so they are shared with the original atom.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	Newat := new(Atom)
	*Newat = *A
	Newat.Bonds = make([]*Bond, len(A.Bonds))
	copy(Newat.Bonds, A.Bonds)
	return Newat
}

/*****Topology type***/

//Topology contains the information about a set of atoms which is not
//expected to change in time, i.e. everything except for coordinates
//and b-factors.
type Topology struct {
	atoms  []*Atom
	charge int
	multi  int
}

//NewTopology returns a topology with ats atoms, charge charge and
//multi multiplicity. It returns an error if ats is nil, but it doesn't
//check for consistency of charge or multiplicity.
func NewTopology(ats []*Atom, charge, multi int) (*Topology, error) {
	if ats == nil {
		return nil, errorf("NewTopology: nil atoms given")
	}
	top := new(Topology)
	top.atoms = ats
	top.charge = charge
	top.multi = multi
	top.FillIndexes()
	return top, nil
}

//Charge returns the total charge of the topology.
func (T *Topology) Charge() int {
	return T.charge
}

//Multi returns the multiplicity of the topology.
func (T *Topology) Multi() int {
	return T.multi
}

//SetCharge sets the total charge of the topology to i.
func (T *Topology) SetCharge(i int) {
	T.charge = i
}

//SetMulti sets the multiplicity of the topology to i.
func (T *Topology) SetMulti(i int) {
	T.multi = i
}

//FillIndexes sets the Index fields of all atoms to their current
//position in the topology.
func (T *Topology) FillIndexes() {
	for key := range T.atoms {
		T.atoms[key].Index = key
	}
}

//Atom returns the Atom corresponding to the index i of the Atom slice
//in the Topology. Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("goMD: Requested Atom out of bounds")
	}
	return T.atoms[i]
}

//SetAtom sets the (i+1)th Atom of the topology to at.
//Panics if out of range.
func (T *Topology) SetAtom(i int, at *Atom) {
	if i >= T.Len() {
		panic("goMD: Tried to set Atom out of bounds")
	}
	T.atoms[i] = at
}

//AppendAtom appends an atom at the end of the topology.
func (T *Topology) AppendAtom(at *Atom) {
	T.atoms = append(T.atoms, at)
	at.Index = len(T.atoms) - 1
}

//CopyAtoms returns a copy of the topology.
func (T *Topology) CopyAtoms() *Topology {
	Top := new(Topology)
	Top.atoms = make([]*Atom, T.Len())
	for key, val := range T.atoms {
		Top.atoms[key] = val.Copy()
	}
	Top.charge = T.charge
	Top.multi = T.multi
	return Top
}

//SomeAtoms returns a topology with the atoms of T in the positions
//given by atomlist. Changes to these atoms affect the original topology.
//The charge and multiplicity of the returned topology are just those of
//the parent, and are not guaranteed to be correct.
func (T *Topology) SomeAtoms(atomlist []int) (*Topology, error) {
	var ret []*Atom
	lenatoms := T.Len()
	for k, j := range atomlist {
		if j > lenatoms-1 {
			return nil, errorf("SomeAtoms: Atom requested (Number: %d, value: %d) out of range", k, j)
		}
		ret = append(ret, T.atoms[j])
	}
	return &Topology{atoms: ret, charge: T.charge, multi: T.multi}, nil
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

//Masses returns a slice with the masses of all atoms, and an error if
//some masses are missing.
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i := 0; i < T.Len(); i++ {
		thisatom := T.Atom(i)
		if thisatom.Mass <= 0 {
			return nil, errorf("Masses: Not all masses have been obtained: %d %v", i, thisatom)
		}
		mass[i] = thisatom.Mass
	}
	return mass, nil
}

/**Type Molecule**/

//Molecule contains all the info for a molecule in many states. The info
//that is expected to change between states, i.e. coordinates and
//b-factors, is stored separately from the rest.
type Molecule struct {
	*Topology
	Coords   []*v3.Matrix
	Bfactors [][]float64
	Box      []float64 //a, b, c of an orthorhombic cell, in nm. nil if no box is known.
	current  int
}

//NewMolecule makes a molecule from ats atoms, coords coordinates and
//bfactors b-factors. It returns an error if ats or coords is nil, or
//if the shapes are inconsistent.
func NewMolecule(ats *Topology, coords []*v3.Matrix, bfactors [][]float64) (*Molecule, error) {
	if ats == nil {
		return nil, errorf("NewMolecule: nil topology given")
	}
	if coords == nil {
		return nil, errorf("NewMolecule: nil coordinates given")
	}
	mol := new(Molecule)
	mol.Topology = ats
	mol.Coords = coords
	mol.Bfactors = bfactors
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return mol, nil
}

//Coord returns a view of the coords for the atom atom in the frame
//frame. Panics if out of range.
func (M *Molecule) Coord(atom, frame int) *v3.Matrix {
	if frame >= len(M.Coords) {
		panic(fmt.Sprintf("goMD: Frame requested (%d) out of range", frame))
	}
	if atom >= M.Coords[frame].NVecs() {
		panic(fmt.Sprintf("goMD: Requested coordinate (%d) out of bounds (%d)", atom, M.Coords[frame].NVecs()))
	}
	return M.Coords[frame].VecView(atom)
}

//AddFrame takes a matrix of coordinates and appends it at the end of
//the Coords. It checks that the number of coordinates matches the
//number of atoms.
func (M *Molecule) AddFrame(newframe *v3.Matrix) {
	if newframe == nil {
		panic("goMD: Attempted to add nil frame")
	}
	if M.Len() != newframe.NVecs() {
		panic(fmt.Sprintf("goMD: Wrong number of coordinates (%d)", newframe.NVecs()))
	}
	M.Coords = append(M.Coords, newframe)
}

//Corrupted checks whether the molecule is corrupted, i.e. the
//coordinates don't match the number of atoms. Incomplete b-factors
//are filled with zeroes instead of considered an error.
func (M *Molecule) Corrupted() error {
	var err error
	if M.Bfactors == nil {
		M.Bfactors = make([][]float64, 0, len(M.Coords))
	}
	lastbfac := len(M.Bfactors) - 1
	for i := range M.Coords {
		if M.Len() != M.Coords[i].NVecs() {
			err = errorf("Corrupted: Inconsistent coordinates/atoms in frame %d: Atoms %d, coords: %d", i, M.Len(), M.Coords[i].NVecs())
			break
		}
		if lastbfac < i {
			M.Bfactors = append(M.Bfactors, make([]float64, M.Len()))
		} else if len(M.Bfactors[i]) < M.Len() {
			M.Bfactors[i] = make([]float64, M.Len())
		}
	}
	return err
}

//LenFrames returns the number of frames in the molecule.
func (M *Molecule) LenFrames() int {
	return len(M.Coords)
}

//Copy returns a copy of the molecule, including coordinates.
func (M *Molecule) Copy() *Molecule {
	if err := M.Corrupted(); err != nil {
		panic(err.Error())
	}
	mol := new(Molecule)
	mol.Topology = M.CopyAtoms()
	mol.Coords = make([]*v3.Matrix, 0, len(M.Coords))
	mol.Bfactors = make([][]float64, 0, len(M.Bfactors))
	for key, val := range M.Coords {
		newc := v3.Zeros(val.NVecs())
		newc.Copy(val)
		mol.Coords = append(mol.Coords, newc)
		newb := make([]float64, len(M.Bfactors[key]))
		copy(newb, M.Bfactors[key])
		mol.Bfactors = append(mol.Bfactors, newb)
	}
	if M.Box != nil {
		mol.Box = make([]float64, len(M.Box))
		copy(mol.Box, M.Box)
	}
	return mol
}

/******************************************
//The following implement the Traj interface
**********************************************/

//Readable checks that the molecule exists and has some existent
//coordinates left to read, in which case it returns true.
func (M *Molecule) Readable() bool {
	if M != nil && M.Coords != nil && M.current < len(M.Coords) {
		return true
	}
	return false
}

//Next puts the next frame into output, or discards it if output is nil.
func (M *Molecule) Next(output *v3.Matrix, box ...[]float64) error {
	if M.current >= len(M.Coords) {
		return newlastFrameError("", len(M.Coords))
	}
	M.current++
	if output == nil {
		return nil
	}
	output.Copy(M.Coords[M.current-1])
	if len(box) > 0 && M.Box != nil {
		copy(box[0], M.Box)
	}
	return nil
}

//InitRead initializes the molecule to be read as a trajectory.
func (M *Molecule) InitRead() error {
	if M == nil || len(M.Coords) == 0 {
		return errorf("InitRead: Bad molecule")
	}
	M.current = 0
	return nil
}

/**End Traj interface implementation***********/

//lastFrameError signals the harmless end of a trajectory.
type lastFrameError struct {
	fileName string
	frame    int
	deco     []string
}

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (E *lastFrameError) FileName() string            { return E.fileName }
func (E *lastFrameError) Format() string              { return "molecule" }
func (E *lastFrameError) Critical() bool              { return false }
func (E *lastFrameError) NormalLastFrameTermination() {}

func newlastFrameError(filename string, frame int) *lastFrameError {
	return &lastFrameError{fileName: filename, frame: frame}
}
