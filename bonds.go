/*
 * bonds.go, part of gomd
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
	"sort"

	v3 "github.com/rmera/gomd/v3"
)

//constants from DOI:10.1186/1758-2946-3-33, here in nm.
const (
	tooclose = 0.063
	bondtol  = 0.045
)

//Bond connects two atoms of a molecule.
type Bond struct {
	Index int
	At1   *Atom
	At2   *Atom
	Dist  float64 //nm
	Order float64 //Order 0 means undetermined
}

//Cross returns the atom of the bond that is not the origin atom given.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin.Index == B.At1.Index {
		return B.At2
	}
	if origin.Index == B.At2.Index {
		return B.At1
	}
	panic("goMD: Trying to cross a bond: The origin atom given is not present in the bond!") //this got to be a programming error, so a panic is warranted.
}

//return a new *Bond slice with the element id removed
func takefromslice(bonds []*Bond, id int) []*Bond {
	newb := make([]*Bond, 0, len(bonds)-1)
	for _, v := range bonds {
		if v.Index != id {
			newb = append(newb, v)
		}
	}
	return newb
}

//RemoveBond removes the given bond from the atoms it connects.
func RemoveBond(b *Bond, mol Atomer) error {
	lenb1 := len(b.At1.Bonds)
	lenb2 := len(b.At2.Bonds)
	b.At1.Bonds = takefromslice(b.At1.Bonds, b.Index)
	b.At2.Bonds = takefromslice(b.At2.Bonds, b.Index)
	err := new(CError)
	errs := 0
	err.msg = fmt.Sprintf("Failed to remove bond Index:%d", b.Index)
	if len(b.At1.Bonds) == lenb1 {
		err.msg = err.msg + fmt.Sprintf(" from atom. Index:%d", b.At1.Index)
		err.Decorate("RemoveBond")
		errs++
	}
	if len(b.At2.Bonds) == lenb2 {
		if errs > 0 {
			err.msg = err.msg + " and"
		}
		err.msg = err.msg + fmt.Sprintf(" from atom. Index:%d", b.At2.Index)
		err.Decorate("RemoveBond")
		errs++
	}
	if errs > 0 {
		return err
	}
	return nil
}

//AssignBonds assigns bonds to a molecule based on a simple distance
//criterium, similar to that described in DOI:10.1186/1758-2946-3-33.
//Coordinates are in nm. It is meant for small molecules and for the
//residues that the force-field templates don't cover, not as the main
//way of obtaining protein connectivity.
func AssignBonds(coord *v3.Matrix, mol AtomIndexesFiller) error {
	var t1, t2 *v3.Matrix
	var at1, at2 *Atom
	mol.FillIndexes()
	t3 := v3.Zeros(1)
	bonds := make([]*Bond, 0, 10)
	tot := mol.Len()
	var nextIndex int
	for i := 0; i < tot; i++ {
		t1 = coord.VecView(i)
		at1 = mol.Atom(i)
		cov1, ok := SymbolCovrad(at1.Symbol)
		if !ok {
			err := new(CError)
			err.msg = fmt.Sprintf("Couldn't find the covalent radii for %s %d", at1.Symbol, i)
			err.Decorate("AssignBonds")
			return err
		}
		for j := i + 1; j < tot; j++ {
			t2 = coord.VecView(j)
			at2 = mol.Atom(j)
			cov2, ok := SymbolCovrad(at2.Symbol)
			if !ok {
				err := new(CError)
				err.msg = fmt.Sprintf("Couldn't find the covalent radii for %s %d", at2.Symbol, j)
				err.Decorate("AssignBonds")
				return err
			}
			t3.Sub(t2, t1)
			d := t3.Norm()
			if d < cov1+cov2+bondtol && d > tooclose {
				b := &Bond{Index: nextIndex, Dist: d, At1: at1, At2: at2}
				at1.Bonds = append(at1.Bonds, b)
				at2.Bonds = append(at2.Bonds, b)
				bonds = append(bonds, b) //just to easily keep track of them.
				nextIndex++
			}
		}
	}
	//Now we check that no atom has too many bonds.
	for i := 0; i < tot; i++ {
		at := mol.Atom(i)
		max := symbolMaxBonds[at.Symbol]
		if max == 0 { //means there is not a specified number of bonds for this atom.
			continue
		}
		sort.Slice(at.Bonds, func(i, j int) bool { return at.Bonds[i].Dist < at.Bonds[j].Dist })
		for i := len(at.Bonds); i > max; i = len(at.Bonds) {
			err := RemoveBond(at.Bonds[len(at.Bonds)-1], mol) //we remove the longest bond
			if err != nil {
				return errDecorate(err, "AssignBonds")
			}
		}
	}
	return nil
}
