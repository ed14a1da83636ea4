/*
 * pdb.go, part of gomd
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/gomd/v3"
)

//A map between 3-letter names for aminoacidic residues and the
//corresponding 1-letter names.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
}

//This tries to guess a chemical element symbol from a PDB atom name.
//Mostly based on AMBER names. It only deals with some common bio-elements.
func symbolFromName(name string) (string, error) {
	symbol := ""
	if len(name) == 4 || name[0] == 'H' { //I thiiink only Hs can have 4-char names in amber.
		symbol = "H"
	} else if name[0] == 'C' {
		if name == "CU" {
			symbol = "Cu"
		} else if name == "CO" {
			symbol = "Co"
		} else if name == "CL" {
			symbol = "Cl"
		} else {
			symbol = "C"
		}
	} else if name[0] == 'N' {
		if name == "NA" {
			symbol = "Na"
		} else {
			symbol = "N"
		}
	} else if name[0] == 'O' {
		symbol = "O"
	} else if name[0] == 'P' {
		symbol = "P"
	} else if name[0] == 'S' {
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	} else if len(name) >= 2 && name[0:2] == "ZN" {
		symbol = "Zn"
	} else if name[0] >= '0' && name[0] <= '9' { //Hydrogens like 1HB2
		symbol = "H"
	}
	if symbol == "" {
		return symbol, errorf("Couldn't guess symbol from PDB name %q", name)
	}
	return symbol, nil
}

//Parses a valid ATOM or HETATM line of a PDB file. Returns an Atom
//object with the info except for the coordinates and b-factor, which
//are returned separately. Coordinates come back in nm.
func readFullPDBLine(line string, contlines int) (*Atom, [3]float64, float64, error) {
	var coords [3]float64
	atom := new(Atom)
	if len(line) < 54 {
		return nil, coords, 0, errorf("PDB line %d too short: %q", contlines, line)
	}
	atom.Het = strings.HasPrefix(line, "HETATM")
	var err error
	atom.ID, err = strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		return nil, coords, 0, errorf("PDB line %d: bad atom serial: %s", contlines, err.Error())
	}
	atom.Name = strings.TrimSpace(line[12:16])
	atom.MolName = strings.TrimSpace(line[17:20])
	atom.MolName1 = three2OneLetter[atom.MolName]
	atom.Chain = strings.TrimSpace(string(line[21]))
	atom.MolID, err = strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return nil, coords, 0, errorf("PDB line %d: bad residue number: %s", contlines, err.Error())
	}
	for i := 0; i < 3; i++ {
		coords[i], err = strconv.ParseFloat(strings.TrimSpace(line[30+8*i:38+8*i]), 64)
		if err != nil {
			return nil, coords, 0, errorf("PDB line %d: bad coordinates: %s", contlines, err.Error())
		}
		coords[i] = coords[i] / 10 //Å to nm
	}
	var bfac float64
	if len(line) >= 60 {
		atom.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	}
	if len(line) >= 66 {
		bfac, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	}
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
		if len(atom.Symbol) == 2 {
			atom.Symbol = strings.ToUpper(atom.Symbol[:1]) + strings.ToLower(atom.Symbol[1:])
		}
	}
	if atom.Symbol == "" {
		atom.Symbol, err = symbolFromName(atom.Name)
		if err != nil {
			return nil, coords, 0, errDecorate(err, fmt.Sprintf("readFullPDBLine: line %d", contlines))
		}
	}
	atom.Mass = symbolMass[atom.Symbol] //zero if not in the table, the caller decides whether to care.
	if v, ok := SymbolVdwrad(atom.Symbol); ok {
		atom.Vdw = v
	}
	return atom, coords, bfac, nil
}

//Parses just the coordinates and b-factor of an ATOM/HETATM line.
//Used for every model after the first one.
func readOnlyCoordsPDBLine(line string, contlines int) ([3]float64, float64, error) {
	var coords [3]float64
	if len(line) < 54 {
		return coords, 0, errorf("PDB line %d too short: %q", contlines, line)
	}
	var err error
	for i := 0; i < 3; i++ {
		coords[i], err = strconv.ParseFloat(strings.TrimSpace(line[30+8*i:38+8*i]), 64)
		if err != nil {
			return coords, 0, errorf("PDB line %d: bad coordinates: %s", contlines, err.Error())
		}
		coords[i] = coords[i] / 10
	}
	var bfac float64
	if len(line) >= 66 {
		bfac, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	}
	return coords, bfac, nil
}

//PDBBufRead reads a PDB-formatted stream and returns a Molecule.
//Coordinates and the CRYST1 box, if present, are converted to nm.
func PDBBufRead(pdb io.Reader) (*Molecule, error) {
	atoms := make([]*Atom, 0, 100)
	coords := make([][]float64, 1)
	coords[0] = make([]float64, 0, 300)
	bfactors := make([][]float64, 1)
	bfactors[0] = make([]float64, 0, 100)
	var box []float64
	firstModel := true //are we reading the first model? if not we only save coordinates
	reader := bufio.NewReader(pdb)
	contlines := 0 //count the lines read to better report errors
	for {
		line, err := reader.ReadString('\n')
		if err != nil && len(line) == 0 {
			break
		}
		contlines++
		if len(line) < 6 {
			continue
		}
		if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
			if !firstModel {
				c, bfactemp, err := readOnlyCoordsPDBLine(line, contlines)
				if err != nil {
					return nil, errDecorate(err, "PDBBufRead")
				}
				coords[len(coords)-1] = append(coords[len(coords)-1], c[0], c[1], c[2])
				bfactors[len(bfactors)-1] = append(bfactors[len(bfactors)-1], bfactemp)
			} else {
				atomtmp, c, bfactemp, err := readFullPDBLine(line, contlines)
				if err != nil {
					return nil, errDecorate(err, "PDBBufRead")
				}
				//atom data other than coords is the same in all models so just read it for the first.
				atoms = append(atoms, atomtmp)
				coords[len(coords)-1] = append(coords[len(coords)-1], c[0], c[1], c[2])
				bfactors[len(bfactors)-1] = append(bfactors[len(bfactors)-1], bfactemp)
			}
		} else if strings.HasPrefix(line, "MODEL") {
			modelnumber, _ := strconv.Atoi(strings.TrimSpace(line[6:])) //in PDBs the count starts from 1
			if modelnumber > 1 {
				firstModel = false
				coords = append(coords, make([]float64, 0, len(coords[0])))
				bfactors = append(bfactors, make([]float64, 0, len(bfactors[0])))
			}
		} else if strings.HasPrefix(line, "CRYST1") && len(line) >= 33 {
			box = make([]float64, 3)
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(strings.TrimSpace(line[6+9*i:15+9*i]), 64)
				if err != nil {
					return nil, errorf("PDBBufRead: bad CRYST1 record: %s", err.Error())
				}
				box[i] = v / 10
			}
		}
		if err != nil { //Done reading
			break
		}
	}
	if len(atoms) == 0 {
		return nil, errorf("PDBBufRead: no atoms found")
	}
	top, err := NewTopology(atoms, 0, 1)
	if err != nil {
		return nil, errDecorate(err, "PDBBufRead")
	}
	frames := len(coords)
	mcoords := make([]*v3.Matrix, 0, frames)
	for i := 0; i < frames; i++ {
		if len(coords[i]) == 0 { //a trailing empty MODEL record
			bfactors = bfactors[:i]
			break
		}
		c, err := v3.NewMatrix(coords[i])
		if err != nil {
			return nil, errDecorate(err, "PDBBufRead")
		}
		mcoords = append(mcoords, c)
	}
	mol, err := NewMolecule(top, mcoords, bfactors)
	if err != nil {
		return nil, errDecorate(err, "PDBBufRead")
	}
	mol.Box = box
	return mol, nil
}

//PDBRead reads the pdb file given and returns a Molecule. Coordinates
//are converted to nm.
func PDBRead(pdbname string) (*Molecule, error) {
	pdbfile, err := os.Open(pdbname)
	if err != nil {
		return nil, err
	}
	defer pdbfile.Close()
	mol, err := PDBBufRead(pdbfile)
	if err != nil {
		return nil, errDecorate(err, "PDBRead: "+pdbname)
	}
	return mol, nil
}

//writePDBLine writes one ATOM/HETATM line. Coordinates come in nm and
//are written in Å.
func writePDBLine(out io.Writer, at *Atom, x, y, z, bfact float64) error {
	first := "ATOM"
	if at.Het {
		first = "HETATM"
	}
	chain := at.Chain
	if chain == "" {
		chain = " "
	}
	var err error
	if len(at.Name) < 4 {
		_, err = fmt.Fprintf(out, "%-6s%5d  %-3s %-3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n", first, at.ID, at.Name, at.MolName, chain,
			at.MolID, x*10, y*10, z*10, at.Occupancy, bfact, at.Symbol)
	} else if len(at.Name) == 4 {
		_, err = fmt.Fprintf(out, "%-6s%5d %4s %-3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n", first, at.ID, at.Name, at.MolName, chain,
			at.MolID, x*10, y*10, z*10, at.Occupancy, bfact, at.Symbol)
	} else {
		err = errorf("Can't print PDB line, atom name too long: %q", at.Name)
	}
	return err
}

//PDBModelWrite writes the coordinates coords of the molecule mol to
//out as one MODEL record of a PDB file. bfact may be nil. It is meant
//for writing trajectories, one frame at a time.
func PDBModelWrite(out io.Writer, model int, coords *v3.Matrix, mol Atomer, bfact []float64) error {
	if coords.NVecs() != mol.Len() {
		return errorf("PDBModelWrite: Ref and Coords don't have the same number of atoms")
	}
	if _, err := fmt.Fprintf(out, "MODEL %8d\n", model); err != nil {
		return err
	}
	chainprev := mol.Atom(0).Chain //to know when the chain changes.
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if at.Chain != chainprev {
			fmt.Fprintln(out, "TER")
			chainprev = at.Chain
		}
		var b float64
		if bfact != nil && i < len(bfact) {
			b = bfact[i]
		}
		err := writePDBLine(out, at, coords.At(i, 0), coords.At(i, 1), coords.At(i, 2), b)
		if err != nil {
			return errDecorate(err, "PDBModelWrite")
		}
	}
	_, err := fmt.Fprint(out, "ENDMDL\n")
	return err
}

//PDBBufWrite writes the molecule mol with coordinates coords to out,
//in PDB format. bfact may be nil.
func PDBBufWrite(out io.Writer, coords *v3.Matrix, mol Atomer, bfact []float64) error {
	if coords.NVecs() != mol.Len() {
		return errorf("PDBBufWrite: Ref and Coords don't have the same number of atoms")
	}
	fmt.Fprint(out, "REMARK     WRITTEN WITH GOMD :-)\n")
	if m, ok := mol.(*Molecule); ok && m.Box != nil {
		fmt.Fprintf(out, "CRYST1%9.3f%9.3f%9.3f%7.2f%7.2f%7.2f P 1           1\n", m.Box[0]*10, m.Box[1]*10, m.Box[2]*10, 90.0, 90.0, 90.0)
	}
	chainprev := mol.Atom(0).Chain
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if at.Chain != chainprev {
			fmt.Fprintln(out, "TER")
			chainprev = at.Chain
		}
		var b float64
		if bfact != nil && i < len(bfact) {
			b = bfact[i]
		}
		err := writePDBLine(out, at, coords.At(i, 0), coords.At(i, 1), coords.At(i, 2), b)
		if err != nil {
			return errDecorate(err, "PDBBufWrite")
		}
	}
	_, err := fmt.Fprint(out, "END\n")
	return err
}

//PDBWrite writes a PDB file with the name pdbname, for the molecule
//mol with the coordinates coords. bfact may be nil.
func PDBWrite(pdbname string, coords *v3.Matrix, mol Atomer, bfact []float64) error {
	out, err := os.Create(pdbname)
	if err != nil {
		return err
	}
	defer out.Close()
	return PDBBufWrite(out, coords, mol, bfact)
}
