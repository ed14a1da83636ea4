/*
 * pdb_test.go, part of gomd
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
	"bytes"
	"math"
	"testing"
)

func TestPDBRead(t *testing.T) {
	mol, err := PDBRead("testdata/ala.pdb")
	if err != nil {
		t.Fatal(err)
	}
	if mol.Len() != 22 {
		t.Fatalf("read %d atoms, want 22", mol.Len())
	}
	first := mol.Atom(0)
	if first.Name != "N" || first.MolName != "ALA" || first.Chain != "A" {
		t.Errorf("first atom read as %s %s %s", first.Name, first.MolName, first.Chain)
	}
	if first.Symbol != "N" {
		t.Errorf("first atom symbol %q, want N", first.Symbol)
	}
	//coordinates come in Angstrom, the library keeps nm
	x := mol.Coords[0].VecView(0)
	if math.Abs(x.Raw()[0]-1.0) > 1e-6 {
		t.Errorf("N x coordinate %v nm, want 1.0", x.Raw()[0])
	}
	if mol.Box == nil || math.Abs(mol.Box[0]-2.5) > 1e-6 {
		t.Errorf("box read as %v, want 2.5 nm sides", mol.Box)
	}
	waters := 0
	for i := 0; i < mol.Len(); i++ {
		if mol.Atom(i).MolName == "HOH" {
			waters++
		}
	}
	if waters != 9 {
		t.Errorf("got %d water atoms, want 9", waters)
	}
}

func TestPDBRoundTrip(t *testing.T) {
	mol, err := PDBRead("testdata/ala.pdb")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := PDBBufWrite(&buf, mol.Coords[0], mol, nil); err != nil {
		t.Fatal(err)
	}
	mol2, err := PDBBufRead(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if mol2.Len() != mol.Len() {
		t.Fatalf("round trip changed the atom count: %d -> %d", mol.Len(), mol2.Len())
	}
	for i := 0; i < mol.Len(); i++ {
		a, b := mol.Atom(i), mol2.Atom(i)
		if a.Name != b.Name || a.MolName != b.MolName || a.MolID != b.MolID {
			t.Errorf("atom %d changed: %v -> %v", i, a, b)
		}
	}
	d := v3Dist(mol.Coords[0], mol2.Coords[0])
	if d > 1e-3 { //PDB keeps 3 decimals in Angstrom
		t.Errorf("coordinates moved %v nm in a round trip", d)
	}
	if mol2.Box == nil || math.Abs(mol2.Box[0]-mol.Box[0]) > 1e-6 {
		t.Errorf("box changed in round trip: %v -> %v", mol.Box, mol2.Box)
	}
}

func TestPDBModelWrite(t *testing.T) {
	mol, err := PDBRead("testdata/ala.pdb")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := PDBModelWrite(&buf, 1, mol.Coords[0], mol, nil); err != nil {
		t.Fatal(err)
	}
	if err := PDBModelWrite(&buf, 2, mol.Coords[0], mol, nil); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	if c := bytes.Count(buf.Bytes(), []byte("MODEL")); c != 2 {
		t.Errorf("wrote %d MODEL records, want 2", c)
	}
	if c := bytes.Count(buf.Bytes(), []byte("ENDMDL")); c != 2 {
		t.Errorf("wrote %d ENDMDL records, want 2\n%s", c, s)
	}
}

//largest per-atom displacement between two coordinate sets
func v3Dist(a, b interface {
	Raw() []float64
}) float64 {
	ar, br := a.Raw(), b.Raw()
	worst := 0.0
	for i := range ar {
		if d := math.Abs(ar[i] - br[i]); d > worst {
			worst = d
		}
	}
	return worst
}
