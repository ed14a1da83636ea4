/*
 * ff_test.go, part of gomd
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

package ff

import (
	"math"
	"testing"

	md "github.com/rmera/gomd"
)

func TestNew(t *testing.T) {
	if _, err := New("amber14-all", "amber14/tip3pfb"); err != nil {
		t.Fatal(err)
	}
	//the .xml suffix other packages use for the same sets is accepted
	if _, err := New("amber14-all.xml", "amber14/tip3pfb.xml"); err != nil {
		t.Errorf("New rejected the .xml spelling: %v", err)
	}
	if _, err := New("amber96-nope"); err == nil {
		t.Error("New accepted an unregistered parameter set")
	}
	if _, err := New(); err == nil {
		t.Error("New accepted an empty set list")
	}
}

func TestKeys(t *testing.T) {
	if BondKey("N", "CT") != BondKey("CT", "N") {
		t.Error("BondKey is not symmetric")
	}
	if AngleKey("N", "CT", "C") != AngleKey("C", "CT", "N") {
		t.Error("AngleKey is not symmetric in the outer classes")
	}
	if TorsionKey("C", "N", "CT", "C") != TorsionKey("C", "CT", "N", "C") {
		t.Error("TorsionKey is not symmetric under reversal")
	}
}

func TestResidueAliases(t *testing.T) {
	F, err := New("amber14-all", "amber14/tip3pfb")
	if err != nil {
		t.Fatal(err)
	}
	his := F.Residue("HIS")
	if his == nil || his.Name != "HIE" {
		t.Errorf("HIS should alias to the HIE tautomer, got %v", his)
	}
	for _, w := range []string{"WAT", "TIP3", "SOL", "H2O", "HOH"} {
		if tm := F.Residue(w); tm == nil || tm.Name != "HOH" {
			t.Errorf("water name %q did not resolve to HOH", w)
		}
	}
	if F.Residue("XYZ") != nil {
		t.Error("an unknown residue name returned a template")
	}
}

//partial charges of every template must add up to the formal charge of
//the residue, or the Ewald net-charge correction is wrong.
func TestTemplateNetCharges(t *testing.T) {
	F, err := New("amber14-all", "amber14/tip3pfb")
	if err != nil {
		t.Fatal(err)
	}
	formal := map[string]float64{
		"ASP": -1, "GLU": -1, "LYS": 1, "ARG": 1, "NA": 1, "CL": -1,
	}
	names := []string{"ALA", "GLY", "VAL", "LEU", "ILE", "SER", "THR",
		"CYS", "CYX", "MET", "PHE", "TYR", "TRP", "PRO", "ASN", "GLN",
		"ASP", "GLU", "LYS", "ARG", "HIE", "HOH", "NA", "CL"}
	for _, n := range names {
		tm := F.Residue(n)
		if tm == nil {
			t.Errorf("no template for %s", n)
			continue
		}
		if q := tm.NetCharge(); math.Abs(q-formal[n]) > 1e-4 {
			t.Errorf("%s net charge %v, want %v", n, q, formal[n])
		}
	}
}

func TestLookups(t *testing.T) {
	F, err := New("amber14-all", "amber14/tip3pfb")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := F.LJFor("CT"); !ok {
		t.Error("no LJ parameters for CT")
	}
	b, ok := F.Bond("CT", "N")
	if !ok || b.R0 <= 0 || b.K <= 0 {
		t.Errorf("CT-N bond: %v %v", b, ok)
	}
	a, ok := F.Angle("N", "CT", "C")
	if !ok || a.Theta0 <= 0 {
		t.Errorf("N-CT-C angle: %v %v", a, ok)
	}
	//unparametrized angles around a known center fall back to the
	//per-class default
	if _, ok := F.Angle("HC", "CT", "S"); !ok {
		t.Error("no default angle for a CT center")
	}
	if terms := F.Torsion("HC", "CT", "CT", "HC"); len(terms) == 0 {
		t.Error("no torsion terms for X-CT-CT-X")
	}
	phi := F.Torsion("C", "N", "CT", "C")
	if len(phi) == 0 {
		t.Error("no terms for the backbone phi torsion")
	}
}

func TestCreateSystem(t *testing.T) {
	mol, err := md.PDBRead("../testdata/ala.pdb")
	if err != nil {
		t.Fatal(err)
	}
	F, err := New("amber14-all", "amber14/tip3pfb")
	if err != nil {
		t.Fatal(err)
	}
	sys, err := F.CreateSystem(mol, nil)
	if err != nil {
		t.Fatal(err)
	}
	if sys.N() != 22 {
		t.Fatalf("system has %d particles, want 22", sys.N())
	}
	//zwitterionic alanine: 7 bonds to hydrogen become constraints,
	//3 rigid waters bring 3 constraints each
	if len(sys.Constraints) != 16 {
		t.Errorf("%d constraints, want 16", len(sys.Constraints))
	}
	//the heavy-atom bonds left harmonic: N-CA, CA-C, CA-CB, C-O, C-OXT
	if len(sys.Bonds) != 5 {
		t.Errorf("%d bond terms, want 5", len(sys.Bonds))
	}
	if len(sys.Angles) != 21 {
		t.Errorf("%d angle terms, want 21", len(sys.Angles))
	}
	if len(sys.Torsions) == 0 {
		t.Error("no torsion terms")
	}
	if len(sys.Pairs14) == 0 {
		t.Error("no 1-4 pairs")
	}
	if mol.Charge() != 0 {
		t.Errorf("net charge %d, want 0", mol.Charge())
	}
	//both carboxylate oxygens share the O2 class and the same charge
	qo, qoxt := sys.Charges[11], sys.Charges[12]
	if math.Abs(qo-qoxt) > 1e-12 {
		t.Errorf("carboxylate oxygens have different charges: %v %v", qo, qoxt)
	}
	if sys.Sigmas[11] != sys.Sigmas[12] {
		t.Error("carboxylate oxygens have different LJ parameters")
	}
	//the three ammonium hydrogens add up to the formal +1 with the
	//template amide hydrogen
	qh := sys.Charges[1] + sys.Charges[2] + sys.Charges[3]
	if math.Abs(qh-(1+0.2719)) > 1e-6 {
		t.Errorf("ammonium hydrogen charges sum to %v", qh)
	}
	//water oxygen keeps the TIP3P-FB charge
	if math.Abs(sys.Charges[13]+0.848448690103) > 1e-9 {
		t.Errorf("water O charge %v", sys.Charges[13])
	}
	if !sys.Excluded(0, 4) { //N-CA, a 1-2 pair
		t.Error("bonded pair not excluded")
	}
	if sys.Box[0] != 2.5 {
		t.Errorf("box %v, want the CRYST1 2.5 nm cell", sys.Box)
	}
	//the dynamics removes the COM drift, and DOF must account for it
	if !sys.RemoveCOM {
		t.Error("system not flagged for center of mass motion removal")
	}
	//the energy of the starting structure must at least be finite
	e, err := sys.Energy(mol.Coords[0])
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(e) || math.IsInf(e, 0) {
		t.Errorf("initial energy is not finite: %v", e)
	}
}

func TestCreateSystemFlexibleWater(t *testing.T) {
	mol, err := md.PDBRead("../testdata/ala.pdb")
	if err != nil {
		t.Fatal(err)
	}
	F, err := New("amber14-all", "amber14/tip3pfb")
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.Constraints = NoConstraints
	opts.FlexibleWater = true
	sys, err := F.CreateSystem(mol, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(sys.Constraints) != 0 {
		t.Errorf("%d constraints with everything flexible, want 0", len(sys.Constraints))
	}
	//12 alanine bonds plus 2 O-H per water
	if len(sys.Bonds) != 18 {
		t.Errorf("%d bond terms, want 18", len(sys.Bonds))
	}
}
