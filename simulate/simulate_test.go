/*
 * simulate_test.go, part of gomd
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

package simulate

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	md "github.com/rmera/gomd"
	"github.com/rmera/gomd/ff"
	"github.com/rmera/gomd/integrate"
	v3 "github.com/rmera/gomd/v3"
)

//builds a small solvated-alanine simulation, shared by several tests.
func testSimulation(t *testing.T) *Simulation {
	t.Helper()
	mol, err := md.PDBRead("../testdata/ala.pdb")
	if err != nil {
		t.Fatal(err)
	}
	F, err := ff.New("amber14-all", "amber14/tip3pfb")
	if err != nil {
		t.Fatal(err)
	}
	sys, err := F.CreateSystem(mol, nil)
	if err != nil {
		t.Fatal(err)
	}
	intg := integrate.NewLangevinMiddle(300, 1, 0.001)
	intg.SetSeed(42)
	sim, err := New(mol, sys, intg)
	if err != nil {
		t.Fatal(err)
	}
	return sim
}

func TestMinimizeEnergy(t *testing.T) {
	sim := testSimulation(t)
	before, err := sim.System().Energy(sim.Positions())
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.MinimizeEnergy(0, 200); err != nil {
		t.Fatal(err)
	}
	after, err := sim.System().Energy(sim.Positions())
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(after) || math.IsInf(after, 0) {
		t.Fatalf("energy after minimization is not finite: %v", after)
	}
	//the exact constraint projection at the end may cost a little
	if after > before+1 {
		t.Errorf("minimization raised the energy: %v -> %v", before, after)
	}
}

//the Langevin noise kicks the center of mass every step; Step must
//take that drift back out, or the DOF bookkeeping (and the reported
//temperature) stops matching the motion actually present.
func TestStepRemovesCOMMotion(t *testing.T) {
	sim := testSimulation(t)
	if err := sim.MinimizeEnergy(0, 100); err != nil {
		t.Fatal(err)
	}
	if err := sim.SetVelocitiesToTemperature(300, 11); err != nil {
		t.Fatal(err)
	}
	if !sim.System().RemoveCOM {
		t.Fatal("test system not flagged for COM removal")
	}
	if err := sim.Step(5); err != nil {
		t.Fatal(err)
	}
	v := sim.Velocities().Raw()
	var px, py, pz float64
	for i, m := range sim.System().Masses {
		px += m * v[3*i]
		py += m * v[3*i+1]
		pz += m * v[3*i+2]
	}
	if math.Abs(px) > 1e-9 || math.Abs(py) > 1e-9 || math.Abs(pz) > 1e-9 {
		t.Errorf("net momentum after dynamics: %v %v %v", px, py, pz)
	}
}

func TestStepAndReporters(t *testing.T) {
	sim := testSimulation(t)
	if err := sim.MinimizeEnergy(0, 200); err != nil {
		t.Fatal(err)
	}
	if err := sim.SetVelocitiesToTemperature(300, 7); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	pdbname := filepath.Join(dir, "out.pdb")
	pdbRep, err := NewPDBReporter(pdbname, 5, sim.Molecule())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	sim.AddReporter(pdbRep)
	sim.AddReporter(NewStateDataReporter(&buf, 5))
	if err := sim.Step(10); err != nil {
		t.Fatal(err)
	}
	if sim.CurrentStep() != 10 {
		t.Errorf("CurrentStep = %d, want 10", sim.CurrentStep())
	}
	if err := sim.Close(); err != nil {
		t.Fatal(err)
	}
	for _, x := range sim.Positions().Raw() {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatal("non-finite position after dynamics")
		}
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 { //header plus two reports
		t.Fatalf("state data has %d lines, want 3:\n%s", len(lines), buf.String())
	}
	wantHeader := `#"Step","Potential Energy (kJ/mole)","Temperature (K)"`
	if lines[0] != wantHeader {
		t.Errorf("header %q, want %q", lines[0], wantHeader)
	}
	if !strings.HasPrefix(lines[1], "5,") || !strings.HasPrefix(lines[2], "10,") {
		t.Errorf("unexpected data rows: %q %q", lines[1], lines[2])
	}
	pdb, err := os.ReadFile(pdbname)
	if err != nil {
		t.Fatal(err)
	}
	if c := bytes.Count(pdb, []byte("MODEL")); c != 2 {
		t.Errorf("PDB trajectory has %d MODEL records, want 2", c)
	}
	if !bytes.HasSuffix(pdb, []byte("END\n")) {
		t.Error("PDB trajectory does not end with END")
	}
}

func TestSetVelocitiesToTemperature(t *testing.T) {
	sim := testSimulation(t)
	if err := sim.SetVelocitiesToTemperature(300, 11); err != nil {
		t.Fatal(err)
	}
	temp := sim.System().Temperature(sim.Velocities())
	//a single draw over ~50 degrees of freedom scatters widely
	if temp < 100 || temp > 550 {
		t.Errorf("initial temperature %v K from a 300 K draw", temp)
	}
	v1 := make([]float64, len(sim.Velocities().Raw()))
	copy(v1, sim.Velocities().Raw())
	if err := sim.SetVelocitiesToTemperature(300, 11); err != nil {
		t.Fatal(err)
	}
	for i, v := range sim.Velocities().Raw() {
		if v != v1[i] {
			t.Fatal("same seed gave different velocities")
		}
	}
}

func TestSTFRoundTrip(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "traj.stf")
	natoms := 5
	w, err := NewSTFWriter(name, natoms, 4)
	if err != nil {
		t.Fatal(err)
	}
	frame1 := v3.Zeros(natoms)
	frame2 := v3.Zeros(natoms)
	for i := 0; i < 3*natoms; i++ {
		frame1.Raw()[i] = float64(i) * 0.0123
		frame2.Raw()[i] = float64(i)*0.0123 + 0.5
	}
	if err := w.WNext(frame1); err != nil {
		t.Fatal(err)
	}
	if err := w.WNext(frame2, [3]float64{2.5, 2.5, 2.5}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil { //closing twice is fine
		t.Fatal(err)
	}
	r, err := NewSTFReader(name)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if r.Len() != natoms {
		t.Fatalf("reader says %d atoms, want %d", r.Len(), natoms)
	}
	got := v3.Zeros(natoms)
	if err := r.Next(got); err != nil {
		t.Fatal(err)
	}
	for i, v := range got.Raw() {
		if math.Abs(v-frame1.Raw()[i]) > 1e-4 {
			t.Fatalf("frame 1 coordinate %d: %v, want %v", i, v, frame1.Raw()[i])
		}
	}
	box := make([]float64, 3)
	if err := r.Next(got, box); err != nil {
		t.Fatal(err)
	}
	if box[0] != 2.5 || box[2] != 2.5 {
		t.Errorf("box read as %v, want 2.5 per side", box)
	}
	err = r.Next(got)
	if err == nil {
		t.Fatal("no error after the last frame")
	}
	var lfe interface{ NormalLastFrameTermination() }
	if !errors.As(err, &lfe) {
		t.Errorf("end of trajectory gave %v, not a last-frame error", err)
	}
}

func TestSTFReporter(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "rep.stf")
	rep, err := NewSTFReporter(name, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Interval() != 2 {
		t.Errorf("interval %d, want 2", rep.Interval())
	}
	pos := v3.Zeros(3)
	st := &State{Step: 2, Positions: pos, Box: [3]float64{1, 1, 1}}
	if err := rep.Report(st); err != nil {
		t.Fatal(err)
	}
	if err := rep.Close(); err != nil {
		t.Fatal(err)
	}
	r, err := NewSTFReader(name)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if err := r.Next(nil); err != nil {
		t.Fatal(err)
	}
}

func TestStateDataReporterFields(t *testing.T) {
	var buf bytes.Buffer
	R := NewStateDataReporter(&buf, 1)
	R.Time = true
	R.TotalEnergy = true
	st := &State{Step: 3, Time: 0.012, PotentialEnergy: -10, KineticEnergy: 4, Temperature: 290}
	if err := R.Report(st); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header and one row", len(lines))
	}
	if !strings.Contains(lines[0], `"Time (ps)"`) || !strings.Contains(lines[0], `"Total Energy (kJ/mole)"`) {
		t.Errorf("header missing requested fields: %q", lines[0])
	}
	if !strings.Contains(lines[1], "-6.000000") { //total energy
		t.Errorf("row missing the total energy: %q", lines[1])
	}
}
