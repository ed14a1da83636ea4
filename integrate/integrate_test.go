/*
 * integrate_test.go, part of gomd
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

package integrate

import (
	"math"
	"testing"

	"github.com/rmera/gomd/mm"
	v3 "github.com/rmera/gomd/v3"
)

//a harmonic dimer, the simplest system with internal dynamics.
func dimer() (*mm.System, *v3.Matrix, *v3.Matrix) {
	S := mm.NewSystem(2)
	S.Masses[0], S.Masses[1] = 12, 12
	S.Bonds = append(S.Bonds, mm.BondTerm{I: 0, J: 1, R0: 0.15, K: 2e5})
	S.AddExclusion(0, 1)
	pos, _ := v3.NewMatrix([]float64{0, 0, 0, 0.16, 0, 0})
	vel := v3.Zeros(2)
	return S, pos, vel
}

func TestVelocityVerletConservesEnergy(t *testing.T) {
	S, pos, vel := dimer()
	V := NewVelocityVerlet(0.0005)
	pe0, err := S.Energy(pos)
	if err != nil {
		t.Fatal(err)
	}
	e0 := pe0 + S.KineticEnergy(vel)
	var last float64
	for i := 0; i < 1000; i++ {
		if _, err := V.Step(S, pos, vel); err != nil {
			t.Fatal(err)
		}
		pe, err := S.Energy(pos)
		if err != nil {
			t.Fatal(err)
		}
		last = pe + S.KineticEnergy(vel)
	}
	//Verlet has a bounded energy error of order (omega*dt)^2
	if math.Abs(last-e0) > 0.02*math.Abs(e0)+1e-3 {
		t.Errorf("NVE energy drifted from %v to %v", e0, last)
	}
}

func TestLangevinMiddleDeterministicWithSeed(t *testing.T) {
	run := func() []float64 {
		S, pos, vel := dimer()
		L := NewLangevinMiddle(300, 1, 0.001)
		L.SetSeed(42)
		for i := 0; i < 50; i++ {
			if _, err := L.Step(S, pos, vel); err != nil {
				t.Fatal(err)
			}
		}
		out := make([]float64, 6)
		copy(out, pos.Raw())
		return out
	}
	a := run()
	b := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed gave different trajectories: %v vs %v", a, b)
		}
	}
}

func TestLangevinMiddleThermalizes(t *testing.T) {
	n := 64
	S := mm.NewSystem(n)
	for i := 0; i < n; i++ {
		S.Masses[i] = 18
	}
	pos := v3.Zeros(n)
	x := pos.Raw()
	for i := 0; i < n; i++ { //a loose grid, no interactions
		x[3*i] = float64(i%4) * 2
		x[3*i+1] = float64((i/4)%4) * 2
		x[3*i+2] = float64(i/16) * 2
	}
	for i := range S.Epsilons { //ideal gas
		S.Epsilons[i] = 0
	}
	vel := v3.Zeros(n)
	L := NewLangevinMiddle(300, 5, 0.002)
	L.SetSeed(7)
	//equilibrate, then average
	for i := 0; i < 500; i++ {
		if _, err := L.Step(S, pos, vel); err != nil {
			t.Fatal(err)
		}
	}
	avg := 0.0
	const nsamp = 1500
	for i := 0; i < nsamp; i++ {
		if _, err := L.Step(S, pos, vel); err != nil {
			t.Fatal(err)
		}
		avg += S.Temperature(vel)
	}
	avg /= nsamp
	if math.Abs(avg-300) > 25 {
		t.Errorf("average temperature %v K, want close to 300", avg)
	}
}

func TestLangevinMiddleKeepsConstraints(t *testing.T) {
	S, pos, vel := dimer()
	S.Bonds = nil
	S.Constraints = append(S.Constraints, mm.Constraint{I: 0, J: 1, R: 0.15})
	pos.Raw()[3] = 0.15
	L := NewLangevinMiddle(300, 1, 0.002)
	L.SetSeed(3)
	for i := 0; i < 200; i++ {
		if _, err := L.Step(S, pos, vel); err != nil {
			t.Fatal(err)
		}
		x := pos.Raw()
		dx := x[0] - x[3]
		dy := x[1] - x[4]
		dz := x[2] - x[5]
		r := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if math.Abs(r-0.15) > 1e-4 {
			t.Fatalf("constraint broken at step %d: r = %v", i, r)
		}
	}
}

func TestStepReturnsPotentialEnergy(t *testing.T) {
	S, pos, vel := dimer()
	want, err := S.Energy(pos)
	if err != nil {
		t.Fatal(err)
	}
	L := NewLangevinMiddle(300, 1, 0.001)
	L.SetSeed(1)
	pe, err := L.Step(S, pos, vel)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(pe-want) > 1e-9 {
		t.Errorf("Step returned %v as the initial potential energy, want %v", pe, want)
	}
}
