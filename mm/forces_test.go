/*
 * forces_test.go, part of gomd
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

package mm

import (
	"math"
	"testing"

	v3 "github.com/rmera/gomd/v3"
)

func newPos(t *testing.T, data []float64) *v3.Matrix {
	t.Helper()
	m, err := v3.NewMatrix(data)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestHarmonicBond(t *testing.T) {
	S := NewSystem(2)
	S.Masses[0], S.Masses[1] = 12, 12
	S.Bonds = append(S.Bonds, BondTerm{I: 0, J: 1, R0: 0.15, K: 2e5})
	pos := newPos(t, []float64{0, 0, 0, 0.17, 0, 0})
	frc := v3.Zeros(2)
	e, err := S.Forces(pos, frc)
	if err != nil {
		t.Fatal(err)
	}
	want := 0.5 * 2e5 * 0.02 * 0.02
	if math.Abs(e-want) > 1e-8 {
		t.Errorf("bond energy %v, want %v", e, want)
	}
	//the bond is stretched, so atom 1 is pulled in -x
	f := frc.Raw()
	if math.Abs(f[3]+2e5*0.02) > 1e-6 {
		t.Errorf("force on atom 1: %v, want %v", f[3], -2e5*0.02)
	}
	if math.Abs(f[0]+f[3]) > 1e-9 || f[1] != 0 || f[4] != 0 {
		t.Errorf("forces not equal and opposite: %v", f)
	}
}

func TestCoulomb(t *testing.T) {
	S := NewSystem(2)
	S.Masses[0], S.Masses[1] = 1, 1
	S.Charges[0], S.Charges[1] = 1, -1
	pos := newPos(t, []float64{0, 0, 0, 0.5, 0, 0})
	frc := v3.Zeros(2)
	e, err := S.Forces(pos, frc)
	if err != nil {
		t.Fatal(err)
	}
	want := -ONE4PIEPS0 / 0.5
	if math.Abs(e-want) > 1e-8 {
		t.Errorf("Coulomb energy %v, want %v", e, want)
	}
	//opposite charges attract: atom 1 is pulled in -x
	f := frc.Raw()
	wantf := -ONE4PIEPS0 / (0.5 * 0.5)
	if math.Abs(f[3]-wantf) > 1e-6 {
		t.Errorf("force on atom 1: %v, want %v", f[3], wantf)
	}
}

func TestLJMinimum(t *testing.T) {
	S := NewSystem(2)
	S.Masses[0], S.Masses[1] = 1, 1
	sigma, eps := 0.3, 0.5
	S.Sigmas[0], S.Sigmas[1] = sigma, sigma
	S.Epsilons[0], S.Epsilons[1] = eps, eps
	rmin := sigma * math.Pow(2, 1.0/6)
	pos := newPos(t, []float64{0, 0, 0, rmin, 0, 0})
	frc := v3.Zeros(2)
	e, err := S.Forces(pos, frc)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(e+eps) > 1e-10 {
		t.Errorf("LJ energy at the minimum: %v, want %v", e, -eps)
	}
	if math.Abs(frc.Raw()[3]) > 1e-8 {
		t.Errorf("nonzero force at the LJ minimum: %v", frc.Raw()[3])
	}
}

//numForces computes -dE/dx by central differences.
func numForces(t *testing.T, S *System, pos *v3.Matrix) []float64 {
	t.Helper()
	x := pos.Raw()
	nf := make([]float64, len(x))
	h := 1e-6
	for i := range x {
		orig := x[i]
		x[i] = orig + h
		ep, err := S.Energy(pos)
		if err != nil {
			t.Fatal(err)
		}
		x[i] = orig - h
		em, err := S.Energy(pos)
		if err != nil {
			t.Fatal(err)
		}
		x[i] = orig
		nf[i] = -(ep - em) / (2 * h)
	}
	return nf
}

func compareForces(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	for i := range want {
		diff := math.Abs(got[i] - want[i])
		scale := math.Abs(want[i])
		if scale < 1 {
			scale = 1
		}
		if diff/scale > tol {
			t.Errorf("force component %d: analytic %v, numeric %v", i, got[i], want[i])
		}
	}
}

//a bonded 4-atom chain with charges and LJ, so every bonded term plus
//the 1-4 machinery contributes to the gradient check.
func chainSystem() *System {
	S := NewSystem(4)
	for i := range S.Masses {
		S.Masses[i] = 12
		S.Sigmas[i] = 0.34
		S.Epsilons[i] = 0.4
	}
	S.Charges[0], S.Charges[1], S.Charges[2], S.Charges[3] = 0.2, -0.2, -0.2, 0.2
	S.Bonds = []BondTerm{
		{0, 1, 0.153, 2e5},
		{1, 2, 0.153, 2e5},
		{2, 3, 0.153, 2e5},
	}
	S.Angles = []AngleTerm{
		{0, 1, 2, 111 * math.Pi / 180, 400},
		{1, 2, 3, 111 * math.Pi / 180, 400},
	}
	S.Torsions = []TorsionTerm{
		{0, 1, 2, 3, 3, 0, 0.6},
		{0, 1, 2, 3, 1, math.Pi, 0.3},
	}
	S.AddExclusion(0, 1)
	S.AddExclusion(1, 2)
	S.AddExclusion(2, 3)
	S.AddExclusion(0, 2)
	S.AddExclusion(1, 3)
	S.AddExclusion(0, 3)
	S.Pairs14 = []Pair14{{0, 3}}
	return S
}

func TestForcesFiniteDifference(t *testing.T) {
	S := chainSystem()
	pos := newPos(t, []float64{
		0.00, 0.01, -0.02,
		0.15, 0.02, 0.01,
		0.22, 0.15, 0.03,
		0.37, 0.17, -0.04,
	})
	frc := v3.Zeros(4)
	if _, err := S.Forces(pos, frc); err != nil {
		t.Fatal(err)
	}
	num := numForces(t, S, pos)
	compareForces(t, frc.Raw(), num, 1e-4)
}

//the dihedral gradient distributes forces over the two middle atoms
//with cross terms that are easy to get wrong in sign, so the torsion
//term gets its own check with everything else turned off.
func TestTorsionFiniteDifference(t *testing.T) {
	S := NewSystem(4)
	for i := range S.Masses {
		S.Masses[i] = 12
	}
	S.Torsions = []TorsionTerm{
		{0, 1, 2, 3, 3, 0, 0.6},
		{0, 1, 2, 3, 1, math.Pi, 0.3},
		{0, 1, 2, 3, 2, math.Pi, 10.46},
	}
	S.AddExclusion(0, 1)
	S.AddExclusion(0, 2)
	S.AddExclusion(0, 3)
	S.AddExclusion(1, 2)
	S.AddExclusion(1, 3)
	S.AddExclusion(2, 3)
	//a skewed, non-planar geometry, so the b1.b2 and b3.b2 projections
	//on the central bond are both far from zero
	pos := newPos(t, []float64{
		0.00, 0.00, 0.00,
		0.15, 0.00, 0.00,
		0.21, 0.13, 0.05,
		0.30, 0.19, -0.08,
	})
	frc := v3.Zeros(4)
	if _, err := S.Forces(pos, frc); err != nil {
		t.Fatal(err)
	}
	num := numForces(t, S, pos)
	compareForces(t, frc.Raw(), num, 1e-5)
	//a torsion exerts no net force or torque; the net force catches
	//errors in how the middle atoms share the load
	f := frc.Raw()
	for d := 0; d < 3; d++ {
		net := f[d] + f[3+d] + f[6+d] + f[9+d]
		if math.Abs(net) > 1e-8 {
			t.Errorf("net torsion force along axis %d: %v", d, net)
		}
	}
}

func TestEwaldFiniteDifference(t *testing.T) {
	S := NewSystem(3)
	for i := range S.Masses {
		S.Masses[i] = 16
		S.Sigmas[i] = 0.3
		S.Epsilons[i] = 0.6
	}
	S.Charges[0], S.Charges[1], S.Charges[2] = -0.8, 0.4, 0.4
	S.Method = PME
	S.Cutoff = 0.9
	S.Box = [3]float64{2.0, 2.0, 2.0}
	S.AddExclusion(0, 1)
	S.AddExclusion(0, 2)
	S.AddExclusion(1, 2)
	pos := newPos(t, []float64{
		1.00, 1.00, 1.00,
		1.10, 1.00, 1.00,
		0.97, 1.09, 1.00,
	})
	frc := v3.Zeros(3)
	e, err := S.Forces(pos, frc)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(e) || math.IsInf(e, 0) {
		t.Fatalf("Ewald energy is not finite: %v", e)
	}
	num := numForces(t, S, pos)
	compareForces(t, frc.Raw(), num, 1e-3)
}

func TestEwaldNeutralPairAttracts(t *testing.T) {
	S := NewSystem(2)
	S.Masses[0], S.Masses[1] = 23, 35.5
	S.Charges[0], S.Charges[1] = 1, -1
	S.Method = Ewald
	S.Cutoff = 0.9
	S.Box = [3]float64{2.5, 2.5, 2.5}
	pos := newPos(t, []float64{1.0, 1.25, 1.25, 1.5, 1.25, 1.25})
	frc := v3.Zeros(2)
	if _, err := S.Forces(pos, frc); err != nil {
		t.Fatal(err)
	}
	f := frc.Raw()
	if f[0] <= 0 || f[3] >= 0 {
		t.Errorf("opposite charges should attract under Ewald, got fx %v and %v", f[0], f[3])
	}
}

func TestSHAKE(t *testing.T) {
	S := NewSystem(2)
	S.Masses[0], S.Masses[1] = 16, 1
	S.Constraints = []Constraint{{0, 1, 0.1}}
	ref := newPos(t, []float64{0, 0, 0, 0.1, 0, 0})
	pos := newPos(t, []float64{0.001, 0.002, 0, 0.112, -0.003, 0.004})
	if err := S.ApplyConstraints(pos, ref, 0, 0); err != nil {
		t.Fatal(err)
	}
	x := pos.Raw()
	dx := x[0] - x[3]
	dy := x[1] - x[4]
	dz := x[2] - x[5]
	r := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if math.Abs(r-0.1) > 1e-5 {
		t.Errorf("constrained distance %v, want 0.1", r)
	}
}

func TestConstrainVelocities(t *testing.T) {
	S := NewSystem(2)
	S.Masses[0], S.Masses[1] = 16, 1
	S.Constraints = []Constraint{{0, 1, 0.1}}
	pos := newPos(t, []float64{0, 0, 0, 0.1, 0, 0})
	vel := newPos(t, []float64{0.5, 0.1, 0, -1.2, 0.3, 0})
	if err := S.ConstrainVelocities(pos, vel, 0, 0); err != nil {
		t.Fatal(err)
	}
	v := vel.Raw()
	//relative velocity along the constraint must vanish
	rv := (v[0] - v[3]) * 0.1
	if math.Abs(rv) > 1e-6 {
		t.Errorf("velocity along the constraint after RATTLE: %v", rv)
	}
}

func TestTemperatureAndDOF(t *testing.T) {
	S := NewSystem(10)
	for i := range S.Masses {
		S.Masses[i] = 18
	}
	//nothing removes the center of mass motion here, so all 3N
	//degrees of freedom carry kinetic energy
	if dof := S.DOF(); dof != 30 {
		t.Errorf("DOF = %d, want 30", dof)
	}
	S.RemoveCOM = true
	if dof := S.DOF(); dof != 27 {
		t.Errorf("DOF with COM removal = %d, want 27", dof)
	}
	S.Constraints = append(S.Constraints, Constraint{0, 1, 0.1})
	if dof := S.DOF(); dof != 26 {
		t.Errorf("DOF with one constraint = %d, want 26", dof)
	}
	vel := v3.Zeros(10)
	v := vel.Raw()
	for i := range v {
		v[i] = 0.3
	}
	ke := S.KineticEnergy(vel)
	wantKE := 0.5 * 18 * 0.09 * 30
	if math.Abs(ke-wantKE) > 1e-9 {
		t.Errorf("kinetic energy %v, want %v", ke, wantKE)
	}
	temp := S.Temperature(vel)
	wantT := 2 * wantKE / (26 * KB)
	if math.Abs(temp-wantT) > 1e-6 {
		t.Errorf("temperature %v, want %v", temp, wantT)
	}
}

func TestRemoveCOMMotion(t *testing.T) {
	S := NewSystem(3)
	S.Masses[0], S.Masses[1], S.Masses[2] = 1, 2, 3
	vel := newPos(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	S.RemoveCOMMotion(vel)
	v := vel.Raw()
	var px, py, pz float64
	for i, m := range S.Masses {
		px += m * v[3*i]
		py += m * v[3*i+1]
		pz += m * v[3*i+2]
	}
	if math.Abs(px) > 1e-12 || math.Abs(py) > 1e-12 || math.Abs(pz) > 1e-12 {
		t.Errorf("COM momentum left after removal: %v %v %v", px, py, pz)
	}
}

//with the box exactly twice the cutoff there is no room for the list
//skin; the list must not cache pairs out across the half-box boundary.
func TestNeighborListTightBox(t *testing.T) {
	build := func() *System {
		S := NewSystem(2)
		S.Masses[0], S.Masses[1] = 23, 35.5
		S.Charges[0], S.Charges[1] = 1, -1
		S.Method = Ewald
		S.Cutoff = 1.0
		S.Box = [3]float64{2.0, 2.0, 2.0}
		return S
	}
	S := build()
	//start on a diagonal just outside the cutoff (minimum image
	//distance 1.13 nm; along a single axis nothing can be outside it)
	pos := newPos(t, []float64{0.1, 0.1, 0.5, 0.9, 0.9, 0.5})
	if _, err := S.Energy(pos); err != nil {
		t.Fatal(err)
	}
	//drift the pair into the cutoff in small steps, as dynamics would
	x := pos.Raw()
	for i := 0; i < 10; i++ {
		x[3] -= 0.03
		if _, err := S.Energy(pos); err != nil {
			t.Fatal(err)
		}
	}
	e, err := S.Energy(pos)
	if err != nil {
		t.Fatal(err)
	}
	fresh := build()
	want, err := fresh.Energy(pos)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(e-want) > 1e-9 {
		t.Errorf("stale neighbor list: energy %v after drifting, %v from scratch", e, want)
	}
}

func TestPrepareRejectsBadBox(t *testing.T) {
	S := NewSystem(2)
	S.Masses[0], S.Masses[1] = 1, 1
	S.Method = PME
	S.Cutoff = 1.0
	S.Box = [3]float64{1.5, 3, 3} //first side under twice the cutoff
	if err := S.Prepare(); err == nil {
		t.Error("Prepare accepted a box smaller than twice the cutoff")
	}
}
