/*
 * integrate.go, part of gomd
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

/*
Package integrate implements the time integrators of goMD. The main
one is LangevinMiddle, the BAOAB "middle" discretization of Langevin
dynamics, which samples the NVT ensemble and tolerates the 4 fs
timesteps customary when bonds to hydrogens are constrained. A plain
velocity-Verlet integrator is also provided, mostly for NVE sanity
checks. Both apply the holonomic constraints of the system via
SHAKE/RATTLE on every step.
*/
package integrate

import (
	"math"
	"math/rand"

	"github.com/rmera/gomd/mm"
	v3 "github.com/rmera/gomd/v3"
)

//Integrator advances positions and velocities by one timestep,
//returning the potential energy at the beginning of the step.
type Integrator interface {
	Step(sys *mm.System, pos, vel *v3.Matrix) (float64, error)
	Timestep() float64 //ps
}

//LangevinMiddle integrates Langevin dynamics with the BAOAB "middle"
//scheme: a full-step kick, a half-step drift, an exact
//Ornstein-Uhlenbeck update of the velocities, and another half-step
//drift. One force evaluation per step.
type LangevinMiddle struct {
	Temp     float64 //K
	Friction float64 //1/ps
	DT       float64 //ps

	rng  *rand.Rand
	frc  *v3.Matrix
	xref *v3.Matrix
}

//NewLangevinMiddle returns a LangevinMiddle integrator with the
//temperature (K), friction (1/ps) and timestep (ps) given.
func NewLangevinMiddle(temp, friction, dt float64) *LangevinMiddle {
	L := &LangevinMiddle{Temp: temp, Friction: friction, DT: dt}
	L.rng = rand.New(rand.NewSource(rand.Int63()))
	return L
}

//SetSeed makes the stochastic part of the integrator reproducible.
//Two runs from the same positions/velocities and the same seed yield
//bit-identical trajectories.
func (L *LangevinMiddle) SetSeed(seed int64) {
	L.rng = rand.New(rand.NewSource(seed))
}

//Timestep returns the timestep, in ps.
func (L *LangevinMiddle) Timestep() float64 { return L.DT }

//Step advances the system by one timestep.
func (L *LangevinMiddle) Step(sys *mm.System, pos, vel *v3.Matrix) (float64, error) {
	n := sys.N()
	if L.frc == nil || L.frc.NVecs() != n {
		L.frc = v3.Zeros(n)
		L.xref = v3.Zeros(n)
	}
	pe, err := sys.Forces(pos, L.frc)
	if err != nil {
		return 0, err
	}
	x := pos.Raw()
	v := vel.Raw()
	f := L.frc.Raw()
	dt := L.DT
	//B: full-step kick
	for i := 0; i < n; i++ {
		im := dt / sys.Masses[i]
		v[3*i] += im * f[3*i]
		v[3*i+1] += im * f[3*i+1]
		v[3*i+2] += im * f[3*i+2]
	}
	if err := sys.ConstrainVelocities(pos, vel, 0, 0); err != nil {
		return pe, err
	}
	L.xref.Copy(pos)
	//A: half-step drift
	for i := 0; i < 3*n; i++ {
		x[i] += 0.5 * dt * v[i]
	}
	//O: exact Ornstein-Uhlenbeck velocity update
	a := math.Exp(-L.Friction * dt)
	b := math.Sqrt(1 - a*a)
	for i := 0; i < n; i++ {
		s := b * math.Sqrt(mm.KB*L.Temp/sys.Masses[i])
		v[3*i] = a*v[3*i] + s*L.rng.NormFloat64()
		v[3*i+1] = a*v[3*i+1] + s*L.rng.NormFloat64()
		v[3*i+2] = a*v[3*i+2] + s*L.rng.NormFloat64()
	}
	//A: second half-step drift
	for i := 0; i < 3*n; i++ {
		x[i] += 0.5 * dt * v[i]
	}
	//constrain the new positions and recover the constrained
	//velocities from the position correction
	if len(sys.Constraints) > 0 {
		unc := make([]float64, 3*n)
		copy(unc, x)
		if err := sys.ApplyConstraints(pos, L.xref, 0, 0); err != nil {
			return pe, err
		}
		for i := 0; i < 3*n; i++ {
			v[i] += (x[i] - unc[i]) / dt
		}
		if err := sys.ConstrainVelocities(pos, vel, 0, 0); err != nil {
			return pe, err
		}
	}
	return pe, nil
}

//VelocityVerlet is a plain NVE velocity-Verlet integrator.
type VelocityVerlet struct {
	DT  float64 //ps
	frc *v3.Matrix
	f2  *v3.Matrix
	xrf *v3.Matrix
}

//NewVelocityVerlet returns a VelocityVerlet integrator with the
//timestep (ps) given.
func NewVelocityVerlet(dt float64) *VelocityVerlet {
	return &VelocityVerlet{DT: dt}
}

//Timestep returns the timestep, in ps.
func (V *VelocityVerlet) Timestep() float64 { return V.DT }

//Step advances the system by one timestep.
func (V *VelocityVerlet) Step(sys *mm.System, pos, vel *v3.Matrix) (float64, error) {
	n := sys.N()
	if V.frc == nil || V.frc.NVecs() != n {
		V.frc = v3.Zeros(n)
		V.f2 = v3.Zeros(n)
		V.xrf = v3.Zeros(n)
	}
	pe, err := sys.Forces(pos, V.frc)
	if err != nil {
		return 0, err
	}
	x := pos.Raw()
	v := vel.Raw()
	f := V.frc.Raw()
	dt := V.DT
	V.xrf.Copy(pos)
	for i := 0; i < n; i++ {
		im := 0.5 * dt / sys.Masses[i]
		v[3*i] += im * f[3*i]
		v[3*i+1] += im * f[3*i+1]
		v[3*i+2] += im * f[3*i+2]
	}
	for i := 0; i < 3*n; i++ {
		x[i] += dt * v[i]
	}
	if len(sys.Constraints) > 0 {
		if err := sys.ApplyConstraints(pos, V.xrf, 0, 0); err != nil {
			return pe, err
		}
	}
	if _, err := sys.Forces(pos, V.f2); err != nil {
		return pe, err
	}
	f2 := V.f2.Raw()
	for i := 0; i < n; i++ {
		im := 0.5 * dt / sys.Masses[i]
		v[3*i] += im * f2[3*i]
		v[3*i+1] += im * f2[3*i+1]
		v[3*i+2] += im * f2[3*i+2]
	}
	if len(sys.Constraints) > 0 {
		if err := sys.ConstrainVelocities(pos, vel, 0, 0); err != nil {
			return pe, err
		}
	}
	return pe, nil
}
