/*
 * simulate.go, part of gomd
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
Package simulate ties a structure, an mm.System and an integrator into
a runnable simulation, in the spirit of other MD packages: set
velocities, minimize, attach reporters, step. Everything operates on
the first frame of the Molecule; the simulation keeps its own position
and velocity matrices and never mutates the input coordinates.
*/
package simulate

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	md "github.com/rmera/gomd"
	"github.com/rmera/gomd/integrate"
	"github.com/rmera/gomd/mm"
	v3 "github.com/rmera/gomd/v3"
)

//Simulation binds a molecule, the mm.System built from it and an
//integrator. Reporters attached with AddReporter are run every
//Interval() steps during Step.
type Simulation struct {
	mol  *md.Molecule
	sys  *mm.System
	intg integrate.Integrator

	pos *v3.Matrix
	vel *v3.Matrix

	step      int
	reporters []Reporter
}

//New returns a Simulation over mol and sys, starting from the first
//frame of mol, with zero velocities.
func New(mol *md.Molecule, sys *mm.System, intg integrate.Integrator) (*Simulation, error) {
	if err := mol.Corrupted(); err != nil {
		return nil, err
	}
	if mol.Len() != sys.N() {
		return nil, errorf("New: the molecule has %d atoms but the system %d particles", mol.Len(), sys.N())
	}
	S := &Simulation{mol: mol, sys: sys, intg: intg}
	S.pos = v3.Zeros(mol.Len())
	S.pos.Copy(mol.Coords[0])
	S.vel = v3.Zeros(mol.Len())
	return S, nil
}

//System returns the mm.System of the simulation.
func (S *Simulation) System() *mm.System { return S.sys }

//Molecule returns the molecule of the simulation.
func (S *Simulation) Molecule() *md.Molecule { return S.mol }

//Positions returns the current positions. The returned matrix is the
//live one, not a copy.
func (S *Simulation) Positions() *v3.Matrix { return S.pos }

//Velocities returns the current velocities, nm/ps. The returned
//matrix is the live one, not a copy.
func (S *Simulation) Velocities() *v3.Matrix { return S.vel }

//CurrentStep returns the number of dynamics steps taken so far.
func (S *Simulation) CurrentStep() int { return S.step }

//SetPositions replaces the current positions with a copy of pos.
func (S *Simulation) SetPositions(pos *v3.Matrix) {
	S.pos.Copy(pos)
}

//AddReporter attaches a reporter. Reporters are run in the order they
//were added.
func (S *Simulation) AddReporter(r Reporter) {
	S.reporters = append(S.reporters, r)
}

//SetVelocitiesToTemperature draws the velocities from the
//Maxwell-Boltzmann distribution at temp K, removes the center of mass
//motion and projects out the components along the constraints. With a
//seed given the draw is reproducible.
func (S *Simulation) SetVelocitiesToTemperature(temp float64, seed ...uint64) error {
	var src rand.Source
	if len(seed) > 0 {
		src = rand.NewSource(seed[0])
	} else {
		src = rand.NewSource(rand.Uint64())
	}
	v := S.vel.Raw()
	for i, m := range S.sys.Masses {
		dist := distuv.Normal{Mu: 0, Sigma: math.Sqrt(mm.KB * temp / m), Src: src}
		v[3*i] = dist.Rand()
		v[3*i+1] = dist.Rand()
		v[3*i+2] = dist.Rand()
	}
	S.sys.RemoveCOMMotion(S.vel)
	if err := S.sys.ConstrainVelocities(S.pos, S.vel, 0, 0); err != nil {
		return errDecorate(err, "SetVelocitiesToTemperature")
	}
	return nil
}

//Step advances the simulation n steps, running the attached reporters
//at their intervals. On systems flagged with RemoveCOM the center of
//mass motion is taken out after every step, so the thermostat does not
//slowly heat a drifting box.
func (S *Simulation) Step(n int) error {
	for i := 0; i < n; i++ {
		if _, err := S.intg.Step(S.sys, S.pos, S.vel); err != nil {
			return errDecorate(err, "Step")
		}
		if S.sys.RemoveCOM {
			S.sys.RemoveCOMMotion(S.vel)
		}
		S.step++
		if err := S.report(); err != nil {
			return errDecorate(err, "Step")
		}
	}
	return nil
}

func (S *Simulation) report() error {
	var st *State
	for _, r := range S.reporters {
		iv := r.Interval()
		if iv <= 0 || S.step%iv != 0 {
			continue
		}
		if st == nil {
			pe, err := S.sys.Energy(S.pos)
			if err != nil {
				return err
			}
			st = &State{
				Step:            S.step,
				Time:            float64(S.step) * S.intg.Timestep(),
				PotentialEnergy: pe,
				KineticEnergy:   S.sys.KineticEnergy(S.vel),
				Temperature:     S.sys.Temperature(S.vel),
				Positions:       S.pos,
				Box:             S.sys.Box,
			}
		}
		if err := r.Report(st); err != nil {
			return err
		}
	}
	return nil
}

//Close closes every attached reporter, keeping the first error.
func (S *Simulation) Close() error {
	var first error
	for _, r := range S.reporters {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
