/*
 * system.go, part of gomd
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
	"fmt"
	"math"
	"runtime"
	"sort"

	v3 "github.com/rmera/gomd/v3"
)

//Physical constants, in the units of the library.
const (
	KB         = 0.00831446261815324 //Boltzmann constant, kJ/(mol K)
	ONE4PIEPS0 = 138.935456          //Coulomb constant, kJ nm/(mol e^2)
)

//NonbondedMethod selects how nonbonded interactions are evaluated.
type NonbondedMethod int

const (
	//NoCutoff evaluates every nonbonded pair, with no periodicity.
	NoCutoff NonbondedMethod = iota
	//CutoffNonPeriodic truncates interactions at the cutoff, with no periodicity.
	CutoffNonPeriodic
	//CutoffPeriodic truncates interactions at the cutoff under periodic
	//boundary conditions, with a reaction-field correction for electrostatics.
	CutoffPeriodic
	//Ewald computes long-range electrostatics with an Ewald summation.
	Ewald
	//PME is accepted as an alias for Ewald: the reciprocal-space part is
	//evaluated by a direct lattice sum rather than on a particle mesh.
	PME
)

func (m NonbondedMethod) String() string {
	switch m {
	case NoCutoff:
		return "NoCutoff"
	case CutoffNonPeriodic:
		return "CutoffNonPeriodic"
	case CutoffPeriodic:
		return "CutoffPeriodic"
	case Ewald:
		return "Ewald"
	case PME:
		return "PME"
	}
	return "Unknown"
}

//Periodic returns whether the method uses periodic boundary conditions.
func (m NonbondedMethod) Periodic() bool {
	return m == CutoffPeriodic || m == Ewald || m == PME
}

//BondTerm is a harmonic bond between atoms I and J:
//E = 0.5*K*(r-R0)^2, with R0 in nm and K in kJ/(mol nm^2).
type BondTerm struct {
	I, J  int
	R0, K float64
}

//AngleTerm is a harmonic angle I-J-K centered on J:
//E = 0.5*K*(theta-Theta0)^2, with Theta0 in radians and
//K in kJ/(mol rad^2).
type AngleTerm struct {
	I, J, K   int
	Theta0, F float64
}

//TorsionTerm is one periodic term of a proper dihedral I-J-K-L:
//E = Barrier*(1+cos(N*phi - Phase)), with Phase in radians and
//Barrier in kJ/mol.
type TorsionTerm struct {
	I, J, K, L     int
	N              int
	Phase, Barrier float64
}

//Pair14 is a pair of atoms separated by exactly three bonds, whose
//nonbonded interaction is scaled instead of excluded.
type Pair14 struct {
	I, J int
}

//Constraint fixes the distance between atoms I and J to R (nm).
type Constraint struct {
	I, J int
	R    float64
}

//System holds everything needed to evaluate the potential energy and
//forces of a molecular system: per-particle parameters, bonded terms,
//exclusions, constraints, the periodic box and the nonbonded settings.
type System struct {
	Masses   []float64 //amu
	Charges  []float64 //e
	Sigmas   []float64 //nm
	Epsilons []float64 //kJ/mol

	Bonds    []BondTerm
	Angles   []AngleTerm
	Torsions []TorsionTerm
	Pairs14  []Pair14

	//AMBER-style scaling for the 1-4 pairs.
	LJ14Scale   float64
	Coul14Scale float64

	Constraints []Constraint

	Box    [3]float64 //orthorhombic cell, nm. All zero if non-periodic.
	Method NonbondedMethod
	Cutoff float64 //nm

	//EwaldTolerance controls the accuracy of the Ewald splitting.
	EwaldTolerance float64
	//RFDielectric is the solvent dielectric for the reaction field
	//used by CutoffPeriodic.
	RFDielectric float64
	//Threads is the number of goroutines used in the nonbonded loop.
	//Zero means GOMAXPROCS.
	Threads int
	//RemoveCOM declares that the dynamics removes the center of mass
	//motion, so DOF discounts those three degrees of freedom.
	RemoveCOM bool

	excl       []map[int]bool
	exclPairs  []Pair14 //flattened i<j exclusions, for the Ewald correction
	nl         *neighborList
	alpha      float64
	kmax       [3]int
	selfEnergy float64
	netQ       float64
	prepared   bool
}

//NewSystem returns a System for n particles, with the default
//nonbonded settings.
func NewSystem(n int) *System {
	S := new(System)
	S.Masses = make([]float64, n)
	S.Charges = make([]float64, n)
	S.Sigmas = make([]float64, n)
	S.Epsilons = make([]float64, n)
	S.excl = make([]map[int]bool, n)
	S.LJ14Scale = 0.5
	S.Coul14Scale = 1.0 / 1.2
	S.Cutoff = 1.0
	S.EwaldTolerance = 5e-4
	S.RFDielectric = 78.3
	return S
}

//N returns the number of particles in the system.
func (S *System) N() int {
	return len(S.Masses)
}

//AddExclusion marks the nonbonded interaction between i and j as
//excluded. Adding the same exclusion twice is harmless.
func (S *System) AddExclusion(i, j int) {
	if i == j {
		panic("goMD/mm: Tried to exclude an atom from itself")
	}
	if S.excl[i] == nil {
		S.excl[i] = make(map[int]bool)
	}
	if S.excl[j] == nil {
		S.excl[j] = make(map[int]bool)
	}
	S.excl[i][j] = true
	S.excl[j][i] = true
	S.prepared = false
}

//Excluded returns whether the pair i,j is excluded from nonbonded
//interactions.
func (S *System) Excluded(i, j int) bool {
	return S.excl[i] != nil && S.excl[i][j]
}

//Prepare validates the system and precomputes the Ewald parameters,
//the exclusion list and the neighbor list machinery. It is called
//automatically on the first force evaluation, and must be called again
//only if terms or exclusions are modified afterwards.
func (S *System) Prepare() error {
	n := S.N()
	if len(S.Charges) != n || len(S.Sigmas) != n || len(S.Epsilons) != n {
		return fmt.Errorf("goMD/mm: inconsistent per-particle parameter lengths")
	}
	for i, m := range S.Masses {
		if m <= 0 {
			return fmt.Errorf("goMD/mm: particle %d has non-positive mass %v", i, m)
		}
	}
	if S.Method.Periodic() {
		for d := 0; d < 3; d++ {
			if S.Box[d] <= 0 {
				return fmt.Errorf("goMD/mm: periodic method %v needs a box, got %v", S.Method, S.Box)
			}
			if S.Box[d] < 2*S.Cutoff {
				return fmt.Errorf("goMD/mm: box side %d (%.3f nm) smaller than twice the cutoff (%.3f nm)", d, S.Box[d], S.Cutoff)
			}
		}
	}
	//flatten the exclusions
	S.exclPairs = S.exclPairs[:0]
	for i := 0; i < n; i++ {
		if S.excl[i] == nil {
			continue
		}
		js := make([]int, 0, len(S.excl[i]))
		for j := range S.excl[i] {
			if j > i {
				js = append(js, j)
			}
		}
		sort.Ints(js)
		for _, j := range js {
			S.exclPairs = append(S.exclPairs, Pair14{i, j})
		}
	}
	if S.Method == Ewald || S.Method == PME {
		tol := S.EwaldTolerance
		if tol <= 0 {
			tol = 5e-4
		}
		S.alpha = math.Sqrt(-math.Log(2*tol)) / S.Cutoff
		for d := 0; d < 3; d++ {
			S.kmax[d] = int(math.Ceil(S.alpha * S.Box[d] * math.Sqrt(-math.Log(tol)) / math.Pi))
			if S.kmax[d] < 1 {
				S.kmax[d] = 1
			}
		}
		q2 := 0.0
		S.netQ = 0
		for _, q := range S.Charges {
			q2 += q * q
			S.netQ += q
		}
		S.selfEnergy = -ONE4PIEPS0 * S.alpha / math.Sqrt(math.Pi) * q2
	}
	S.nl = newNeighborList(S)
	S.prepared = true
	return nil
}

//DOF returns the number of degrees of freedom of the system: three per
//particle, minus one per constraint, minus three for the motion of the
//center of mass when RemoveCOM is set.
func (S *System) DOF() int {
	dof := 3*S.N() - len(S.Constraints)
	if S.RemoveCOM {
		dof -= 3
	}
	return dof
}

//KineticEnergy returns the kinetic energy, in kJ/mol, for the
//velocities given (nm/ps).
func (S *System) KineticEnergy(vel *v3.Matrix) float64 {
	ke := 0.0
	v := vel.Raw()
	for i, m := range S.Masses {
		ke += m * (v[3*i]*v[3*i] + v[3*i+1]*v[3*i+1] + v[3*i+2]*v[3*i+2])
	}
	return 0.5 * ke
}

//Temperature returns the instantaneous temperature, in K, for the
//velocities given.
func (S *System) Temperature(vel *v3.Matrix) float64 {
	return 2 * S.KineticEnergy(vel) / (float64(S.DOF()) * KB)
}

//RemoveCOMMotion subtracts the velocity of the center of mass from
//every particle.
func (S *System) RemoveCOMMotion(vel *v3.Matrix) {
	v := vel.Raw()
	var px, py, pz, mtot float64
	for i, m := range S.Masses {
		px += m * v[3*i]
		py += m * v[3*i+1]
		pz += m * v[3*i+2]
		mtot += m
	}
	px, py, pz = px/mtot, py/mtot, pz/mtot
	for i := range S.Masses {
		v[3*i] -= px
		v[3*i+1] -= py
		v[3*i+2] -= pz
	}
}

func (S *System) threads() int {
	if S.Threads > 0 {
		return S.Threads
	}
	return runtime.GOMAXPROCS(0)
}

//minimum image displacement. Positions are never wrapped by the
//library, so this is only correct for distances below half the box,
//which is enforced by Prepare for the cutoff.
func (S *System) mimage(dx, dy, dz float64) (float64, float64, float64) {
	if !S.Method.Periodic() {
		return dx, dy, dz
	}
	dx -= S.Box[0] * math.Round(dx/S.Box[0])
	dy -= S.Box[1] * math.Round(dy/S.Box[1])
	dz -= S.Box[2] * math.Round(dz/S.Box[2])
	return dx, dy, dz
}
