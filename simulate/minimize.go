/*
 * minimize.go, part of gomd
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
	"math"

	"gonum.org/v1/gonum/optimize"

	v3 "github.com/rmera/gomd/v3"
)

//stiffness of the harmonic restraints standing in for the constraints
//during minimization, kJ/(mol nm^2).
const minimRestraintK = 4e5

//MinimizeEnergy relaxes the current positions with L-BFGS until the
//force norm falls under tol kJ/(mol nm), or maxIter iterations. Zero
//values mean 10 kJ/(mol nm) and no iteration limit. Distance
//constraints are represented by stiff harmonic restraints while
//minimizing and enforced exactly afterwards, the same compromise other
//MD engines make.
func (S *Simulation) MinimizeEnergy(tol float64, maxIter int) error {
	if tol <= 0 {
		tol = 10
	}
	if err := S.sys.Prepare(); err != nil {
		return errDecorate(err, "MinimizeEnergy")
	}
	n := S.mol.Len()
	pos := v3.Zeros(n)
	frc := v3.Zeros(n)
	restraints := func(x, g []float64) float64 {
		e := 0.0
		for _, c := range S.sys.Constraints {
			dx := x[3*c.I] - x[3*c.J]
			dy := x[3*c.I+1] - x[3*c.J+1]
			dz := x[3*c.I+2] - x[3*c.J+2]
			r := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if r < 1e-9 {
				continue
			}
			diff := r - c.R
			e += 0.5 * minimRestraintK * diff * diff
			if g != nil {
				fac := minimRestraintK * diff / r
				g[3*c.I] += fac * dx
				g[3*c.I+1] += fac * dy
				g[3*c.I+2] += fac * dz
				g[3*c.J] -= fac * dx
				g[3*c.J+1] -= fac * dy
				g[3*c.J+2] -= fac * dz
			}
		}
		return e
	}
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			copy(pos.Raw(), x)
			e, err := S.sys.Energy(pos)
			if err != nil || math.IsNaN(e) {
				return math.Inf(1)
			}
			return e + restraints(x, nil)
		},
		Grad: func(g, x []float64) {
			copy(pos.Raw(), x)
			if _, err := S.sys.Forces(pos, frc); err != nil {
				for i := range g {
					g[i] = 0
				}
				return
			}
			f := frc.Raw()
			for i := range g {
				g[i] = -f[i]
			}
			restraints(x, g)
		},
	}
	x0 := make([]float64, 3*n)
	copy(x0, S.pos.Raw())
	settings := &optimize.Settings{
		GradientThreshold: tol,
		MajorIterations:   maxIter,
	}
	result, err := optimize.Minimize(problem, x0, settings, &optimize.LBFGS{})
	//a linesearch giving up, or running out of iterations, still
	//leaves a better structure than the input. Only a failure to get
	//any finite energy is fatal.
	if result == nil || result.X == nil || math.IsInf(result.F, 1) || math.IsNaN(result.F) {
		if err != nil {
			return errorf("MinimizeEnergy: %s", err.Error())
		}
		return errorf("MinimizeEnergy: the minimization did not produce a finite energy")
	}
	before := v3.Zeros(n)
	before.Copy(S.pos)
	copy(S.pos.Raw(), result.X)
	if len(S.sys.Constraints) > 0 {
		if err := S.sys.ApplyConstraints(S.pos, before, 0, 0); err != nil {
			return errDecorate(err, "MinimizeEnergy")
		}
	}
	return nil
}
