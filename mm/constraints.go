/*
 * constraints.go, part of gomd
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

	v3 "github.com/rmera/gomd/v3"
)

//default settings for the iterative constraint solvers.
const (
	shakeTol     = 1e-6
	shakeMaxIter = 150
)

//ApplyConstraints moves the positions in pos so every distance
//constraint is satisfied within tol (relative), using SHAKE iterations
//with the constraint directions taken from the reference positions
//ref. ref are, in dynamics, the positions at the start of the step.
//If tol<=0 or maxIter<=0 the defaults are used.
func (S *System) ApplyConstraints(pos, ref *v3.Matrix, tol float64, maxIter int) error {
	if len(S.Constraints) == 0 {
		return nil
	}
	if tol <= 0 {
		tol = shakeTol
	}
	if maxIter <= 0 {
		maxIter = shakeMaxIter
	}
	x := pos.Raw()
	xr := ref.Raw()
	for iter := 0; iter < maxIter; iter++ {
		done := true
		for _, c := range S.Constraints {
			i, j := c.I, c.J
			dx := x[3*i] - x[3*j]
			dy := x[3*i+1] - x[3*j+1]
			dz := x[3*i+2] - x[3*j+2]
			r2 := dx*dx + dy*dy + dz*dz
			d2 := c.R * c.R
			diff := r2 - d2
			if math.Abs(diff) < 2*tol*d2 {
				continue
			}
			done = false
			rx := xr[3*i] - xr[3*j]
			ry := xr[3*i+1] - xr[3*j+1]
			rz := xr[3*i+2] - xr[3*j+2]
			rpr := rx*dx + ry*dy + rz*dz
			if math.Abs(rpr) < 1e-10 {
				return fmt.Errorf("goMD/mm: SHAKE failure, constraint %d-%d rotated too far", i, j)
			}
			invmi := 1 / S.Masses[i]
			invmj := 1 / S.Masses[j]
			g := diff / (2 * (invmi + invmj) * rpr)
			x[3*i] -= g * invmi * rx
			x[3*i+1] -= g * invmi * ry
			x[3*i+2] -= g * invmi * rz
			x[3*j] += g * invmj * rx
			x[3*j+1] += g * invmj * ry
			x[3*j+2] += g * invmj * rz
		}
		if done {
			return nil
		}
	}
	return fmt.Errorf("goMD/mm: SHAKE did not converge in %d iterations", maxIter)
}

//ConstrainVelocities projects out, RATTLE-style, the velocity
//components along each constraint. pos must already satisfy the
//constraints. If tol<=0 or maxIter<=0 the defaults are used.
func (S *System) ConstrainVelocities(pos, vel *v3.Matrix, tol float64, maxIter int) error {
	if len(S.Constraints) == 0 {
		return nil
	}
	if tol <= 0 {
		tol = shakeTol
	}
	if maxIter <= 0 {
		maxIter = shakeMaxIter
	}
	x := pos.Raw()
	v := vel.Raw()
	for iter := 0; iter < maxIter; iter++ {
		done := true
		for _, c := range S.Constraints {
			i, j := c.I, c.J
			rx := x[3*i] - x[3*j]
			ry := x[3*i+1] - x[3*j+1]
			rz := x[3*i+2] - x[3*j+2]
			vx := v[3*i] - v[3*j]
			vy := v[3*i+1] - v[3*j+1]
			vz := v[3*i+2] - v[3*j+2]
			rv := rx*vx + ry*vy + rz*vz
			d2 := c.R * c.R
			if math.Abs(rv) < tol*d2 {
				continue
			}
			done = false
			invmi := 1 / S.Masses[i]
			invmj := 1 / S.Masses[j]
			g := rv / ((invmi + invmj) * d2)
			v[3*i] -= g * invmi * rx
			v[3*i+1] -= g * invmi * ry
			v[3*i+2] -= g * invmi * rz
			v[3*j] += g * invmj * rx
			v[3*j+1] += g * invmj * ry
			v[3*j+2] += g * invmj * rz
		}
		if done {
			return nil
		}
	}
	return fmt.Errorf("goMD/mm: RATTLE did not converge in %d iterations", maxIter)
}
