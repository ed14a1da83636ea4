/*
 * ewald.go, part of gomd
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

import "math"

//ewaldRecip computes the reciprocal-space part of the Ewald sum:
//E = (1/4pi eps0)(2pi/V) sum_{k!=0} exp(-k^2/4a^2)/k^2 |S(k)|^2
//with the structure factor S(k) = sum_j q_j exp(i k.r_j). The k
//vectors run over the full (positive and negative) lattice, which
//makes the formula above exact with no extra factors.
func (S *System) ewaldRecip(x, f []float64) float64 {
	n := S.N()
	vol := S.Box[0] * S.Box[1] * S.Box[2]
	pref := ONE4PIEPS0 * 2 * math.Pi / vol
	fourAlpha2 := 4 * S.alpha * S.alpha
	twoPi := 2 * math.Pi
	energy := 0.0
	cosk := make([]float64, n)
	sink := make([]float64, n)
	for kx := -S.kmax[0]; kx <= S.kmax[0]; kx++ {
		gx := twoPi * float64(kx) / S.Box[0]
		for ky := -S.kmax[1]; ky <= S.kmax[1]; ky++ {
			gy := twoPi * float64(ky) / S.Box[1]
			for kz := -S.kmax[2]; kz <= S.kmax[2]; kz++ {
				if kx == 0 && ky == 0 && kz == 0 {
					continue
				}
				gz := twoPi * float64(kz) / S.Box[2]
				k2 := gx*gx + gy*gy + gz*gz
				ak := pref * math.Exp(-k2/fourAlpha2) / k2
				var ck, sk float64
				for i := 0; i < n; i++ {
					kr := gx*x[3*i] + gy*x[3*i+1] + gz*x[3*i+2]
					c := math.Cos(kr)
					s := math.Sin(kr)
					cosk[i] = c
					sink[i] = s
					ck += S.Charges[i] * c
					sk += S.Charges[i] * s
				}
				energy += ak * (ck*ck + sk*sk)
				if f != nil {
					for i := 0; i < n; i++ {
						//F_i = 2 ak q_i (sin(k.r_i) Ck - cos(k.r_i) Sk) k
						fac := 2 * ak * S.Charges[i] * (sink[i]*ck - cosk[i]*sk)
						f[3*i] += fac * gx
						f[3*i+1] += fac * gy
						f[3*i+2] += fac * gz
					}
				}
			}
		}
	}
	return energy
}

//ewaldExclusions removes the reciprocal-space contribution of the
//excluded pairs (which includes the 1-4 pairs; their scaled direct
//interaction is evaluated separately): for each excluded pair,
//-qq erf(a r)/r.
func (S *System) ewaldExclusions(x, f []float64) float64 {
	energy := 0.0
	sqrtPi := math.Sqrt(math.Pi)
	for _, p := range S.exclPairs {
		i, j := p.I, p.J
		dx, dy, dz := S.mimage(x[3*j]-x[3*i], x[3*j+1]-x[3*i+1], x[3*j+2]-x[3*i+2])
		r2 := dx*dx + dy*dy + dz*dz
		r := math.Sqrt(r2)
		if r < 1e-6 {
			continue
		}
		qq := ONE4PIEPS0 * S.Charges[i] * S.Charges[j]
		erfv := math.Erf(S.alpha * r)
		energy -= qq * erfv / r
		if f != nil {
			//minus the gradient of -qq erf(a r)/r
			fac := -qq * (erfv/r - 2*S.alpha/sqrtPi*math.Exp(-S.alpha*S.alpha*r2)) / r2
			f[3*j] += fac * dx
			f[3*j+1] += fac * dy
			f[3*j+2] += fac * dz
			f[3*i] -= fac * dx
			f[3*i+1] -= fac * dy
			f[3*i+2] -= fac * dz
		}
	}
	return energy
}
