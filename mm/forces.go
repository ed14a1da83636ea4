/*
 * forces.go, part of gomd
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
	"sync"

	v3 "github.com/rmera/gomd/v3"
)

//Energy returns the potential energy, in kJ/mol, for the positions
//given (nm).
func (S *System) Energy(pos *v3.Matrix) (float64, error) {
	return S.Forces(pos, nil)
}

//Forces computes the forces for the positions given, putting them in
//frc (kJ/(mol nm)), and returns the potential energy. frc may be nil,
//in which case only the energy is computed.
func (S *System) Forces(pos, frc *v3.Matrix) (float64, error) {
	if !S.prepared {
		if err := S.Prepare(); err != nil {
			return 0, err
		}
	}
	if pos.NVecs() != S.N() {
		return 0, &Error{message: "Forces: positions don't match the system size", deco: []string{"Forces"}}
	}
	x := pos.Raw()
	var f []float64
	if frc != nil {
		f = frc.Raw()
		for i := range f {
			f[i] = 0
		}
	}
	energy := S.bondEnergy(x, f)
	energy += S.angleEnergy(x, f)
	energy += S.torsionEnergy(x, f)
	S.nl.update(x)
	energy += S.nonbonded(x, f)
	energy += S.pairs14(x, f)
	if S.Method == Ewald || S.Method == PME {
		energy += S.ewaldRecip(x, f)
		energy += S.ewaldExclusions(x, f)
		energy += S.selfEnergy
		//neutralizing background for systems with a net charge
		vol := S.Box[0] * S.Box[1] * S.Box[2]
		energy -= ONE4PIEPS0 * math.Pi / (2 * vol * S.alpha * S.alpha) * S.netQ * S.netQ
	}
	return energy, nil
}

func (S *System) bondEnergy(x, f []float64) float64 {
	e := 0.0
	for _, b := range S.Bonds {
		dx := x[3*b.I] - x[3*b.J]
		dy := x[3*b.I+1] - x[3*b.J+1]
		dz := x[3*b.I+2] - x[3*b.J+2]
		r := math.Sqrt(dx*dx + dy*dy + dz*dz)
		dr := r - b.R0
		e += 0.5 * b.K * dr * dr
		if f != nil && r > 0 {
			fac := -b.K * dr / r
			f[3*b.I] += fac * dx
			f[3*b.I+1] += fac * dy
			f[3*b.I+2] += fac * dz
			f[3*b.J] -= fac * dx
			f[3*b.J+1] -= fac * dy
			f[3*b.J+2] -= fac * dz
		}
	}
	return e
}

func (S *System) angleEnergy(x, f []float64) float64 {
	e := 0.0
	for _, a := range S.Angles {
		//rij and rkj, the two arms of the angle
		ijx := x[3*a.I] - x[3*a.J]
		ijy := x[3*a.I+1] - x[3*a.J+1]
		ijz := x[3*a.I+2] - x[3*a.J+2]
		kjx := x[3*a.K] - x[3*a.J]
		kjy := x[3*a.K+1] - x[3*a.J+1]
		kjz := x[3*a.K+2] - x[3*a.J+2]
		rij := math.Sqrt(ijx*ijx + ijy*ijy + ijz*ijz)
		rkj := math.Sqrt(kjx*kjx + kjy*kjy + kjz*kjz)
		if rij == 0 || rkj == 0 {
			continue
		}
		cost := (ijx*kjx + ijy*kjy + ijz*kjz) / (rij * rkj)
		if cost > 1 {
			cost = 1
		} else if cost < -1 {
			cost = -1
		}
		theta := math.Acos(cost)
		dt := theta - a.Theta0
		e += 0.5 * a.F * dt * dt
		if f == nil {
			continue
		}
		sint := math.Sqrt(1 - cost*cost)
		if sint < 1e-8 {
			continue //collinear, force direction undefined
		}
		dEdt := a.F * dt
		//unit vectors
		uijx, uijy, uijz := ijx/rij, ijy/rij, ijz/rij
		ukjx, ukjy, ukjz := kjx/rkj, kjy/rkj, kjz/rkj
		//force on i: -dEdt * dtheta/dri
		fi := -dEdt / (rij * sint)
		fix := fi * (cost*uijx - ukjx)
		fiy := fi * (cost*uijy - ukjy)
		fiz := fi * (cost*uijz - ukjz)
		fk := -dEdt / (rkj * sint)
		fkx := fk * (cost*ukjx - uijx)
		fky := fk * (cost*ukjy - uijy)
		fkz := fk * (cost*ukjz - uijz)
		f[3*a.I] += fix
		f[3*a.I+1] += fiy
		f[3*a.I+2] += fiz
		f[3*a.K] += fkx
		f[3*a.K+1] += fky
		f[3*a.K+2] += fkz
		f[3*a.J] -= fix + fkx
		f[3*a.J+1] -= fiy + fky
		f[3*a.J+2] -= fiz + fkz
	}
	return e
}

func (S *System) torsionEnergy(x, f []float64) float64 {
	e := 0.0
	for _, t := range S.Torsions {
		b1x := x[3*t.J] - x[3*t.I]
		b1y := x[3*t.J+1] - x[3*t.I+1]
		b1z := x[3*t.J+2] - x[3*t.I+2]
		b2x := x[3*t.K] - x[3*t.J]
		b2y := x[3*t.K+1] - x[3*t.J+1]
		b2z := x[3*t.K+2] - x[3*t.J+2]
		b3x := x[3*t.L] - x[3*t.K]
		b3y := x[3*t.L+1] - x[3*t.K+1]
		b3z := x[3*t.L+2] - x[3*t.K+2]
		//normals to the two planes
		n1x := b1y*b2z - b1z*b2y
		n1y := b1z*b2x - b1x*b2z
		n1z := b1x*b2y - b1y*b2x
		n2x := b2y*b3z - b2z*b3y
		n2y := b2z*b3x - b2x*b3z
		n2z := b2x*b3y - b2y*b3x
		n1sq := n1x*n1x + n1y*n1y + n1z*n1z
		n2sq := n2x*n2x + n2y*n2y + n2z*n2z
		b2norm := math.Sqrt(b2x*b2x + b2y*b2y + b2z*b2z)
		if n1sq < 1e-12 || n2sq < 1e-12 || b2norm < 1e-8 {
			continue
		}
		//phi = atan2((n1 x n2).b2hat, n1.n2)
		cxx := n1y*n2z - n1z*n2y
		cxy := n1z*n2x - n1x*n2z
		cxz := n1x*n2y - n1y*n2x
		sinphi := (cxx*b2x + cxy*b2y + cxz*b2z) / b2norm
		cosphi := n1x*n2x + n1y*n2y + n1z*n2z
		phi := math.Atan2(sinphi, cosphi)
		arg := float64(t.N)*phi - t.Phase
		e += t.Barrier * (1 + math.Cos(arg))
		if f == nil {
			continue
		}
		dEdphi := -t.Barrier * float64(t.N) * math.Sin(arg)
		//classic dihedral force distribution
		fim := dEdphi * b2norm / n1sq
		flm := -dEdphi * b2norm / n2sq
		fix := fim * n1x
		fiy := fim * n1y
		fiz := fim * n1z
		flx := flm * n2x
		fly := flm * n2y
		flz := flm * n2z
		s1 := (b1x*b2x + b1y*b2y + b1z*b2z) / (b2norm * b2norm)
		s2 := (b3x*b2x + b3y*b2y + b3z*b2z) / (b2norm * b2norm)
		fjx := -fix - s1*fix + s2*flx
		fjy := -fiy - s1*fiy + s2*fly
		fjz := -fiz - s1*fiz + s2*flz
		fkx := -flx + s1*fix - s2*flx
		fky := -fly + s1*fiy - s2*fly
		fkz := -flz + s1*fiz - s2*flz
		f[3*t.I] += fix
		f[3*t.I+1] += fiy
		f[3*t.I+2] += fiz
		f[3*t.J] += fjx
		f[3*t.J+1] += fjy
		f[3*t.J+2] += fjz
		f[3*t.K] += fkx
		f[3*t.K+1] += fky
		f[3*t.K+2] += fkz
		f[3*t.L] += flx
		f[3*t.L+1] += fly
		f[3*t.L+2] += flz
	}
	return e
}

//the smallest pair count for which spawning goroutines pays off.
const parThreshold = 2048

//nonbonded evaluates the pairwise LJ+electrostatic interactions over
//the neighbor list, splitting the list across goroutines with one
//force buffer per worker.
func (S *System) nonbonded(x, f []float64) float64 {
	npairs := len(S.nl.pairs) / 2
	nw := S.threads()
	if npairs < parThreshold || nw <= 1 {
		return S.nonbondedRange(x, f, 0, npairs)
	}
	if nw > npairs {
		nw = npairs
	}
	energies := make([]float64, nw)
	buffers := make([][]float64, nw)
	var wg sync.WaitGroup
	chunk := (npairs + nw - 1) / nw
	for w := 0; w < nw; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > npairs {
			hi = npairs
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			var buf []float64
			if f != nil {
				buf = make([]float64, len(f))
				buffers[w] = buf
			}
			energies[w] = S.nonbondedRange(x, buf, lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()
	energy := 0.0
	for w := 0; w < nw; w++ {
		energy += energies[w]
		if f != nil && buffers[w] != nil {
			for i, v := range buffers[w] {
				f[i] += v
			}
		}
	}
	return energy
}

func (S *System) nonbondedRange(x, f []float64, lo, hi int) float64 {
	var krf, crf float64
	rc := S.Cutoff
	rc2 := rc * rc
	if S.Method == CutoffPeriodic {
		eps := S.RFDielectric
		krf = (eps - 1) / (2*eps + 1) / (rc2 * rc)
		crf = 1/rc + krf*rc2
	}
	energy := 0.0
	for p := lo; p < hi; p++ {
		i := int(S.nl.pairs[2*p])
		j := int(S.nl.pairs[2*p+1])
		dx, dy, dz := S.mimage(x[3*j]-x[3*i], x[3*j+1]-x[3*i+1], x[3*j+2]-x[3*i+2])
		r2 := dx*dx + dy*dy + dz*dz
		if S.Method != NoCutoff && r2 > rc2 {
			continue
		}
		r := math.Sqrt(r2)
		if r < 1e-6 {
			continue
		}
		sig := 0.5 * (S.Sigmas[i] + S.Sigmas[j])
		eps := math.Sqrt(S.Epsilons[i] * S.Epsilons[j])
		qq := ONE4PIEPS0 * S.Charges[i] * S.Charges[j]
		var elj, flj, eel, fel float64
		if eps > 0 {
			sr2 := sig * sig / r2
			sr6 := sr2 * sr2 * sr2
			elj = 4 * eps * (sr6*sr6 - sr6)
			flj = 24 * eps * (2*sr6*sr6 - sr6) / r2 //times the distance vector
		}
		switch S.Method {
		case CutoffPeriodic:
			eel = qq * (1/r + krf*r2 - crf)
			fel = qq * (1/(r2*r) - 2*krf)
		case Ewald, PME:
			erfcv := math.Erfc(S.alpha * r)
			eel = qq * erfcv / r
			fel = qq * (erfcv/r + 2*S.alpha/math.Sqrt(math.Pi)*math.Exp(-S.alpha*S.alpha*r2)) / r2
		default:
			eel = qq / r
			fel = qq / (r2 * r)
		}
		energy += elj + eel
		if f != nil {
			fac := flj + fel //force on j along (rj-ri), repulsive when positive
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

//pairs14 evaluates the scaled 1-4 interactions. These pairs are
//excluded from the main nonbonded loop, so the full scaled value is
//computed here (plus the Ewald exclusion correction elsewhere, for the
//periodic methods).
func (S *System) pairs14(x, f []float64) float64 {
	energy := 0.0
	for _, p := range S.Pairs14 {
		i, j := p.I, p.J
		dx := x[3*j] - x[3*i]
		dy := x[3*j+1] - x[3*i+1]
		dz := x[3*j+2] - x[3*i+2]
		r2 := dx*dx + dy*dy + dz*dz
		r := math.Sqrt(r2)
		if r < 1e-6 {
			continue
		}
		sig := 0.5 * (S.Sigmas[i] + S.Sigmas[j])
		eps := math.Sqrt(S.Epsilons[i]*S.Epsilons[j]) * S.LJ14Scale
		qq := ONE4PIEPS0 * S.Charges[i] * S.Charges[j] * S.Coul14Scale
		var elj, flj float64
		if eps > 0 {
			sr2 := sig * sig / r2
			sr6 := sr2 * sr2 * sr2
			elj = 4 * eps * (sr6*sr6 - sr6)
			flj = 24 * eps * (2*sr6*sr6 - sr6) / r2
		}
		eel := qq / r
		fel := qq / (r2 * r)
		energy += elj + eel
		if f != nil {
			fac := flj + fel
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

//Error is the error type for the mm package.
type Error struct {
	message string
	deco    []string
}

func (err *Error) Error() string { return err.message }

//Decorate adds the dec string to the decoration slice of strings of
//the error, and returns the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
