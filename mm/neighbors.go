/*
 * neighbors.go, part of gomd
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

//the extra shell, in nm, kept around the cutoff so the list survives
//a few steps of motion.
const nlSkin = 0.2

//neighborList is a plain Verlet list: the non-excluded pairs within
//cutoff+skin, rebuilt whenever some particle has moved more than half
//the skin since the last build.
type neighborList struct {
	sys    *System
	pairs  []int32 //i,j i,j i,j ...
	ref    []float64
	skin   float64
	built  bool
	static bool //NoCutoff keeps a single all-pairs list
}

func newNeighborList(S *System) *neighborList {
	nl := &neighborList{sys: S}
	nl.static = S.Method == NoCutoff
	nl.ref = make([]float64, 3*S.N())
	nl.skin = nlSkin
	if S.Method.Periodic() {
		//the list radius must stay below half the box, or minimum
		//imaging misses pairs that later come inside the cutoff. A
		//zero skin degenerates to rebuilding every step.
		half := math.Min(S.Box[0], math.Min(S.Box[1], S.Box[2])) / 2
		if room := half - S.Cutoff; room < nl.skin {
			nl.skin = room
		}
		if nl.skin < 0 {
			nl.skin = 0
		}
	}
	return nl
}

func (nl *neighborList) needsRebuild(x []float64) bool {
	if !nl.built {
		return true
	}
	if nl.static {
		return false
	}
	lim := nl.skin * nl.skin / 4
	for i := 0; i < len(x); i += 3 {
		dx := x[i] - nl.ref[i]
		dy := x[i+1] - nl.ref[i+1]
		dz := x[i+2] - nl.ref[i+2]
		if dx*dx+dy*dy+dz*dz > lim {
			return true
		}
	}
	return false
}

func (nl *neighborList) update(x []float64) {
	if !nl.needsRebuild(x) {
		return
	}
	S := nl.sys
	n := S.N()
	nl.pairs = nl.pairs[:0]
	var rl2 float64
	if !nl.static {
		rl := S.Cutoff + nl.skin
		rl2 = rl * rl
	}
	for i := 0; i < n; i++ {
		xi, yi, zi := x[3*i], x[3*i+1], x[3*i+2]
		for j := i + 1; j < n; j++ {
			if S.Excluded(i, j) {
				continue
			}
			if !nl.static {
				dx, dy, dz := S.mimage(x[3*j]-xi, x[3*j+1]-yi, x[3*j+2]-zi)
				if dx*dx+dy*dy+dz*dz > rl2 {
					continue
				}
			}
			nl.pairs = append(nl.pairs, int32(i), int32(j))
		}
	}
	copy(nl.ref, x)
	nl.built = true
}
