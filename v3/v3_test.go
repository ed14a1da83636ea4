/*
 * v3_test.go, part of gomd
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

package v3

import (
	"math"
	"testing"
)

func TestMatrixBasics(t *testing.T) {
	A, err := NewMatrix([]float64{1, 0, 0, 0, 2, 0, 0, 0, 3})
	if err != nil {
		t.Fatal(err)
	}
	if A.NVecs() != 3 {
		t.Fatalf("NVecs: %d, want 3", A.NVecs())
	}
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		t.Error("NewMatrix accepted a slice with length not divisible by 3")
	}
	v := A.VecView(1)
	if v.Raw()[1] != 2 {
		t.Errorf("VecView(1) = %v", v.Raw())
	}
	v.Raw()[1] = 5 //views share the backing data
	if A.Raw()[4] != 5 {
		t.Error("VecView does not share data with the viewed matrix")
	}
	some, err := A.SomeVecs([]int{0, 2})
	if err != nil {
		t.Fatal(err)
	}
	if some.NVecs() != 2 || some.Raw()[5] != 3 {
		t.Errorf("SomeVecs: %v", some.Raw())
	}
}

func TestDistAngle(t *testing.T) {
	a, _ := NewMatrix([]float64{0, 0, 0})
	b, _ := NewMatrix([]float64{3, 4, 0})
	if d := Dist(a, b); math.Abs(d-5) > 1e-12 {
		t.Errorf("Dist = %v, want 5", d)
	}
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	if ang := Angle(x, y); math.Abs(ang-math.Pi/2) > 1e-12 {
		t.Errorf("Angle = %v, want pi/2", ang)
	}
}

func TestCross(t *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	want := []float64{0, 0, 1}
	for i, v := range z.Raw() {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Fatalf("Cross = %v, want %v", z.Raw(), want)
		}
	}
}

func TestRawStride(t *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	r := A.Raw()
	if len(r) != 6 || r[3] != 4 {
		t.Errorf("Raw = %v", r)
	}
	r[0] = 42
	if A.At(0, 0) != 42 {
		t.Error("Raw does not alias the matrix data")
	}
}
