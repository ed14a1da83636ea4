/*
 * v3.go, part of gomd
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 1e-12 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Matrix is a set of vectors in 3D space. It wraps a gonum Dense
//matrix with exactly 3 columns.
type Matrix struct {
	*mat.Dense
}

//Matrix2Dense returns the gonum Dense matrix underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//Dense2Matrix wraps a gonum Dense matrix into a Matrix. It panics
//if the matrix doesn't have exactly 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//Raw returns the underlying data slice of F. The slice is row-major
//and contiguous only for matrices built by this package, not for views.
func (F *Matrix) Raw() []float64 {
	raw := F.RawMatrix()
	if raw.Stride != 3 {
		panic(ErrStride)
	}
	return raw.Data
}

//VecView returns a view of the ith vector of the matrix in the receiver.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from i,j and spanning r rows and
//c columns. Changes in the view are reflected in F and vice-versa.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	ret := F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)
	return &Matrix{ret}
}

//SomeVecs returns a new matrix with copies of the vectors of F
//with the indexes given in clist.
func (F *Matrix) SomeVecs(clist []int) (*Matrix, error) {
	tot := F.NVecs()
	ret := Zeros(len(clist))
	for k, j := range clist {
		if j >= tot {
			return nil, Error{fmt.Sprintf("Vector requested (%d) out of range", j), []string{"SomeVecs"}, true}
		}
		ret.Set(k, 0, F.At(j, 0))
		ret.Set(k, 1, F.At(j, 1))
		ret.Set(k, 2, F.At(j, 2))
	}
	return ret, nil
}

//SetMatrix puts the matrix A in the receiver, starting from the ith row
//and jth col of the receiver.
func (F *Matrix) SetMatrix(i, j int, A *Matrix) {
	ar, ac := A.Dims()
	if ar+i > F.NVecs() || ac+j > 3 {
		panic(ErrShape)
	}
	for k := 0; k < ar; k++ {
		for l := 0; l < ac; l++ {
			F.Set(i+k, j+l, A.At(k, l))
		}
	}
}

//SwapVecs swaps the vectors i and j of the receiver.
func (F *Matrix) SwapVecs(i, j int) {
	if i >= F.NVecs() || j >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	for k := 0; k < 3; k++ {
		vi := F.At(i, k)
		F.Set(i, k, F.At(j, k))
		F.Set(j, k, vi)
	}
}

//Add puts in the receiver the sum A+B. The three matrices must
//have matching dimensions.
func (F *Matrix) Add(A, B *Matrix) {
	F.Dense.Add(A.Dense, B.Dense)
}

//Sub puts in the receiver the difference A-B.
func (F *Matrix) Sub(A, B *Matrix) {
	F.Dense.Sub(A.Dense, B.Dense)
}

//Scale puts in the receiver the matrix A scaled by the factor v.
func (F *Matrix) Scale(v float64, A *Matrix) {
	F.Dense.Scale(v, A.Dense)
}

//AddVec adds the vector vec to every vector of A, putting the
//result in the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, _ := A.Dims()
	rr, _ := vec.Dims()
	fr, _ := F.Dims()
	if rr != 1 || ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for k := 0; k < 3; k++ {
			F.Set(i, k, A.At(i, k)+vec.At(0, k))
		}
	}
}

//SubVec subtracts the vector vec from every vector of A, putting the
//result in the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar, _ := A.Dims()
	rr, _ := vec.Dims()
	fr, _ := F.Dims()
	if rr != 1 || ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for k := 0; k < 3; k++ {
			F.Set(i, k, A.At(i, k)-vec.At(0, k))
		}
	}
}

//Dot returns the dot product between the receiver and B, both of
//which must be 1x3 vectors.
func (F *Matrix) Dot(B *Matrix) float64 {
	if F.NVecs() != 1 || B.NVecs() != 1 {
		panic(ErrNotVector)
	}
	return F.At(0, 0)*B.At(0, 0) + F.At(0, 1)*B.At(0, 1) + F.At(0, 2)*B.At(0, 2)
}

//Cross puts in the receiver the cross product of the 1x3 vectors A and B.
func (F *Matrix) Cross(A, B *Matrix) {
	if F.NVecs() != 1 || A.NVecs() != 1 || B.NVecs() != 1 {
		panic(ErrNoCrossProduct)
	}
	a0, a1, a2 := A.At(0, 0), A.At(0, 1), A.At(0, 2)
	b0, b1, b2 := B.At(0, 0), B.At(0, 1), B.At(0, 2)
	F.Set(0, 0, a1*b2-a2*b1)
	F.Set(0, 1, a2*b0-a0*b2)
	F.Set(0, 2, a0*b1-a1*b0)
}

//Norm returns the euclidean norm of the receiver, which must be a
//1x3 vector.
func (F *Matrix) Norm() float64 {
	if F.NVecs() != 1 {
		panic(ErrNotVector)
	}
	return math.Sqrt(F.Dot(F))
}

//Unit puts in the receiver the unit vector in the direction of the
//1x3 vector A.
func (F *Matrix) Unit(A *Matrix) {
	n := A.Norm()
	if n <= appzero {
		panic(ErrZeroVector)
	}
	F.Scale(1/n, A)
}

//Copy copies A into the receiver, which must have the same dimensions.
func (F *Matrix) Copy(A *Matrix) {
	ar, _ := A.Dims()
	fr, _ := F.Dims()
	if ar != fr {
		panic(ErrShape)
	}
	F.Dense.Copy(A.Dense)
}

//Dist returns the euclidean distance between the 1x3 vectors a and b.
func Dist(a, b *Matrix) float64 {
	dx := a.At(0, 0) - b.At(0, 0)
	dy := a.At(0, 1) - b.At(0, 1)
	dz := a.At(0, 2) - b.At(0, 2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

//Angle returns the angle, in radians, between the 1x3 vectors a and b.
func Angle(a, b *Matrix) float64 {
	arg := a.Dot(b) / (a.Norm() * b.Norm())
	//floating point can push the argument marginally out of [-1,1]
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	return math.Acos(arg)
}

//Errors

//Error is the error type for the v3 package. The Decorate method
//allows adding information to the error as it is passed up, without
//changing its type.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics. It does satisfy the error
//interface, but for returned errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("goMD/v3: A Matrix should have 3 columns")
	ErrNoCrossProduct  = PanicMsg("goMD/v3: Invalid vectors for cross product")
	ErrNotVector       = PanicMsg("goMD/v3: A 1x3 vector is required")
	ErrZeroVector      = PanicMsg("goMD/v3: Can't normalize a zero vector")
	ErrShape           = PanicMsg("goMD/v3: Dimension mismatch")
	ErrStride          = PanicMsg("goMD/v3: Raw access needs a contiguous matrix")
	ErrIndexOutOfRange = PanicMsg("goMD/v3: index out of range")
)
