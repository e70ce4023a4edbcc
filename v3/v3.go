/*
 * v3.go, part of expanded-ensembles.
 *
 * Copyright 2016 the expanded-ensembles developers
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

/*Package v3 implements a Matrix type representing a row-major Nx3 matrix,
used for the Cartesian coordinates of sets of atoms. It is based on gonum's
Dense type, with the fixed number of columns enforced, plus the functions
found useful for the purposes of this library.*/
package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 1e-12 //everything equal or less than this is considered zero

// Matrix is a set of vectors in 3D space, one per row.
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols = 3
	return &Matrix{mat.NewDense(vecs, cols, make([]float64, cols*vecs))}
}

// NewMatrix generates a Matrix with 3 columns from data, which must have a
// length divisible by 3.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols = 3
	l := len(data)
	if l%cols != 0 {
		return nil, fmt.Errorf("v3: input slice length %d not divisible by %d", l, cols)
	}
	return &Matrix{mat.NewDense(l/cols, cols, data)}, nil
}

// Dense2Matrix wraps a gonum Dense with 3 columns into a Matrix. Panics
// otherwise.
func Dense2Matrix(d *mat.Dense) *Matrix {
	_, c := d.Dims()
	if c != 3 {
		panic("v3: Dense2Matrix needs a 3-column matrix")
	}
	return &Matrix{d}
}

// NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic("v3: the other dimension should be 3")
	}
	return r
}

// VecView returns a view (not a copy) of the ith vector of the matrix.
// Changes in the view are reflected in F.
func (F *Matrix) VecView(i int) *Matrix {
	return &Matrix{F.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

// View returns a view of F starting from row i and spanning r rows.
func (F *Matrix) View(i, r int) *Matrix {
	return &Matrix{F.Slice(i, i+r, 0, 3).(*mat.Dense)}
}

// SwapVecs swaps vectors i and j in place.
func (F *Matrix) SwapVecs(i, j int) {
	if i >= F.NVecs() || j >= F.NVecs() {
		panic("v3: SwapVecs indexes out of range")
	}
	for k := 0; k < 3; k++ {
		fi, fj := F.At(i, k), F.At(j, k)
		F.Set(i, k, fj)
		F.Set(j, k, fi)
	}
}

// SetVec copies the 1x3 vector vec into row i of the receiver.
func (F *Matrix) SetVec(i int, vec *Matrix) {
	if vec.NVecs() != 1 {
		panic("v3: SetVec needs a 1x3 vector")
	}
	for k := 0; k < 3; k++ {
		F.Set(i, k, vec.At(0, k))
	}
}

// SomeVecs copies the vectors of A at the positions in clist, in order, into
// the receiver, which must have len(clist) rows. Pure index selection.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	if F.NVecs() != len(clist) {
		panic("v3: SomeVecs: receiver rows don't match the selection length")
	}
	for i, v := range clist {
		for k := 0; k < 3; k++ {
			F.Set(i, k, A.At(v, k))
		}
	}
}

// Sub puts A-B in the receiver. Shapes must match.
func (F *Matrix) Sub(A, B *Matrix) {
	F.Dense.Sub(A.Dense, B.Dense)
}

// Add puts A+B in the receiver. Shapes must match.
func (F *Matrix) Add(A, B *Matrix) {
	F.Dense.Add(A.Dense, B.Dense)
}

// Scale puts i*A in the receiver.
func (F *Matrix) Scale(i float64, A *Matrix) {
	F.Dense.Scale(i, A.Dense)
}

// AddVec adds the 1x3 vector vec to every vector of A, putting the result in
// the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	if vec.NVecs() != 1 {
		panic("v3: AddVec needs a 1x3 vector")
	}
	for i := 0; i < A.NVecs(); i++ {
		for k := 0; k < 3; k++ {
			F.Set(i, k, A.At(i, k)+vec.At(0, k))
		}
	}
}

// SubVec subtracts the 1x3 vector vec from every vector of A, putting the
// result in the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	if vec.NVecs() != 1 {
		panic("v3: SubVec needs a 1x3 vector")
	}
	for i := 0; i < A.NVecs(); i++ {
		for k := 0; k < 3; k++ {
			F.Set(i, k, A.At(i, k)-vec.At(0, k))
		}
	}
}

// Copy copies A into the receiver.
func (F *Matrix) Copy(A *Matrix) {
	F.Dense.Copy(A.Dense)
}

// Clone returns a fresh copy of F.
func (F *Matrix) Clone() *Matrix {
	r := Zeros(F.NVecs())
	r.Copy(F)
	return r
}

// Dot returns the dot product of two 1x3 vectors.
func (F *Matrix) Dot(B *Matrix) float64 {
	if F.NVecs() != 1 || B.NVecs() != 1 {
		panic("v3: Dot needs 1x3 vectors")
	}
	var d float64
	for k := 0; k < 3; k++ {
		d += F.At(0, k) * B.At(0, k)
	}
	return d
}

// Cross puts the cross product of the 1x3 vectors a and b in the receiver.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() != 1 || b.NVecs() != 1 || F.NVecs() != 1 {
		panic("v3: Cross needs 1x3 vectors")
	}
	ax, ay, az := a.At(0, 0), a.At(0, 1), a.At(0, 2)
	bx, by, bz := b.At(0, 0), b.At(0, 1), b.At(0, 2)
	F.Set(0, 0, ay*bz-az*by)
	F.Set(0, 1, az*bx-ax*bz)
	F.Set(0, 2, ax*by-ay*bx)
}

// Norm returns the Frobenius norm for i=2 (the only norm used here).
func (F *Matrix) Norm(i float64) float64 {
	return mat.Norm(F.Dense, i)
}

// Unit puts the unit vector in the direction of the 1x3 vector A in the
// receiver, and returns the original norm. Panics on a zero vector.
func (F *Matrix) Unit(A *Matrix) float64 {
	n := A.Norm(2)
	if n <= appzero {
		panic("v3: attempted to normalize a zero vector")
	}
	F.Scale(1/n, A)
	return n
}
