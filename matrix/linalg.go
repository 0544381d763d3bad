// SPDX-License-Identifier: MIT

// Package matrix - algebraic kernels.
//
// Purpose:
//   - Provide the small algebra surface needed to post-process assembled
//     operators: Add, Scale, Transpose, AllClose.
//   - Every kernel allocates a fresh *Dense; inputs are never mutated.
//
// Determinism:
//   - Fast-paths walk the flat *Dense buffers in index order; the generic
//     fallback uses fixed i→j loops.

package matrix

import (
	"fmt"
	"math"
)

const (
	opAdd       = "Add"
	opScale     = "Scale"
	opTranspose = "Transpose"
	opAllClose  = "AllClose"
)

// matrixErrorf wraps err as "<tag>: <err>" so errors.Is still matches the sentinel.
// Callers must only pass non-nil errors.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m as *Dense, materializing a copy via At for foreign implementations.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols(), WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// Add returns a + b. Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	for k := range res.data {
		res.data[k] = da.data[k] + db.data[k]
	}

	return res, nil
}

// Scale returns alpha*m. Errors: ErrNilMatrix, ErrNaNInf for non-finite alpha.
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(src.r, src.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for k, v := range src.data {
		res.data[k] = alpha * v
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Used to mirror rectangular blocks across the diagonal of a block operator.
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(src.c, src.r, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res.validateNaNInf = src.validateNaNInf
	for i := 0; i < src.r; i++ {
		for j := 0; j < src.c; j++ {
			res.data[j*src.r+i] = src.data[i*src.c+j]
		}
	}

	return res, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Negative tolerances are normalized to their absolute value.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := asDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := asDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for k := range da.data {
		if math.Abs(da.data[k]-db.data[k]) > atol+rtol*math.Abs(db.data[k]) {
			return false, nil // early-exit on first violation
		}
	}

	return true, nil
}
