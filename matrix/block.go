// SPDX-License-Identifier: MIT

// Package matrix - block placement.
//
// Discretized operators are (n·k)×(m·k) matrices made of k×k tiles, one per
// pair of basis monomials. These helpers place, accumulate and mirror such
// tiles with explicit bounds checks.

package matrix

import (
	"fmt"
	"math"
)

const (
	opSetBlock    = "SetBlock"
	opAddScaled   = "AddScaledInPlace"
	opMirrorUpper = "MirrorUpper"
)

// SetBlock copies src into dst with its top-left corner at (r0, c0).
// Errors: ErrNilMatrix, ErrOutOfRange (negative origin),
// ErrDimensionMismatch (src does not fit), ErrNaNInf (dst policy).
// Complexity: O(h*w) for an h×w src.
func SetBlock(dst *Dense, r0, c0 int, src Matrix) error {
	if dst == nil {
		return matrixErrorf(opSetBlock, ErrNilMatrix)
	}
	if err := ValidateNotNil(src); err != nil {
		return matrixErrorf(opSetBlock, err)
	}
	if r0 < 0 || c0 < 0 {
		return matrixErrorf(opSetBlock, ErrOutOfRange)
	}
	if r0+src.Rows() > dst.r || c0+src.Cols() > dst.c {
		return matrixErrorf(opSetBlock, fmt.Errorf("%dx%d at (%d,%d) into %dx%d: %w",
			src.Rows(), src.Cols(), r0, c0, dst.r, dst.c, ErrDimensionMismatch))
	}
	for i := 0; i < src.Rows(); i++ {
		for j := 0; j < src.Cols(); j++ {
			v, err := src.At(i, j)
			if err != nil {
				return matrixErrorf(opSetBlock, err)
			}
			if err = dst.Set(r0+i, c0+j, v); err != nil {
				return matrixErrorf(opSetBlock, err)
			}
		}
	}

	return nil
}

// AddScaledInPlace performs dst += alpha*src for equally shaped matrices.
// dst is mutated; src is read-only.
func AddScaledInPlace(dst *Dense, alpha float64, src Matrix) error {
	if dst == nil {
		return matrixErrorf(opAddScaled, ErrNilMatrix)
	}
	if err := ValidateBinarySameShape(dst, src); err != nil {
		return matrixErrorf(opAddScaled, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return matrixErrorf(opAddScaled, ErrNaNInf)
	}
	s, err := asDense(src)
	if err != nil {
		return matrixErrorf(opAddScaled, err)
	}
	for k, v := range s.data {
		dst.data[k] += alpha * v
	}

	return nil
}

// MirrorUpper copies the strict upper triangle of the square m onto its lower
// triangle, so that m[j][i] = m[i][j] for i<j.
func MirrorUpper(m *Dense) error {
	if m == nil {
		return matrixErrorf(opMirrorUpper, ErrNilMatrix)
	}
	if m.r != m.c {
		return matrixErrorf(opMirrorUpper, ErrDimensionMismatch)
	}
	for i := 0; i < m.r; i++ {
		for j := i + 1; j < m.c; j++ {
			m.data[j*m.c+i] = m.data[i*m.c+j]
		}
	}

	return nil
}
