// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/dlcq/matrix"
	"github.com/stretchr/testify/require"
)

// fromRows builds a Dense from row literals (test helper).
func fromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(len(rows), len(rows[0]))
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}

	return m
}

// TestAddScale covers the elementwise kernels and their shape guards.
func TestAddScale(t *testing.T) {
	a := fromRows(t, [][]float64{{1, 2}, {3, 4}})
	b := fromRows(t, [][]float64{{4, 3}, {2, 1}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{5, 5}, {5, 5}}, sum.Values())

	sc, err := matrix.Scale(a, 2)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{2, 4}, {6, 8}}, sc.Values())

	c := fromRows(t, [][]float64{{1, 2, 3}})
	_, err = matrix.Add(a, c)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Add(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestTranspose swaps a rectangular matrix and round-trips it.
func TestTranspose(t *testing.T) {
	a := fromRows(t, [][]float64{{1, 2, 0}, {0, 1, 3}})

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 0}, {2, 1}, {0, 3}}, at.Values())

	back, err := matrix.Transpose(at)
	require.NoError(t, err)
	require.Equal(t, a.Values(), back.Values())

	_, err = matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestAllClose verifies relative/absolute tolerance semantics.
func TestAllClose(t *testing.T) {
	a := fromRows(t, [][]float64{{1, 1e-12}})
	b := fromRows(t, [][]float64{{1 + 1e-10, 0}})

	ok, err := matrix.AllClose(a, b, 1e-9, 1e-11)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(a, b, 0, 0)
	require.NoError(t, err)
	require.False(t, ok)
}

// TestValidateSymmetric checks the relative symmetry test.
func TestValidateSymmetric(t *testing.T) {
	s := fromRows(t, [][]float64{{1, 2}, {2, 1}})
	require.NoError(t, matrix.ValidateSymmetric(s, matrix.DefaultEpsilon))

	ns := fromRows(t, [][]float64{{1, 2}, {2.1, 1}})
	require.ErrorIs(t, matrix.ValidateSymmetric(ns, matrix.DefaultEpsilon), matrix.ErrAsymmetry)

	rect := fromRows(t, [][]float64{{1, 2}})
	require.ErrorIs(t, matrix.ValidateSymmetric(rect, 0), matrix.ErrDimensionMismatch)
}
