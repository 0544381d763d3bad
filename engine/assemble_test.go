// SPDX-License-Identifier: MIT

package engine_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dlcq/engine"
	"github.com/katalvlaran/dlcq/matrix"
	"github.com/katalvlaran/dlcq/mono"
)

// TestGramMatrixClosedForm assembles the collinear two-particle pair.
func TestGramMatrixClosedForm(t *testing.T) {
	basis, err := mono.NewBasis(flat2, slope2)
	require.NoError(t, err)

	g, err := engine.New().GramMatrix(context.Background(), basis)
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows())
	require.InEpsilon(t, 3.0/128, at(t, g, 0, 0), 1e-12)
	require.InEpsilon(t, 3.0/256, at(t, g, 0, 1), 1e-12)
	require.Equal(t, at(t, g, 0, 1), at(t, g, 1, 0))
	require.InEpsilon(t, 3.0/512, at(t, g, 1, 1), 1e-12)
}

// TestGramMatrixRearrangedPair covers the basis {x₁, x₂} of two particles:
// both monomials symmetrize to x₁+x₂ = 1, so the Gram matrix is the rank-one
// all-3/512 matrix and Cauchy–Schwarz holds with equality.
func TestGramMatrixRearrangedPair(t *testing.T) {
	basis, err := mono.NewBasis(mk([2]int{2, 0}, [2]int{1, 0}), mk([2]int{1, 0}, [2]int{2, 0}))
	require.NoError(t, err)
	require.Equal(t, 2, basis.Len())

	g, err := engine.New().GramMatrix(context.Background(), basis)
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows())
	require.Equal(t, 2, g.Cols())
	require.NoError(t, matrix.ValidateSymmetric(g, 0))
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.InEpsilon(t, 3.0/512, at(t, g, i, j), 1e-12)
		}
	}
	off := at(t, g, 0, 1)
	require.Positive(t, off)
	require.InEpsilon(t, math.Sqrt(at(t, g, 0, 0)*at(t, g, 1, 1)), off, 1e-12)
}

// TestGramMatrixCauchySchwarzStrict: for monomials with different exponent
// multisets the off-diagonal entry lies strictly inside (0, √(g₀₀g₁₁)).
func TestGramMatrixCauchySchwarzStrict(t *testing.T) {
	basis, err := mono.NewBasis(mk([2]int{3, 0}, [2]int{1, 0}), mk([2]int{2, 0}, [2]int{2, 0}))
	require.NoError(t, err)

	g, err := engine.New().GramMatrix(context.Background(), basis)
	require.NoError(t, err)
	require.InEpsilon(t, 67.0/32768, at(t, g, 0, 0), 1e-12)
	require.InEpsilon(t, 35.0/32768, at(t, g, 1, 1), 1e-12)
	require.InEpsilon(t, 45.0/32768, at(t, g, 0, 1), 1e-12)

	off := at(t, g, 0, 1)
	require.Positive(t, off)
	require.Less(t, off, math.Sqrt(at(t, g, 0, 0)*at(t, g, 1, 1)))
}

// TestParallelMatchesSequential: worker count never changes a result.
func TestParallelMatchesSequential(t *testing.T) {
	basis, err := mono.Generate(3, 5)
	require.NoError(t, err)
	ctx := context.Background()

	seq, err := engine.New(engine.WithWorkers(1)).MassMatrix(ctx, basis)
	require.NoError(t, err)
	par, err := engine.New(engine.WithWorkers(8)).MassMatrix(ctx, basis)
	require.NoError(t, err)
	require.Equal(t, seq.Values(), par.Values())
	require.NoError(t, matrix.ValidateSymmetric(seq, 0))

	for i := 0; i < basis.Len(); i++ {
		require.Positive(t, at(t, seq, i, i))
	}
}

// TestDiscretizedMatrixTiles checks tile placement and mirroring.
func TestDiscretizedMatrixTiles(t *testing.T) {
	basis, err := mono.NewBasis(flat2, mk([2]int{1, 2}, [2]int{1, 0}))
	require.NoError(t, err)
	e := engine.New()
	ctx := context.Background()

	kin, err := e.DiscretizedMatrix(ctx, basis, engine.KindKinetic, 2)
	require.NoError(t, err)
	require.Equal(t, 4, kin.Rows())
	require.InEpsilon(t, 3.0/128*0.25, at(t, kin, 0, 0), 1e-12)
	require.InEpsilon(t, 3.0/128*0.75, at(t, kin, 1, 1), 1e-12)
	require.Zero(t, at(t, kin, 0, 1))

	h, err := e.DiscretizedMatrix(ctx, basis, engine.KindSameN, 3)
	require.NoError(t, err)
	require.Equal(t, 6, h.Rows())
	require.NoError(t, matrix.ValidateSymmetric(h, 0))
	blk, err := e.ComputeInteractionBlock(basis.At(0), basis.At(1), 3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.Equal(t, at(t, blk, i, j), at(t, h, i, 3+j))
			require.Equal(t, at(t, blk, i, j), at(t, h, 3+j, i))
		}
	}

	// The lower tile computed directly agrees with the mirrored one.
	low, err := e.ComputeInteractionBlock(basis.At(1), basis.At(0), 3)
	require.NoError(t, err)
	tr, err := matrix.Transpose(blk)
	require.NoError(t, err)
	ok, err := matrix.AllClose(low, tr, 1e-9, 1e-20)
	require.NoError(t, err)
	require.True(t, ok, "block(B,A) = %v, block(A,B)ᵀ = %v", low.Values(), tr.Values())

	self, err := e.ComputeInteractionBlock(basis.At(1), basis.At(1), 3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.InDelta(t, at(t, self, i, j), at(t, h, 3+i, 3+j), 1e-18)
		}
	}
}

// TestDiscretizedSameNSymmetricThreeParticles: a same-N matrix over
// monomials with unequal last exponents is symmetric.
func TestDiscretizedSameNSymmetricThreeParticles(t *testing.T) {
	basis, err := mono.NewBasis(
		mk([2]int{2, 0}, [2]int{1, 2}, [2]int{1, 0}),
		mk([2]int{1, 1}, [2]int{1, 1}, [2]int{1, 0}),
	)
	require.NoError(t, err)

	h, err := engine.New(engine.WithWorkers(2)).DiscretizedMatrix(context.Background(), basis, engine.KindSameN, 3)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSymmetric(h, 0))
	require.NoError(t, matrix.ValidateFinite(h))
	require.NotZero(t, at(t, h, 0, 3))
}

// TestNPlus2Matrix checks the rectangular coupling shape and one tile.
func TestNPlus2Matrix(t *testing.T) {
	small, err := mono.NewBasis(flat2, mk([2]int{1, 1}, [2]int{1, 1}))
	require.NoError(t, err)
	large, err := mono.Generate(4, 5)
	require.NoError(t, err)
	e := engine.New()

	m, err := e.NPlus2Matrix(context.Background(), small, large, 2)
	require.NoError(t, err)
	require.Equal(t, 4, m.Rows())
	require.Equal(t, 2*large.Len(), m.Cols())

	blk, err := e.ComputeNPlus2Block(small.At(1), large.At(0), 2)
	require.NoError(t, err)
	require.Equal(t, at(t, blk, 1, 0), at(t, m, 3, 0))

	_, err = e.NPlus2Matrix(context.Background(), small, small, 2)
	require.ErrorIs(t, err, engine.ErrParticleMismatch)
}

// TestBuilderErrors covers argument validation and cancellation.
func TestBuilderErrors(t *testing.T) {
	e := engine.New()
	ctx := context.Background()
	empty, err := mono.NewBasis()
	require.NoError(t, err)
	basis, err := mono.NewBasis(flat2, slope2)
	require.NoError(t, err)

	_, err = e.GramMatrix(ctx, empty)
	require.ErrorIs(t, err, engine.ErrEmptyBasis)

	_, err = e.Matrix(ctx, basis, engine.KindSameN)
	require.ErrorIs(t, err, engine.ErrUnknownKind)

	_, err = e.DiscretizedMatrix(ctx, basis, engine.KindNPlus2, 2)
	require.ErrorIs(t, err, engine.ErrUnknownKind)

	_, err = e.DiscretizedMatrix(ctx, basis, engine.KindInner, 0)
	require.ErrorIs(t, err, engine.ErrBadPartitions)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = e.GramMatrix(cancelled, basis)
	require.ErrorIs(t, err, context.Canceled)

	require.Panics(t, func() { engine.WithWorkers(-1) })
	require.Panics(t, func() { engine.WithDiscretizer(nil) })
}
