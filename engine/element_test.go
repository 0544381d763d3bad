// SPDX-License-Identifier: MIT

package engine_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dlcq/engine"
	"github.com/katalvlaran/dlcq/matrix"
	"github.com/katalvlaran/dlcq/mono"
)

func mk(ps ...[2]int) mono.Mono {
	particles := make([]mono.Particle, len(ps))
	for i, p := range ps {
		particles[i] = mono.Particle{Pm: p[0], Pt: p[1]}
	}

	return mono.MustNew(particles...)
}

func at(t *testing.T, m *matrix.Dense, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

var (
	flat2  = mk([2]int{1, 0}, [2]int{1, 0}) // constant wavefunction, n=2
	slope2 = mk([2]int{2, 0}, [2]int{1, 0}) // x1, symmetrized to x1+x2 = 1
)

// TestInnerProductClosedForm checks the two-particle values against their
// closed forms; slope2 symmetrizes to a multiple of flat2, so the pair is
// exactly collinear.
func TestInnerProductClosedForm(t *testing.T) {
	e := engine.New()

	aa, err := e.ComputeInnerProduct(flat2, flat2)
	require.NoError(t, err)
	require.InEpsilon(t, 3.0/128, aa, 1e-12)

	ab, err := e.ComputeInnerProduct(flat2, slope2)
	require.NoError(t, err)
	require.InEpsilon(t, 3.0/256, ab, 1e-12)

	bb, err := e.ComputeInnerProduct(slope2, slope2)
	require.NoError(t, err)
	require.InEpsilon(t, 3.0/512, bb, 1e-12)

	require.InEpsilon(t, ab*ab, aa*bb, 1e-12)
}

// TestMassAndKineticElements covers the remaining direct kinds.
func TestMassAndKineticElements(t *testing.T) {
	e := engine.New()

	m, err := e.ComputeMassElement(flat2, flat2)
	require.NoError(t, err)
	require.InEpsilon(t, 0.25, m, 1e-12)

	k, err := e.ComputeKineticElement(flat2, slope2)
	require.NoError(t, err)
	ip, err := e.ComputeInnerProduct(flat2, slope2)
	require.NoError(t, err)
	require.Equal(t, ip, k)
}

// TestDirectElementsSymmetric: swapping operands leaves inner and mass
// elements unchanged, including transverse exponents and three particles.
func TestDirectElementsSymmetric(t *testing.T) {
	e := engine.New()
	pairs := [][2]mono.Mono{
		{mk([2]int{1, 1}, [2]int{1, 1}), mk([2]int{1, 2}, [2]int{1, 0})},
		{mk([2]int{2, 1}, [2]int{1, 0}, [2]int{1, 1}), mk([2]int{1, 2}, [2]int{1, 0}, [2]int{1, 0})},
		{mk([2]int{1, 2}, [2]int{1, 0}, [2]int{1, 0}), mk([2]int{2, 0}, [2]int{1, 1}, [2]int{1, 1})},
	}
	for _, p := range pairs {
		ab, err := e.ComputeInnerProduct(p[0], p[1])
		require.NoError(t, err)
		ba, err := e.ComputeInnerProduct(p[1], p[0])
		require.NoError(t, err)
		require.InEpsilon(t, ab, ba, 1e-9, "%s vs %s", p[0], p[1])

		mab, err := e.ComputeMassElement(p[0], p[1])
		require.NoError(t, err)
		mba, err := e.ComputeMassElement(p[1], p[0])
		require.NoError(t, err)
		require.InEpsilon(t, mab, mba, 1e-9, "%s vs %s", p[0], p[1])
	}
}

// TestThreeParticleRegression pins values with non-trivial θ chains.
func TestThreeParticleRegression(t *testing.T) {
	e := engine.New()
	x := mk([2]int{1, 0}, [2]int{1, 0}, [2]int{1, 0})
	y := mk([2]int{2, 1}, [2]int{1, 0}, [2]int{1, 1})

	v, err := e.ComputeInnerProduct(x, x)
	require.NoError(t, err)
	require.InEpsilon(t, 9.539756828685045e-05, v, 1e-9)

	v, err = e.ComputeMassElement(x, x)
	require.NoError(t, err)
	require.InEpsilon(t, 0.003720505163187178, v, 1e-9)

	v, err = e.ComputeInnerProduct(x, y)
	require.NoError(t, err)
	require.InEpsilon(t, -1.7228663003301188e-06, v, 1e-9)
}

// TestStoredOrderIrrelevant: permuting a monomial's stored particles does
// not change any element.
func TestStoredOrderIrrelevant(t *testing.T) {
	e := engine.New()
	a := mk([2]int{2, 1}, [2]int{1, 0}, [2]int{1, 1})
	b := mk([2]int{1, 1}, [2]int{2, 1}, [2]int{1, 0})
	c := mk([2]int{1, 2}, [2]int{1, 0}, [2]int{1, 0})

	ac, err := e.ComputeInnerProduct(a, c)
	require.NoError(t, err)
	bc, err := e.ComputeInnerProduct(b, c)
	require.NoError(t, err)
	require.InEpsilon(t, ac, bc, 1e-9)
}

// TestCoefficientScales: element is bilinear in the monomial coefficients.
func TestCoefficientScales(t *testing.T) {
	e := engine.New()
	scaled, err := mono.NewWithCoef(-2, flat2.Particles()...)
	require.NoError(t, err)

	v, err := e.ComputeInnerProduct(scaled, slope2)
	require.NoError(t, err)
	require.InEpsilon(t, -2*3.0/256, v, 1e-12)
}

// TestInteractionExpansion pins same-N expansions, including ratio exponents.
// At n = 2 the missing long θ contributes the constant 2.
func TestInteractionExpansion(t *testing.T) {
	e := engine.New()

	exp, err := e.InteractionExpansion(flat2, flat2)
	require.NoError(t, err)
	require.Len(t, exp, 1)
	require.InEpsilon(t, 2.0/1024, exp[engine.AlphaR{Alpha: 0, R: -1}], 1e-12)

	c := mk([2]int{1, 2}, [2]int{1, 0})
	exp, err = e.InteractionExpansion(c, c)
	require.NoError(t, err)
	const v = 3.4332275390625115e-05
	want := map[engine.AlphaR]float64{
		{Alpha: 2, R: -1}:  v,
		{Alpha: 4, R: 1}:   -v,
		{Alpha: 2, R: 1}:   -v,
		{Alpha: 4, R: 3}:   v,
		{Alpha: -2, R: -1}: v,
		{Alpha: -4, R: 1}:  -v,
		{Alpha: -2, R: 1}:  -v,
		{Alpha: -4, R: 3}:  v,
	}
	require.Len(t, exp, len(want))
	for k, w := range want {
		require.InEpsilon(t, w, exp[k], 1e-9, "%+v", k)
	}
}

// TestInteractionExpansionMirrored: swapping the operands negates every
// ratio exponent and leaves the values unchanged.
func TestInteractionExpansionMirrored(t *testing.T) {
	e := engine.New()
	pairs := [][2]mono.Mono{
		{flat2, mk([2]int{1, 2}, [2]int{1, 0})},
		{mk([2]int{2, 0}, [2]int{1, 2}, [2]int{1, 0}), mk([2]int{1, 1}, [2]int{1, 1}, [2]int{1, 0})},
	}
	for _, p := range pairs {
		ab, err := e.InteractionExpansion(p[0], p[1])
		require.NoError(t, err)
		ba, err := e.InteractionExpansion(p[1], p[0])
		require.NoError(t, err)
		require.Len(t, ba, len(ab), "%s vs %s", p[0], p[1])
		for k, v := range ab {
			mirrored, ok := ba[engine.AlphaR{Alpha: -k.Alpha, R: k.R}]
			require.True(t, ok, "%+v missing for %s vs %s", k, p[1], p[0])
			require.InEpsilon(t, v, mirrored, 1e-9, "%+v", k)
		}
	}
}

// TestInteractionBlock: with α=0, r=-1 the NtoN block is flat at the bin width.
func TestInteractionBlock(t *testing.T) {
	e := engine.New()
	blk, err := e.ComputeInteractionBlock(flat2, flat2, 2)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.InEpsilon(t, 2.0/2048, at(t, blk, i, j), 1e-9)
		}
	}
}

// TestInteractionBlockTranspose: the block of (B, A) is the transpose of
// the block of (A, B), and a self block is symmetric.
func TestInteractionBlockTranspose(t *testing.T) {
	e := engine.New()
	a := mk([2]int{2, 0}, [2]int{1, 2}, [2]int{1, 0})
	b := mk([2]int{1, 1}, [2]int{1, 1}, [2]int{1, 0})

	ab, err := e.ComputeInteractionBlock(a, b, 3)
	require.NoError(t, err)
	ba, err := e.ComputeInteractionBlock(b, a, 3)
	require.NoError(t, err)
	tr, err := matrix.Transpose(ba)
	require.NoError(t, err)
	ok, err := matrix.AllClose(ab, tr, 1e-9, 1e-20)
	require.NoError(t, err)
	require.True(t, ok, "block(A,B) = %v, block(B,A)ᵀ = %v", ab.Values(), tr.Values())

	for _, m := range []mono.Mono{a, mk([2]int{1, 2}, [2]int{1, 0})} {
		self, err := e.ComputeInteractionBlock(m, m, 3)
		require.NoError(t, err)
		st, err := matrix.Transpose(self)
		require.NoError(t, err)
		ok, err = matrix.AllClose(self, st, 1e-9, 1e-20)
		require.NoError(t, err)
		require.True(t, ok, "%s: %v", m, self.Values())
	}
}

// TestNPlus2 pins the two→four particle coupling, including the n = 2
// factor 2.
func TestNPlus2(t *testing.T) {
	e := engine.New()
	flat4 := mk([2]int{1, 0}, [2]int{1, 0}, [2]int{1, 0}, [2]int{1, 0})

	exp, err := e.NPlus2Expansion(flat2, flat4)
	require.NoError(t, err)
	require.Len(t, exp, 1)
	require.InEpsilon(t, 2*144*math.Sqrt(3)/(4194304*math.Pi), exp[1], 1e-9)

	exp, err = e.NPlus2Expansion(mk([2]int{1, 1}, [2]int{1, 1}),
		mk([2]int{1, 1}, [2]int{1, 1}, [2]int{1, 0}, [2]int{1, 0}))
	require.NoError(t, err)
	require.Len(t, exp, 2)
	require.InEpsilon(t, 2.167785242534137e-07, exp[1], 1e-9)
	require.InEpsilon(t, 1.8195917579820197e-07, exp[3], 1e-9)

	blk, err := e.ComputeNPlus2Block(flat2, flat4, 3)
	require.NoError(t, err)
	require.Equal(t, 3, blk.Rows())
}

// TestElementErrors covers operand validation.
func TestElementErrors(t *testing.T) {
	e := engine.New()
	three := mk([2]int{1, 0}, [2]int{1, 0}, [2]int{1, 0})
	one := mk([2]int{3, 0})

	_, err := e.ComputeInnerProduct(flat2, three)
	require.ErrorIs(t, err, engine.ErrParticleMismatch)

	_, err = e.ComputeMassElement(one, one)
	require.ErrorIs(t, err, engine.ErrTooFewParticles)

	_, err = e.NPlus2Expansion(flat2, flat2)
	require.ErrorIs(t, err, engine.ErrParticleMismatch)

	_, err = e.ComputeInteractionBlock(flat2, flat2, 0)
	require.ErrorIs(t, err, engine.ErrBadPartitions)

	_, err = e.ComputeNPlus2Block(flat2, three, 2)
	require.ErrorIs(t, err, engine.ErrParticleMismatch)
}

// TestParseKind round-trips every kind name.
func TestParseKind(t *testing.T) {
	for _, k := range []engine.Kind{engine.KindInner, engine.KindMass, engine.KindKinetic, engine.KindSameN, engine.KindNPlus2} {
		got, err := engine.ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	_, err := engine.ParseKind("quartic")
	require.ErrorIs(t, err, engine.ErrUnknownKind)
}
