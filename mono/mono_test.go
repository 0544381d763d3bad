// SPDX-License-Identifier: MIT

package mono_test

import (
	"testing"

	"github.com/katalvlaran/dlcq/mono"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewValidation rejects empty monomials and bad exponents.
func TestNewValidation(t *testing.T) {
	_, err := mono.New()
	require.ErrorIs(t, err, mono.ErrEmptyMono)

	_, err = mono.New(mono.Particle{Pm: 0, Pt: 1})
	require.ErrorIs(t, err, mono.ErrBadExponent)

	_, err = mono.New(mono.Particle{Pm: 1, Pt: -1})
	require.ErrorIs(t, err, mono.ErrBadExponent)
}

// TestMonoAccessors covers degree, counts, canonical order and text forms.
func TestMonoAccessors(t *testing.T) {
	m := mono.MustNew(mono.Particle{Pm: 1, Pt: 0}, mono.Particle{Pm: 2, Pt: 1}, mono.Particle{Pm: 1, Pt: 0})
	assert.Equal(t, 3, m.N())
	assert.Equal(t, 5, m.Degree())
	assert.Equal(t, 1, m.TotalPt())
	assert.Equal(t, []int{2, 1}, m.IdenticalCounts())
	assert.Equal(t, "2:1,1:0,1:0", m.Canonical().Key())
	assert.Equal(t, "1:0,2:1,1:0", m.Key(), "construction order is preserved")
	assert.Equal(t, "(1,0)(2,1)(1,0)", m.String())

	p, err := mono.Parse(" 2:1, 1:0,1:0 ")
	require.NoError(t, err)
	assert.Equal(t, m.Canonical().Key(), p.Key())

	_, err = mono.Parse("2-1")
	require.ErrorIs(t, err, mono.ErrParse)
}

// TestBasisDedup keeps first-seen order and rejects mixed particle counts.
func TestBasisDedup(t *testing.T) {
	a := mono.MustNew(mono.Particle{Pm: 2, Pt: 0}, mono.Particle{Pm: 1, Pt: 0})
	b := mono.MustNew(mono.Particle{Pm: 1, Pt: 0}, mono.Particle{Pm: 2, Pt: 0})
	c := mono.MustNew(mono.Particle{Pm: 1, Pt: 0})

	basis, err := mono.NewBasis(a, b, a)
	require.NoError(t, err)
	assert.Equal(t, 2, basis.Len())
	assert.Equal(t, 2, basis.N())
	assert.Equal(t, 1, basis.IndexOf(b))
	assert.Equal(t, -1, basis.IndexOf(c))

	_, err = mono.NewBasis(a, c)
	require.ErrorIs(t, err, mono.ErrMixedParticles)
}

// TestGenerate enumerates small bases exhaustively.
func TestGenerate(t *testing.T) {
	b, err := mono.Generate(2, 3)
	require.NoError(t, err)
	var keys []string
	for _, m := range b.Monos() {
		keys = append(keys, m.Key())
	}
	assert.Equal(t, []string{"2:0,1:0", "1:1,1:0"}, keys)

	b, err = mono.Generate(1, 2)
	require.NoError(t, err)
	keys = keys[:0]
	for _, m := range b.Monos() {
		keys = append(keys, m.Key())
	}
	assert.Equal(t, []string{"2:0", "1:1"}, keys)

	_, err = mono.Generate(3, 2)
	require.ErrorIs(t, err, mono.ErrBadDegree)
}

// TestGenerateCanonicalAndDegree checks every generated monomial invariant.
func TestGenerateCanonicalAndDegree(t *testing.T) {
	b, err := mono.Generate(3, 6)
	require.NoError(t, err)
	require.Positive(t, b.Len())
	for _, m := range b.Monos() {
		assert.Equal(t, 6, m.Degree())
		assert.Equal(t, m.Canonical().Key(), m.Key())
	}

	even, odd, err := mono.SplitParity(b)
	require.NoError(t, err)
	assert.Equal(t, b.Len(), even.Len()+odd.Len())
	for _, m := range odd.Monos() {
		assert.Equal(t, 1, m.TotalPt()%2)
	}
}
