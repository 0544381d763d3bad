// SPDX-License-Identifier: MIT

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dlcq/mono"
	"github.com/katalvlaran/dlcq/multinomial"
)

// permutations returns every ordering of 0..n-1 (duplicates included).
func permutations(n int) [][]int {
	if n == 1 {
		return [][]int{{0}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for pos := 0; pos <= len(p); pos++ {
			q := append(append(append([]int(nil), p[:pos]...), n-1), p[pos:]...)
			out = append(out, q)
		}
	}

	return out
}

func permuteKey(k Key, perm []int) Key {
	n := k.N()
	out := make(Key, len(k))
	for i, src := range perm {
		out[i] = k[src]
		out[n+i] = k[n+src]
	}

	return out
}

// TestDirectDegeneracyMatchesBruteForce: distinct arrangements times
// Π(count_B)! equals the plain sum over all n! orderings of B.
func TestDirectDegeneracyMatchesBruteForce(t *testing.T) {
	e := New()
	a := mono.MustNew(mono.Particle{Pm: 2, Pt: 1}, mono.Particle{Pm: 1, Pt: 0}, mono.Particle{Pm: 1, Pt: 1})
	b := mono.MustNew(mono.Particle{Pm: 1, Pt: 2}, mono.Particle{Pm: 1, Pt: 0}, mono.Particle{Pm: 1, Pt: 0})
	ka, err := Extract(a)
	require.NoError(t, err)
	kb, err := Extract(b)
	require.NoError(t, err)

	distinct, err := e.directSum(ka, kb, KindInner)
	require.NoError(t, err)

	fa, err := e.FinalTerms(ka)
	require.NoError(t, err)
	brute := 0.0
	for _, perm := range permutations(3) {
		fb, err := e.FinalTerms(permuteKey(kb, perm))
		require.NoError(t, err)
		for _, term := range combineDirect(fa, fb) {
			brute += e.directIntegral(term)
		}
	}

	require.InEpsilon(t, brute, distinct*degeneracy(b), 1e-9)
	require.Equal(t, multinomial.Factorial(2), degeneracy(b))
}

// TestSameNPruning: kept terms have even r₁, r₂ and kept+pruned covers the
// full product.
func TestSameNPruning(t *testing.T) {
	e := New()
	k, err := Extract(mono.MustNew(mono.Particle{Pm: 1, Pt: 1}, mono.Particle{Pm: 1, Pt: 2}, mono.Particle{Pm: 2, Pt: 1}))
	require.NoError(t, err)
	f, err := e.IntermediateTerms(k)
	require.NoError(t, err)

	kept, pruned := combineSameN(f, f)
	require.Equal(t, len(f)*len(f), len(kept)+pruned)
	require.Positive(t, pruned)
	for _, term := range kept {
		require.Zero(t, term.R[1]%2)
		require.Zero(t, term.R[2]%2)
		require.Len(t, term.U, 6)
		require.Empty(t, term.Theta)
	}
}

// TestPruningDropsExactlyOddTerms: against the unfiltered product, the
// combiners drop every term with an odd radial exponent and keep every
// other term in its original order.
func TestPruningDropsExactlyOddTerms(t *testing.T) {
	e := New()
	small, err := Extract(mono.MustNew(mono.Particle{Pm: 2, Pt: 1}, mono.Particle{Pm: 1, Pt: 3}, mono.Particle{Pm: 1, Pt: 0}))
	require.NoError(t, err)
	other, err := Extract(mono.MustNew(mono.Particle{Pm: 1, Pt: 1}, mono.Particle{Pm: 1, Pt: 1}, mono.Particle{Pm: 3, Pt: 2}))
	require.NoError(t, err)
	large, err := Extract(mono.MustNew(mono.Particle{Pm: 1, Pt: 1}, mono.Particle{Pm: 2, Pt: 0},
		mono.Particle{Pm: 1, Pt: 3}, mono.Particle{Pm: 1, Pt: 0}, mono.Particle{Pm: 1, Pt: 2}))
	require.NoError(t, err)
	fs, err := e.IntermediateTerms(small)
	require.NoError(t, err)
	fo, err := e.IntermediateTerms(other)
	require.NoError(t, err)
	fl, err := e.IntermediateTerms(large)
	require.NoError(t, err)

	var even []InteractionTerm
	odd := 0
	for _, a := range fs {
		for _, b := range fo {
			term := combineSameNTerm(a, b)
			if term.R[1]%2 != 0 || term.R[2]%2 != 0 {
				odd++
				continue
			}
			even = append(even, term)
		}
	}
	kept, pruned := combineSameN(fs, fo)
	require.Positive(t, odd)
	require.Positive(t, len(even))
	require.Equal(t, odd, pruned)
	require.Equal(t, even, kept)

	var evenUp []NPlus2Term
	oddUp := 0
	for _, a := range fs {
		for _, b := range fl {
			term := combineNPlus2Term(a, b)
			if term.R%2 != 0 {
				oddUp++
				continue
			}
			evenUp = append(evenUp, term)
		}
	}
	keptUp, prunedUp := combineNPlus2(fs, fl)
	require.Positive(t, oddUp)
	require.Positive(t, len(evenUp))
	require.Equal(t, oddUp, prunedUp)
	require.Equal(t, evenUp, keptUp)

	for _, term := range kept {
		_, err := e.expandR([3]int{term.R[0], term.R[1], term.R[2]})
		require.NoError(t, err)
	}
}

// TestTermCachesAreWriteOnce: repeated lookups return the cached slice.
func TestTermCachesAreWriteOnce(t *testing.T) {
	e := New()
	k := Key{1, 0, 2, 1}

	first, err := e.FinalTerms(k)
	require.NoError(t, err)
	second, err := e.FinalTerms(k)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Same(t, &first[0], &second[0])

	st := e.Stats()
	require.Equal(t, 1, st.Final)
	require.Equal(t, 1, st.Intermediate)

	for _, term := range first {
		require.NoError(t, term.check(2))
	}
}
