// SPDX-License-Identifier: MIT

// Package engine - matrix element operations.
//
// Purpose:
//   - Direct kinds (inner, mass, kinetic): a scalar per monomial pair.
//     A keeps its stored particle order; every distinct arrangement of B is
//     visited once and the degeneracy n_A!·Π(count_B)! restores the sum over
//     all orderings.
//   - Interaction kinds: every distinct arrangement of both operands is
//     visited; the degeneracy is Π(count_A)!·Π(count_B)!. The continuum
//     result is grouped by discretization exponents and turned into a
//     partitions×partitions block by the Discretizer.
//
// Errors:
//   - ErrParticleMismatch when the operands' particle counts do not fit the kind.
//   - ErrNonFinite when an integral evaluates to NaN or ±Inf (also logged).

package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/dlcq/matrix"
	"github.com/katalvlaran/dlcq/mono"
	"github.com/katalvlaran/dlcq/multinomial"
)

// degeneracy returns Π count! over the identical-particle multiplicities of m.
func degeneracy(m mono.Mono) float64 {
	d := 1.0
	for _, c := range m.IdenticalCounts() {
		d *= multinomial.Factorial(c)
	}

	return d
}

// pairKeys extracts both keys and checks that B carries wantDiff more
// particles than A.
func pairKeys(tag string, a, b mono.Mono, wantDiff int) (Key, Key, error) {
	ka, err := Extract(a)
	if err != nil {
		return nil, nil, engineErrorf(tag, err)
	}
	kb, err := Extract(b)
	if err != nil {
		return nil, nil, engineErrorf(tag, err)
	}
	if kb.N()-ka.N() != wantDiff {
		return nil, nil, engineErrorf(tag, fmt.Errorf("A has %d particles, B has %d: %w",
			ka.N(), kb.N(), ErrParticleMismatch))
	}

	return ka, kb, nil
}

// finite logs and rejects a non-finite value.
func (e *Engine) finite(tag string, v float64, a, b mono.Mono) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		e.log.Error("non-finite matrix element", "op", tag, "a", a.String(), "b", b.String(), "value", v)
		return engineErrorf(tag, fmt.Errorf("%s x %s: %w", a, b, ErrNonFinite))
	}

	return nil
}

// directSum returns Σ over distinct arrangements of kb of the summed
// integrals of combine(FinalTerms(ka), FinalTerms(arrangement)).
func (e *Engine) directSum(ka, kb Key, kind Kind) (float64, error) {
	fa, err := e.FinalTerms(ka)
	if err != nil {
		return 0, err
	}
	total := 0.0
	err = forEachArrangement(kb, func(cur Key) error {
		fb, err := e.FinalTerms(cur)
		if err != nil {
			return err
		}
		for _, t := range combineDirect(fa, fb) {
			if kind == KindMass {
				total += e.massIntegral(t)
			} else {
				total += e.directIntegral(t)
			}
		}

		return nil
	})

	return total, err
}

func (e *Engine) directElement(kind Kind, a, b mono.Mono) (float64, error) {
	tag := "Compute(" + kind.String() + ")"
	ka, kb, err := pairKeys(tag, a, b, 0)
	if err != nil {
		return 0, err
	}
	total, err := e.directSum(ka, kb, kind)
	if err != nil {
		return 0, engineErrorf(tag, err)
	}
	deg := multinomial.Factorial(ka.N()) * degeneracy(b)
	v := deg * a.Coef() * b.Coef() * total * e.Prefactor(kind, ka.N())
	if err = e.finite(tag, v, a, b); err != nil {
		return 0, err
	}

	return v, nil
}

// ComputeInnerProduct returns ⟨A, B⟩.
func (e *Engine) ComputeInnerProduct(a, b mono.Mono) (float64, error) {
	return e.directElement(KindInner, a, b)
}

// ComputeMassElement returns the invariant-mass matrix element between A and B.
func (e *Engine) ComputeMassElement(a, b mono.Mono) (float64, error) {
	return e.directElement(KindMass, a, b)
}

// ComputeKineticElement returns the continuum kinetic element, which equals
// the inner product; the kinetic μ² weight is applied by the Discretizer.
func (e *Engine) ComputeKineticElement(a, b mono.Mono) (float64, error) {
	return e.directElement(KindKinetic, a, b)
}

// sameNTerms returns the memoized, pruned same-N combination of two arrangements.
func (e *Engine) sameNTerms(ka, kb Key) ([]InteractionTerm, error) {
	return e.sameN.get(pairID(ka, kb), func() ([]InteractionTerm, error) {
		fa, err := e.IntermediateTerms(ka)
		if err != nil {
			return nil, err
		}
		fb, err := e.IntermediateTerms(kb)
		if err != nil {
			return nil, err
		}
		if err = checkWidths(fa, fb, ka.N()-1, kb.N()-1); err != nil {
			return nil, err
		}
		terms, pruned := combineSameN(fa, fb)
		termsPruned.WithLabelValues(KindSameN.String()).Add(float64(pruned))

		return terms, nil
	})
}

// nPlus2Terms returns the memoized, pruned n→n+2 combination of two arrangements.
func (e *Engine) nPlus2Terms(ka, kb Key) ([]NPlus2Term, error) {
	return e.nPlus2.get(pairID(ka, kb), func() ([]NPlus2Term, error) {
		fa, err := e.IntermediateTerms(ka)
		if err != nil {
			return nil, err
		}
		fb, err := e.IntermediateTerms(kb)
		if err != nil {
			return nil, err
		}
		if err = checkWidths(fa, fb, ka.N()-1, kb.N()-1); err != nil {
			return nil, err
		}
		terms, pruned := combineNPlus2(fa, fb)
		termsPruned.WithLabelValues(KindNPlus2.String()).Add(float64(pruned))

		return terms, nil
	})
}

// InteractionExpansion returns the continuum same-N element between A and B
// grouped by discretization exponents (α, r), prefactor and degeneracy
// included. Entries that cancel to exactly zero are omitted.
//
// Each term r^{r₀}(1-r²)^{r₁/2}(1-α²r²)^{r₂/2} enters with half its weight
// in the ratio μ_B/μ_A (keys α ≥ 0) and half in the ratio μ_A/μ_B, where
// r₁ and r₂ trade places (keys α ≤ 0). The expansion of (B, A) is then the
// expansion of (A, B) with α negated, which makes the discretized block of
// (B, A) the transpose of the block of (A, B).
func (e *Engine) InteractionExpansion(a, b mono.Mono) (map[AlphaR]float64, error) {
	const tag = "InteractionExpansion"
	ka, kb, err := pairKeys(tag, a, b, 0)
	if err != nil {
		return nil, err
	}
	n := ka.N()
	scale := degeneracy(a) * degeneracy(b) * a.Coef() * b.Coef() * e.Prefactor(KindSameN, n)

	acc := make(map[AlphaR]float64)
	err = forEachArrangement(ka, func(curA Key) error {
		return forEachArrangement(kb, func(curB Key) error {
			terms, err := e.sameNTerms(curA, curB)
			if err != nil {
				return err
			}
			for _, t := range terms {
				v := 0.5 * scale * e.sameNIntegral(t)
				if v == 0 {
					continue
				}
				r0 := t.R[0] + n - 3
				fwd, err := e.expandR([3]int{r0, t.R[1], t.R[2]})
				if err != nil {
					return err
				}
				for _, rc := range fwd {
					acc[AlphaR{Alpha: t.R[2] + rc.key.Alpha, R: rc.key.R}] += v * rc.coef
				}
				rev, err := e.expandR([3]int{r0, t.R[2], t.R[1]})
				if err != nil {
					return err
				}
				for _, rc := range rev {
					acc[AlphaR{Alpha: -(t.R[1] + rc.key.Alpha), R: rc.key.R}] += v * rc.coef
				}
			}

			return nil
		})
	})
	if err != nil {
		return nil, engineErrorf(tag, err)
	}
	for k, v := range acc {
		if err = e.finite(tag, v, a, b); err != nil {
			return nil, err
		}
		if v == 0 {
			delete(acc, k)
		}
	}

	return acc, nil
}

// NPlus2Expansion returns the continuum n→n+2 element between A (n
// particles) and B (n+2 particles) grouped by radial exponent r.
func (e *Engine) NPlus2Expansion(a, b mono.Mono) (map[int]float64, error) {
	const tag = "NPlus2Expansion"
	ka, kb, err := pairKeys(tag, a, b, 2)
	if err != nil {
		return nil, err
	}
	n := ka.N()
	scale := degeneracy(a) * degeneracy(b) * a.Coef() * b.Coef() * e.Prefactor(KindNPlus2, n)

	acc := make(map[int]float64)
	err = forEachArrangement(ka, func(curA Key) error {
		return forEachArrangement(kb, func(curB Key) error {
			terms, err := e.nPlus2Terms(curA, curB)
			if err != nil {
				return err
			}
			for _, t := range terms {
				if v := scale * e.nPlus2Integral(t); v != 0 {
					acc[t.R+n-1] += v
				}
			}

			return nil
		})
	})
	if err != nil {
		return nil, engineErrorf(tag, err)
	}
	for r, v := range acc {
		if err = e.finite(tag, v, a, b); err != nil {
			return nil, err
		}
		if v == 0 {
			delete(acc, r)
		}
	}

	return acc, nil
}

// ComputeInteractionBlock returns the partitions×partitions same-N block
// between A and B: Σ_{(α,r)} value·NtoN(α, r). The block of (B, A) is the
// transpose of the block of (A, B).
func (e *Engine) ComputeInteractionBlock(a, b mono.Mono, partitions int) (*matrix.Dense, error) {
	const tag = "ComputeInteractionBlock"
	if partitions <= 0 {
		return nil, engineErrorf(tag, ErrBadPartitions)
	}
	exp, err := e.InteractionExpansion(a, b)
	if err != nil {
		return nil, err
	}
	keys := make([]AlphaR, 0, len(exp))
	for k := range exp {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Alpha != keys[j].Alpha {
			return keys[i].Alpha < keys[j].Alpha
		}
		return keys[i].R < keys[j].R
	})

	block, err := matrix.NewDense(partitions, partitions)
	if err != nil {
		return nil, engineErrorf(tag, err)
	}
	for _, k := range keys {
		mu, err := e.disc.NtoN(k.Alpha, k.R, partitions)
		if err != nil {
			return nil, engineErrorf(tag, err)
		}
		if err = matrix.AddScaledInPlace(block, exp[k], mu); err != nil {
			return nil, engineErrorf(tag, err)
		}
	}
	if err = matrix.ValidateFinite(block); err != nil {
		return nil, engineErrorf(tag, err)
	}

	return block, nil
}

// ComputeNPlus2Block returns the partitions×partitions block between A (n
// particles) and B (n+2 particles): Σ_r value·NPlus2(r).
func (e *Engine) ComputeNPlus2Block(a, b mono.Mono, partitions int) (*matrix.Dense, error) {
	const tag = "ComputeNPlus2Block"
	if partitions <= 0 {
		return nil, engineErrorf(tag, ErrBadPartitions)
	}
	exp, err := e.NPlus2Expansion(a, b)
	if err != nil {
		return nil, err
	}
	rs := make([]int, 0, len(exp))
	for r := range exp {
		rs = append(rs, r)
	}
	sort.Ints(rs)

	block, err := matrix.NewDense(partitions, partitions)
	if err != nil {
		return nil, engineErrorf(tag, err)
	}
	for _, r := range rs {
		mu, err := e.disc.NPlus2(r, partitions)
		if err != nil {
			return nil, engineErrorf(tag, err)
		}
		if err = matrix.AddScaledInPlace(block, exp[r], mu); err != nil {
			return nil, engineErrorf(tag, err)
		}
	}
	if err = matrix.ValidateFinite(block); err != nil {
		return nil, engineErrorf(tag, err)
	}

	return block, nil
}

// ComputeDirectBlock returns the partitions×partitions block of a direct
// kind: the scalar element times the Identity (inner, mass) or Kinetic block.
//
// Errors: ErrUnknownKind for interaction kinds, ErrBadPartitions, and any
// element error.
func (e *Engine) ComputeDirectBlock(kind Kind, a, b mono.Mono, partitions int) (*matrix.Dense, error) {
	tag := "ComputeDirectBlock(" + kind.String() + ")"
	if !kind.direct() {
		return nil, engineErrorf(tag, ErrUnknownKind)
	}
	if partitions <= 0 {
		return nil, engineErrorf(tag, ErrBadPartitions)
	}
	v, err := e.directElement(kind, a, b)
	if err != nil {
		return nil, err
	}
	var mu *matrix.Dense
	if kind == KindKinetic {
		mu, err = e.disc.Kinetic(partitions)
	} else {
		mu, err = e.disc.Identity(partitions)
	}
	if err != nil {
		return nil, engineErrorf(tag, err)
	}
	out, err := matrix.Scale(mu, v)
	if err != nil {
		return nil, engineErrorf(tag, err)
	}

	return out, nil
}
