// SPDX-License-Identifier: MIT

// Package engine - coordinate transform pipeline.
//
// Purpose:
//   - x → u: closed-form linear map of the longitudinal exponents.
//   - y → ỹ: eliminate y_n by a multinomial expansion, then fold in every
//     remaining y through nested binomial/multinomial expansions (running
//     Cartesian product).
//   - ỹ → (sinθ, cosθ): sinθ[i] = Σ_{j>i} ỹ[j], cosθ = ỹ without its last entry.
//
// Determinism:
//   - Expansions are enumerated in the fixed order of multinomial.Table
//     (m-vectors descending, compositions by PrevPermutation), so term lists
//     are reproducible bit for bit.

package engine

import (
	"fmt"

	"github.com/katalvlaran/dlcq/multinomial"
)

// yTerm is y with its last entry eliminated: n-1 exponents and a coefficient.
type yTerm struct {
	coef float64
	y    []int
}

// UFromX maps the longitudinal exponents x (length n) to u⁺ and u⁻ (each n-1).
//
//	u⁺[i] = 2·x[i]                                  (i < n-1)
//	u⁻[j] = Σ_{j<i<n-1} 2·x[i] + 2·x[n-1]            (j < n-1)
//
// Errors: ErrTooFewParticles when n < 2.
func UFromX(x []int) (uPlus, uMinus []int, err error) {
	n := len(x)
	if n < 2 {
		return nil, nil, engineErrorf("UFromX", fmt.Errorf("n=%d: %w", n, ErrTooFewParticles))
	}
	uPlus = make([]int, n-1)
	uMinus = make([]int, n-1)
	for i := 0; i < n-1; i++ {
		uPlus[i] = 2 * x[i]
		for j := 0; j < i; j++ {
			uMinus[j] += 2 * x[i]
		}
	}
	for j := 0; j < n-1; j++ {
		uMinus[j] += 2 * x[n-1]
	}

	return uPlus, uMinus, nil
}

// eliminateYn expands y_n over compositions of y[n-1] into n-1 parts:
// one yTerm per composition with coefficient (-1)^{y_n}·multinomial.
func eliminateYn(tbl *multinomial.Table, y []int) ([]yTerm, error) {
	n := len(y)
	last := y[n-1]
	comps, err := tbl.Compositions(n-1, last)
	if err != nil {
		return nil, engineErrorf("eliminateYn", err)
	}
	sign := 1.0
	if last%2 == 1 {
		sign = -1
	}
	out := make([]yTerm, 0, len(comps))
	for _, c := range comps {
		t := yTerm{coef: sign * c.Coef, y: make([]int, n-1)}
		for i := range t.y {
			t.y[i] = y[i] + c.Parts[i]
		}
		out = append(out, t)
	}

	return out, nil
}

// yTildeTerms returns the expansion of the exponent a at position i
// (1 ≤ i < width) as terms of the given width:
//
//	Σ_{l=0}^{a} Σ_{compositions m of a-l into i parts}
//	  C(a,l)·multinomial(m)·(-1)^{a-l}
//	  u⁺[j] = ỹ[j] = m[j], u⁻[j] = a + Σ_{k<j} m[k]   (j < i)
//	  u⁺[i] = 2a-l, u⁻[i] = l, ỹ[i] = l
func yTildeTerms(tbl *multinomial.Table, i, a, width int) ([]IntermediateTerm, error) {
	var out []IntermediateTerm
	for l := 0; l <= a; l++ {
		comps, err := tbl.Compositions(i, a-l)
		if err != nil {
			return nil, engineErrorf("yTildeTerms", err)
		}
		base := multinomial.Binomial(a, l)
		if (a-l)%2 == 1 {
			base = -base
		}
		for _, c := range comps {
			t := newIntermediate(width, base*c.Coef)
			partial := 0
			for j := 0; j < i; j++ {
				t.UPlus[j] = c.Parts[j]
				t.YTilde[j] = c.Parts[j]
				t.UMinus[j] = a + partial
				partial += c.Parts[j]
			}
			t.UPlus[i] = 2*a - l
			t.UMinus[i] = l
			t.YTilde[i] = l
			out = append(out, t)
		}
	}

	return out, nil
}

// yTildeFromY expands the transverse exponents y (length n ≥ 2) into
// intermediate terms of width n-1 (x contribution not yet included).
func yTildeFromY(tbl *multinomial.Table, y []int) ([]IntermediateTerm, error) {
	width := len(y) - 1
	yTerms, err := eliminateYn(tbl, y)
	if err != nil {
		return nil, engineErrorf("yTildeFromY", err)
	}

	var out []IntermediateTerm
	for _, yt := range yTerms {
		seed := newIntermediate(width, yt.coef)
		seed.UPlus[0] = yt.y[0]
		seed.UMinus[0] = yt.y[0]
		seed.YTilde[0] = yt.y[0]
		running := []IntermediateTerm{seed}

		for i := 1; i < width; i++ {
			a := yt.y[i]
			if a == 0 {
				continue
			}
			factors, err := yTildeTerms(tbl, i, a, width)
			if err != nil {
				return nil, engineErrorf("yTildeFromY", err)
			}
			next := make([]IntermediateTerm, 0, len(running)*len(factors))
			for _, r := range running {
				for _, f := range factors {
					next = append(next, r.times(f))
				}
			}
			running = next
		}
		out = append(out, running...)
	}

	return out, nil
}

// thetaFromYTilde converts one intermediate term into a final term. The last
// ỹ component has no cosθ partner and is dropped from Cos.
func thetaFromYTilde(t IntermediateTerm) FinalTerm {
	w := len(t.YTilde)
	f := FinalTerm{
		Coef:   t.Coef,
		UPlus:  append([]int(nil), t.UPlus...),
		UMinus: append([]int(nil), t.UMinus...),
		Sin:    make([]int, w-1),
		Cos:    append([]int(nil), t.YTilde[:w-1]...),
	}
	for i := 0; i < w-1; i++ {
		for j := i + 1; j < w; j++ {
			f.Sin[i] += t.YTilde[j]
		}
	}

	return f
}

// IntermediateTerms returns the memoized y→ỹ expansion of k with the x→u
// contribution added to every term. Each term has vectors of length n-1.
//
// Errors: ErrMalformedKey, ErrTooFewParticles (n < 2), ErrVectorLength.
func (e *Engine) IntermediateTerms(k Key) ([]IntermediateTerm, error) {
	if err := k.validate("IntermediateTerms"); err != nil {
		return nil, err
	}

	return e.intermediate.get(k.id(), func() ([]IntermediateTerm, error) {
		n := k.N()
		uPlus, uMinus, err := UFromX(k.X())
		if err != nil {
			return nil, engineErrorf("IntermediateTerms", err)
		}
		terms, err := yTildeFromY(e.comb, k.Y())
		if err != nil {
			return nil, engineErrorf("IntermediateTerms", err)
		}
		for idx := range terms {
			for i := range uPlus {
				terms[idx].UPlus[i] += uPlus[i]
				terms[idx].UMinus[i] += uMinus[i]
			}
			if err = terms[idx].check(n); err != nil {
				return nil, engineErrorf("IntermediateTerms", err)
			}
		}

		return terms, nil
	})
}

// FinalTerms returns the memoized direct-matrix expansion of k: u⁺/u⁻ of
// length n-1 and sinθ/cosθ of length n-2.
func (e *Engine) FinalTerms(k Key) ([]FinalTerm, error) {
	if err := k.validate("FinalTerms"); err != nil {
		return nil, err
	}

	return e.final.get(k.id(), func() ([]FinalTerm, error) {
		inter, err := e.IntermediateTerms(k)
		if err != nil {
			return nil, engineErrorf("FinalTerms", err)
		}
		out := make([]FinalTerm, 0, len(inter))
		for _, t := range inter {
			f := thetaFromYTilde(t)
			if err = f.check(k.N()); err != nil {
				return nil, engineErrorf("FinalTerms", err)
			}
			out = append(out, f)
		}

		return out, nil
	})
}
