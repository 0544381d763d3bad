// SPDX-License-Identifier: MIT

// Package engine - term combiner.
//
// Purpose:
//   - Convolve two operands' expansions: one combined term per (termA, termB)
//     pair, coefficients multiplied, exponent vectors added.
//   - For interaction kinds, derive the radial exponents from the tails of
//     the operands' ỹ vectors and drop terms whose radial integral vanishes
//     by parity (odd r₁ or r₂ for same-N, odd r for n→n+2).
//
// Determinism:
//   - Output order is row-major over (termA, termB).

package engine

import "fmt"

// combineDirect convolves two direct expansions of equal particle count.
func combineDirect(fa, fb []FinalTerm) []FinalTerm {
	out := make([]FinalTerm, 0, len(fa)*len(fb))
	for _, a := range fa {
		for _, b := range fb {
			out = append(out, FinalTerm{
				Coef:   a.Coef * b.Coef,
				UPlus:  addInts(a.UPlus, b.UPlus),
				UMinus: addInts(a.UMinus, b.UMinus),
				Sin:    addInts(a.Sin, b.Sin),
				Cos:    addInts(a.Cos, b.Cos),
			})
		}
	}

	return out
}

// combineSameNTerm merges two intermediate terms of n particles (vectors of
// length w = n-1) into one same-N term:
//
//	u     = (f1.u±[i]+f2.u±[i] for i < w-1) ++ f1.u±[w-1] ++ f2.u±[w-1]
//	θ[2i] = Σ_{j=i+1}^{w-2} (f1.ỹ[j]+f2.ỹ[j]),  θ[2i+1] = f1.ỹ[i]+f2.ỹ[i]   (i < w-2)
//	r     = (Σ_{i<w-1} f1.ỹ[i]+f2.ỹ[i], f1.ỹ[w-1], f2.ỹ[w-1])
//
// Swapping f1 and f2 swaps r₁ with r₂ and the two last u pairs; every
// other component is unchanged.
func combineSameNTerm(f1, f2 IntermediateTerm) InteractionTerm {
	w := len(f1.UPlus)
	n := w + 1
	t := InteractionTerm{
		Coef:  f1.Coef * f2.Coef,
		U:     make([]int, 2*n),
		Theta: make([]int, 2*max(n-3, 0)),
	}
	for i := 0; i < w-1; i++ {
		t.U[2*i] = f1.UPlus[i] + f2.UPlus[i]
		t.U[2*i+1] = f1.UMinus[i] + f2.UMinus[i]
	}
	last := len(t.U)
	t.U[last-4] = f1.UPlus[w-1]
	t.U[last-3] = f1.UMinus[w-1]
	t.U[last-2] = f2.UPlus[w-1]
	t.U[last-1] = f2.UMinus[w-1]

	for i := 0; i < n-3; i++ {
		for j := i + 1; j < w-1; j++ {
			t.Theta[2*i] += f1.YTilde[j] + f2.YTilde[j]
		}
		t.Theta[2*i+1] = f1.YTilde[i] + f2.YTilde[i]
	}
	for i := 0; i < w-1; i++ {
		t.R[0] += f1.YTilde[i] + f2.YTilde[i]
	}
	t.R[1] = f1.YTilde[w-1]
	t.R[2] = f2.YTilde[w-1]

	return t
}

// combineSameN convolves two same-N expansions and drops terms with odd r₁
// or r₂. Returns the kept terms and the number pruned.
func combineSameN(fa, fb []IntermediateTerm) ([]InteractionTerm, int) {
	out := make([]InteractionTerm, 0, len(fa)*len(fb))
	pruned := 0
	for _, a := range fa {
		for _, b := range fb {
			t := combineSameNTerm(a, b)
			if t.R[1]%2 != 0 || t.R[2]%2 != 0 {
				pruned++
				continue
			}
			out = append(out, t)
		}
	}

	return out, pruned
}

// combineNPlus2Term merges an n-particle term f1 (width n-1) with an
// (n+2)-particle term f2 (width n+1):
//
//	u     = (f1.u±[i]+f2.u±[i] for i < n-1) ++ f2.u±[n-1] ++ f2.u±[n]
//	θ[2i] = Σ_{j=i+1}^{n-2} (f1.ỹ[j]+f2.ỹ[j]),  θ[2i+1] = f1.ỹ[i]+f2.ỹ[i]   (i < n-2)
//	r     = f2.ỹ[n-1] + f2.ỹ[n]
func combineNPlus2Term(f1, f2 IntermediateTerm) NPlus2Term {
	n := len(f1.UPlus) + 1
	t := NPlus2Term{
		Coef:  f1.Coef * f2.Coef,
		U:     make([]int, 2*(n+1)),
		Theta: make([]int, 2*max(n-2, 0)),
	}
	for i := 0; i < n-1; i++ {
		t.U[2*i] = f1.UPlus[i] + f2.UPlus[i]
		t.U[2*i+1] = f1.UMinus[i] + f2.UMinus[i]
	}
	last := len(t.U)
	t.U[last-4] = f2.UPlus[n-1]
	t.U[last-3] = f2.UMinus[n-1]
	t.U[last-2] = f2.UPlus[n]
	t.U[last-1] = f2.UMinus[n]

	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			t.Theta[2*i] += f1.YTilde[j] + f2.YTilde[j]
		}
		t.Theta[2*i+1] = f1.YTilde[i] + f2.YTilde[i]
	}
	t.R = f2.YTilde[n-1] + f2.YTilde[n]

	return t
}

// combineNPlus2 convolves an n-particle and an (n+2)-particle expansion and
// drops terms with odd r.
func combineNPlus2(fa, fb []IntermediateTerm) ([]NPlus2Term, int) {
	out := make([]NPlus2Term, 0, len(fa)*len(fb))
	pruned := 0
	for _, a := range fa {
		for _, b := range fb {
			t := combineNPlus2Term(a, b)
			if t.R%2 != 0 {
				pruned++
				continue
			}
			out = append(out, t)
		}
	}

	return out, pruned
}

// checkWidths verifies the operand widths expected by an interaction combiner.
func checkWidths(fa, fb []IntermediateTerm, wa, wb int) error {
	for _, t := range fa {
		if err := t.check(wa + 1); err != nil {
			return err
		}
	}
	for _, t := range fb {
		if err := t.check(wb + 1); err != nil {
			return err
		}
	}
	if wa < 1 || wb < 1 {
		return fmt.Errorf("widths %d/%d: %w", wa, wb, ErrVectorLength)
	}

	return nil
}
