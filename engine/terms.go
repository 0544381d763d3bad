// SPDX-License-Identifier: MIT

// Package engine - term shapes.
//
// Every exponent vector is allocated at its final length, fixed by the
// particle count n, and checked at component boundaries:
//
//   IntermediateTerm   u⁺, u⁻, ỹ           : n-1
//   FinalTerm          u⁺, u⁻              : n-1;  sinθ, cosθ : n-2
//   InteractionTerm    u                   : 2n;   θ          : 2·max(n-3, 0)
//   NPlus2Term         u                   : 2(n+1); θ        : 2·max(n-2, 0)
//
// Terms returned from the engine's caches are shared and must be treated as
// read-only; every transformation allocates a new term.

package engine

import "fmt"

// IntermediateTerm is one summand of a monomial's y→ỹ expansion, with the
// x→u contribution already folded into UPlus/UMinus.
type IntermediateTerm struct {
	Coef   float64
	UPlus  []int
	UMinus []int
	YTilde []int
}

// FinalTerm is one summand of a direct-matrix expansion in (u, θ) coordinates.
type FinalTerm struct {
	Coef   float64
	UPlus  []int
	UMinus []int
	Sin    []int
	Cos    []int
}

// InteractionTerm is one combined same-N summand. U holds (u⁺, u⁻) pairs:
// n-2 shared pairs followed by the two operands' last pairs. Theta holds
// (sin, cos) pairs. R is the radial exponent triple: the shared part, then
// the first and the second operand's last ỹ exponent.
type InteractionTerm struct {
	Coef  float64
	U     []int
	Theta []int
	R     [3]int
}

// NPlus2Term is one combined n→n+2 summand with a single radial exponent.
type NPlus2Term struct {
	Coef  float64
	U     []int
	Theta []int
	R     int
}

// newIntermediate returns a zero term of the given width with coefficient coef.
func newIntermediate(width int, coef float64) IntermediateTerm {
	return IntermediateTerm{
		Coef:   coef,
		UPlus:  make([]int, width),
		UMinus: make([]int, width),
		YTilde: make([]int, width),
	}
}

// times returns the product term: coefficients multiplied, exponents added.
// Both operands must share one width.
func (t IntermediateTerm) times(o IntermediateTerm) IntermediateTerm {
	out := newIntermediate(len(t.UPlus), t.Coef*o.Coef)
	for i := range out.UPlus {
		out.UPlus[i] = t.UPlus[i] + o.UPlus[i]
		out.UMinus[i] = t.UMinus[i] + o.UMinus[i]
		out.YTilde[i] = t.YTilde[i] + o.YTilde[i]
	}

	return out
}

func (t IntermediateTerm) check(n int) error {
	w := n - 1
	if len(t.UPlus) != w || len(t.UMinus) != w || len(t.YTilde) != w {
		return fmt.Errorf("intermediate term for n=%d has lengths %d/%d/%d: %w",
			n, len(t.UPlus), len(t.UMinus), len(t.YTilde), ErrVectorLength)
	}

	return nil
}

func (t FinalTerm) check(n int) error {
	w := n - 1
	if len(t.UPlus) != w || len(t.UMinus) != w || len(t.Sin) != w-1 || len(t.Cos) != w-1 {
		return fmt.Errorf("final term for n=%d has lengths %d/%d/%d/%d: %w",
			n, len(t.UPlus), len(t.UMinus), len(t.Sin), len(t.Cos), ErrVectorLength)
	}

	return nil
}

func (t FinalTerm) clone() FinalTerm {
	return FinalTerm{
		Coef:   t.Coef,
		UPlus:  append([]int(nil), t.UPlus...),
		UMinus: append([]int(nil), t.UMinus...),
		Sin:    append([]int(nil), t.Sin...),
		Cos:    append([]int(nil), t.Cos...),
	}
}

// addInts returns a+b elementwise; the shorter operand is zero-extended.
func addInts(a, b []int) []int {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := append([]int(nil), a...)
	for i, v := range b {
		out[i] += v
	}

	return out
}
