// SPDX-License-Identifier: MIT

// Package engine - integral evaluator.
//
// Closed forms (a, b are the exponents after the kind-specific shifts):
//
//	U(a, b)  = ∫ over the u-simplex = 2·B(a/2+1, b/2+1)
//	Θs(a, b) = ∫_0^π sin^a cos^b    = B((1+a)/2, (1+b)/2),   0 if b is odd
//	Θl(a, b) = ∫_0^{2π} sin^a cos^b = 2·Θs(a, b),            0 if a+b is odd
//
// U and Θs are memoized under the sorted pair; both are symmetric in their
// arguments.

package engine

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// UIntegral returns 2·B(a/2+1, b/2+1).
func (e *Engine) UIntegral(a, b float64) float64 {
	return e.uInt.get(a, b, func(a, b float64) float64 {
		return 2 * mathext.Beta(a/2+1, b/2+1)
	})
}

// ThetaShort returns B((1+a)/2, (1+b)/2), or exactly 0 when b is odd.
// The parity test runs before the (sorted) cache lookup.
func (e *Engine) ThetaShort(a, b float64) float64 {
	if isOdd(b) {
		return 0
	}

	return e.thetaInt.get(a, b, func(a, b float64) float64 {
		return mathext.Beta((1+a)/2, (1+b)/2)
	})
}

// ThetaLong returns 2·ThetaShort(a, b), or exactly 0 when a+b is odd.
func (e *Engine) ThetaLong(a, b float64) float64 {
	if isOdd(a + b) {
		return 0
	}

	return 2 * e.ThetaShort(a, b)
}

func isOdd(v float64) bool { return math.Mod(math.Abs(v), 2) == 1 }

// directIntegral evaluates one direct term (n = len(UPlus)+1):
//
//	coef · Π_{i<n-1} U(u⁺[i]+3, 5(n-i)-7+u⁻[i])
//	     · Π_{i<n-3} Θs(n-i-3+sin[i], cos[i]) · Θl(sin[n-3], cos[n-3])   (n ≥ 3)
//	     · 2                                                            (n = 2)
func (e *Engine) directIntegral(t FinalTerm) float64 {
	n := len(t.UPlus) + 1
	out := t.Coef
	for i := 0; i < n-1; i++ {
		out *= e.UIntegral(float64(t.UPlus[i]+3), float64(5*(n-i)-7+t.UMinus[i]))
	}
	if n >= 3 {
		for i := 0; i < n-3; i++ {
			out *= e.ThetaShort(float64(n-i-3+t.Sin[i]), float64(t.Cos[i]))
		}
		out *= e.ThetaLong(float64(t.Sin[n-3]), float64(t.Cos[n-3]))
	} else {
		out *= 2
	}

	return out
}

// massShift returns a copy of t with a mass insertion at particle p:
// u⁺[p] -= 2 for p < n-1, and u⁻[j] -= 2 for every j < p.
// The insertion at the last particle (p = n-1) touches every u⁻ entry.
// t itself is never modified.
func massShift(t FinalTerm, p int) FinalTerm {
	s := t.clone()
	if p < len(s.UPlus) {
		s.UPlus[p] -= 2
	}
	for j := 0; j < p && j < len(s.UMinus); j++ {
		s.UMinus[j] -= 2
	}

	return s
}

// massIntegral sums directIntegral over the n mass insertions.
func (e *Engine) massIntegral(t FinalTerm) float64 {
	n := len(t.UPlus) + 1
	total := 0.0
	for p := 0; p < n; p++ {
		total += e.directIntegral(massShift(t, p))
	}

	return total
}

// sameNIntegral evaluates the u and θ integrals of a same-N term; the radial
// and ratio dependence (R) is left for the discretization step.
// With n = len(U)/2:
//
//	u[2i] += 3, u[2i+1] += 5(n-i)-3           (i < n-2)
//	last four u entries += 1
//	θ[2k] += n-k-3                             (every θ pair but the last)
//	Π_{i<n} U(u[2i], u[2i+1]) · Π short θ · long θ (last pair)
//
// At n = 2 there is no angle left and the constant 2 stands in for the long θ.
func (e *Engine) sameNIntegral(t InteractionTerm) float64 {
	n := len(t.U) / 2
	out := t.Coef
	for i := 0; i < n; i++ {
		a, b := t.U[2*i], t.U[2*i+1]
		if i < n-2 {
			a += 3
			b += 5*(n-i) - 3
		} else {
			a++
			b++
		}
		out *= e.UIntegral(float64(a), float64(b))
	}
	out *= e.thetaChain(t.Theta, n-3)
	if n == 2 {
		out *= 2
	}

	return out
}

// nPlus2Integral evaluates the u and θ integrals of an n→n+2 term, where n
// is the smaller particle count and len(U) = 2(n+1):
//
//	u[2i] += 3, u[2i+1] += 5(n-i)-5           (i < n-1)
//	last four u entries += 1
//	θ[2k] += n-k-2                             (every θ pair but the last)
//	· 2                                        (n = 2)
func (e *Engine) nPlus2Integral(t NPlus2Term) float64 {
	n := len(t.U)/2 - 1
	out := t.Coef
	for i := 0; i < n+1; i++ {
		a, b := t.U[2*i], t.U[2*i+1]
		if i < n-1 {
			a += 3
			b += 5*(n-i) - 5
		} else {
			a++
			b++
		}
		out *= e.UIntegral(float64(a), float64(b))
	}
	out *= e.thetaChain(t.Theta, n-2)
	if n == 2 {
		out *= 2
	}

	return out
}

// thetaChain multiplies the θ pairs (sin, cos) of an interaction chain:
// pair k gets its sine exponent shifted by offset-k, all pairs but the last
// are short and the last is long. An empty chain contributes 1.
func (e *Engine) thetaChain(theta []int, offset int) float64 {
	pairs := len(theta) / 2
	out := 1.0
	for k := 0; k < pairs; k++ {
		sin, cos := float64(theta[2*k]), float64(theta[2*k+1])
		if k == pairs-1 {
			out *= e.ThetaLong(sin, cos)
			continue
		}
		out *= e.ThetaShort(sin+float64(offset-k), cos)
	}

	return out
}
