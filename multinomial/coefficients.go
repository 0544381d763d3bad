// SPDX-License-Identifier: MIT

package multinomial

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// exactBinomialLimit bounds the arguments for which combin.Binomial is used;
// above it the coefficient is computed through log-gamma.
const exactBinomialLimit = 60

// Factorial returns n! as a float64 (exact up to 22!, correctly rounded after).
// Returns NaN for negative n.
func Factorial(n int) float64 {
	if n < 0 {
		return math.NaN()
	}
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}

	return f
}

// Binomial returns C(n, k); zero when k<0 or k>n.
func Binomial(n, k int) float64 {
	if n < 0 || k < 0 || k > n {
		return 0
	}
	if n <= exactBinomialLimit {
		return float64(combin.Binomial(n, k))
	}
	ln, _ := math.Lgamma(float64(n + 1))
	lk, _ := math.Lgamma(float64(k + 1))
	lnk, _ := math.Lgamma(float64(n - k + 1))

	return math.Round(math.Exp(ln - lk - lnk))
}

// Multinomial returns (Σparts)! / Π parts[i]!.
// Errors: ErrNegative for a negative part.
func Multinomial(parts []int) (float64, error) {
	total, coef := 0, 1.0
	for _, p := range parts {
		if p < 0 {
			return 0, multinomialErrorf("Multinomial", ErrNegative)
		}
		total += p
		coef *= Binomial(total, p)
	}

	return coef, nil
}

// PrevPermutation rearranges s into the lexicographically previous
// permutation and reports true. When s is already the smallest arrangement
// (non-decreasing) it is reset to the largest one and false is returned.
// Equal elements are treated as indistinguishable, so starting from a
// non-increasing slice every distinct arrangement is visited exactly once.
func PrevPermutation(s []int) bool {
	n := len(s)
	if n < 2 {
		return false
	}
	i := n - 1
	for i > 0 && s[i-1] <= s[i] {
		i--
	}
	if i == 0 {
		reverseInts(s)
		return false
	}
	j := n - 1
	for s[j] >= s[i-1] {
		j--
	}
	s[i-1], s[j] = s[j], s[i-1]
	reverseInts(s[i:])

	return true
}

func reverseInts(s []int) {
	for l, r := 0, len(s)-1; l < r; l, r = l+1, r-1 {
		s[l], s[r] = s[r], s[l]
	}
}
