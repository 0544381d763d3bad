// SPDX-License-Identifier: MIT

package mono

import "fmt"

// Generate returns every monomial with n particles and degree Σ(Pm+Pt)=degree,
// each in canonical non-increasing (Pm, Pt) order. Monomials are listed in
// descending lexicographic order of their particle sequences.
//
// Errors: ErrEmptyMono (n<1), ErrBadDegree (degree<n).
func Generate(n, degree int) (*Basis, error) {
	if n < 1 {
		return nil, monoErrorf("Generate", ErrEmptyMono)
	}
	if degree < n {
		return nil, monoErrorf("Generate", fmt.Errorf("degree %d, particles %d: %w", degree, n, ErrBadDegree))
	}

	var out []Mono
	cur := make([]Particle, n)
	// each remaining particle needs at least one unit of degree (Pm ≥ 1)
	var rec func(pos, remaining int, bound Particle)
	rec = func(pos, remaining int, bound Particle) {
		if pos == n {
			if remaining == 0 {
				out = append(out, Mono{particles: append([]Particle(nil), cur...), coef: 1})
			}
			return
		}
		left := n - pos - 1
		for pm := min(bound.Pm, remaining-left); pm >= 1; pm-- {
			maxPt := remaining - left - pm
			if pm == bound.Pm {
				maxPt = min(maxPt, bound.Pt)
			}
			for pt := maxPt; pt >= 0; pt-- {
				cur[pos] = Particle{Pm: pm, Pt: pt}
				rec(pos+1, remaining-pm-pt, cur[pos])
			}
		}
	}
	rec(0, degree, Particle{Pm: degree, Pt: degree})

	return NewBasis(out...)
}

// SplitParity separates b by the parity of each monomial's total Pt.
func SplitParity(b *Basis) (even, odd *Basis, err error) {
	var ev, od []Mono
	for _, m := range b.monos {
		if m.TotalPt()%2 == 0 {
			ev = append(ev, m)
		} else {
			od = append(od, m)
		}
	}
	if even, err = NewBasis(ev...); err != nil {
		return nil, nil, monoErrorf("SplitParity", err)
	}
	if odd, err = NewBasis(od...); err != nil {
		return nil, nil, monoErrorf("SplitParity", err)
	}

	return even, odd, nil
}
