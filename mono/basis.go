// SPDX-License-Identifier: MIT

package mono

import "fmt"

// Basis is an ordered, deduplicated collection of monomials sharing one
// particle count. It is read-only after construction.
type Basis struct {
	n     int
	monos []Mono
	index map[string]int
}

// NewBasis builds a basis from ms, dropping later duplicates (same particle
// list) and keeping first-seen order. An empty basis is allowed and reports N()==0.
//
// Errors: ErrMixedParticles.
func NewBasis(ms ...Mono) (*Basis, error) {
	b := &Basis{index: make(map[string]int, len(ms))}
	for _, m := range ms {
		if b.n == 0 {
			b.n = m.N()
		} else if m.N() != b.n {
			return nil, monoErrorf("NewBasis", fmt.Errorf("%s has %d particles, basis %d: %w",
				m, m.N(), b.n, ErrMixedParticles))
		}
		k := m.Key()
		if _, dup := b.index[k]; dup {
			continue
		}
		b.index[k] = len(b.monos)
		b.monos = append(b.monos, m)
	}

	return b, nil
}

// Len returns the number of monomials.
func (b *Basis) Len() int { return len(b.monos) }

// N returns the common particle count (0 for an empty basis).
func (b *Basis) N() int { return b.n }

// At returns the i-th monomial.
func (b *Basis) At(i int) Mono { return b.monos[i] }

// Monos returns a copy of the monomial list.
func (b *Basis) Monos() []Mono { return append([]Mono(nil), b.monos...) }

// IndexOf returns the position of a monomial with the same particle list, or -1.
func (b *Basis) IndexOf(m Mono) int {
	if i, ok := b.index[m.Key()]; ok {
		return i
	}

	return -1
}
