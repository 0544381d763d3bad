// SPDX-License-Identifier: MIT

package mono

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Particle carries one particle's exponents.
type Particle struct {
	Pm int `json:"pm"` // longitudinal exponent, ≥ 1
	Pt int `json:"pt"` // transverse exponent, ≥ 0
}

// Less orders particles by Pm, ties broken by Pt.
func (p Particle) Less(q Particle) bool {
	if p.Pm != q.Pm {
		return p.Pm < q.Pm
	}

	return p.Pt < q.Pt
}

// Mono is an immutable monomial: an ordered particle list and a coefficient.
// The particle order is preserved exactly as constructed.
type Mono struct {
	particles []Particle
	coef      float64
}

// New returns a unit-coefficient monomial over a copy of particles.
//
// Errors: ErrEmptyMono, ErrBadExponent.
func New(particles ...Particle) (Mono, error) {
	return NewWithCoef(1, particles...)
}

// NewWithCoef is New with an explicit coefficient (must be finite).
func NewWithCoef(coef float64, particles ...Particle) (Mono, error) {
	if len(particles) == 0 {
		return Mono{}, monoErrorf("New", ErrEmptyMono)
	}
	if math.IsNaN(coef) || math.IsInf(coef, 0) {
		return Mono{}, monoErrorf("New", fmt.Errorf("coefficient %v: %w", coef, ErrBadExponent))
	}
	for i, p := range particles {
		if p.Pm < 1 || p.Pt < 0 {
			return Mono{}, monoErrorf("New", fmt.Errorf("particle %d (%d,%d): %w", i, p.Pm, p.Pt, ErrBadExponent))
		}
	}

	return Mono{particles: append([]Particle(nil), particles...), coef: coef}, nil
}

// MustNew is New for literals in tests and examples; it panics on error.
func MustNew(particles ...Particle) Mono {
	m, err := New(particles...)
	if err != nil {
		panic(err)
	}

	return m
}

// N returns the particle count.
func (m Mono) N() int { return len(m.particles) }

// Coef returns the monomial coefficient.
func (m Mono) Coef() float64 { return m.coef }

// At returns particle i (no bounds check beyond the slice's own).
func (m Mono) At(i int) Particle { return m.particles[i] }

// Particles returns a copy of the particle list.
func (m Mono) Particles() []Particle { return append([]Particle(nil), m.particles...) }

// Degree returns Σ(Pm+Pt).
func (m Mono) Degree() int {
	d := 0
	for _, p := range m.particles {
		d += p.Pm + p.Pt
	}

	return d
}

// TotalPt returns Σ Pt.
func (m Mono) TotalPt() int {
	s := 0
	for _, p := range m.particles {
		s += p.Pt
	}

	return s
}

// IdenticalCounts returns the multiplicities of identical particles, in
// order of first appearance.
func (m Mono) IdenticalCounts() []int {
	var (
		seen   []Particle
		counts []int
	)
outer:
	for _, p := range m.particles {
		for k, q := range seen {
			if q == p {
				counts[k]++
				continue outer
			}
		}
		seen = append(seen, p)
		counts = append(counts, 1)
	}

	return counts
}

// Canonical returns a copy with particles sorted non-increasing by (Pm, Pt).
func (m Mono) Canonical() Mono {
	ps := m.Particles()
	sort.SliceStable(ps, func(i, j int) bool { return ps[j].Less(ps[i]) })

	return Mono{particles: ps, coef: m.coef}
}

// Key identifies the particle list (coefficient excluded).
func (m Mono) Key() string {
	var sb strings.Builder
	for i, p := range m.particles {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(p.Pm))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(p.Pt))
	}

	return sb.String()
}

// String renders "coef*(pm,pt)(pm,pt)...", omitting a unit coefficient.
func (m Mono) String() string {
	var sb strings.Builder
	if m.coef != 1 {
		sb.WriteString(strconv.FormatFloat(m.coef, 'g', -1, 64))
		sb.WriteByte('*')
	}
	for _, p := range m.particles {
		fmt.Fprintf(&sb, "(%d,%d)", p.Pm, p.Pt)
	}

	return sb.String()
}

// Parse reads the Key format "pm:pt,pm:pt,...".
func Parse(s string) (Mono, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Mono{}, monoErrorf("Parse", ErrEmptyMono)
	}
	fields := strings.Split(s, ",")
	ps := make([]Particle, 0, len(fields))
	for _, f := range fields {
		pm, pt, ok := strings.Cut(strings.TrimSpace(f), ":")
		if !ok {
			return Mono{}, monoErrorf("Parse", fmt.Errorf("%q: %w", f, ErrParse))
		}
		a, errA := strconv.Atoi(pm)
		b, errB := strconv.Atoi(pt)
		if errA != nil || errB != nil {
			return Mono{}, monoErrorf("Parse", fmt.Errorf("%q: %w", f, ErrParse))
		}
		ps = append(ps, Particle{Pm: a, Pt: b})
	}

	return New(ps...)
}
