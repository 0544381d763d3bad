// SPDX-License-Identifier: MIT

package engine

import (
	"encoding/binary"
	"fmt"

	"github.com/katalvlaran/dlcq/mono"
)

// Key is the canonical exponent key of a monomial: n longitudinal exponents
// x[i] = Pm(i)-1 followed by n transverse exponents y[i] = Pt(i).
type Key []int

// Extract builds the Key of m, preserving particle order. O(n).
//
// Errors: ErrTooFewParticles for a monomial without particles.
func Extract(m mono.Mono) (Key, error) {
	n := m.N()
	if n < 1 {
		return nil, engineErrorf("Extract", ErrTooFewParticles)
	}
	k := make(Key, 2*n)
	for i := 0; i < n; i++ {
		p := m.At(i)
		k[i] = p.Pm - 1
		k[n+i] = p.Pt
	}

	return k, nil
}

// N returns the particle count encoded by the key.
func (k Key) N() int { return len(k) / 2 }

// X returns the longitudinal half (shared storage).
func (k Key) X() []int { return k[:len(k)/2] }

// Y returns the transverse half (shared storage).
func (k Key) Y() []int { return k[len(k)/2:] }

// Clone returns an independent copy.
func (k Key) Clone() Key { return append(Key(nil), k...) }

// Equal reports element-wise equality.
func (k Key) Equal(o Key) bool {
	if len(k) != len(o) {
		return false
	}
	for i := range k {
		if k[i] != o[i] {
			return false
		}
	}

	return true
}

// validate rejects empty and odd-length keys.
func (k Key) validate(tag string) error {
	if len(k) == 0 || len(k)%2 != 0 {
		return engineErrorf(tag, fmt.Errorf("length %d: %w", len(k), ErrMalformedKey))
	}

	return nil
}

// id is the byte identity used as a cache key (uvarint per entry, so keys of
// different lengths or values never collide).
func (k Key) id() string {
	buf := make([]byte, 0, len(k)+1)
	buf = binary.AppendUvarint(buf, uint64(len(k)))
	for _, v := range k {
		buf = binary.AppendVarint(buf, int64(v))
	}

	return string(buf)
}

// pairID is the cache identity of an ordered pair of keys.
func pairID(a, b Key) string { return a.id() + b.id() }
