// SPDX-License-Identifier: MIT

package mono

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMono is returned for a monomial without particles.
	ErrEmptyMono = errors.New("mono: monomial has no particles")

	// ErrBadExponent is returned when Pm < 1 or Pt < 0.
	ErrBadExponent = errors.New("mono: invalid particle exponent")

	// ErrMixedParticles is returned when a basis would hold monomials with
	// different particle counts.
	ErrMixedParticles = errors.New("mono: mixed particle counts in basis")

	// ErrBadDegree is returned when the requested degree is below the particle count.
	ErrBadDegree = errors.New("mono: degree below particle count")

	// ErrParse is returned for malformed textual monomials.
	ErrParse = errors.New("mono: cannot parse monomial")
)

func monoErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
