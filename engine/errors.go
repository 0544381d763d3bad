// SPDX-License-Identifier: MIT
// Package engine: sentinel error set.
// Structural errors abort the enclosing element computation and propagate
// unchanged to the whole-matrix builders, which abort the build. Callers
// match with errors.Is.

package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedKey is returned for an empty or odd-length exponent key.
	ErrMalformedKey = errors.New("engine: malformed exponent key")

	// ErrTooFewParticles is returned when a transform needs more particles
	// than the monomial carries (x→u needs n ≥ 2).
	ErrTooFewParticles = errors.New("engine: too few particles")

	// ErrParticleMismatch signals a particle-count mismatch between the two
	// operands and the requested matrix kind.
	ErrParticleMismatch = errors.New("engine: particle count mismatch for matrix kind")

	// ErrVectorLength signals a term whose exponent vectors do not have the
	// length implied by its particle count.
	ErrVectorLength = errors.New("engine: exponent vector length invariant violated")

	// ErrOddRadial signals a radial factor (1-r²)^{k/2} with odd k reaching
	// the binomial expansion; such terms must be pruned by the combiner.
	ErrOddRadial = errors.New("engine: odd radial exponent")

	// ErrNonFinite signals a NaN or ±Inf integral result.
	ErrNonFinite = errors.New("engine: non-finite integral result")

	// ErrUnknownKind is returned for a matrix kind outside the supported set
	// or one that is not valid for the requested builder.
	ErrUnknownKind = errors.New("engine: unknown matrix kind")

	// ErrEmptyBasis is returned when a whole-matrix builder receives no monomials.
	ErrEmptyBasis = errors.New("engine: empty basis")

	// ErrBadPartitions is returned for a non-positive discretization partition count.
	ErrBadPartitions = errors.New("engine: partitions must be > 0")
)

// engineErrorf wraps err as "<tag>: <err>"; the sentinel still matches errors.Is.
func engineErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
