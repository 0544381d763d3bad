// SPDX-License-Identifier: MIT

// Package engine computes matrix elements of the inner product, mass,
// kinetic and interaction operators between monomial basis states of a
// discretized light-front Fock space, and assembles them into (block) matrices.
//
// Pipeline per monomial pair (A, B):
//
//  1. Extract: each monomial becomes a canonical exponent Key (x ∥ y).
//  2. Transform: x→u is linear; y→ỹ eliminates the last particle's y by a
//     multinomial expansion, then folds every other y in through nested
//     binomial/multinomial expansions, and finally derives the sinθ/cosθ
//     exponents. The result is a weighted sum of terms, memoized per Key.
//  3. Symmetrize: NextArrangement walks every distinct particle arrangement
//     exactly once; explicit factorial degeneracy factors account for
//     identical particles.
//  4. Combine: the two operands' term lists are convolved term by term;
//     interaction terms whose radial integral vanishes by parity are dropped.
//  5. Integrate: each combined term reduces to a product of Beta-function
//     integrals, memoized under sorted exponent pairs.
//  6. Assemble: elements for i ≤ j are computed concurrently and mirrored
//     (scalars copied, blocks transposed).
//
// All caches are owned by an Engine instance; independent engines share no
// state. Engines are safe for concurrent use.
package engine
