// SPDX-License-Identifier: MIT

// Package mono models the basis states of the truncated Fock space: a
// Monomial is an ordered product of per-particle momentum powers, each
// particle carrying a longitudinal exponent Pm ≥ 1 and a transverse exponent
// Pt ≥ 0; a Basis is an ordered, deduplicated set of monomials with a common
// particle count.
//
// Generate enumerates every monomial of a given particle count and degree
// (degree = Σ(Pm+Pt), so the minimal degree equals the particle count) in
// canonical, non-increasing particle order. SplitParity separates a basis by
// the parity of its total transverse exponent; the two halves do not mix
// under any of the engine's operators.
package mono
