// SPDX-License-Identifier: MIT

// Package discretize supplies the finite-partition "Mu" blocks that turn
// continuum matrix elements into discretized block matrices.
//
// The squared invariant mass μ² ∈ [0, 1] is split into k equal bins of
// width w = 1/k. Each block is k×k:
//
//	Identity            δ_ij
//	Kinetic             δ_ij·(i+½)·w
//	NtoN(α, r)[i][j]    (1/w) ∫_{bin i} ∫_{bin j} (μ₂/μ₁)^α (μ_min/μ_max)^{r+1} dμ₁² dμ₂²
//	NPlus2(r)[i][j]     (1/w) ∫_{bin i} ∫_{bin j} (μ_min/μ_max)^{(r+1)/2} dμ₁² dμ₂²
//
// Window integrals use fixed-order Gauss–Legendre quadrature
// (gonum integrate/quad); the diagonal window is split along μ₁ = μ₂ where
// the integrand has a kink.
//
// A Discretizer memoizes every block under its exponent key; concurrent
// requests for one key compute it once. Returned blocks are copies.
package discretize
