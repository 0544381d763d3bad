// SPDX-License-Identifier: MIT

// Package dlcq computes operator matrix elements between monomial basis
// states of a truncated light-front Fock space, the raw material of a
// discretized light-cone Hamiltonian.
//
// 🚀 What is in the box?
//
//	• Bases: monomials in per-particle momentum fractions, generated for a
//	  particle count and degree, split by transverse parity
//	• Exact transforms: x→u and y→ỹ→(sinθ, cosθ) exponent expansions,
//	  memoized per canonical key
//	• Closed-form integrals: Beta-function evaluation of every term
//	• Operators: inner product, invariant mass, kinetic, same-N and
//	  n→n+2 interactions
//	• Discretization: μ² partitions turn continuum elements into blocks
//
// Under the hood the work is split across these packages:
//
//	mono/        : Particle, Mono, Basis, basis generation
//	multinomial/ : factorials, binomials, compositions (m-vectors)
//	engine/      : extraction, transforms, symmetrizer, combiner, integrals,
//	               element operations and whole-basis assembly
//	discretize/  : μ² partition blocks (Gauss–Legendre windows)
//	matrix/      : dense row-major matrices, validators, block placement
//	cmd/dlcq/    : command-line front end
//
// Quick example (Gram matrix of the two-particle, degree-3 basis):
//
//	basis, _ := mono.Generate(2, 3)
//	g, _ := engine.New().GramMatrix(ctx, basis)
//
//	go install github.com/katalvlaran/dlcq/cmd/dlcq@latest
package dlcq
