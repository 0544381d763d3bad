// SPDX-License-Identifier: MIT

// Package matrix provides the dense float64 containers produced by the
// matrix element engine and the discretization layer.
//
// The package offers:
//
//   - Dense, a row-major r×c matrix with bounds-checked At/Set and an
//     optional finite-value policy (NaN/±Inf rejection on Set).
//   - Elementwise kernels: Add, Scale, Transpose, AllClose.
//   - Block placement helpers used to assemble discretized operators out of
//     partitions×partitions tiles: SetBlock, AddScaledInPlace, MirrorUpper.
//   - Centralized validators (ValidateSquare, ValidateSymmetric, ...).
//
// All kernels are deterministic (fixed loop orders, no map iteration), never
// panic on user input and report failures through the sentinel errors in
// errors.go, matched with errors.Is.
package matrix
