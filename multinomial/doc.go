// SPDX-License-Identifier: MIT

// Package multinomial provides the combinatorics used by the matrix element
// engine: factorials, binomial and multinomial coefficients, and enumeration
// of m-vectors (partitions of an order into a fixed number of parts).
//
// An m-vector has the layout [order, m1, ..., mk] with m1 ≥ m2 ≥ ... ≥ mk ≥ 0
// and m1+...+mk = order. Every distinct composition of order into k parts is
// reached by iterating PrevPermutation over the tail mv[1:] of exactly one
// m-vector, which lets callers enumerate compositions without duplicates.
//
// Table memoizes enumerations and coefficients on demand and is safe for
// concurrent use.
package multinomial
