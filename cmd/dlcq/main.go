// SPDX-License-Identifier: MIT

// Command dlcq generates monomial bases and computes inner product, mass,
// kinetic and interaction matrices between them.
//
// Usage:
//
//	dlcq [flags] <command>
//
// Commands:
//   - basis:   list the monomials of a particle count and degree
//   - matrix:  build a whole-basis (optionally discretized) matrix
//   - element: compute one matrix element between two monomials
//   - config:  show the effective configuration
//   - version: print build information
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	Execute(ctx)
}
