// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dlcq/engine"
	"github.com/katalvlaran/dlcq/matrix"
	"github.com/katalvlaran/dlcq/mono"
)

var matrixDegreeB int

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Build a whole-basis matrix",
	Long: `Build the matrix of one operator kind over the generated basis.

Kinds: inner, mass, kinetic, same-n, n-plus-2. With --partitions 0 the
direct kinds produce the continuum matrix; a positive partition count
produces the discretized block matrix. Interaction kinds require
--partitions > 0. n-plus-2 couples the basis to the basis of n+2
particles and degree --degree-b (default degree+2).`,
	Example: `  # Gram matrix of the two-particle degree-4 basis
  dlcq matrix -n 2 -d 4 --kind inner

  # Discretized same-N interaction with 8 partitions on 4 workers
  dlcq matrix -n 3 -d 6 --kind same-n --partitions 8 --workers 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyBasisFlags(cmd)
		overrideString(cmd, "kind", &cfg.Kind)
		overrideInt(cmd, "partitions", &cfg.Partitions)
		overrideInt(cmd, "workers", &cfg.Workers)
		if err := cfg.Validate(); err != nil {
			return ConfigError("invalid configuration", err)
		}
		kind, err := engine.ParseKind(cfg.Kind)
		if err != nil {
			return InputError("parsing kind", err)
		}

		basis, err := buildBasis(cfg.Particles, cfg.Degree, cfg.Parity)
		if err != nil {
			return InputError("generating basis", err)
		}
		eng := engine.New(engine.WithLogger(logger), engine.WithWorkers(cfg.Workers))

		out := matrixOutput{
			Kind:       kind.String(),
			Particles:  cfg.Particles,
			Degree:     cfg.Degree,
			Partitions: cfg.Partitions,
			Basis:      monoKeys(basis),
		}
		var m *matrix.Dense
		ctx := cmd.Context()
		switch {
		case kind == engine.KindNPlus2:
			degreeB := matrixDegreeB
			if degreeB == 0 {
				degreeB = cfg.Degree + 2
			}
			var basisB *mono.Basis
			if basisB, err = buildBasis(cfg.Particles+2, degreeB, cfg.Parity); err != nil {
				return InputError("generating n+2 basis", err)
			}
			out.BasisB = monoKeys(basisB)
			m, err = eng.NPlus2Matrix(ctx, basis, basisB, cfg.Partitions)
		case cfg.Partitions > 0:
			m, err = eng.DiscretizedMatrix(ctx, basis, kind, cfg.Partitions)
		default:
			m, err = eng.Matrix(ctx, basis, kind)
		}
		if err != nil {
			if errors.Is(err, engine.ErrUnknownKind) || errors.Is(err, engine.ErrBadPartitions) {
				return InputError(fmt.Sprintf("kind %s with %d partitions", kind, cfg.Partitions), err)
			}
			return ComputeError("building matrix", err)
		}
		out.Rows, out.Cols = m.Shape()
		out.Values = m.Values()
		logger.Debug("engine caches", slog.Any("stats", eng.Stats()))

		return printYAML(writer(cmd), out)
	},
}

type matrixOutput struct {
	Kind       string      `json:"kind"`
	Particles  int         `json:"particles"`
	Degree     int         `json:"degree"`
	Partitions int         `json:"partitions"`
	Basis      []string    `json:"basis"`
	BasisB     []string    `json:"basisB,omitempty"`
	Rows       int         `json:"rows"`
	Cols       int         `json:"cols"`
	Values     [][]float64 `json:"values"`
}

func init() {
	addBasisFlags(matrixCmd)
	matrixCmd.Flags().String("kind", "", "inner, mass, kinetic, same-n or n-plus-2 (default from config)")
	matrixCmd.Flags().Int("partitions", 0, "μ² partitions; 0 for the continuum matrix (default from config)")
	matrixCmd.Flags().Int("workers", 0, "concurrent element workers; 0 for GOMAXPROCS (default from config)")
	matrixCmd.Flags().IntVar(&matrixDegreeB, "degree-b", 0, "degree of the n+2 basis (default degree+2)")
}
