// SPDX-License-Identifier: MIT

package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dlcq/engine"
	"github.com/katalvlaran/dlcq/matrix"
	"github.com/katalvlaran/dlcq/mono"
)

var elementCmd = &cobra.Command{
	Use:   "element A B",
	Short: "Compute one matrix element",
	Long: `Compute the matrix element of one operator kind between two monomials
written as pm:pt,pm:pt,...

Direct kinds print a scalar (or, with --partitions, a block). Interaction
kinds print the continuum expansion grouped by discretization exponents, or
the discretized block when --partitions is positive.`,
	Example: `  dlcq element 1:0,1:0 2:0,1:0 --kind inner
  dlcq element 1:2,1:0 1:2,1:0 --kind same-n
  dlcq element 1:0,1:0 1:0,1:0,1:0,1:0 --kind n-plus-2 --partitions 4`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		overrideString(cmd, "kind", &cfg.Kind)
		overrideInt(cmd, "partitions", &cfg.Partitions)
		kind, err := engine.ParseKind(cfg.Kind)
		if err != nil {
			return InputError("parsing kind", err)
		}
		a, err := mono.Parse(args[0])
		if err != nil {
			return InputError("parsing A", err)
		}
		b, err := mono.Parse(args[1])
		if err != nil {
			return InputError("parsing B", err)
		}

		out, err := computeElement(engine.New(engine.WithLogger(logger)), kind, a, b, cfg.Partitions)
		if err != nil {
			return ComputeError("computing element", err)
		}

		return printYAML(writer(cmd), out)
	},
}

type expansionEntry struct {
	Alpha int     `json:"alpha"`
	R     int     `json:"r"`
	Value float64 `json:"value"`
}

type elementOutput struct {
	Kind       string           `json:"kind"`
	A          string           `json:"a"`
	B          string           `json:"b"`
	Partitions int              `json:"partitions,omitempty"`
	Value      *float64         `json:"value,omitempty"`
	Expansion  []expansionEntry `json:"expansion,omitempty"`
	Block      [][]float64      `json:"block,omitempty"`
}

// computeElement evaluates one element of kind between a and b.
func computeElement(eng *engine.Engine, kind engine.Kind, a, b mono.Mono, partitions int) (elementOutput, error) {
	out := elementOutput{Kind: kind.String(), A: a.Key(), B: b.Key(), Partitions: partitions}
	var (
		blk *matrix.Dense
		err error
	)

	switch {
	case partitions > 0 && kind == engine.KindSameN:
		blk, err = eng.ComputeInteractionBlock(a, b, partitions)
	case partitions > 0 && kind == engine.KindNPlus2:
		blk, err = eng.ComputeNPlus2Block(a, b, partitions)
	case partitions > 0:
		blk, err = eng.ComputeDirectBlock(kind, a, b, partitions)
	case kind == engine.KindSameN:
		var exp map[engine.AlphaR]float64
		if exp, err = eng.InteractionExpansion(a, b); err == nil {
			for k, v := range exp {
				out.Expansion = append(out.Expansion, expansionEntry{Alpha: k.Alpha, R: k.R, Value: v})
			}
		}
	case kind == engine.KindNPlus2:
		var exp map[int]float64
		if exp, err = eng.NPlus2Expansion(a, b); err == nil {
			for r, v := range exp {
				out.Expansion = append(out.Expansion, expansionEntry{R: r, Value: v})
			}
		}
	default:
		var v float64
		switch kind {
		case engine.KindMass:
			v, err = eng.ComputeMassElement(a, b)
		case engine.KindKinetic:
			v, err = eng.ComputeKineticElement(a, b)
		default:
			v, err = eng.ComputeInnerProduct(a, b)
		}
		out.Value = &v
	}
	if err != nil {
		return out, err
	}
	if blk != nil {
		out.Block = blk.Values()
	}
	sort.Slice(out.Expansion, func(i, j int) bool {
		if out.Expansion[i].Alpha != out.Expansion[j].Alpha {
			return out.Expansion[i].Alpha < out.Expansion[j].Alpha
		}
		return out.Expansion[i].R < out.Expansion[j].R
	})

	return out, nil
}

func init() {
	elementCmd.Flags().String("kind", "", "inner, mass, kinetic, same-n or n-plus-2 (default from config)")
	elementCmd.Flags().Int("partitions", 0, "μ² partitions; 0 for the continuum element (default from config)")
}
