// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/dlcq/internal/config"
	"github.com/katalvlaran/dlcq/mono"
)

var basisCmd = &cobra.Command{
	Use:   "basis",
	Short: "List the monomial basis",
	Long:  `List every monomial of the configured particle count and degree, optionally restricted to one transverse parity.`,
	Example: `  # Two particles, degree 4
  dlcq basis -n 2 -d 4

  # Only monomials with even total Pt
  dlcq basis -n 3 -d 6 --parity even`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyBasisFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return ConfigError("invalid configuration", err)
		}

		b, err := buildBasis(cfg.Particles, cfg.Degree, cfg.Parity)
		if err != nil {
			return InputError("generating basis", err)
		}

		return printYAML(writer(cmd), basisOutput{
			Particles: cfg.Particles,
			Degree:    cfg.Degree,
			Parity:    cfg.Parity,
			Size:      b.Len(),
			Monomials: monoKeys(b),
		})
	},
}

type basisOutput struct {
	Particles int      `json:"particles"`
	Degree    int      `json:"degree"`
	Parity    string   `json:"parity"`
	Size      int      `json:"size"`
	Monomials []string `json:"monomials"`
}

func init() {
	addBasisFlags(basisCmd)
}

func addBasisFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("particles", "n", 0, "particle count (default from config)")
	cmd.Flags().IntP("degree", "d", 0, "total degree Σ(Pm+Pt) (default from config)")
	cmd.Flags().String("parity", "", "all, even or odd total Pt (default from config)")
}

func applyBasisFlags(cmd *cobra.Command) {
	overrideInt(cmd, "particles", &cfg.Particles)
	overrideInt(cmd, "degree", &cfg.Degree)
	overrideString(cmd, "parity", &cfg.Parity)
}

// buildBasis generates the basis and applies the parity filter.
func buildBasis(n, degree int, parity string) (*mono.Basis, error) {
	b, err := mono.Generate(n, degree)
	if err != nil {
		return nil, err
	}
	if parity == "" || parity == "all" {
		return b, nil
	}
	even, odd, err := mono.SplitParity(b)
	if err != nil {
		return nil, err
	}
	if parity == "even" {
		return even, nil
	}
	if parity == "odd" {
		return odd, nil
	}
	return nil, config.ErrInvalid
}
