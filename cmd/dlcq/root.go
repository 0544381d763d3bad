// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dlcq/internal/config"
	"github.com/katalvlaran/dlcq/internal/logging"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *config.Config
	configPath string
	logger     = slog.New(slog.NewTextHandler(io.Discard, nil))

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "dlcq",
	Short: "Light-front Fock-space matrix elements",
	Long: `dlcq - matrix elements for discretized light-front quantization

dlcq builds monomial bases of a fixed particle count and degree and computes
inner product, invariant mass, kinetic and interaction matrices between them,
optionally discretized over μ² partitions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = config.LoadConfig(cfgFile)
		if err != nil {
			return ConfigError("loading configuration", err)
		}

		level := cfg.Log.Level
		switch {
		case quiet:
			level = "error"
		case verbose > 0:
			level = "debug"
		}
		logger, err = logging.New(cmd.ErrOrStderr(), level, cfg.Log.Format)
		if err != nil {
			return ConfigError("configuring logging", err)
		}
		logger.Debug("configuration loaded", slog.String("path", configPath))

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil || !cfg.Metrics.Enabled {
			return nil
		}
		return dumpMetrics(cmd.ErrOrStderr())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command group IDs
const (
	groupCompute = "compute"
	groupUtility = "utility"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover dlcq.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupCompute, Title: "Compute:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	basisCmd.GroupID = groupCompute
	matrixCmd.GroupID = groupCompute
	elementCmd.GroupID = groupCompute
	rootCmd.AddCommand(basisCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(elementCmd)

	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		exitWithError(err)
	}
}

// overrideInt copies an explicitly set int flag into dst.
func overrideInt(cmd *cobra.Command, name string, dst *int) {
	if cmd.Flags().Changed(name) {
		if v, err := cmd.Flags().GetInt(name); err == nil {
			*dst = v
		}
	}
}

// overrideString copies an explicitly set string flag into dst.
func overrideString(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		if v, err := cmd.Flags().GetString(name); err == nil {
			*dst = v
		}
	}
}

// writer returns the command's stdout, or io.Discard under --quiet.
func writer(cmd *cobra.Command) io.Writer {
	if quiet {
		return io.Discard
	}
	return cmd.OutOrStdout()
}
