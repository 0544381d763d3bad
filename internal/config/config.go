// SPDX-License-Identifier: MIT

// Package config loads the dlcq configuration with precedence
// flags > env (DLCQ_*) > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const maxWalkDepth = 25

// EnvPrefix is the environment variable prefix (DLCQ_PARTICLES, DLCQ_LOG_LEVEL, ...).
const EnvPrefix = "DLCQ"

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid value")

// Config is the effective configuration of the dlcq CLI.
type Config struct {
	Particles  int    `mapstructure:"particles" json:"particles"`
	Degree     int    `mapstructure:"degree" json:"degree"`
	Partitions int    `mapstructure:"partitions" json:"partitions"`
	Workers    int    `mapstructure:"workers" json:"workers"`
	Kind       string `mapstructure:"kind" json:"kind"`
	Parity     string `mapstructure:"parity" json:"parity"`

	Log     LogConfig     `mapstructure:"log" json:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" json:"metrics"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// MetricsConfig controls the end-of-run metrics dump.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

// LoadConfig discovers and loads configuration. It returns the config, the
// path of the file that was read (empty if none) and any error.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("particles", 2)
	v.SetDefault("degree", 4)
	v.SetDefault("partitions", 0)
	v.SetDefault("workers", 0)
	v.SetDefault("kind", "inner")
	v.SetDefault("parity", "all")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("metrics.enabled", false)
}

// findConfigFile returns explicitPath if it exists, otherwise walks up from
// cwd looking for dlcq.yaml or dlcq.yml, stopping at a .git entry or after
// maxWalkDepth levels. An empty path means no file was found.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range []string{"dlcq.yaml", "dlcq.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// Validate checks ranges and enumerations. Kind names are checked by the
// caller against the engine's kind set.
func (c *Config) Validate() error {
	switch {
	case c.Particles < 1:
		return fmt.Errorf("particles=%d: %w", c.Particles, ErrInvalid)
	case c.Degree < c.Particles:
		return fmt.Errorf("degree=%d below particles=%d: %w", c.Degree, c.Particles, ErrInvalid)
	case c.Partitions < 0:
		return fmt.Errorf("partitions=%d: %w", c.Partitions, ErrInvalid)
	case c.Workers < 0:
		return fmt.Errorf("workers=%d: %w", c.Workers, ErrInvalid)
	}
	switch c.Parity {
	case "all", "even", "odd":
	default:
		return fmt.Errorf("parity=%q: %w", c.Parity, ErrInvalid)
	}

	return nil
}
