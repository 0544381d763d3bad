// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	chdir(t, root)

	cfg, path, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, 2, cfg.Particles)
	assert.Equal(t, 4, cfg.Degree)
	assert.Equal(t, "inner", cfg.Kind)
	assert.Equal(t, "all", cfg.Parity)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Metrics.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	body := "particles: 3\ndegree: 6\nkind: mass\nlog:\n  format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "dlcq.yaml"), []byte(body), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)
	t.Setenv("DLCQ_DEGREE", "8")
	t.Setenv("DLCQ_LOG_LEVEL", "debug")

	cfg, path, err := LoadConfig("")
	require.NoError(t, err)
	want, _ := filepath.EvalSymlinks(filepath.Join(root, "dlcq.yaml"))
	got, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, want, got)

	assert.Equal(t, 3, cfg.Particles)
	assert.Equal(t, 8, cfg.Degree, "env wins over file")
	assert.Equal(t, "mass", cfg.Kind)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestFindConfigFile_ExplicitPathNotFound(t *testing.T) {
	_, err := findConfigFile("/nonexistent/path/dlcq.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestValidate(t *testing.T) {
	base := Config{Particles: 2, Degree: 4, Parity: "all"}
	require.NoError(t, base.Validate())

	for name, mut := range map[string]func(*Config){
		"particles":  func(c *Config) { c.Particles = 0 },
		"degree":     func(c *Config) { c.Degree = 1 },
		"partitions": func(c *Config) { c.Partitions = -1 },
		"workers":    func(c *Config) { c.Workers = -3 },
		"parity":     func(c *Config) { c.Parity = "both" },
	} {
		c := base
		mut(&c)
		assert.ErrorIs(t, c.Validate(), ErrInvalid, name)
	}
}
