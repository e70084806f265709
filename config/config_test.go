package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Package: "bindings",
		Format:  "go",
		Color:   "auto",
	}, cfg)
}

func TestFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`
package = "tracing"
format = "YAML"
raw = true
jobs = 4
out_dir = "gen"
`), 0o644))
	t.Setenv("STRUCTBIND_PACKAGE", "fromenv")

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "fromenv", cfg.Package, "environment overrides the file")
	assert.Equal(t, "yaml", cfg.Format)
	assert.True(t, cfg.Raw)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, "gen", cfg.OutDir)
	assert.Equal(t, "auto", cfg.Color)
}

func TestExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`color = "off"`), 0o644))

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "off", cfg.Color)

	_, err = New(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
		msg  string
	}{
		{"format", "format", "toml", "format must be one of"},
		{"color", "color", "sometimes", "color must be one of"},
		{"package", "package", "", "package cannot be empty"},
		{"jobs", "jobs", -1, "jobs must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			v, err := New("")
			require.NoError(t, err)
			v.Set(tt.key, tt.val)

			_, err = Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
