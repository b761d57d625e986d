package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "tree", cfg.Output.Format)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.Equal(t, runtime.NumCPU(), cfg.Parse.Jobs)
	assert.True(t, cfg.Parse.Warnings)
	assert.False(t, cfg.Parse.Comments)
	assert.Equal(t, 0, cfg.Log.Verbosity)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "groovyparse.yaml")
	data := []byte("parse:\n  jobs: 3\n  warnings: false\noutput:\n  format: sexp\n  color: never\nlog:\n  verbosity: 2\n")
	require.NoError(t, os.WriteFile(file, data, 0o644))

	cfg, err := Load(viper.New(), file)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Parse.Jobs)
	assert.False(t, cfg.Parse.Warnings)
	assert.Equal(t, "sexp", cfg.Output.Format)
	assert.Equal(t, "never", cfg.Output.Color)
	assert.Equal(t, 2, cfg.Log.Verbosity)
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "groovyparse.yaml"), []byte("output:\n  format: json\n"), 0o644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GROOVYPARSE_OUTPUT_FORMAT", "json")
	t.Setenv("GROOVYPARSE_PARSE_JOBS", "7")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 7, cfg.Parse.Jobs)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Parse:  ParseConfig{Jobs: 1},
			Output: OutputConfig{Format: "tree", Color: "auto"},
		}
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "xml" }, wantErr: "output.format"},
		{name: "unknown color", mutate: func(c *Config) { c.Output.Color = "sometimes" }, wantErr: "output.color"},
		{name: "zero jobs", mutate: func(c *Config) { c.Parse.Jobs = 0 }, wantErr: "parse.jobs"},
		{name: "negative verbosity", mutate: func(c *Config) { c.Log.Verbosity = -1 }, wantErr: "log.verbosity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
