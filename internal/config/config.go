// Package config loads groovyparse settings from a YAML file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "GROOVYPARSE"
	fileName  = "groovyparse"
)

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Parse  ParseConfig  `mapstructure:"parse"`
	Output OutputConfig `mapstructure:"output"`
}

type LogConfig struct {
	Verbosity int    `mapstructure:"verbosity"`
	File      string `mapstructure:"file"`
}

type ParseConfig struct {
	Jobs     int  `mapstructure:"jobs"`
	Warnings bool `mapstructure:"warnings"`
	Comments bool `mapstructure:"comments"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"` // tree, sexp or json
	Color  string `mapstructure:"color"`  // auto, always or never
}

var (
	formats    = []string{"tree", "sexp", "json"}
	colorModes = []string{"auto", "always", "never"}
)

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.verbosity", 0)
	v.SetDefault("log.file", "")
	v.SetDefault("parse.jobs", runtime.NumCPU())
	v.SetDefault("parse.warnings", true)
	v.SetDefault("parse.comments", false)
	v.SetDefault("output.format", "tree")
	v.SetDefault("output.color", "auto")
}

// Load reads the configuration into v and decodes it. An explicit file
// must exist; otherwise groovyparse.yaml is looked up in the working
// directory and in $HOME/.config/groovyparse, and may be absent.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", fileName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(formats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %s, got %q", strings.Join(formats, ", "), c.Output.Format)
	}
	if !slices.Contains(colorModes, c.Output.Color) {
		return fmt.Errorf("output.color must be one of %s, got %q", strings.Join(colorModes, ", "), c.Output.Color)
	}
	if c.Parse.Jobs < 1 {
		return errors.New("parse.jobs must be at least 1")
	}
	if c.Log.Verbosity < 0 {
		return errors.New("log.verbosity must not be negative")
	}
	return nil
}
