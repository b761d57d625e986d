package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const stdinName = "-"

// readInput reads a named file from the app's filesystem, or standard
// input for "-".
func (a *app) readInput(name string) ([]byte, error) {
	if name == stdinName {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := afero.ReadFile(a.fs, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func displayName(name string) string {
	if name == stdinName {
		return "<stdin>"
	}
	return name
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}
