package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/groovyparse/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var version = "0.1.0"

// errSyntax is returned when an input has syntax errors. The diagnostics
// have been printed already.
var errSyntax = errors.New("syntax errors found")

// app carries what the commands share. Tests swap the filesystem and
// streams.
type app struct {
	fs     afero.Fs
	v      *viper.Viper
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp() *app {
	return &app{
		fs:     afero.NewOsFs(),
		v:      viper.New(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func newRootCmd(a *app) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "groovyparse",
		Short:         "An error-tolerant Groovy parser",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if cfg.Log.File != "" {
				commonlog.Configure(cfg.Log.Verbosity, &cfg.Log.File)
			} else {
				commonlog.Configure(cfg.Log.Verbosity, nil)
			}
			return nil
		},
	}
	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./groovyparse.yaml)")
	flags.CountP("verbose", "v", "increase log verbosity")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.String("color", "auto", "color diagnostics (auto, always, never)")
	bindFlag(a.v, "log.verbosity", flags.Lookup("verbose"))
	bindFlag(a.v, "log.file", flags.Lookup("log-file"))
	bindFlag(a.v, "output.color", flags.Lookup("color"))

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))

	return rootCmd
}

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "groovyparse: %v\n", err)
		os.Exit(1)
	}
}
