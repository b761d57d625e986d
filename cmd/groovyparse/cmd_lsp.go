package main

import (
	"github.com/dhamidi/groovyparse/groovy/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, a.fs, a.cfg.Parse.Warnings)
			return server.RunStdio()
		},
	}
}
