package main

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/dhamidi/groovyparse/format"
	"github.com/dhamidi/groovyparse/groovy/parser"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

type checkResult struct {
	diagnostics []parser.Diagnostic
	errors      int
}

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse Groovy files concurrently and report syntax errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := commonlog.GetLogger("groovyparse.check")
			results := make([]checkResult, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.cfg.Parse.Jobs)
			for i, name := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					data, err := a.readInput(name)
					if err != nil {
						return err
					}
					p := parser.ParseCompilationUnit(bytes.NewReader(data), parser.WithFile(displayName(name)))
					p.Finish()
					results[i] = checkResult{diagnostics: p.Diagnostics(), errors: len(p.Errors())}
					log.Debugf("checked %s: %d errors", displayName(name), results[i].errors)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			printer := format.NewDiagnosticPrinter(cmd.OutOrStdout(), a.cfg.Output.Color)
			failed := 0
			for _, r := range results {
				if err := printer.PrintAll(r.diagnostics, a.cfg.Parse.Warnings); err != nil {
					return fmt.Errorf("print diagnostics: %w", err)
				}
				if r.errors > 0 {
					failed++
				}
			}
			if failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files have syntax errors\n", failed, len(args))
				return errSyntax
			}
			return nil
		},
	}

	cmd.Flags().IntP("jobs", "j", runtime.NumCPU(), "number of files parsed in parallel")
	cmd.Flags().Bool("warnings", true, "report style warnings")
	bindFlag(a.v, "parse.jobs", cmd.Flags().Lookup("jobs"))
	bindFlag(a.v, "parse.warnings", cmd.Flags().Lookup("warnings"))

	return cmd
}
