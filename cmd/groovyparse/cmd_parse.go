package main

import (
	"bytes"
	"fmt"

	"github.com/dhamidi/groovyparse/format"
	"github.com/dhamidi/groovyparse/groovy/parser"
	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var snippet bool
	var expression bool
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse Groovy files and print their syntax trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if snippet && expression {
				return fmt.Errorf("--snippet and --expression are mutually exclusive")
			}
			printer := format.NewDiagnosticPrinter(cmd.ErrOrStderr(), a.cfg.Output.Color)
			encoder, err := format.NewEncoder(a.cfg.Output.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			for _, name := range args {
				data, err := a.readInput(name)
				if err != nil {
					return err
				}

				opts := []parser.Option{parser.WithFile(displayName(name))}
				if a.cfg.Parse.Comments {
					opts = append(opts, parser.WithComments())
				}
				if includePositions {
					opts = append(opts, parser.WithPositions())
				}
				var p *parser.Parser
				switch {
				case snippet:
					p = parser.ParseSnippet(bytes.NewReader(data), opts...)
				case expression:
					p = parser.ParseExpression(bytes.NewReader(data), opts...)
				default:
					p = parser.ParseCompilationUnit(bytes.NewReader(data), opts...)
				}
				p.Finish()

				if len(args) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", displayName(name))
				}
				if err := encoder.Encode(p); err != nil {
					return fmt.Errorf("encode %s: %w", a.cfg.Output.Format, err)
				}
				if err := printer.PrintAll(p.Diagnostics(), a.cfg.Parse.Warnings); err != nil {
					return fmt.Errorf("print diagnostics: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "tree", "output format (tree, sexp, json)")
	cmd.Flags().Bool("comments", false, "include comments in the output")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include node positions in the output")
	cmd.Flags().BoolVar(&snippet, "snippet", false, "parse the input as a script fragment without package header")
	cmd.Flags().BoolVar(&expression, "expression", false, "parse the input as a single expression")
	bindFlag(a.v, "output.format", cmd.Flags().Lookup("format"))
	bindFlag(a.v, "parse.comments", cmd.Flags().Lookup("comments"))

	return cmd
}
