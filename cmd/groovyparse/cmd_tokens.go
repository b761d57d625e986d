package main

import (
	"fmt"

	"github.com/dhamidi/groovyparse/groovy/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens the lexer produces for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			for _, tok := range parser.Tokenize(data, displayName(args[0])) {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s-%s\t%s\t%q\n", tok.Span.Start, tok.Span.End, tok.Kind, tok.Literal)
				if err != nil {
					return fmt.Errorf("write tokens: %w", err)
				}
			}
			return nil
		},
	}
}
