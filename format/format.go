// Package format renders parse results: syntax trees as indented text,
// s-expressions or JSON, and diagnostics as compiler-style lines.
package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/groovyparse/groovy/parser"
)

// Encoder writes the tree of a finished parse. Encoders honour the
// parser's WithPositions and WithComments options.
type Encoder interface {
	Encode(p *parser.Parser) error
	MarshalText(p *parser.Parser) ([]byte, error)
}

var Formats = []string{"tree", "sexp", "json"}

func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "tree":
		return NewTreeEncoder(w), nil
	case "sexp":
		return NewSexpEncoder(w), nil
	case "json":
		return NewASTJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

func encode(w io.Writer, e Encoder, p *parser.Parser) error {
	text, err := e.MarshalText(p)
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
