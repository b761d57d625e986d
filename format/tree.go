package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/groovyparse/groovy/parser"
)

// TreeEncoder writes one node per line, indented by depth.
type TreeEncoder struct {
	w io.Writer
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(p *parser.Parser) error {
	return encode(e.w, e, p)
}

func (e *TreeEncoder) MarshalText(p *parser.Parser) ([]byte, error) {
	var sb strings.Builder
	root := p.Finish()
	if p.IncludesPositions() {
		sb.WriteString(root.StringWithPositions())
	} else {
		sb.WriteString(root.String())
	}
	writeComments(&sb, p)
	return []byte(sb.String()), nil
}

// SexpEncoder writes the tree as a single-line s-expression.
type SexpEncoder struct {
	w io.Writer
}

func NewSexpEncoder(w io.Writer) *SexpEncoder {
	return &SexpEncoder{w: w}
}

func (e *SexpEncoder) Encode(p *parser.Parser) error {
	return encode(e.w, e, p)
}

func (e *SexpEncoder) MarshalText(p *parser.Parser) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(p.Finish().Sexp())
	sb.WriteString("\n")
	writeComments(&sb, p)
	return []byte(sb.String()), nil
}

func writeComments(sb *strings.Builder, p *parser.Parser) {
	if !p.IncludesComments() {
		return
	}
	for _, c := range p.Comments() {
		fmt.Fprintf(sb, "comment\t%s\t%s-%s\t%q\n", c.Kind, c.Start, c.End, c.Text)
	}
}
