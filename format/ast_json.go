package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/groovyparse/groovy/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(p *parser.Parser) error {
	return encode(e.w, e, p)
}

func (e *ASTJSONEncoder) MarshalText(p *parser.Parser) ([]byte, error) {
	doc := astJSONDocument{
		File: p.File(),
		Root: nodeToJSON(p.Finish(), p.IncludesPositions()),
	}
	if p.IncludesComments() {
		for _, c := range p.Comments() {
			doc.Comments = append(doc.Comments, astJSONComment{
				Kind:  c.Kind.String(),
				Start: astJSONPosition{Line: c.Start.Line, Column: c.Start.Column},
				End:   astJSONPosition{Line: c.End.Line, Column: c.End.Column},
				Text:  c.Text,
			})
		}
	}
	for _, d := range p.Diagnostics() {
		doc.Diagnostics = append(doc.Diagnostics, astJSONDiagnostic{
			Severity: d.Severity.String(),
			Kind:     d.Kind.String(),
			Message:  d.Message,
			Line:     d.Line,
			Column:   d.Column,
		})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type astJSONDocument struct {
	File        string              `json:"file,omitempty"`
	Root        *astJSONNode        `json:"root"`
	Comments    []astJSONComment    `json:"comments,omitempty"`
	Diagnostics []astJSONDiagnostic `json:"diagnostics,omitempty"`
}

type astJSONNode struct {
	Kind      string         `json:"kind"`
	Text      string         `json:"text,omitempty"`
	Span      *astJSONSpan   `json:"span,omitempty"`
	Synthetic bool           `json:"synthetic,omitempty"`
	Error     *astJSONError  `json:"error,omitempty"`
	Children  []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type astJSONError struct {
	Message string `json:"message"`
	Got     string `json:"got,omitempty"`
}

type astJSONComment struct {
	Kind  string          `json:"kind"`
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
	Text  string          `json:"text"`
}

type astJSONDiagnostic struct {
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

func nodeToJSON(n *parser.Node, positions bool) *astJSONNode {
	jn := &astJSONNode{
		Kind:      n.Kind.String(),
		Text:      n.Text,
		Synthetic: n.Synthetic,
	}

	if positions && (n.Span.Start.Line != 0 || n.Span.End.Line != 0) {
		jn.Span = &astJSONSpan{
			Start: astJSONPosition{Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   astJSONPosition{Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Error != nil {
		jn.Error = &astJSONError{
			Message: n.Error.Message,
		}
		if n.Error.Got != nil {
			jn.Error.Got = n.Error.Got.Display()
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child, positions)
		}
	}

	return jn
}
