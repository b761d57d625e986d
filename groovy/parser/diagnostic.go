package parser

import "fmt"

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	}
	return "unknown"
}

// FailureKind classifies why a construct could not be parsed.
type FailureKind int

const (
	// LexicalMismatch: the next token is not the one the grammar requires.
	LexicalMismatch FailureKind = iota + 1
	// AmbiguityExhausted: no alternative at a fork matches.
	AmbiguityExhausted
	// GuardFailure: a semantic condition on an alternative does not hold.
	GuardFailure
	// StructuralIncomplete: the input ended or closed before a construct was complete.
	StructuralIncomplete
	// Style marks warnings about legal but discouraged layout.
	Style
	// Internal marks a fault inside the parser itself.
	Internal
)

var failureKindNames = map[FailureKind]string{
	LexicalMismatch:      "lexical-mismatch",
	AmbiguityExhausted:   "no-viable-alternative",
	GuardFailure:         "guard-failure",
	StructuralIncomplete: "incomplete",
	Style:                "style",
	Internal:             "internal",
}

func (k FailureKind) String() string {
	if name, ok := failureKindNames[k]; ok {
		return name
	}
	return "unknown"
}

type Diagnostic struct {
	Severity Severity
	Kind     FailureKind
	Message  string
	File     string
	Line     int
	Column   int
}

func (d Diagnostic) String() string {
	file := d.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", file, d.Line, d.Column, d.Severity, d.Message)
}

// SyntaxError is the bailout value raised when a construct cannot be
// parsed. It unwinds to the nearest speculation boundary or recovery
// point.
type SyntaxError struct {
	Kind    FailureKind
	Message string
	Token   Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Token.Span.Start.Line, e.Token.Span.Start.Column, e.Message)
}
