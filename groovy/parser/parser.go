package parser

import (
	"fmt"
	"io"
	"sort"

	"github.com/tliron/commonlog"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithComments asks encoders to include the collected comments. Comments
// are always collected.
func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

func WithPositions() Option {
	return func(p *Parser) {
		p.includePositions = true
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Entry selects the grammar rule a token stream is parsed as.
type Entry int

const (
	EntryCompilationUnit Entry = iota
	EntrySnippet
	EntryExpression
)

type parseFunc func(*Parser) *Node

var entries = map[Entry]parseFunc{
	EntryCompilationUnit: (*Parser).parseCompilationUnit,
	EntrySnippet:         (*Parser).parseSnippet,
	EntryExpression:      (*Parser).parseExpressionEntry,
}

type Parser struct {
	file             string
	includeComments  bool
	includePositions bool
	reader           io.Reader
	source           TokenSource
	input            []byte
	cursor           TokenCursor
	entry            parseFunc
	log              commonlog.Logger

	state    ParseState
	arena    nodeArena
	comments *CommentCollector
	errors   []Diagnostic
	warnings []Diagnostic

	root       *Node
	partial    *Node
	finished   bool
	incomplete bool
}

func newParser(entry parseFunc, opts []Option) *Parser {
	p := &Parser{
		entry: entry,
		log:   commonlog.GetLogger("groovyparse.parser"),
		state: ParseState{LastSep: TokenEOF},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.comments = NewCommentCollector(p.file)
	return p
}

// ParseCompilationUnit parses a whole Groovy source file.
func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	p := newParser((*Parser).parseCompilationUnit, opts)
	p.reader = r
	return p
}

// ParseSnippet parses a bare script fragment: statements without a package
// header.
func ParseSnippet(r io.Reader, opts ...Option) *Parser {
	p := newParser((*Parser).parseSnippet, opts)
	p.reader = r
	return p
}

// ParseExpression parses a single expression. Command expressions are
// accepted, so "println 1" is a method call.
func ParseExpression(r io.Reader, opts ...Option) *Parser {
	p := newParser((*Parser).parseExpressionEntry, opts)
	p.reader = r
	return p
}

// ParseTokens parses tokens from an external source. Comments produced by
// that source can be routed to CommentListener.
func ParseTokens(src TokenSource, entry Entry, opts ...Option) *Parser {
	fn, ok := entries[entry]
	if !ok {
		fn = (*Parser).parseCompilationUnit
	}
	p := newParser(fn, opts)
	p.source = src
	return p
}

func (p *Parser) IncludesPositions() bool {
	return p.includePositions
}

func (p *Parser) IncludesComments() bool {
	return p.includeComments
}

func (p *Parser) File() string {
	return p.file
}

// CommentListener returns the collector comments are recorded into.
func (p *Parser) CommentListener() CommentListener {
	return p.comments
}

func (p *Parser) Comments() []Comment {
	return p.comments.Comments()
}

func (p *Parser) Errors() []Diagnostic {
	return p.errors
}

func (p *Parser) Warnings() []Diagnostic {
	return p.warnings
}

// Diagnostics returns errors and warnings ordered by position.
func (p *Parser) Diagnostics() []Diagnostic {
	all := make([]Diagnostic, 0, len(p.errors)+len(p.warnings))
	all = append(all, p.errors...)
	all = append(all, p.warnings...)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Line != all[j].Line {
			return all[i].Line < all[j].Line
		}
		return all[i].Column < all[j].Column
	})
	return all
}

func (p *Parser) readAll() error {
	if p.input != nil || p.reader == nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// init prepares the cursor. It is separate from Finish so grammar rules can
// be driven directly.
func (p *Parser) init() error {
	if p.cursor != nil {
		return nil
	}
	if p.source == nil {
		if err := p.readAll(); err != nil {
			return err
		}
		lexer := NewLexer(p.input, p.file)
		lexer.SetCommentListener(p.comments)
		p.source = lexer
	}
	p.cursor = NewTokenBuffer(p.source)
	return nil
}

// IsComplete reports whether the input forms a complete construct, that is
// no error was found at the end of input. "1 + " is incomplete; "1 + )" is
// complete but erroneous.
func (p *Parser) IsComplete() bool {
	p.Finish()
	return !p.incomplete
}

// Finish runs the parse and returns the root. A root is returned even when
// the input has errors; consult Errors for what went wrong. Repeated calls
// return the same tree.
func (p *Parser) Finish() *Node {
	if p.finished {
		return p.root
	}
	p.finished = true
	if err := p.init(); err != nil {
		p.errors = append(p.errors, Diagnostic{
			Severity: SeverityError,
			Kind:     Internal,
			Message:  fmt.Sprintf("reading input: %v", err),
			File:     p.file,
			Line:     1,
			Column:   1,
		})
		p.root = &Node{Kind: KindCompilationUnit}
		return p.root
	}
	p.root = p.run()
	p.log.Debugf("parsed %s: %d nodes, %d errors, %d warnings", p.displayFile(), p.arena.len(), len(p.errors), len(p.warnings))
	return p.root
}

func (p *Parser) run() (root *Node) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if err, ok := r.(*SyntaxError); ok {
			p.report(err)
		} else {
			p.log.Errorf("internal parser error in %s: %v", p.displayFile(), r)
			tok := p.peek()
			p.errors = append(p.errors, Diagnostic{
				Severity: SeverityError,
				Kind:     Internal,
				Message:  fmt.Sprintf("internal parser error: %v", r),
				File:     p.file,
				Line:     tok.Span.Start.Line,
				Column:   tok.Span.Start.Column,
			})
		}
		root = p.partial
		if root == nil {
			root = &Node{Kind: KindCompilationUnit}
		} else {
			p.finishNode(root)
		}
	}()
	return p.entry(p)
}

func (p *Parser) displayFile() string {
	if p.file == "" {
		return "<input>"
	}
	return p.file
}

func (p *Parser) peek() Token {
	return p.cursor.LT(1)
}

// peekN looks n tokens past the next one; peekN(0) is peek.
func (p *Parser) peekN(n int) Token {
	return p.cursor.LT(n + 1)
}

func (p *Parser) advance() Token {
	tok := p.peek()
	p.cursor.Consume()
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkAny(set tokenSet) bool {
	return set.has(p.peek().Kind)
}

func (p *Parser) match(kinds ...TokenKind) bool {
	tok := p.peek()
	for _, kind := range kinds {
		if tok.Kind == kind {
			return true
		}
	}
	return false
}

// accept consumes the next token if it has the given kind.
func (p *Parser) accept(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind or bails out.
func (p *Parser) expect(kind TokenKind) Token {
	tok := p.peek()
	if tok.Kind == kind {
		return p.advance()
	}
	kindOf := LexicalMismatch
	if tok.Kind == TokenEOF || (closerTokens.has(tok.Kind) && kind != tok.Kind) {
		kindOf = StructuralIncomplete
	}
	panic(&SyntaxError{
		Kind:    kindOf,
		Message: fmt.Sprintf("expecting '%s', found '%s'", kind, tok.Display()),
		Token:   tok,
	})
}

// mustProgress returns a check that panics if the cursor has not moved
// since it was created. Loops use it to rule out spinning in place.
func (p *Parser) mustProgress() func() {
	startPos := p.cursor.Mark()
	return func() {
		if p.cursor.Mark() == startPos {
			panic(fmt.Sprintf("parser made no progress at %d:%d (token: %s %q)",
				p.peek().Span.Start.Line, p.peek().Span.Start.Column, p.peek().Kind, p.peek().Literal))
		}
	}
}

// nls skips an optional newline.
func (p *Parser) nls() {
	p.accept(TokenNLS)
}

// nlsWarn skips an optional newline, warning that it breaks the coding
// conventions.
func (p *Parser) nlsWarn() {
	if p.check(TokenNLS) {
		p.warn(p.peek(), "a newline at this point does not follow the Groovy coding conventions")
		p.advance()
	}
}

// sep consumes a statement separator run and records its last token in
// LastSep.
func (p *Parser) sep() bool {
	switch p.peek().Kind {
	case TokenSemicolon:
		p.advance()
		p.state.LastSep = TokenSemicolon
		p.nls()
		return true
	case TokenNLS:
		p.advance()
		p.state.LastSep = TokenNLS
		return true
	}
	return false
}

// fail raises a SyntaxError at the next token.
func (p *Parser) fail(kind FailureKind, format string, args ...any) {
	panic(&SyntaxError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Token:   p.peek(),
	})
}

func (p *Parser) unexpected() {
	tok := p.peek()
	kind := AmbiguityExhausted
	if tok.Kind == TokenEOF {
		kind = StructuralIncomplete
	}
	p.fail(kind, "unexpected token: %s", tok.Display())
}

// attempt runs rule and returns the SyntaxError it raised, if any, without
// rewinding. While speculating it lets the error propagate so the
// enclosing predicate fails.
func (p *Parser) attempt(rule func()) (err *SyntaxError) {
	if p.guessing() {
		rule()
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			err = se
		}
	}()
	rule()
	return nil
}

// report records a committed failure as an error diagnostic. Nothing is
// recorded while speculating.
func (p *Parser) report(err *SyntaxError) {
	if p.guessing() {
		return
	}
	if err.Token.Kind == TokenEOF {
		p.incomplete = true
	}
	p.errors = append(p.errors, Diagnostic{
		Severity: SeverityError,
		Kind:     err.Kind,
		Message:  err.Message,
		File:     p.file,
		Line:     err.Token.Span.Start.Line,
		Column:   err.Token.Span.Start.Column,
	})
}

func (p *Parser) reportAt(tok Token, kind FailureKind, format string, args ...any) {
	p.report(&SyntaxError{Kind: kind, Message: fmt.Sprintf(format, args...), Token: tok})
}

func (p *Parser) warn(tok Token, message string) {
	if p.guessing() {
		return
	}
	p.warnings = append(p.warnings, Diagnostic{
		Severity: SeverityWarning,
		Kind:     Style,
		Message:  message,
		File:     p.file,
		Line:     tok.Span.Start.Line,
		Column:   tok.Span.Start.Column,
	})
}
