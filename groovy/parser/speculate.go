package parser

import "slices"

// ParseState is the mutable state grammar rules share besides the cursor.
// All of it is captured by a checkpoint, so a failed speculation leaves no
// trace.
type ParseState struct {
	// GuessDepth is non-zero while a predicate is speculating.
	GuessDepth int
	// AngleDepth counts '<' opened by type argument and parameter lists.
	AngleDepth int
	// TypeNames is the stack of enclosing type names; constructors are
	// recognised by matching its top.
	TypeNames []string
	// LastPath is the last completed path expression, used to decide
	// whether a parenthesis-free command call may follow.
	LastPath *Node
	// LastSep is the last separator token before the current statement.
	LastSep TokenKind
	// ArgHasLabels reports whether the last argument list had labels.
	ArgHasLabels bool
}

func (s ParseState) snapshot() ParseState {
	s.TypeNames = slices.Clone(s.TypeNames)
	return s
}

type checkpoint struct {
	mark     int
	state    ParseState
	arena    arenaMark
	errors   int
	warnings int
}

func (p *Parser) checkpoint() checkpoint {
	return checkpoint{
		mark:     p.cursor.Mark(),
		state:    p.state.snapshot(),
		arena:    p.arena.mark(),
		errors:   len(p.errors),
		warnings: len(p.warnings),
	}
}

// restore undoes everything since cp: cursor, state, tree and diagnostics.
func (p *Parser) restore(cp checkpoint) {
	p.cursor.Rewind(cp.mark)
	p.state = cp.state.snapshot()
	p.arena.release(cp.arena)
	p.errors = p.errors[:cp.errors]
	p.warnings = p.warnings[:cp.warnings]
}

// resume rewinds the cursor and grammar counters to cp while keeping the
// nodes and diagnostics produced since, so partial results survive
// recovery.
func (p *Parser) resume(cp checkpoint) {
	p.cursor.Rewind(cp.mark)
	depth := p.state.GuessDepth
	p.state = cp.state.snapshot()
	p.state.GuessDepth = depth
}

func (p *Parser) guessing() bool {
	return p.state.GuessDepth > 0
}

// speculate runs rule as a syntactic predicate: it reports whether rule
// parses from the current position and always restores the parser to
// where it was. Only SyntaxError bailouts count as failure; anything else
// is a bug and keeps propagating.
func (p *Parser) speculate(rule func()) (ok bool) {
	cp := p.checkpoint()
	p.state.GuessDepth++
	defer func() {
		if r := recover(); r != nil {
			if _, isSyntax := r.(*SyntaxError); !isSyntax {
				p.restore(cp)
				panic(r)
			}
			ok = false
		}
		p.restore(cp)
	}()
	rule()
	return true
}
