package parser

// parseBraced parses '{' prologue statements '}' into node. A failure in
// the body is recovered by recoverBlock; statements parsed before the
// failure stay in node.
func (p *Parser) parseBraced(node *Node, prologue func()) *Node {
	braceCP := p.checkpoint()
	p.expect(TokenLBrace)
	err := p.attempt(func() {
		if prologue != nil {
			prologue()
		}
		p.parseBlockBody(node)
		p.expect(TokenRBrace)
	})
	if err != nil {
		p.recoverBlock(braceCP, err)
	}
	return p.finishNode(node)
}

func (p *Parser) parseOpenBlock() *Node {
	return p.parseBraced(p.startNode(KindBlock), nil)
}

// parseOpenOrClosableBlock parses a closure when the block declares
// parameters and an open block otherwise.
func (p *Parser) parseOpenOrClosableBlock() *Node {
	if p.isClosureWithParams() {
		return p.parseClosure()
	}
	return p.parseOpenBlock()
}

// recoverBlock skips a broken block by indentation. Starting after the
// opening brace it consumes everything on the brace's line and every
// later line indented deeper than the line the brace is on. If that
// stops at a '}', the brace closes the block and the failure is reported;
// otherwise the failure propagates from where it happened.
func (p *Parser) recoverBlock(braceCP checkpoint, err *SyntaxError) {
	failCP := p.checkpoint()
	p.resume(braceCP)
	brace := p.peek()
	indent := p.lineIndent()
	p.advance()

	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenNLS {
			p.advance()
			continue
		}
		if tok.Span.Start.Line == brace.Span.Start.Line {
			if tok.Kind == TokenRBrace && depth == 0 {
				break
			}
			switch tok.Kind {
			case TokenLBrace:
				depth++
			case TokenRBrace:
				depth--
			}
			p.advance()
			continue
		}
		if tok.Span.Start.Column <= indent {
			break
		}
		p.advance()
	}

	if tok := p.peek(); tok.Kind == TokenRBrace {
		p.advance()
		p.report(err)
		p.log.Debugf("recovered block at %s, resumed at %s: %s", brace.Span.Start, tok.Span.End, err.Message)
		return
	}
	p.resume(failCP)
	panic(err)
}

// lineIndent returns the column of the first token on the line of the
// next token.
func (p *Parser) lineIndent() int {
	line := p.peek().Span.Start.Line
	col := p.peek().Span.Start.Column
	for k := -1; ; k-- {
		tok := p.cursor.LT(k)
		if tok.Kind == TokenNLS || tok.Span.Start.Line != line {
			return col
		}
		col = tok.Span.Start.Column
	}
}

// recoverable runs rule, which adds its result to into. If rule fails the
// error is reported, the input is skipped to the next statement boundary
// and an Error node covering the skipped text is added.
func (p *Parser) recoverable(into *Node, rule func(into *Node)) {
	start := p.peek()
	mark := p.cursor.Mark()
	err := p.attempt(func() { rule(into) })
	if err == nil {
		return
	}
	p.report(err)
	p.resync(start, mark)
	into.AddChild(p.errorNode(start.Span.Start, err))
	p.log.Debugf("resynchronised after %q at %s, resumed at %s", err.Message, err.Token.Span.Start, p.peek().Span.Start)
}

// resync skips to the next separator at nesting depth zero. A '}' that
// would close the enclosing block also stops it, as does a failing token
// that begins a later line than the construct.
func (p *Parser) resync(start Token, mark int) {
	if p.cursor.Mark() != mark && p.startsLaterLine(start) {
		return
	}
	if p.cursor.Mark() == mark && !p.check(TokenEOF) {
		p.advance()
	}
	depth := 0
	for {
		switch p.peek().Kind {
		case TokenEOF:
			return
		case TokenNLS, TokenSemicolon:
			if depth == 0 {
				return
			}
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket:
			if depth > 0 {
				depth--
			}
		case TokenRBrace:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

// startsLaterLine reports whether the next token is the first on its line
// and that line comes after the one start is on.
func (p *Parser) startsLaterLine(start Token) bool {
	tok := p.peek()
	if tok.Kind == TokenEOF || tok.Span.Start.Line <= start.Span.Start.Line {
		return false
	}
	for k := -1; ; k-- {
		prev := p.cursor.LT(k)
		if prev.Kind == TokenNLS {
			continue
		}
		return prev.Span.End.Line == 0 || prev.Span.End.Line < tok.Span.Start.Line
	}
}
