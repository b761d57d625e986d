package parser

func (p *Parser) startNode(kind NodeKind) *Node {
	return p.startNodeAt(kind, p.peek().Span.Start)
}

func (p *Parser) startNodeAt(kind NodeKind, start Position) *Node {
	node := p.arena.alloc()
	node.Kind = kind
	node.Span.Start = start
	return node
}

// finishNode closes the node's span at the last consumed significant
// token. Nodes that consumed nothing are zero-width.
func (p *Parser) finishNode(node *Node) *Node {
	node.Span.End = p.lastEnd(node.Span.Start)
	return node
}

func (p *Parser) lastEnd(start Position) Position {
	for k := -1; ; k-- {
		tok := p.cursor.LT(k)
		if tok.Span.End.Line == 0 {
			return start
		}
		if tok.Kind == TokenNLS {
			continue
		}
		if tok.Span.End.Before(start) {
			return start
		}
		return tok.Span.End
	}
}

// wrap starts a node whose first child is an already parsed node, as for
// the left operand of a binary operator.
func (p *Parser) wrap(kind NodeKind, first *Node) *Node {
	node := p.startNodeAt(kind, first.Span.Start)
	node.AddChild(first)
	return node
}

// leaf consumes the next token into a childless node.
func (p *Parser) leaf(kind NodeKind) *Node {
	tok := p.advance()
	node := p.arena.alloc()
	node.Kind = kind
	node.Text = tok.Literal
	node.Span = tok.Span
	node.Token = &tok
	return node
}

// withOperator consumes the next token as the operator of node.
func (p *Parser) withOperator(node *Node) {
	tok := p.advance()
	node.Text = tok.Literal
	node.Token = &tok
}

// missing synthesizes a zero-width identifier at the next token and
// records what was expected. Only committed parses synthesize; a
// speculation bails out instead.
func (p *Parser) missing(what string) *Node {
	tok := p.peek()
	if p.guessing() {
		p.fail(StructuralIncomplete, "expecting %s, found '%s'", what, tok.Display())
	}
	p.reportAt(tok, StructuralIncomplete, "expecting %s, found '%s'", what, tok.Display())
	node := p.arena.alloc()
	node.Kind = KindIdentifier
	node.Span = Span{Start: tok.Span.Start, End: tok.Span.Start}
	node.Synthetic = true
	return node
}

// errorNode is the placeholder for a construct abandoned by recovery.
func (p *Parser) errorNode(start Position, err *SyntaxError) *Node {
	node := p.startNodeAt(KindError, start)
	got := err.Token
	node.Error = &Error{Message: err.Message, Got: &got}
	return p.finishNode(node)
}

func (p *Parser) qualifiedText(node *Node) string {
	text := ""
	for _, child := range node.Children {
		if child.Kind != KindIdentifier {
			continue
		}
		if text != "" {
			text += "."
		}
		text += child.Text
	}
	return text
}
