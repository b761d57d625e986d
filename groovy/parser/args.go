package parser

// parseArgList parses the arguments between an opening bracket and
// closer, leaving the closer for the caller. A semicolon after the first
// argument of a call turns the list into a ClosureList.
func (p *Parser) parseArgList(closer TokenKind, groupNamed bool) *Node {
	node := p.startNode(KindArgumentList)
	p.state.ArgHasLabels = false
	p.nls()
	if p.check(closer) {
		return p.finishNode(node)
	}
	if closer == TokenRParen && p.check(TokenSemicolon) {
		return p.parseClosureList(node, p.emptyStatement())
	}
	labels := false
	for {
		p.nls()
		arg := p.parseArgument()
		if arg.Kind == KindLabeledArg || arg.Kind == KindSpreadMapArg {
			labels = true
		}
		node.AddChild(arg)
		p.nls()
		if closer == TokenRParen && len(node.Children) == 1 && !labels && p.check(TokenSemicolon) {
			node.Children = nil
			return p.parseClosureList(node, arg)
		}
		if !p.accept(TokenComma) {
			break
		}
		p.nls()
		if p.check(TokenComma) {
			p.fail(LexicalMismatch, "expecting an expression, found ','")
		}
		if p.check(closer) {
			break
		}
	}
	if groupNamed {
		p.groupNamedArguments(node)
	}
	p.state.ArgHasLabels = labels
	return p.finishNode(node)
}

func (p *Parser) parseArgument() *Node {
	switch {
	case p.check(TokenStar) && p.peekN(1).Kind == TokenColon:
		node := p.startNode(KindSpreadMapArg)
		p.advance()
		p.advance()
		p.nls()
		node.AddChild(p.parseExpression(ctxNested))
		return p.finishNode(node)
	case p.check(TokenStar):
		node := p.startNode(KindSpreadArg)
		p.advance()
		node.AddChild(p.parseExpression(ctxNested))
		return p.finishNode(node)
	case p.isArgumentLabelStart():
		return p.parseLabeledArgument()
	}
	expr, _ := p.parseStrictContextExpression(false)
	if p.check(TokenColon) {
		p.fail(GuardFailure, "illegal colon after argument expression")
	}
	return expr
}

func (p *Parser) parseLabeledArgument() *Node {
	node := p.startNode(KindLabeledArg)
	label := p.parseArgumentLabel()
	node.AddChild(label)
	if len(label.Children) == 0 {
		node.Text = label.Text
	}
	p.expect(TokenColon)
	p.nls()
	value, _ := p.parseStrictContextExpression(false)
	node.AddChild(value)
	return p.finishNode(node)
}

// parseArgumentLabel parses what may stand before the colon of a named
// argument. Closures and lists are left out so the label predicate stays
// cheap on deeply nested arguments.
func (p *Parser) parseArgumentLabel() *Node {
	tok := p.peek()
	switch {
	case tok.Kind == TokenIdent || tok.Kind.IsKeyword():
		return p.leaf(KindIdentifier)
	case tok.Kind == TokenStringLiteral || numberTokens.has(tok.Kind):
		return p.leaf(KindLiteral)
	case tok.Kind == TokenStringCtorStart:
		return p.parseStringConstructor()
	case tok.Kind == TokenLParen:
		return p.parseParenthesized()
	}
	p.fail(GuardFailure, "expecting an argument label, found '%s'", tok.Display())
	return nil
}

// groupNamedArguments moves labeled and spread-map arguments into a
// single NamedArguments node in front of the positional ones.
func (p *Parser) groupNamedArguments(args *Node) {
	var named *Node
	positional := make([]*Node, 0, len(args.Children))
	for _, arg := range args.Children {
		if arg.Kind != KindLabeledArg && arg.Kind != KindSpreadMapArg {
			positional = append(positional, arg)
			continue
		}
		if named == nil {
			named = p.startNodeAt(KindNamedArguments, arg.Span.Start)
		}
		named.AddChild(arg)
		named.Span.End = arg.Span.End
	}
	if named == nil {
		return
	}
	args.Children = append([]*Node{named}, positional...)
}
