package parser

// Type argument and type parameter lists share one counter of open angle
// brackets. A '>>' or '>>>' token closes two or three lists at once, so an
// inner list may close its enclosing lists too; the counter tells each
// enclosing list whether it is still open.

func (p *Parser) openAngle() int {
	prior := p.state.AngleDepth
	p.expect(TokenLT)
	p.state.AngleDepth++
	return prior
}

// angleListContinues reports whether a comma extends the innermost list.
// While speculating any comma continues so predicates stay permissive.
func (p *Parser) angleListContinues(prior int) bool {
	return p.check(TokenComma) && (p.guessing() || p.state.AngleDepth == prior+1)
}

// closeAngle consumes an optional closer and checks the outermost list
// ended balanced.
func (p *Parser) closeAngle(prior int) {
	if p.check(TokenNLS) {
		switch p.peekN(1).Kind {
		case TokenGT, TokenShr, TokenUShr:
			p.advance()
		}
	}
	switch p.peek().Kind {
	case TokenGT:
		p.advance()
		p.state.AngleDepth--
	case TokenShr:
		p.advance()
		p.state.AngleDepth -= 2
	case TokenUShr:
		p.advance()
		p.state.AngleDepth -= 3
	}
	if prior != 0 || p.state.AngleDepth == prior || p.guessing() {
		return
	}
	p.reportAt(p.peek(), GuardFailure, "missing closing bracket '>' for generics types")
	p.state.AngleDepth = prior
}

func (p *Parser) parseTypeArguments() *Node {
	node := p.startNode(KindTypeArguments)
	prior := p.openAngle()
	p.nls()
	node.AddChild(p.parseTypeArgument())
	for p.angleListContinues(prior) {
		p.advance()
		p.nls()
		node.AddChild(p.parseTypeArgument())
	}
	p.closeAngle(prior)
	return p.finishNode(node)
}

// parseTypeArgumentsOrDiamond also accepts an empty <> when diamond is set.
func (p *Parser) parseTypeArgumentsOrDiamond(diamond bool) *Node {
	if !diamond || p.peekN(1).Kind != TokenGT {
		return p.parseTypeArguments()
	}
	node := p.startNode(KindTypeArguments)
	p.advance()
	p.advance()
	return p.finishNode(node)
}

func (p *Parser) parseTypeArgument() *Node {
	if p.check(TokenQuestion) {
		node := p.startNode(KindWildcardType)
		p.advance()
		switch p.peek().Kind {
		case TokenExtends:
			bounds := p.startNode(KindTypeUpperBounds)
			p.advance()
			p.nls()
			bounds.AddChild(p.parseClassOrInterfaceType())
			node.AddChild(p.finishNode(bounds))
		case TokenSuper:
			bounds := p.startNode(KindTypeLowerBounds)
			p.advance()
			p.nls()
			bounds.AddChild(p.parseClassOrInterfaceType())
			node.AddChild(p.finishNode(bounds))
		}
		return p.finishNode(node)
	}
	if p.checkAny(builtInTypeTokens) {
		return p.parseArrayDeclarators(p.parseBuiltInType())
	}
	return p.parseArrayDeclarators(p.parseClassOrInterfaceType())
}

func (p *Parser) parseTypeParameters() *Node {
	node := p.startNode(KindTypeParameters)
	prior := p.openAngle()
	p.nls()
	node.AddChild(p.parseTypeParameter())
	for p.angleListContinues(prior) {
		p.advance()
		p.nls()
		node.AddChild(p.parseTypeParameter())
	}
	p.closeAngle(prior)
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameter() *Node {
	node := p.startNode(KindTypeParameter)
	name := p.parseIdent()
	node.AddChild(name)
	node.Text = name.Text
	if p.check(TokenExtends) {
		bounds := p.startNode(KindTypeUpperBounds)
		p.advance()
		p.nls()
		bounds.AddChild(p.parseClassOrInterfaceType())
		for p.check(TokenBitAnd) {
			p.advance()
			p.nls()
			bounds.AddChild(p.parseClassOrInterfaceType())
		}
		node.AddChild(p.finishNode(bounds))
	}
	return p.finishNode(node)
}
