package parser

// parseModifiersOpt parses a run of def, modifier keywords and
// annotations. It returns nil when there is none.
func (p *Parser) parseModifiersOpt() *Node {
	var node *Node
	for {
		tok := p.peek()
		var mod *Node
		switch {
		case tok.Kind == TokenDef || modifierTokens.has(tok.Kind):
			mod = p.leaf(KindModifier)
		case tok.Kind == TokenAt && p.peekN(1).Kind != TokenInterface:
			mod = p.parseAnnotation()
		default:
			if node == nil {
				return nil
			}
			return p.finishNode(node)
		}
		if node == nil {
			node = p.startNodeAt(KindModifiers, tok.Span.Start)
		}
		node.AddChild(mod)
		p.nls()
	}
}

// parseAnnotationsOpt is parseModifiersOpt restricted to annotations.
func (p *Parser) parseAnnotationsOpt() *Node {
	if !p.check(TokenAt) || p.peekN(1).Kind == TokenInterface {
		return nil
	}
	node := p.startNode(KindModifiers)
	for p.check(TokenAt) && p.peekN(1).Kind != TokenInterface {
		node.AddChild(p.parseAnnotation())
		p.nls()
	}
	return p.finishNode(node)
}

func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	p.expect(TokenAt)
	name := p.parseQualifiedName(false)
	node.AddChild(name)
	node.Text = name.Text
	if !p.accept(TokenLParen) {
		return p.finishNode(node)
	}
	p.nls()
	switch {
	case p.check(TokenRParen):
	case p.check(TokenIdent) && p.peekN(1).Kind == TokenAssign:
		node.AddChild(p.parseAnnotationMemberValuePair())
		for p.accept(TokenComma) {
			p.nls()
			node.AddChild(p.parseAnnotationMemberValuePair())
		}
	default:
		node.AddChild(p.parseAnnotationValue())
	}
	p.nls()
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseAnnotationMemberValuePair() *Node {
	node := p.startNode(KindAnnotationMemberValuePair)
	name := p.leaf(KindIdentifier)
	node.AddChild(name)
	node.Text = name.Text
	p.expect(TokenAssign)
	p.nls()
	node.AddChild(p.parseAnnotationValue())
	return p.finishNode(node)
}

func (p *Parser) parseAnnotationValue() *Node {
	if p.check(TokenAt) {
		return p.parseAnnotation()
	}
	return p.parseConditional(ctxNested)
}

// parseDeclaration parses a variable or method declaration at statement
// or member level. Each declarator of int a = 1, b becomes its own
// VariableDef carrying a copy of the modifiers and type.
func (p *Parser) parseDeclaration(into *Node) {
	start := p.peek().Span.Start
	mods := p.parseModifiersOpt()
	var typ *Node
	if mods == nil || p.isTypeBeforeName() {
		typ = p.parseTypeSpec()
	}
	if p.match(TokenIdent, TokenStringLiteral) && p.peekN(1).Kind == TokenLParen {
		into.AddChild(p.parseMethodDefinition(start, mods, nil, typ))
		return
	}
	for first := true; ; first = false {
		def := p.startNodeAt(KindVariableDef, start)
		if first {
			def.AddChild(mods)
			def.AddChild(typ)
		} else {
			def.AddChild(p.arena.clone(mods))
			def.AddChild(p.arena.clone(typ))
		}
		name := p.parseIdent()
		def.AddChild(name)
		def.Text = name.Text
		if p.accept(TokenAssign) {
			p.nls()
			def.AddChild(p.parseCommandCapableExpression(ctxStatement))
		}
		into.AddChild(p.finishNode(def))
		if !p.accept(TokenComma) {
			return
		}
		p.nls()
	}
}

// parseSingleDeclaration parses one declarator, as found in a for-in
// clause or a closure list slot.
func (p *Parser) parseSingleDeclaration() *Node {
	node := p.startNode(KindVariableDef)
	mods := p.parseModifiersOpt()
	node.AddChild(mods)
	if mods == nil || p.isTypeBeforeName() {
		node.AddChild(p.parseTypeSpec())
	}
	name := p.parseIdent()
	node.AddChild(name)
	node.Text = name.Text
	if p.accept(TokenAssign) {
		p.nls()
		node.AddChild(p.parseExpression(ctxNested))
	}
	return p.finishNode(node)
}

func (p *Parser) parseMethodDefinition(start Position, mods, typeParams, typ *Node) *Node {
	node := p.startNodeAt(KindMethodDef, start)
	node.AddChild(mods)
	node.AddChild(typeParams)
	node.AddChild(typ)
	name := p.parseDeclaratorName()
	node.AddChild(name)
	node.Text = name.Text
	node.AddChild(p.parseParameters())
	node.AddChild(p.parseThrowsOpt())
	if p.check(TokenLBrace) || (p.check(TokenNLS) && p.peekN(1).Kind == TokenLBrace) {
		p.nlsWarn()
		node.AddChild(p.parseOpenBlock())
	}
	return p.finishNode(node)
}

// parseGenericMethod parses def <T> T name(...) and friends.
func (p *Parser) parseGenericMethod() *Node {
	start := p.peek().Span.Start
	mods := p.parseModifiersOpt()
	typeParams := p.parseTypeParameters()
	p.nls()
	var typ *Node
	if p.isTypeBeforeName() {
		typ = p.parseTypeSpec()
	}
	return p.parseMethodDefinition(start, mods, typeParams, typ)
}

// parseMultipleAssignmentDeclaration parses def (a, String b) = pair.
func (p *Parser) parseMultipleAssignmentDeclaration() *Node {
	node := p.startNode(KindMultipleAssignDef)
	node.AddChild(p.parseModifiersOpt())
	tuple := p.startNode(KindTupleExpr)
	p.expect(TokenLParen)
	p.nls()
	tuple.AddChild(p.parseTupleDeclarator())
	for p.accept(TokenComma) {
		p.nls()
		tuple.AddChild(p.parseTupleDeclarator())
	}
	p.nls()
	p.expect(TokenRParen)
	node.AddChild(p.finishNode(tuple))
	if p.accept(TokenAssign) {
		p.nls()
		node.AddChild(p.parseCommandCapableExpression(ctxStatement))
	}
	return p.finishNode(node)
}

func (p *Parser) parseTupleDeclarator() *Node {
	node := p.startNode(KindVariableDef)
	if p.isTypeBeforeName() {
		node.AddChild(p.parseTypeSpec())
	}
	name := p.parseIdent()
	node.AddChild(name)
	node.Text = name.Text
	return p.finishNode(node)
}

// parseParameters parses a parenthesised, possibly empty, parameter list.
func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	p.expect(TokenLParen)
	p.nls()
	if !p.check(TokenRParen) {
		p.parseParameterDefs(node)
	}
	p.nls()
	p.expect(TokenRParen)
	return p.finishNode(node)
}

// parseParameterList parses a non-empty parameter list without
// parentheses, as in closure headers.
func (p *Parser) parseParameterList() *Node {
	node := p.startNode(KindParameters)
	p.parseParameterDefs(node)
	return p.finishNode(node)
}

func (p *Parser) parseParameterDefs(into *Node) {
	into.AddChild(p.parseParameter())
	for p.accept(TokenComma) {
		p.nls()
		into.AddChild(p.parseParameter())
	}
}

func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameterDef)
	node.AddChild(p.parseModifiersOpt())
	if p.isParameterTypeStart() {
		node.AddChild(p.parseTypeSpec())
		p.nls()
	}
	if p.accept(TokenEllipsis) {
		node.Kind = KindVariableParameterDef
	}
	name := p.parseIdent()
	node.AddChild(name)
	node.Text = name.Text
	if p.accept(TokenAssign) {
		p.nls()
		node.AddChild(p.parseExpression(ctxNested))
	}
	return p.finishNode(node)
}

func (p *Parser) parseThrowsOpt() *Node {
	if !p.check(TokenThrows) {
		return nil
	}
	node := p.startNode(KindThrowsClause)
	p.advance()
	p.nls()
	node.AddChild(p.parseClassTypeSpec())
	for p.accept(TokenComma) {
		p.nls()
		node.AddChild(p.parseClassTypeSpec())
	}
	return p.finishNode(node)
}
