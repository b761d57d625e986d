package parser

var typeDefKinds = map[TokenKind]NodeKind{
	TokenClass:     KindClassDef,
	TokenInterface: KindInterfaceDef,
	TokenEnum:      KindEnumDef,
	TokenTrait:     KindTraitDef,
	TokenAt:        KindAnnotationDef,
}

// parseTypeDefinition parses a class, interface, trait, enum or
// annotation definition. The type name is on the TypeNames stack while
// the body is parsed so constructors can be recognised.
func (p *Parser) parseTypeDefinition() *Node {
	start := p.peek().Span.Start
	mods := p.parseModifiersOpt()
	kind, ok := typeDefKinds[p.peek().Kind]
	if !ok {
		p.unexpected()
	}
	node := p.startNodeAt(kind, start)
	node.AddChild(mods)
	if kind == KindAnnotationDef {
		p.advance()
	}
	p.advance()
	p.nls()
	name := p.parseIdent()
	node.AddChild(name)
	node.Text = name.Text

	p.state.TypeNames = append(p.state.TypeNames, name.Text)
	defer func() {
		p.state.TypeNames = p.state.TypeNames[:len(p.state.TypeNames)-1]
	}()

	p.nls()
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
		p.nls()
	}
	if p.check(TokenExtends) {
		node.AddChild(p.parseTypeList(KindExtendsClause, kind == KindInterfaceDef || kind == KindTraitDef))
		p.nls()
	}
	if p.check(TokenImplements) {
		node.AddChild(p.parseTypeList(KindImplementsClause, true))
		p.nls()
	}
	if !p.check(TokenLBrace) {
		tok := p.peek()
		p.reportAt(tok, StructuralIncomplete, "expecting '{', found '%s'", tok.Display())
		body := p.startNode(KindObjBlock)
		body.Span.End = body.Span.Start
		body.Synthetic = true
		node.AddChild(body)
		return p.finishNode(node)
	}
	switch kind {
	case KindEnumDef:
		node.AddChild(p.parseEnumBlock())
	case KindAnnotationDef:
		node.AddChild(p.parseMemberBlock(p.parseAnnotationMember))
	default:
		node.AddChild(p.parseClassBlock())
	}
	return p.finishNode(node)
}

func (p *Parser) parseTypeList(kind NodeKind, many bool) *Node {
	node := p.startNode(kind)
	p.advance()
	p.nls()
	node.AddChild(p.parseClassTypeSpec())
	for many && p.accept(TokenComma) {
		p.nls()
		node.AddChild(p.parseClassTypeSpec())
	}
	return p.finishNode(node)
}

// parseClassBlock parses a class body; anonymous classes share it.
func (p *Parser) parseClassBlock() *Node {
	return p.parseMemberBlock(p.parseClassMember)
}

func (p *Parser) parseMemberBlock(member func(into *Node)) *Node {
	node := p.startNode(KindObjBlock)
	p.expect(TokenLBrace)
	p.parseMembers(node, member)
	p.closeMemberBlock()
	return p.finishNode(node)
}

// closeMemberBlock consumes the closing brace of a type body. A body cut
// off by the end of input is reported and kept.
func (p *Parser) closeMemberBlock() {
	if tok := p.peek(); tok.Kind == TokenEOF {
		p.reportAt(tok, StructuralIncomplete, "expecting '}', found '%s'", tok.Display())
		return
	}
	p.expect(TokenRBrace)
}

// parseMembers parses members up to the closing brace. Each member is
// recovered on its own so one bad member does not lose the rest.
func (p *Parser) parseMembers(node *Node, member func(into *Node)) {
	for {
		p.skipSeparators(true)
		if p.match(TokenRBrace, TokenEOF) {
			return
		}
		progress := p.mustProgress()
		p.recoverable(node, func(into *Node) {
			member(into)
			p.expectStatementEnd(TokenRBrace)
		})
		progress()
	}
}

func (p *Parser) parseClassMember(into *Node) {
	switch {
	case p.check(TokenStatic) && p.isStaticInitStart():
		node := p.startNode(KindStaticInit)
		p.advance()
		p.nls()
		node.AddChild(p.parseOpenBlock())
		into.AddChild(p.finishNode(node))
	case p.check(TokenLBrace):
		node := p.startNode(KindInstanceInit)
		node.AddChild(p.parseOpenBlock())
		into.AddChild(p.finishNode(node))
	case p.isGenericMethodStart():
		into.AddChild(p.parseGenericMethod())
	case p.isTypeDefinitionStart():
		into.AddChild(p.parseTypeDefinition())
	case p.isConstructorStart():
		into.AddChild(p.parseConstructor())
	case p.isDeclarationStart():
		p.parseDeclaration(into)
	default:
		p.unexpected()
	}
}

func (p *Parser) isStaticInitStart() bool {
	next := p.peekN(1).Kind
	return next == TokenLBrace || (next == TokenNLS && p.peekN(2).Kind == TokenLBrace)
}

func (p *Parser) parseConstructor() *Node {
	node := p.startNode(KindCtorDef)
	node.AddChild(p.parseModifiersOpt())
	name := p.leaf(KindIdentifier)
	node.AddChild(name)
	node.Text = name.Text
	p.nls()
	node.AddChild(p.parseParameters())
	node.AddChild(p.parseThrowsOpt())
	p.nlsWarn()
	node.AddChild(p.parseOpenBlock())
	return p.finishNode(node)
}

// parseEnumBlock parses the constants of an enum, if any, followed by its
// members.
func (p *Parser) parseEnumBlock() *Node {
	node := p.startNode(KindObjBlock)
	p.expect(TokenLBrace)
	p.skipSeparators(true)
	if p.isEnumConstantsStart() {
		p.recoverable(node, p.parseEnumConstants)
	}
	p.parseMembers(node, p.parseClassMember)
	p.closeMemberBlock()
	return p.finishNode(node)
}

func (p *Parser) parseEnumConstants(into *Node) {
	into.AddChild(p.parseEnumConstant())
	for p.check(TokenComma) || (p.check(TokenNLS) && p.peekN(1).Kind == TokenComma) {
		p.nls()
		p.advance()
		if !p.isEnumConstantNext() {
			return
		}
		p.nls()
		into.AddChild(p.parseEnumConstant())
	}
}

func (p *Parser) parseEnumConstant() *Node {
	node := p.startNode(KindEnumConstantDef)
	node.AddChild(p.parseAnnotationsOpt())
	name := p.parseIdent()
	node.AddChild(name)
	node.Text = name.Text
	if p.accept(TokenLParen) {
		node.AddChild(p.parseArgList(TokenRParen, true))
		p.expect(TokenRParen)
	}
	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBlock())
	}
	return p.finishNode(node)
}

// parseAnnotationMember parses Type name() default value, or any other
// class member.
func (p *Parser) parseAnnotationMember(into *Node) {
	if !p.isAnnotationFieldStart() {
		p.parseClassMember(into)
		return
	}
	node := p.startNode(KindAnnotationFieldDef)
	node.AddChild(p.parseModifiersOpt())
	node.AddChild(p.parseTypeSpec())
	name := p.parseIdent()
	node.AddChild(name)
	node.Text = name.Text
	p.expect(TokenLParen)
	p.expect(TokenRParen)
	if p.accept(TokenDefault) {
		p.nls()
		node.AddChild(p.parseAnnotationValue())
	}
	into.AddChild(p.finishNode(node))
}
