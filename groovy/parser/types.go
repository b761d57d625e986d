package parser

import "unicode"

// parseTypeSpec parses a class or built-in type with optional array
// declarators.
func (p *Parser) parseTypeSpec() *Node {
	if p.checkAny(builtInTypeTokens) {
		return p.parseArrayDeclarators(p.parseBuiltInType())
	}
	return p.parseArrayDeclarators(p.parseClassOrInterfaceType())
}

func (p *Parser) parseBuiltInType() *Node {
	node := p.startNode(KindType)
	ident := p.leaf(KindIdentifier)
	node.AddChild(ident)
	node.Text = ident.Text
	return p.finishNode(node)
}

// parseClassOrInterfaceType parses Name<Args>.Inner<Args>.
func (p *Parser) parseClassOrInterfaceType() *Node {
	return p.parseClassType(false)
}

// parseCreatedType parses the type after new, where the argument list
// may be the diamond <>.
func (p *Parser) parseCreatedType() *Node {
	return p.parseClassType(true)
}

func (p *Parser) parseClassType(diamond bool) *Node {
	node := p.startNode(KindType)
	node.AddChild(p.parseIdent())
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArgumentsOrDiamond(diamond))
	}
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		node.AddChild(p.leaf(KindIdentifier))
		if p.check(TokenLT) {
			node.AddChild(p.parseTypeArgumentsOrDiamond(diamond))
		}
	}
	node.Text = p.qualifiedText(node)
	return p.finishNode(node)
}

func (p *Parser) parseArrayDeclarators(typ *Node) *Node {
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		arr := p.wrap(KindArrayDeclarator, typ)
		p.advance()
		p.advance()
		typ = p.finishNode(arr)
	}
	return typ
}

func (p *Parser) parseIdent() *Node {
	if p.check(TokenIdent) {
		return p.leaf(KindIdentifier)
	}
	if p.checkAny(synthesisPoints) {
		return p.missing("an identifier")
	}
	p.fail(LexicalMismatch, "expecting an identifier, found '%s'", p.peek().Display())
	return nil
}

// parseDeclaratorName accepts the names a variable or method may be
// declared with; methods may be named by string literals.
func (p *Parser) parseDeclaratorName() *Node {
	if p.check(TokenStringLiteral) {
		return p.leaf(KindIdentifier)
	}
	return p.parseIdent()
}

// parseQualifiedName parses a.b.c, optionally ending in .* for imports.
// Keywords are accepted as segments after the first.
func (p *Parser) parseQualifiedName(allowStar bool) *Node {
	node := p.startNode(KindQualifiedName)
	node.AddChild(p.parseIdent())
	for p.check(TokenDot) {
		p.advance()
		p.nls()
		switch {
		case allowStar && p.check(TokenStar):
			star := p.leaf(KindIdentifier)
			node.AddChild(star)
			node.Text = p.qualifiedText(node)
			return p.finishNode(node)
		case p.check(TokenIdent) || p.peek().Kind.IsKeyword():
			node.AddChild(p.leaf(KindIdentifier))
		default:
			node.AddChild(p.missing("an identifier"))
		}
	}
	node.Text = p.qualifiedText(node)
	return p.finishNode(node)
}

func isUpperCaseIdent(tok Token) bool {
	if tok.Kind != TokenIdent {
		return false
	}
	for _, r := range tok.Literal {
		return unicode.IsUpper(r)
	}
	return false
}

func (p *Parser) parseClassTypeSpec() *Node {
	return p.parseArrayDeclarators(p.parseClassOrInterfaceType())
}
