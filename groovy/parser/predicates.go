package parser

// Syntactic predicates. Each one speculatively parses a bounded prefix
// and reports whether it matched; the cursor and parse state are
// unchanged afterwards.

// isDeclarationStart matches (def | modifier | annotation | type)+ followed
// by a name.
func (p *Parser) isDeclarationStart() bool {
	return p.speculate(func() {
		matched := false
		for p.skipDeclarationPrefix() {
			matched = true
		}
		if !matched || !p.match(TokenIdent, TokenStringLiteral) {
			p.fail(GuardFailure, "not a declaration")
		}
	})
}

func (p *Parser) skipDeclarationPrefix() bool {
	tok := p.peek()
	switch {
	case tok.Kind == TokenDef || modifierTokens.has(tok.Kind):
		p.advance()
		p.nls()
		return true
	case tok.Kind == TokenAt && p.peekN(1).Kind != TokenInterface:
		p.parseAnnotation()
		p.nls()
		return true
	case builtInTypeTokens.has(tok.Kind):
		p.advance()
	case tok.Kind == TokenIdent && p.peekN(1).Kind == TokenDot:
		// qualified type names end in an upper-case segment
		last := p.advance()
		for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
			p.advance()
			last = p.advance()
		}
		if !isUpperCaseIdent(last) {
			p.fail(GuardFailure, "not a type name")
		}
	case isUpperCaseIdent(tok):
		p.advance()
	default:
		return false
	}
	if p.check(TokenLT) {
		p.parseTypeArguments()
	}
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
	}
	return true
}

// isMultipleAssignmentDeclarationStart matches modifiers followed by '('
// as in def (a, b) = pair.
func (p *Parser) isMultipleAssignmentDeclarationStart() bool {
	return p.speculate(func() {
		if p.parseModifiersOpt() == nil {
			p.fail(GuardFailure, "no modifiers")
		}
		p.nls()
		p.expect(TokenLParen)
	})
}

// isGenericMethodStart matches modifiers followed by a type parameter list.
func (p *Parser) isGenericMethodStart() bool {
	return p.speculate(func() {
		if p.parseModifiersOpt() == nil {
			p.fail(GuardFailure, "no modifiers")
		}
		p.expect(TokenLT)
	})
}

func (p *Parser) isTypeDefinitionStart() bool {
	return p.speculate(func() {
		p.parseModifiersOpt()
		switch p.peek().Kind {
		case TokenClass, TokenInterface, TokenEnum, TokenTrait:
			return
		case TokenAt:
			if p.peekN(1).Kind == TokenInterface {
				return
			}
		}
		p.fail(GuardFailure, "not a type definition")
	})
}

// isConstructorStart matches a name equal to the enclosing type followed
// by a parameter list.
func (p *Parser) isConstructorStart() bool {
	n := len(p.state.TypeNames)
	if n == 0 {
		return false
	}
	current := p.state.TypeNames[n-1]
	return p.speculate(func() {
		p.parseModifiersOpt()
		name := p.expect(TokenIdent)
		if name.Literal != current {
			p.fail(GuardFailure, "not a constructor")
		}
		p.nls()
		p.expect(TokenLParen)
	})
}

// isClosableBlockParamsStart matches an explicit closure parameter list
// ending in '->'. The cursor is just past the opening brace.
func (p *Parser) isClosableBlockParamsStart() bool {
	return p.speculate(func() {
		p.nls()
		if !p.check(TokenArrow) {
			p.parseParameterList()
			p.nls()
		}
		p.expect(TokenArrow)
	})
}

// isClosureWithParams matches '{' followed by closure parameters.
func (p *Parser) isClosureWithParams() bool {
	return p.speculate(func() {
		p.expect(TokenLBrace)
		p.nls()
		if !p.check(TokenArrow) {
			p.parseParameterList()
			p.nls()
		}
		p.expect(TokenArrow)
	})
}

func (p *Parser) isStatementLabelPrefix() bool {
	return p.speculate(func() {
		p.expect(TokenIdent)
		p.expect(TokenColon)
	})
}

// isCastStart matches (Type) followed by the first token of an operand.
// Built-in types may cast signed operands; class types may not, since
// (a) -b is a subtraction. The operand itself is left to parseCast.
func (p *Parser) isCastStart() bool {
	return p.speculate(func() {
		p.expect(TokenLParen)
		operand := castOperandStart
		if p.checkAny(builtInTypeTokens) {
			p.parseTypeSpec()
			operand = expressionStart
		} else {
			p.parseClassTypeSpec()
		}
		p.expect(TokenRParen)
		if !p.checkAny(operand) {
			p.fail(GuardFailure, "no operand after cast type")
		}
	})
}

func (p *Parser) isParameterTypeStart() bool {
	return p.speculate(func() {
		p.parseTypeSpec()
		p.nls()
		if !p.check(TokenEllipsis) {
			p.expect(TokenIdent)
		}
	})
}

// isArgumentLabelStart matches a label followed by a colon. Parenthesised
// and interpolated labels are skipped unparsed.
func (p *Parser) isArgumentLabelStart() bool {
	return p.speculate(func() {
		switch p.peek().Kind {
		case TokenLParen, TokenStringCtorStart:
			p.skipBalanced()
		default:
			p.parseArgumentLabel()
		}
		p.expect(TokenColon)
	})
}

// skipBalanced consumes tokens up to and including the closer matching
// the current opener.
func (p *Parser) skipBalanced() {
	depth := 0
	for {
		switch p.peek().Kind {
		case TokenLParen, TokenLBracket, TokenLBrace, TokenStringCtorStart:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace, TokenStringCtorEnd:
			depth--
		case TokenEOF:
			p.fail(StructuralIncomplete, "unexpected end of input")
		}
		p.advance()
		if depth <= 0 {
			return
		}
	}
}

// isEnumConstantsStart matches the first enum constant of an enum body.
func (p *Parser) isEnumConstantsStart() bool {
	return p.speculate(func() {
		p.parseAnnotationsOpt()
		p.expect(TokenIdent)
		switch p.peek().Kind {
		case TokenLBrace, TokenLParen:
			return
		}
		p.nls()
		switch p.peek().Kind {
		case TokenSemicolon, TokenComma, TokenRBrace, TokenEOF:
			return
		}
		if !p.isDeclarationStart() {
			p.fail(GuardFailure, "not an enum constant")
		}
	})
}

// isEnumConstantNext matches another enum constant after a comma.
func (p *Parser) isEnumConstantNext() bool {
	return p.speculate(func() {
		p.nls()
		p.parseAnnotationsOpt()
		p.expect(TokenIdent)
		switch p.peek().Kind {
		case TokenComma, TokenLParen, TokenLBrace, TokenSemicolon, TokenRBrace, TokenNLS, TokenEOF:
			return
		}
		p.fail(GuardFailure, "not an enum constant")
	})
}

// isMultipleAssignmentStart matches (a, b) = at the start of an
// expression.
func (p *Parser) isMultipleAssignmentStart() bool {
	return p.speculate(func() {
		p.expect(TokenLParen)
		p.nls()
		p.expect(TokenIdent)
		for p.accept(TokenComma) {
			p.nls()
			p.expect(TokenIdent)
		}
		p.expect(TokenRParen)
		p.expect(TokenAssign)
	})
}

func (p *Parser) isElseStart() bool {
	return p.speculate(func() {
		p.sep()
		p.expect(TokenElse)
	})
}

// isClassicForStart matches the init clause of for (init; cond; update).
func (p *Parser) isClassicForStart() bool {
	return p.speculate(func() {
		if !p.check(TokenSemicolon) {
			p.parseStrictContextExpression(true)
		}
		p.expect(TokenSemicolon)
	})
}

func (p *Parser) isPackageStart() bool {
	return p.speculate(func() {
		p.parseAnnotationsOpt()
		p.expect(TokenPackage)
	})
}

func (p *Parser) isAnnotationFieldStart() bool {
	return p.speculate(func() {
		p.parseModifiersOpt()
		p.parseTypeSpec()
		p.expect(TokenIdent)
		p.expect(TokenLParen)
		p.expect(TokenRParen)
	})
}

// isTypeBeforeName decides, after modifiers, whether an optional type
// precedes the declared name.
func (p *Parser) isTypeBeforeName() bool {
	tok := p.peek()
	if builtInTypeTokens.has(tok.Kind) {
		return true
	}
	if tok.Kind != TokenIdent {
		return false
	}
	switch p.peekN(1).Kind {
	case TokenIdent, TokenStringLiteral, TokenLT, TokenDot:
		return true
	case TokenLBracket:
		return p.peekN(2).Kind == TokenRBracket
	}
	return false
}

// isImportStart matches an annotated import.
func (p *Parser) isImportStart() bool {
	return p.speculate(func() {
		p.parseAnnotationsOpt()
		p.expect(TokenImport)
	})
}
