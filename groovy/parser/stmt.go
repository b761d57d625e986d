package parser

func (p *Parser) parseCompilationUnit() *Node {
	root := p.startNode(KindCompilationUnit)
	p.partial = root
	p.skipSeparators(true)
	if p.isPackageStart() {
		p.recoverable(root, func(into *Node) {
			into.AddChild(p.parsePackageDefinition())
			p.expectStatementEnd()
		})
	}
	p.parseTopLevel(root)
	return p.finishNode(root)
}

func (p *Parser) parseSnippet() *Node {
	root := p.startNode(KindSnippet)
	p.partial = root
	p.parseTopLevel(root)
	return p.finishNode(root)
}

// parseExpressionEntry parses the whole input as one expression. Trailing
// tokens are an error but the parsed expression is kept.
func (p *Parser) parseExpressionEntry() *Node {
	p.nls()
	start := p.peek().Span.Start
	var expr *Node
	err := p.attempt(func() {
		expr = p.parseCommandCapableExpression(ctxStatement)
		p.nls()
		if !p.check(TokenEOF) {
			p.unexpected()
		}
	})
	if err == nil {
		return expr
	}
	p.report(err)
	if expr != nil {
		return expr
	}
	return p.errorNode(start, err)
}

func (p *Parser) parseTopLevel(root *Node) {
	first := len(root.Children) == 0
	for {
		p.skipSeparators(first)
		first = false
		if p.check(TokenEOF) {
			return
		}
		progress := p.mustProgress()
		p.recoverable(root, func(into *Node) {
			p.parseStatement(into)
			p.expectStatementEnd()
		})
		progress()
	}
}

// parseBlockBody parses statements up to the closing brace, which is left
// for the caller. Failures propagate to the block recovery in parseBraced.
func (p *Parser) parseBlockBody(node *Node) {
	first := true
	for {
		p.skipSeparators(first)
		first = false
		if p.match(TokenRBrace, TokenEOF) {
			return
		}
		progress := p.mustProgress()
		p.parseStatement(node)
		p.expectStatementEnd(TokenRBrace)
		progress()
	}
}

// skipSeparators consumes the separators between two statements. Nothing
// precedes the first statement of a block, so LastSep is cleared there.
func (p *Parser) skipSeparators(first bool) {
	for p.sep() {
	}
	if first {
		p.state.LastSep = TokenEOF
	}
}

func (p *Parser) expectStatementEnd(closers ...TokenKind) {
	switch p.peek().Kind {
	case TokenNLS, TokenSemicolon, TokenEOF:
		return
	}
	if p.match(closers...) {
		return
	}
	p.unexpected()
}

// parseStatement parses one statement into the given parent. Most
// statements add a single node; a declaration with several declarators
// adds one VariableDef each.
func (p *Parser) parseStatement(into *Node) {
	prev := p.state.LastSep
	switch p.peek().Kind {
	case TokenIf:
		into.AddChild(p.parseIfStatement())
		return
	case TokenFor:
		into.AddChild(p.parseForStatement())
		return
	case TokenWhile:
		into.AddChild(p.parseWhileStatement())
		return
	case TokenSwitch:
		into.AddChild(p.parseSwitchStatement())
		return
	case TokenTry:
		into.AddChild(p.parseTryStatement())
		return
	case TokenImport:
		into.AddChild(p.parseImportStatement())
		return
	case TokenReturn, TokenBreak, TokenContinue, TokenThrow, TokenAssert:
		into.AddChild(p.parseBranchStatement())
		return
	case TokenSynchronized:
		if p.peekN(1).Kind == TokenLParen {
			into.AddChild(p.parseSynchronizedStatement())
			return
		}
	case TokenRBrace, TokenRParen, TokenRBracket, TokenElse, TokenCase, TokenDefault:
		p.unexpected()
	}

	switch {
	case p.check(TokenAt) && p.isImportStart():
		into.AddChild(p.parseImportStatement())
	case p.isGenericMethodStart():
		into.AddChild(p.parseGenericMethod())
	case p.isMultipleAssignmentDeclarationStart():
		into.AddChild(p.parseMultipleAssignmentDeclaration())
	case p.isTypeDefinitionStart():
		into.AddChild(p.parseTypeDefinition())
	case p.isDeclarationStart():
		p.parseDeclaration(into)
	case p.check(TokenLBrace):
		into.AddChild(p.parseBlockStatement(prev))
	case p.isStatementLabelPrefix():
		into.AddChild(p.parseLabeledStatement())
	default:
		into.AddChild(p.parseExpressionStatement(prev))
	}
}

// parseBlockStatement handles a statement that starts with '{'. With
// closure parameters it is a closure expression; otherwise it is parsed
// as an open block and reported as ambiguous.
func (p *Parser) parseBlockStatement(prev TokenKind) *Node {
	if p.isClosureWithParams() {
		return p.parseExpressionStatement(prev)
	}
	if prev == TokenNLS {
		p.reportAt(p.peek(), AmbiguityExhausted, "ambiguous expression could be a parameterless closure expression, an isolated open code block, or it may continue a previous statement")
	} else {
		p.reportAt(p.peek(), AmbiguityExhausted, "ambiguous expression could be either a parameterless closure expression or an isolated open code block")
	}
	return p.parseOpenBlock()
}

func (p *Parser) parseExpressionStatement(prev TokenKind) *Node {
	if prev == TokenNLS && p.checkAny(suspiciousStatementStart) && !p.check(TokenLBrace) {
		p.warn(p.peek(), "expression statement looks like it may continue a previous statement")
	}
	node := p.startNode(KindExprStmt)
	node.AddChild(p.parseCommandCapableExpression(ctxStatement))
	return p.finishNode(node)
}

// parseStrictContextExpression parses the contents of a condition,
// argument or closure-list slot. It reports whether a declaration was
// parsed, which only happens when allowDecl is set.
func (p *Parser) parseStrictContextExpression(allowDecl bool) (*Node, bool) {
	switch p.peek().Kind {
	case TokenReturn, TokenBreak, TokenContinue, TokenThrow, TokenAssert:
		return p.parseBranchStatement(), false
	}
	if allowDecl && p.isDeclarationStart() {
		return p.parseSingleDeclaration(), true
	}
	return p.parseExpression(ctxNested), false
}

// parseBodyStatement parses the body of if, for and while: a block, an
// empty statement or a single statement.
func (p *Parser) parseBodyStatement() *Node {
	switch p.peek().Kind {
	case TokenLBrace:
		return p.parseOpenBlock()
	case TokenSemicolon:
		return p.emptyStatement()
	}
	p.state.LastSep = TokenEOF
	holder := p.startNode(KindBlock)
	p.parseStatement(holder)
	if len(holder.Children) == 1 {
		return holder.Children[0]
	}
	return p.finishNode(holder)
}

func (p *Parser) emptyStatement() *Node {
	node := p.startNode(KindEmptyStmt)
	node.Span.End = node.Span.Start
	return node
}

func (p *Parser) parseCondition() *Node {
	p.expect(TokenLParen)
	p.nls()
	cond, _ := p.parseStrictContextExpression(false)
	p.nls()
	p.expect(TokenRParen)
	return cond
}

func (p *Parser) parseIfStatement() *Node {
	node := p.startNode(KindIfStmt)
	p.expect(TokenIf)
	node.AddChild(p.parseCondition())
	p.nlsWarn()
	node.AddChild(p.parseBodyStatement())
	if p.isElseStart() {
		p.sep()
		p.expect(TokenElse)
		p.nlsWarn()
		node.AddChild(p.parseBodyStatement())
	}
	return p.finishNode(node)
}

func (p *Parser) parseForStatement() *Node {
	node := p.startNode(KindForStmt)
	p.expect(TokenFor)
	p.expect(TokenLParen)
	p.nls()
	if p.isClassicForStart() {
		list := p.startNode(KindClosureList)
		var first *Node
		if p.check(TokenSemicolon) {
			first = p.emptyStatement()
		} else {
			first, _ = p.parseStrictContextExpression(true)
			p.nls()
		}
		node.AddChild(p.parseClosureList(list, first))
	} else {
		node.AddChild(p.parseForInClause())
	}
	p.nls()
	p.expect(TokenRParen)
	p.nlsWarn()
	node.AddChild(p.parseBodyStatement())
	return p.finishNode(node)
}

func (p *Parser) parseForInClause() *Node {
	node := p.startNode(KindForInClause)
	if p.isDeclarationStart() {
		node.AddChild(p.parseSingleDeclaration())
	} else {
		node.AddChild(p.parseIdent())
	}
	switch {
	case p.check(TokenColon):
		p.warn(p.peek(), "a colon at this point is legal Java but not recommended")
		p.advance()
	default:
		p.expect(TokenIn)
	}
	p.nls()
	node.AddChild(p.parseExpression(ctxNested))
	return p.finishNode(node)
}

func (p *Parser) parseWhileStatement() *Node {
	node := p.startNode(KindWhileStmt)
	p.expect(TokenWhile)
	node.AddChild(p.parseCondition())
	p.nlsWarn()
	node.AddChild(p.parseBodyStatement())
	return p.finishNode(node)
}

func (p *Parser) parseSynchronizedStatement() *Node {
	node := p.startNode(KindSynchronizedStmt)
	p.expect(TokenSynchronized)
	node.AddChild(p.parseCondition())
	p.nlsWarn()
	node.AddChild(p.parseOpenBlock())
	return p.finishNode(node)
}

// parseSwitchStatement groups consecutive case labels with the statements
// following them. A failing statement is recovered within its group.
func (p *Parser) parseSwitchStatement() *Node {
	node := p.startNode(KindSwitchStmt)
	p.expect(TokenSwitch)
	node.AddChild(p.parseCondition())
	p.nls()
	p.expect(TokenLBrace)

	var group *Node
	inBody := false
	closeGroup := func() {
		if group != nil {
			node.AddChild(p.finishNode(group))
		}
	}
	for {
		p.skipSeparators(false)
		switch {
		case p.match(TokenRBrace, TokenEOF):
			closeGroup()
			p.expect(TokenRBrace)
			return p.finishNode(node)
		case p.match(TokenCase, TokenDefault):
			if group == nil || inBody {
				closeGroup()
				group = p.startNode(KindCaseGroup)
				inBody = false
			}
			group.AddChild(p.parseCaseLabel())
		default:
			progress := p.mustProgress()
			if group == nil {
				p.recoverable(node, func(*Node) { p.unexpected() })
				progress()
				continue
			}
			inBody = true
			p.recoverable(group, func(into *Node) {
				p.parseStatement(into)
				p.expectStatementEnd(TokenRBrace, TokenCase, TokenDefault)
			})
			progress()
		}
	}
}

func (p *Parser) parseCaseLabel() *Node {
	if p.check(TokenDefault) {
		node := p.startNode(KindDefaultLabel)
		p.advance()
		p.expect(TokenColon)
		return p.finishNode(node)
	}
	node := p.startNode(KindCaseLabel)
	p.expect(TokenCase)
	p.nls()
	node.AddChild(p.parseExpression(ctxNested))
	p.expect(TokenColon)
	return p.finishNode(node)
}

func (p *Parser) parseTryStatement() *Node {
	node := p.startNode(KindTryStmt)
	p.expect(TokenTry)
	p.nlsWarn()
	node.AddChild(p.parseOpenBlock())
	for p.nlsThen(TokenCatch) {
		node.AddChild(p.parseCatchClause())
	}
	if p.nlsThen(TokenFinally) {
		fin := p.startNode(KindFinallyClause)
		p.advance()
		p.nlsWarn()
		fin.AddChild(p.parseOpenBlock())
		node.AddChild(p.finishNode(fin))
	}
	return p.finishNode(node)
}

// parseCatchClause parses catch (A | B e) { }. The exception types are
// optional, as in catch (e).
func (p *Parser) parseCatchClause() *Node {
	node := p.startNode(KindCatchClause)
	p.expect(TokenCatch)
	p.nls()
	p.expect(TokenLParen)
	p.nls()
	param := p.startNode(KindParameterDef)
	param.AddChild(p.parseModifiersOpt())
	if !(p.check(TokenIdent) && p.peekN(1).Kind == TokenRParen) {
		param.AddChild(p.parseClassTypeSpec())
		for p.accept(TokenBitOr) {
			p.nls()
			param.AddChild(p.parseClassTypeSpec())
		}
	}
	name := p.parseIdent()
	param.AddChild(name)
	param.Text = name.Text
	node.AddChild(p.finishNode(param))
	p.nls()
	p.expect(TokenRParen)
	p.nlsWarn()
	node.AddChild(p.parseOpenBlock())
	return p.finishNode(node)
}

func (p *Parser) parseBranchStatement() *Node {
	switch p.peek().Kind {
	case TokenReturn:
		node := p.startNode(KindReturnStmt)
		p.advance()
		if p.checkAny(expressionStart) {
			node.AddChild(p.parseExpression(ctxNested))
		}
		return p.finishNode(node)
	case TokenBreak, TokenContinue:
		kind := KindBreakStmt
		if p.check(TokenContinue) {
			kind = KindContinueStmt
		}
		node := p.startNode(kind)
		p.advance()
		if p.check(TokenIdent) {
			label := p.leaf(KindIdentifier)
			node.AddChild(label)
			node.Text = label.Text
		}
		return p.finishNode(node)
	case TokenThrow:
		node := p.startNode(KindThrowStmt)
		p.advance()
		p.nls()
		node.AddChild(p.parseExpression(ctxNested))
		return p.finishNode(node)
	}
	node := p.startNode(KindAssertStmt)
	p.expect(TokenAssert)
	node.AddChild(p.parseExpression(ctxNested))
	if p.match(TokenColon, TokenComma) {
		p.advance()
		p.nls()
		node.AddChild(p.parseExpression(ctxNested))
	}
	return p.finishNode(node)
}

func (p *Parser) parseImportStatement() *Node {
	node := p.startNode(KindImport)
	node.AddChild(p.parseAnnotationsOpt())
	p.expect(TokenImport)
	if p.accept(TokenStatic) {
		node.Kind = KindStaticImport
	}
	name := p.parseQualifiedName(true)
	node.AddChild(name)
	node.Text = name.Text
	if p.accept(TokenAs) {
		node.AddChild(p.parseIdent())
	}
	return p.finishNode(node)
}

func (p *Parser) parsePackageDefinition() *Node {
	node := p.startNode(KindPackageDef)
	node.AddChild(p.parseAnnotationsOpt())
	p.expect(TokenPackage)
	name := p.parseQualifiedName(false)
	node.AddChild(name)
	node.Text = name.Text
	return p.finishNode(node)
}

// parseLabeledStatement parses label: statement. A labeled block may be a
// closure, which is how L: { } forces an open block without ambiguity.
func (p *Parser) parseLabeledStatement() *Node {
	node := p.startNode(KindLabeledStmt)
	label := p.leaf(KindIdentifier)
	node.AddChild(label)
	node.Text = label.Text
	p.expect(TokenColon)
	p.nls()
	if p.check(TokenLBrace) {
		node.AddChild(p.parseOpenOrClosableBlock())
		return p.finishNode(node)
	}
	p.state.LastSep = TokenEOF
	p.parseStatement(node)
	return p.finishNode(node)
}
