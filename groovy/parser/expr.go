package parser

// exprContext tells path expressions whether a block on the following
// line may attach to them as a trailing closure. That is only the case
// for expressions that start a statement or initialise a variable.
type exprContext int

const (
	ctxNested exprContext = iota
	ctxStatement
)

var (
	logicalOrOps      = newTokenSet(TokenOr)
	logicalAndOps     = newTokenSet(TokenAnd)
	inclusiveOrOps    = newTokenSet(TokenBitOr)
	exclusiveOrOps    = newTokenSet(TokenBitXor)
	andOps            = newTokenSet(TokenBitAnd)
	regexOps          = newTokenSet(TokenRegexFind, TokenRegexMatch)
	equalityOps       = newTokenSet(TokenEQ, TokenNE, TokenIdentical, TokenNotIdentical, TokenCompareTo)
	relationalOps     = newTokenSet(TokenLT, TokenGT, TokenLE, TokenGE, TokenIn)
	shiftOps          = newTokenSet(TokenShl, TokenShr, TokenUShr, TokenRangeInclusive, TokenRangeExclusive)
	additiveOps       = newTokenSet(TokenPlus, TokenMinus)
	multiplicativeOps = newTokenSet(TokenStar, TokenSlash, TokenPercent)
)

// parseExpression parses a full expression, including the multiple
// assignment form (a, b) = pair.
func (p *Parser) parseExpression(ctx exprContext) *Node {
	if p.check(TokenLParen) && p.isMultipleAssignmentStart() {
		return p.parseMultipleAssignment()
	}
	return p.parseAssignment(ctx)
}

// parseCommandCapableExpression parses an expression that may turn out
// to be the head of a parenthesis-free call, as in println "hi".
func (p *Parser) parseCommandCapableExpression(ctx exprContext) *Node {
	head := p.parseExpression(ctx)
	if head == p.state.LastPath && !p.check(TokenElse) && p.checkAny(commandArgumentStart) {
		return p.parseCommandExpression(head)
	}
	return head
}

// parseCommandExpression parses the arguments of a command call and any
// further name/argument groups chained onto it: a b c d is a(b).c(d).
func (p *Parser) parseCommandExpression(head *Node) *Node {
	expr := head
	if head.Kind != KindMethodCall {
		expr = p.parseCommandArguments(head)
	}
	for p.match(TokenIdent, TokenStringLiteral) {
		dot := p.wrap(KindDot, expr)
		if p.check(TokenStringLiteral) {
			dyn := p.startNode(KindDynamicMember)
			dyn.AddChild(p.leaf(KindLiteral))
			dot.AddChild(p.finishNode(dyn))
		} else {
			dot.AddChild(p.leaf(KindIdentifier))
		}
		expr = p.finishNode(dot)
		switch {
		case p.checkAny(pathElementStart):
			expr = p.parsePathSuffixes(expr, ctxStatement)
		case p.checkAny(commandArgumentStart):
			expr = p.parseCommandArguments(expr)
		}
	}
	p.state.LastPath = expr
	return expr
}

func (p *Parser) parseCommandArguments(callee *Node) *Node {
	call := p.wrap(KindMethodCall, callee)
	args := p.startNode(KindArgumentList)
	args.AddChild(p.parseArgument())
	for p.accept(TokenComma) {
		p.nls()
		args.AddChild(p.parseArgument())
	}
	p.groupNamedArguments(args)
	call.AddChild(p.finishNode(args))
	return p.finishNode(call)
}

func (p *Parser) parseMultipleAssignment() *Node {
	tuple := p.startNode(KindTupleExpr)
	p.expect(TokenLParen)
	p.nls()
	tuple.AddChild(p.parseIdent())
	for p.accept(TokenComma) {
		p.nls()
		tuple.AddChild(p.parseIdent())
	}
	p.expect(TokenRParen)
	node := p.wrap(KindAssignExpr, p.finishNode(tuple))
	p.withOperator(node)
	p.nls()
	node.AddChild(p.parseCommandCapableExpression(ctxStatement))
	return p.finishNode(node)
}

func (p *Parser) parseAssignment(ctx exprContext) *Node {
	left := p.parseConditional(ctx)
	if !p.checkAny(assignTokens) {
		return left
	}
	node := p.wrap(KindAssignExpr, left)
	p.withOperator(node)
	p.nls()
	node.AddChild(p.parseCommandCapableExpression(ctxStatement))
	return p.finishNode(node)
}

// nlsThen reports whether kind follows, possibly after a newline which is
// then consumed.
func (p *Parser) nlsThen(kind TokenKind) bool {
	if p.check(kind) {
		return true
	}
	if p.check(TokenNLS) && p.peekN(1).Kind == kind {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) parseConditional(ctx exprContext) *Node {
	cond := p.parseLogicalOr(ctx)
	switch {
	case p.nlsThen(TokenElvis):
		node := p.wrap(KindElvisExpr, cond)
		p.advance()
		p.nls()
		node.AddChild(p.parseConditional(ctxNested))
		return p.finishNode(node)
	case p.nlsThen(TokenQuestion):
		node := p.wrap(KindTernaryExpr, cond)
		p.advance()
		p.nls()
		node.AddChild(p.parseAssignment(ctxNested))
		p.nls()
		p.expect(TokenColon)
		p.nls()
		node.AddChild(p.parseConditional(ctxNested))
		return p.finishNode(node)
	}
	return cond
}

// parseBinary folds a left-associative run of operators from ops over
// operands parsed by the next precedence level. Only the leftmost operand
// inherits ctx.
func (p *Parser) parseBinary(ctx exprContext, ops tokenSet, operand func(*Parser, exprContext) *Node) *Node {
	left := operand(p, ctx)
	for p.checkAny(ops) {
		node := p.wrap(KindBinaryExpr, left)
		p.withOperator(node)
		p.nls()
		node.AddChild(operand(p, ctxNested))
		left = p.finishNode(node)
	}
	return left
}

func (p *Parser) parseLogicalOr(ctx exprContext) *Node {
	return p.parseBinary(ctx, logicalOrOps, (*Parser).parseLogicalAnd)
}

func (p *Parser) parseLogicalAnd(ctx exprContext) *Node {
	return p.parseBinary(ctx, logicalAndOps, (*Parser).parseInclusiveOr)
}

func (p *Parser) parseInclusiveOr(ctx exprContext) *Node {
	return p.parseBinary(ctx, inclusiveOrOps, (*Parser).parseExclusiveOr)
}

func (p *Parser) parseExclusiveOr(ctx exprContext) *Node {
	return p.parseBinary(ctx, exclusiveOrOps, (*Parser).parseAnd)
}

func (p *Parser) parseAnd(ctx exprContext) *Node {
	return p.parseBinary(ctx, andOps, (*Parser).parseRegex)
}

func (p *Parser) parseRegex(ctx exprContext) *Node {
	return p.parseBinary(ctx, regexOps, (*Parser).parseEquality)
}

func (p *Parser) parseEquality(ctx exprContext) *Node {
	return p.parseBinary(ctx, equalityOps, (*Parser).parseRelational)
}

// parseRelational allows a single comparison; a < b < c does not chain.
func (p *Parser) parseRelational(ctx exprContext) *Node {
	left := p.parseShift(ctx)
	switch {
	case p.check(TokenInstanceof):
		node := p.wrap(KindInstanceofExpr, left)
		p.advance()
		p.nls()
		node.AddChild(p.parseTypeSpec())
		return p.finishNode(node)
	case p.check(TokenAs):
		node := p.wrap(KindAsExpr, left)
		p.advance()
		p.nls()
		node.AddChild(p.parseTypeSpec())
		return p.finishNode(node)
	case p.checkAny(relationalOps):
		node := p.wrap(KindBinaryExpr, left)
		p.withOperator(node)
		p.nls()
		node.AddChild(p.parseShift(ctxNested))
		return p.finishNode(node)
	}
	return left
}

func (p *Parser) parseShift(ctx exprContext) *Node {
	return p.parseBinary(ctx, shiftOps, (*Parser).parseAdditive)
}

func (p *Parser) parseAdditive(ctx exprContext) *Node {
	return p.parseBinary(ctx, additiveOps, (*Parser).parseMultiplicative)
}

func (p *Parser) parseMultiplicative(ctx exprContext) *Node {
	return p.parseBinary(ctx, multiplicativeOps, (*Parser).parsePower)
}

// parsePower is right-associative: 2 ** 3 ** 2 is 2 ** (3 ** 2).
func (p *Parser) parsePower(ctx exprContext) *Node {
	left := p.parseUnary(ctx)
	if !p.check(TokenPower) {
		return left
	}
	node := p.wrap(KindBinaryExpr, left)
	p.withOperator(node)
	p.nls()
	node.AddChild(p.parsePower(ctxNested))
	return p.finishNode(node)
}

func (p *Parser) parseUnary(ctx exprContext) *Node {
	switch p.peek().Kind {
	case TokenIncrement, TokenDecrement, TokenMinus, TokenPlus:
		node := p.startNode(KindUnaryExpr)
		p.withOperator(node)
		p.nls()
		node.AddChild(p.parseUnary(ctxNested))
		return p.finishNode(node)
	}
	return p.parseUnaryNotPlusMinus(ctx)
}

func (p *Parser) parseUnaryNotPlusMinus(ctx exprContext) *Node {
	switch p.peek().Kind {
	case TokenNot, TokenBitNot:
		node := p.startNode(KindUnaryExpr)
		p.withOperator(node)
		p.nls()
		node.AddChild(p.parseUnary(ctxNested))
		return p.finishNode(node)
	case TokenLParen:
		if p.isCastStart() {
			return p.parseCast(ctx)
		}
	}
	return p.parsePostfix(ctx)
}

func (p *Parser) parseCast(ctx exprContext) *Node {
	node := p.startNode(KindCastExpr)
	p.expect(TokenLParen)
	builtin := p.checkAny(builtInTypeTokens)
	node.AddChild(p.parseTypeSpec())
	p.expect(TokenRParen)
	if builtin {
		node.AddChild(p.parseUnary(ctxNested))
	} else {
		node.AddChild(p.parseUnaryNotPlusMinus(ctxNested))
	}
	return p.finishNode(node)
}

func (p *Parser) parsePostfix(ctx exprContext) *Node {
	expr := p.parsePathExpression(ctx)
	for p.match(TokenIncrement, TokenDecrement) {
		node := p.wrap(KindPostfixExpr, expr)
		p.withOperator(node)
		expr = p.finishNode(node)
	}
	return expr
}

// parsePathExpression parses a primary and its suffix chain and records
// the result as LastPath.
func (p *Parser) parsePathExpression(ctx exprContext) *Node {
	expr := p.parsePathSuffixes(p.parsePrimary(), ctx)
	p.state.LastPath = expr
	return expr
}

func (p *Parser) parsePathSuffixes(expr *Node, ctx exprContext) *Node {
	for {
		switch {
		case p.checkAny(pathElementStart):
			expr = p.parsePathElement(expr)
		case p.check(TokenNLS) && navigationTokens.has(p.peekN(1).Kind):
			p.advance()
			expr = p.parseMemberSelect(expr)
		case ctx == ctxStatement && p.check(TokenNLS) && p.peekN(1).Kind == TokenLBrace:
			p.nlsWarn()
			expr = p.parseAppendedBlock(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) parsePathElement(prefix *Node) *Node {
	switch p.peek().Kind {
	case TokenLParen:
		return p.parseMethodCallArgs(prefix)
	case TokenLBracket:
		return p.parseIndex(prefix)
	case TokenLBrace:
		return p.parseAppendedBlock(prefix)
	}
	return p.parseMemberSelect(prefix)
}

var memberSelectKinds = map[TokenKind]NodeKind{
	TokenDot:           KindDot,
	TokenSafeDot:       KindSafeDot,
	TokenSpreadDot:     KindSpreadDot,
	TokenMemberPointer: KindMemberPointer,
}

func (p *Parser) parseMemberSelect(prefix *Node) *Node {
	node := p.wrap(memberSelectKinds[p.peek().Kind], prefix)
	p.advance()
	p.nls()
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}
	node.AddChild(p.parseNamePart())
	return p.finishNode(node)
}

// parseNamePart parses the member name after a dot: an identifier or
// keyword, @attribute, or a dynamic name given as a string or (expr).
func (p *Parser) parseNamePart() *Node {
	tok := p.peek()
	switch {
	case tok.Kind == TokenAt:
		node := p.startNode(KindAttribute)
		p.advance()
		node.AddChild(p.parseNamePart())
		return p.finishNode(node)
	case tok.Kind == TokenIdent || tok.Kind.IsKeyword():
		return p.leaf(KindIdentifier)
	case tok.Kind == TokenStringLiteral:
		node := p.startNode(KindDynamicMember)
		node.AddChild(p.leaf(KindLiteral))
		return p.finishNode(node)
	case tok.Kind == TokenStringCtorStart:
		node := p.startNode(KindDynamicMember)
		node.AddChild(p.parseStringConstructor())
		return p.finishNode(node)
	case tok.Kind == TokenLParen:
		node := p.startNode(KindDynamicMember)
		node.AddChild(p.parseParenthesized())
		return p.finishNode(node)
	}
	return p.missing("an identifier")
}

func (p *Parser) parseMethodCallArgs(callee *Node) *Node {
	node := p.wrap(KindMethodCall, callee)
	p.expect(TokenLParen)
	node.AddChild(p.parseArgList(TokenRParen, true))
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseIndex(prefix *Node) *Node {
	node := p.wrap(KindIndexOp, prefix)
	p.expect(TokenLBracket)
	node.AddChild(p.parseArgList(TokenRBracket, false))
	p.expect(TokenRBracket)
	return p.finishNode(node)
}

// parseAppendedBlock attaches a trailing closure. A call keeps its
// arguments, so foo(1) { } is one MethodCall with the closure after the
// argument list; any other prefix gets an empty argument list.
func (p *Parser) parseAppendedBlock(prefix *Node) *Node {
	call := p.startNodeAt(KindMethodCall, prefix.Span.Start)
	if prefix.Kind == KindMethodCall {
		call.Children = append(call.Children, prefix.Children...)
	} else {
		call.AddChild(prefix)
		args := p.startNode(KindArgumentList)
		args.Span.End = args.Span.Start
		call.AddChild(args)
	}
	call.AddChild(p.parseClosure())
	return p.finishNode(call)
}

func (p *Parser) parsePrimary() *Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenIdent:
		return p.leaf(KindIdentifier)
	case TokenStringCtorStart:
		return p.parseStringConstructor()
	case TokenThis:
		return p.leaf(KindThis)
	case TokenSuper:
		return p.leaf(KindSuper)
	case TokenNew:
		return p.parseNewExpression()
	case TokenLParen:
		return p.parseParenthesized()
	case TokenLBrace:
		return p.parseClosure()
	case TokenLBracket:
		return p.parseListOrMap()
	}
	switch {
	case literalTokens.has(tok.Kind):
		return p.leaf(KindLiteral)
	case builtInTypeTokens.has(tok.Kind):
		return p.parseBuiltInType()
	case synthesisPoints.has(tok.Kind):
		return p.missing("an expression")
	}
	p.unexpected()
	return nil
}

// parseParenthesized parses (expr). A semicolon inside the parentheses
// turns the node into a ClosureList of statement-like slots.
func (p *Parser) parseParenthesized() *Node {
	node := p.startNode(KindParenExpr)
	p.expect(TokenLParen)
	p.nls()
	if p.check(TokenSemicolon) {
		p.parseClosureList(node, p.emptyStatement())
		p.expect(TokenRParen)
		return p.finishNode(node)
	}
	expr, decl := p.parseStrictContextExpression(true)
	p.nls()
	if p.check(TokenSemicolon) {
		p.parseClosureList(node, expr)
		p.expect(TokenRParen)
		return p.finishNode(node)
	}
	if decl {
		p.fail(GuardFailure, "declaration is not allowed in a parenthesized expression")
	}
	node.AddChild(expr)
	p.expect(TokenRParen)
	return p.finishNode(node)
}

// parseClosureList continues a parenthesised list after its first slot.
// The closing parenthesis is left for the caller.
func (p *Parser) parseClosureList(node, first *Node) *Node {
	node.Kind = KindClosureList
	node.AddChild(first)
	for p.accept(TokenSemicolon) {
		p.nls()
		if p.match(TokenSemicolon, TokenRParen) {
			node.AddChild(p.emptyStatement())
			continue
		}
		expr, _ := p.parseStrictContextExpression(true)
		node.AddChild(expr)
		p.nls()
	}
	return p.finishNode(node)
}

func (p *Parser) parseClosure() *Node {
	node := p.startNode(KindClosure)
	return p.parseBraced(node, func() { p.parseClosureParams(node) })
}

// parseClosureParams parses an explicit parameter list up to the arrow.
// { -> x } records an empty Parameters node; { x } records none.
func (p *Parser) parseClosureParams(node *Node) {
	if !p.isClosableBlockParamsStart() {
		return
	}
	p.nls()
	if p.check(TokenArrow) {
		params := p.startNode(KindParameters)
		params.Span.End = params.Span.Start
		node.AddChild(params)
	} else {
		node.AddChild(p.parseParameterList())
		p.nls()
	}
	p.expect(TokenArrow)
	p.nls()
}

func (p *Parser) parseListOrMap() *Node {
	node := p.startNode(KindListConstructor)
	p.expect(TokenLBracket)
	p.nls()
	if p.check(TokenColon) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
		node.Kind = KindMapConstructor
		return p.finishNode(node)
	}
	args := p.parseArgList(TokenRBracket, false)
	if p.state.ArgHasLabels {
		node.Kind = KindMapConstructor
	}
	node.AddChild(args)
	p.expect(TokenRBracket)
	return p.finishNode(node)
}

func (p *Parser) parseNewExpression() *Node {
	node := p.startNode(KindNewExpr)
	p.expect(TokenNew)
	p.nls()
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}
	if p.checkAny(builtInTypeTokens) {
		node.AddChild(p.parseBuiltInType())
	} else {
		node.AddChild(p.parseCreatedType())
	}
	if p.check(TokenLBracket) {
		node.Kind = KindNewArrayExpr
		for p.check(TokenLBracket) {
			dim := p.startNode(KindArrayDim)
			p.advance()
			if !p.check(TokenRBracket) {
				dim.AddChild(p.parseExpression(ctxNested))
			}
			p.expect(TokenRBracket)
			node.AddChild(p.finishNode(dim))
		}
		return p.finishNode(node)
	}
	p.expect(TokenLParen)
	node.AddChild(p.parseArgList(TokenRParen, true))
	p.expect(TokenRParen)
	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBlock())
	}
	return p.finishNode(node)
}

// parseStringConstructor parses an interpolated string: its text parts
// become Literal children with the embedded values between them.
func (p *Parser) parseStringConstructor() *Node {
	node := p.startNode(KindStringConstructor)
	node.AddChild(p.leaf(KindLiteral))
	for {
		node.AddChild(p.parseStringValue())
		switch p.peek().Kind {
		case TokenStringCtorMiddle:
			node.AddChild(p.leaf(KindLiteral))
		case TokenStringCtorEnd:
			node.AddChild(p.leaf(KindLiteral))
			return p.finishNode(node)
		default:
			p.expect(TokenStringCtorEnd)
		}
	}
}

// parseStringValue parses $name.path or ${ ... }.
func (p *Parser) parseStringValue() *Node {
	if p.check(TokenLBrace) {
		return p.parseOpenOrClosableBlock()
	}
	expr := p.parseIdent()
	for p.check(TokenDot) {
		dot := p.wrap(KindDot, expr)
		p.advance()
		dot.AddChild(p.parseIdent())
		expr = p.finishNode(dot)
	}
	return expr
}
