package parser

// tokenSet is a fixed-size bit-set over TokenKind, used for first-set
// membership tests at grammar forks.
type tokenSet [(int(tokenKindCount) + 63) / 64]uint64

func newTokenSet(kinds ...TokenKind) tokenSet {
	var s tokenSet
	for _, k := range kinds {
		s[k/64] |= 1 << (uint(k) % 64)
	}
	return s
}

func (s tokenSet) has(k TokenKind) bool {
	if k < 0 || k >= tokenKindCount {
		return false
	}
	return s[k/64]&(1<<(uint(k)%64)) != 0
}

func (s tokenSet) union(o tokenSet) tokenSet {
	var r tokenSet
	for i := range s {
		r[i] = s[i] | o[i]
	}
	return r
}

var (
	literalTokens = newTokenSet(
		TokenIntLiteral, TokenLongLiteral, TokenBigIntLiteral,
		TokenFloatLiteral, TokenDoubleLiteral, TokenBigDecimalLiteral,
		TokenStringLiteral, TokenTrue, TokenFalse, TokenNull,
	)

	numberTokens = newTokenSet(
		TokenIntLiteral, TokenLongLiteral, TokenBigIntLiteral,
		TokenFloatLiteral, TokenDoubleLiteral, TokenBigDecimalLiteral,
	)

	builtInTypeTokens = newTokenSet(
		TokenVoid, TokenBoolean, TokenByte, TokenChar, TokenShort,
		TokenInt, TokenFloat, TokenLong, TokenDouble,
	)

	modifierTokens = newTokenSet(
		TokenPrivate, TokenPublic, TokenProtected, TokenStatic, TokenTransient,
		TokenFinal, TokenAbstract, TokenNative, TokenThreadsafe, TokenSynchronized,
		TokenVolatile, TokenStrictfp,
	)

	assignTokens = newTokenSet(
		TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign,
		TokenSlashAssign, TokenPercentAssign, TokenPowerAssign, TokenShlAssign,
		TokenShrAssign, TokenUShrAssign, TokenAndAssign, TokenOrAssign, TokenXorAssign,
	)

	// expressionStart is the first-set of an expression.
	expressionStart = newTokenSet(
		TokenIdent, TokenStringCtorStart, TokenLParen, TokenLBracket, TokenLBrace,
		TokenMinus, TokenPlus, TokenNot, TokenBitNot, TokenIncrement, TokenDecrement,
		TokenNew, TokenThis, TokenSuper,
	).union(literalTokens).union(builtInTypeTokens)

	// commandArgumentStart holds the tokens that may open a parenthesis-free
	// argument. Operators and path suffixes are absent since the head
	// expression has already consumed them.
	commandArgumentStart = newTokenSet(
		TokenIdent, TokenStringCtorStart, TokenNot, TokenBitNot,
		TokenNew, TokenThis, TokenSuper,
	).union(literalTokens).union(builtInTypeTokens)

	// castOperandStart is expressionStart without the signs and the
	// prefix increments, which follow a class type only as binary operators.
	castOperandStart = newTokenSet(
		TokenIdent, TokenStringCtorStart, TokenLParen, TokenLBracket, TokenLBrace,
		TokenNot, TokenBitNot, TokenNew, TokenThis, TokenSuper,
	).union(literalTokens).union(builtInTypeTokens)

	suspiciousStatementStart = newTokenSet(
		TokenPlus, TokenMinus, TokenLBracket, TokenLParen, TokenLBrace,
	)

	// synthesisPoints are the tokens at which a missing identifier or
	// operand may be synthesized instead of aborting the construct.
	synthesisPoints = newTokenSet(
		TokenLBrace, TokenRBrace, TokenRParen, TokenRBracket, TokenNLS,
		TokenSemicolon, TokenComma, TokenEOF,
	)

	closerTokens = newTokenSet(TokenRParen, TokenRBracket, TokenRBrace)

	pathElementStart = newTokenSet(
		TokenDot, TokenSafeDot, TokenSpreadDot, TokenMemberPointer,
		TokenLBracket, TokenLParen, TokenLBrace,
	)

	navigationTokens = newTokenSet(TokenDot, TokenSafeDot, TokenSpreadDot, TokenMemberPointer)

	// expressionEnding holds tokens after which a slash is division rather
	// than the start of a regular expression literal.
	expressionEnding = newTokenSet(
		TokenIdent, TokenRParen, TokenRBracket, TokenRBrace,
		TokenStringCtorEnd, TokenIncrement, TokenDecrement,
		TokenThis, TokenSuper,
	).union(literalTokens).union(builtInTypeTokens)
)
