package parser

// Lexer turns Groovy source into significant tokens. Whitespace is
// dropped; newlines outside parentheses and brackets collapse into a
// single NLS token; comments are reported to the CommentListener and
// never reach the parser.
type Lexer struct {
	input    []byte
	file     string
	pos      int
	line     int
	column   int
	listener CommentListener

	parenLevel int
	braceStack []int
	lastSig    TokenKind

	strings []stringFrame
	resume  bool
	inPath  bool
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:   input,
		file:    file,
		pos:     0,
		line:    1,
		column:  1,
		lastSig: TokenEOF,
	}
}

// SetCommentListener installs the callback receiving comment boundaries.
func (l *Lexer) SetCommentListener(listener CommentListener) {
	l.listener = listener
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) hasPrefix(s string) bool {
	if l.pos+len(s) > len(l.input) {
		return false
	}
	return string(l.input[l.pos:l.pos+len(s)]) == s
}

// NextToken returns the next significant token. After the end of input it
// keeps returning EOF.
func (l *Lexer) NextToken() Token {
	tok := l.nextToken()
	if tok.Kind != TokenNLS {
		l.lastSig = tok.Kind
	}
	return tok
}

func (l *Lexer) nextToken() Token {
	if l.inPath {
		return l.scanStringPath(l.Position())
	}
	if l.resume {
		l.resume = false
		return l.scanStringPart(l.Position(), l.topString().delim, false)
	}
	if l.pos == 0 && l.peek() == '#' && l.peekN(1) == '!' {
		for l.peek() != 0 && l.peek() != '\n' {
			l.advance()
		}
	}
	if nls, ok := l.skipTrivia(); ok {
		return nls
	}

	startPos := l.Position()
	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()
	switch {
	case isIdentStart(ch):
		return l.scanIdentOrKeyword(startPos)
	case isDigit(ch):
		return l.scanNumber(startPos)
	case ch == '\'':
		return l.scanQuotedString(startPos)
	case ch == '"':
		return l.scanGString(startPos)
	case ch == '/' && !expressionEnding.has(l.lastSig):
		return l.scanSlashyString(startPos)
	}
	return l.scanOperator(startPos)
}

// skipTrivia consumes whitespace and comments. A newline seen at
// parenthesis level zero yields a single NLS token covering every
// newline, blank and comment up to the next significant character.
func (l *Lexer) skipTrivia() (Token, bool) {
	var start Position
	sawNewline := false
	for {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f':
			l.advance()
		case ch == '\\' && l.peekN(1) == '\n':
			l.advanceN(2)
		case ch == '\\' && l.peekN(1) == '\r' && l.peekN(2) == '\n':
			l.advanceN(3)
		case ch == '\n':
			if l.parenLevel == 0 && !sawNewline {
				start = l.Position()
				sawNewline = true
			}
			l.advance()
		case ch == '/' && l.peekN(1) == '/':
			l.scanLineComment()
		case ch == '/' && l.peekN(1) == '*':
			l.scanBlockComment()
		default:
			if !sawNewline {
				return Token{}, false
			}
			end := l.Position()
			return Token{
				Kind:    TokenNLS,
				Span:    Span{Start: start, End: end},
				Literal: string(l.input[start.Offset:end.Offset]),
			}, true
		}
	}
}

func (l *Lexer) scanLineComment() {
	start := l.Position()
	if l.listener != nil {
		l.listener.StartComment(start.Line, start.Column)
	}
	l.advanceN(2)
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	end := l.Position()
	if l.listener != nil {
		l.listener.EndComment(CommentLine, end.Line, end.Column, string(l.input[start.Offset:end.Offset]))
	}
}

func (l *Lexer) scanBlockComment() {
	start := l.Position()
	if l.listener != nil {
		l.listener.StartComment(start.Line, start.Column)
	}
	l.advanceN(2)
	for {
		if l.peek() == 0 && l.pos >= len(l.input) {
			break
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	end := l.Position()
	if l.listener != nil {
		l.listener.EndComment(CommentBlock, end.Line, end.Column, string(l.input[start.Offset:end.Offset]))
	}
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isIdentPart(l.peek()) {
		l.advance()
	}
	end := l.Position()
	literal := string(l.input[start.Offset:end.Offset])
	return Token{
		Kind:    LookupKeyword(literal),
		Span:    Span{Start: start, End: end},
		Literal: literal,
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		return l.integerSuffix(start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' {
			l.advance()
		}
		return l.integerSuffix(start)
	}

	fractional := false
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	// 1..2 is a range, not a decimal
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		fractional = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if (l.peek() == 'e' || l.peek() == 'E') &&
		(isDigit(l.peekN(1)) || ((l.peekN(1) == '+' || l.peekN(1) == '-') && isDigit(l.peekN(2)))) {
		fractional = true
		l.advanceN(2)
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	kind := TokenIntLiteral
	if fractional {
		kind = TokenBigDecimalLiteral
	}
	switch l.peek() {
	case 'f', 'F':
		l.advance()
		kind = TokenFloatLiteral
	case 'd', 'D':
		l.advance()
		kind = TokenDoubleLiteral
	case 'g', 'G':
		l.advance()
		if !fractional {
			kind = TokenBigIntLiteral
		}
	case 'l', 'L':
		if !fractional {
			l.advance()
			kind = TokenLongLiteral
		}
	case 'i', 'I':
		if !fractional {
			l.advance()
		}
	}
	return l.token(kind, start)
}

func (l *Lexer) integerSuffix(start Position) Token {
	kind := TokenIntLiteral
	switch l.peek() {
	case 'l', 'L':
		l.advance()
		kind = TokenLongLiteral
	case 'g', 'G':
		l.advance()
		kind = TokenBigIntLiteral
	case 'i', 'I':
		l.advance()
	}
	return l.token(kind, start)
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '(', '[':
		l.advance()
		l.parenLevel++
		if ch == '(' {
			return l.token(TokenLParen, start)
		}
		return l.token(TokenLBracket, start)
	case ')', ']':
		l.advance()
		if l.parenLevel > 0 {
			l.parenLevel--
		}
		if ch == ')' {
			return l.token(TokenRParen, start)
		}
		return l.token(TokenRBracket, start)
	case '{':
		l.advance()
		l.openBrace()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		l.closeBrace()
		return l.token(TokenRBrace, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '@':
		l.advance()
		return l.token(TokenAt, start)
	case '~':
		l.advance()
		return l.token(TokenBitNot, start)
	case ':':
		l.advance()
		return l.token(TokenColon, start)

	case '?':
		switch l.peekN(1) {
		case '.':
			l.advanceN(2)
			return l.token(TokenSafeDot, start)
		case ':':
			l.advanceN(2)
			return l.token(TokenElvis, start)
		}
		l.advance()
		return l.token(TokenQuestion, start)

	case '.':
		if l.peekN(1) == '.' {
			switch l.peekN(2) {
			case '.':
				l.advanceN(3)
				return l.token(TokenEllipsis, start)
			case '<':
				l.advanceN(3)
				return l.token(TokenRangeExclusive, start)
			}
			l.advanceN(2)
			return l.token(TokenRangeInclusive, start)
		}
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenMemberPointer, start)
		}
		l.advance()
		return l.token(TokenDot, start)

	case '=':
		if l.peekN(1) == '=' {
			switch l.peekN(2) {
			case '=':
				l.advanceN(3)
				return l.token(TokenIdentical, start)
			case '~':
				l.advanceN(3)
				return l.token(TokenRegexMatch, start)
			}
			l.advanceN(2)
			return l.token(TokenEQ, start)
		}
		if l.peekN(1) == '~' {
			l.advanceN(2)
			return l.token(TokenRegexFind, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '!':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenNotIdentical, start)
			}
			l.advanceN(2)
			return l.token(TokenNE, start)
		}
		l.advance()
		return l.token(TokenNot, start)

	case '<':
		if l.peekN(1) == '=' && l.peekN(2) == '>' {
			l.advanceN(3)
			return l.token(TokenCompareTo, start)
		}
		if l.peekN(1) == '<' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShlAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShl, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '>' {
			if l.peekN(2) == '>' {
				if l.peekN(3) == '=' {
					l.advanceN(4)
					return l.token(TokenUShrAssign, start)
				}
				l.advanceN(3)
				return l.token(TokenUShr, start)
			}
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShrAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenAndAssign, start)
		}
		l.advance()
		return l.token(TokenBitAnd, start)

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenOrAssign, start)
		}
		l.advance()
		return l.token(TokenBitOr, start)

	case '^':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenXorAssign, start)
		}
		l.advance()
		return l.token(TokenBitXor, start)

	case '+':
		if l.peekN(1) == '+' {
			l.advanceN(2)
			return l.token(TokenIncrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPlusAssign, start)
		}
		l.advance()
		return l.token(TokenPlus, start)

	case '-':
		switch l.peekN(1) {
		case '-':
			l.advanceN(2)
			return l.token(TokenDecrement, start)
		case '=':
			l.advanceN(2)
			return l.token(TokenMinusAssign, start)
		case '>':
			l.advanceN(2)
			return l.token(TokenArrow, start)
		}
		l.advance()
		return l.token(TokenMinus, start)

	case '*':
		if l.peekN(1) == '*' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenPowerAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenPower, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenStarAssign, start)
		}
		if l.peekN(1) == '.' {
			l.advanceN(2)
			return l.token(TokenSpreadDot, start)
		}
		l.advance()
		return l.token(TokenStar, start)

	case '/':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenSlashAssign, start)
		}
		l.advance()
		return l.token(TokenSlash, start)

	case '%':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPercentAssign, start)
		}
		l.advance()
		return l.token(TokenPercent, start)
	}

	l.advance()
	end := l.Position()
	return Token{
		Kind:    TokenError,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

// openBrace saves the parenthesis level so newlines inside the block are
// significant again.
func (l *Lexer) openBrace() {
	l.braceStack = append(l.braceStack, l.parenLevel)
	l.parenLevel = 0
	if f := l.topString(); f != nil {
		if f.awaitBrace {
			f.awaitBrace = false
			f.depth = 1
		} else if f.depth > 0 {
			f.depth++
		}
	}
}

func (l *Lexer) closeBrace() {
	if n := len(l.braceStack); n > 0 {
		l.parenLevel = l.braceStack[n-1]
		l.braceStack = l.braceStack[:n-1]
	}
	if f := l.topString(); f != nil && f.depth > 0 {
		f.depth--
		if f.depth == 0 {
			l.resume = true
		}
	}
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

// Tokenize lexes input to completion. The returned slice ends with EOF.
func Tokenize(input []byte, file string) []Token {
	l := NewLexer(input, file)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
