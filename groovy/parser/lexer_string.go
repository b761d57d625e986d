package parser

// stringFrame tracks an interpolated string whose embedded values are
// being lexed as ordinary tokens.
type stringFrame struct {
	delim      string
	awaitBrace bool
	depth      int
}

func (l *Lexer) topString() *stringFrame {
	if len(l.strings) == 0 {
		return nil
	}
	return &l.strings[len(l.strings)-1]
}

func (l *Lexer) pushString(delim string) {
	l.strings = append(l.strings, stringFrame{delim: delim})
}

func (l *Lexer) popString() {
	if len(l.strings) > 0 {
		l.strings = l.strings[:len(l.strings)-1]
	}
}

// scanQuotedString lexes single-quoted strings, which never interpolate.
func (l *Lexer) scanQuotedString(start Position) Token {
	delim := "'"
	if l.peekN(1) == '\'' && l.peekN(2) == '\'' {
		delim = "'''"
	}
	l.advanceN(len(delim))
	for l.pos < len(l.input) {
		if l.hasPrefix(delim) {
			l.advanceN(len(delim))
			break
		}
		if l.peek() == '\n' && len(delim) == 1 {
			break
		}
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	return l.token(TokenStringLiteral, start)
}

func (l *Lexer) scanGString(start Position) Token {
	delim := `"`
	if l.peekN(1) == '"' && l.peekN(2) == '"' {
		delim = `"""`
	}
	l.advanceN(len(delim))
	return l.scanStringPart(start, delim, true)
}

func (l *Lexer) scanSlashyString(start Position) Token {
	l.advance()
	return l.scanStringPart(start, "/", true)
}

// scanStringPart lexes string text up to the closing delimiter or the next
// embedded value. A string without embedded values is a single
// StringLiteral; otherwise the text pieces become StringCtorStart, any
// number of StringCtorMiddle and a final StringCtorEnd, with the value
// tokens in between.
func (l *Lexer) scanStringPart(start Position, delim string, first bool) Token {
	for l.pos < len(l.input) {
		if l.hasPrefix(delim) {
			l.advanceN(len(delim))
			return l.endString(start, first)
		}
		ch := l.peek()
		if ch == '\n' && delim == `"` {
			break
		}
		if ch == '\\' {
			l.advance()
			if l.pos < len(l.input) {
				l.advance()
			}
			continue
		}
		if ch == '$' && (l.peekN(1) == '{' || (isIdentStart(l.peekN(1)) && l.peekN(1) != '$')) {
			l.advance()
			kind := TokenStringCtorMiddle
			if first {
				kind = TokenStringCtorStart
				l.pushString(delim)
			}
			tok := l.token(kind, start)
			if l.peek() == '{' {
				l.topString().awaitBrace = true
			} else {
				l.inPath = true
			}
			return tok
		}
		l.advance()
	}
	// unterminated
	return l.endString(start, first)
}

func (l *Lexer) endString(start Position, first bool) Token {
	if first {
		return l.token(TokenStringLiteral, start)
	}
	l.popString()
	return l.token(TokenStringCtorEnd, start)
}

// scanStringPath lexes the dotted identifier path of a $name.prop
// interpolation and hands control back to the string once the path ends.
func (l *Lexer) scanStringPath(start Position) Token {
	if l.peek() == '.' {
		l.advance()
		return l.token(TokenDot, start)
	}
	for isIdentPart(l.peek()) && l.peek() != '$' {
		l.advance()
	}
	tok := l.token(TokenIdent, start)
	next := l.peekN(1)
	if l.peek() != '.' || !isIdentStart(next) || next == '$' {
		l.inPath = false
		l.resume = true
	}
	return tok
}
