package parser

// TokenSource produces tokens on demand. A Lexer is a TokenSource; any
// other producer can be plugged in through ParseTokens.
type TokenSource interface {
	NextToken() Token
}

// TokenCursor is the parser's view of the token stream. LT(1) is the next
// unconsumed token; LT(-1) the most recently consumed one. Rewinding to a
// position returned by Mark restores the exact stream position.
type TokenCursor interface {
	LA(k int) TokenKind
	LT(k int) Token
	Consume()
	Mark() int
	Rewind(mark int)
}

// TokenBuffer is a TokenCursor that pulls from a TokenSource lazily and
// keeps every token so any earlier mark can be restored.
type TokenBuffer struct {
	src    TokenSource
	tokens []Token
	pos    int
	eof    bool
}

func NewTokenBuffer(src TokenSource) *TokenBuffer {
	return &TokenBuffer{src: src}
}

func (b *TokenBuffer) fill(n int) {
	for !b.eof && len(b.tokens) < n {
		tok := b.src.NextToken()
		b.tokens = append(b.tokens, tok)
		if tok.Kind == TokenEOF {
			b.eof = true
		}
	}
}

func (b *TokenBuffer) LT(k int) Token {
	if k == 0 {
		return Token{Kind: TokenEOF}
	}
	if k < 0 {
		idx := b.pos + k
		if idx < 0 {
			return Token{Kind: TokenEOF}
		}
		return b.tokens[idx]
	}
	idx := b.pos + k - 1
	b.fill(idx + 1)
	if idx >= len(b.tokens) {
		if len(b.tokens) == 0 {
			return Token{Kind: TokenEOF}
		}
		return b.tokens[len(b.tokens)-1]
	}
	return b.tokens[idx]
}

func (b *TokenBuffer) LA(k int) TokenKind {
	return b.LT(k).Kind
}

// Consume moves past LT(1). The cursor never moves past EOF.
func (b *TokenBuffer) Consume() {
	b.fill(b.pos + 1)
	if b.pos < len(b.tokens) && b.tokens[b.pos].Kind != TokenEOF {
		b.pos++
	}
}

func (b *TokenBuffer) Mark() int {
	return b.pos
}

func (b *TokenBuffer) Rewind(mark int) {
	b.pos = mark
}

// sliceSource replays a fixed token slice, appending EOF if it is missing.
type sliceSource struct {
	tokens []Token
	next   int
}

func (s *sliceSource) NextToken() Token {
	if s.next >= len(s.tokens) {
		var pos Position
		if n := len(s.tokens); n > 0 {
			pos = s.tokens[n-1].Span.End
		}
		return Token{Kind: TokenEOF, Span: Span{Start: pos, End: pos}}
	}
	tok := s.tokens[s.next]
	s.next++
	return tok
}

// NewSliceSource returns a TokenSource replaying tokens.
func NewSliceSource(tokens []Token) TokenSource {
	return &sliceSource{tokens: tokens}
}
