package parser

import (
	"testing"
)

func tokenKinds(input string) []TokenKind {
	var kinds []TokenKind
	for _, tok := range Tokenize([]byte(input), "test.groovy") {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"class", []TokenKind{TokenClass, TokenEOF}},
		{"def x = 1", []TokenKind{TokenDef, TokenIdent, TokenAssign, TokenIntLiteral, TokenEOF}},
		{"1L 2G 3.5 4f 5d 0x1F", []TokenKind{TokenLongLiteral, TokenBigIntLiteral, TokenBigDecimalLiteral, TokenFloatLiteral, TokenDoubleLiteral, TokenIntLiteral, TokenEOF}},
		{"1..2", []TokenKind{TokenIntLiteral, TokenRangeInclusive, TokenIntLiteral, TokenEOF}},
		{"1..<2", []TokenKind{TokenIntLiteral, TokenRangeExclusive, TokenIntLiteral, TokenEOF}},
		{"a?.b a*.b a.&b a?:b", []TokenKind{
			TokenIdent, TokenSafeDot, TokenIdent,
			TokenIdent, TokenSpreadDot, TokenIdent,
			TokenIdent, TokenMemberPointer, TokenIdent,
			TokenIdent, TokenElvis, TokenIdent, TokenEOF,
		}},
		{"== === != !== <=> =~ ==~", []TokenKind{TokenEQ, TokenIdentical, TokenNE, TokenNotIdentical, TokenCompareTo, TokenRegexFind, TokenRegexMatch, TokenEOF}},
		{"<< >> >>> **", []TokenKind{TokenShl, TokenShr, TokenUShr, TokenPower, TokenEOF}},
		{"-> ...", []TokenKind{TokenArrow, TokenEllipsis, TokenEOF}},
		{"'single' '''triple'''", []TokenKind{TokenStringLiteral, TokenStringLiteral, TokenEOF}},
		{`"plain"`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{"#!/usr/bin/env groovy\nx", []TokenKind{TokenNLS, TokenIdent, TokenEOF}},
		{"// comment\nclass", []TokenKind{TokenNLS, TokenClass, TokenEOF}},
		{"/* block */ class", []TokenKind{TokenClass, TokenEOF}},
		{"#", []TokenKind{TokenError, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := tokenKinds(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerNewlines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenKind
	}{
		{"newlines merge", "a\n\n\nb", []TokenKind{TokenIdent, TokenNLS, TokenIdent, TokenEOF}},
		{"comments between newlines fold in", "a\n// c\n/* d */\nb", []TokenKind{TokenIdent, TokenNLS, TokenIdent, TokenEOF}},
		{"insignificant in parentheses", "f(a,\nb)", []TokenKind{TokenIdent, TokenLParen, TokenIdent, TokenComma, TokenIdent, TokenRParen, TokenEOF}},
		{"insignificant in brackets", "[a,\nb]", []TokenKind{TokenLBracket, TokenIdent, TokenComma, TokenIdent, TokenRBracket, TokenEOF}},
		{"significant again in braces", "f({\na\n})", []TokenKind{TokenIdent, TokenLParen, TokenLBrace, TokenNLS, TokenIdent, TokenNLS, TokenRBrace, TokenRParen, TokenEOF}},
		{"line continuation", "a \\\n+ b", []TokenKind{TokenIdent, TokenPlus, TokenIdent, TokenEOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenKinds(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerSlashes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenKind
	}{
		{"division after identifier", "a / b", []TokenKind{TokenIdent, TokenSlash, TokenIdent, TokenEOF}},
		{"division after paren", "(a) / 2", []TokenKind{TokenLParen, TokenIdent, TokenRParen, TokenSlash, TokenIntLiteral, TokenEOF}},
		{"regex after assign", "a = /x+/", []TokenKind{TokenIdent, TokenAssign, TokenStringLiteral, TokenEOF}},
		{"regex after operator", "a ==~ /x/", []TokenKind{TokenIdent, TokenRegexMatch, TokenStringLiteral, TokenEOF}},
		{"regex at start", "/abc/", []TokenKind{TokenStringLiteral, TokenEOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenKinds(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerGString(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
		literals []string
	}{
		{
			input:    `"a $b c"`,
			expected: []TokenKind{TokenStringCtorStart, TokenIdent, TokenStringCtorEnd, TokenEOF},
			literals: []string{`"a $`, "b", ` c"`, ""},
		},
		{
			input:    `"$a.b!"`,
			expected: []TokenKind{TokenStringCtorStart, TokenIdent, TokenDot, TokenIdent, TokenStringCtorEnd, TokenEOF},
			literals: []string{`"$`, "a", ".", "b", `!"`, ""},
		},
		{
			input:    `"x ${1 + 2} y $z"`,
			expected: []TokenKind{TokenStringCtorStart, TokenLBrace, TokenIntLiteral, TokenPlus, TokenIntLiteral, TokenRBrace, TokenStringCtorMiddle, TokenIdent, TokenStringCtorEnd, TokenEOF},
			literals: []string{`"x $`, "{", "1", "+", "2", "}", ` y $`, "z", `"`, ""},
		},
		{
			input:    `"${ [a: 1] }"`,
			expected: []TokenKind{TokenStringCtorStart, TokenLBrace, TokenLBracket, TokenIdent, TokenColon, TokenIntLiteral, TokenRBracket, TokenRBrace, TokenStringCtorEnd, TokenEOF},
		},
		{
			input:    `"cost: \$5"`,
			expected: []TokenKind{TokenStringLiteral, TokenEOF},
		},
		{
			input:    `/x$y/`,
			expected: []TokenKind{TokenStringCtorStart, TokenIdent, TokenStringCtorEnd, TokenEOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := Tokenize([]byte(tt.input), "test.groovy")
			if len(toks) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %v", len(toks), toks, tt.expected)
			}
			for i, tok := range toks {
				if tok.Kind != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, tok.Kind, tt.expected[i])
				}
				if tt.literals != nil && tok.Literal != tt.literals[i] {
					t.Errorf("token %d literal: got %q, want %q", i, tok.Literal, tt.literals[i])
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	toks := Tokenize([]byte("foo\n  bar"), "test.groovy")
	want := []Span{
		{Start: Position{Line: 1, Column: 1}, End: Position{Line: 1, Column: 4}},
		{Start: Position{Line: 1, Column: 4}, End: Position{Line: 2, Column: 3}},
		{Start: Position{Line: 2, Column: 3}, End: Position{Line: 2, Column: 6}},
	}
	for i, w := range want {
		got := toks[i].Span
		if got.Start.Line != w.Start.Line || got.Start.Column != w.Start.Column ||
			got.End.Line != w.End.Line || got.End.Column != w.End.Column {
			t.Errorf("token %d span = %s-%s, want %s-%s", i, got.Start, got.End, w.Start, w.End)
		}
	}
}

func TestLexerKeepsReturningEOF(t *testing.T) {
	l := NewLexer([]byte("x"), "")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Kind != TokenEOF {
			t.Fatalf("call %d after end = %v, want EOF", i, tok.Kind)
		}
	}
}
