package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before o in the source.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

type Span struct {
	Start Position
	End   Position
}

// Contains reports whether o lies within s.
func (s Span) Contains(o Span) bool {
	return !o.Start.Before(s.Start) && !s.End.Before(o.End)
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenNLS

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenLongLiteral
	TokenBigIntLiteral
	TokenFloatLiteral
	TokenDoubleLiteral
	TokenBigDecimalLiteral
	TokenStringLiteral
	TokenStringCtorStart
	TokenStringCtorMiddle
	TokenStringCtorEnd

	// Keywords
	TokenAbstract
	TokenAs
	TokenAssert
	TokenBoolean
	TokenBreak
	TokenByte
	TokenCase
	TokenCatch
	TokenChar
	TokenClass
	TokenContinue
	TokenDef
	TokenDefault
	TokenDouble
	TokenElse
	TokenEnum
	TokenExtends
	TokenFalse
	TokenFinal
	TokenFinally
	TokenFloat
	TokenFor
	TokenIf
	TokenImplements
	TokenImport
	TokenIn
	TokenInstanceof
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenNew
	TokenNull
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSuper
	TokenSwitch
	TokenSynchronized
	TokenThis
	TokenThreadsafe
	TokenThrow
	TokenThrows
	TokenTrait
	TokenTransient
	TokenTrue
	TokenTry
	TokenVoid
	TokenVolatile
	TokenWhile

	// Separators
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenAt
	TokenColon
	TokenQuestion

	// Navigation and closures
	TokenSafeDot
	TokenSpreadDot
	TokenMemberPointer
	TokenRangeInclusive
	TokenRangeExclusive
	TokenEllipsis
	TokenArrow
	TokenElvis

	// Operators
	TokenAssign
	TokenEQ
	TokenNE
	TokenIdentical
	TokenNotIdentical
	TokenCompareTo
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenShl
	TokenShr
	TokenUShr
	TokenRegexFind
	TokenRegexMatch
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenPower
	TokenIncrement
	TokenDecrement
	TokenNot
	TokenBitNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenAnd
	TokenOr
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenPowerAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign

	tokenKindCount
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:               "EOF",
	TokenError:             "Error",
	TokenNLS:               "NLS",
	TokenIdent:             "Ident",
	TokenIntLiteral:        "IntLiteral",
	TokenLongLiteral:       "LongLiteral",
	TokenBigIntLiteral:     "BigIntLiteral",
	TokenFloatLiteral:      "FloatLiteral",
	TokenDoubleLiteral:     "DoubleLiteral",
	TokenBigDecimalLiteral: "BigDecimalLiteral",
	TokenStringLiteral:     "StringLiteral",
	TokenStringCtorStart:   "StringCtorStart",
	TokenStringCtorMiddle:  "StringCtorMiddle",
	TokenStringCtorEnd:     "StringCtorEnd",
	TokenAbstract:          "abstract",
	TokenAs:                "as",
	TokenAssert:            "assert",
	TokenBoolean:           "boolean",
	TokenBreak:             "break",
	TokenByte:              "byte",
	TokenCase:              "case",
	TokenCatch:             "catch",
	TokenChar:              "char",
	TokenClass:             "class",
	TokenContinue:          "continue",
	TokenDef:               "def",
	TokenDefault:           "default",
	TokenDouble:            "double",
	TokenElse:              "else",
	TokenEnum:              "enum",
	TokenExtends:           "extends",
	TokenFalse:             "false",
	TokenFinal:             "final",
	TokenFinally:           "finally",
	TokenFloat:             "float",
	TokenFor:               "for",
	TokenIf:                "if",
	TokenImplements:        "implements",
	TokenImport:            "import",
	TokenIn:                "in",
	TokenInstanceof:        "instanceof",
	TokenInt:               "int",
	TokenInterface:         "interface",
	TokenLong:              "long",
	TokenNative:            "native",
	TokenNew:               "new",
	TokenNull:              "null",
	TokenPackage:           "package",
	TokenPrivate:           "private",
	TokenProtected:         "protected",
	TokenPublic:            "public",
	TokenReturn:            "return",
	TokenShort:             "short",
	TokenStatic:            "static",
	TokenStrictfp:          "strictfp",
	TokenSuper:             "super",
	TokenSwitch:            "switch",
	TokenSynchronized:      "synchronized",
	TokenThis:              "this",
	TokenThreadsafe:        "threadsafe",
	TokenThrow:             "throw",
	TokenThrows:            "throws",
	TokenTrait:             "trait",
	TokenTransient:         "transient",
	TokenTrue:              "true",
	TokenTry:               "try",
	TokenVoid:              "void",
	TokenVolatile:          "volatile",
	TokenWhile:             "while",
	TokenLParen:            "(",
	TokenRParen:            ")",
	TokenLBrace:            "{",
	TokenRBrace:            "}",
	TokenLBracket:          "[",
	TokenRBracket:          "]",
	TokenSemicolon:         ";",
	TokenComma:             ",",
	TokenDot:               ".",
	TokenAt:                "@",
	TokenColon:             ":",
	TokenQuestion:          "?",
	TokenSafeDot:           "?.",
	TokenSpreadDot:         "*.",
	TokenMemberPointer:     ".&",
	TokenRangeInclusive:    "..",
	TokenRangeExclusive:    "..<",
	TokenEllipsis:          "...",
	TokenArrow:             "->",
	TokenElvis:             "?:",
	TokenAssign:            "=",
	TokenEQ:                "==",
	TokenNE:                "!=",
	TokenIdentical:         "===",
	TokenNotIdentical:      "!==",
	TokenCompareTo:         "<=>",
	TokenLT:                "<",
	TokenLE:                "<=",
	TokenGT:                ">",
	TokenGE:                ">=",
	TokenShl:               "<<",
	TokenShr:               ">>",
	TokenUShr:              ">>>",
	TokenRegexFind:         "=~",
	TokenRegexMatch:        "==~",
	TokenPlus:              "+",
	TokenMinus:             "-",
	TokenStar:              "*",
	TokenSlash:             "/",
	TokenPercent:           "%",
	TokenPower:             "**",
	TokenIncrement:         "++",
	TokenDecrement:         "--",
	TokenNot:               "!",
	TokenBitNot:            "~",
	TokenBitAnd:            "&",
	TokenBitOr:             "|",
	TokenBitXor:            "^",
	TokenAnd:               "&&",
	TokenOr:                "||",
	TokenPlusAssign:        "+=",
	TokenMinusAssign:       "-=",
	TokenStarAssign:        "*=",
	TokenSlashAssign:       "/=",
	TokenPercentAssign:     "%=",
	TokenPowerAssign:       "**=",
	TokenShlAssign:         "<<=",
	TokenShrAssign:         ">>=",
	TokenUShrAssign:        ">>>=",
	TokenAndAssign:         "&=",
	TokenOrAssign:          "|=",
	TokenXorAssign:         "^=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsKeyword reports whether k is a reserved word. Keywords are still
// accepted as member names after a dot and as argument labels.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenAbstract && k <= TokenWhile
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

// Display renders the token the way diagnostics quote it.
func (t Token) Display() string {
	switch t.Kind {
	case TokenEOF:
		return "<EOF>"
	case TokenNLS:
		return "<newline>"
	}
	if t.Literal == "" {
		return t.Kind.String()
	}
	return t.Literal
}

var keywords = map[string]TokenKind{
	"abstract":     TokenAbstract,
	"as":           TokenAs,
	"assert":       TokenAssert,
	"boolean":      TokenBoolean,
	"break":        TokenBreak,
	"byte":         TokenByte,
	"case":         TokenCase,
	"catch":        TokenCatch,
	"char":         TokenChar,
	"class":        TokenClass,
	"continue":     TokenContinue,
	"def":          TokenDef,
	"default":      TokenDefault,
	"double":       TokenDouble,
	"else":         TokenElse,
	"enum":         TokenEnum,
	"extends":      TokenExtends,
	"false":        TokenFalse,
	"final":        TokenFinal,
	"finally":      TokenFinally,
	"float":        TokenFloat,
	"for":          TokenFor,
	"if":           TokenIf,
	"implements":   TokenImplements,
	"import":       TokenImport,
	"in":           TokenIn,
	"instanceof":   TokenInstanceof,
	"int":          TokenInt,
	"interface":    TokenInterface,
	"long":         TokenLong,
	"native":       TokenNative,
	"new":          TokenNew,
	"null":         TokenNull,
	"package":      TokenPackage,
	"private":      TokenPrivate,
	"protected":    TokenProtected,
	"public":       TokenPublic,
	"return":       TokenReturn,
	"short":        TokenShort,
	"static":       TokenStatic,
	"strictfp":     TokenStrictfp,
	"super":        TokenSuper,
	"switch":       TokenSwitch,
	"synchronized": TokenSynchronized,
	"this":         TokenThis,
	"threadsafe":   TokenThreadsafe,
	"throw":        TokenThrow,
	"throws":       TokenThrows,
	"trait":        TokenTrait,
	"transient":    TokenTransient,
	"true":         TokenTrue,
	"try":          TokenTry,
	"void":         TokenVoid,
	"volatile":     TokenVolatile,
	"while":        TokenWhile,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
