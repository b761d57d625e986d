// Package parser provides an error-tolerant recursive-descent parser for
// Groovy source code.
//
// # Overview
//
// The lexer turns bytes into tokens, the parser turns tokens into a
// syntax tree. Newlines are significant in Groovy and reach the parser as
// NLS tokens, except inside parentheses and brackets where the lexer drops
// them. Comments never enter the token stream; the lexer reports them to a
// CommentListener and the parser keeps them in a separate list.
//
//	p := parser.ParseCompilationUnit(r, parser.WithFile("build.gradle"))
//	root := p.Finish()
//	for _, d := range p.Diagnostics() {
//	    fmt.Println(d)
//	}
//
// Finish always returns a root. Malformed input produces Error nodes,
// synthetic identifiers and diagnostics, never a panic.
//
// # Speculation
//
// Groovy is not LL(k): whether "String x" starts a declaration or
// "foo bar" is a command call can only be decided by trying. Syntactic
// predicates (see predicates.go) run a bounded prefix of a rule under a
// checkpoint and always restore the cursor, the ParseState, the node
// arena and the diagnostic lists afterwards. While a predicate runs the
// parser neither reports nor synthesises; the first mismatch aborts it.
//
// # Command expressions
//
// A statement consisting of a bare path followed by an argument start is a
// parenthesis-free call:
//
//	println 1, 2          // println(1, 2)
//	a b c d               // a(b).c(d)
//	task copy(type: Copy) // task(copy(type: Copy))
//
// # Error recovery
//
// Recovery happens at three levels:
//
//  1. Missing identifiers and operands before a closing or terminating
//     token are synthesised as zero-width Identifier nodes marked
//     Synthetic, so "1 + }" still yields a BinaryExpr.
//  2. A failure escaping a block body rewinds to the opening brace and
//     skips every line indented deeper than the brace's line. If that
//     ends at a '}', the block is closed there and keeps the statements
//     parsed before the failure.
//  3. Top-level statements, class members and switch cases resynchronise
//     at the next separator and leave an Error node behind.
//
// Diagnostics carry a FailureKind: LexicalMismatch for a wrong token,
// AmbiguityExhausted when no alternative matched, GuardFailure when a
// semantic check rejected the input and StructuralIncomplete when a
// construct was cut short. Style warnings are kept apart from errors.
package parser
