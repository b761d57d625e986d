package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseUnit(t *testing.T, src string, opts ...Option) (*Parser, *Node) {
	t.Helper()
	p := ParseCompilationUnit(strings.NewReader(src), opts...)
	return p, p.Finish()
}

func parseExpr(t *testing.T, src string) (*Parser, *Node) {
	t.Helper()
	p := ParseExpression(strings.NewReader(src))
	return p, p.Finish()
}

func messages(diags []Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// precedence and associativity
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"2 ** 3 ** 2", "(** 2 (** 3 2))"},
		{"a = b = c", "(= a (= b c))"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a == b < c", "(== a (< b c))"},

		// conditionals
		{"a ?: b", "(ElvisExpr a b)"},
		{"a ? b : c", "(TernaryExpr a b c)"},

		// navigation
		{"a?.b", "(SafeDot a b)"},
		{"a*.b", "(SpreadDot a b)"},
		{"a.&b", "(MemberPointer a b)"},
		{"a.@b", "(Dot a (Attribute b))"},
		{"list[0]", "(IndexOp list (ArgumentList 0))"},

		// literals
		{"[1, 2]", "(ListConstructor (ArgumentList 1 2))"},
		{"[a: 1]", "(MapConstructor (ArgumentList (LabeledArg a 1)))"},
		{"[:]", "MapConstructor"},
		{`"a $b c"`, `(StringConstructor "a $ b  c")`},

		// calls
		{"println 1, 2", "(MethodCall println (ArgumentList 1 2))"},
		{"println(1, 2)", "(MethodCall println (ArgumentList 1 2))"},
		{"foo(a: 1, 2)", "(MethodCall foo (ArgumentList (NamedArguments (LabeledArg a 1)) 2))"},
		{"foo(*xs)", "(MethodCall foo (ArgumentList (SpreadArg xs)))"},
		{"foo(1, 2,)", "(MethodCall foo (ArgumentList 1 2))"},
		{"foo(1) { it }", "(MethodCall foo (ArgumentList 1) (Closure (ExprStmt it)))"},
		{"foo(a; b)", "(MethodCall foo (ClosureList a b))"},
		{"foo((a): 1)", "(MethodCall foo (ArgumentList (NamedArguments (LabeledArg (ParenExpr a) 1))))"},

		// closures
		{"{ x -> x }", "(Closure (Parameters (ParameterDef x)) (ExprStmt x))"},

		// types
		{"new Foo(1)", "(NewExpr (Type Foo) (ArgumentList 1))"},
		{"new Foo<>()", "(NewExpr (Type Foo TypeArguments) ArgumentList)"},
		{"new a.Foo<>(1)", "(NewExpr (Type a Foo TypeArguments) (ArgumentList 1))"},
		{"(int) x", "(CastExpr (Type int) x)"},
		{"(String) x", "(CastExpr (Type String) x)"},
		{"(a) - b", "(- (ParenExpr a) b)"},
		{"x as String", "(AsExpr x (Type String))"},
		{"a instanceof B", "(InstanceofExpr a (Type B))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, root := parseExpr(t, tt.input)
			assert.Empty(t, messages(p.Errors()))
			assert.Equal(t, tt.expected, root.Sexp())
		})
	}
}

// Parenthesised and parenthesis-free calls produce the same tree.
func TestCommandExpressionEquivalence(t *testing.T) {
	pairs := [][2]string{
		{"println 1, 2", "println(1, 2)"},
		{"foo a: 1", "foo(a: 1)"},
		{"a b c d", "a(b).c(d)"},
		{"task copy(type: Copy)", "task(copy(type: Copy))"},
	}
	for _, pair := range pairs {
		t.Run(pair[0], func(t *testing.T) {
			_, bare := parseUnit(t, pair[0])
			_, parens := parseUnit(t, pair[1])
			assert.Equal(t, parens.Sexp(), bare.Sexp())
		})
	}
}

func TestParseCompilationUnit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"declaration", "String x", "(VariableDef (Type String) x)"},
		{"command call", "foo x", "(ExprStmt (MethodCall foo (ArgumentList x)))"},
		{"multiple declarators", "int a = 1, b", "(VariableDef (Type int) a 1) (VariableDef (Type int) b)"},
		{"def", "def x = 1", "(VariableDef (Modifiers def) x 1)"},
		{"command chain", "a b c d", "(ExprStmt (MethodCall (Dot (MethodCall a (ArgumentList b)) c) (ArgumentList d)))"},
		{"if else", "if (a) b else c", "(IfStmt a (ExprStmt b) (ExprStmt c))"},
		{"for in", "for (x in xs) println x", "(ForStmt (ForInClause x xs) (ExprStmt (MethodCall println (ArgumentList x))))"},
		{"classic for", "for (int i = 0; i < n; i++) {}", "(ForStmt (ClosureList (VariableDef (Type int) i 0) (< i n) (++ i)) Block)"},
		{"switch", "switch (x) { case 1: a; break\n default: b }", "(SwitchStmt x (CaseGroup (CaseLabel 1) (ExprStmt a) BreakStmt) (CaseGroup DefaultLabel (ExprStmt b)))"},
		{
			"try",
			"try { a } catch (IOException | RuntimeException e) { b } finally { c }",
			"(TryStmt (Block (ExprStmt a)) (CatchClause (ParameterDef (Type IOException) (Type RuntimeException) e) (Block (ExprStmt b))) (FinallyClause (Block (ExprStmt c))))",
		},
		{"static import", "import static java.lang.Math.max as m", "(StaticImport (QualifiedName java lang Math max) m)"},
		{"star import", "import a.b.*", "(Import (QualifiedName a b *))"},
		{"package", "package a.b", "(PackageDef (QualifiedName a b))"},
		{"multiple assignment declaration", "def (a, b) = pair", "(MultipleAssignDef (Modifiers def) (TupleExpr (VariableDef a) (VariableDef b)) pair)"},
		{"multiple assignment", "(a, b) = pair", "(ExprStmt (= (TupleExpr a b) pair))"},
		{"class", "class A extends B implements C, D { }", "(ClassDef A (ExtendsClause (Type B)) (ImplementsClause (Type C) (Type D)) ObjBlock)"},
		{"enum", "enum E { A, B; int x }", "(EnumDef E (ObjBlock (EnumConstantDef A) (EnumConstantDef B) (VariableDef (Type int) x)))"},
		{"enum constant arguments", "enum Op { PLUS('+'), MINUS('-') }", "(EnumDef Op (ObjBlock (EnumConstantDef PLUS (ArgumentList '+')) (EnumConstantDef MINUS (ArgumentList '-'))))"},
		{"enum constant body", "enum Op { PLUS('+') { int apply() { 1 } }, MINUS('-') }", "(EnumDef Op (ObjBlock (EnumConstantDef PLUS (ArgumentList '+') (ObjBlock (MethodDef (Type int) apply Parameters (Block (ExprStmt 1))))) (EnumConstantDef MINUS (ArgumentList '-'))))"},
		{"annotation type", "@interface Ann { int v() default 1 }", "(AnnotationDef Ann (ObjBlock (AnnotationFieldDef (Type int) v 1)))"},
		{"generic method", "def <T> T id(T x) { x }", "(MethodDef (Modifiers def) (TypeParameters (TypeParameter T)) (Type T) id (Parameters (ParameterDef (Type T) x)) (Block (ExprStmt x)))"},
		{"diamond", "C c = new C<>()", "(VariableDef (Type C) c (NewExpr (Type C TypeArguments) ArgumentList))"},
		{"nested command", "task copy(type: Copy)", "(ExprStmt (MethodCall task (ArgumentList (MethodCall copy (ArgumentList (NamedArguments (LabeledArg type Copy)))))))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, root := parseUnit(t, tt.input)
			assert.Empty(t, messages(p.Errors()))
			assert.Equal(t, "(CompilationUnit "+tt.expected+")", root.Sexp())
		})
	}
}

func TestGenericsClosingBrackets(t *testing.T) {
	tests := []struct {
		input  string
		errors []string
	}{
		{"List<String> x", nil},
		{"Map<String, List<Integer>> x", nil},
		{"Foo<Bar<Baz>>> x", []string{"missing closing bracket '>' for generics types"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, root := parseUnit(t, tt.input)
			assert.Equal(t, tt.errors, messages(p.Errors()))
			require.Len(t, root.Children, 1)
			assert.Equal(t, KindVariableDef, root.Children[0].Kind)
		})
	}
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		line     int
		column   int
	}{
		{"a\n-b", "expression statement looks like it may continue a previous statement", 2, 1},
		{"if (a)\nb", "a newline at this point does not follow the Groovy coding conventions", 1, 7},
		{"for (String s : xs) {}", "a colon at this point is legal Java but not recommended", 1, 15},
		{"foo\n{ x }", "a newline at this point does not follow the Groovy coding conventions", 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, _ := parseUnit(t, tt.input)
			assert.Empty(t, messages(p.Errors()))
			require.Len(t, p.Warnings(), 1)
			w := p.Warnings()[0]
			assert.Equal(t, tt.expected, w.Message)
			assert.Equal(t, SeverityWarning, w.Severity)
			assert.Equal(t, Style, w.Kind)
			assert.Equal(t, tt.line, w.Line)
			assert.Equal(t, tt.column, w.Column)
		})
	}
}

func TestForEachColon(t *testing.T) {
	_, root := parseUnit(t, "for (String s : xs) {}")
	assert.Equal(t, "(CompilationUnit (ForStmt (ForInClause (VariableDef (Type String) s) xs) Block))", root.Sexp())
}

func TestAppendedClosureAfterNewline(t *testing.T) {
	_, root := parseUnit(t, "foo\n{ x }")
	assert.Equal(t, "(CompilationUnit (ExprStmt (MethodCall foo ArgumentList (Closure (ExprStmt x)))))", root.Sexp())

	p, root := parseUnit(t, "return foo\n{ x }")
	require.Len(t, root.Children, 2)
	assert.Equal(t, KindReturnStmt, root.Children[0].Kind)
	assert.Equal(t, KindBlock, root.Children[1].Kind)
	require.Len(t, p.Errors(), 1)
	assert.Equal(t, AmbiguityExhausted, p.Errors()[0].Kind)
	assert.Contains(t, p.Errors()[0].Message, "may continue a previous statement")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  FailureKind
		msg   string
	}{
		{"empty argument", "foo(1,,2)", LexicalMismatch, "expecting an expression, found ','"},
		{"declaration in parentheses", "(int x)", GuardFailure, "declaration is not allowed in a parenthesized expression"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := parseUnit(t, tt.input)
			require.NotEmpty(t, p.Errors())
			assert.Equal(t, tt.msg, p.Errors()[0].Message)
			assert.Equal(t, tt.kind, p.Errors()[0].Kind)
			assert.Equal(t, SeverityError, p.Errors()[0].Severity)
		})
	}
}

func TestMissingOperand(t *testing.T) {
	p, root := parseUnit(t, "class C { def m() { 1 +  } }")
	assert.Equal(t,
		"(CompilationUnit (ClassDef C (ObjBlock (MethodDef (Modifiers def) m Parameters (Block (ExprStmt (+ 1 <missing>)))))))",
		root.Sexp())
	require.Len(t, p.Errors(), 1)
	assert.Equal(t, "expecting an expression, found '}'", p.Errors()[0].Message)
	assert.Equal(t, 1, p.Errors()[0].Line)
	assert.Equal(t, 26, p.Errors()[0].Column)
	assert.True(t, p.IsComplete())

	var synthetic *Node
	root.Walk(func(n *Node) bool {
		if n.Synthetic {
			synthetic = n
		}
		return true
	})
	require.NotNil(t, synthetic)
	assert.Equal(t, KindIdentifier, synthetic.Kind)
	assert.Equal(t, synthetic.Span.Start, synthetic.Span.End)
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		input    string
		complete bool
	}{
		{"x = 1", true},
		{"1 +", false},
		{"foo(", false},
		{"class A {", false},
		{"1 + )", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, _ := parseUnit(t, tt.input)
			assert.Equal(t, tt.complete, p.IsComplete())
		})
	}
}

func TestFinishIsIdempotent(t *testing.T) {
	p, root := parseUnit(t, "x = 1 +")
	errs := len(p.Errors())
	assert.Same(t, root, p.Finish())
	assert.Len(t, p.Errors(), errs)
}

func TestComments(t *testing.T) {
	p, root := parseUnit(t, "/* a */ x = 1 // b")
	comments := p.Comments()
	require.Len(t, comments, 2)
	assert.Equal(t, CommentBlock, comments[0].Kind)
	assert.Equal(t, "/* a */", comments[0].Text)
	assert.Equal(t, CommentLine, comments[1].Kind)
	assert.Equal(t, "// b", comments[1].Text)
	assert.Len(t, root.Children, 1)
}

// Comments never change the shape of the tree.
func TestCommentsDoNotAffectTree(t *testing.T) {
	pairs := [][2]string{
		{"x = 1 + 2", "x = /* one */ 1 + /* two */ 2"},
		{"foo 1, 2\nbar()", "foo 1, 2 // trailing\n// own line\nbar()"},
		{"class A {\n  int x\n}", "/** doc */\nclass A {\n  // field\n  int x\n}"},
	}
	for _, pair := range pairs {
		t.Run(pair[1], func(t *testing.T) {
			_, plain := parseUnit(t, pair[0])
			_, commented := parseUnit(t, pair[1])
			assert.Equal(t, plain.Sexp(), commented.Sexp())
		})
	}
}

func TestParseSnippet(t *testing.T) {
	p := ParseSnippet(strings.NewReader("x = 1\ny = 2"))
	root := p.Finish()
	assert.Empty(t, p.Errors())
	assert.Equal(t, "(Snippet (ExprStmt (= x 1)) (ExprStmt (= y 2)))", root.Sexp())
}

func TestParseExpressionTrailingTokens(t *testing.T) {
	p, root := parseExpr(t, "1 + 2 )")
	assert.Equal(t, "(+ 1 2)", root.Sexp())
	require.Len(t, p.Errors(), 1)
	assert.Equal(t, "unexpected token: )", p.Errors()[0].Message)
}

func TestParseTokens(t *testing.T) {
	tokens := Tokenize([]byte("foo 1"), "")
	// drop EOF; the slice source appends its own
	tokens = tokens[:len(tokens)-1]

	p := ParseTokens(NewSliceSource(tokens), EntryExpression)
	root := p.Finish()
	assert.Empty(t, p.Errors())
	assert.Equal(t, "(MethodCall foo (ArgumentList 1))", root.Sexp())
}

func TestDiagnosticsOrdered(t *testing.T) {
	p, _ := parseUnit(t, "a\n-b\nfoo(1,,2)")
	diags := p.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Equal(t, SeverityError, diags[1].Severity)
	assert.Equal(t, "<input>:3:7: error: expecting an expression, found ','", diags[1].String())
}

func TestWithFile(t *testing.T) {
	p, _ := parseUnit(t, "foo(", WithFile("build.gradle"))
	require.NotEmpty(t, p.Errors())
	assert.Equal(t, "build.gradle", p.Errors()[0].File)
	assert.Equal(t, "build.gradle", p.File())
}
