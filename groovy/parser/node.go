package parser

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota

	// Compilation unit level
	KindCompilationUnit
	KindSnippet
	KindPackageDef
	KindImport
	KindStaticImport
	KindQualifiedName

	// Type definitions
	KindClassDef
	KindInterfaceDef
	KindTraitDef
	KindEnumDef
	KindAnnotationDef
	KindObjBlock
	KindEnumConstantDef
	KindExtendsClause
	KindImplementsClause

	// Members
	KindMethodDef
	KindCtorDef
	KindVariableDef
	KindMultipleAssignDef
	KindAnnotationFieldDef
	KindStaticInit
	KindInstanceInit
	KindThrowsClause

	// Types and modifiers
	KindModifiers
	KindModifier
	KindAnnotation
	KindAnnotationMemberValuePair
	KindType
	KindArrayDeclarator
	KindTypeArguments
	KindWildcardType
	KindTypeUpperBounds
	KindTypeLowerBounds
	KindTypeParameters
	KindTypeParameter

	// Parameters
	KindParameters
	KindParameterDef
	KindVariableParameterDef

	// Statements
	KindBlock
	KindEmptyStmt
	KindExprStmt
	KindLabeledStmt
	KindIfStmt
	KindForStmt
	KindForInClause
	KindWhileStmt
	KindSwitchStmt
	KindCaseGroup
	KindCaseLabel
	KindDefaultLabel
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindThrowStmt
	KindAssertStmt
	KindTryStmt
	KindCatchClause
	KindFinallyClause
	KindSynchronizedStmt

	// Expressions
	KindAssignExpr
	KindTernaryExpr
	KindElvisExpr
	KindBinaryExpr
	KindUnaryExpr
	KindPostfixExpr
	KindCastExpr
	KindInstanceofExpr
	KindAsExpr
	KindMethodCall
	KindDot
	KindSafeDot
	KindSpreadDot
	KindMemberPointer
	KindAttribute
	KindDynamicMember
	KindIndexOp
	KindNewExpr
	KindNewArrayExpr
	KindArrayDim
	KindParenExpr
	KindClosureList
	KindTupleExpr
	KindClosure
	KindListConstructor
	KindMapConstructor
	KindArgumentList
	KindNamedArguments
	KindLabeledArg
	KindSpreadArg
	KindSpreadMapArg
	KindStringConstructor
	KindLiteral
	KindIdentifier
	KindThis
	KindSuper
)

var nodeKindNames = map[NodeKind]string{
	KindError:                     "Error",
	KindCompilationUnit:           "CompilationUnit",
	KindSnippet:                   "Snippet",
	KindPackageDef:                "PackageDef",
	KindImport:                    "Import",
	KindStaticImport:              "StaticImport",
	KindQualifiedName:             "QualifiedName",
	KindClassDef:                  "ClassDef",
	KindInterfaceDef:              "InterfaceDef",
	KindTraitDef:                  "TraitDef",
	KindEnumDef:                   "EnumDef",
	KindAnnotationDef:             "AnnotationDef",
	KindObjBlock:                  "ObjBlock",
	KindEnumConstantDef:           "EnumConstantDef",
	KindExtendsClause:             "ExtendsClause",
	KindImplementsClause:          "ImplementsClause",
	KindMethodDef:                 "MethodDef",
	KindCtorDef:                   "CtorDef",
	KindVariableDef:               "VariableDef",
	KindMultipleAssignDef:         "MultipleAssignDef",
	KindAnnotationFieldDef:        "AnnotationFieldDef",
	KindStaticInit:                "StaticInit",
	KindInstanceInit:              "InstanceInit",
	KindThrowsClause:              "ThrowsClause",
	KindModifiers:                 "Modifiers",
	KindModifier:                  "Modifier",
	KindAnnotation:                "Annotation",
	KindAnnotationMemberValuePair: "AnnotationMemberValuePair",
	KindType:                      "Type",
	KindArrayDeclarator:           "ArrayDeclarator",
	KindTypeArguments:             "TypeArguments",
	KindWildcardType:              "WildcardType",
	KindTypeUpperBounds:           "TypeUpperBounds",
	KindTypeLowerBounds:           "TypeLowerBounds",
	KindTypeParameters:            "TypeParameters",
	KindTypeParameter:             "TypeParameter",
	KindParameters:                "Parameters",
	KindParameterDef:              "ParameterDef",
	KindVariableParameterDef:      "VariableParameterDef",
	KindBlock:                     "Block",
	KindEmptyStmt:                 "EmptyStmt",
	KindExprStmt:                  "ExprStmt",
	KindLabeledStmt:               "LabeledStmt",
	KindIfStmt:                    "IfStmt",
	KindForStmt:                   "ForStmt",
	KindForInClause:               "ForInClause",
	KindWhileStmt:                 "WhileStmt",
	KindSwitchStmt:                "SwitchStmt",
	KindCaseGroup:                 "CaseGroup",
	KindCaseLabel:                 "CaseLabel",
	KindDefaultLabel:              "DefaultLabel",
	KindReturnStmt:                "ReturnStmt",
	KindBreakStmt:                 "BreakStmt",
	KindContinueStmt:              "ContinueStmt",
	KindThrowStmt:                 "ThrowStmt",
	KindAssertStmt:                "AssertStmt",
	KindTryStmt:                   "TryStmt",
	KindCatchClause:               "CatchClause",
	KindFinallyClause:             "FinallyClause",
	KindSynchronizedStmt:          "SynchronizedStmt",
	KindAssignExpr:                "AssignExpr",
	KindTernaryExpr:               "TernaryExpr",
	KindElvisExpr:                 "ElvisExpr",
	KindBinaryExpr:                "BinaryExpr",
	KindUnaryExpr:                 "UnaryExpr",
	KindPostfixExpr:               "PostfixExpr",
	KindCastExpr:                  "CastExpr",
	KindInstanceofExpr:            "InstanceofExpr",
	KindAsExpr:                    "AsExpr",
	KindMethodCall:                "MethodCall",
	KindDot:                       "Dot",
	KindSafeDot:                   "SafeDot",
	KindSpreadDot:                 "SpreadDot",
	KindMemberPointer:             "MemberPointer",
	KindAttribute:                 "Attribute",
	KindDynamicMember:             "DynamicMember",
	KindIndexOp:                   "IndexOp",
	KindNewExpr:                   "NewExpr",
	KindNewArrayExpr:              "NewArrayExpr",
	KindArrayDim:                  "ArrayDim",
	KindParenExpr:                 "ParenExpr",
	KindClosureList:               "ClosureList",
	KindTupleExpr:                 "TupleExpr",
	KindClosure:                   "Closure",
	KindListConstructor:           "ListConstructor",
	KindMapConstructor:            "MapConstructor",
	KindArgumentList:              "ArgumentList",
	KindNamedArguments:            "NamedArguments",
	KindLabeledArg:                "LabeledArg",
	KindSpreadArg:                 "SpreadArg",
	KindSpreadMapArg:              "SpreadMapArg",
	KindStringConstructor:         "StringConstructor",
	KindLiteral:                   "Literal",
	KindIdentifier:                "Identifier",
	KindThis:                      "This",
	KindSuper:                     "Super",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsOperator reports whether nodes of this kind carry their operator in
// Text.
func (k NodeKind) IsOperator() bool {
	switch k {
	case KindAssignExpr, KindBinaryExpr, KindUnaryExpr, KindPostfixExpr:
		return true
	}
	return false
}

type Error struct {
	Message string
	Got     *Token
}

// Node is a syntax tree node. Text holds the identifier, literal or
// operator the node stands for; it is empty for purely structural nodes.
// Synthetic nodes were invented by error recovery and cover no source.
type Node struct {
	Kind      NodeKind
	Text      string
	Span      Span
	Children  []*Node
	Token     *Token
	Error     *Error
	Synthetic bool
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

func (n *Node) String() string {
	var b strings.Builder
	n.writeIndent(&b, 0, false)
	return b.String()
}

func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.writeIndent(&b, 0, true)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if showPositions {
		b.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Text != "" {
		b.WriteString(" " + n.Text)
	}
	if n.Synthetic {
		b.WriteString(" <missing>")
	}
	if n.Error != nil {
		b.WriteString(" ERROR: " + n.Error.Message)
	}
	b.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}

// Sexp renders the tree as a compact s-expression: operators by their
// symbol, leaves by their text and everything else by kind name.
func (n *Node) Sexp() string {
	var b strings.Builder
	n.writeSexp(&b)
	return b.String()
}

func (n *Node) writeSexp(b *strings.Builder) {
	if len(n.Children) == 0 {
		b.WriteString(n.label())
		return
	}
	b.WriteString("(" + n.label())
	for _, child := range n.Children {
		b.WriteString(" ")
		child.writeSexp(b)
	}
	b.WriteString(")")
}

func (n *Node) label() string {
	switch {
	case n.Synthetic && n.Kind == KindIdentifier:
		return "<missing>"
	case n.Kind.IsOperator() && n.Text != "":
		return n.Text
	case len(n.Children) == 0 && n.Text != "":
		return n.Text
	}
	return n.Kind.String()
}
