package lsp

import (
	"github.com/dhamidi/groovyparse/groovy/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ToProtocolDiagnostics converts parser diagnostics to LSP diagnostics.
// Each range covers the single character the diagnostic points at.
func ToProtocolDiagnostics(diags []parser.Diagnostic) []protocol.Diagnostic {
	result := make([]protocol.Diagnostic, 0, len(diags))
	source := lsName
	for _, d := range diags {
		severity := protocol.DiagnosticSeverityError
		if d.Severity == parser.SeverityWarning {
			severity = protocol.DiagnosticSeverityWarning
		}
		start := toPosition(parser.Position{Line: d.Line, Column: d.Column})
		end := start
		end.Character++
		result = append(result, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: d.Kind.String()},
			Source:   &source,
			Message:  d.Message,
		})
	}
	return result
}

func toPosition(pos parser.Position) protocol.Position {
	line, col := pos.Line-1, pos.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func toRange(span parser.Span) protocol.Range {
	return protocol.Range{Start: toPosition(span.Start), End: toPosition(span.End)}
}

var symbolKinds = map[parser.NodeKind]protocol.SymbolKind{
	parser.KindClassDef:           protocol.SymbolKindClass,
	parser.KindInterfaceDef:       protocol.SymbolKindInterface,
	parser.KindTraitDef:           protocol.SymbolKindInterface,
	parser.KindAnnotationDef:      protocol.SymbolKindInterface,
	parser.KindEnumDef:            protocol.SymbolKindEnum,
	parser.KindEnumConstantDef:    protocol.SymbolKindEnumMember,
	parser.KindMethodDef:          protocol.SymbolKindMethod,
	parser.KindCtorDef:            protocol.SymbolKindConstructor,
	parser.KindAnnotationFieldDef: protocol.SymbolKindMethod,
	parser.KindVariableDef:        protocol.SymbolKindVariable,
}

// DocumentSymbols builds the outline of a compilation unit: type
// definitions with their members, top-level methods and script
// variables. Nodes without a name, such as those invented by recovery,
// are left out.
func DocumentSymbols(root *parser.Node) []protocol.DocumentSymbol {
	return collectSymbols(root, false)
}

func collectSymbols(parent *parser.Node, inType bool) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for _, child := range parent.Children {
		kind, ok := symbolKinds[child.Kind]
		if !ok {
			continue
		}
		if child.Text == "" || child.Synthetic {
			continue
		}
		if kind == protocol.SymbolKindVariable && inType {
			kind = protocol.SymbolKindField
		}
		sym := protocol.DocumentSymbol{
			Name:           child.Text,
			Kind:           kind,
			Range:          toRange(child.Span),
			SelectionRange: toRange(nameSpan(child)),
		}
		if body := child.FirstChildOfKind(parser.KindObjBlock); body != nil {
			sym.Children = collectSymbols(body, true)
		}
		symbols = append(symbols, sym)
	}
	return symbols
}

func nameSpan(n *parser.Node) parser.Span {
	for _, child := range n.Children {
		if child.Kind == parser.KindIdentifier && child.Text == n.Text {
			return child.Span
		}
	}
	return n.Span
}
