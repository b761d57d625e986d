package lsp

import (
	"strings"
	"testing"

	"github.com/dhamidi/groovyparse/groovy/parser"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notification struct {
	method string
	params protocol.PublishDiagnosticsParams
}

func recordingContext(t *testing.T, sent *[]notification) *glsp.Context {
	t.Helper()
	return &glsp.Context{
		Notify: func(method string, params any) {
			p, ok := params.(protocol.PublishDiagnosticsParams)
			require.True(t, ok, "unexpected params %T", params)
			*sent = append(*sent, notification{method: method, params: p})
		},
	}
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	var sent []notification
	ctx := recordingContext(t, &sent)
	ls := NewServer("test", afero.NewMemMapFs(), false)

	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///w/a.groovy", Text: "def x = (1 +\n"},
	})
	require.NoError(t, err)

	require.Len(t, sent, 1)
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, sent[0].method)
	assert.Equal(t, "file:///w/a.groovy", sent[0].params.URI)
	require.NotEmpty(t, sent[0].params.Diagnostics)
	d := sent[0].params.Diagnostics[0]
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
}

func TestDidChangeAndCloseClearDiagnostics(t *testing.T) {
	var sent []notification
	ctx := recordingContext(t, &sent)
	ls := NewServer("test", afero.NewMemMapFs(), false)
	uri := "file:///w/b.groovy"

	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "foo(\n"},
	}))
	require.NoError(t, ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "foo()\n"}},
	}))
	require.NoError(t, ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))

	require.Len(t, sent, 3)
	assert.NotEmpty(t, sent[0].params.Diagnostics)
	assert.Empty(t, sent[1].params.Diagnostics)
	assert.NotNil(t, sent[2].params.Diagnostics, "clearing sends an empty list, not null")
	assert.Empty(t, sent[2].params.Diagnostics)
}

func TestDidSaveReadsFromFilesystem(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/w/c.groovy", []byte("class {\n"), 0o644))

	var sent []notification
	ctx := recordingContext(t, &sent)
	ls := NewServer("test", fs, false)

	require.NoError(t, ls.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///w/c.groovy"},
	}))
	require.Len(t, sent, 1)
	assert.NotEmpty(t, sent[0].params.Diagnostics)
}

func TestInitializeAdvertisesFullSync(t *testing.T) {
	ls := NewServer("1.2.3", afero.NewMemMapFs(), false)
	result, err := ls.initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	init, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	require.NotNil(t, init.ServerInfo)
	assert.Equal(t, "groovyparse", init.ServerInfo.Name)
	sync, ok := init.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *sync.Change)
}

func TestToProtocolDiagnostics(t *testing.T) {
	got := ToProtocolDiagnostics([]parser.Diagnostic{
		{Severity: parser.SeverityError, Kind: parser.LexicalMismatch, Message: "bad", Line: 3, Column: 7},
		{Severity: parser.SeverityWarning, Kind: parser.Style, Message: "meh", Line: 1, Column: 1},
	})
	require.Len(t, got, 2)

	assert.Equal(t, protocol.Position{Line: 2, Character: 6}, got[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 2, Character: 7}, got[0].Range.End)
	assert.Equal(t, protocol.DiagnosticSeverityError, *got[0].Severity)
	assert.Equal(t, "lexical-mismatch", got[0].Code.Value)
	assert.Equal(t, "bad", got[0].Message)

	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, got[1].Range.Start)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *got[1].Severity)
}

func TestDocumentSymbols(t *testing.T) {
	src := `class Greeter {
    String name
    Greeter() {}
    def greet() { println name }
}
enum Color { RED, GREEN }
def helper() {}
def count = 1
`
	p := parser.ParseCompilationUnit(strings.NewReader(src))
	symbols := DocumentSymbols(p.Finish())

	type entry struct {
		name string
		kind protocol.SymbolKind
	}
	var top []entry
	for _, s := range symbols {
		top = append(top, entry{s.Name, s.Kind})
	}
	assert.Equal(t, []entry{
		{"Greeter", protocol.SymbolKindClass},
		{"Color", protocol.SymbolKindEnum},
		{"helper", protocol.SymbolKindMethod},
		{"count", protocol.SymbolKindVariable},
	}, top)

	var members []entry
	for _, s := range symbols[0].Children {
		members = append(members, entry{s.Name, s.Kind})
	}
	assert.Equal(t, []entry{
		{"name", protocol.SymbolKindField},
		{"Greeter", protocol.SymbolKindConstructor},
		{"greet", protocol.SymbolKindMethod},
	}, members)

	require.Len(t, symbols[1].Children, 2)
	assert.Equal(t, protocol.SymbolKindEnumMember, symbols[1].Children[0].Kind)
	assert.Equal(t, protocol.Position{Line: 0, Character: 6}, symbols[0].SelectionRange.Start)
}
