package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*app
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestApp(t *testing.T, files map[string]string) *testApp {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	ta := &testApp{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	ta.app = &app{
		fs:     fs,
		v:      viper.New(),
		stdin:  strings.NewReader(""),
		stdout: ta.out,
		stderr: ta.err,
	}
	return ta
}

func (ta *testApp) run(args ...string) error {
	cmd := newRootCmd(ta.app)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "sexp",
			args: []string{"parse", "-f", "sexp", "/src/a.groovy"},
			want: "(CompilationUnit (ExprStmt (= x (+ 1 2))))\n",
		},
		{
			name: "tree",
			args: []string{"parse", "/src/a.groovy"},
			want: "CompilationUnit\n  ExprStmt\n    AssignExpr =\n      Identifier x\n      BinaryExpr +\n        Literal 1\n        Literal 2\n",
		},
		{
			name: "snippet",
			args: []string{"parse", "--snippet", "-f", "sexp", "/src/a.groovy"},
			want: "(Snippet (ExprStmt (= x (+ 1 2))))\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, map[string]string{"/src/a.groovy": "x = 1 + 2\n"})
			require.NoError(t, ta.run(tt.args...))
			assert.Equal(t, tt.want, ta.out.String())
			assert.Empty(t, ta.err.String())
		})
	}
}

func TestParseCommandJSON(t *testing.T) {
	ta := newTestApp(t, map[string]string{"/src/a.groovy": "x\n"})
	require.NoError(t, ta.run("parse", "--format", "json", "/src/a.groovy"))
	assert.Contains(t, ta.out.String(), `"kind": "CompilationUnit"`)
	assert.Contains(t, ta.out.String(), `"file": "/src/a.groovy"`)
}

func TestParseCommandReadsStdin(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.stdin = strings.NewReader("println 1, 2")
	require.NoError(t, ta.run("parse", "--expression", "-f", "sexp", "-"))
	assert.Equal(t, "(MethodCall println (ArgumentList 1 2))\n", ta.out.String())
}

func TestParseCommandPrintsDiagnostics(t *testing.T) {
	ta := newTestApp(t, map[string]string{"/src/bad.groovy": "foo(1 + )\n"})
	require.NoError(t, ta.run("parse", "-f", "sexp", "/src/bad.groovy"))
	assert.Contains(t, ta.err.String(), "/src/bad.groovy:1:9: error:")
}

func TestParseCommandRejectsUnknownFormat(t *testing.T) {
	ta := newTestApp(t, map[string]string{"/src/a.groovy": "x\n"})
	err := ta.run("parse", "-f", "xml", "/src/a.groovy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
}

func TestParseCommandMissingFile(t *testing.T) {
	ta := newTestApp(t, nil)
	err := ta.run("parse", "/src/absent.groovy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read /src/absent.groovy")
}

func TestCheckCommand(t *testing.T) {
	files := map[string]string{
		"/src/ok.groovy":   "class A {\n    def run() { println 'hi' }\n}\n",
		"/src/bad1.groovy": "def x = (1 +\n",
		"/src/bad2.groovy": "foo(\n",
	}

	t.Run("clean", func(t *testing.T) {
		ta := newTestApp(t, files)
		require.NoError(t, ta.run("check", "/src/ok.groovy"))
		assert.Empty(t, ta.out.String())
	})

	t.Run("errors keep input order", func(t *testing.T) {
		ta := newTestApp(t, files)
		err := ta.run("check", "-j", "2", "/src/bad2.groovy", "/src/ok.groovy", "/src/bad1.groovy")
		require.ErrorIs(t, err, errSyntax)

		out := ta.out.String()
		first := strings.Index(out, "/src/bad2.groovy:")
		second := strings.Index(out, "/src/bad1.groovy:")
		require.NotEqual(t, -1, first)
		require.NotEqual(t, -1, second)
		assert.Less(t, first, second)
		assert.NotContains(t, out, "/src/ok.groovy")
		assert.Contains(t, ta.err.String(), "2 of 3 files have syntax errors")
	})
}

func TestTokensCommand(t *testing.T) {
	ta := newTestApp(t, map[string]string{"/src/a.groovy": "x = 1"})
	require.NoError(t, ta.run("tokens", "/src/a.groovy"))
	lines := strings.Split(strings.TrimSpace(ta.out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "1:1-1:2\tIdent\t\"x\"", lines[0])
	assert.Equal(t, "1:5-1:6\tIntLiteral\t\"1\"", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "1:6-1:6\tEOF"))
}

func TestConfigFileSelectsFormat(t *testing.T) {
	ta := newTestApp(t, map[string]string{"/src/a.groovy": "x\n"})
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), "groovyparse.yaml", []byte("output:\n  format: sexp\n"), 0o644))
	require.NoError(t, ta.run("parse", "/src/a.groovy"))
	assert.Equal(t, "(CompilationUnit (ExprStmt x))\n", ta.out.String())
}
