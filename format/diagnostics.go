package format

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/groovyparse/groovy/parser"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var ColorModes = []string{"auto", "always", "never"}

// DiagnosticPrinter writes diagnostics as file:line:col: severity: message
// lines, colored when the mode asks for it.
type DiagnosticPrinter struct {
	w        io.Writer
	location *color.Color
	errColor *color.Color
	warning  *color.Color
}

// NewDiagnosticPrinter returns a printer for w. In mode "auto" color is
// used only when w is a terminal and NO_COLOR is unset.
func NewDiagnosticPrinter(w io.Writer, mode string) *DiagnosticPrinter {
	dp := &DiagnosticPrinter{
		w:        w,
		location: color.New(color.Bold),
		errColor: color.New(color.FgRed, color.Bold),
		warning:  color.New(color.FgYellow),
	}
	enabled := useColor(w, mode)
	for _, c := range []*color.Color{dp.location, dp.errColor, dp.warning} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return dp
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (dp *DiagnosticPrinter) Print(d parser.Diagnostic) error {
	file := d.File
	if file == "" {
		file = "<input>"
	}
	severity := dp.errColor
	if d.Severity == parser.SeverityWarning {
		severity = dp.warning
	}
	_, err := fmt.Fprintf(dp.w, "%s %s %s\n",
		dp.location.Sprintf("%s:%d:%d:", file, d.Line, d.Column),
		severity.Sprintf("%s:", d.Severity),
		d.Message,
	)
	return err
}

// PrintAll prints every diagnostic in order. Warnings are skipped unless
// warnings is set.
func (dp *DiagnosticPrinter) PrintAll(diags []parser.Diagnostic, warnings bool) error {
	for _, d := range diags {
		if d.Severity == parser.SeverityWarning && !warnings {
			continue
		}
		if err := dp.Print(d); err != nil {
			return err
		}
	}
	return nil
}
