package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer writes user-facing output with the current theme.
type Printer struct {
	out   io.Writer
	theme Theme
}

// NewPrinter detects color support on out. The mono theme and noColor both
// force plain text.
func NewPrinter(out io.Writer, themeName string, noColor bool) *Printer {
	r := lipgloss.NewRenderer(out)
	if noColor || strings.EqualFold(strings.TrimSpace(themeName), "mono") {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{out: out, theme: NewTheme(r, themeName)}
}

// Theme exposes the styles for renderers that build their own lines.
func (p *Printer) Theme() Theme { return p.theme }

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.out }

func (p *Printer) Println(a ...any) { fmt.Fprintln(p.out, a...) }

func (p *Printer) Printf(format string, a ...any) { fmt.Fprintf(p.out, format, a...) }

// OK prints a success line.
func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.out, p.theme.Success.Render(p.theme.SymOK+" "+msg))
}

// Fail prints a failure line. It goes to the same writer as everything else;
// the shell keeps stderr for log warnings.
func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.out, p.theme.Error.Render(p.theme.SymFail+" "+msg))
}

// Hint prints a muted line.
func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.out, p.theme.Muted.Render(msg))
}
