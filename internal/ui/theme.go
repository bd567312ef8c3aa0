package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols.
// Styles are bound to a renderer so color detection follows the writer.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, DoneText                            lipgloss.Style
	BoxUnchecked, BoxChecked                      string
	SymOK, SymFail                                string
}

// ThemeNames lists the accepted theme names, default first.
var ThemeNames = []string{"classic", "neon", "mono"}

// IsTheme reports whether name is one of ThemeNames, ignoring case and
// surrounding space.
func IsTheme(name string) bool {
	return slices.Contains(ThemeNames, strings.ToLower(strings.TrimSpace(name)))
}

// NewTheme builds the named theme. Unknown names fall back to classic.
func NewTheme(r *lipgloss.Renderer, name string) Theme {
	s := r.NewStyle
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		return Theme{
			Title:        s().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        s().Foreground(lipgloss.Color("8")),
			Accent:       s().Foreground(lipgloss.Color("14")),
			Success:      s().Foreground(lipgloss.Color("10")),
			Error:        s().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      s().Foreground(lipgloss.Color("11")),
			Selected:     s().Bold(true).Foreground(lipgloss.Color("13")),
			DoneText:     s().Faint(true).Strikethrough(true),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymOK: "✔", SymFail: "✖",
		}
	case "mono":
		return Theme{
			Title: s(), Muted: s(), Accent: s(), Success: s(), Error: s(), Pending: s(),
			Selected: s().Reverse(true), DoneText: s(),
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymOK: "+", SymFail: "!",
		}
	default: // classic
		return Theme{
			Title:        s().Bold(true),
			Muted:        s().Faint(true),
			Accent:       s().Foreground(lipgloss.Color("12")),
			Success:      s().Foreground(lipgloss.Color("42")),
			Error:        s().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      s().Foreground(lipgloss.Color("214")),
			Selected:     s().Bold(true).Reverse(true),
			DoneText:     s().Faint(true).Strikethrough(true),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymOK: "✔", SymFail: "✖",
		}
	}
}
