package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/crusader2000/sunpy/pkg/pattern"
	"github.com/crusader2000/sunpy/pkg/resolver"
)

// Summary styles use adaptive colors so they read on both light and
// dark terminals.
var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	addStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#a6e3a1"})
	removeStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f38ba8"})
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6e7781", Dark: "#7f849c"})
)

// ColorEnabled reports whether styled output should go to f
func ColorEnabled(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) && !termenv.EnvNoColor()
}

// WriteSummary renders one line per applied directive plus a total.
// With color disabled every style degrades to plain text.
func WriteSummary(w io.Writer, result *resolver.Result, color bool) error {
	render := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	if _, err := fmt.Fprintln(w, render(headerStyle, "Resolution summary")); err != nil {
		return err
	}

	for _, stat := range result.Stats {
		opStyle := addStyle
		sign := "+"
		if stat.Op == pattern.Remove {
			opStyle = removeStyle
			sign = "-"
		}

		line := fmt.Sprintf("  %s %-50s %s",
			render(opStyle, sign),
			stat.Directive.Raw,
			render(dimStyle, fmt.Sprintf("matched %d, changed %d", stat.Matched, stat.Changed)))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	total := fmt.Sprintf("%d file(s) selected", len(result.Files))
	_, err := fmt.Fprintln(w, render(headerStyle, total))
	return err
}
