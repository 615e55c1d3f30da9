package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/elemgen/internal/model"
)

// styles renders report lines for one output stream.
type styles struct {
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
	heading lipgloss.Style
	unicode bool
}

func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	s := styles{
		success: r.NewStyle(),
		warning: r.NewStyle(),
		failure: r.NewStyle(),
		muted:   r.NewStyle(),
		heading: r.NewStyle(),
		unicode: supportsUnicode(w),
	}
	if noColor {
		return s
	}

	s.success = s.success.Foreground(lipgloss.Color("42"))
	s.warning = s.warning.Foreground(lipgloss.Color("214"))
	s.failure = s.failure.Foreground(lipgloss.Color("196")).Bold(true)
	s.muted = s.muted.Foreground(lipgloss.Color("244"))
	s.heading = s.heading.Bold(true)
	return s
}

func (s styles) symbol(unicode, fallback string) string {
	if s.unicode {
		return unicode
	}
	return fallback
}

func (s styles) ok(msg string) string {
	return s.success.Render(s.symbol("✔", "OK")) + " " + msg
}

func (s styles) warn(msg string) string {
	return s.warning.Render(s.symbol("⚠", "!")) + " " + msg
}

func (s styles) fail(msg string) string {
	return s.failure.Render(s.symbol("✖", "FAIL")) + " " + msg
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

// renderWarnings prints every collected warning once, after the summary line.
func renderWarnings(w io.Writer, s styles, warnings []model.Warning) {
	if len(warnings) == 0 {
		return
	}

	fmt.Fprintln(w, s.heading.Render(fmt.Sprintf("Warnings (%d):", len(warnings))))
	for _, warning := range warnings {
		line := warning.String()
		if warning.Informational() {
			fmt.Fprintln(w, "  "+s.muted.Render(line))
			continue
		}
		fmt.Fprintln(w, "  "+s.warn(line))
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	return d.Round(time.Millisecond).String()
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
