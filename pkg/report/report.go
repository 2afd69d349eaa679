// Package report writes a check result in the plugin output format.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/modoterra/check-clamav/pkg/core"
)

// Writer renders results to an output stream. Levels are colored only when
// the stream is a terminal; a supervisor reading a pipe gets plain text.
type Writer struct {
	out    io.Writer
	styles map[core.Status]lipgloss.Style
}

// New creates a writer bound to out.
func New(out io.Writer) *Writer {
	r := lipgloss.NewRenderer(out)
	return &Writer{
		out: out,
		styles: map[core.Status]lipgloss.Style{
			core.StatusOK:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
			core.StatusWarning:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
			core.StatusCritical: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
			core.StatusUnknown:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		},
	}
}

// Write prints "<LEVEL>: <message>", with " | <perfdata>" when present, and
// the raw summary block below it when verbose is set.
func (w *Writer) Write(res core.Result, verbose bool) error {
	level := res.Status.String()
	if style, ok := w.styles[res.Status]; ok {
		level = style.Render(level)
	}

	line := fmt.Sprintf("%s: %s", level, res.Message)
	if res.PerfData != "" {
		line += " | " + res.PerfData
	}
	if _, err := fmt.Fprintln(w.out, line); err != nil {
		return err
	}

	if verbose && res.Summary != "" {
		if _, err := fmt.Fprintln(w.out, res.Summary); err != nil {
			return err
		}
	}
	return nil
}
