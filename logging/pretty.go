package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/niribar/tui/theme"
)

// PrettyLogger writes diagnostics meant for a person reading the terminal,
// as opposed to the structured log lines. Output goes to stderr by default.
type PrettyLogger struct {
	writer io.Writer
	theme  *theme.Theme
}

// NewPrettyLogger creates a pretty logger writing to stderr with the active theme.
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{writer: os.Stderr, theme: theme.DefaultTheme}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

// ErrorPretty prints a failure headline, followed by err when it is not nil.
func (p *PrettyLogger) ErrorPretty(message string, err error) {
	line := p.theme.Error.Bold(true).Render("✗ " + message)
	if err != nil {
		line += p.theme.Error.Render(": " + err.Error())
	}
	fmt.Fprintln(p.writer, line)
}

// Hint prints a suggestion below a failure.
func (p *PrettyLogger) Hint(message string) {
	fmt.Fprintln(p.writer, "  "+p.theme.Info.Render(message))
}

// Field prints an indented key-value pair.
func (p *PrettyLogger) Field(key string, value interface{}) {
	fmt.Fprintf(p.writer, "  %s: %s\n",
		p.theme.Muted.Render(key),
		p.theme.Accent.Render(fmt.Sprint(value)))
}

// Path prints a labelled file path.
func (p *PrettyLogger) Path(label string, path string) {
	fmt.Fprintf(p.writer, "  %s: %s\n",
		p.theme.Muted.Render(label),
		p.theme.Accent.Italic(true).Render(path))
}
