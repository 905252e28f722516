package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/niribar/tui/theme"
	"github.com/sirupsen/logrus"
)

// TextFormatter renders entries as
//
//	2026-01-02 15:04:05 [INFO] [engine] message key=value
//
// Fields are sorted. Values containing spaces, such as window titles, are
// quoted so a line stays parseable.
type TextFormatter struct {
	Config FormatConfig
	// Color styles the level and component. Only set when writing to a terminal.
	Color bool
}

// Format renders a single log entry.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	if !f.Config.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}

	level := strings.ToUpper(entry.Level.String())
	if entry.Level == logrus.WarnLevel {
		level = "WARN"
	}
	b.WriteString(f.style(levelStyle(entry.Level), "["+level+"]"))

	if component, ok := entry.Data["component"]; ok && !f.Config.DisableComponent {
		b.WriteString(" [")
		b.WriteString(f.style(theme.DefaultTheme.Accent, fmt.Sprint(component)))
		b.WriteByte(']')
	}

	if entry.HasCaller() {
		fmt.Fprintf(&b, " [%s:%d %s]",
			filepath.Base(entry.Caller.File), entry.Caller.Line, filepath.Base(entry.Caller.Function))
	}

	b.WriteByte(' ')
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "component" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(entry.Data[key]))
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func (f *TextFormatter) style(s lipgloss.Style, text string) string {
	if !f.Color {
		return text
	}
	return s.Render(text)
}

func levelStyle(level logrus.Level) lipgloss.Style {
	t := theme.DefaultTheme
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return t.Error
	case logrus.WarnLevel:
		return t.Warning
	case logrus.InfoLevel:
		return t.Info
	default:
		return t.Muted
	}
}

func formatValue(v interface{}) string {
	s := fmt.Sprint(v)
	if strings.ContainsAny(s, " \t\n\"") {
		return strconv.Quote(s)
	}
	return s
}
