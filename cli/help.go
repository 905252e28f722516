package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/niribar/tui/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const maxWidth = 72
const minWidth = 40

// getTerminalWidth returns the terminal width capped at maxWidth.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth {
		return maxWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// wrapText wraps text to the specified width, preserving existing line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = maxWidth
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			result = append(result, paragraph)
			continue
		}

		var line string
		for _, word := range strings.Fields(paragraph) {
			if line == "" {
				line = word
			} else if len(line)+1+len(word) <= width {
				line += " " + word
			} else {
				result = append(result, line)
				line = word
			}
		}
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// SetStyledHelp applies the themed help output to a command and, through
// cobra's inheritance, to its subcommands.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
}

// parseDescription splits a command's long description into main text and examples.
func parseDescription(long string) (description string, examples string) {
	markers := []string{"\nExamples:\n", "\nExample:\n"}
	for _, marker := range markers {
		if idx := strings.Index(long, marker); idx != -1 {
			return strings.TrimSpace(long[:idx]), strings.TrimSpace(long[idx+len(marker):])
		}
	}
	return long, ""
}

// styleCommandLine applies styling to the parts of an example command.
func styleCommandLine(line, rootCmd string, mainStyle, subStyle, flagStyle lipgloss.Style) string {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return line
	}

	var result []string
	for i, part := range parts {
		switch {
		case i == 0 && part == rootCmd:
			result = append(result, mainStyle.Render(part))
		case i == 1 && !strings.HasPrefix(part, "-"):
			result = append(result, subStyle.Render(part))
		case strings.HasPrefix(part, "-"):
			result = append(result, flagStyle.Render(part))
		default:
			result = append(result, part)
		}
	}
	return "  " + strings.Join(result, " ")
}

func styledHelpFunc(cmd *cobra.Command, args []string) {
	writeHelp(cmd.OutOrStdout(), cmd, theme.DefaultTheme, getTerminalWidth()-2)
}

func writeHelp(w io.Writer, cmd *cobra.Command, t *theme.Theme, width int) {
	cyan := lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Cyan)
	violet := lipgloss.NewStyle().Foreground(t.Colors.Violet)
	section := lipgloss.NewStyle().Italic(true).Foreground(t.Colors.Orange)
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Orange)

	fmt.Fprintln(w, " "+title.Render(strings.ToUpper(cmd.CommandPath())))

	var description, examples string
	if cmd.Long != "" {
		description, examples = parseDescription(cmd.Long)
	} else {
		description = cmd.Short
	}

	if cmd.Short != "" {
		for _, line := range strings.Split(wrapText(cmd.Short, width), "\n") {
			fmt.Fprintln(w, " "+t.Muted.Render(line))
		}
	}
	if description != "" && description != cmd.Short {
		fmt.Fprintln(w)
		for _, line := range strings.Split(wrapText(description, width), "\n") {
			fmt.Fprintln(w, " "+line)
		}
	}

	if cmd.Runnable() || cmd.HasSubCommands() {
		fmt.Fprintln(w, "\n "+section.Render("USAGE"))
		if cmd.Runnable() {
			fmt.Fprintf(w, " %s\n", cmd.UseLine())
		}
		if cmd.HasSubCommands() {
			fmt.Fprintf(w, " %s [command]\n", cmd.CommandPath())
		}
	}

	if cmd.HasAvailableSubCommands() {
		maxLen := 0
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() && len(sub.Name()) > maxLen {
				maxLen = len(sub.Name())
			}
		}

		fmt.Fprintln(w, "\n "+section.Render("COMMANDS"))
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				padding := strings.Repeat(" ", maxLen-len(sub.Name()))
				fmt.Fprintf(w, " %s%s  %s\n", cyan.Render(sub.Name()), padding, sub.Short)
			}
		}
	}

	writeFlags(w, section.Render("FLAGS"), cmd.LocalFlags(), violet, t)
	writeFlags(w, section.Render("GLOBAL FLAGS"), cmd.InheritedFlags(), violet, t)

	if env := envAnnotation(cmd); len(env) > 0 {
		fmt.Fprintln(w, "\n "+section.Render("ENVIRONMENT"))
		for _, line := range env {
			name, desc, _ := strings.Cut(line, "=")
			fmt.Fprintf(w, " %s  %s\n", violet.Render(name), desc)
		}
	}

	exampleText := cmd.Example
	if exampleText == "" {
		exampleText = examples
	}
	if exampleText != "" {
		fmt.Fprintln(w, "\n "+section.Render("EXAMPLES"))
		rootCmd := strings.Split(cmd.CommandPath(), " ")[0]
		for _, line := range strings.Split(exampleText, "\n") {
			trimmed := strings.TrimSpace(line)
			switch {
			case trimmed == "":
				fmt.Fprintln(w)
			case strings.HasPrefix(trimmed, "#"):
				fmt.Fprintln(w, " "+t.Muted.Render(trimmed))
			default:
				fmt.Fprintln(w, " "+styleCommandLine(trimmed, rootCmd, cyan, violet, t.Muted))
			}
		}
	}

	if cmd.HasSubCommands() {
		fmt.Fprintf(w, "\n Use \"%s [command] --help\" for more information.\n", cmd.CommandPath())
	}
}

func writeFlags(w io.Writer, heading string, fs *pflag.FlagSet, nameStyle lipgloss.Style, t *theme.Theme) {
	var visible []*pflag.Flag
	maxLen := 0
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		visible = append(visible, f)
		if l := len(formatFlagName(f)); l > maxLen {
			maxLen = l
		}
	})
	if len(visible) == 0 {
		return
	}

	fmt.Fprintln(w, "\n "+heading)
	for _, f := range visible {
		name := formatFlagName(f)
		usage := f.Usage
		if f.DefValue != "" && f.DefValue != "false" {
			usage += t.Muted.Render(fmt.Sprintf(" (default: %s)", f.DefValue))
		}
		fmt.Fprintf(w, " %s%s  %s\n", nameStyle.Render(name), strings.Repeat(" ", maxLen-len(name)), usage)
	}
}

// EnvAnnotation is the cobra annotation listing environment variables a
// command reads, one "NAME=description" per line.
const EnvAnnotation = "niribar/env"

// envAnnotation returns the variables declared on cmd or its nearest ancestor.
func envAnnotation(cmd *cobra.Command) []string {
	for c := cmd; c != nil; c = c.Parent() {
		if v, ok := c.Annotations[EnvAnnotation]; ok {
			return strings.Split(strings.TrimSpace(v), "\n")
		}
	}
	return nil
}

// formatFlagName returns a formatted flag string like "-f, --flag" or "--flag".
func formatFlagName(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	}
	return fmt.Sprintf("    --%s", f.Name)
}
