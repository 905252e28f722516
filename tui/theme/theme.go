// Package theme holds the lipgloss styles shared by niribar's terminal output.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultThemeName = "kanagawa"

// ThemeEnv selects a palette by name.
const ThemeEnv = "NIRIBAR_THEME"

// --- Kanagawa Dragon (dark) palette ---
const (
	kanagawaDarkGreen      = "#98BB6C"
	kanagawaDarkYellow     = "#FF9E3B"
	kanagawaDarkRed        = "#FF5D62"
	kanagawaDarkOrange     = "#FFA066"
	kanagawaDarkCyan       = "#7E9CD8"
	kanagawaDarkViolet     = "#957FB8"
	kanagawaDarkLightText  = "#DCD7BA"
	kanagawaDarkMutedText  = "#727169"
	kanagawaDarkBorder     = "#363646"
	kanagawaDarkSelectedBg = "#223249"
)

// --- Kanagawa Wave (light-inspired) palette ---
const (
	kanagawaLightGreen      = "#4E7C5A"
	kanagawaLightYellow     = "#A68A64"
	kanagawaLightRed        = "#C34043"
	kanagawaLightOrange     = "#CC6B4E"
	kanagawaLightCyan       = "#5B8BBE"
	kanagawaLightViolet     = "#674D7A"
	kanagawaLightLightText  = "#2B2F42"
	kanagawaLightMutedText  = "#6C7086"
	kanagawaLightBorder     = "#B5BDC5"
	kanagawaLightSelectedBg = "#E2E6F3"
)

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen      = "2"
	terminalYellow     = "3"
	terminalRed        = "1"
	terminalOrange     = "208"
	terminalCyan       = "6"
	terminalViolet     = "5"
	terminalLightText  = "7"
	terminalMutedText  = "8"
	terminalBorder     = "8"
	terminalSelectedBg = "8"
)

// Colors encapsulates the palette used by a theme. lipgloss.TerminalColor
// allows a mix of adaptive and static colors.
type Colors struct {
	Green              lipgloss.TerminalColor
	Yellow             lipgloss.TerminalColor
	Red                lipgloss.TerminalColor
	Orange             lipgloss.TerminalColor
	Cyan               lipgloss.TerminalColor
	Violet             lipgloss.TerminalColor
	LightText          lipgloss.TerminalColor
	MutedText          lipgloss.TerminalColor
	Border             lipgloss.TerminalColor
	SelectedBackground lipgloss.TerminalColor
}

// Theme holds the pre-configured styles.
type Theme struct {
	Name   string
	Colors Colors

	// Headers and titles
	Header lipgloss.Style
	Title  lipgloss.Style

	// Status indicators
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Text styles
	Bold   lipgloss.Style
	Normal lipgloss.Style
	Muted  lipgloss.Style

	// Special styles
	Highlight lipgloss.Style
	Accent    lipgloss.Style
	Box       lipgloss.Style

	// Tree styles for the monitor view
	Output          lipgloss.Style
	ActiveWorkspace lipgloss.Style
	Workspace       lipgloss.Style
	FocusedWindow   lipgloss.Style
	Window          lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"kanagawa": newKanagawaColors,
	"terminal": newTerminalColors,
}

var themeAliases = map[string]string{
	"kanagawa-dark":   "kanagawa",
	"kanagawa-dragon": "kanagawa",
	"kanagawa-wave":   "kanagawa",
	"ansi":            "terminal",
}

// DefaultTheme is selected from NIRIBAR_THEME at startup.
var DefaultTheme = NewThemeWithName(os.Getenv(ThemeEnv))

// NewThemeWithName constructs a theme from a palette name. Unknown names fall
// back to the default palette.
func NewThemeWithName(name string) *Theme {
	key := resolveThemeName(name)
	return newThemeFromColors(themeRegistry[key](), key)
}

func newThemeFromColors(colors Colors, name string) *Theme {
	return &Theme{
		Name:   name,
		Colors: colors,

		Header: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Error: lipgloss.NewStyle().
			Foreground(colors.Red).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(colors.Yellow).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(colors.Cyan).
			Bold(true),

		Bold: lipgloss.NewStyle().
			Bold(true),

		Normal: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Faint(true),

		Highlight: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Bold(true),

		Accent: lipgloss.NewStyle().
			Foreground(colors.Violet).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),

		Output: lipgloss.NewStyle().
			Foreground(colors.Cyan).
			Bold(true),

		ActiveWorkspace: lipgloss.NewStyle().
			Foreground(colors.Green).
			Bold(true),

		Workspace: lipgloss.NewStyle().
			Foreground(colors.LightText),

		FocusedWindow: lipgloss.NewStyle().
			Background(colors.SelectedBackground).
			Foreground(colors.Orange),

		Window: lipgloss.NewStyle().
			Foreground(colors.MutedText),
	}
}

func resolveThemeName(name string) string {
	key := normalizeThemeName(name)
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	if _, ok := themeRegistry[key]; ok {
		return key
	}
	return defaultThemeName
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

func newKanagawaColors() Colors {
	return Colors{
		Green:              lipgloss.AdaptiveColor{Light: kanagawaLightGreen, Dark: kanagawaDarkGreen},
		Yellow:             lipgloss.AdaptiveColor{Light: kanagawaLightYellow, Dark: kanagawaDarkYellow},
		Red:                lipgloss.AdaptiveColor{Light: kanagawaLightRed, Dark: kanagawaDarkRed},
		Orange:             lipgloss.AdaptiveColor{Light: kanagawaLightOrange, Dark: kanagawaDarkOrange},
		Cyan:               lipgloss.AdaptiveColor{Light: kanagawaLightCyan, Dark: kanagawaDarkCyan},
		Violet:             lipgloss.AdaptiveColor{Light: kanagawaLightViolet, Dark: kanagawaDarkViolet},
		LightText:          lipgloss.AdaptiveColor{Light: kanagawaLightLightText, Dark: kanagawaDarkLightText},
		MutedText:          lipgloss.AdaptiveColor{Light: kanagawaLightMutedText, Dark: kanagawaDarkMutedText},
		Border:             lipgloss.AdaptiveColor{Light: kanagawaLightBorder, Dark: kanagawaDarkBorder},
		SelectedBackground: lipgloss.AdaptiveColor{Light: kanagawaLightSelectedBg, Dark: kanagawaDarkSelectedBg},
	}
}

func newTerminalColors() Colors {
	return Colors{
		Green:              lipgloss.Color(terminalGreen),
		Yellow:             lipgloss.Color(terminalYellow),
		Red:                lipgloss.Color(terminalRed),
		Orange:             lipgloss.Color(terminalOrange),
		Cyan:               lipgloss.Color(terminalCyan),
		Violet:             lipgloss.Color(terminalViolet),
		LightText:          lipgloss.Color(terminalLightText),
		MutedText:          lipgloss.Color(terminalMutedText),
		Border:             lipgloss.Color(terminalBorder),
		SelectedBackground: lipgloss.Color(terminalSelectedBg),
	}
}
