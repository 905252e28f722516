package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestNewThemeWithName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "kanagawa"},
		{"kanagawa", "kanagawa"},
		{" Kanagawa_Wave ", "kanagawa"},
		{"terminal", "terminal"},
		{"ANSI", "terminal"},
		{"solarized", "kanagawa"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NewThemeWithName(tt.in).Name)
		})
	}
}

func TestTerminalPaletteIsANSI(t *testing.T) {
	th := NewThemeWithName("terminal")
	assert.Equal(t, lipgloss.Color("2"), th.Colors.Green)
	assert.Equal(t, lipgloss.Color("1"), th.Colors.Red)
}
