package monitor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/niribar/internal/projection"
	"github.com/grovetools/niribar/pkg/niri"
	"github.com/grovetools/niribar/tui/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *projection.Tree {
	return &projection.Tree{Outputs: []projection.Output{
		{Name: "DP-2", Workspaces: []projection.Workspace{{ID: 3, Index: 1}}},
		{Name: "eDP-1", Workspaces: []projection.Workspace{
			{ID: 1, Index: 1, Name: niri.Ptr("web"), IsActive: true, Windows: []projection.Window{
				{ID: 10, IsFocused: true, Title: niri.Ptr("firefox")},
				{ID: 11},
			}},
		}},
	}}
}

func TestRender(t *testing.T) {
	out := Render(sampleTree(), theme.NewThemeWithName("terminal"))

	for _, want := range []string{"DP-2", "eDP-1", "1 web (#1)", "1 (#3)", "firefox (#10)", "(untitled) (#11)"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "DP-2"), strings.Index(out, "eDP-1"), "outputs keep tree order")
}

func TestRenderEmpty(t *testing.T) {
	assert.Contains(t, Render(nil, theme.DefaultTheme), "no outputs")
	assert.Contains(t, Render(&projection.Tree{}, theme.DefaultTheme), "no outputs")
}

func TestRenderDropped(t *testing.T) {
	tree := sampleTree()
	tree.Dropped = []uint64{99}
	assert.Contains(t, Render(tree, theme.DefaultTheme), "1 window(s) pending")
}

func TestModelReceivesTrees(t *testing.T) {
	trees := make(chan *projection.Tree, 1)
	m := New(trees)

	_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Contains(t, m.View(), "waiting for events")

	trees <- sampleTree()
	msg := m.Init()()
	_, cmd := m.Update(msg)
	require.NotNil(t, cmd, "model keeps listening after a tree")
	assert.Equal(t, 1, m.Updates())
	assert.Contains(t, m.View(), "firefox")

	close(trees)
	_, _ = m.Update(cmd())
	assert.Contains(t, m.View(), "stream ended")
}

func TestModelQuit(t *testing.T) {
	m := New(make(chan *projection.Tree))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelBeforeSize(t *testing.T) {
	m := New(make(chan *projection.Tree))
	_, _ = m.Update(treeMsg{tree: sampleTree()})
	assert.Equal(t, "Waiting for compositor…", m.View())
}
