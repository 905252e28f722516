// Package monitor is a live terminal view of the projected workspace tree.
package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/niribar/internal/projection"
	"github.com/grovetools/niribar/tui/theme"
)

// treeMsg carries a freshly projected tree.
type treeMsg struct {
	tree *projection.Tree
}

// streamEndedMsg is sent once the tree channel is closed.
type streamEndedMsg struct{}

// Model represents the state of the monitor TUI.
type Model struct {
	trees <-chan *projection.Tree

	tree    *projection.Tree
	updates int
	lastAt  time.Time
	ended   bool

	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	theme    *theme.Theme
	width    int
	height   int
	ready    bool
}

// New creates a monitor reading trees from the given channel.
func New(trees <-chan *projection.Tree) *Model {
	return &Model{
		trees: trees,
		keys:  DefaultKeyMap,
		help:  help.New(),
		theme: theme.DefaultTheme,
	}
}

// Init starts listening for trees.
func (m *Model) Init() tea.Cmd {
	return waitForTree(m.trees)
}

// Updates returns how many trees have been received.
func (m *Model) Updates() int {
	return m.updates
}

func waitForTree(trees <-chan *projection.Tree) tea.Cmd {
	return func() tea.Msg {
		tree, ok := <-trees
		if !ok {
			return streamEndedMsg{}
		}
		return treeMsg{tree: tree}
	}
}
