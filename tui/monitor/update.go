package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight = 2
	footerHeight = 1
)

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		bodyHeight := max(msg.Height-headerHeight-footerHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = bodyHeight
		}
		m.refresh()
		return m, nil

	case treeMsg:
		m.tree = msg.tree
		m.updates++
		m.lastAt = time.Now()
		m.refresh()
		return m, waitForTree(m.trees)

	case streamEndedMsg:
		m.ended = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(Render(m.tree, m.theme))
}
