package monitor

import (
	"fmt"
	"strings"

	"github.com/grovetools/niribar/internal/projection"
	"github.com/grovetools/niribar/tui/theme"
)

// View renders the header, the tree and the help line.
func (m *Model) View() string {
	if !m.ready {
		return "Waiting for compositor…"
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) header() string {
	t := m.theme
	title := t.Title.Render("niri workspaces")

	var status string
	switch {
	case m.ended:
		status = t.Warning.Render("stream ended")
	case m.tree == nil:
		status = t.Muted.Render("waiting for events")
	default:
		status = t.Muted.Render(fmt.Sprintf("%d updates, last %s", m.updates, m.lastAt.Format("15:04:05")))
	}
	return title + "  " + status
}

// Render draws a tree as an indented outline.
func Render(tree *projection.Tree, t *theme.Theme) string {
	if tree == nil || len(tree.Outputs) == 0 {
		return t.Muted.Render("no outputs")
	}

	var b strings.Builder
	for i, out := range tree.Outputs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.Output.Render(out.Name))
		b.WriteString("\n")
		for _, ws := range out.Workspaces {
			b.WriteString("  ")
			b.WriteString(workspaceLine(ws, t))
			b.WriteString("\n")
			for _, win := range ws.Windows {
				b.WriteString("      ")
				b.WriteString(windowLine(win, t))
				b.WriteString("\n")
			}
		}
	}
	if len(tree.Dropped) > 0 {
		b.WriteString("\n")
		b.WriteString(t.Warning.Render(fmt.Sprintf("%d window(s) pending workspace data", len(tree.Dropped))))
		b.WriteString("\n")
	}
	return b.String()
}

func workspaceLine(ws projection.Workspace, t *theme.Theme) string {
	label := fmt.Sprintf("%d", ws.Index)
	if ws.Name != nil {
		label += " " + *ws.Name
	}
	label += fmt.Sprintf(" (#%d)", ws.ID)
	if ws.IsActive {
		return t.ActiveWorkspace.Render("● " + label)
	}
	return t.Workspace.Render("○ " + label)
}

func windowLine(win projection.Window, t *theme.Theme) string {
	title := "(untitled)"
	if win.Title != nil {
		title = *win.Title
	}
	label := fmt.Sprintf("%s (#%d)", title, win.ID)
	if win.IsFocused {
		return t.FocusedWindow.Render("▸ " + label)
	}
	return t.Window.Render("  " + label)
}
