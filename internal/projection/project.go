package projection

import (
	"cmp"
	"slices"
	"strings"

	"github.com/grovetools/niribar/errors"
	"github.com/grovetools/niribar/internal/reconcile"
)

// Project builds a fresh Tree from the flat model. It never mutates s and the
// result shares no memory with it.
//
// Workspaces without an output and floating or unassigned windows are left out.
// A tiled window that references a workspace absent from the tree is a
// REFERENTIAL_INTEGRITY error once the model is synced; before that it is
// recorded in Tree.Dropped.
func Project(s *reconcile.State) (*Tree, error) {
	tree := &Tree{}

	// workspace id -> (output index, workspace index) while building
	type loc struct{ out, ws int }
	index := make(map[uint64]loc, len(s.Workspaces))

	for _, ws := range s.Workspaces {
		if ws.Output == nil {
			continue
		}
		oi := -1
		for i := range tree.Outputs {
			if tree.Outputs[i].Name == *ws.Output {
				oi = i
				break
			}
		}
		if oi < 0 {
			tree.Outputs = append(tree.Outputs, Output{Name: *ws.Output})
			oi = len(tree.Outputs) - 1
		}

		summary := Workspace{
			ID:       ws.ID,
			Index:    ws.Idx,
			Name:     cloneString(ws.Name),
			IsActive: ws.IsActive,
			Windows:  []Window{},
		}
		// a duplicated id replaces the earlier entry, like a keyed insert
		if l, ok := index[ws.ID]; ok && l.out == oi {
			tree.Outputs[oi].Workspaces[l.ws] = summary
			continue
		}
		tree.Outputs[oi].Workspaces = append(tree.Outputs[oi].Workspaces, summary)
		index[ws.ID] = loc{out: oi, ws: len(tree.Outputs[oi].Workspaces) - 1}
	}

	for _, w := range s.Windows {
		if w.IsFloating || w.WorkspaceID == nil {
			continue
		}
		l, ok := index[*w.WorkspaceID]
		if !ok {
			if s.Synced() {
				return nil, errors.DanglingWindow(w.ID, *w.WorkspaceID)
			}
			tree.Dropped = append(tree.Dropped, w.ID)
			continue
		}
		ws := &tree.Outputs[l.out].Workspaces[l.ws]
		summary := Window{
			ID:        w.ID,
			IsFocused: w.IsFocused,
			Title:     cloneString(w.Title),
		}
		if i := slices.IndexFunc(ws.Windows, func(x Window) bool { return x.ID == w.ID }); i >= 0 {
			ws.Windows[i] = summary
			continue
		}
		ws.Windows = append(ws.Windows, summary)
	}

	sortTree(tree)
	return tree, nil
}

func sortTree(tree *Tree) {
	slices.SortFunc(tree.Outputs, func(a, b Output) int {
		return strings.Compare(a.Name, b.Name)
	})
	for i := range tree.Outputs {
		workspaces := tree.Outputs[i].Workspaces
		slices.SortFunc(workspaces, func(a, b Workspace) int {
			return cmp.Compare(a.ID, b.ID)
		})
		for j := range workspaces {
			slices.SortFunc(workspaces[j].Windows, func(a, b Window) int {
				return cmp.Compare(a.ID, b.ID)
			})
		}
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
