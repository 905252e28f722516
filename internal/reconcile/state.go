// Package reconcile keeps a flat mirror of the compositor's workspaces and
// windows up to date from the niri event stream.
package reconcile

import (
	"slices"

	"github.com/grovetools/niribar/errors"
	"github.com/grovetools/niribar/pkg/niri"
)

// State is the flat model. It is owned by a single goroutine; nothing in it is
// safe for concurrent use.
type State struct {
	Workspaces []niri.Workspace
	Windows    []niri.Window

	sawWorkspaces bool
	sawWindows    bool
}

// New returns an empty State.
func New() *State {
	return &State{}
}

// Synced reports whether both a full workspace list and a full window list have
// been applied. Before that, windows may legitimately point at workspaces the
// model does not know yet.
func (s *State) Synced() bool {
	return s.sawWorkspaces && s.sawWindows
}

// Apply mutates the model to reflect one event.
//
// The only error is a REFERENTIAL_INTEGRITY error for an activation of a
// workspace the compositor never announced. Every other miss is a race with a
// wholesale replacement and is ignored, as are events the model does not track.
func (s *State) Apply(ev niri.Event) error {
	switch e := ev.(type) {
	case *niri.WorkspacesChanged:
		s.Workspaces = slices.Clone(e.Workspaces)
		s.sawWorkspaces = true

	case *niri.WorkspaceActivated:
		return s.activateWorkspace(e.ID, e.Focused)

	case *niri.WorkspaceActiveWindowChanged:
		if ws := s.workspace(e.WorkspaceID); ws != nil {
			ws.ActiveWindowID = e.ActiveWindowID
		}

	case *niri.WindowsChanged:
		s.Windows = slices.Clone(e.Windows)
		s.sawWindows = true

	case *niri.WindowOpenedOrChanged:
		if e.Window.IsFocused {
			s.unfocusWindows()
		}
		if w := s.window(e.Window.ID); w != nil {
			*w = e.Window
		} else {
			s.Windows = append(s.Windows, e.Window)
		}

	case *niri.WindowClosed:
		s.Windows = slices.DeleteFunc(s.Windows, func(w niri.Window) bool {
			return w.ID == e.ID
		})

	case *niri.WindowFocusChanged:
		s.unfocusWindows()
		if e.ID != nil {
			if w := s.window(*e.ID); w != nil {
				w.IsFocused = true
			}
		}

	case *niri.KeyboardLayoutsChanged, *niri.KeyboardLayoutSwitched:
		// Layouts are not part of the model.

	default:
		// Unknown and any future kinds.
	}
	return nil
}

func (s *State) activateWorkspace(id uint64, focused bool) error {
	if focused {
		for i := range s.Workspaces {
			s.Workspaces[i].IsFocused = false
		}
	}

	ws := s.workspace(id)
	if ws == nil {
		return errors.UnknownWorkspace("WorkspaceActivated", id)
	}
	ws.IsActive = true
	ws.IsFocused = focused

	if ws.Output == nil {
		return nil
	}
	output := *ws.Output
	for i := range s.Workspaces {
		other := &s.Workspaces[i]
		if other.ID != id && other.Output != nil && *other.Output == output {
			other.IsActive = false
		}
	}
	return nil
}

func (s *State) unfocusWindows() {
	for i := range s.Windows {
		s.Windows[i].IsFocused = false
	}
}

func (s *State) workspace(id uint64) *niri.Workspace {
	for i := range s.Workspaces {
		if s.Workspaces[i].ID == id {
			return &s.Workspaces[i]
		}
	}
	return nil
}

func (s *State) window(id uint64) *niri.Window {
	for i := range s.Windows {
		if s.Windows[i].ID == id {
			return &s.Windows[i]
		}
	}
	return nil
}
