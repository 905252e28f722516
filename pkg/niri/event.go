package niri

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Event is one compositor event from the event stream.
//
// The set of implementations is closed; events this package does not model are
// delivered as Unknown.
type Event interface {
	Kind() string
	isEvent()
}

// WorkspacesChanged replaces the whole workspace configuration. Workspaces missing
// from the list were deleted.
type WorkspacesChanged struct {
	Workspaces []Workspace `json:"workspaces"`
}

// WorkspaceActivated reports that a workspace became the active one on its output.
// If Focused is set it is also the single focused workspace.
type WorkspaceActivated struct {
	ID      uint64 `json:"id"`
	Focused bool   `json:"focused"`
}

// WorkspaceActiveWindowChanged reports a new active window on a workspace.
type WorkspaceActiveWindowChanged struct {
	WorkspaceID    uint64  `json:"workspace_id"`
	ActiveWindowID *uint64 `json:"active_window_id"`
}

// WindowsChanged replaces the whole window configuration.
type WindowsChanged struct {
	Windows []Window `json:"windows"`
}

// WindowOpenedOrChanged carries a new or updated window. If the window is
// focused, all other windows are no longer focused.
type WindowOpenedOrChanged struct {
	Window Window `json:"window"`
}

// WindowClosed reports a closed toplevel window.
type WindowClosed struct {
	ID uint64 `json:"id"`
}

// WindowFocusChanged reports the newly focused window, or nil if no window has
// focus anymore.
type WindowFocusChanged struct {
	ID *uint64 `json:"id"`
}

// KeyboardLayoutsChanged reports a new keyboard layout configuration.
type KeyboardLayoutsChanged struct {
	KeyboardLayouts KeyboardLayouts `json:"keyboard_layouts"`
}

// KeyboardLayouts lists configured layout names and the current index.
type KeyboardLayouts struct {
	Names      []string `json:"names"`
	CurrentIdx uint8    `json:"current_idx"`
}

// KeyboardLayoutSwitched reports a switch to another configured layout.
type KeyboardLayoutSwitched struct {
	Idx uint8 `json:"idx"`
}

// Unknown is any event kind not modelled above: urgency, layout, overview,
// config and screenshot events as well as kinds added by newer compositors.
type Unknown struct {
	Name string
	Raw  json.RawMessage
}

func (*WorkspacesChanged) Kind() string            { return "WorkspacesChanged" }
func (*WorkspaceActivated) Kind() string           { return "WorkspaceActivated" }
func (*WorkspaceActiveWindowChanged) Kind() string { return "WorkspaceActiveWindowChanged" }
func (*WindowsChanged) Kind() string               { return "WindowsChanged" }
func (*WindowOpenedOrChanged) Kind() string        { return "WindowOpenedOrChanged" }
func (*WindowClosed) Kind() string                 { return "WindowClosed" }
func (*WindowFocusChanged) Kind() string           { return "WindowFocusChanged" }
func (*KeyboardLayoutsChanged) Kind() string       { return "KeyboardLayoutsChanged" }
func (*KeyboardLayoutSwitched) Kind() string       { return "KeyboardLayoutSwitched" }
func (u *Unknown) Kind() string                    { return u.Name }

func (*WorkspacesChanged) isEvent()            {}
func (*WorkspaceActivated) isEvent()           {}
func (*WorkspaceActiveWindowChanged) isEvent() {}
func (*WindowsChanged) isEvent()               {}
func (*WindowOpenedOrChanged) isEvent()        {}
func (*WindowClosed) isEvent()                 {}
func (*WindowFocusChanged) isEvent()           {}
func (*KeyboardLayoutsChanged) isEvent()       {}
func (*KeyboardLayoutSwitched) isEvent()       {}
func (*Unknown) isEvent()                      {}

// DecodeEvent decodes one externally tagged event, e.g.
// {"WindowClosed":{"id":3}}.
func DecodeEvent(data []byte) (Event, error) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if len(tagged) != 1 {
		return nil, fmt.Errorf("decode event: expected exactly one tag, got %d", len(tagged))
	}

	var (
		kind string
		body json.RawMessage
	)
	for k, v := range tagged {
		kind, body = k, v
	}

	var ev Event
	switch kind {
	case "WorkspacesChanged":
		ev = &WorkspacesChanged{}
	case "WorkspaceActivated":
		ev = &WorkspaceActivated{}
	case "WorkspaceActiveWindowChanged":
		ev = &WorkspaceActiveWindowChanged{}
	case "WindowsChanged":
		ev = &WindowsChanged{}
	case "WindowOpenedOrChanged":
		ev = &WindowOpenedOrChanged{}
	case "WindowClosed":
		ev = &WindowClosed{}
	case "WindowFocusChanged":
		ev = &WindowFocusChanged{}
	case "KeyboardLayoutsChanged":
		ev = &KeyboardLayoutsChanged{}
	case "KeyboardLayoutSwitched":
		ev = &KeyboardLayoutSwitched{}
	default:
		return &Unknown{Name: kind, Raw: bytes.Clone(body)}, nil
	}

	if err := json.Unmarshal(body, ev); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return ev, nil
}
