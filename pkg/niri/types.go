// Package niri speaks the niri compositor IPC protocol: the workspace and window
// models, the event vocabulary, and a unix socket client.
package niri

// Workspace is a niri workspace as reported over IPC.
type Workspace struct {
	ID uint64 `json:"id"`
	// Idx is the position of the workspace on its output. Not unique across outputs.
	Idx  uint8   `json:"idx"`
	Name *string `json:"name"`
	// Output is nil for workspaces that are not placed on any monitor.
	Output         *string `json:"output"`
	IsUrgent       bool    `json:"is_urgent"`
	IsActive       bool    `json:"is_active"`
	IsFocused      bool    `json:"is_focused"`
	ActiveWindowID *uint64 `json:"active_window_id"`
}

// Window is a toplevel window as reported over IPC.
type Window struct {
	ID          uint64  `json:"id"`
	Title       *string `json:"title"`
	AppID       *string `json:"app_id"`
	PID         *int32  `json:"pid"`
	WorkspaceID *uint64 `json:"workspace_id"`
	IsFocused   bool    `json:"is_focused"`
	IsFloating  bool    `json:"is_floating"`
	IsUrgent    bool    `json:"is_urgent"`
}

// Ptr returns a pointer to v. Handy for the optional fields above.
func Ptr[T any](v T) *T {
	return &v
}
