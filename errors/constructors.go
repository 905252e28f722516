package errors

import (
	"fmt"
)

// UnknownWorkspace reports an event that names a workspace the model has never seen.
func UnknownWorkspace(operation string, workspaceID uint64) *Error {
	return New(ErrCodeReferentialIntegrity,
		fmt.Sprintf("%s: workspace %d not found", operation, workspaceID)).
		WithDetail("operation", operation).
		WithDetail("workspace_id", workspaceID)
}

// DanglingWindow reports a tiled window whose workspace is not in the projection.
func DanglingWindow(windowID, workspaceID uint64) *Error {
	return New(ErrCodeReferentialIntegrity,
		fmt.Sprintf("project: window %d references unknown workspace %d", windowID, workspaceID)).
		WithDetail("operation", "project").
		WithDetail("window_id", windowID).
		WithDetail("workspace_id", workspaceID)
}

// SocketNotFound creates a missing socket error
func SocketNotFound(path string) *Error {
	if path == "" {
		return New(ErrCodeSocketNotFound, "niri socket not set: is NIRI_SOCKET exported?")
	}
	return New(ErrCodeSocketNotFound, fmt.Sprintf("niri socket not found: %s", path)).
		WithDetail("path", path)
}

// SocketConnect creates a connection failure error
func SocketConnect(path string, err error) *Error {
	return Wrap(err, ErrCodeSocketConnect, fmt.Sprintf("failed to connect to %s", path)).
		WithDetail("path", path)
}

// Protocol creates an error for a frame that does not match the IPC protocol
func Protocol(reason string, err error) *Error {
	if err == nil {
		return New(ErrCodeProtocol, reason)
	}
	return Wrap(err, ErrCodeProtocol, reason)
}

// RequestRejected creates an error for an {"Err": ...} reply
func RequestRejected(request, reason string) *Error {
	return New(ErrCodeRequestRejected, fmt.Sprintf("niri rejected %s: %s", request, reason)).
		WithDetail("request", request)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}
