package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/niribar/errors"
	"github.com/grovetools/niribar/logging"
	"github.com/grovetools/niribar/schema"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	pretty  *logging.PrettyLogger
}

// NewErrorHandler creates a new error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return NewErrorHandlerWithWriter(verbose, os.Stderr)
}

// NewErrorHandlerWithWriter creates an error handler writing to w.
func NewErrorHandlerWithWriter(verbose bool, w io.Writer) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		pretty:  logging.NewPrettyLogger().WithWriter(w),
	}
}

// Handle prints a diagnostic for err and returns it unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	e, _ := errors.As(err)

	switch errors.GetCode(err) {
	case errors.ErrCodeReferentialIntegrity:
		h.pretty.ErrorPretty("Compositor state is inconsistent", nil)
		h.pretty.Field("reason", e.Message)
		for _, key := range []string{"operation", "workspace_id", "window_id"} {
			if v, ok := e.Details[key]; ok {
				h.pretty.Field(key, v)
			}
		}

	case errors.ErrCodeSocketNotFound:
		h.pretty.ErrorPretty(e.Message, nil)
		h.pretty.Hint("Is niri running? Pass --wait to block until the socket appears.")

	case errors.ErrCodeSocketConnect:
		h.pretty.ErrorPretty(e.Message, e.Cause)

	case errors.ErrCodeRequestRejected, errors.ErrCodeProtocol:
		h.pretty.ErrorPretty("niri IPC failed", err)

	case errors.ErrCodeConfigNotFound:
		h.pretty.ErrorPretty(e.Message, nil)

	case errors.ErrCodeConfigInvalid:
		h.pretty.ErrorPretty("Invalid configuration", err)
		if path, ok := e.Details["path"]; ok {
			h.pretty.Path("file", fmt.Sprint(path))
		}
		if violations, ok := e.Details["violations"].([]schema.Violation); ok {
			for _, v := range violations {
				h.pretty.Field(v.Path, v.Message)
			}
		}

	default:
		h.pretty.ErrorPretty("Error", err)
	}

	if h.Verbose && e != nil {
		h.pretty.Field("details", e.ToJSON())
	}
	return err
}
