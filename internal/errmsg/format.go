// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/glimpse/internal/backend"
	"github.com/llehouerou/glimpse/internal/navigator"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad Op = "load config"
	OpStateOpen  Op = "open state database"
	OpLogOpen    Op = "open log file"
	OpBind       Op = "apply key bindings"
	OpStdinRead  Op = "read image from stdin"
	OpTerminal   Op = "start terminal"

	// Images
	OpImageOpen   Op = "open image"
	OpImageDecode Op = "decode image"
	OpPathAdd     Op = "add path"
	OpWatch       Op = "watch directory"

	// Commands
	OpCommand Op = "run command"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %s", op, describe(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %s", op, context, describe(err))
}

// describe replaces the chain of known sentinels with a short phrase.
func describe(err error) string {
	switch {
	case errors.Is(err, backend.ErrNoBackends):
		return "no image backends installed"
	case errors.Is(err, backend.ErrUnsupported):
		return "unsupported format"
	case errors.Is(err, navigator.ErrEmpty):
		return "no images to show"
	default:
		return err.Error()
	}
}
