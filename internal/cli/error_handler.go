package cli

import (
	"fmt"

	"github.com/charmbracelet/log"

	"taskmaster/internal/errors"
	"taskmaster/internal/validation"
)

// ErrorHandler turns errors from the store and session layers into the
// single line a command prints before exiting non-zero.
type ErrorHandler struct {
	logger *log.Logger
}

// NewErrorHandler creates a handler that records environmental failures on logger
func NewErrorHandler(logger *log.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle prefixes the user message for err with the failed operation. The
// full error chain is logged at debug level when the user cannot fix it.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, ve.GetUserFriendlyMessage())
	}
	if errors.ShouldLogError(err) {
		eh.logger.Debug("command failed", "operation", operation, "code", errors.GetErrorCode(err), "err", err)
	}
	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}
