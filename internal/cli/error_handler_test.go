package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	apperrors "taskmaster/internal/errors"
	"taskmaster/internal/logging"
	"taskmaster/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	ve := validation.NewValidationError()
	ve.AddRequiredError("title")

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "validator result",
			operation: "add todo",
			err:       ve,
			expected:  "failed to add todo: title is required",
		},
		{
			name:      "validation app error",
			operation: "add category",
			err:       apperrors.NewValidationError("name is required", nil),
			expected:  "failed to add category: name is required",
		},
		{
			name:      "not found",
			operation: "show todo",
			err:       apperrors.NewNotFoundError("todo", "a1"),
			expected:  "failed to show todo: todo not found: a1",
		},
		{
			name:      "session",
			operation: "list todos",
			err:       apperrors.NewSessionError("not logged in"),
			expected:  "failed to list todos: not logged in",
		},
		{
			name:      "network",
			operation: "list todos",
			err:       apperrors.NewNetworkError("GET", "/todos", 0, errors.New("connection refused")),
			expected:  "failed to list todos: Could not reach the task server. Please try again.",
		},
		{
			name:      "timeout",
			operation: "list todos",
			err:       fmt.Errorf("fetch: %w", context.DeadlineExceeded),
			expected:  "failed to list todos: fetch: context deadline exceeded",
		},
		{
			name:      "plain error",
			operation: "log out",
			err:       errors.New("permission denied"),
			expected:  "failed to log out: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eh := NewErrorHandler(logging.Discard())
			assert.EqualError(t, eh.Handle(tt.operation, tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_HandleWrapsForeignErrors(t *testing.T) {
	cause := errors.New("disk full")
	err := NewErrorHandler(logging.Discard()).Handle("log in", cause)

	assert.ErrorIs(t, err, cause)
}

func TestErrorHandler_LogsOnlyEnvironmentalFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel, Formatter: log.LogfmtFormatter})
	eh := NewErrorHandler(logger)

	_ = eh.Handle("show todo", apperrors.NewNotFoundError("todo", "a1"))
	assert.Empty(t, buf.String())

	_ = eh.Handle("log in", apperrors.NewStorageError("save session", errors.New("read-only file system")))
	assert.Contains(t, buf.String(), "command failed")
	assert.Contains(t, buf.String(), "operation=\"log in\"")
	assert.Contains(t, buf.String(), "code=STORAGE_ERROR")
}
