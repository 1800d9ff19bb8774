package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *AppError
		typ     ErrorType
		code    string
		message string
	}{
		{"validation", NewValidationError("title is required", nil), ErrorTypeValidation, "VALIDATION_FAILED", "title is required"},
		{"invalid input", NewInvalidInputError("priority", "urgent", "must be LOW, MEDIUM or HIGH"), ErrorTypeInvalidInput, "INVALID_INPUT", "invalid priority: must be LOW, MEDIUM or HIGH"},
		{"not found", NewNotFoundError("todo", "t1"), ErrorTypeNotFound, "NOT_FOUND", "todo not found: t1"},
		{"session", NewSessionError("not logged in"), ErrorTypeSession, "NOT_AUTHENTICATED", "not logged in"},
		{"storage", NewStorageError("save session", nil), ErrorTypeStorage, "STORAGE_ERROR", "could not save session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.err.Type)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.message, tt.err.Message)
		})
	}
}

func TestNewNotFoundError_Details(t *testing.T) {
	err := NewNotFoundError("category", "c9")

	resource, _ := err.Detail("resource")
	id, _ := err.Detail("id")
	assert.Equal(t, "category", resource)
	assert.Equal(t, "c9", id)
}

func TestNewNetworkError(t *testing.T) {
	t.Run("with status", func(t *testing.T) {
		err := NewNetworkError(http.MethodPut, "/todos/t1", 404, nil)

		assert.Equal(t, "PUT /todos/t1 returned 404", err.Message)
		status, _ := err.Detail("status")
		assert.Equal(t, 404, status)
	})

	t.Run("transport failure", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewNetworkError(http.MethodGet, "/todos", 0, cause)

		assert.Equal(t, "GET /todos failed", err.Message)
		assert.ErrorIs(t, err, cause)
	})
}

func TestAsAppErrorAndIsErrorType(t *testing.T) {
	wrapped := fmt.Errorf("resolving: %w", NewNotFoundError("todo", "x"))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeNotFound, appErr.Type)
	assert.True(t, IsErrorType(wrapped, ErrorTypeNotFound))
	assert.False(t, IsErrorType(wrapped, ErrorTypeNetwork))

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsErrorType(nil, ErrorTypeNotFound))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"user errors keep their message", NewNotFoundError("todo", "t1"), "todo not found: t1"},
		{"session", NewSessionError("not logged in; run `tm login` first"), "not logged in; run `tm login` first"},
		{"network", NewNetworkError(http.MethodGet, "/todos", 500, nil), "Could not reach the task server. Please try again."},
		{"storage", NewStorageError("open database", errors.New("locked")), "A storage error occurred. Please try again."},
		{"unknown type", &AppError{Message: "odd"}, "An unexpected error occurred. Please try again."},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), "The operation timed out. Please try again."},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetUserMessage(tt.err))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, "NETWORK_ERROR", GetErrorCode(NewNetworkError(http.MethodGet, "/todos", 0, nil)))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("boom")))
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewValidationError("bad", nil)))
	assert.False(t, ShouldLogError(NewSessionError("not logged in")))
	assert.True(t, ShouldLogError(NewStorageError("open database", nil)))
	assert.True(t, ShouldLogError(errors.New("boom")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NewValidationError("bad", nil), http.StatusBadRequest},
		{NewInvalidInputError("status", "x", "unknown"), http.StatusBadRequest},
		{NewNotFoundError("todo", "t1"), http.StatusNotFound},
		{NewSessionError("no"), http.StatusUnauthorized},
		{NewStorageError("insert todo", nil), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
