// Package errors defines the typed application errors shared by every layer
// of taskmaster.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

func newError(errorType ErrorType, code, message string, cause error) *AppError {
	return &AppError{Type: errorType, Code: code, Message: message, Cause: cause}
}

// NewValidationError reports input rejected by a validator.
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, "VALIDATION_FAILED", message, cause)
}

// NewInvalidInputError reports a single malformed field value.
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, "INVALID_INPUT",
		fmt.Sprintf("invalid %s: %s", field, reason), nil).
		With("field", field).
		With("value", value)
}

// NewNotFoundError reports a todo, category or subtask that does not exist.
func NewNotFoundError(resource, id string) *AppError {
	return newError(ErrorTypeNotFound, "NOT_FOUND",
		fmt.Sprintf("%s not found: %s", resource, id), nil).
		With("resource", resource).
		With("id", id)
}

// NewSessionError refuses a command that needs a logged in user.
func NewSessionError(message string) *AppError {
	return newError(ErrorTypeSession, "NOT_AUTHENTICATED", message, nil)
}

// NewNetworkError reports a failed request against the remote collection.
// statusCode is 0 when no response arrived.
func NewNetworkError(method, path string, statusCode int, cause error) *AppError {
	message := fmt.Sprintf("%s %s failed", method, path)
	if statusCode != 0 {
		message = fmt.Sprintf("%s %s returned %d", method, path, statusCode)
	}
	return newError(ErrorTypeNetwork, "NETWORK_ERROR", message, cause).
		With("method", method).
		With("status", statusCode)
}

// NewStorageError reports a failed read or write of local state: the session
// file or the server database.
func NewStorageError(operation string, cause error) *AppError {
	return newError(ErrorTypeStorage, "STORAGE_ERROR", "could not "+operation, cause).
		With("operation", operation)
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType reports whether err's chain holds an AppError of the given type.
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == errorType
}

// GetUserMessage renders err for a terminal or an HTTP client. Errors caused
// by user input keep their message; environmental failures get a generic line.
func GetUserMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "The operation timed out. Please try again."
	}
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	switch {
	case appErr.Type.userFacing():
		return appErr.Message
	case appErr.Type == ErrorTypeNetwork:
		return "Could not reach the task server. Please try again."
	case appErr.Type == ErrorTypeStorage:
		return "A storage error occurred. Please try again."
	}
	return "An unexpected error occurred. Please try again."
}

// GetErrorCode returns the AppError code, or UNKNOWN_ERROR for foreign errors.
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError is false for errors the user caused and can fix.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	return !ok || !appErr.Type.userFacing()
}

// HTTPStatus maps err to the status the REST server answers with.
func HTTPStatus(err error) int {
	appErr, ok := AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeSession:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
