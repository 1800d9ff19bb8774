package errors

import "fmt"

// ErrorType classifies an AppError. The value doubles as the wire name
// used in log output.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeSession      ErrorType = "session"
	ErrorTypeNetwork      ErrorType = "network"
	ErrorTypeStorage      ErrorType = "storage"
)

func (et ErrorType) String() string {
	if et == "" {
		return "unknown"
	}
	return string(et)
}

// userFacing reports whether the error was caused by what the user typed
// rather than by the environment.
func (et ErrorType) userFacing() bool {
	switch et {
	case ErrorTypeValidation, ErrorTypeInvalidInput, ErrorTypeNotFound, ErrorTypeSession:
		return true
	}
	return false
}

// AppError is the error value passed between the store, the CLI and the
// REST server.
type AppError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Details map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError carrying the same type and code.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && e.Type == other.Type && e.Code == other.Code
}

// With records a detail on the error and returns it for chaining.
func (e *AppError) With(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

// Detail looks up a value recorded with With.
func (e *AppError) Detail(key string) (interface{}, bool) {
	value, ok := e.Details[key]
	return value, ok
}
