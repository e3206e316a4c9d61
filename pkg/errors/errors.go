package errors

import "fmt"

// ErrorType classifies failures by how they should be handled
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeStorage     ErrorType = "storage"
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error carries a type tag so callers can decide between surfacing,
// degrading, and retrying
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// NewValidation builds a user-visible validation error. Validation errors
// are the only class surfaced to the caller as failures; everything else
// degrades to a default.
func NewValidation(format string, args ...interface{}) *Error {
	return &Error{Type: ErrorTypeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewStorage builds a storage error. Callers log these and proceed with
// in-memory defaults.
func NewStorage(format string, args ...interface{}) *Error {
	return &Error{Type: ErrorTypeStorage, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrorTypeValidation
}

// IsNotFound reports whether err is a definitive not-found answer.
func IsNotFound(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrorTypeNotFound
}

// IsRetryable checks if an error type should be retried
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNetwork, ErrorTypeRateLimit, ErrorTypeServerError:
		return true
	default:
		return false
	}
}

// IsRetryableStatusCode checks if an HTTP status code indicates a retryable error
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case 0: // Network error
		return true
	case 429: // Too Many Requests
		return true
	case 401, 403, 404:
		return false
	default:
		return statusCode >= 500
	}
}
