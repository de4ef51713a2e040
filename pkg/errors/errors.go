package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeConfiguration    ErrorType = "configuration"
	ErrorTypeInvalidParameter ErrorType = "invalid_parameter"
	ErrorTypeRequestFailed    ErrorType = "request_failed"
	ErrorTypeNetwork          ErrorType = "network"
	ErrorTypeRateLimit        ErrorType = "rate_limit"
	ErrorTypeParsing          ErrorType = "parsing"
	ErrorTypeUnknown          ErrorType = "unknown"
)

// Error represents an API error with type information. Code holds the HTTP
// status for request failures (0 otherwise), Body the raw response body.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Body    string
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// New creates a typed error without an HTTP status code
func New(errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message}
}

// Newf creates a typed error with a formatted message
func Newf(errorType ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: errorType, Message: fmt.Sprintf(format, args...)}
}

// NewRequestFailed creates an error for a non-success HTTP response,
// preserving the status code and response body for the caller
func NewRequestFailed(statusCode int, body string) *Error {
	errorType := ErrorTypeRequestFailed
	if statusCode == 429 {
		errorType = ErrorTypeRateLimit
	}
	return &Error{
		Type:    errorType,
		Message: fmt.Sprintf("request returned status %d", statusCode),
		Code:    statusCode,
		Body:    body,
	}
}

// IsType checks whether err is (or wraps) an Error of the given type
func IsType(err error, errorType ErrorType) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Type == errorType
	}
	return false
}

// IsRetryable checks if an error type should be retried
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNetwork, ErrorTypeRateLimit:
		return true
	case ErrorTypeConfiguration, ErrorTypeInvalidParameter, ErrorTypeParsing:
		return false
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
	case 500, 502, 503, 504: // Server errors
		return true
	case 400, 401, 403, 404: // Client errors that won't change
		return false
	default:
		return statusCode >= 500 // Retry all 5xx errors
	}
}
