package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"
	ErrorTypeUnsupportedFile ErrorType = "unsupported_file"
	ErrorTypeNetwork         ErrorType = "network"
	ErrorTypeTimeout         ErrorType = "timeout"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeUnavailable     ErrorType = "unavailable"
	ErrorTypeInternal        ErrorType = "internal"
)

var (
	// ErrInvalidArgument matches every caller-input error, unsupported files included.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedFile matches files a driver backend cannot decode.
	ErrUnsupportedFile = errors.New("unsupported file")
)

// parents lists the kinds each kind specializes.
var parents = map[ErrorType][]ErrorType{
	ErrorTypeUnsupportedFile: {ErrorTypeInvalidArgument},
}

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel of this error's kind or of a kind it specializes.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrInvalidArgument:
		return e.IsKind(ErrorTypeInvalidArgument)
	case ErrUnsupportedFile:
		return e.IsKind(ErrorTypeUnsupportedFile)
	}
	if t, ok := target.(*AppError); ok {
		return e.IsKind(t.Type)
	}
	return false
}

// IsKind reports whether the error is of the given kind, directly or by specialization.
func (e *AppError) IsKind(kind ErrorType) bool {
	if e.Type == kind {
		return true
	}
	for _, p := range parents[e.Type] {
		if p == kind {
			return true
		}
	}
	return false
}

// WithDetails attaches a human readable detail string
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidArgument,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewUnsupportedFileError creates an error for a file the backend cannot decode.
// cause is the backend error when there is one.
func NewUnsupportedFileError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupportedFile,
		Message:    message,
		StatusCode: http.StatusUnsupportedMediaType,
		Cause:      cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewUnavailableError creates an error for a driver that cannot be used
func NewUnavailableError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
		Cause:      cause,
	}
}

// IsType checks if the error chain holds an error of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.IsKind(errorType)
	}
	return false
}

// IsUnsupportedFile reports whether err signals an undecodable file.
func IsUnsupportedFile(err error) bool {
	return errors.Is(err, ErrUnsupportedFile)
}

// IsInvalidArgument reports whether err is any caller-input error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
