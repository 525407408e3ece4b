package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors. ErrConfigNotFound is the only non-fatal one: a
	// directory without a descriptor inherits its parent's configuration.
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigRead     ErrorCode = "CONFIG_READ"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrConfigWrite    ErrorCode = "CONFIG_WRITE"

	// Planning errors
	ErrPackageNotFound   ErrorCode = "PACKAGE_NOT_FOUND"
	ErrWalk              ErrorCode = "WALK"
	ErrEmptyPlan         ErrorCode = "EMPTY_PLAN"
	ErrCircularReference ErrorCode = "CIRCULAR_REFERENCE"

	// Execution errors
	ErrTargetExists ErrorCode = "TARGET_EXISTS"
	ErrAdoptSymlink ErrorCode = "ADOPT_SYMLINK"
	ErrLinkIO       ErrorCode = "LINK_IO"
)

// BubError represents a structured error with code and details
type BubError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BubError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BubError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a BubError with the same code
func (e *BubError) Is(target error) bool {
	var targetErr *BubError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BubError with the given code and message
func New(code ErrorCode, message string) *BubError {
	return &BubError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BubError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BubError {
	return &BubError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BubError
func Wrap(err error, code ErrorCode, message string) *BubError {
	if err == nil {
		return nil
	}
	return &BubError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BubError {
	if err == nil {
		return nil
	}
	return &BubError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BubError) WithDetail(key string, value interface{}) *BubError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *BubError) WithDetails(details map[string]interface{}) *BubError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var bubErr *BubError
	if errors.As(err, &bubErr) {
		return bubErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BubError
func GetErrorCode(err error) ErrorCode {
	var bubErr *BubError
	if errors.As(err, &bubErr) {
		return bubErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BubError
func GetErrorDetails(err error) map[string]interface{} {
	var bubErr *BubError
	if errors.As(err, &bubErr) {
		return bubErr.Details
	}
	return nil
}
