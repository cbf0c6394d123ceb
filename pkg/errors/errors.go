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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Manifest errors
	ErrManifestRead     ErrorCode = "MANIFEST_READ"
	ErrInvalidDirective ErrorCode = "INVALID_DIRECTIVE"
	ErrPatternSyntax    ErrorCode = "PATTERN_SYNTAX"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
)

// SdistError represents a structured error with code and details
type SdistError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SdistError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SdistError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SdistError) Is(target error) bool {
	var targetErr *SdistError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SdistError with the given code and message
func New(code ErrorCode, message string) *SdistError {
	return &SdistError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SdistError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SdistError {
	return &SdistError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SdistError
func Wrap(err error, code ErrorCode, message string) *SdistError {
	if err == nil {
		return nil
	}
	return &SdistError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SdistError {
	if err == nil {
		return nil
	}
	return &SdistError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SdistError) WithDetail(key string, value interface{}) *SdistError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *SdistError) WithDetails(details map[string]interface{}) *SdistError {
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
	var sdistErr *SdistError
	if errors.As(err, &sdistErr) {
		return sdistErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SdistError
func GetErrorCode(err error) ErrorCode {
	var sdistErr *SdistError
	if errors.As(err, &sdistErr) {
		return sdistErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SdistError
func GetErrorDetails(err error) map[string]interface{} {
	var sdistErr *SdistError
	if errors.As(err, &sdistErr) {
		return sdistErr.Details
	}
	return nil
}
