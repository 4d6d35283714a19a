package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// ErrNotFound is reported when a root, application, prefix or file
	// the caller explicitly asked for could not be located.
	ErrNotFound ErrorCode = "NOT_FOUND"

	// ErrValidation is reported when a path the caller supplied does not exist.
	ErrValidation ErrorCode = "VALIDATION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"

	// Release retrieval errors
	ErrAPI      ErrorCode = "API"
	ErrDownload ErrorCode = "DOWNLOAD"
	ErrExtract  ErrorCode = "EXTRACT"
)

// InstallerError represents a structured error with code and details
type InstallerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *InstallerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *InstallerError) Unwrap() error {
	return e.Wrapped
}

// Is matches any InstallerError carrying the same code
func (e *InstallerError) Is(target error) bool {
	var targetErr *InstallerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new InstallerError with the given code and message
func New(code ErrorCode, message string) *InstallerError {
	return &InstallerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new InstallerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *InstallerError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. A nil err yields a nil *InstallerError.
func Wrap(err error, code ErrorCode, message string) *InstallerError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *InstallerError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *InstallerError) WithDetail(key string, value interface{}) *InstallerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var ie *InstallerError
	if errors.As(err, &ie) {
		return ie.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an InstallerError
func GetErrorCode(err error) ErrorCode {
	var ie *InstallerError
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an InstallerError
func GetErrorDetails(err error) map[string]interface{} {
	var ie *InstallerError
	if errors.As(err, &ie) {
		return ie.Details
	}
	return nil
}
