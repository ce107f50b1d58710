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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Manifest errors
	ErrManifestLoad  ErrorCode = "MANIFEST_LOAD"
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"

	// Launch stages. A failed launch is always reported with one of these.
	ErrResolve  ErrorCode = "RESOLVE"
	ErrCompile  ErrorCode = "COMPILE"
	ErrStrategy ErrorCode = "STRATEGY"
	ErrSpawn    ErrorCode = "SPAWN"

	// Argument compilation errors
	ErrUnresolvedPlaceholder ErrorCode = "UNRESOLVED_PLACEHOLDER"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// DetailStage is the detail key carrying the launch stage of an error
const DetailStage = "stage"

// LauncherError represents a structured error with code and details
type LauncherError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LauncherError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LauncherError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LauncherError) Is(target error) bool {
	var targetErr *LauncherError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LauncherError with the given code and message
func New(code ErrorCode, message string) *LauncherError {
	return &LauncherError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LauncherError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LauncherError {
	return &LauncherError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LauncherError
func Wrap(err error, code ErrorCode, message string) *LauncherError {
	if err == nil {
		return nil
	}
	return &LauncherError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LauncherError {
	if err == nil {
		return nil
	}
	return &LauncherError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LauncherError) WithDetail(key string, value interface{}) *LauncherError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *LauncherError) WithDetails(details map[string]interface{}) *LauncherError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// AtStage wraps err as a failure of the given launch stage. The stage code
// becomes the outer code; the inner error keeps its own code.
func AtStage(err error, stage ErrorCode, message string) *LauncherError {
	if err == nil {
		return nil
	}
	return Wrap(err, stage, message).WithDetail(DetailStage, string(stage))
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var launcherErr *LauncherError
		if !errors.As(err, &launcherErr) {
			return false
		}
		if launcherErr.Code == code {
			return true
		}
		err = launcherErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LauncherError
func GetErrorCode(err error) ErrorCode {
	var launcherErr *LauncherError
	if errors.As(err, &launcherErr) {
		return launcherErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LauncherError
func GetErrorDetails(err error) map[string]interface{} {
	var launcherErr *LauncherError
	if errors.As(err, &launcherErr) {
		return launcherErr.Details
	}
	return nil
}

// GetStage returns the launch stage recorded on err, or "" when none is
func GetStage(err error) string {
	stage, _ := GetErrorDetails(err)[DetailStage].(string)
	return stage
}
