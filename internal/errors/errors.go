// Package errors provides error code definitions shared by the coordinators.
package errors

import "fmt"

// ErrorCode represents a stable error code surfaced to the presentation layer.
type ErrorCode string

const (
	// General errors
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrInvalid    ErrorCode = "INVALID_INPUT"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrValidation ErrorCode = "VALIDATION_ERROR"

	// Trigger computation errors
	ErrInvalidDate ErrorCode = "INVALID_DATE"

	// Notification errors
	ErrScheduleFailed ErrorCode = "SCHEDULE_FAILED"

	// Item save errors
	ErrItemSaveFailed ErrorCode = "ITEM_SAVE_FAILED"

	// Restoration errors
	ErrRestoreFailed ErrorCode = "RESTORE_FAILED"

	// Workflow errors
	ErrWorkflowAborted ErrorCode = "WORKFLOW_ABORTED"
	ErrAuthRevoke      ErrorCode = "AUTH_REVOKE_FAILED"

	// Local store errors
	ErrCache ErrorCode = "CACHE_ERROR"
)

// AppError represents an application error with code and message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is checks if an error carries a specific code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// Code extracts the ErrorCode from an error, or ErrInternal for plain errors.
func Code(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrInternal
}
