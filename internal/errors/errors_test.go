// Package errors tests for error code definitions and error handling.
package errors

import (
	"errors"
	"strings"
	"testing"
)

// TestErrorCodeValues verifies all error codes have non-empty values.
func TestErrorCodeValues(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
	}{
		// General errors
		{"internal", ErrInternal},
		{"invalid", ErrInvalid},
		{"not found", ErrNotFound},
		{"validation", ErrValidation},

		// Trigger errors
		{"invalid date", ErrInvalidDate},

		// Notification errors
		{"schedule failed", ErrScheduleFailed},

		// Item save errors
		{"item save failed", ErrItemSaveFailed},

		// Restoration errors
		{"restore failed", ErrRestoreFailed},

		// Workflow errors
		{"workflow aborted", ErrWorkflowAborted},
		{"auth revoke", ErrAuthRevoke},

		// Local store errors
		{"cache", ErrCache},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code == "" {
				t.Errorf("Error code for %q is empty", tt.name)
			}
		})
	}
}

// TestAppErrorError verifies the error string format.
func TestAppErrorError(t *testing.T) {
	err := New(ErrInvalidDate, "deadline must not be zero")
	want := "[INVALID_DATE] deadline must not be zero"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// TestAppErrorErrorWithWrapped verifies the error string includes the cause.
func TestAppErrorErrorWithWrapped(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(ErrItemSaveFailed, "metadata save failed", cause)

	got := err.Error()
	if !strings.Contains(got, "ITEM_SAVE_FAILED") {
		t.Errorf("Error() = %q, missing code", got)
	}
	if !strings.Contains(got, "connection reset") {
		t.Errorf("Error() = %q, missing cause", got)
	}
}

// TestAppErrorUnwrap verifies errors.Is works through AppError.
func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrCache, "purge failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap() did not return the cause")
	}
}

// TestIs verifies code matching.
func TestIs(t *testing.T) {
	err := New(ErrWorkflowAborted, "step 3 failed")

	if !Is(err, ErrWorkflowAborted) {
		t.Error("Is(err, ErrWorkflowAborted) = false, want true")
	}
	if Is(err, ErrCache) {
		t.Error("Is(err, ErrCache) = true, want false")
	}
	if Is(errors.New("plain"), ErrCache) {
		t.Error("Is(plain, ErrCache) = true, want false")
	}
}

// TestCode verifies code extraction.
func TestCode(t *testing.T) {
	if got := Code(New(ErrRestoreFailed, "x")); got != ErrRestoreFailed {
		t.Errorf("Code() = %v, want %v", got, ErrRestoreFailed)
	}
	if got := Code(errors.New("plain")); got != ErrInternal {
		t.Errorf("Code(plain) = %v, want %v", got, ErrInternal)
	}
}
