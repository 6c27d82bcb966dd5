// Package uuid provides UUID v4 generation and validation for item ids.
package uuid

import (
	"fmt"

	"github.com/google/uuid"
)

// New generates a new UUID v4 string.
func New() string {
	return uuid.New().String()
}

// IsValid reports whether s is a well-formed UUID v4 in canonical form.
func IsValid(s string) bool {
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.Version() == 4 && id.String() == s
}

// Validate returns an error if s is not a valid UUID v4.
func Validate(s string) error {
	if !IsValid(s) {
		return fmt.Errorf("invalid UUID v4: %q", s)
	}
	return nil
}
