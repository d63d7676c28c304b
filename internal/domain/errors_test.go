package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Fields: map[string]string{
		"status": "invalid",
		"name":   "is required",
	}}

	want := "validation error: name: is required; status: invalid"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationError_Is(t *testing.T) {
	t.Parallel()

	var err error = &ValidationError{Fields: map[string]string{"id": "is required"}}
	wrapped := fmt.Errorf("create project: %w", err)

	if !errors.Is(wrapped, ErrValidation) {
		t.Error("errors.Is(wrapped, ErrValidation) = false, want true")
	}

	var verr *ValidationError
	if !errors.As(wrapped, &verr) {
		t.Fatal("errors.As(wrapped, *ValidationError) = false, want true")
	}
	if verr.Fields["id"] != "is required" {
		t.Errorf("Fields[id] = %q, want %q", verr.Fields["id"], "is required")
	}
}
