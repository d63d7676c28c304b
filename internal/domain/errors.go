package domain

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// Sentinels matched with errors.Is by the HTTP layer.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")

	// ErrMisconfigured signals that the service cannot serve the request
	// because a required setting (such as the admin secret) is missing.
	ErrMisconfigured = errors.New("server misconfigured")

	// ErrCorruptRecord signals that data read back from the store did not
	// match the expected schema.
	ErrCorruptRecord = errors.New("stored record failed validation")
)

// ValidationError lists rejected fields, keyed by field name (or a path
// such as "tech[1]"), with one message each. It matches ErrValidation under
// errors.Is.
type ValidationError struct {
	Fields map[string]string
}

// Error renders the fields sorted by key so messages are stable in logs.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	for i, field := range slices.Sorted(maps.Keys(e.Fields)) {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(field + ": " + e.Fields[field])
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
