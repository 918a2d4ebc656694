package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyResolved is returned when a resolution finds its session no
	// longer conflict-flagged, typically because a concurrent resolution
	// committed first.
	ErrAlreadyResolved = errors.New("application: session already resolved")
)

// ValidationError captures field level validation issues that callers can
// surface to users verbatim.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface, naming every failing field.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, v.FieldErrors[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// NoRoomAvailableError reports that every candidate room was occupied for
// the requested window. Advisory optionally carries a best-effort suggestion
// from the external collaborator; its absence is not an error.
type NoRoomAvailableError struct {
	Advisory string
}

// Error implements the error interface.
func (e *NoRoomAvailableError) Error() string {
	return "no rooms available for the requested time"
}
