package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrIDMismatch signals that the path id and payload id disagree on edit.
var ErrIDMismatch = errors.New("path id and payload id disagree")

// ValidationError collects per-field problems with a payload so the caller
// can redisplay the form.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty validation error.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a problem for a field.
func (v *ValidationError) Add(field, msg string) {
	v.Fields[field] = msg
}

// OrNil returns nil when no problems were recorded. The explicit nil keeps
// callers from tripping over a typed-nil error interface.
func (v *ValidationError) OrNil() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
