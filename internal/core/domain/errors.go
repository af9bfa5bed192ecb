package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError aggregates rule violations detected before any mutation.
// Each violated rule category carries exactly one message; when several
// violations hit the same category the last one recorded wins. That
// collapse is externally observable wire behaviour and must be preserved.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError constructs an empty validation error.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Invalid is shorthand for a single-category validation error.
func Invalid(category, message string) *ValidationError {
	return NewValidationError().Add(category, message)
}

// Add records a violation under the given rule category, overwriting any
// earlier message for that category.
func (e *ValidationError) Add(category, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[category] = message
	return e
}

// Empty reports whether no violations were recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// ErrOrNil returns the error when it carries violations, nil otherwise.
// Returning a typed nil through an error interface is a classic footgun,
// so collectors should always finish through this helper.
func (e *ValidationError) ErrOrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	if e.Empty() {
		return "validation failed"
	}

	categories := make([]string, 0, len(e.Fields))
	for category := range e.Fields {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	parts := make([]string, 0, len(categories))
	for _, category := range categories {
		parts = append(parts, fmt.Sprintf("%s: %s", category, e.Fields[category]))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}
