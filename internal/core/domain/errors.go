package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrCarNotFound = errors.New("car not found")
	ErrBadTrip     = errors.New("trip start must not be after trip end")
	ErrPersistence = errors.New("persistence failure")
)

func CarNotFound(id int) error {
	return fmt.Errorf("%w for id: %d", ErrCarNotFound, id)
}

// Persistence wraps a backend failure so callers can tell it apart from
// domain errors. The mutation that produced it was not applied.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

// ValidationError lists rejected input fields with the reason for each.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation error: " + strings.Join(parts, "; ")
}
