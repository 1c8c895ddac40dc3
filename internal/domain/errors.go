package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports that an operation targeted an id absent from its
// collection. The collection is left untouched.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound builds a NotFoundError for the given entity kind.
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ErrInvalidInput marks caller-supplied data that fails validation.
var ErrInvalidInput = errors.New("invalid input")
