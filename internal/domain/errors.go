package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// EventNotFoundMessage is the client-facing message for a missing event.
const EventNotFoundMessage = "Event not found."

// NotFoundError is an expected failure for a well-formed lookup that matched nothing.
// Message is safe to return to clients as-is.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// Is reports true for ErrNotFound so callers can match either form.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports an input that does not satisfy its format contract.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
