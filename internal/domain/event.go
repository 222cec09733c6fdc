package domain

import (
	"context"

	"github.com/google/uuid"
)

// EventDetails is the public read projection of an event together with its
// live attendee count. Details and MaximumAttendees are nil when not set.
type EventDetails struct {
	ID               uuid.UUID
	Title            string
	Details          *string
	MaximumAttendees *int
	Slug             string
	AttendeesAmount  int
}

// EventRepository defines the storage lookup for event details.
type EventRepository interface {
	// FindWithAttendeeCount returns the event with the given id and the number of
	// attendees registered for it, computed by storage in the same query.
	// Returns ErrNotFound when no event has that id.
	FindWithAttendeeCount(ctx context.Context, id uuid.UUID) (*EventDetails, error)
}

// EventService defines the public, read-only event operations.
type EventService interface {
	// GetEvent returns the event details or a *NotFoundError when the event does not exist.
	GetEvent(ctx context.Context, id uuid.UUID) (*EventDetails, error)
}
