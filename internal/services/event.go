package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"passin/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
}

// NewEventService returns the read-only EventService. Query timeouts are the
// repository's concern; the service adds none of its own.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{
		eventRepo: eventRepo,
	}
}

func (s *eventService) GetEvent(ctx context.Context, eventID uuid.UUID) (*domain.EventDetails, error) {
	event, err := s.eventRepo.FindWithAttendeeCount(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: domain.EventNotFoundMessage}
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}
