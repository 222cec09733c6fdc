package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"passin/internal/domain"
)

type eventRepository struct {
	DB           *sql.DB
	queryTimeout time.Duration
}

// NewEventRepository returns an EventRepository backed by database/sql.
// A positive queryTimeout bounds each query; zero leaves it to the caller's context.
func NewEventRepository(db *sql.DB, queryTimeout time.Duration) domain.EventRepository {
	return &eventRepository{
		DB:           db,
		queryTimeout: queryTimeout,
	}
}

// findWithAttendeeCountQuery counts attendees in a correlated sub-query so the
// event and its count come back in one round trip.
const findWithAttendeeCountQuery = `
		SELECT e.id, e.title, e.details, e.maximum_attendees, e.slug,
			(SELECT COUNT(*) FROM attendees a WHERE a.event_id = e.id) AS attendees_amount
		FROM events e
		WHERE e.id = $1
	`

func (r *eventRepository) FindWithAttendeeCount(ctx context.Context, id uuid.UUID) (*domain.EventDetails, error) {
	if r.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.queryTimeout)
		defer cancel()
	}

	e := &domain.EventDetails{}
	var detailsNull sql.NullString
	var maxNull sql.NullInt64
	var attendees int64
	err := r.DB.QueryRowContext(ctx, findWithAttendeeCountQuery, id.String()).Scan(
		&e.ID, &e.Title, &detailsNull, &maxNull, &e.Slug, &attendees,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if detailsNull.Valid {
		e.Details = &detailsNull.String
	}
	if maxNull.Valid {
		m := int(maxNull.Int64)
		e.MaximumAttendees = &m
	}
	e.AttendeesAmount = int(attendees)
	return e, nil
}
