// Package orm implements the storage interfaces on top of gorm.
package orm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"passin/internal/domain"
)

// eventRow is the scan target for the event lookup. Only the projected columns are mapped.
type eventRow struct {
	ID               uuid.UUID `gorm:"column:id"`
	Title            string    `gorm:"column:title"`
	Details          *string   `gorm:"column:details"`
	MaximumAttendees *int      `gorm:"column:maximum_attendees"`
	Slug             string    `gorm:"column:slug"`
	AttendeesAmount  int64     `gorm:"column:attendees_amount"`
}

type eventRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewEventRepository returns an EventRepository backed by gorm.
func NewEventRepository(db *gorm.DB, queryTimeout time.Duration) domain.EventRepository {
	return &eventRepository{db: db, queryTimeout: queryTimeout}
}

func (r *eventRepository) FindWithAttendeeCount(ctx context.Context, id uuid.UUID) (*domain.EventDetails, error) {
	if r.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.queryTimeout)
		defer cancel()
	}

	var row eventRow
	tx := r.db.WithContext(ctx).
		Table("events AS e").
		Select("e.id, e.title, e.details, e.maximum_attendees, e.slug, " +
			"(SELECT COUNT(*) FROM attendees a WHERE a.event_id = e.id) AS attendees_amount").
		Where("e.id = ?", id.String()).
		Scan(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	return &domain.EventDetails{
		ID:               row.ID,
		Title:            row.Title,
		Details:          row.Details,
		MaximumAttendees: row.MaximumAttendees,
		Slug:             row.Slug,
		AttendeesAmount:  int(row.AttendeesAmount),
	}, nil
}
