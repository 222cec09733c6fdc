package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"passin/internal/delivery/http/helpers"
	"passin/internal/domain"
)

var validate = validator.New()

// statusClientClosedRequest is recorded when the caller went away before the
// lookup finished. Nobody reads the body, so none is written.
const statusClientClosedRequest = 499

// EventResponse is the response body for GET /events/{eventId}.
// Details and MaximumAttendees encode as null when unset.
type EventResponse struct {
	ID               string  `json:"id" validate:"required,uuid"`
	Title            string  `json:"title"`
	Details          *string `json:"details"`
	MaximumAttendees *int    `json:"maximumAttendees" validate:"omitempty,gte=0"`
	Slug             string  `json:"slug"`
	AttendeesAmount  int     `json:"attendeesAmount" validate:"gte=0"`
}

// NewEventResponse copies the public fields of e into an EventResponse and
// validates the result. Storage-only fields never reach the payload.
func NewEventResponse(e *domain.EventDetails) (EventResponse, error) {
	if e == nil {
		return EventResponse{}, errors.New("compose event response: nil event")
	}
	resp := EventResponse{
		ID:               e.ID.String(),
		Title:            e.Title,
		Details:          e.Details,
		MaximumAttendees: e.MaximumAttendees,
		Slug:             e.Slug,
		AttendeesAmount:  e.AttendeesAmount,
	}
	if err := validate.Struct(resp); err != nil {
		return EventResponse{}, fmt.Errorf("compose event response: %w", err)
	}
	return resp, nil
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns a public event with the number of attendees registered for it.
// @Tags events
// @Produce json
// @Param eventId path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /events/{eventId} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := helpers.ParseUUIDPathValue(r, "eventId")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			msg := domain.EventNotFoundMessage
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				msg = nf.Message
			}
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, msg)
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(r.Context().Err(), context.Canceled) {
			c.Logger.DebugContext(r.Context(), "request canceled by client", "path", r.URL.Path, "method", r.Method, "err", err)
			w.WriteHeader(statusClientClosedRequest)
			return
		}
		c.internalError(w, r, err)
		return
	}

	resp, err := NewEventResponse(event)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

func (c *EventController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
}
