package observability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"passin/internal/domain"
)

const instrumentationName = "passin/internal/observability"

var (
	attrEventID    = attribute.Key("event.id")
	attrEventFound = attribute.Key("event.found")
	attrCanceled   = attribute.Key("request.canceled")
)

// WithEventRepositoryTelemetry wraps an EventRepository with a span per lookup
// and, when m is non-nil, lookup outcome and duration metrics. A nil tp uses
// the global provider.
// A missing event or a caller that went away does not mark the span as failed.
func WithEventRepositoryTelemetry(next domain.EventRepository, m *Metrics, tp trace.TracerProvider) domain.EventRepository {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &telemetryEventRepository{
		next:    next,
		metrics: m,
		tracer:  tp.Tracer(instrumentationName),
	}
}

type telemetryEventRepository struct {
	next    domain.EventRepository
	metrics *Metrics
	tracer  trace.Tracer
}

func (r *telemetryEventRepository) FindWithAttendeeCount(ctx context.Context, id uuid.UUID) (*domain.EventDetails, error) {
	ctx, span := r.tracer.Start(ctx, "event.find_with_attendee_count",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrEventID.String(id.String())),
	)
	defer span.End()

	start := time.Now()
	event, err := r.next.FindWithAttendeeCount(ctx, id)
	if r.metrics != nil {
		r.metrics.EventLookupDuration.Observe(time.Since(start).Seconds())
	}

	switch {
	case err == nil:
		span.SetAttributes(attrEventFound.Bool(true))
		span.SetStatus(codes.Ok, "")
		r.record(OutcomeFound)
	case errors.Is(err, domain.ErrNotFound):
		span.SetAttributes(attrEventFound.Bool(false))
		span.SetStatus(codes.Ok, "")
		r.record(OutcomeNotFound)
	case errors.Is(err, context.Canceled):
		span.SetAttributes(attrCanceled.Bool(true))
		r.record(OutcomeCanceled)
	default:
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		r.record(OutcomeError)
	}
	return event, err
}

func (r *telemetryEventRepository) record(outcome string) {
	if r.metrics == nil {
		return
	}
	r.metrics.EventLookups.WithLabelValues(outcome).Inc()
}
