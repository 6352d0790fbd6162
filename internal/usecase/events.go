package usecase

import (
	"context"
	"errors"
	"time"

	"licentia/internal/domain"
)

// EventEmitter hands structured events to an external sink. Sink
// failures never affect the decision that produced the event.
type EventEmitter struct {
	Sink  EventSink
	Clock Clock
}

func NewEventEmitter(sink EventSink, clock Clock) *EventEmitter {
	return &EventEmitter{Sink: sink, Clock: clock}
}

func (e *EventEmitter) Emit(ctx context.Context, event domain.Event) error {
	if e == nil || e.Sink == nil {
		return nil
	}
	if event.Type == "" {
		return errors.New("event type is required")
	}
	if event.Detail == nil {
		event.Detail = map[string]any{}
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = e.now().UTC()
	} else {
		event.CreatedAt = event.CreatedAt.UTC()
	}
	return e.Sink.Emit(ctx, event)
}

func (e *EventEmitter) EmitIssued(ctx context.Context, subjectID string, expiresAt time.Time) error {
	return e.Emit(ctx, domain.Event{
		Type:      domain.EventTrialIssued,
		SubjectID: subjectID,
		Detail: map[string]any{
			"expires_at": expiresAt.UTC().Format(time.RFC3339),
		},
	})
}

func (e *EventEmitter) EmitRevoked(ctx context.Context, subjectID, reason string) error {
	detail := map[string]any{}
	if reason != "" {
		detail["reason"] = reason
	}
	return e.Emit(ctx, domain.Event{
		Type:      domain.EventTrialRevoked,
		SubjectID: subjectID,
		Detail:    detail,
	})
}

func (e *EventEmitter) EmitUnrevoked(ctx context.Context, subjectID string) error {
	return e.Emit(ctx, domain.Event{
		Type:      domain.EventTrialUnrevoked,
		SubjectID: subjectID,
	})
}

func (e *EventEmitter) EmitDenied(ctx context.Context, subjectID, reason string, detail map[string]any) error {
	if detail == nil {
		detail = map[string]any{}
	}
	detail["reason"] = reason
	return e.Emit(ctx, domain.Event{
		Type:      domain.EventAccessDenied,
		SubjectID: subjectID,
		Detail:    detail,
	})
}

func (e *EventEmitter) now() time.Time {
	if e != nil && e.Clock != nil {
		return e.Clock()
	}
	return time.Now().UTC()
}
