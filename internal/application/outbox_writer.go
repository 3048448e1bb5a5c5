package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

// OutboxWriter records integration events for later publication.
type OutboxWriter interface {
	Enqueue(ctx context.Context, evs ...primitives.Event) error
}

type outboxWriter struct {
	repo domain.OutboxRepository
}

func NewOutboxWriter(repo domain.OutboxRepository) OutboxWriter {
	return &outboxWriter{repo: repo}
}

func (w *outboxWriter) Enqueue(ctx context.Context, evs ...primitives.Event) error {
	var errs error
	for _, ev := range evs {
		msg, err := toOutboxMessage(ev)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if err := w.repo.Insert(ctx, msg); err != nil {
			errs = errors.Join(errs, fmt.Errorf("enqueue %s: %w", msg.Type, err))
		}
	}
	return errs
}

func toOutboxMessage(ev primitives.Event) (domain.OutboxMessage, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("marshal event: %w", err)
	}

	eventType := ev.GetRoutingKey()
	if eventType == "" {
		eventType = typeNameOf(ev)
	}

	return domain.OutboxMessage{
		ID:            uuid.New(),
		Type:          eventType,
		PayloadJSON:   string(payload),
		OccurredAtUtc: time.Now().UTC().Unix(),
	}, nil
}

func typeNameOf(ev primitives.Event) string {
	if ev == nil {
		return ""
	}
	t := reflect.TypeOf(ev)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// NopOutbox drops events; used when messaging is disabled.
type NopOutbox struct{}

func (NopOutbox) Enqueue(context.Context, ...primitives.Event) error { return nil }

// enqueue records events after the business change has committed. A failure
// here must not turn a committed change into an error for the caller; the
// observability decorator around the writer reports it.
func enqueue(ctx context.Context, w OutboxWriter, evs ...primitives.Event) {
	_ = w.Enqueue(ctx, evs...)
}
