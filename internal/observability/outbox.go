package observability

import (
	"context"

	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/application"
)

// Outbox logs enqueue failures. The business change they belong to has
// already committed, so this is the only place they surface.
type Outbox struct {
	next   application.OutboxWriter
	logger *zap.Logger
}

var _ application.OutboxWriter = (*Outbox)(nil)

func NewOutbox(next application.OutboxWriter, logger *zap.Logger) *Outbox {
	return &Outbox{next: next, logger: logger.Named("outbox")}
}

func (o *Outbox) Enqueue(ctx context.Context, evs ...primitives.Event) error {
	err := o.next.Enqueue(ctx, evs...)
	if err != nil {
		o.logger.Warn("failed to record integration events", zap.Int("events", len(evs)), zap.Error(err))
	}
	return err
}
