package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

// PublishFunc hands one envelope to the broker.
type PublishFunc func(ctx context.Context, envelope *primitives.IntegrationEventEnvelope) error

type Dispatcher struct {
	repo      domain.OutboxRepository
	publish   PublishFunc
	logger    *zap.Logger
	maxRetry  int
	batchSize int
	now       func() time.Time
}

func NewDispatcher(
	repo domain.OutboxRepository,
	publish PublishFunc,
	logger *zap.Logger,
	maxRetry, batchSize int,
) *Dispatcher {
	return &Dispatcher{
		repo:      repo,
		publish:   publish,
		logger:    logger.Named("outbox"),
		maxRetry:  maxRetry,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// DispatchOnce publishes one batch of pending messages and returns how many
// were published. Failed messages have their retry count bumped and are
// skipped once it reaches maxRetry.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	msgs, err := d.repo.GetPendingBatch(ctx, d.maxRetry, d.batchSize)
	if err != nil {
		return 0, err
	}

	processed := 0
	for i := range msgs {
		if ctx.Err() != nil {
			break
		}
		msg := &msgs[i]

		if !json.Valid([]byte(msg.PayloadJSON)) {
			d.logger.Warn("invalid payload", zap.String("id", msg.ID.String()), zap.String("type", msg.Type))
			msg.RetryCount++
			d.save(ctx, msg)
			continue
		}

		envelope := primitives.NewIntegrationEventEnvelope(msg.Type, msg.PayloadJSON)
		envelope.SetRoutingKey(msg.Type)

		if err := d.publish(ctx, &envelope); err != nil {
			d.logger.Warn("failed to publish",
				zap.String("id", msg.ID.String()),
				zap.String("type", msg.Type),
				zap.Int("retry_count", msg.RetryCount+1),
				zap.Error(err))
			msg.RetryCount++
		} else {
			now := d.now().UTC().Unix()
			msg.ProcessedAtUtc = &now
			processed++
		}
		d.save(ctx, msg)
	}

	return processed, nil
}

func (d *Dispatcher) save(ctx context.Context, msg *domain.OutboxMessage) {
	if err := d.repo.Save(ctx, *msg); err != nil {
		d.logger.Error("failed to save message", zap.String("id", msg.ID.String()), zap.Error(err))
	}
}
