package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type OutboxRepository struct {
	mu   sync.Mutex
	msgs map[uuid.UUID]domain.OutboxMessage
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{msgs: make(map[uuid.UUID]domain.OutboxMessage)}
}

func (r *OutboxRepository) Insert(ctx context.Context, msg domain.OutboxMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs[msg.ID] = msg
	return nil
}

func (r *OutboxRepository) GetPendingBatch(ctx context.Context, maxRetry, batchSize int) ([]domain.OutboxMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []domain.OutboxMessage
	for _, m := range r.msgs {
		if m.ProcessedAtUtc == nil && m.RetryCount < maxRetry {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].OccurredAtUtc < pending[j].OccurredAtUtc
	})
	if len(pending) > batchSize {
		pending = pending[:batchSize]
	}
	return pending, nil
}

func (r *OutboxRepository) Save(ctx context.Context, msg domain.OutboxMessage) error {
	if msg.ID == uuid.Nil {
		return errors.New("outbox message id is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs[msg.ID] = msg
	return nil
}

// Messages returns a snapshot of all stored messages.
func (r *OutboxRepository) Messages() []domain.OutboxMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.OutboxMessage, 0, len(r.msgs))
	for _, m := range r.msgs {
		out = append(out, m)
	}
	return out
}
