package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/infrastructure/memory"
)

type rejectingOutboxRepo struct {
	*memory.OutboxRepository
}

func (rejectingOutboxRepo) Insert(context.Context, domain.OutboxMessage) error {
	return errors.New("outbox unavailable")
}

func TestOutboxWriter_UsesRoutingKeyAsType(t *testing.T) {
	repo := memory.NewOutboxRepository()
	w := NewOutboxWriter(repo)

	ev := domain.NewInventoryAdjustedEvent(domain.Availability{ProductID: "P", AvailableQuantity: 1}, domain.ReasonReserved)
	require.NoError(t, w.Enqueue(context.Background(), ev))

	msgs := repo.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "InventoryAdjusted", msgs[0].Type)
	assert.Contains(t, msgs[0].PayloadJSON, `"productId":"P"`)
	assert.NotZero(t, msgs[0].OccurredAtUtc)
	assert.Nil(t, msgs[0].ProcessedAtUtc)
}

func TestOutboxWriter_JoinsInsertErrors(t *testing.T) {
	w := NewOutboxWriter(rejectingOutboxRepo{memory.NewOutboxRepository()})

	evs := []primitives.Event{
		domain.NewInventoryAdjustedEvent(domain.Availability{ProductID: "A"}, domain.ReasonReserved),
		domain.NewInventoryAdjustedEvent(domain.Availability{ProductID: "B"}, domain.ReasonReserved),
	}
	err := w.Enqueue(context.Background(), evs...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enqueue InventoryAdjusted")
}

func TestOutboxFailureDoesNotFailReservation(t *testing.T) {
	f := newFixture(t, map[string]int{"PROD001": 5})
	svc := NewReservationService(f.store, NewOutboxWriter(rejectingOutboxRepo{f.outboxRepo}))

	a, err := svc.Reserve(context.Background(), "PROD001", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, a.AvailableQuantity)
}

func TestNopOutbox(t *testing.T) {
	assert.NoError(t, NopOutbox{}.Enqueue(context.Background(), domain.NewOrderStatusChangedEvent(uuid.Nil, domain.OrderPending, domain.OrderShipped, time.Time{})))
}
