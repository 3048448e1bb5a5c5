package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/infrastructure/cache"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/infrastructure/memory"
)

type fixture struct {
	inventoryRepo *memory.InventoryRepository
	orderRepo     *memory.OrderRepository
	paymentRepo   *memory.PaymentRepository
	outboxRepo    *memory.OutboxRepository
	cache         *cache.MemoryCache
	store         *InventoryStore
	reservations  *ReservationService
	outbox        OutboxWriter
}

func newFixture(t *testing.T, stock map[string]int) *fixture {
	t.Helper()

	f := &fixture{
		inventoryRepo: memory.NewInventoryRepository(),
		orderRepo:     memory.NewOrderRepository(),
		paymentRepo:   memory.NewPaymentRepository(),
		outboxRepo:    memory.NewOutboxRepository(),
		cache:         cache.NewMemoryCache(5 * time.Minute),
	}
	f.outbox = NewOutboxWriter(f.outboxRepo)
	f.store = NewInventoryStore(f.inventoryRepo, f.cache)
	f.reservations = NewReservationService(f.store, f.outbox)

	items := make([]*domain.InventoryItem, 0, len(stock))
	for id, qty := range stock {
		items = append(items, domain.NewInventoryItem(id, qty))
	}
	require.NoError(t, f.store.Seed(context.Background(), items))
	return f
}

func (f *fixture) row(t *testing.T, productID string) domain.InventoryItem {
	t.Helper()
	item, err := f.inventoryRepo.Get(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, item, "missing inventory row %s", productID)
	return *item
}

func (f *fixture) outboxTypes() map[string]int {
	counts := map[string]int{}
	for _, m := range f.outboxRepo.Messages() {
		counts[m.Type]++
	}
	return counts
}

func (f *fixture) outboxPayloads(t *testing.T, eventType string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, m := range f.outboxRepo.Messages() {
		if m.Type != eventType {
			continue
		}
		var p map[string]any
		require.NoError(t, json.Unmarshal([]byte(m.PayloadJSON), &p))
		out = append(out, p)
	}
	return out
}
