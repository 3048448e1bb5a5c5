package memory

import (
	"context"
	"sync"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

// InventoryRepository keeps rows in a map guarded by one mutex; Update holds the
// lock for the whole callback so multi-row changes are serialized.
type InventoryRepository struct {
	mu    sync.Mutex
	items map[string]domain.InventoryItem
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{items: make(map[string]domain.InventoryItem)}
}

func (r *InventoryRepository) Get(ctx context.Context, productID string) (*domain.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[productID]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *InventoryRepository) Update(
	ctx context.Context,
	productIDs []string,
	fn func(items map[string]*domain.InventoryItem) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// fn works on copies so a failed callback leaves stored rows untouched
	working := make(map[string]*domain.InventoryItem, len(productIDs))
	for _, id := range productIDs {
		if item, ok := r.items[id]; ok {
			cp := item
			working[id] = &cp
		}
	}

	if err := fn(working); err != nil {
		return err
	}

	for id, item := range working {
		r.items[id] = *item
	}
	return nil
}

func (r *InventoryRepository) InsertMissing(ctx context.Context, items []*domain.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if _, ok := r.items[item.ProductID]; !ok {
			r.items[item.ProductID] = *item
		}
	}
	return nil
}
