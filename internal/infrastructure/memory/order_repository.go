package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[uuid.UUID]domain.Order)}
}

func (r *OrderRepository) Insert(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[o.ID]; exists {
		return fmt.Errorf("order %s already exists", o.ID)
	}
	r.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := cloneOrder(o)
	return &cp, nil
}

func (r *OrderRepository) List(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	r.mu.RLock()
	all := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		all = append(all, cloneOrder(o))
	}
	r.mu.RUnlock()

	// newest first, then by id, the same order the postgres store uses
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return bytes.Compare(all[i].ID[:], all[j].ID[:]) < 0
	})

	if offset >= len(all) {
		return []domain.Order{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, o *domain.Order, from domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[o.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if stored.Status != from {
		return domain.ErrStatusConflict
	}
	stored.Status = o.Status
	stored.UpdatedAt = o.UpdatedAt
	r.orders[o.ID] = stored
	return nil
}

func cloneOrder(o domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
