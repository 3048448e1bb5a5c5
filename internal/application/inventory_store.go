package application

import (
	"context"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

// InventoryStore fronts the inventory repository with the availability cache.
// Reads go through the cache; every write replaces the cached entry while it
// still holds the row lock.
type InventoryStore struct {
	repo  domain.InventoryRepository
	cache domain.AvailabilityCache
}

func NewInventoryStore(repo domain.InventoryRepository, cache domain.AvailabilityCache) *InventoryStore {
	return &InventoryStore{repo: repo, cache: cache}
}

func (s *InventoryStore) GetAvailability(ctx context.Context, productID string) (domain.Availability, error) {
	if s.cache != nil {
		if a, ok, err := s.cache.Get(ctx, productID); err == nil && ok {
			return a, nil
		}
	}

	item, err := s.repo.Get(ctx, productID)
	if err != nil {
		return domain.Availability{}, err
	}
	if item == nil {
		return domain.Availability{}, domain.NewItemError(productID, domain.ErrNotFound)
	}

	a := item.Snapshot()
	if s.cache != nil {
		_ = s.cache.SetIfAbsent(ctx, a)
	}
	return a, nil
}

// Adjust applies raw deltas to one row.
func (s *InventoryStore) Adjust(ctx context.Context, productID string, availableDelta, reservedDelta int) (domain.Availability, error) {
	snaps, err := s.Mutate(ctx, []string{productID}, func(items map[string]*domain.InventoryItem) error {
		item, ok := items[productID]
		if !ok {
			return domain.NewItemError(productID, domain.ErrNotFound)
		}
		return item.Adjust(availableDelta, reservedDelta)
	})
	if err != nil {
		return domain.Availability{}, err
	}
	return snaps[0], nil
}

// Mutate runs fn with the rows of productIDs locked and replaces their cache
// entries before the lock is released, so cache writes land in commit order.
// If the change is not persisted the entries are evicted. Snapshots come back
// in productIDs order for the rows that exist.
func (s *InventoryStore) Mutate(
	ctx context.Context,
	productIDs []string,
	fn func(items map[string]*domain.InventoryItem) error,
) ([]domain.Availability, error) {
	var snaps []domain.Availability
	refreshed := false
	err := s.repo.Update(ctx, productIDs, func(items map[string]*domain.InventoryItem) error {
		if err := fn(items); err != nil {
			return err
		}
		snaps = snaps[:0]
		for _, id := range productIDs {
			if item, ok := items[id]; ok {
				snaps = append(snaps, item.Snapshot())
			}
		}
		s.refresh(ctx, snaps)
		refreshed = true
		return nil
	})
	if err != nil {
		if refreshed {
			s.evict(ctx, snaps)
		}
		return nil, err
	}
	return snaps, nil
}

// SetAvailable overwrites the available quantity of a product, creating the
// row when it does not exist yet. Reserved stock is preserved.
func (s *InventoryStore) SetAvailable(ctx context.Context, productID string, available int) (domain.Availability, error) {
	if available < 0 {
		return domain.Availability{}, domain.NewItemError(productID, domain.ErrNegativeQuantity)
	}

	set := func(items map[string]*domain.InventoryItem) error {
		if item, ok := items[productID]; ok {
			return item.Adjust(available-item.Available, 0)
		}
		return nil
	}

	snaps, err := s.Mutate(ctx, []string{productID}, set)
	if err != nil {
		return domain.Availability{}, err
	}
	if len(snaps) == 1 {
		return snaps[0], nil
	}

	if err := s.repo.InsertMissing(ctx, []*domain.InventoryItem{domain.NewInventoryItem(productID, available)}); err != nil {
		return domain.Availability{}, err
	}
	// apply again under the row lock; a concurrent insert may have won
	snaps, err = s.Mutate(ctx, []string{productID}, set)
	if err != nil {
		return domain.Availability{}, err
	}
	if len(snaps) == 0 {
		return domain.Availability{}, domain.NewItemError(productID, domain.ErrNotFound)
	}
	return snaps[0], nil
}

// Seed inserts the given rows if their products are not present yet.
func (s *InventoryStore) Seed(ctx context.Context, items []*domain.InventoryItem) error {
	return s.repo.InsertMissing(ctx, items)
}

// refresh must run while the rows are locked.
func (s *InventoryStore) refresh(ctx context.Context, snaps []domain.Availability) {
	if s.cache == nil {
		return
	}
	for _, a := range snaps {
		if err := s.cache.Set(ctx, a); err != nil {
			// never leave the previous value behind
			_ = s.cache.Delete(ctx, a.ProductID)
		}
	}
}

func (s *InventoryStore) evict(ctx context.Context, snaps []domain.Availability) {
	if s.cache == nil {
		return
	}
	for _, a := range snaps {
		_ = s.cache.Delete(ctx, a.ProductID)
	}
}

// DefaultInventory is the stock loaded at startup when seeding is enabled.
func DefaultInventory() []*domain.InventoryItem {
	return []*domain.InventoryItem{
		domain.NewInventoryItem("PROD001", 100),
		domain.NewInventoryItem("PROD002", 50),
		domain.NewInventoryItem("PROD003", 25),
	}
}
