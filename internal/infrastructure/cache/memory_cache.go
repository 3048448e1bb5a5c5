package cache

import (
	"context"
	"sync"
	"time"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type entry struct {
	value     domain.Availability
	expiresAt time.Time
}

// MemoryCache is the in-process cache used when no Redis URL is configured.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *MemoryCache) Get(ctx context.Context, productID string) (domain.Availability, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[productID]
	if !ok {
		return domain.Availability{}, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, productID)
		return domain.Availability{}, false, nil
	}
	return e.value, true, nil
}

func (c *MemoryCache) SetIfAbsent(ctx context.Context, a domain.Availability) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[a.ProductID]; ok && c.now().Before(e.expiresAt) {
		return nil
	}
	c.entries[a.ProductID] = entry{value: a, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) Set(ctx context.Context, a domain.Availability) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[a.ProductID] = entry{value: a, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, productID)
	return nil
}
