package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/catalog"
)

type memoryEntry struct {
	product   catalog.Product
	expiresAt time.Time
}

// MemoryProductCache is an in-process catalog.ProductCache. It is used when
// Redis is disabled and as a test double.
type MemoryProductCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uuid.UUID]memoryEntry
}

// NewMemoryProductCache creates an in-memory product cache
func NewMemoryProductCache(ttl time.Duration) *MemoryProductCache {
	if ttl <= 0 {
		ttl = defaultProductTTL
	}
	return &MemoryProductCache{
		ttl:     ttl,
		entries: make(map[uuid.UUID]memoryEntry),
	}
}

func (c *MemoryProductCache) Get(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, id)
		c.mu.Unlock()
		return nil, nil
	}

	product := entry.product
	return &product, nil
}

func (c *MemoryProductCache) Set(_ context.Context, product *catalog.Product, ttl time.Duration) error {
	if product == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	c.entries[product.ID] = memoryEntry{product: *product, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryProductCache) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
	return nil
}

func (c *MemoryProductCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[uuid.UUID]memoryEntry)
	c.mu.Unlock()
	return nil
}

var _ catalog.ProductCache = (*MemoryProductCache)(nil)
