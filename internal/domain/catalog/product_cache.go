package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductCache is a read-through cache for product lookups. A nil product
// with a nil error means a cache miss.
type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	Set(ctx context.Context, product *Product, ttl time.Duration) error
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}
