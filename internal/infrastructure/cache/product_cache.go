package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/optivista/backend/internal/domain/catalog"
	"github.com/optivista/backend/internal/infrastructure/config"
)

const defaultProductTTL = 5 * time.Minute

// RedisProductCache implements catalog.ProductCache using Redis
type RedisProductCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisProductCacheOption is a functional option for configuring the cache
type RedisProductCacheOption func(*RedisProductCache)

// WithProductTTL sets the default TTL for cached products
func WithProductTTL(ttl time.Duration) RedisProductCacheOption {
	return func(c *RedisProductCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisProductCacheOption {
	return func(c *RedisProductCache) {
		c.logger = logger
	}
}

// NewRedisProductCache creates a new Redis-based product cache
func NewRedisProductCache(cfg *config.RedisConfig, opts ...RedisProductCacheOption) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisProductCache{
		client:     client,
		ownsClient: true,
		ttl:        defaultProductTTL,
		logger:     zap.NewNop(),
	}
	if cfg.TTL > 0 {
		cache.ttl = cfg.TTL
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisProductCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisProductCacheWithClient(client *redis.Client, opts ...RedisProductCacheOption) *RedisProductCache {
	cache := &RedisProductCache{
		client:     client,
		ownsClient: false,
		ttl:        defaultProductTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func productCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}

// Get retrieves a product from cache. A nil product means a cache miss.
func (c *RedisProductCache) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	cacheKey := productCacheKey(id)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for product", zap.String("product_id", id.String()))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get product from cache",
			zap.String("product_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get product from cache: %w", err)
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		c.logger.Error("Failed to unmarshal cached product",
			zap.String("product_id", id.String()),
			zap.Error(err))
		// Drop the corrupted entry
		_ = c.client.Del(ctx, cacheKey)
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	c.logger.Debug("Cache hit for product", zap.String("product_id", id.String()))
	return &product, nil
}

// Set stores a product in cache
func (c *RedisProductCache) Set(ctx context.Context, product *catalog.Product, ttl time.Duration) error {
	if product == nil {
		return nil
	}

	if ttl == 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	cacheKey := productCacheKey(product.ID)
	if err := c.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set product in cache",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to set product in cache: %w", err)
	}

	c.logger.Debug("Cached product",
		zap.String("product_id", product.ID.String()),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes a product from cache
func (c *RedisProductCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, productCacheKey(id)).Err(); err != nil {
		c.logger.Error("Failed to delete product from cache",
			zap.String("product_id", id.String()),
			zap.Error(err))
		return fmt.Errorf("failed to delete product from cache: %w", err)
	}
	return nil
}

// Close releases the Redis client if this cache owns it
func (c *RedisProductCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var _ catalog.ProductCache = (*RedisProductCache)(nil)
