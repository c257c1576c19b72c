// Package cache provides caching decorators for the read-only reference
// lists. The lists change rarely and are read on every workflow start, so
// they are cached in Redis with a short TTL and a local fallback.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	appreturns "github.com/retailops/backoffice/internal/application/returns"
	"github.com/retailops/backoffice/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RedisReferenceCache is a read-through cache in front of a ReferenceData
// implementation. A Redis failure falls back to the underlying source, so
// cache availability never breaks the workflow.
type RedisReferenceCache struct {
	client *redis.Client
	next   appreturns.ReferenceData
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisClient creates a Redis client from configuration and verifies
// the connection
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
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
	return client, nil
}

// NewRedisReferenceCache creates a caching decorator over the given source
func NewRedisReferenceCache(client *redis.Client, next appreturns.ReferenceData, ttl time.Duration, logger *zap.Logger) *RedisReferenceCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisReferenceCache{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logger,
	}
}

// ReturnKinds returns the cached return kind taxonomy
func (c *RedisReferenceCache) ReturnKinds(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return c.cached(ctx, tenantID, "return_kinds", c.next.ReturnKinds)
}

// Situations returns the cached workflow status list
func (c *RedisReferenceCache) Situations(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return c.cached(ctx, tenantID, "situations", c.next.Situations)
}

// DocumentTypes returns the cached document type list
func (c *RedisReferenceCache) DocumentTypes(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return c.cached(ctx, tenantID, "document_types", c.next.DocumentTypes)
}

// PaymentMethods returns the cached payment method list
func (c *RedisReferenceCache) PaymentMethods(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return c.cached(ctx, tenantID, "payment_methods", c.next.PaymentMethods)
}

// StockTypes returns the cached stock-type taxonomy
func (c *RedisReferenceCache) StockTypes(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return c.cached(ctx, tenantID, "stock_types", c.next.StockTypes)
}

// Invalidate drops every cached list for a tenant
func (c *RedisReferenceCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	lists := []string{"return_kinds", "situations", "document_types", "payment_methods", "stock_types"}
	keys := make([]string, len(lists))
	for i, list := range lists {
		keys[i] = c.key(tenantID, list)
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisReferenceCache) key(tenantID uuid.UUID, list string) string {
	return fmt.Sprintf("reference:%s:%s", tenantID, list)
}

func (c *RedisReferenceCache) cached(
	ctx context.Context,
	tenantID uuid.UUID,
	list string,
	fetch func(context.Context, uuid.UUID) ([]appreturns.ReferenceItem, error),
) ([]appreturns.ReferenceItem, error) {
	key := c.key(tenantID, list)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var items []appreturns.ReferenceItem
		if err := json.Unmarshal(payload, &items); err == nil {
			return items, nil
		}
		// Corrupt entry: drop it and re-fetch.
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		c.logger.Warn("reference cache read failed, falling back to source",
			zap.String("list", list),
			zap.Error(err))
	}

	items, err := fetch(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(items); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("reference cache write failed",
				zap.String("list", list),
				zap.Error(err))
		}
	}
	return items, nil
}
