package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	appreturns "github.com/retailops/backoffice/internal/application/returns"
)

// InMemoryReferenceCache is a read-through cache in front of a
// ReferenceData implementation, suitable for single-instance deployments
// and tests.
type InMemoryReferenceCache struct {
	mu      sync.RWMutex
	entries map[string]referenceEntry
	next    appreturns.ReferenceData
	ttl     time.Duration
	now     func() time.Time
}

type referenceEntry struct {
	items     []appreturns.ReferenceItem
	expiresAt time.Time
}

// NewInMemoryReferenceCache creates a caching decorator over the given source
func NewInMemoryReferenceCache(next appreturns.ReferenceData, ttl time.Duration) *InMemoryReferenceCache {
	return &InMemoryReferenceCache{
		entries: make(map[string]referenceEntry),
		next:    next,
		ttl:     ttl,
		now:     time.Now,
	}
}

// ReturnKinds returns the cached return kind taxonomy
func (c *InMemoryReferenceCache) ReturnKinds(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return c.cached(ctx, tenantID, "return_kinds", c.next.ReturnKinds)
}

// Situations returns the cached workflow status list
func (c *InMemoryReferenceCache) Situations(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return c.cached(ctx, tenantID, "situations", c.next.Situations)
}

// DocumentTypes returns the cached document type list
func (c *InMemoryReferenceCache) DocumentTypes(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return c.cached(ctx, tenantID, "document_types", c.next.DocumentTypes)
}

// PaymentMethods returns the cached payment method list
func (c *InMemoryReferenceCache) PaymentMethods(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return c.cached(ctx, tenantID, "payment_methods", c.next.PaymentMethods)
}

// StockTypes returns the cached stock-type taxonomy
func (c *InMemoryReferenceCache) StockTypes(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return c.cached(ctx, tenantID, "stock_types", c.next.StockTypes)
}

// Invalidate drops every cached list for a tenant
func (c *InMemoryReferenceCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, list := range []string{"return_kinds", "situations", "document_types", "payment_methods", "stock_types"} {
		delete(c.entries, tenantID.String()+":"+list)
	}
	return nil
}

func (c *InMemoryReferenceCache) cached(
	ctx context.Context,
	tenantID uuid.UUID,
	list string,
	fetch func(context.Context, uuid.UUID) ([]appreturns.ReferenceItem, error),
) ([]appreturns.ReferenceItem, error) {
	key := tenantID.String() + ":" + list

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Before(entry.expiresAt) {
		return entry.items, nil
	}

	items, err := fetch(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = referenceEntry{items: items, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return items, nil
}
