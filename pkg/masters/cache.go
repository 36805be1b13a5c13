package masters

import (
	"sync"
	"time"

	"github.com/contentstudio/asset-library/pkg/assets"
)

// DefaultCollectionsTTL bounds how stale the cached linked-entity
// collections may get before the next read reloads them.
const DefaultCollectionsTTL = 30 * time.Second

// CollectionsCache caches the projected entity collections with a TTL.
// Master data changes rarely relative to catalog reads, and a stable
// Collections value also keeps the filter view's memoization effective
// between reloads. Expiry is checked lazily on read; upserts through the
// cache invalidate it immediately.
type CollectionsCache struct {
	store *MastersStore
	ttl   time.Duration

	mu        sync.Mutex
	cached    assets.Collections
	expiresAt time.Time
	valid     bool
}

// NewCollectionsCache wraps a MastersStore with a TTL cache. A non-positive
// ttl falls back to the default.
func NewCollectionsCache(store *MastersStore, ttl time.Duration) *CollectionsCache {
	if ttl <= 0 {
		ttl = DefaultCollectionsTTL
	}
	return &CollectionsCache{store: store, ttl: ttl}
}

// Collections returns the cached collections, reloading them from the
// store when missing or expired.
func (c *CollectionsCache) Collections() (assets.Collections, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && time.Now().Before(c.expiresAt) {
		return c.cached, nil
	}

	colls, err := c.store.Collections()
	if err != nil {
		return assets.Collections{}, err
	}
	c.cached = colls
	c.expiresAt = time.Now().Add(c.ttl)
	c.valid = true
	return colls, nil
}

// Invalidate drops the cached value so the next read reloads.
func (c *CollectionsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

// UpsertCategory writes through to the store and invalidates the cache.
func (c *CollectionsCache) UpsertCategory(name string) (*CategoryMaster, error) {
	rec, err := c.store.UpsertCategory(name)
	if err != nil {
		return nil, err
	}
	c.Invalidate()
	return rec, nil
}

// UpsertType writes through to the store and invalidates the cache.
func (c *CollectionsCache) UpsertType(name string) (*TypeMaster, error) {
	rec, err := c.store.UpsertType(name)
	if err != nil {
		return nil, err
	}
	c.Invalidate()
	return rec, nil
}
