package weather

import (
	"sync"
	"time"

	"github.com/ayushkr5561/virtual-closet/internal/models"
)

type cacheEntry struct {
	data      models.Bundle
	expiresAt time.Time
}

// bundleCache is a TTL cache over location-keyed weather bundles.
type bundleCache struct {
	mu    sync.RWMutex
	items map[string]cacheEntry
	ttl   time.Duration
}

func newBundleCache(ttl time.Duration) *bundleCache {
	return &bundleCache{items: make(map[string]cacheEntry), ttl: ttl}
}

func (c *bundleCache) Get(key string) (models.Bundle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[key]
	if !ok || time.Now().After(e.expiresAt) {
		return models.Bundle{}, false
	}
	return e.data, true
}

func (c *bundleCache) Set(key string, data models.Bundle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{data: data, expiresAt: time.Now().Add(c.ttl)}
}
