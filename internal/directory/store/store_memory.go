package store

import (
	"context"
	"sync"
	"time"
)

type cachedAccessPoint struct {
	accessPoint string
	storedAt    time.Time
}

// InMemoryCache keeps access points in process with TTL expiration.
type InMemoryCache struct {
	mu       sync.RWMutex
	entries  map[string]cachedAccessPoint
	cacheTTL time.Duration
	now      func() time.Time
}

// NewInMemoryCache creates a new in-memory cache with the specified TTL.
func NewInMemoryCache(cacheTTL time.Duration) *InMemoryCache {
	return &InMemoryCache{
		entries:  make(map[string]cachedAccessPoint),
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Set stores an access point. Empty access points are not cached.
func (c *InMemoryCache) Set(_ context.Context, key, accessPoint string) error {
	if accessPoint == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cachedAccessPoint{accessPoint: accessPoint, storedAt: c.now()}
	return nil
}

// Get returns ErrNotFound when the key is absent or older than the TTL.
func (c *InMemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cached, ok := c.entries[key]; ok && c.now().Sub(cached.storedAt) < c.cacheTTL {
		return cached.accessPoint, nil
	}
	return "", ErrNotFound
}

// Clear drops every entry.
func (c *InMemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cachedAccessPoint)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
