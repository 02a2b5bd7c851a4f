package cache

import (
	"context"
	"sync"
	"time"
)

type cacheItem struct {
	data      []byte
	expiresAt time.Time
}

func (i cacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && !now.Before(i.expiresAt)
}

// MemoryCache is an in-process Cache used when no Valkey server is configured
type MemoryCache struct {
	items    map[string]cacheItem
	maxItems int
	now      func() time.Time
	mu       sync.RWMutex
}

// NewMemoryCache creates an in-process cache holding at most maxItems entries
func NewMemoryCache(maxItems int) *MemoryCache {
	if maxItems <= 0 {
		maxItems = 1000
	}
	return &MemoryCache{
		items:    make(map[string]cacheItem),
		maxItems: maxItems,
		now:      time.Now,
	}
}

// Get returns a copy of the stored value
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if item.expired(c.now()) {
		c.mu.Lock()
		// Double-check after acquiring write lock
		if item, ok := c.items[key]; ok && item.expired(c.now()) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, nil
	}

	data := make([]byte, len(item.data))
	copy(data, item.data)
	return data, nil
}

// Set stores a copy of value, evicting the entry closest to expiry when full
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	data := make([]byte, len(value))
	copy(data, value)

	item := cacheItem{data: data}
	if expiration > 0 {
		item.expiresAt = c.now().Add(expiration)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.evictLocked()
	}
	c.items[key] = item
	return nil
}

// Delete removes keys
func (c *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

// Exists reports whether an unexpired entry is stored under key
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[key]
	return ok && !item.expired(c.now()), nil
}

// Len returns the number of stored entries, expired or not
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close drops every entry
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cacheItem)
	return nil
}

// Health always succeeds for the in-process cache
func (c *MemoryCache) Health(ctx context.Context) error {
	return nil
}

// evictLocked drops expired entries, or failing that the entry expiring first.
// Entries without expiration are evicted last.
func (c *MemoryCache) evictLocked() {
	now := c.now()
	victim := ""
	var victimExpiry time.Time

	for k, item := range c.items {
		if item.expired(now) {
			delete(c.items, k)
			continue
		}
		if item.expiresAt.IsZero() {
			if victim == "" {
				victim = k
			}
			continue
		}
		if victimExpiry.IsZero() || item.expiresAt.Before(victimExpiry) {
			victim = k
			victimExpiry = item.expiresAt
		}
	}

	if len(c.items) < c.maxItems {
		return
	}
	if victim != "" {
		delete(c.items, victim)
	}
}
