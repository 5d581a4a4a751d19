package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxEntries bounds the store when no explicit cap is set.
// Completion payloads run to kilobytes, so an unbounded response cache is a
// slow memory leak in a long-lived process.
const DefaultMaxEntries = 4096

// MemoryCache is an in-memory completion cache with TTL expiry and a
// bounded entry count.
type MemoryCache struct {
	policy     Policy
	maxEntries int

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a memory cache governed by policy.
func NewMemoryCache(policy Policy) *MemoryCache {
	return &MemoryCache{
		policy:     policy,
		maxEntries: DefaultMaxEntries,
		entries:    make(map[string]memoryEntry),
	}
}

// WithMaxEntries overrides the entry cap. Values below one disable the
// bound.
func (c *MemoryCache) WithMaxEntries(n int) *MemoryCache {
	c.maxEntries = n
	return c
}

// Get retrieves a cached value. Expired entries are removed lazily and
// report a miss.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// Set stores a value. A non-positive TTL falls back to the policy default;
// a policy that disables caching makes Set a no-op. At the entry cap,
// expired entries are swept first and then the soonest-expiring entry is
// evicted.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.policy.ShouldCache() {
		return nil
	}
	ttl = c.policy.EffectiveTTL(ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if _, exists := c.entries[key]; !exists {
			c.evictLocked()
		}
	}

	c.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a cached value. Idempotent.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops every entry.
func (c *MemoryCache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
}

// evictLocked sweeps expired entries; if nothing expired it evicts the
// entry closest to expiry.
func (c *MemoryCache) evictLocked() {
	now := time.Now()
	swept := false
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			swept = true
		}
	}
	if swept {
		return
	}

	var victim string
	var soonest time.Time
	for key, entry := range c.entries {
		if victim == "" || entry.expiresAt.Before(soonest) {
			victim = key
			soonest = entry.expiresAt
		}
	}
	if victim != "" {
		delete(c.entries, victim)
	}
}

var _ Cache = (*MemoryCache)(nil)
