// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package totp

import "sync"

// DefaultCacheSize bounds the number of cached codes.
const DefaultCacheSize = 100

type cacheEntry struct {
	code   string
	window int64
}

// Cache is a concurrency-safe, bounded map of secret -> (code, window). A
// lookup hits only when the stored window matches the current one; a stale
// entry is actively wrong, not merely less useful, so eviction is driven by
// window staleness rather than access recency.
type Cache struct {
	mu      sync.RWMutex
	max     int
	entries map[string]cacheEntry
}

// NewCache returns a cache bounded to max entries.
func NewCache(max int) *Cache {
	return &Cache{max: max, entries: make(map[string]cacheEntry)}
}

// Get returns the cached code for secret if it was computed for window.
func (c *Cache) Get(secret string, window int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[secret]
	if !ok || e.window != window {
		return "", false
	}
	return e.code, true
}

// Put stores the code computed for (secret, window), overwriting any prior
// entry for the secret. On overflow it first purges every entry whose window
// differs from the given one; if the cache is still over its bound it is
// cleared entirely before the fresh entry is kept.
func (c *Cache) Put(secret string, window int64, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[secret] = cacheEntry{code: code, window: window}
	if len(c.entries) <= c.max {
		return
	}
	for k, e := range c.entries {
		if e.window != window {
			delete(c.entries, k)
		}
	}
	if len(c.entries) > c.max {
		c.entries = map[string]cacheEntry{secret: {code: code, window: window}}
	}
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
