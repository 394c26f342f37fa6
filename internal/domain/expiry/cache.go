package expiry

import (
	"sync"
	"time"
)

// Cache memoizes freshness computations per expiry date. Many items share
// the same date, so the derived state is computed once per distinct date and
// reused until the cache is cleared.
//
// Callers must Clear the cache whenever the underlying item collection is
// replaced or the calendar day may have changed; cached entries are valid
// only relative to the moment they were computed.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Info
}

// NewCache creates an empty freshness cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Info)}
}

// Get returns the freshness info for the given expiry date, computing and
// memoizing it on first access.
func (c *Cache) Get(expiryDate string, now time.Time) Info {
	c.mu.RLock()
	info, ok := c.entries[expiryDate]
	c.mu.RUnlock()
	if ok {
		return info
	}

	info = Compute(expiryDate, now)

	c.mu.Lock()
	c.entries[expiryDate] = info
	c.mu.Unlock()
	return info
}

// Clear drops all memoized entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]Info)
	c.mu.Unlock()
}

// Len reports the number of memoized dates.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
