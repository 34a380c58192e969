package comicapi

import (
	"sync"
	"time"
)

// cacheEntry holds one cached payload together with its store time.
// Entries are inserted and evicted whole, never partially updated.
type cacheEntry struct {
	payload  []byte
	storedAt time.Time
}

// ResponseCache is a time-boxed in-memory store keyed by request
// signature. Expiry is checked lazily on read; there is no background
// sweep and no size bound beyond TTL eviction, which is a deliberate
// simplification for the catalog's working set.
type ResponseCache struct {
	mu    sync.Mutex
	store map[string]*cacheEntry
	ttl   time.Duration
}

// NewResponseCache creates a cache whose entries expire ttl after Set.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
	}
}

// Get returns the payload stored under sig, or false on miss or expiry.
// An expired entry is removed on the spot.
func (c *ResponseCache) Get(sig string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.store[sig]
	if !exists {
		return nil, false
	}

	if time.Since(entry.storedAt) > c.ttl {
		delete(c.store, sig)
		return nil, false
	}

	return entry.payload, true
}

// Set stores payload under sig, replacing any previous entry.
func (c *ResponseCache) Set(sig string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[sig] = &cacheEntry{
		payload:  payload,
		storedAt: time.Now(),
	}
}

// Delete removes a single entry.
func (c *ResponseCache) Delete(sig string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.store, sig)
}

// Clear removes all entries unconditionally.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*cacheEntry)
}

// Len returns the current number of entries, expired or not.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.store)
}
