package insight

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// responseCache is a bounded LRU with lazy TTL eviction: an expired entry is
// treated as a miss and removed on read. The LRU bound prevents unbounded
// growth under sustained unique-query load; there is no background sweep.
type responseCache struct {
	lru *lru.Cache[string, cacheEntry]
	ttl time.Duration
	now func() time.Time
}

type cacheEntry struct {
	storedAt time.Time
	text     string
}

func newResponseCache(maxEntries int, ttl time.Duration) *responseCache {
	if maxEntries <= 0 {
		maxEntries = 512
	}
	// lru.New only fails on a non-positive size.
	c, _ := lru.New[string, cacheEntry](maxEntries)
	return &responseCache{
		lru: c,
		ttl: ttl,
		now: time.Now,
	}
}

// cacheKey hashes the full determinism tuple: prompt, model id, domain, and
// analysis type.
func cacheKey(prompt, modelID, domain, analysisType string) string {
	h := sha256.New()
	h.Write([]byte(prompt))
	h.Write([]byte{'|'})
	h.Write([]byte(modelID))
	h.Write([]byte{'|'})
	h.Write([]byte(domain))
	h.Write([]byte{'|'})
	h.Write([]byte(analysisType))
	return hex.EncodeToString(h.Sum(nil))
}

// get returns the cached text if present and fresh.
func (c *responseCache) get(key string) (string, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return "", false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		c.lru.Remove(key)
		return "", false
	}
	return entry.text, true
}

// put stores a response. Last writer wins; values are deterministic for a
// given key so overwrites are idempotent.
func (c *responseCache) put(key, text string) {
	c.lru.Add(key, cacheEntry{storedAt: c.now(), text: text})
}

// len reports the number of live entries (including any not yet lazily
// expired).
func (c *responseCache) len() int {
	return c.lru.Len()
}
