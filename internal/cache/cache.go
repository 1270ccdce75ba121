// ABOUTME: In-memory cache with TTL-based expiration
// ABOUTME: Backs the read-through query cache for book listings

package cache

import (
	"sync"
	"time"

	"github.com/jdalton/bookshelf-cli/internal/debuglog"
)

type entry struct {
	data      interface{}
	expiresAt time.Time
}

type Cache struct {
	store sync.Map
	ttl   time.Duration
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl: ttl,
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		debuglog.Log("cache miss: %s", key)
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		debuglog.Warn("cache expired: %s", key)
		return nil, false
	}

	debuglog.Log("cache hit: %s", key)
	return e.data, true
}

func (c *Cache) Set(key string, value interface{}) {
	e := entry{
		data:      value,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.store.Store(key, e)
}

// Invalidate drops a key. Safe to call for keys that are not cached,
// so mutation handlers can invalidate unconditionally.
func (c *Cache) Invalidate(key string) {
	c.store.Delete(key)
}

// GetOrFetch returns the cached value for key, or runs fetch and caches
// its result. There is no deduplication: concurrent or back-to-back
// misses each run fetch, mirroring one round trip per refresh.
func (c *Cache) GetOrFetch(key string, fetch func() (interface{}, error)) (interface{}, error) {
	if val, ok := c.Get(key); ok {
		return val, nil
	}
	val, err := fetch()
	if err != nil {
		return nil, err
	}
	c.Set(key, val)
	return val, nil
}
