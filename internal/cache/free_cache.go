package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/coocood/freecache"
)

var _ Cache = (*FreeCache)(nil)

const megabyte = 1024 * 1024

// FreeCache is a byte cache backed by freecache; entries are evicted by ttl or by size pressure.
type FreeCache struct {
	cache      *freecache.Cache
	generation atomic.Uint64
}

func NewFreeCache(sizeMegabytes int) *FreeCache {
	return &FreeCache{
		cache: freecache.NewCache(sizeMegabytes * megabyte),
	}
}

func (c *FreeCache) Get(key string) ([]byte, bool) {
	value, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return value, true
}

func (c *FreeCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		return fmt.Errorf("cache set [%s]: %w", key, err)
	}
	return nil
}

func (c *FreeCache) Clear() {
	c.generation.Add(1)
	c.cache.Clear()
}

func (c *FreeCache) Generation() uint64 {
	return c.generation.Load()
}

func (c *FreeCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
