package service

import (
	"context"

	"datax/internal/adapters/source"
	"datax/internal/core/dataset"
	"datax/internal/platform/metrics"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheEntries bounds the cache when no size is configured
const DefaultCacheEntries = 8

// Loader reads one source
type Loader func(ctx context.Context, src string) (dataset.Loaded, error)

// Cache holds loaded datasets keyed by source identity.
// Concurrent misses for one source share a single load; failures are not cached.
// Entries are immutable and evicted least recently used first.
type Cache struct {
	load    Loader
	group   singleflight.Group
	entries *lru.Cache[string, dataset.Loaded]
}

// NewCache builds a cache over load; max < 1 uses DefaultCacheEntries
func NewCache(load Loader, max int) *Cache {
	if max < 1 {
		max = DefaultCacheEntries
	}
	entries, _ := lru.New[string, dataset.Loaded](max) // only fails for size < 1
	return &Cache{load: load, entries: entries}
}

// Get returns the dataset for src, loading it at most once per identity
func (c *Cache) Get(ctx context.Context, src string) (dataset.Loaded, error) {
	key := source.Identity(src)
	if l, ok := c.entries.Get(key); ok {
		return l, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		if l, ok := c.entries.Get(key); ok {
			return l, nil
		}
		// the load outlives any single waiter; the source timeout bounds it
		l, err := c.load(context.WithoutCancel(ctx), src)
		if err != nil {
			return dataset.Loaded{}, err
		}
		c.entries.Add(key, l)
		metrics.CacheEntries.Set(float64(c.entries.Len()))
		return l, nil
	})

	select {
	case <-ctx.Done():
		return dataset.Loaded{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return dataset.Loaded{}, res.Err
		}
		return res.Val.(dataset.Loaded), nil
	}
}

// Invalidate drops src so the next Get reloads it
func (c *Cache) Invalidate(src string) {
	c.entries.Remove(source.Identity(src))
	metrics.CacheEntries.Set(float64(c.entries.Len()))
}

// Len is the number of cached datasets
func (c *Cache) Len() int { return c.entries.Len() }
