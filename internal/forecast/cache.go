// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forecast

import (
	"context"
	"sync"
	"time"
)

type cacheKey struct {
	Provider string
	Query    string
}

type cacheEntry struct {
	Forecast *Forecast
	Expiry   time.Time
}

// CachedLoader wraps a Loader and keeps each successful result for a fixed TTL.
type CachedLoader struct {
	loader Loader
	ttl    time.Duration

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

func NewCachedLoader(loader Loader, ttl time.Duration) *CachedLoader {
	return &CachedLoader{
		loader: loader,
		ttl:    ttl,
		cache:  make(map[cacheKey]cacheEntry),
	}
}

func (c *CachedLoader) Name() string {
	return "forecast cache using " + c.loader.Name()
}

func (c *CachedLoader) Forecast(ctx context.Context, query Query) (*Forecast, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	key := cacheKey{Provider: c.loader.Name(), Query: query.Key()}

	c.mu.RLock()
	entry, ok := c.cache[key]
	if ok && time.Now().Before(entry.Expiry) {
		hit := *entry.Forecast
		c.mu.RUnlock()
		hit.CacheHit = true
		return &hit, nil
	}
	c.mu.RUnlock()

	result, err := c.loader.Forecast(ctx, query)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{
		Forecast: result,
		Expiry:   time.Now().Add(c.ttl),
	}

	return result, nil
}

// Invalidate drops the cached result for query, expired or not, so the next Forecast call
// for it reaches the wrapped loader.
func (c *CachedLoader) Invalidate(query Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, cacheKey{Provider: c.loader.Name(), Query: query.Key()})
}

// Purge removes all expired entries.
func (c *CachedLoader) Purge() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.cache {
		if now.After(entry.Expiry) {
			delete(c.cache, key)
		}
	}
}
