package dashboard

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML so repeated fetches are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// CacheObserver counts chart cache lookups.
type CacheObserver interface {
	ChartCacheHit()
	ChartCacheMiss()
}

// ChartCache is an in-memory TTL cache for rendered charts. It also listens
// for dataset replacements and drops every entry when one lands.
type ChartCache struct {
	ttl      time.Duration
	mu       sync.RWMutex
	entries  map[string]cachedChart
	observer CacheObserver
}

// ChartCacheOption configures a ChartCache.
type ChartCacheOption func(*ChartCache)

// WithCacheObserver reports hits and misses to o.
func WithCacheObserver(o CacheObserver) ChartCacheOption {
	return func(c *ChartCache) {
		c.observer = o
	}
}

type cachedChart struct {
	html    string
	expires time.Time
}

// NewChartCache builds a cache with the provided TTL.
func NewChartCache(ttl time.Duration, opts ...ChartCacheOption) *ChartCache {
	c := &ChartCache{
		ttl:     ttl,
		entries: make(map[string]cachedChart),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// GetOrRender returns a cached entry or renders/stores a new one.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if html, ok := c.get(key); ok {
		if c.observer != nil {
			c.observer.ChartCacheHit()
		}
		return html, nil
	}
	if c != nil && c.observer != nil {
		c.observer.ChartCacheMiss()
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.set(key, html)
	return html, nil
}

func (c *ChartCache) get(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return "", false
	}
	return entry.html, true
}

// Purge drops every cached entry, e.g. after the dataset was replaced.
func (c *ChartCache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// StateChanged purges the cache after the campaign or chart dataset was
// replaced.
func (c *ChartCache) StateChanged(_ context.Context, change StateChange) error {
	switch change.Event {
	case ReplaceCampaigns{}.EventName(), ReplaceChartData{}.EventName():
		c.Purge()
	}
	return nil
}

// Len reports the number of cached entries, expired ones included.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ChartCache) set(key, html string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedChart{
		html:    html,
		expires: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// contentHash returns a deterministic hash of the JSON form of v. Map keys
// are sorted by encoding/json, so equal content hashes equally.
func contentHash(v any) string {
	if v == nil {
		return "empty"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
