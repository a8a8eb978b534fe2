// Package cache holds the engine's only process-lifetime shared state: a
// bounded memo of regression coefficients. It is an explicit, instance-owned
// component rather than a hidden singleton so long-running hosts can size it.
package cache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultRegressionCacheSize bounds the coefficient cache when the host does
// not configure one.
const DefaultRegressionCacheSize = 256

// Coefficients is a cached OLS fit.
type Coefficients struct {
	Slope     float64
	Intercept float64
}

// CacheStats tracks cache performance counters.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
}

// RegressionCache memoizes regression coefficients behind an LRU bound, so
// repeated fits over the same series stay cheap without growing unbounded.
type RegressionCache struct {
	lru   *lru.Cache[string, Coefficients]
	mu    sync.Mutex
	stats CacheStats
}

// NewRegressionCache creates a cache bounded to size entries.
func NewRegressionCache(size int) (*RegressionCache, error) {
	if size <= 0 {
		size = DefaultRegressionCacheSize
	}
	c, err := lru.New[string, Coefficients](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create regression cache: %w", err)
	}
	return &RegressionCache{lru: c}, nil
}

// Key derives a cache key from the shape of a fit: series length, x-axis
// mode, and the endpoint values. The source system keyed on lengths alone;
// the endpoints narrow collisions without changing the derived-key contract.
func (c *RegressionCache) Key(n int, xMode string, firstY, lastY float64) string {
	return fmt.Sprintf("%d:%s:%g:%g", n, xMode, firstY, lastY)
}

// Get returns the cached coefficients for key.
func (c *RegressionCache) Get(key string) (Coefficients, bool) {
	co, ok := c.lru.Get(key)
	c.mu.Lock()
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.mu.Unlock()
	return co, ok
}

// Add stores coefficients under key, evicting the least recently used entry
// when the bound is reached.
func (c *RegressionCache) Add(key string, co Coefficients) {
	c.lru.Add(key, co)
	c.mu.Lock()
	c.stats.Sets++
	c.mu.Unlock()
}

// Len returns the number of cached fits.
func (c *RegressionCache) Len() int {
	return c.lru.Len()
}

// Stats returns a snapshot of the hit/miss counters.
func (c *RegressionCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
