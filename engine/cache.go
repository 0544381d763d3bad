// SPDX-License-Identifier: MIT

package engine

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

// termCache is a write-once-per-key memo of term lists. Concurrent misses on
// one key are collapsed by singleflight, so each entry is computed at most
// once; entries are never overwritten or invalidated.
type termCache[V any] struct {
	mu    sync.RWMutex
	items map[string]V
	group singleflight.Group
	hit   prometheus.Counter
	miss  prometheus.Counter
}

func newTermCache[V any](name string) *termCache[V] {
	return &termCache[V]{
		items: make(map[string]V),
		hit:   cacheLookups.WithLabelValues(name, "hit"),
		miss:  cacheLookups.WithLabelValues(name, "miss"),
	}
}

func (c *termCache[V]) lookup(key string) (V, bool) {
	c.mu.RLock()
	v, ok := c.items[key]
	c.mu.RUnlock()

	return v, ok
}

// get returns the cached value for key or computes, stores and returns it.
// A failed computation stores nothing.
func (c *termCache[V]) get(key string, compute func() (V, error)) (V, error) {
	if v, ok := c.lookup(key); ok {
		c.hit.Inc()
		return v, nil
	}
	c.miss.Inc()

	res, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if prev, ok := c.items[key]; ok {
			v = prev
		} else {
			c.items[key] = v
		}
		c.mu.Unlock()

		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return res.(V), nil
}

func (c *termCache[V]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// pairCache memoizes a function symmetric in its two real arguments under
// the sorted pair. Duplicate computation by racing workers is harmless: the
// first stored value wins and is what every later lookup returns.
type pairCache struct {
	mu    sync.RWMutex
	items map[[2]float64]float64
	hit   prometheus.Counter
	miss  prometheus.Counter
}

func newPairCache(name string) *pairCache {
	return &pairCache{
		items: make(map[[2]float64]float64),
		hit:   cacheLookups.WithLabelValues(name, "hit"),
		miss:  cacheLookups.WithLabelValues(name, "miss"),
	}
}

func (c *pairCache) get(a, b float64, compute func(a, b float64) float64) float64 {
	if b < a {
		a, b = b, a
	}
	key := [2]float64{a, b}
	c.mu.RLock()
	v, ok := c.items[key]
	c.mu.RUnlock()
	if ok {
		c.hit.Inc()
		return v
	}
	c.miss.Inc()

	v = compute(a, b)
	c.mu.Lock()
	if prev, ok := c.items[key]; ok {
		v = prev
	} else {
		c.items[key] = v
	}
	c.mu.Unlock()

	return v
}

func (c *pairCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
