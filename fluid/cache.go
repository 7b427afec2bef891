package fluid

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

type pairKey struct {
	fluid    string
	property string
}

func (k pairKey) String() string {
	return k.fluid + "\x00" + k.property
}

// cacheEntry is either a built interpolator or a cached construction error.
type cacheEntry struct {
	interp *Interpolator
	err    error
}

// InterpolatorCache owns one lazily built Interpolator per (fluid, property).
// Entries, including negative ones for insufficient grids, are never rebuilt
// or evicted. Concurrent first requests for the same pair are serialized
// through a singleflight group, so each pair is constructed at most once.
type InterpolatorCache struct {
	table    *PropertyTable
	priority SourcePriority
	metrics  *Metrics

	mu      sync.RWMutex
	entries map[pairKey]cacheEntry
	group   singleflight.Group

	constructions atomic.Int64
}

// NewInterpolatorCache creates an empty cache over an immutable table.
func NewInterpolatorCache(tbl *PropertyTable, priority SourcePriority, metrics *Metrics) *InterpolatorCache {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &InterpolatorCache{
		table:    tbl,
		priority: priority,
		metrics:  metrics,
		entries:  make(map[pairKey]cacheEntry),
	}
}

// Get returns the interpolator for (fluid, property), building it on first
// use. The error is ErrInsufficientData (wrapped) for degenerate grids.
func (c *InterpolatorCache) Get(fluid, property string) (*Interpolator, error) {
	key := pairKey{fluid, property}
	if e, ok := c.lookup(key); ok {
		c.metrics.cacheHits.Inc()
		return e.interp, e.err
	}
	v, _, _ := c.group.Do(key.String(), func() (any, error) {
		// A previous flight may have finished between lookup and Do.
		if e, ok := c.lookup(key); ok {
			return e, nil
		}
		e := c.build(key)
		c.mu.Lock()
		c.entries[key] = e
		c.mu.Unlock()
		return e, nil
	})
	e := v.(cacheEntry)
	return e.interp, e.err
}

// Constructions returns how many grid builds the cache has performed.
func (c *InterpolatorCache) Constructions() int64 {
	return c.constructions.Load()
}

// Len returns the number of cached entries, negative ones included.
func (c *InterpolatorCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *InterpolatorCache) lookup(key pairKey) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *InterpolatorCache) build(key pairKey) cacheEntry {
	c.constructions.Add(1)
	start := time.Now()
	g, err := BuildGrid(c.table, c.priority, key.fluid, key.property)
	c.metrics.buildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, ErrInsufficientData) {
			c.metrics.builds.WithLabelValues("insufficient").Inc()
		}
		return cacheEntry{err: err}
	}
	c.metrics.builds.WithLabelValues("ok").Inc()
	return cacheEntry{interp: NewInterpolator(g)}
}
