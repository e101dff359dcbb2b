package harness

import (
	"sync"

	"github.com/cndolo/fbasrank/metrics"
)

// TruthCache maps fbas_size to the exact power-index Score vector
// computed for some FBAS of that size, avoiding recomputation across
// repeated runs at the same top-tier size. It is process-scoped, not
// persisted, and safe for concurrent use by the worker pool.
type TruthCache struct {
	mu      sync.Mutex
	values  map[int][]float64
	metrics *metrics.Harness
}

// NewTruthCache returns an empty cache.
func NewTruthCache() *TruthCache {
	return &TruthCache{values: make(map[int][]float64)}
}

// WithMetrics attaches hit/miss counters to the cache.
func (c *TruthCache) WithMetrics(m *metrics.Harness) *TruthCache {
	c.metrics = m
	return c
}

// Get returns the cached scores for fbasSize, or (nil, false) on a cache
// miss.
func (c *TruthCache) Get(fbasSize int) ([]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	scores, ok := c.values[fbasSize]
	if c.metrics != nil {
		if ok {
			c.metrics.CacheHits.Inc()
		} else {
			c.metrics.CacheMisses.Inc()
		}
	}
	return scores, ok
}

// Put records scores for fbasSize, overwriting any previous entry.
func (c *TruthCache) Put(fbasSize int, scores []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[fbasSize] = scores
}
