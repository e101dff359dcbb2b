// Package metrics instruments the measurement harness with Prometheus
// collectors. The ranking engine itself stays pure and unmetered; only
// the multi-threaded harness (component "Measurement harness" in the
// system overview) reports runtime state.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Harness exposes the harness's worker-pool and truth-cache instruments.
type Harness struct {
	ActiveWorkers   prometheus.Gauge
	TasksCompleted  prometheus.Counter
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	TaskDuration    prometheus.Histogram
}

// NewHarness creates and registers the harness collectors against reg.
func NewHarness(reg prometheus.Registerer) (*Harness, error) {
	h := &Harness{
		ActiveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fbasrank",
			Subsystem: "harness",
			Name:      "active_workers",
			Help:      "Number of worker goroutines currently executing a task.",
		}),
		TasksCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fbasrank",
			Subsystem: "harness",
			Name:      "tasks_completed_total",
			Help:      "Total number of completed measurement tasks.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fbasrank",
			Subsystem: "harness",
			Name:      "truth_cache_hits_total",
			Help:      "Total number of truth-cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fbasrank",
			Subsystem: "harness",
			Name:      "truth_cache_misses_total",
			Help:      "Total number of truth-cache misses.",
		}),
		TaskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fbasrank",
			Subsystem: "harness",
			Name:      "task_duration_seconds",
			Help:      "Wall-clock duration of a single measurement task.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
	}
	collectors := []prometheus.Collector{
		h.ActiveWorkers, h.TasksCompleted, h.CacheHits, h.CacheMisses, h.TaskDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}
