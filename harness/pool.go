package harness

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cndolo/fbasrank/metrics"
	safemath "github.com/cndolo/fbasrank/utils/math"
)

// RunPool maps fn over tasks using a fixed-size worker pool of jobs
// goroutines, matching the teacher's benchmark-runner channel-fan-out
// shape. Results are returned in completion order, not input order; the
// harness tags each row with its (top_tier_size, run) key so downstream
// sorting does not depend on result order. A worker that panics is not
// recovered: an unrecoverable failure terminates the batch before any of
// its rows is written, so an existing output CSV is left as it was.
func RunPool[T, R any](tasks []T, jobs int, m *metrics.Harness, log *zap.Logger, fn func(T) R) []R {
	jobs = safemath.Max(safemath.Min(jobs, len(tasks)), 1)
	in := make(chan T)
	out := make(chan R)

	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m != nil {
				m.ActiveWorkers.Inc()
				defer m.ActiveWorkers.Dec()
			}
			for task := range in {
				start := time.Now()
				result := fn(task)
				if m != nil {
					m.TaskDuration.Observe(time.Since(start).Seconds())
					m.TasksCompleted.Inc()
				}
				out <- result
			}
		}()
	}

	go func() {
		for _, t := range tasks {
			in <- t
		}
		close(in)
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]R, 0, len(tasks))
	for r := range out {
		results = append(results, r)
		if log != nil {
			log.Info("completed measurement task", zap.Int("completed", len(results)), zap.Int("total", len(tasks)))
		}
	}
	return results
}
