package harness

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cndolo/fbasrank/approxindex"
	"github.com/cndolo/fbasrank/exactindex"
	"github.com/cndolo/fbasrank/fbas"
	"github.com/cndolo/fbasrank/game"
	"github.com/cndolo/fbasrank/noderank"
	"github.com/cndolo/fbasrank/utils/sampler"
)

func approxAt(g *game.CooperativeGame, samples int, qiCheck bool, seed uint64) ([]float64, error) {
	return approxindex.Compute(g, samples, qiCheck, seed)
}

// GenerateInputs builds the input grid for a maxTopTierSize sweep: every
// top-tier size up to maxTopTierSize divisible by t's node increment,
// repeated runs times.
func GenerateInputs(maxTopTierSize, runs int, t FbasType) []InputDataPoint {
	step := t.NodeIncrements()
	var inputs []InputDataPoint
	for size := step; size <= maxTopTierSize; size += step {
		for run := 0; run < runs; run++ {
			inputs = append(inputs, InputDataPoint{TopTierSize: size, Run: run})
		}
	}
	return inputs
}

// BuildErrorTasklist turns inputs into a task list sorted by top-tier
// size so the harness progresses from small to large FBASes: inputs with
// a row in existing become reuse tasks, the rest need a fresh analysis.
func BuildErrorTasklist(inputs []InputDataPoint, existing map[InputDataPoint]ErrorDataPoint) []ErrorTask {
	tasks := make([]ErrorTask, 0, len(inputs))
	for _, in := range inputs {
		task := ErrorTask{Input: in}
		if row, ok := existing[in]; ok {
			row := row
			task.Reuse = &row
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Input.TopTierSize < tasks[j].Input.TopTierSize })
	return tasks
}

// BuildPerfTasklist is BuildErrorTasklist's analogue for the
// performance experiment.
func BuildPerfTasklist(inputs []InputDataPoint, existing map[InputDataPoint]PerfDataPoint) []PerfTask {
	tasks := make([]PerfTask, 0, len(inputs))
	for _, in := range inputs {
		task := PerfTask{Input: in}
		if row, ok := existing[in]; ok {
			row := row
			task.Reuse = &row
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Input.TopTierSize < tasks[j].Input.TopTierSize })
	return tasks
}

// RunErrorTask executes one error-experiment task: a reuse task returns
// its cached row untouched, an analysis task runs MeasureError.
func RunErrorTask(task ErrorTask, t FbasType, cache *TruthCache, qiCheck bool, seed uint64, log *zap.Logger) ErrorDataPoint {
	if task.Reuse != nil {
		if log != nil {
			log.Info("reusing existing analysis results",
				zap.Int("top_tier_size", task.Input.TopTierSize), zap.Int("run", task.Input.Run))
		}
		return *task.Reuse
	}
	return MeasureError(task.Input, t, cache, qiCheck, seed, log)
}

// RunPerfTask is RunErrorTask's analogue for the performance experiment.
func RunPerfTask(task PerfTask, t FbasType, qiCheck bool, seed uint64, log *zap.Logger) PerfDataPoint {
	if task.Reuse != nil {
		if log != nil {
			log.Info("reusing existing analysis results",
				zap.Int("top_tier_size", task.Input.TopTierSize), zap.Int("run", task.Input.Run))
		}
		return *task.Reuse
	}
	return MeasurePerf(task.Input, t, qiCheck, seed, log)
}

// GetOrComputeTruth returns the exact power index for an FBAS of
// fbasSize nodes, consulting and populating cache.
func GetOrComputeTruth(cache *TruthCache, fbasSize int, f *fbas.Fbas, qiCheck bool, log *zap.Logger) []float64 {
	if scores, ok := cache.Get(fbasSize); ok {
		if log != nil {
			log.Info("truth cache hit", zap.Int("fbas_size", fbasSize))
		}
		return scores
	}
	if log != nil {
		log.Warn("truth cache miss, computing exact power index", zap.Int("fbas_size", fbasSize))
	}
	scores, err := exactindex.Compute(game.New(f, nil), qiCheck)
	if err != nil {
		if log != nil {
			log.Error("exact power index failed while computing truth value", zap.Error(err))
		}
		return nil
	}
	cache.Put(fbasSize, scores)
	return scores
}

// MeasureError runs the approximate power index at every power-of-ten
// sample count against a cached exact truth value and reports the
// resulting error statistics.
func MeasureError(in InputDataPoint, t FbasType, cache *TruthCache, qiCheck bool, seed uint64, log *zap.Logger) ErrorDataPoint {
	f := t.MakeOne(in.TopTierSize)
	exact := GetOrComputeTruth(cache, f.NumberOfNodes(), f, qiCheck, log)

	row := ErrorDataPoint{TopTierSize: in.TopTierSize, Run: in.Run}
	g := game.New(f, nil)
	// Each run draws from its own derived seed, otherwise every run at
	// the same size would produce an identical row.
	runSeed := sampler.SubSeed(seed, in.Run)
	for i, m := range Powers {
		approx, err := approxAt(g, m, qiCheck, runSeed)
		if err != nil {
			if log != nil {
				log.Error("approximate power index failed", zap.Error(err), zap.Int("samples", m))
			}
			continue
		}
		mean, median, pct := MeanMedPctErrors(approx, exact)
		row.MeanAbsError[i] = mean
		row.MedianAbsError[i] = median
		row.MeanAbsPctError[i] = pct
	}
	return row
}

// MeasurePerf times NodeRank and both power-index engines, each with
// and without a precomputed top tier, at every power-of-ten sample
// count.
func MeasurePerf(in InputDataPoint, t FbasType, qiCheck bool, seed uint64, log *zap.Logger) PerfDataPoint {
	f := t.MakeOne(in.TopTierSize)
	row := PerfDataPoint{TopTierSize: in.TopTierSize, Run: in.Run}
	seed = sampler.SubSeed(seed, in.Run)

	row.DurationNodeRank = timeIt(func() { noderank.Compute(f, log) })

	topTier := game.ComputeTopTier(f)
	// NodeRank never consults the top tier, so the after-MQ variant is
	// identical; the column exists so every row has the same shape as
	// the power-index measurements, whose after-MQ variant does differ.
	row.DurationNodeRankAfterMQ = row.DurationNodeRank

	row.DurationExact = timeIt(func() {
		_, _ = exactindex.Compute(game.New(f, nil), qiCheck)
	})
	row.DurationExactAfterMQ = timeIt(func() {
		_, _ = exactindex.Compute(game.New(f, topTier), qiCheck)
	})

	for i, m := range Powers {
		row.DurationApprox[i] = timeIt(func() {
			_, _ = approxAt(game.New(f, nil), m, qiCheck, seed)
		})
		row.DurationApproxAfterMQ[i] = timeIt(func() {
			_, _ = approxAt(game.New(f, topTier), m, qiCheck, seed)
		})
	}
	return row
}

func timeIt(fn func()) float64 {
	start := time.Now()
	fn()
	return time.Since(start).Seconds()
}
