package harness

// Powers is the sample-count grid the error and performance experiments
// sweep, 10^1 .. 10^8.
var Powers = [8]int{
	10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000,
}

// InputDataPoint identifies one measurement task: a synthetic FBAS of
// TopTierSize nodes, the Run'th of however many repeats are requested.
type InputDataPoint struct {
	TopTierSize int
	Run         int
}

// ErrorDataPoint is one row of the `fbasmeasure error` CSV: for each
// power-of-ten sample count, the mean absolute error, median absolute
// error, and mean absolute percentage error of the approximate power
// index against the cached exact truth value.
type ErrorDataPoint struct {
	TopTierSize     int
	Run             int
	MeanAbsError    [8]float64
	MedianAbsError  [8]float64
	MeanAbsPctError [8]float64
}

// ErrorTask is one unit of work for the error experiment: either a
// fresh analysis of Input or a reuse of an already-computed row.
type ErrorTask struct {
	Input InputDataPoint
	Reuse *ErrorDataPoint
}

// PerfTask is ErrorTask's analogue for the performance experiment.
type PerfTask struct {
	Input InputDataPoint
	Reuse *PerfDataPoint
}

// PerfDataPoint is one row of the `fbasmeasure perf` CSV: wall-clock
// durations for NodeRank, the exact power index, and the approximate
// power index at each sample count, each measured both with and without
// a precomputed top tier (the "_after_mq_" variants skip minimal-quorum
// recomputation).
type PerfDataPoint struct {
	TopTierSize int
	Run         int

	DurationNodeRank        float64
	DurationNodeRankAfterMQ float64

	DurationExact        float64
	DurationExactAfterMQ float64

	DurationApprox        [8]float64
	DurationApproxAfterMQ [8]float64
}
