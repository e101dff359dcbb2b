package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cndolo/fbasrank/exactindex"
	"github.com/cndolo/fbasrank/game"
)

func TestGenerateInputs(t *testing.T) {
	require := require.New(t)

	inputs := GenerateInputs(6, 2, Stellar)
	require.Equal([]InputDataPoint{
		{TopTierSize: 3, Run: 0},
		{TopTierSize: 3, Run: 1},
		{TopTierSize: 6, Run: 0},
		{TopTierSize: 6, Run: 1},
	}, inputs)

	// MobileCoin steps by 1.
	require.Len(GenerateInputs(3, 1, MobileCoin), 3)
}

func TestFbasTypeNodeIncrements(t *testing.T) {
	require := require.New(t)
	require.Equal(3, Stellar.NodeIncrements())
	require.Equal(1, MobileCoin.NodeIncrements())
	require.Equal(1, NonSymmetric.NodeIncrements())
}

func TestMakeOneMobileCoin(t *testing.T) {
	require := require.New(t)

	f := MobileCoin.MakeOne(4)
	require.Equal(4, f.NumberOfNodes())
	qs, ok := f.GetQuorumSet(0)
	require.True(ok)
	// 67% threshold over 4 nodes.
	require.Equal(3, qs.Threshold)
	require.Len(qs.Validators, 4)

	// Every node is in the top tier.
	require.Len(game.ComputeTopTier(f), 4)
}

func TestMakeOneStellar(t *testing.T) {
	require := require.New(t)

	f := Stellar.MakeOne(6)
	require.Equal(6, f.NumberOfNodes())
	qs, ok := f.GetQuorumSet(0)
	require.True(ok)
	require.Len(qs.InnerQuorumSets, 2)
	require.Equal(2, qs.InnerQuorumSets[0].Threshold)
	require.Len(game.ComputeTopTier(f), 6)
}

func TestTruthCache(t *testing.T) {
	require := require.New(t)

	cache := NewTruthCache()
	_, ok := cache.Get(3)
	require.False(ok)

	cache.Put(3, []float64{0.333, 0.333, 0.333})
	scores, ok := cache.Get(3)
	require.True(ok)
	require.Equal([]float64{0.333, 0.333, 0.333}, scores)
}

func TestGetOrComputeTruthPopulatesCache(t *testing.T) {
	require := require.New(t)

	cache := NewTruthCache()
	f := MobileCoin.MakeOne(3)
	scores := GetOrComputeTruth(cache, f.NumberOfNodes(), f, true, nil)

	expected, err := exactindex.Compute(game.New(f, nil), true)
	require.NoError(err)
	require.Equal(expected, scores)

	cached, ok := cache.Get(3)
	require.True(ok)
	require.Equal(expected, cached)
}

func TestMeanMedPctErrors(t *testing.T) {
	require := require.New(t)

	mean, median, _ := MeanMedPctErrors(
		[]float64{3.0, -0.5, 2.0, 7.0},
		[]float64{2.5, 0.0, 2.0, 8.0},
	)
	require.InDelta(0.5, mean, 1e-12)
	require.InDelta(0.5, median, 1e-12)
}

func TestMeanAbsPctError(t *testing.T) {
	require := require.New(t)

	// Relative errors 0.1, 0.5 and 0.2 average to 0.267 after
	// rounding.
	_, _, pct := MeanMedPctErrors(
		[]float64{0.9, 15.0, 1.2e6},
		[]float64{1.0, 10.0, 1e6},
	)
	require.InDelta(0.267, pct, 1e-12)
}

func TestMeanAbsPctErrorClampsZeroTruth(t *testing.T) {
	require := require.New(t)

	// A nonzero estimate against a zero truth value is divided by the
	// epsilon clamp, not dropped, and dominates the average.
	_, _, pct := MeanMedPctErrors(
		[]float64{0.1, 0.3},
		[]float64{0.0, 0.3},
	)
	require.Greater(pct, 1e12)
}

func TestMeanMedPctErrorsLengthMismatch(t *testing.T) {
	require := require.New(t)
	mean, median, pct := MeanMedPctErrors([]float64{1}, []float64{1, 2})
	require.Zero(mean)
	require.Zero(median)
	require.Zero(pct)
}

func TestBuildErrorTasklistSplitsReuseAndAnalyze(t *testing.T) {
	require := require.New(t)

	inputs := GenerateInputs(2, 1, MobileCoin)
	existing := map[InputDataPoint]ErrorDataPoint{
		{TopTierSize: 1, Run: 0}: {TopTierSize: 1, Run: 0},
	}
	tasks := BuildErrorTasklist(inputs, existing)
	require.Len(tasks, 2)
	require.NotNil(tasks[0].Reuse)
	require.Nil(tasks[1].Reuse)
	require.Equal(2, tasks[1].Input.TopTierSize)
}

func TestRunErrorTaskReusePathIsIdempotent(t *testing.T) {
	require := require.New(t)

	row := ErrorDataPoint{TopTierSize: 3, Run: 1}
	row.MeanAbsError[0] = 0.5
	tasks := BuildErrorTasklist(
		[]InputDataPoint{{TopTierSize: 3, Run: 1}},
		map[InputDataPoint]ErrorDataPoint{{TopTierSize: 3, Run: 1}: row},
	)
	require.Len(tasks, 1)
	got := RunErrorTask(tasks[0], MobileCoin, NewTruthCache(), true, 1, nil)
	require.Equal(row, got)
}

func TestRunPerfTaskReusePathIsIdempotent(t *testing.T) {
	require := require.New(t)

	row := PerfDataPoint{TopTierSize: 3, Run: 0, DurationExact: 1.25}
	tasks := BuildPerfTasklist(
		[]InputDataPoint{{TopTierSize: 3, Run: 0}},
		map[InputDataPoint]PerfDataPoint{{TopTierSize: 3, Run: 0}: row},
	)
	require.Len(tasks, 1)
	got := RunPerfTask(tasks[0], MobileCoin, true, 1, nil)
	require.Equal(row, got)
}

func TestRunPool(t *testing.T) {
	require := require.New(t)

	tasks := []int{1, 2, 3, 4, 5}
	results := RunPool(tasks, 3, nil, nil, func(n int) int { return n * n })
	require.ElementsMatch([]int{1, 4, 9, 16, 25}, results)
}

func TestRunPoolMoreJobsThanTasks(t *testing.T) {
	require := require.New(t)

	results := RunPool([]int{1}, 16, nil, nil, func(n int) int { return n + 1 })
	require.Equal([]int{2}, results)
}

func TestErrorCSVRoundTrip(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "error.csv")
	rows := []ErrorDataPoint{
		{TopTierSize: 3, Run: 0},
		{TopTierSize: 3, Run: 1},
	}
	rows[0].MeanAbsError[0] = 0.125
	rows[0].MedianAbsError[7] = 0.0625
	rows[1].MeanAbsPctError[3] = 12.5

	require.NoError(WriteErrorCSV(path, rows, false))

	read, err := ReadExistingErrorRows(path)
	require.NoError(err)
	require.Len(read, 2)
	require.Equal(rows[0], read[InputDataPoint{TopTierSize: 3, Run: 0}])
	require.Equal(rows[1], read[InputDataPoint{TopTierSize: 3, Run: 1}])
}

func TestPerfCSVRoundTrip(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "perf.csv")
	row := PerfDataPoint{
		TopTierSize:             6,
		Run:                     2,
		DurationNodeRank:        0.5,
		DurationNodeRankAfterMQ: 0.5,
		DurationExact:           1.75,
		DurationExactAfterMQ:    1.5,
	}
	row.DurationApprox[0] = 0.25
	row.DurationApproxAfterMQ[7] = 8.125

	require.NoError(WritePerfCSV(path, []PerfDataPoint{row}, false))

	read, err := ReadExistingPerfRows(path)
	require.NoError(err)
	require.Len(read, 1)
	require.Equal(row, read[InputDataPoint{TopTierSize: 6, Run: 2}])
}

func TestWriteRefusesToOverwrite(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(os.WriteFile(path, []byte("existing"), 0o644))

	err := WriteErrorCSV(path, nil, false)
	require.ErrorIs(err, ErrOutputExists)

	// --update may overwrite.
	require.NoError(WriteErrorCSV(path, nil, true))
}

func TestReadExistingRowsMissingFile(t *testing.T) {
	require := require.New(t)

	rows, err := ReadExistingErrorRows(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(err)
	require.Empty(rows)

	perf, err := ReadExistingPerfRows(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(err)
	require.Empty(perf)
}
