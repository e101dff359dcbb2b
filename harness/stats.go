package harness

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MeanMedPctErrors compares an approximate Score vector against the
// cached exact truth value, returning the mean absolute error, the
// median absolute error (upper median for even counts), and the mean
// absolute percentage error across all players. A zero truth value is
// clamped to the smallest positive epsilon rather than skipped, so a
// nonzero estimate for a powerless player shows up as a huge relative
// error instead of vanishing from the average. The percentage error is
// on a 0-1 scale and rounded to three places.
func MeanMedPctErrors(approx, exact []float64) (meanAbs, medianAbs, meanAbsPct float64) {
	n := len(exact)
	if n == 0 || len(approx) != n {
		return 0, 0, 0
	}
	absErrors := make([]float64, n)
	pctErrors := make([]float64, n)
	for i := range exact {
		diff := math.Abs(approx[i] - exact[i])
		absErrors[i] = diff
		pctErrors[i] = diff / math.Max(epsilon, exact[i])
	}

	meanAbs = stat.Mean(absErrors, nil)

	sorted := append([]float64(nil), absErrors...)
	sort.Float64s(sorted)
	medianAbs = sorted[n/2]

	meanAbsPct = round3(stat.Mean(pctErrors, nil))
	return meanAbs, medianAbs, meanAbsPct
}

// epsilon is the difference between 1 and the next larger float64, the
// smallest clamp that keeps the percentage-error quotient defined.
const epsilon = 0x1p-52

// round3 rounds x to three decimal places, round-half-to-even.
func round3(x float64) float64 {
	const scale = 1000.0
	return math.RoundToEven(x*scale) / scale
}
