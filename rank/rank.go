// Package rank implements the dispatcher and reward allocators
// (component F): routing a RankRequest to NodeRank or a power-index
// engine, turning scores into proportional reward allocations, and
// assembling sorted score/reward reports.
package rank

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/cndolo/fbasrank/approxindex"
	"github.com/cndolo/fbasrank/exactindex"
	"github.com/cndolo/fbasrank/fbas"
	"github.com/cndolo/fbasrank/game"
	"github.com/cndolo/fbasrank/noderank"
	"github.com/cndolo/fbasrank/validators"
)

// Algorithm identifies which ranking engine a RankRequest selects.
type Algorithm int

const (
	// NodeRank runs the PageRank-derived NodeRank computer.
	NodeRank Algorithm = iota
	// PowerIndexEnum runs the exact Shapley-Shubik engine.
	PowerIndexEnum
	// PowerIndexApprox runs the Monte Carlo Shapley-Shubik engine.
	PowerIndexApprox
)

// RankRequest selects a ranking algorithm and its parameters. TopTier is
// only consulted by PowerIndexEnum and PowerIndexApprox; when nil, each
// engine computes its own.
type RankRequest struct {
	Alg     Algorithm
	TopTier []fbas.NodeID
	Samples int
	Seed    uint64
	QICheck bool
}

// RankNodes dispatches req to the matching engine and returns a Score
// vector of length f.NumberOfNodes(), one entry per NodeID in order.
func RankNodes(f *fbas.Fbas, req RankRequest, log *zap.Logger) ([]float64, error) {
	switch req.Alg {
	case NodeRank:
		return noderank.Compute(f, log), nil
	case PowerIndexEnum:
		g := game.New(f, req.TopTier)
		scores, err := exactindex.Compute(g, req.QICheck)
		if err != nil {
			logFatal(log, "exact power index failed", err, f)
			return nil, fmt.Errorf("rank: %w", err)
		}
		return scores, nil
	case PowerIndexApprox:
		g := game.New(f, req.TopTier)
		scores, err := approxindex.Compute(g, req.Samples, req.QICheck, req.Seed)
		if err != nil {
			logFatal(log, "approximate power index failed", err, f)
			return nil, fmt.Errorf("rank: %w", err)
		}
		return scores, nil
	default:
		return nil, fmt.Errorf("rank: unknown algorithm %d", req.Alg)
	}
}

func logFatal(log *zap.Logger, msg string, err error, f *fbas.Fbas) {
	if log == nil {
		return
	}
	log.Error(msg, zap.Error(err), zap.Int("fbas_size", f.NumberOfNodes()))
}

// GraphTheoryDistribution runs NodeRank and allocates reward
// proportionally to each node's score: reward * score[i] / sum(score).
// If every score is zero (no node appears in any quorum set), every
// allocation is zero. Returns the scores alongside the rewards so the
// report does not need a second ranking pass.
func GraphTheoryDistribution(f *fbas.Fbas, reward float64, log *zap.Logger) (scores, rewards []float64) {
	scores = noderank.Compute(f, log)
	return scores, proportional(scores, reward)
}

// ExactGameTheoryDistribution runs the exact power index and allocates
// reward * score[i] directly, since power-index scores already sum to
// (approximately) 1.
func ExactGameTheoryDistribution(f *fbas.Fbas, reward float64, topTier []fbas.NodeID, qiCheck bool, log *zap.Logger) (scores, rewards []float64, err error) {
	g := game.New(f, topTier)
	scores, err = exactindex.Compute(g, qiCheck)
	if err != nil {
		logFatal(log, "exact power index failed", err, f)
		return nil, nil, fmt.Errorf("rank: %w", err)
	}
	return scores, directAllocation(scores, reward), nil
}

// ApproxGameTheoryDistribution is the Monte Carlo analogue of
// ExactGameTheoryDistribution.
func ApproxGameTheoryDistribution(f *fbas.Fbas, samples int, reward float64, qiCheck bool, seed uint64, log *zap.Logger) (scores, rewards []float64, err error) {
	g := game.New(f, nil)
	scores, err = approxindex.Compute(g, samples, qiCheck, seed)
	if err != nil {
		logFatal(log, "approximate power index failed", err, f)
		return nil, nil, fmt.Errorf("rank: %w", err)
	}
	return scores, directAllocation(scores, reward), nil
}

func proportional(scores []float64, reward float64) []float64 {
	var sum float64
	for _, s := range scores {
		sum += s
	}
	rewards := make([]float64, len(scores))
	if sum == 0 {
		return rewards
	}
	for i, s := range scores {
		rewards[i] = round3(reward * s / sum)
	}
	return rewards
}

func directAllocation(scores []float64, reward float64) []float64 {
	rewards := make([]float64, len(scores))
	for i, s := range scores {
		rewards[i] = round3(reward * s)
	}
	return rewards
}

func round3(x float64) float64 {
	const scale = 1000.0
	return math.RoundToEven(x*scale) / scale
}

// ReportRow is one line of an assembled score or reward report.
type ReportRow struct {
	NodeID    fbas.NodeID
	PublicKey string
	Score     float64
	Reward    float64
	HasReward bool
}

// AssembleReport builds the sorted report: rows sorted
// by score descending, ties broken by NodeID ascending. rewards may be
// nil, in which case rows carry no reward. When pretty is true, public
// keys are resolved via the validators package; otherwise PublicKey is
// left blank.
func AssembleReport(f *fbas.Fbas, scores []float64, rewards []float64, pretty bool) []ReportRow {
	nodes := f.AllNodes()
	rows := make([]ReportRow, len(nodes))
	var keys []string
	if pretty {
		keys = validators.ToPublicKeys(nodes, f)
	}
	for i, n := range nodes {
		row := ReportRow{NodeID: n, Score: scores[i]}
		if pretty {
			row.PublicKey = keys[i]
		}
		if rewards != nil {
			row.Reward = rewards[i]
			row.HasReward = true
		}
		rows[i] = row
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].NodeID < rows[j].NodeID
	})
	return rows
}
