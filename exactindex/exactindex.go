// Package exactindex implements the exact Shapley-Shubik power-index
// engine (component D): a full power-set enumeration over the top tier
// with arbitrary-precision rational contributions.
package exactindex

import (
	"errors"
	"math"
	"math/big"

	"github.com/cndolo/fbasrank/coalition"
	"github.com/cndolo/fbasrank/fbas"
	"github.com/cndolo/fbasrank/game"
)

// ErrQuorumIntersectionMissing is returned when qiCheck is requested and
// the FBAS's minimal quorums do not all pairwise intersect: the game is
// then ill-defined (two disjoint quorums could both decide differently).
var ErrQuorumIntersectionMissing = errors.New("exactindex: quorum intersection does not hold")

// Compute returns a Score vector of length len(g.Players()): entry i is
// the exact Shapley-Shubik power index of g.Players()[i] in the simple
// game whose winning coalitions are exactly those that contain a quorum.
// Players outside the top tier receive score 0.
func Compute(g *game.CooperativeGame, qiCheck bool) ([]float64, error) {
	f := g.Fbas()
	if qiCheck {
		if !fbas.AllIntersect(fbas.FindMinimalQuorums(f)) {
			return nil, ErrQuorumIntersectionMissing
		}
	}

	players := g.Players()
	scores := make([]float64, len(players))
	if len(players) == 0 {
		return scores, nil
	}

	topTier := g.TopTier()
	universe := make([]int, len(topTier))
	for i, v := range topTier {
		universe[i] = int(v)
	}
	n := len(universe)
	if n == 0 {
		return scores, nil
	}

	winners := findWinningCoalitions(universe, f)
	winnerSet := make(map[string]coalition.Coalition, len(winners))
	for _, w := range winners {
		winnerSet[w.Key()] = w
	}

	weight := coefficientTable(n)

	playerIndex := make(map[fbas.NodeID]int, len(players))
	for i, p := range players {
		playerIndex[p] = i
	}

	for _, v := range topTier {
		p := int(v)
		var score float64
		for _, w := range winners {
			if !w.Contains(p) {
				continue
			}
			without := w.WithRemoved(p)
			if _, stillWins := winnerSet[without.Key()]; stillWins {
				continue
			}
			score += weight[w.Len()]
		}
		scores[playerIndex[v]] = round3(score)
	}
	return scores, nil
}

// findWinningCoalitions enumerates the power set of universe, returning
// every subset that contains a quorum of f.
func findWinningCoalitions(universe []int, f *fbas.Fbas) []coalition.Coalition {
	var winners []coalition.Coalition
	ps := coalition.NewPowerset(universe)
	for {
		c, ok := ps.Next()
		if !ok {
			break
		}
		if fbas.ContainsQuorum(c, f) {
			winners = append(winners, c)
		}
	}
	return winners
}

// coefficientTable precomputes, for every coalition size k in [1, n],
// the exact Shapley value contribution ((k-1)!*(n-k)!)/n! as a reduced
// big.Rat converted to float64 once, rather than per critical coalition.
func coefficientTable(n int) []float64 {
	nFact := factorial(n)
	table := make([]float64, n+1)
	for k := 1; k <= n; k++ {
		num := new(big.Int).Mul(factorial(k-1), factorial(n-k))
		r := new(big.Rat).SetFrac(num, nFact)
		f, _ := r.Float64()
		table[k] = f
	}
	return table
}

func factorial(n int) *big.Int {
	result := big.NewInt(1)
	for i := int64(2); i <= int64(n); i++ {
		result.Mul(result, big.NewInt(i))
	}
	return result
}

// round3 rounds x to three decimal places, round-half-to-even.
func round3(x float64) float64 {
	const scale = 1000.0
	return math.RoundToEven(x*scale) / scale
}
