// Package approxindex implements the approximate Shapley-Shubik
// power-index engine (component E): a Castro et al. style
// permutation-sampling Monte Carlo estimator, parallelised across
// worker goroutines with deterministically-derived sub-seeds.
package approxindex

import (
	"errors"
	"math"
	"runtime"
	"sync"

	"github.com/cndolo/fbasrank/coalition"
	"github.com/cndolo/fbasrank/fbas"
	"github.com/cndolo/fbasrank/game"
	safemath "github.com/cndolo/fbasrank/utils/math"
	"github.com/cndolo/fbasrank/utils/sampler"
)

// ErrQuorumIntersectionMissing mirrors exactindex's check.
var ErrQuorumIntersectionMissing = errors.New("approxindex: quorum intersection does not hold")

// ErrPlayerNotInPermutation indicates a sampler invariant violation: a
// generated permutation did not contain every top-tier player exactly
// once. It signals a bug in the sampler, not bad input.
var ErrPlayerNotInPermutation = errors.New("approxindex: permutation missing a top-tier player")

// numShards is the fixed number of independently-seeded sample ranges
// the total sample count is split into. Keeping it independent of
// GOMAXPROCS makes the result a function of (fbas, samples, seed) only:
// each shard always draws the same permutations from the same sub-seed,
// however many goroutines end up executing the shards.
const numShards = 16

// Compute returns an unbiased Score vector estimate with samples
// permutations, seeded deterministically by seed: the same (fbas,
// topTier, samples, seed) always yields the same result, regardless of
// how many worker goroutines run. Shard totals are exact integer
// marginal-contribution counts, so the final division by samples is the
// only floating-point operation in the reduction.
func Compute(g *game.CooperativeGame, samples int, qiCheck bool, seed uint64) ([]float64, error) {
	f := g.Fbas()
	if qiCheck {
		if !fbas.AllIntersect(fbas.FindMinimalQuorums(f)) {
			return nil, ErrQuorumIntersectionMissing
		}
	}

	players := g.Players()
	scores := make([]float64, len(players))
	if len(players) == 0 || samples <= 0 {
		return scores, nil
	}

	topTier := g.TopTier()
	n := len(topTier)
	if n == 0 {
		return scores, nil
	}
	universe := make([]int, n)
	for i, v := range topTier {
		universe[i] = int(v)
	}

	playerIndex := make(map[fbas.NodeID]int, len(players))
	for i, p := range players {
		playerIndex[p] = i
	}

	shards := safemath.Min(numShards, samples)
	counts := make([][]int64, shards)
	errs := make([]error, shards)
	base := samples / shards
	rem := samples % shards

	workers := safemath.Min(runtime.GOMAXPROCS(0), shards)
	shardCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range shardCh {
				m := base
				if s < rem {
					m++
				}
				counts[s], errs[s] = sampleRange(universe, f, m, sampler.SubSeed(seed, s))
			}
		}()
	}
	for s := 0; s < shards; s++ {
		shardCh <- s
	}
	close(shardCh)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	totals := make([]int64, n)
	for _, local := range counts {
		for i, c := range local {
			totals[i] += c
		}
	}

	for i, v := range topTier {
		scores[playerIndex[v]] = round3(float64(totals[i]) / float64(samples))
	}
	return scores, nil
}

// MarginalContribution is the 0/1 contribution of player p joining the
// coalition pre: 1 iff pre ∪ {p} contains a quorum while pre alone does
// not.
func MarginalContribution(f *fbas.Fbas, pre coalition.Coalition, p fbas.NodeID) int {
	if fbas.ContainsQuorum(pre, f) {
		return 0
	}
	if fbas.ContainsQuorum(pre.WithAdded(int(p)), f) {
		return 1
	}
	return 0
}

// sampleRange draws m permutations of universe from an independently
// seeded source and returns, per universe index, the number of
// permutations in which that player's marginal contribution was 1.
func sampleRange(universe []int, f *fbas.Fbas, m int, subSeed uint64) ([]int64, error) {
	n := len(universe)
	counts := make([]int64, n)
	if m == 0 {
		return counts, nil
	}
	perm := sampler.NewPermuter(n, sampler.NewSource(subSeed))

	for s := 0; s < m; s++ {
		order := perm.Next()
		if len(order) != n {
			return nil, ErrPlayerNotInPermutation
		}
		pre := coalition.New(n)
		for _, idx := range order {
			player := universe[idx]
			if MarginalContribution(f, pre, fbas.NodeID(player)) == 1 {
				counts[idx]++
			}
			pre.Add(player)
		}
	}
	return counts, nil
}

// round3 rounds x to three decimal places, round-half-to-even.
func round3(x float64) float64 {
	const scale = 1000.0
	return math.RoundToEven(x*scale) / scale
}
