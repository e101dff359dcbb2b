// Package noderank implements the NodeRank computer (component B): an
// FBAS-aware extension of PageRank that attributes weight to a node
// through every quorum set that depends on it, discounted by how deeply
// nested the node is in that quorum set.
package noderank

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/cndolo/fbasrank/fbas"
	"github.com/cndolo/fbasrank/inspector"
)

// Compute returns NodeRank(v) for every node of f, rounded to three
// decimal places (round-half-to-even, matching strconv's default
// rounding). PageRank is computed once over the full node set and
// quorum-set generators are precomputed once; both are then reused for
// every node's NodeRank sum. The containing quorum sets are found per
// node, each time by a scan over all nodes.
func Compute(f *fbas.Fbas, log *zap.Logger) []float64 {
	nodes := f.AllNodes()
	pr := f.RankNodes()
	generators := inspector.GeneratorsOf(f, log)

	ranks := make([]float64, len(nodes))
	for _, v := range nodes {
		sets := inspector.ContainingSets(f, v)
		if len(sets) == 0 {
			if log != nil {
				log.Debug("node appears in no quorum set; NodeRank is 0", zap.Int("node", int(v)))
			}
			ranks[v] = 0
			continue
		}
		// Fix iteration order by canonical encoding so floating-point
		// summation order, and therefore the rounded result, is
		// reproducible across runs.
		sort.Slice(sets, func(i, j int) bool {
			return fbas.CanonicalString(sets[i]) < fbas.CanonicalString(sets[j])
		})

		var sum float64
		for _, qs := range sets {
			var generatorMass float64
			for _, u := range generators.ForQuorumSet(qs) {
				generatorMass += pr[u]
			}
			sum += generatorMass * inspector.NodeWeightIn(qs, v)
		}
		ranks[v] = round3(sum)
	}
	return ranks
}

// round3 rounds x to three decimal places using round-half-to-even,
// matching the behaviour of fmt/strconv's default float formatting.
func round3(x float64) float64 {
	const scale = 1000.0
	return math.RoundToEven(x*scale) / scale
}
