package fbas

const pageRankRounds = 100

// RankNodes computes the undamped PageRank of the FBAS trust graph: edge
// v -> u exists for every u transitively mentioned in v's quorum set, and
// each round pushes pr[v]/deg(v) across v's outgoing edges. Dangling
// nodes (no contained nodes) keep their own mass for that round. The
// iteration runs a fixed 100 rounds from a uniform start, as specified;
// it is not run to convergence.
func (f *Fbas) RankNodes() []float64 {
	n := f.NumberOfNodes()
	if n == 0 {
		return nil
	}
	pr := make([]float64, n)
	uniform := 1.0 / float64(n)
	for i := range pr {
		pr[i] = uniform
	}

	contained := make([][]NodeID, n)
	for v := 0; v < n; v++ {
		qs, _ := f.GetQuorumSet(NodeID(v))
		contained[v] = ContainedNodes(qs)
	}

	next := make([]float64, n)
	for round := 0; round < pageRankRounds; round++ {
		for i := range next {
			next[i] = 0
		}
		for v := 0; v < n; v++ {
			edges := contained[v]
			if len(edges) == 0 {
				next[v] += pr[v]
				continue
			}
			share := pr[v] / float64(len(edges))
			for _, u := range edges {
				next[u] += share
			}
		}
		pr, next = next, pr
	}
	return pr
}
