package fbas

import (
	"sort"

	"github.com/cndolo/fbasrank/coalition"
	"github.com/cndolo/fbasrank/utils/set"
)

// ContainedNodes returns the set of distinct NodeIDs mentioned anywhere
// in q, transitively through inner quorum sets. Used both for PageRank
// out-degree and for membership tests ("does this quorum set's subtree
// mention v at all").
func ContainedNodes(q *QuorumSet) []NodeID {
	seen := make(map[NodeID]struct{})
	var nodes []NodeID
	var walk func(q *QuorumSet, depth int)
	walk = func(q *QuorumSet, depth int) {
		if q == nil || depth > MaxNestingDepth {
			return
		}
		for _, v := range q.Validators {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				nodes = append(nodes, v)
			}
		}
		for _, inner := range q.InnerQuorumSets {
			walk(inner, depth+1)
		}
	}
	walk(q, 0)
	return nodes
}

// IsSatisfied reports whether coalition S satisfies q: at least
// q.Threshold of q's direct validators plus satisfied inner quorum sets
// are present in S.
func IsSatisfied(q *QuorumSet, s coalition.Coalition) bool {
	return isSatisfiedDepth(q, s, 0)
}

func isSatisfiedDepth(q *QuorumSet, s coalition.Coalition, depth int) bool {
	if q == nil || q.Threshold <= 0 || depth > MaxNestingDepth {
		return false
	}
	met := 0
	for _, v := range q.Validators {
		if s.Contains(int(v)) {
			met++
		}
	}
	for _, inner := range q.InnerQuorumSets {
		if isSatisfiedDepth(inner, s, depth+1) {
			met++
		}
	}
	return met >= q.Threshold
}

// ContainsQuorum reports whether s contains a quorum of fbas: members
// whose quorum set is not satisfied by the remaining members are dropped
// until none is left to drop, and s contains a quorum iff a non-empty set
// (the largest quorum inside s) survives.
func ContainsQuorum(s coalition.Coalition, f *Fbas) bool {
	remaining := s.Clone()
	for {
		members := remaining.Members()
		if len(members) == 0 {
			return false
		}
		dropped := false
		for _, v := range members {
			qs, ok := f.GetQuorumSet(NodeID(v))
			if !ok || !IsSatisfied(qs, remaining) {
				remaining.Remove(v)
				dropped = true
			}
		}
		if !dropped {
			return true
		}
	}
}

// FindMinimalQuorums enumerates all minimal quorums of fbas: quorums none
// of whose proper subsets is itself a quorum. The search space is
// restricted to candidateNodes (a node that neither publishes a quorum
// set nor appears in one can never be part of a quorum). The powerset walk yields every
// proper subset before its supersets, so minimality only needs a check
// against already-found quorums.
func FindMinimalQuorums(f *Fbas) []coalition.Coalition {
	candidates := candidateNodes(f)
	var minimal []coalition.Coalition
	ps := coalition.NewPowerset(candidates)
	for {
		c, ok := ps.Next()
		if !ok {
			break
		}
		if c.Len() == 0 || !ContainsQuorum(c, f) {
			continue
		}
		if hasSubset(minimal, c) {
			continue
		}
		minimal = append(minimal, c)
	}
	return minimal
}

// candidateNodes returns every node that publishes a non-empty quorum
// set plus every node named as a validator anywhere. Nodes that do
// neither can never belong to a quorum and are excluded to shrink the
// search space.
func candidateNodes(f *Fbas) []int {
	mentioned := set.NewSet[int](f.NumberOfNodes())
	for _, v := range f.AllNodes() {
		qs, ok := f.GetQuorumSet(v)
		if !ok {
			continue
		}
		if !qs.Empty() {
			mentioned.Add(int(v))
		}
		for _, n := range ContainedNodes(qs) {
			mentioned.Add(int(n))
		}
	}
	out := mentioned.List()
	// List order is randomised; fix it so minimal quorums, and
	// therefore the derived top tier, come out in a stable order.
	sort.Ints(out)
	return out
}

func hasSubset(found []coalition.Coalition, c coalition.Coalition) bool {
	for _, f := range found {
		if isSubset(f, c) {
			return true
		}
	}
	return false
}

func isSubset(a, b coalition.Coalition) bool {
	for _, m := range a.Members() {
		if !b.Contains(m) {
			return false
		}
	}
	return true
}

// InvolvedNodes returns the union of all nodes appearing in any of the
// given minimal quorums, i.e. the top tier.
func InvolvedNodes(mqs []coalition.Coalition) []NodeID {
	seen := make(map[NodeID]struct{})
	var nodes []NodeID
	for _, mq := range mqs {
		for _, m := range mq.Members() {
			id := NodeID(m)
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				nodes = append(nodes, id)
			}
		}
	}
	return nodes
}

// AllIntersect reports whether every pair of minimal quorums shares at
// least one node, the quorum-intersection property.
func AllIntersect(mqs []coalition.Coalition) bool {
	for i := 0; i < len(mqs); i++ {
		for j := i + 1; j < len(mqs); j++ {
			if !intersects(mqs[i], mqs[j]) {
				return false
			}
		}
	}
	return true
}

func intersects(a, b coalition.Coalition) bool {
	for _, m := range a.Members() {
		if b.Contains(m) {
			return true
		}
	}
	return false
}
