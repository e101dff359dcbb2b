// Package inspector implements the quorum-set inspector (component A):
// read-only derivations over a fixed Fbas: which quorum sets contain a
// node, which nodes generate a given quorum set, and how much weight a
// node carries inside one quorum set by nesting depth.
package inspector

import (
	"encoding/hex"

	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"

	"github.com/cndolo/fbasrank/fbas"
	"github.com/cndolo/fbasrank/utils/bag"
)

// ContainingSets returns the distinct quorum sets (by canonical
// encoding) whose transitively contained node list includes v. The FBAS
// is scanned once, over all nodes.
func ContainingSets(f *fbas.Fbas, v fbas.NodeID) []*fbas.QuorumSet {
	seen := make(map[string]struct{})
	var sets []*fbas.QuorumSet
	for _, n := range f.AllNodes() {
		qs, ok := f.GetQuorumSet(n)
		if !ok {
			continue
		}
		if !containsTransitively(qs, v) {
			continue
		}
		key := fbas.CanonicalString(qs)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		sets = append(sets, qs)
	}
	return sets
}

func containsTransitively(qs *fbas.QuorumSet, v fbas.NodeID) bool {
	for _, n := range fbas.ContainedNodes(qs) {
		if n == v {
			return true
		}
	}
	return false
}

// GeneratorSets maps a quorum set's canonical SHA3-256 hex digest to the
// NodeIDs that publish an identical quorum set, and a parallel digest ->
// member-count bag used for debug logging of shared encodings.
type GeneratorSets struct {
	byDigest map[string][]fbas.NodeID
	counts   bag.Bag[string]
}

// GeneratorsOf builds, in one pass over the Fbas, the digest -> generator
// list map: the digest is the hex SHA3-256 of each
// quorum set's canonical string encoding, so two quorum sets share a key
// iff their canonical strings are byte-equal.
func GeneratorsOf(f *fbas.Fbas, log *zap.Logger) *GeneratorSets {
	gs := &GeneratorSets{byDigest: make(map[string][]fbas.NodeID), counts: bag.New[string]()}
	for _, n := range f.AllNodes() {
		qs, ok := f.GetQuorumSet(n)
		if !ok {
			qs = &fbas.QuorumSet{}
		}
		digest := digestOf(qs)
		gs.byDigest[digest] = append(gs.byDigest[digest], n)
		gs.counts.Add(digest)
	}
	if log != nil {
		for _, digest := range gs.counts.List() {
			if count := gs.counts.Count(digest); count > 1 {
				log.Debug("multiple nodes generate the same quorum set",
					zap.String("digest", digest),
					zap.Int("generator_count", count),
				)
			}
		}
	}
	return gs
}

// ForQuorumSet returns the generators of exactly qs.
func (gs *GeneratorSets) ForQuorumSet(qs *fbas.QuorumSet) []fbas.NodeID {
	return gs.byDigest[digestOf(qs)]
}

func digestOf(qs *fbas.QuorumSet) string {
	sum := sha3.Sum256([]byte(fbas.CanonicalString(qs)))
	return hex.EncodeToString(sum[:])
}

// NodeWeightIn computes the recursive weight node_weight_in(qset, v):
// 1 for a node the quorum set does not mention at all, otherwise the
// product of T/|Q| factors along the chain of quorum sets leading to v,
// where |Q| is the number of transitively contained nodes of the quorum
// set at that level. A node found in the current level's own validator
// list terminates the recursion with that level's factor. When v appears
// in more than one child, the first child in declaration order wins.
func NodeWeightIn(qs *fbas.QuorumSet, v fbas.NodeID) float64 {
	return nodeWeightInDepth(qs, v, 0)
}

func nodeWeightInDepth(qs *fbas.QuorumSet, v fbas.NodeID, depth int) float64 {
	if qs == nil || depth > fbas.MaxNestingDepth || !containsTransitively(qs, v) {
		return 1.0
	}
	weight := qsetWeight(qs)
	for _, validator := range qs.Validators {
		if validator == v {
			return weight
		}
	}
	return weight * nodeWeightInDepth(findNextChild(qs, v), v, depth+1)
}

// qsetWeight is the per-level factor T/|Q|, with |Q| the count of
// transitively contained nodes.
func qsetWeight(qs *fbas.QuorumSet) float64 {
	contained := len(fbas.ContainedNodes(qs))
	if contained == 0 {
		return 1.0
	}
	return float64(qs.Threshold) / float64(contained)
}

// findNextChild returns the first inner quorum set (in declaration
// order) whose transitively contained nodes include v.
func findNextChild(qs *fbas.QuorumSet, v fbas.NodeID) *fbas.QuorumSet {
	for _, inner := range qs.InnerQuorumSets {
		if containsTransitively(inner, v) {
			return inner
		}
	}
	return nil
}
