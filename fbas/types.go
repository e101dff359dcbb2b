// Package fbas implements the external FBAS-analysis library contract the
// ranking engine is built against: loading a Federated Byzantine Agreement
// System from stellarbeat.org "nodes" JSON, quorum containment, minimal
// quorum enumeration, and the trust-graph PageRank the NodeRank computer
// builds on. Nothing here is ranking-specific; it is the narrow interface
// the rest of the module consumes.
package fbas

import "fmt"

// NodeID is a dense, non-negative index assigned by the loader. It is
// stable for the lifetime of one Fbas value.
type NodeID int

// MaxNestingDepth bounds the recursion over nested quorum sets. The
// loader rejects anything deeper.
const MaxNestingDepth = 16

// QuorumSet is one node of the nested quorum-set tree: a threshold over
// an ordered list of direct validators and an ordered list of inner
// quorum sets.
type QuorumSet struct {
	Threshold       int
	Validators      []NodeID
	InnerQuorumSets []*QuorumSet
}

// Empty reports whether this quorum set carries no validators or inner
// sets at all (the zero-value quorum set used for nodes the loader could
// not resolve).
func (q *QuorumSet) Empty() bool {
	return q == nil || (q.Threshold == 0 && len(q.Validators) == 0 && len(q.InnerQuorumSets) == 0)
}

func (q *QuorumSet) String() string {
	return fmt.Sprintf("QuorumSet{t=%d, v=%v, inner=%d}", q.Threshold, q.Validators, len(q.InnerQuorumSets))
}

// Fbas is an immutable mapping from NodeID to QuorumSet, plus the
// public keys the loader resolved each NodeID from.
type Fbas struct {
	quorumSets []*QuorumSet
	publicKeys []string
}

// New builds an Fbas directly from parallel quorum-set/public-key slices.
// Used by the synthetic FBAS generators in the measurement harness and by
// tests; production callers load from JSON via FromJSON*.
func New(quorumSets []*QuorumSet, publicKeys []string) *Fbas {
	f := &Fbas{
		quorumSets: make([]*QuorumSet, len(quorumSets)),
		publicKeys: make([]string, len(quorumSets)),
	}
	copy(f.quorumSets, quorumSets)
	if len(publicKeys) == len(quorumSets) {
		copy(f.publicKeys, publicKeys)
	}
	return f
}

// AllNodes returns {0, ..., N-1} for this Fbas.
func (f *Fbas) AllNodes() []NodeID {
	nodes := make([]NodeID, len(f.quorumSets))
	for i := range nodes {
		nodes[i] = NodeID(i)
	}
	return nodes
}

// NumberOfNodes returns N.
func (f *Fbas) NumberOfNodes() int {
	return len(f.quorumSets)
}

// GetQuorumSet returns the quorum set published by v, or (nil, false) if
// v is out of range.
func (f *Fbas) GetQuorumSet(v NodeID) (*QuorumSet, bool) {
	if int(v) < 0 || int(v) >= len(f.quorumSets) {
		return nil, false
	}
	qs := f.quorumSets[v]
	if qs == nil {
		return &QuorumSet{}, true
	}
	return qs, true
}

// ToPublicKeys resolves a list of NodeIDs to their published public keys.
// A NodeID with no known public key resolves to "".
func (f *Fbas) ToPublicKeys(ids []NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if int(id) >= 0 && int(id) < len(f.publicKeys) {
			out[i] = f.publicKeys[id]
		}
	}
	return out
}

// PublicKey resolves a single NodeID.
func (f *Fbas) PublicKey(id NodeID) (string, bool) {
	if int(id) < 0 || int(id) >= len(f.publicKeys) {
		return "", false
	}
	pk := f.publicKeys[id]
	return pk, pk != ""
}
