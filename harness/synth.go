package harness

import (
	"fmt"

	"github.com/cndolo/fbasrank/fbas"
)

// FbasType selects a synthetic, "almost ideal" symmetric FBAS family used
// to drive the measurement harness's input grid.
type FbasType int

const (
	// Stellar organises every 3 top-tier nodes into an inner quorum set
	// of the overall top-tier quorum set, mirroring Stellar's own
	// organisation-of-validators structure.
	Stellar FbasType = iota
	// MobileCoin is a single flat quorum set shared by every node.
	MobileCoin
	// NonSymmetric is, in this generator, identical to MobileCoin; it is
	// kept as a distinct family so the harness can later diverge its
	// shape without touching call sites.
	NonSymmetric
)

func (t FbasType) String() string {
	switch t {
	case Stellar:
		return "stellar"
	case MobileCoin:
		return "mobilecoin"
	case NonSymmetric:
		return "nonsymmetric"
	default:
		return fmt.Sprintf("fbastype(%d)", int(t))
	}
}

// NodeIncrements is the step size a top-tier-size sweep must use for this
// family: Stellar's grouping-of-3 requires multiples of 3.
func (t FbasType) NodeIncrements() int {
	switch t {
	case Stellar:
		return 3
	default:
		return 1
	}
}

// MakeOne generates a synthetic FBAS with exactly topTierSize nodes, all
// members of the top tier.
func (t FbasType) MakeOne(topTierSize int) *fbas.Fbas {
	switch t {
	case Stellar:
		return makeAlmostIdealStellarlikeFbas(topTierSize)
	default:
		return makeAlmostIdealFbas(topTierSize)
	}
}

// calculate67pThreshold returns the smallest threshold strictly greater
// than two thirds of n, Stellar's default quorum-slice threshold.
func calculate67pThreshold(n int) int {
	return (2*n)/3 + 1
}

func makeAlmostIdealFbas(topTierSize int) *fbas.Fbas {
	validators := make([]fbas.NodeID, topTierSize)
	for i := range validators {
		validators[i] = fbas.NodeID(i)
	}
	qs := &fbas.QuorumSet{
		Threshold:  calculate67pThreshold(topTierSize),
		Validators: validators,
	}
	quorumSets := make([]*fbas.QuorumSet, topTierSize)
	publicKeys := make([]string, topTierSize)
	for i := range quorumSets {
		quorumSets[i] = qs
		publicKeys[i] = fmt.Sprintf("node-%d", i)
	}
	return fbas.New(quorumSets, publicKeys)
}

func makeAlmostIdealStellarlikeFbas(topTierSize int) *fbas.Fbas {
	if topTierSize%3 != 0 {
		panic("stellar-like FBAS requires a top-tier size that is a multiple of 3")
	}
	numOrgs := topTierSize / 3
	top := &fbas.QuorumSet{Threshold: calculate67pThreshold(numOrgs)}
	for org := 0; org < numOrgs; org++ {
		top.InnerQuorumSets = append(top.InnerQuorumSets, &fbas.QuorumSet{
			Threshold: 2,
			Validators: []fbas.NodeID{
				fbas.NodeID(org * 3),
				fbas.NodeID(org*3 + 1),
				fbas.NodeID(org*3 + 2),
			},
		})
	}
	quorumSets := make([]*fbas.QuorumSet, topTierSize)
	publicKeys := make([]string, topTierSize)
	for i := range quorumSets {
		quorumSets[i] = top
		publicKeys[i] = fmt.Sprintf("node-%d", i)
	}
	return fbas.New(quorumSets, publicKeys)
}
