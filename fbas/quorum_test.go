package fbas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cndolo/fbasrank/coalition"
)

func flatQSet(threshold int, validators ...NodeID) *QuorumSet {
	return &QuorumSet{Threshold: threshold, Validators: validators}
}

// trivialFbas is the 2-of-3 FBAS: three nodes sharing {t=2, [0,1,2]}.
func trivialFbas() *Fbas {
	qs := flatQSet(2, 0, 1, 2)
	return New([]*QuorumSet{qs, qs, qs}, []string{"n0", "n1", "n2"})
}

// paperFbas is the five-node example: node 0 trusts a 3-of-5 slice over
// everyone, nodes 1 and 2 require all of {0,1,2}, nodes 3 and 4 all of
// {0,3,4}.
func paperFbas() *Fbas {
	return New([]*QuorumSet{
		flatQSet(3, 0, 1, 2, 3, 4),
		flatQSet(3, 0, 1, 2),
		flatQSet(3, 0, 1, 2),
		flatQSet(3, 0, 3, 4),
		flatQSet(3, 0, 3, 4),
	}, []string{"node0", "node1", "node2", "node3", "node4"})
}

func TestContainedNodes(t *testing.T) {
	require := require.New(t)

	nested := &QuorumSet{
		Threshold:  3,
		Validators: []NodeID{0, 1},
		InnerQuorumSets: []*QuorumSet{
			{Threshold: 1, Validators: []NodeID{2, 3}},
			{Threshold: 1, Validators: []NodeID{1, 4}},
		},
	}
	require.ElementsMatch([]NodeID{0, 1, 2, 3, 4}, ContainedNodes(nested))
	require.Empty(ContainedNodes(nil))
}

func TestIsSatisfied(t *testing.T) {
	require := require.New(t)

	qs := flatQSet(2, 0, 1, 2)
	require.True(IsSatisfied(qs, coalition.Of(0, 1)))
	require.True(IsSatisfied(qs, coalition.Of(0, 1, 2)))
	require.False(IsSatisfied(qs, coalition.Of(0)))

	// Satisfied inner sets count toward the threshold like validators.
	nested := &QuorumSet{
		Threshold:  2,
		Validators: []NodeID{0},
		InnerQuorumSets: []*QuorumSet{
			{Threshold: 1, Validators: []NodeID{1, 2}},
		},
	}
	require.True(IsSatisfied(nested, coalition.Of(0, 2)))
	require.False(IsSatisfied(nested, coalition.Of(0)))
}

func TestContainsQuorum(t *testing.T) {
	require := require.New(t)
	f := trivialFbas()

	require.True(ContainsQuorum(coalition.Of(0, 1), f))
	require.True(ContainsQuorum(coalition.Of(0, 1, 2), f))
	require.False(ContainsQuorum(coalition.Of(0), f))
	require.False(ContainsQuorum(coalition.New(0), f))
}

func TestFindMinimalQuorumsTrivial(t *testing.T) {
	require := require.New(t)

	mqs := FindMinimalQuorums(trivialFbas())
	require.Len(mqs, 3)
	members := make([][]int, len(mqs))
	for i, mq := range mqs {
		members[i] = mq.Members()
	}
	require.ElementsMatch([][]int{{0, 1}, {0, 2}, {1, 2}}, members)
	require.True(AllIntersect(mqs))
	require.ElementsMatch([]NodeID{0, 1, 2}, InvolvedNodes(mqs))
}

func TestFindMinimalQuorumsPaperExample(t *testing.T) {
	require := require.New(t)

	mqs := FindMinimalQuorums(paperFbas())
	require.Len(mqs, 2)
	members := make([][]int, len(mqs))
	for i, mq := range mqs {
		members[i] = mq.Members()
	}
	require.ElementsMatch([][]int{{0, 1, 2}, {0, 3, 4}}, members)
	require.True(AllIntersect(mqs))
	require.ElementsMatch([]NodeID{0, 1, 2, 3, 4}, InvolvedNodes(mqs))
}

func TestMinimalQuorumsFormAnAntichain(t *testing.T) {
	require := require.New(t)

	mqs := FindMinimalQuorums(paperFbas())
	for i, a := range mqs {
		for j, b := range mqs {
			if i == j {
				continue
			}
			require.False(isSubset(a, b), "minimal quorum %v contains %v", b.Members(), a.Members())
		}
	}
}

func TestAllIntersectDisjointQuorums(t *testing.T) {
	require := require.New(t)

	// Two independent single-node quorums; no intersection.
	f := New([]*QuorumSet{flatQSet(1, 0), flatQSet(1, 1)}, nil)
	mqs := FindMinimalQuorums(f)
	require.Len(mqs, 2)
	require.False(AllIntersect(mqs))
}

func TestIsolatedNodeFormsNoQuorum(t *testing.T) {
	require := require.New(t)

	// Node 3 publishes an empty quorum set and appears nowhere else.
	qs := flatQSet(2, 0, 1, 2)
	f := New([]*QuorumSet{qs, qs, qs, {}}, nil)
	mqs := FindMinimalQuorums(f)
	for _, mq := range mqs {
		require.NotContains(mq.Members(), 3)
	}
}
