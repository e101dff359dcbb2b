package rank

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cndolo/fbasrank/fbas"
	"github.com/cndolo/fbasrank/game"
)

func flatQSet(threshold int, validators ...fbas.NodeID) *fbas.QuorumSet {
	return &fbas.QuorumSet{Threshold: threshold, Validators: validators}
}

func trivialFbas() *fbas.Fbas {
	qs := flatQSet(2, 0, 1, 2)
	return fbas.New([]*fbas.QuorumSet{qs, qs, qs}, []string{"n0", "n1", "n2"})
}

func TestRankNodesDispatch(t *testing.T) {
	require := require.New(t)
	f := trivialFbas()

	nodeRank, err := RankNodes(f, RankRequest{Alg: NodeRank}, nil)
	require.NoError(err)
	require.Equal([]float64{0.667, 0.667, 0.667}, nodeRank)

	exact, err := RankNodes(f, RankRequest{Alg: PowerIndexEnum, QICheck: true}, nil)
	require.NoError(err)
	require.Equal([]float64{0.333, 0.333, 0.333}, exact)

	approx, err := RankNodes(f, RankRequest{Alg: PowerIndexApprox, Samples: 100, Seed: 1, QICheck: true}, nil)
	require.NoError(err)
	require.Len(approx, 3)
	for _, s := range approx {
		require.InDelta(1.0/3.0, s, 0.2)
	}
}

func TestRankNodesUnknownAlgorithm(t *testing.T) {
	require := require.New(t)
	_, err := RankNodes(trivialFbas(), RankRequest{Alg: Algorithm(99)}, nil)
	require.Error(err)
}

func TestRankNodesSuppliedTopTierMatchesComputed(t *testing.T) {
	require := require.New(t)
	f := trivialFbas()

	computed, err := RankNodes(f, RankRequest{Alg: PowerIndexEnum, QICheck: true}, nil)
	require.NoError(err)
	supplied, err := RankNodes(f, RankRequest{
		Alg:     PowerIndexEnum,
		TopTier: game.ComputeTopTier(f),
		QICheck: true,
	}, nil)
	require.NoError(err)
	require.Equal(computed, supplied)
}

func TestGraphTheoryDistribution(t *testing.T) {
	require := require.New(t)

	scores, rewards := GraphTheoryDistribution(trivialFbas(), 10.0, nil)
	require.Equal([]float64{0.667, 0.667, 0.667}, scores)
	require.Equal([]float64{3.333, 3.333, 3.333}, rewards)

	var sum float64
	for _, r := range rewards {
		sum += r
	}
	require.InDelta(10.0, sum, 0.05)
}

func TestGraphTheoryDistributionAllZeroScores(t *testing.T) {
	require := require.New(t)

	// No node appears in any quorum set, so everything is zero.
	f := fbas.New([]*fbas.QuorumSet{{}, {}}, nil)
	scores, rewards := GraphTheoryDistribution(f, 10.0, nil)
	require.Equal([]float64{0, 0}, scores)
	require.Equal([]float64{0, 0}, rewards)
}

func TestExactGameTheoryDistribution(t *testing.T) {
	require := require.New(t)

	scores, rewards, err := ExactGameTheoryDistribution(trivialFbas(), 1.0, nil, true, nil)
	require.NoError(err)
	require.Equal([]float64{0.333, 0.333, 0.333}, scores)
	require.Equal([]float64{0.333, 0.333, 0.333}, rewards)
}

func TestExactGameTheoryDistributionMissingIntersection(t *testing.T) {
	require := require.New(t)

	f := fbas.New([]*fbas.QuorumSet{flatQSet(1, 0), flatQSet(1, 1)}, nil)
	_, _, err := ExactGameTheoryDistribution(f, 1.0, nil, true, nil)
	require.Error(err)
}

func TestApproxGameTheoryDistributionSumsToReward(t *testing.T) {
	require := require.New(t)

	scores, rewards, err := ApproxGameTheoryDistribution(trivialFbas(), 1000, 10.0, true, 1, nil)
	require.NoError(err)
	require.Len(scores, 3)
	var sum float64
	for _, r := range rewards {
		sum += r
	}
	require.InDelta(10.0, sum, 0.1)
}

func TestAssembleReportSorting(t *testing.T) {
	require := require.New(t)
	f := trivialFbas()

	rows := AssembleReport(f, []float64{0.1, 0.5, 0.5}, nil, false)
	require.Len(rows, 3)
	// Score descending, NodeID ascending on ties.
	require.Equal(fbas.NodeID(1), rows[0].NodeID)
	require.Equal(fbas.NodeID(2), rows[1].NodeID)
	require.Equal(fbas.NodeID(0), rows[2].NodeID)
	for _, row := range rows {
		require.Empty(row.PublicKey)
		require.False(row.HasReward)
	}
}

func TestAssembleReportPrettyAndRewards(t *testing.T) {
	require := require.New(t)
	f := trivialFbas()

	rows := AssembleReport(f, []float64{0.3, 0.2, 0.1}, []float64{3, 2, 1}, true)
	require.Equal("n0", rows[0].PublicKey)
	require.Equal(fbas.NodeID(0), rows[0].NodeID)
	require.True(rows[0].HasReward)
	require.Equal(3.0, rows[0].Reward)
	require.Equal("n2", rows[2].PublicKey)
	require.Equal(1.0, rows[2].Reward)
}
