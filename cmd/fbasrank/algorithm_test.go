package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cndolo/fbasrank/rank"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		alg     rank.Algorithm
		samples int
		wantErr bool
	}{
		{input: "node-rank", alg: rank.NodeRank},
		{input: "exact-power-index", alg: rank.PowerIndexEnum},
		{input: "approx-power-index{samples=100}", alg: rank.PowerIndexApprox, samples: 100},
		{input: "approx-power-index {samples=1000}", alg: rank.PowerIndexApprox, samples: 1000},
		{input: "approx-power-index", wantErr: true},
		{input: "approx-power-index{samples=0}", wantErr: true},
		{input: "approx-power-index{samples=-5}", wantErr: true},
		{input: "approx-power-index{n=100}", wantErr: true},
		{input: "page-rank", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require := require.New(t)
			alg, samples, err := parseAlgorithm(tt.input)
			if tt.wantErr {
				require.Error(err)
				return
			}
			require.NoError(err)
			require.Equal(tt.alg, alg)
			require.Equal(tt.samples, samples)
		})
	}
}

func TestSplitArgs(t *testing.T) {
	require := require.New(t)

	path, alg := splitArgs([]string{"nodes.json", "node-rank"})
	require.Equal("nodes.json", path)
	require.Equal("node-rank", alg)

	path, alg = splitArgs([]string{"node-rank"})
	require.Empty(path)
	require.Equal("node-rank", alg)
}
