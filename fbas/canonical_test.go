package fbas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalStringEqualIffStructurallyEqual(t *testing.T) {
	require := require.New(t)

	a := &QuorumSet{Threshold: 2, Validators: []NodeID{0, 1, 2}}
	b := &QuorumSet{Threshold: 2, Validators: []NodeID{0, 1, 2}}
	require.Equal(CanonicalString(a), CanonicalString(b))

	reordered := &QuorumSet{Threshold: 2, Validators: []NodeID{2, 1, 0}}
	require.NotEqual(CanonicalString(a), CanonicalString(reordered))

	otherThreshold := &QuorumSet{Threshold: 3, Validators: []NodeID{0, 1, 2}}
	require.NotEqual(CanonicalString(a), CanonicalString(otherThreshold))
}

func TestCanonicalStringNested(t *testing.T) {
	require := require.New(t)

	nested := &QuorumSet{
		Threshold:  3,
		Validators: []NodeID{0, 1},
		InnerQuorumSets: []*QuorumSet{
			{Threshold: 1, Validators: []NodeID{2, 3}},
		},
	}
	require.Equal("t:3,v:[0,1],i:[t:1,v:[2,3],i:[]]", CanonicalString(nested))

	// Validators hoisted into an inner set must not collide with the
	// flat encoding.
	flat := &QuorumSet{Threshold: 3, Validators: []NodeID{0, 1, 2, 3}}
	require.NotEqual(CanonicalString(flat), CanonicalString(nested))
}

func TestCanonicalStringNilIsEmpty(t *testing.T) {
	require := require.New(t)
	require.Equal(CanonicalString(nil), CanonicalString(&QuorumSet{}))
}
