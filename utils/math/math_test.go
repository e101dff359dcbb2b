package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinMax(t *testing.T) {
	require := require.New(t)

	require.Equal(1, Min(1, 2))
	require.Equal(2, Min(3, 2))
	require.Equal(2, Max(1, 2))
	require.Equal(3, Max(3, 2))

	require.Equal(uint64(7), Min(uint64(7), uint64(9)))
	require.Equal(1.5, Max(1.5, -2.5))
	require.Equal("a", Min("a", "b"))
}
