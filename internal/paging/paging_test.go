package paging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	cases := []struct{ total, want int }{
		{0, 1},
		{1, 1},
		{9, 1},
		{10, 1},
		{11, 2},
		{20, 2},
		{21, 3},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, TotalPages(tc.total), "total=%d", tc.total)
	}
}

func TestPagerControls(t *testing.T) {
	require.False(t, HasPrev(0))
	require.True(t, HasPrev(1))

	require.False(t, HasNext(0, 10))
	require.True(t, HasNext(0, 11))
	require.False(t, HasNext(1, 20))
	require.True(t, HasNext(1, 21))
	require.False(t, HasNext(0, 0))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0, Clamp(-3, 25))
	require.Equal(t, 1, Clamp(1, 25))
	require.Equal(t, 2, Clamp(9, 25))
	require.Equal(t, 0, Clamp(5, 0))
}
