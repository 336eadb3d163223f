package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]int{4, 7, 9}, 7))
	require.Equal(t, -1, FindIndex([]int{4, 7, 9}, 5))
	require.Equal(t, -1, FindIndex([]string{}, "a"))
}

func TestNextPermutation(t *testing.T) {
	t.Run("visits all permutations in lexicographic order", func(t *testing.T) {
		perm := []int{0, 1, 2}
		seen := [][]int{append([]int{}, perm...)}
		for NextPermutation(perm) {
			seen = append(seen, append([]int{}, perm...))
		}

		require.Equal(t, [][]int{
			{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
		}, seen)
	})

	t.Run("wraps the last permutation to the first", func(t *testing.T) {
		perm := []int{3, 2, 1, 0}

		require.False(t, NextPermutation(perm))
		require.Equal(t, []int{0, 1, 2, 3}, perm)
	})

	t.Run("single element has no successor", func(t *testing.T) {
		perm := []int{0}
		require.False(t, NextPermutation(perm))
		require.Equal(t, []int{0}, perm)
	})
}
