package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewMatchUp(t *testing.T) {
	t.Run("pairs choosers with chosen by position", func(t *testing.T) {
		mu, err := NewMatchUp([]Player{0, 1, 2}, []Player{4, 3, 5})

		require.NoError(t, err)
		require.Equal(t, 3, mu.Len())
		require.Equal(t, []Match{{0, 4}, {1, 3}, {2, 5}}, mu.Matches())
	})

	t.Run("rejects sequences of different lengths", func(t *testing.T) {
		_, err := NewMatchUp([]Player{0, 1}, []Player{3})

		require.ErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("rejects a player appearing twice", func(t *testing.T) {
		_, err := NewMatchUp([]Player{0, 1}, []Player{3, 0})

		require.ErrorIs(t, err, ErrConstraintViolation)
	})

	t.Run("copies its inputs", func(t *testing.T) {
		choosers := []Player{0, 1}
		mu, err := NewMatchUp(choosers, []Player{2, 3})
		require.NoError(t, err)

		choosers[0] = 9

		require.Equal(t, []Player{0, 1}, mu.Choosers(), "Match-up should not alias caller slices")
	})
}

func TestMatchUpAdd(t *testing.T) {
	t.Run("appends a new pair", func(t *testing.T) {
		mu := &MatchUp{}

		require.NoError(t, mu.Add(0, 3))
		require.NoError(t, mu.Add(1, 4))
		require.Equal(t, []Player{0, 1}, mu.Choosers())
		require.Equal(t, []Player{3, 4}, mu.Chosen())
	})

	t.Run("rejects a chooser who already has a partner", func(t *testing.T) {
		mu := &MatchUp{}
		require.NoError(t, mu.Add(0, 3))

		err := mu.Add(0, 4)

		require.ErrorIs(t, err, ErrConstraintViolation)
		require.Equal(t, 1, mu.Len(), "Failed add should not change the match-up")
	})

	t.Run("rejects a chosen player who already has a partner", func(t *testing.T) {
		mu := &MatchUp{}
		require.NoError(t, mu.Add(0, 3))

		require.ErrorIs(t, mu.Add(1, 0), ErrConstraintViolation)
		require.ErrorIs(t, mu.Add(1, 3), ErrConstraintViolation)
	})

	t.Run("rejects a self pair", func(t *testing.T) {
		mu := &MatchUp{}

		require.ErrorIs(t, mu.Add(2, 2), ErrConstraintViolation)
	})
}

func TestMatchUpContains(t *testing.T) {
	mu, err := NewMatchUp([]Player{0, 1, 2}, []Player{4, 3, 5})
	require.NoError(t, err)

	t.Run("players in either sequence", func(t *testing.T) {
		require.True(t, mu.ContainsPlayer(0))
		require.True(t, mu.ContainsPlayer(5))
		require.False(t, mu.ContainsPlayer(6))
	})

	t.Run("matches in either orientation", func(t *testing.T) {
		require.True(t, mu.ContainsMatch(Match{0, 4}))
		require.True(t, mu.ContainsMatch(Match{4, 0}))
		require.False(t, mu.ContainsMatch(Match{0, 3}), "Players at different positions are not a match")
	})

	t.Run("dispatches on member kind", func(t *testing.T) {
		got, err := mu.Contains(Player(3))
		require.NoError(t, err)
		require.True(t, got)

		got, err = mu.Contains(Match{5, 2})
		require.NoError(t, err)
		require.True(t, got)
	})

	t.Run("fails on a nil member", func(t *testing.T) {
		_, err := mu.Contains(nil)

		require.ErrorIs(t, err, ErrTypeMismatch)
	})
}

func TestMatchUpMatch(t *testing.T) {
	mu, err := NewMatchUp([]Player{0, 1}, []Player{3, 2})
	require.NoError(t, err)

	partner, ok := mu.Match(0)
	require.True(t, ok)
	require.Equal(t, Player(3), partner)

	partner, ok = mu.Match(2)
	require.True(t, ok)
	require.Equal(t, Player(1), partner)

	_, ok = mu.Match(7)
	require.False(t, ok)
}

func TestMatchUpPlayers(t *testing.T) {
	mu, err := NewMatchUp([]Player{5, 1}, []Player{0, 3})
	require.NoError(t, err)

	require.Equal(t, []Player{0, 1, 3, 5}, mu.Players())
}

func TestMatchUpShuffle(t *testing.T) {
	mu, err := NewMatchUp([]Player{0, 1, 2, 3, 4}, []Player{9, 8, 7, 6, 5})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 10; i++ {
		shuffled := mu.Shuffle(rng)

		require.Equal(t, mu.Len(), shuffled.Len())
		require.ElementsMatch(t, mu.Choosers(), shuffled.Choosers())
		for _, m := range mu.Matches() {
			require.True(t, shuffled.ContainsMatch(m), "Shuffle should keep pairing %v", m)
		}
	}
	require.Equal(t, []Player{0, 1, 2, 3, 4}, mu.Choosers(), "Shuffle should not mutate the original")
}

func TestMatchUpInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for n := 1; n <= 8; n++ {
		chosen := make([]Player, n)
		for i, j := range rng.Perm(n) {
			chosen[i] = Player(n + j)
		}
		choosers := make([]Player, n)
		for i := range choosers {
			choosers[i] = Player(i)
		}

		mu, err := NewMatchUp(choosers, chosen)
		require.NoError(t, err)

		require.Equal(t, len(mu.Choosers()), len(mu.Chosen()))
		seen := map[Player]bool{}
		for _, p := range mu.Players() {
			require.False(t, seen[p], "Player %d appears twice", p)
			seen[p] = true
		}
		require.Len(t, seen, 2*n)
	}
}
