package gamemaster

import (
	"testing"

	"ayto/game"
	"ayto/meta"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRandomMatching(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	matching := RandomMatching(rng, 5)

	require.Len(t, matching, 5)
	seenB := map[game.Player]bool{}
	for i, m := range matching {
		require.Equal(t, game.Player(i), m.A)
		require.True(t, m.B >= 5 && m.B < 10, "B side %d outside group B", m.B)
		require.False(t, seenB[m.B])
		seenB[m.B] = true
	}
}

func TestNewGame(t *testing.T) {
	t.Run("applies the setup", func(t *testing.T) {
		g, err := NewGame(Setup{Pairs: 4, Guesses: 7, Prize: 10, Fluid: true, Seed: 3})

		require.NoError(t, err)
		require.Equal(t, 4, g.Size())
		require.Equal(t, 7, g.RemainingGuesses())
		require.Equal(t, 10.0, g.TotalPrize())
		require.True(t, g.Rules().Fluid())
	})

	t.Run("fills defaults", func(t *testing.T) {
		g, err := NewGame(Setup{Pairs: 3})

		require.NoError(t, err)
		require.Equal(t, 3, g.RemainingGuesses())
		require.Equal(t, 1_000_000.0, g.TotalPrize())
		require.False(t, g.Rules().Fluid())
	})

	t.Run("same seed hides the same matching", func(t *testing.T) {
		first, err := NewGame(Setup{Pairs: 6, Seed: 11})
		require.NoError(t, err)
		second, err := NewGame(Setup{Pairs: 6, Seed: 11})
		require.NoError(t, err)

		for _, a := range first.GroupA() {
			for _, b := range first.GroupB() {
				m := game.Match{A: a, B: b}
				require.Equal(t, first.Truth(m), second.Truth(m))
			}
		}
	})

	t.Run("caps the number of pairs", func(t *testing.T) {
		_, err := NewGame(Setup{Pairs: meta.MAX_PAIRS + 1})
		require.Error(t, err)

		g, err := NewGame(Setup{Pairs: meta.MAX_PAIRS})
		require.NoError(t, err)
		require.Equal(t, meta.MAX_PAIRS, g.Size())
	})

	t.Run("rejects an empty game", func(t *testing.T) {
		_, err := NewGame(Setup{})

		require.Error(t, err)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("hosts and steps a game", func(t *testing.T) {
		r := NewRegistry()
		snap, err := r.Create(Setup{Pairs: 2, Guesses: 3})
		require.NoError(t, err)
		require.Equal(t, 1, r.Len())
		require.Equal(t, []game.Player{0, 1}, snap.Choosers)

		mu, err := game.NewMatchUp([]game.Player{0, 1}, []game.Player{2, 3})
		require.NoError(t, err)
		_, err = r.Step(snap.ID, mu)
		require.NoError(t, err)

		got, err := r.Get(snap.ID)
		require.NoError(t, err)
		require.Equal(t, 1, got.Round)
		require.Equal(t, 2, got.RemainingGuesses)
		require.Equal(t, []game.Player{2, 3}, got.Choosers)
	})

	t.Run("unknown ids fail", func(t *testing.T) {
		r := NewRegistry()

		_, err := r.Get(uuid.New())
		require.ErrorIs(t, err, ErrUnknownGame)

		_, err = r.Step(uuid.New(), nil)
		require.ErrorIs(t, err, ErrUnknownGame)
	})

	t.Run("deleted games are gone", func(t *testing.T) {
		r := NewRegistry()
		snap, err := r.Create(Setup{Pairs: 2})
		require.NoError(t, err)

		r.Delete(snap.ID)

		_, err = r.Get(snap.ID)
		require.ErrorIs(t, err, ErrUnknownGame)
		require.Equal(t, 0, r.Len())
	})
}
