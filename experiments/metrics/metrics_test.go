package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ayto/game"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("reads the round from the step info", func(t *testing.T) {
		id := uuid.New()
		c := NewCollector(id)
		c.Start()

		got := c.Complete(game.Step{
			Reward: 0,
			Info: game.Info{
				game.InfoRound:          3,
				game.InfoBeams:          2,
				game.InfoBlackout:       false,
				game.InfoRemainingPrize: 750.0,
			},
		}, 12, true)

		require.Equal(t, id, got.Game)
		require.Equal(t, 3, got.Round)
		require.Equal(t, 2, got.Beams)
		require.False(t, got.Blackout)
		require.Equal(t, 750.0, got.RemainingPrize)
		require.Equal(t, 12, got.SearchSteps)
		require.True(t, got.Consistent)
		require.GreaterOrEqual(t, got.Duration, time.Duration(0))
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start()

		require.Equal(t, RoundMetric{}, c.Complete(game.Step{Info: game.Info{game.InfoRound: 1}}, 1, true))
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestNewWriter(t *testing.T) {
	t.Run("back to back runs get their own directories", func(t *testing.T) {
		root := t.TempDir()

		first, err := NewWriter(root, "twice")
		require.NoError(t, err)
		second, err := NewWriter(root, "twice")
		require.NoError(t, err)

		require.NotEqual(t, first.Dir(), second.Dir())
		require.DirExists(t, first.Dir())
		require.DirExists(t, second.Dir())
	})

	t.Run("never reuses an existing directory", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "taken")
		require.NoError(t, err)

		require.Error(t, os.Mkdir(w.Dir(), 0755))
	})
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "smoke")
	require.NoError(t, err)

	t.Run("agent configs", func(t *testing.T) {
		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Pairs: 3, Guesses: 6, Prize: 1000, Seed: 7, Exploration: 0.5, Budget: 10},
		}))

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "3", "6", "1000", "false", "7", "0.5", "10"}, rows[1])
	})

	t.Run("game and round records", func(t *testing.T) {
		id := uuid.New()
		require.NoError(t, w.WriteGameRecords([]GameRecord{
			{Config: 1, GameMetric: GameMetric{ID: id, Pairs: 3, Success: true, Rounds: 2, Reward: 1000, RemainingPrize: 1000}},
		}))
		require.NoError(t, w.WriteRoundRecords([]RoundMetric{
			{Game: id, Round: 1, Beams: 1},
			{Game: id, Round: 2, Beams: 3, Reward: 1000},
		}))

		games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, games, 2)
		require.Equal(t, id.String(), games[1][0])
		require.Equal(t, "true", games[1][3])

		rounds := readCSV(t, filepath.Join(w.Dir(), "round_records.csv"))
		require.Len(t, rounds, 3)
		require.Equal(t, []string{"game", "round", "beams", "blackout", "reward", "remaining_prize", "duration", "search_steps", "consistent"}, rounds[0])
		require.Equal(t, "3", rounds[2][2])
	})
}
