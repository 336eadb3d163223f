package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		c, err := Load(filepath.Join(t.TempDir(), "missing.env"))

		require.NoError(t, err)
		require.Equal(t, Default(), c)
	})

	t.Run("reads a .env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("AYTO_PAIRS=4\nAYTO_FLUID=true\nAYTO_LOG_LEVEL=debug\n"), 0644))
		t.Cleanup(func() {
			os.Unsetenv("AYTO_PAIRS")
			os.Unsetenv("AYTO_FLUID")
			os.Unsetenv("AYTO_LOG_LEVEL")
		})

		c, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 4, c.Pairs)
		require.True(t, c.Fluid)
		require.Equal(t, zerolog.DebugLevel, c.LogLevel)
	})

	t.Run("the environment wins over the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("AYTO_SEED=3\n"), 0644))
		t.Setenv("AYTO_SEED", "9")

		c, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, uint64(9), c.Seed)
	})
}

func TestFromEnv(t *testing.T) {
	t.Run("overrides every setting", func(t *testing.T) {
		t.Setenv("AYTO_GUESSES", "12")
		t.Setenv("AYTO_PRIZE", "500")
		t.Setenv("AYTO_EXPLORATION", "0")
		t.Setenv("AYTO_BUDGET", "7")
		t.Setenv("AYTO_ADDR", ":9000")
		t.Setenv("AYTO_SERVER_URL", "http://localhost:9000")
		t.Setenv("AYTO_PLAN", "plan.yaml")
		t.Setenv("AYTO_OUTPUT_DIR", "out")

		c, err := FromEnv(Default())

		require.NoError(t, err)
		require.Equal(t, 12, c.Guesses)
		require.Equal(t, 500.0, c.Prize)
		require.Equal(t, 0.0, c.Exploration)
		require.Equal(t, 7, c.Budget)
		require.Equal(t, ":9000", c.Addr)
		require.Equal(t, "http://localhost:9000", c.ServerURL)
		require.Equal(t, "plan.yaml", c.Plan)
		require.Equal(t, "out", c.OutputDir)
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		for _, key := range []string{"AYTO_PAIRS", "AYTO_PRIZE", "AYTO_FLUID", "AYTO_SEED", "AYTO_LOG_LEVEL"} {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, "not-a-value")

				_, err := FromEnv(Default())

				require.Error(t, err)
			})
		}
	})
}
