package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"ayto/meta"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds the settings of every run mode. Values come from the
// defaults in meta, then a .env file, then AYTO_* environment variables.
type Config struct {
	LogLevel    zerolog.Level
	Pairs       int
	Guesses     int
	Prize       float64
	Fluid       bool
	Seed        uint64
	Exploration float64
	Budget      int
	Addr        string // Listen address of the game service
	ServerURL   string // Game service to play against, local game when empty
	Plan        string // Experiment plan file, default plan when empty
	OutputDir   string
}

func Default() Config {
	return Config{
		LogLevel:    zerolog.InfoLevel,
		Pairs:       meta.DEFAULT_PAIRS,
		Prize:       meta.DEFAULT_PRIZE,
		Seed:        1,
		Exploration: meta.EXPLORATION,
		Budget:      meta.CONSISTENCY_BUDGET,
		Addr:        meta.SERVER_ADDR,
		OutputDir:   "experiments",
	}
}

// Load reads the given .env files, ".env" when none are given, and applies
// the environment on top of the defaults. Missing files are skipped.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return FromEnv(Default())
}

// FromEnv overrides c with any AYTO_* variables that are set.
func FromEnv(c Config) (Config, error) {
	var err error
	if v, ok := os.LookupEnv("AYTO_LOG_LEVEL"); ok {
		if c.LogLevel, err = zerolog.ParseLevel(v); err != nil {
			return c, fmt.Errorf("AYTO_LOG_LEVEL: %w", err)
		}
	}
	if err = setInt(&c.Pairs, "AYTO_PAIRS"); err != nil {
		return c, err
	}
	if err = setInt(&c.Guesses, "AYTO_GUESSES"); err != nil {
		return c, err
	}
	if err = setFloat(&c.Prize, "AYTO_PRIZE"); err != nil {
		return c, err
	}
	if v, ok := os.LookupEnv("AYTO_FLUID"); ok {
		if c.Fluid, err = strconv.ParseBool(v); err != nil {
			return c, fmt.Errorf("AYTO_FLUID: %w", err)
		}
	}
	if v, ok := os.LookupEnv("AYTO_SEED"); ok {
		if c.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return c, fmt.Errorf("AYTO_SEED: %w", err)
		}
	}
	if err = setFloat(&c.Exploration, "AYTO_EXPLORATION"); err != nil {
		return c, err
	}
	if err = setInt(&c.Budget, "AYTO_BUDGET"); err != nil {
		return c, err
	}
	setString(&c.Addr, "AYTO_ADDR")
	setString(&c.ServerURL, "AYTO_SERVER_URL")
	setString(&c.Plan, "AYTO_PLAN")
	setString(&c.OutputDir, "AYTO_OUTPUT_DIR")
	return c, nil
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
