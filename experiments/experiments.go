package experiments

import (
	"context"
	"fmt"
	"os"
	"time"

	"ayto/agent"
	"ayto/engine"
	"ayto/experiments/metrics"
	"ayto/gamemaster"
	"ayto/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Plan lists the agent configurations to compare and how many games each
// plays.
type Plan struct {
	Name    string                `yaml:"name"`
	Games   int                   `yaml:"games"` // Per config
	Configs []metrics.AgentConfig `yaml:"configs"`
}

// DefaultPlan compares exploration strengths on default-sized games.
func DefaultPlan() Plan {
	base := metrics.AgentConfig{Pairs: meta.DEFAULT_PAIRS, Prize: meta.DEFAULT_PRIZE, Budget: meta.CONSISTENCY_BUDGET}
	configs := []metrics.AgentConfig{}
	for i, exploration := range []float64{0, 0.25, meta.EXPLORATION, 1, 2} {
		config := base
		config.ID = i + 1
		config.Exploration = exploration
		configs = append(configs, config)
	}
	return Plan{Name: "exploration", Games: 30, Configs: configs}
}

// LoadPlan reads a YAML plan. Missing guesses and prize fall back to the game
// defaults; a zero exploration or budget turns that agent feature off.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read plan: %w", err)
	}
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("failed to parse plan: %w", err)
	}
	if err := plan.validate(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

func (p Plan) validate() error {
	if p.Name == "" {
		return fmt.Errorf("plan needs a name")
	}
	if p.Games <= 0 {
		return fmt.Errorf("plan %s needs a positive number of games, got %d", p.Name, p.Games)
	}
	if len(p.Configs) == 0 {
		return fmt.Errorf("plan %s has no configs", p.Name)
	}
	seen := map[int]bool{}
	for _, config := range p.Configs {
		if config.Pairs <= 0 {
			return fmt.Errorf("config %d needs at least one pair", config.ID)
		}
		if seen[config.ID] {
			return fmt.Errorf("config id %d is used twice", config.ID)
		}
		seen[config.ID] = true
	}
	return nil
}

// Report holds everything an experiment recorded.
type Report struct {
	Games  []metrics.GameRecord
	Rounds []metrics.RoundMetric
}

// Run plays the plan and writes its records under root/<name>/<timestamp>/.
func Run(ctx context.Context, plan Plan, root string) (Report, error) {
	if err := plan.validate(); err != nil {
		return Report{}, err
	}
	report := Report{}

	log.Info().Msgf("starting %s experiment...", plan.Name)

	for ci, config := range plan.Configs {
		log.Info().Msgf("starting config %d of %d: %+v", ci+1, len(plan.Configs), config)

		for i := 0; i < plan.Games; i++ {
			record, rounds, err := runGame(ctx, config, config.Seed+uint64(i))
			if err != nil {
				return report, fmt.Errorf("config %d game %d: %w", config.ID, i+1, err)
			}
			report.Games = append(report.Games, record)
			report.Rounds = append(report.Rounds, rounds...)

			log.Info().Msgf("completed config %d game %d of %d: success=%t rounds=%d", config.ID, i+1, plan.Games, record.Success, record.Rounds)
		}
	}

	log.Info().Msgf("completed %s experiment", plan.Name)

	writer, err := metrics.NewWriter(root, plan.Name)
	if err != nil {
		return report, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(plan.Configs); err != nil {
		return report, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(report.Games); err != nil {
		return report, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteRoundRecords(report.Rounds); err != nil {
		return report, fmt.Errorf("failed to write round records: %w", err)
	}
	log.Info().Msgf("stored round records in %s", writer.Dir())

	return report, nil
}

// runGame plays a single seeded game with the config's agent.
func runGame(ctx context.Context, config metrics.AgentConfig, seed uint64) (metrics.GameRecord, []metrics.RoundMetric, error) {
	g, err := gamemaster.NewGame(gamemaster.Setup{
		Pairs:   config.Pairs,
		Guesses: config.Guesses,
		Prize:   config.Prize,
		Fluid:   config.Fluid,
		Seed:    seed,
	})
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	env := engine.Local{AreYouTheOne: g}
	a := agent.NewAgent(env,
		agent.WithSeed(seed),
		agent.WithExploration(config.Exploration),
		agent.WithConsistencyBudget(config.Budget),
	)

	id := uuid.New()
	start := time.Now()
	result, err := engine.NewEngine(env, a, metrics.NewCollector(id)).Run(ctx)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	end := time.Now()

	return metrics.GameRecord{
		Config: config.ID,
		GameMetric: metrics.GameMetric{
			ID:             id,
			Pairs:          config.Pairs,
			Success:        result.Success,
			Rounds:         result.Rounds,
			Reward:         result.Reward,
			RemainingPrize: result.RemainingPrize,
			StartTime:      start,
			EndTime:        end,
			Duration:       end.Sub(start),
		},
	}, result.Metrics, nil
}
