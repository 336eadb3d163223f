package engine

import (
	"context"
	"fmt"

	"ayto/agent"
	"ayto/experiments/metrics"
	"ayto/game"
	"ayto/meta"

	"github.com/rs/zerolog/log"
)

// Local adapts an in-process game to Environment.
type Local struct {
	*game.AreYouTheOne
}

func (l Local) Observation(ctx context.Context) (game.Matrix, error) {
	return l.AreYouTheOne.Observation(), nil
}

func (l Local) Step(ctx context.Context, mu *game.MatchUp) (game.Step, error) {
	if err := ctx.Err(); err != nil {
		return game.Step{}, err
	}
	return l.AreYouTheOne.Step(mu)
}

type Engine struct {
	Env       Environment
	Agent     *agent.Agent
	Collector metrics.Collector
}

func NewEngine(env Environment, a *agent.Agent, collector metrics.Collector) *Engine {
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	return &Engine{
		Env:       env,
		Agent:     a,
		Collector: collector,
	}
}

// Run plays the game until it terminates or meta.MAX_ROUNDS is reached.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	result := Result{}
	observation, err := e.Env.Observation(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to observe the game: %w", err)
	}

	log.Info().Msgf("starting a game of %d pairs", e.Env.Size())

	for round := 1; round <= meta.MAX_ROUNDS; round++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		e.Collector.Start()
		mu, err := e.Agent.GetMatchUp(observation)
		if err != nil {
			return result, fmt.Errorf("round %d: agent failed to propose: %w", round, err)
		}

		step, err := e.Env.Step(ctx, mu)
		if err != nil {
			return result, fmt.Errorf("round %d: %w", round, err)
		}
		if err := e.Agent.Observe(mu, step); err != nil {
			return result, fmt.Errorf("round %d: agent failed to observe: %w", round, err)
		}
		search := e.Agent.LastSearch()
		result.Metrics = append(result.Metrics, e.Collector.Complete(step, search.Steps, search.Consistent))

		beams, _ := step.Info.Int(game.InfoBeams)
		prize, _ := step.Info[game.InfoRemainingPrize].(float64)
		log.Debug().Msgf("round %d: %d beams, remaining prize %.0f", round, beams, prize)

		result.Rounds = round
		result.Reward += step.Reward
		result.Success = step.Success
		result.RemainingPrize = prize
		observation = step.Observation

		if step.Terminated {
			break
		}
	}

	if result.Success {
		log.Info().Msgf("perfect match found in round %d, winning %.0f", result.Rounds, result.Reward)
	} else {
		log.Info().Msgf("game ended after %d rounds without a perfect match", result.Rounds)
	}
	return result, nil
}
