package engine

import (
	"context"

	"ayto/agent"
	"ayto/experiments/metrics"
	"ayto/game"
)

// Environment is a game the engine can drive, hosted in-process or behind
// the HTTP service.
type Environment interface {
	agent.Roster
	Observation(ctx context.Context) (game.Matrix, error)
	Step(ctx context.Context, mu *game.MatchUp) (game.Step, error)
}

type Result struct {
	Success        bool
	Reward         float64
	Rounds         int
	RemainingPrize float64
	Metrics        []metrics.RoundMetric
}
