package metrics

import (
	"time"

	"ayto/game"

	"github.com/google/uuid"
)

type RoundMetric struct {
	Game           uuid.UUID
	Round          int
	Beams          int
	Blackout       bool
	Reward         float64
	RemainingPrize float64
	Duration       time.Duration // Agent time to propose the match-up
	SearchSteps    int
	Consistent     bool
}

type GameMetric struct {
	ID             uuid.UUID
	Pairs          int
	Success        bool
	Rounds         int
	Reward         float64
	RemainingPrize float64
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// Collector times the agent's proposals and turns each resolved round into a
// RoundMetric.
type Collector interface {
	Start()
	Complete(step game.Step, searchSteps int, consistent bool) RoundMetric
}

type collector struct {
	game      uuid.UUID
	startTime time.Time
}

func NewCollector(game uuid.UUID) Collector {
	return &collector{game: game}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) Complete(step game.Step, searchSteps int, consistent bool) RoundMetric {
	duration := time.Since(m.startTime)
	round, _ := step.Info.Int(game.InfoRound)
	beams, _ := step.Info.Int(game.InfoBeams)
	blackout, _ := step.Info[game.InfoBlackout].(bool)
	prize, _ := step.Info[game.InfoRemainingPrize].(float64)
	return RoundMetric{
		Game:           m.game,
		Round:          round,
		Beams:          beams,
		Blackout:       blackout,
		Reward:         step.Reward,
		RemainingPrize: prize,
		Duration:       duration,
		SearchSteps:    searchSteps,
		Consistent:     consistent,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start() {}
func (m *dummyCollector) Complete(step game.Step, searchSteps int, consistent bool) RoundMetric {
	return RoundMetric{}
}
