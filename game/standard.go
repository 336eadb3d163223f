package game

import "ayto/meta"

type StandardRules struct {
	PenaltyRate float64
	FluidPairs  bool
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		PenaltyRate: meta.BLACKOUT_PENALTY,
		FluidPairs:  false,
	}
}

// NewFluidRules allows any two distinct players to be proposed as a pair.
func NewFluidRules() *StandardRules {
	return &StandardRules{
		PenaltyRate: meta.BLACKOUT_PENALTY,
		FluidPairs:  true,
	}
}

func (sr *StandardRules) BlackoutPenalty() float64 {
	return sr.PenaltyRate
}

func (sr *StandardRules) Fluid() bool {
	return sr.FluidPairs
}
