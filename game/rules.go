package game

// Rules holds the variant-specific parts of round resolution.
type Rules interface {
	// BlackoutPenalty is the fraction of the total prize lost on a blackout.
	BlackoutPenalty() float64
	// Fluid lifts the two-group restriction on proposed pairs.
	Fluid() bool
}
