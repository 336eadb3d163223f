package gamemaster

import (
	"fmt"

	"ayto/game"
	"ayto/meta"

	"golang.org/x/exp/rand"
)

// Setup describes a game to create.
type Setup struct {
	Pairs   int     `json:"pairs" yaml:"pairs"`
	Guesses int     `json:"guesses" yaml:"guesses"` // 0 means one per pair
	Prize   float64 `json:"prize" yaml:"prize"`     // 0 means meta.DEFAULT_PRIZE
	Fluid   bool    `json:"fluid" yaml:"fluid"`
	Seed    uint64  `json:"seed" yaml:"seed"`
}

// RandomMatching hides a random bijection between group A = 0..n-1 and
// group B = n..2n-1.
func RandomMatching(rng *rand.Rand, n int) []game.Match {
	matching := make([]game.Match, n)
	for i, j := range rng.Perm(n) {
		matching[i] = game.Match{A: game.Player(i), B: game.Player(n + j)}
	}
	return matching
}

// NewGame creates a game with a matching hidden by the setup's seed.
func NewGame(setup Setup) (*game.AreYouTheOne, error) {
	if setup.Pairs <= 0 {
		return nil, fmt.Errorf("a game needs at least one pair, got %d", setup.Pairs)
	}
	if setup.Pairs > meta.MAX_PAIRS {
		return nil, fmt.Errorf("a game has at most %d pairs, got %d", meta.MAX_PAIRS, setup.Pairs)
	}

	rules := game.NewStandardRules()
	if setup.Fluid {
		rules = game.NewFluidRules()
	}
	prize := setup.Prize
	if prize <= 0 {
		prize = meta.DEFAULT_PRIZE
	}

	rng := rand.New(rand.NewSource(setup.Seed))
	return game.New(
		RandomMatching(rng, setup.Pairs),
		game.WithGuesses(setup.Guesses),
		game.WithPrize(prize),
		game.WithRules(rules),
	)
}
