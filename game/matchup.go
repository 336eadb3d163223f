package game

import (
	"fmt"
	"slices"
	"strings"

	"ayto/utils"

	"golang.org/x/exp/rand"
)

// MatchUp is one round's proposed pairing: choosers[i] is paired with
// chosen[i]. No player appears twice across both sequences.
type MatchUp struct {
	choosers []Player
	chosen   []Player
}

// NewMatchUp copies the given sequences into a match-up.
func NewMatchUp(choosers, chosen []Player) (*MatchUp, error) {
	if len(choosers) != len(chosen) {
		return nil, fmt.Errorf("%w: (choosers, chosen) = (%d, %d)", ErrLengthMismatch, len(choosers), len(chosen))
	}
	mu := &MatchUp{
		choosers: make([]Player, 0, len(choosers)),
		chosen:   make([]Player, 0, len(chosen)),
	}
	for i := range choosers {
		if err := mu.Add(choosers[i], chosen[i]); err != nil {
			return nil, err
		}
	}
	return mu, nil
}

// MatchUpFromMatches builds a match-up whose choosers are the A sides.
func MatchUpFromMatches(matches []Match) (*MatchUp, error) {
	mu := &MatchUp{}
	for _, m := range matches {
		if err := mu.Add(m.A, m.B); err != nil {
			return nil, err
		}
	}
	return mu, nil
}

// Add pairs chooser with chosen. Neither may already have a partner.
func (mu *MatchUp) Add(chooser, chosen Player) error {
	if chooser == chosen {
		return fmt.Errorf("%w: player %d cannot match with themselves", ErrConstraintViolation, chooser)
	}
	if partner, ok := mu.Match(chooser); ok {
		return fmt.Errorf("%w: player %d is already matched with %d", ErrConstraintViolation, chooser, partner)
	}
	if partner, ok := mu.Match(chosen); ok {
		return fmt.Errorf("%w: player %d is already matched with %d", ErrConstraintViolation, chosen, partner)
	}

	mu.choosers = append(mu.choosers, chooser)
	mu.chosen = append(mu.chosen, chosen)
	return nil
}

func (mu *MatchUp) Len() int {
	return len(mu.choosers)
}

func (mu *MatchUp) Choosers() []Player {
	return slices.Clone(mu.choosers)
}

func (mu *MatchUp) Chosen() []Player {
	return slices.Clone(mu.chosen)
}

// Matches lists the pairs in playing order, choosers first.
func (mu *MatchUp) Matches() []Match {
	matches := make([]Match, len(mu.choosers))
	for i := range mu.choosers {
		matches[i] = Match{A: mu.choosers[i], B: mu.chosen[i]}
	}
	return matches
}

// Players returns every assigned player in ascending order.
func (mu *MatchUp) Players() []Player {
	players := make([]Player, 0, 2*len(mu.choosers))
	players = append(players, mu.choosers...)
	players = append(players, mu.chosen...)
	slices.Sort(players)
	return players
}

func (mu *MatchUp) ContainsPlayer(p Player) bool {
	return slices.Contains(mu.choosers, p) || slices.Contains(mu.chosen, p)
}

// ContainsMatch reports whether the pair appears, in either orientation, at a
// common position.
func (mu *MatchUp) ContainsMatch(m Match) bool {
	for i := range mu.choosers {
		if m.Same(Match{A: mu.choosers[i], B: mu.chosen[i]}) {
			return true
		}
	}
	return false
}

// Contains dispatches to ContainsPlayer or ContainsMatch.
func (mu *MatchUp) Contains(x Member) (bool, error) {
	switch x := x.(type) {
	case Player:
		return mu.ContainsPlayer(x), nil
	case Match:
		return mu.ContainsMatch(x), nil
	default:
		return false, fmt.Errorf("%w: %v", ErrTypeMismatch, x)
	}
}

// Match returns the partner assigned to p.
func (mu *MatchUp) Match(p Player) (Player, bool) {
	if i := utils.FindIndex(mu.choosers, p); i >= 0 {
		return mu.chosen[i], true
	}
	if i := utils.FindIndex(mu.chosen, p); i >= 0 {
		return mu.choosers[i], true
	}
	return 0, false
}

// Shuffle returns a copy with a random playing order. Pairings are kept.
func (mu *MatchUp) Shuffle(rng *rand.Rand) *MatchUp {
	order := rng.Perm(len(mu.choosers))
	shuffled := &MatchUp{
		choosers: make([]Player, len(order)),
		chosen:   make([]Player, len(order)),
	}
	for to, from := range order {
		shuffled.choosers[to] = mu.choosers[from]
		shuffled.chosen[to] = mu.chosen[from]
	}
	return shuffled
}

func (mu *MatchUp) Copy() *MatchUp {
	return &MatchUp{
		choosers: slices.Clone(mu.choosers),
		chosen:   slices.Clone(mu.chosen),
	}
}

func (mu *MatchUp) String() string {
	pairs := make([]string, len(mu.choosers))
	for i, m := range mu.Matches() {
		pairs[i] = m.String()
	}
	return "[" + strings.Join(pairs, " ") + "]"
}
