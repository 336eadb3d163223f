package game

import (
	"fmt"
	"slices"

	"ayto/meta"
)

type Option func(g *AreYouTheOne)

// WithGuesses sets the number of rounds. Defaults to the number of pairs.
func WithGuesses(guesses int) Option {
	return func(g *AreYouTheOne) {
		if guesses > 0 {
			g.guesses = guesses
		}
	}
}

func WithPrize(prize float64) Option {
	return func(g *AreYouTheOne) {
		if prize > 0 {
			g.totalPrize = prize
		}
	}
}

func WithRules(rules Rules) Option {
	return func(g *AreYouTheOne) {
		if rules != nil {
			g.rules = rules
		}
	}
}

// AreYouTheOne is the game environment. It owns the hidden matching, which is
// only ever revealed through Truth, Beams and the step outcome.
type AreYouTheOne struct {
	matching map[Match]struct{} // Both orientations of every hidden pair
	groupA   []Player           // Sorted
	groupB   []Player           // Sorted
	group    map[Player]Group
	index    map[Player]int // Position of a player within its group
	rules    Rules

	guesses          int
	remainingGuesses int
	totalPrize       float64
	remainingPrize   float64
	possibleMatches  Matrix
	round            int
	terminated       bool
}

// New creates a game around the hidden matching. The A sides of the matches
// form group A and the B sides form group B.
func New(matching []Match, options ...Option) (*AreYouTheOne, error) {
	if len(matching) == 0 {
		return nil, fmt.Errorf("%w: hidden matching is empty", ErrConstraintViolation)
	}

	g := &AreYouTheOne{
		matching:   make(map[Match]struct{}, 2*len(matching)),
		group:      make(map[Player]Group, 2*len(matching)),
		index:      make(map[Player]int, 2*len(matching)),
		rules:      NewStandardRules(),
		guesses:    len(matching),
		totalPrize: meta.DEFAULT_PRIZE,
	}
	for _, m := range matching {
		if m.A == m.B {
			return nil, fmt.Errorf("%w: player %d matched with themselves", ErrConstraintViolation, m.A)
		}
		for _, p := range []Player{m.A, m.B} {
			if _, ok := g.group[p]; ok {
				return nil, fmt.Errorf("%w: player %d appears twice in the hidden matching", ErrConstraintViolation, p)
			}
		}
		g.group[m.A] = GroupA
		g.group[m.B] = GroupB
		g.groupA = append(g.groupA, m.A)
		g.groupB = append(g.groupB, m.B)
		g.matching[m] = struct{}{}
		g.matching[m.Reverse()] = struct{}{}
	}
	slices.Sort(g.groupA)
	slices.Sort(g.groupB)
	for i := range g.groupA {
		g.index[g.groupA[i]] = i
		g.index[g.groupB[i]] = i
	}

	for _, option := range options {
		option(g)
	}
	g.remainingGuesses = g.guesses
	g.remainingPrize = g.totalPrize
	g.possibleMatches = NewMatrix(len(matching), 1)
	return g, nil
}

// Size is the number of pairs.
func (g *AreYouTheOne) Size() int {
	return len(g.groupA)
}

func (g *AreYouTheOne) GroupA() []Player {
	return slices.Clone(g.groupA)
}

func (g *AreYouTheOne) GroupB() []Player {
	return slices.Clone(g.groupB)
}

func (g *AreYouTheOne) Rules() Rules {
	return g.rules
}

// Round is the number of rounds played so far.
func (g *AreYouTheOne) Round() int {
	return g.round
}

// Choosers is the group choosing this round. Roles swap every round, starting
// with group A.
func (g *AreYouTheOne) Choosers() []Player {
	if g.round%2 == 0 {
		return g.GroupA()
	}
	return g.GroupB()
}

func (g *AreYouTheOne) Chosen() []Player {
	if g.round%2 == 0 {
		return g.GroupB()
	}
	return g.GroupA()
}

// Index is the player's position within its group, the row (group A) or
// column (group B) of the observation matrix.
func (g *AreYouTheOne) Index(p Player) (int, bool) {
	i, ok := g.index[p]
	return i, ok
}

func (g *AreYouTheOne) GroupOf(p Player) (Group, bool) {
	grp, ok := g.group[p]
	return grp, ok
}

func (g *AreYouTheOne) TotalPrize() float64 {
	return g.totalPrize
}

func (g *AreYouTheOne) RemainingPrize() float64 {
	return g.remainingPrize
}

func (g *AreYouTheOne) Guesses() int {
	return g.guesses
}

func (g *AreYouTheOne) RemainingGuesses() int {
	return g.remainingGuesses
}

func (g *AreYouTheOne) Terminated() bool {
	return g.terminated
}

// Observation returns a copy of the possible-matches matrix.
func (g *AreYouTheOne) Observation() Matrix {
	return g.possibleMatches.Copy()
}

// Truth reports whether the match, in either orientation, is a hidden pair.
func (g *AreYouTheOne) Truth(m Match) bool {
	_, ok := g.matching[m]
	return ok
}

// Beams marks each pair of the match-up, in playing order, that is correct.
func (g *AreYouTheOne) Beams(mu *MatchUp) []bool {
	matches := mu.Matches()
	beams := make([]bool, len(matches))
	for i, m := range matches {
		beams[i] = g.Truth(m)
	}
	return beams
}

func (g *AreYouTheOne) BeamCount(mu *MatchUp) int {
	count := 0
	for _, beam := range g.Beams(mu) {
		if beam {
			count++
		}
	}
	return count
}

func (g *AreYouTheOne) IsBlackout(mu *MatchUp) bool {
	return g.BeamCount(mu) == 0
}

func (g *AreYouTheOne) IsPerfect(mu *MatchUp) bool {
	return g.BeamCount(mu) == g.Size()
}

// Options lists every candidate partner of p: the other group, or in fluid
// mode every other player.
func (g *AreYouTheOne) Options(p Player) []Player {
	grp, ok := g.group[p]
	if !ok {
		return nil
	}
	if g.rules.Fluid() {
		options := make([]Player, 0, 2*g.Size()-1)
		for _, other := range g.players() {
			if other != p {
				options = append(options, other)
			}
		}
		return options
	}
	if grp == GroupA {
		return g.GroupB()
	}
	return g.GroupA()
}

// Choices narrows Options(p) to the players still unassigned in mu, plus p's
// own current partner.
func (g *AreYouTheOne) Choices(p Player, mu *MatchUp) []Player {
	partner, matched := mu.Match(p)
	choices := []Player{}
	for _, option := range g.Options(p) {
		if (matched && option == partner) || !mu.ContainsPlayer(option) {
			choices = append(choices, option)
		}
	}
	return choices
}

func (g *AreYouTheOne) players() []Player {
	players := make([]Player, 0, 2*g.Size())
	players = append(players, g.groupA...)
	players = append(players, g.groupB...)
	slices.Sort(players)
	return players
}

// Validate checks that mu is a complete bijection the rules accept.
func (g *AreYouTheOne) Validate(mu *MatchUp) error {
	if mu == nil {
		return fmt.Errorf("%w: no match-up", ErrIncompleteMatchUp)
	}
	if mu.Len() != g.Size() {
		return fmt.Errorf("%w: %d of %d pairs", ErrIncompleteMatchUp, mu.Len(), g.Size())
	}
	for _, m := range mu.Matches() {
		groupA, okA := g.group[m.A]
		groupB, okB := g.group[m.B]
		if !okA {
			return fmt.Errorf("%w: %d", ErrUnknownPlayer, m.A)
		}
		if !okB {
			return fmt.Errorf("%w: %d", ErrUnknownPlayer, m.B)
		}
		if groupA == groupB && !g.rules.Fluid() {
			return fmt.Errorf("%w: %v pairs two players of group %s", ErrConstraintViolation, m, groupA)
		}
	}
	// n pairs of distinct known players cover all 2n players.
	return nil
}

// Step resolves one round.
func (g *AreYouTheOne) Step(mu *MatchUp) (Step, error) {
	if g.terminated {
		return Step{}, ErrGameOver
	}
	if err := g.Validate(mu); err != nil {
		return Step{}, err
	}

	g.remainingGuesses--
	g.round++

	// Guessing alone wins nothing
	reward, success := 0.0, false
	beams := g.BeamCount(mu)
	blackout := beams == 0

	if blackout {
		g.remainingPrize = max(0, g.remainingPrize-g.rules.BlackoutPenalty()*g.totalPrize)
	} else if beams == g.Size() {
		reward, success = g.remainingPrize, true
		g.possibleMatches = g.permutationMatrix(mu)
	}

	g.terminated = success || g.remainingGuesses <= 0 || g.remainingPrize <= 0

	return Step{
		Observation: g.possibleMatches.Copy(),
		Reward:      reward,
		Success:     success,
		Terminated:  g.terminated,
		Info: Info{
			InfoBeams:            beams,
			InfoBlackout:         blackout,
			InfoRound:            g.round,
			InfoRemainingPrize:   g.remainingPrize,
			InfoRemainingGuesses: g.remainingGuesses,
		},
	}, nil
}

func (g *AreYouTheOne) permutationMatrix(mu *MatchUp) Matrix {
	m := NewMatrix(g.Size(), 0)
	for _, match := range mu.Matches() {
		if g.group[match.A] == GroupB {
			match = match.Reverse()
		}
		m[g.index[match.A]][g.index[match.B]] = 1
	}
	return m
}
