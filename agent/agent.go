package agent

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"ayto/game"
	"ayto/meta"
	"ayto/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Roster is the public view of a game the agent plays.
type Roster interface {
	Size() int
	GroupA() []game.Player
	GroupB() []game.Player
	// Choosers is the group choosing in the upcoming round.
	Choosers() []game.Player
}

type Option func(a *Agent)

func WithSeed(seed uint64) Option {
	return func(a *Agent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// WithExploration sets the c^2 constant of the exploration bonus. Zero turns
// exploration off.
func WithExploration(cSquared float64) Option {
	return func(a *Agent) {
		if cSquared >= 0 {
			a.exploration = cSquared
		}
	}
}

// WithConsistencyBudget caps how many permutations GetMatchUp walks looking
// for a match-up that agrees with past feedback. Zero turns the walk off. The
// walk starts at the optimum in lexicographic order, so a budget of k only
// reaches permutations of roughly the last m positions where m! <= k: it finds
// consistent match-ups reliably in small games only.
func WithConsistencyBudget(budget int) Option {
	return func(a *Agent) {
		if budget >= 0 {
			a.budget = budget
		}
	}
}

// Search describes how the last match-up was picked.
type Search struct {
	Steps      int  // Permutations checked after the optimum
	Consistent bool // Whether the pick agrees with every recorded round
}

// Agent plays a game by proposing, every round, the complete match-up that
// maximises its believed compatibility, then folding the beams it receives
// back into its beliefs.
type Agent struct {
	groupA  []game.Player
	groupB  []game.Player
	index   map[game.Player]int
	inGroup map[game.Player]game.Group
	roster  Roster

	beliefs *Beliefs
	memory  []Experience
	tried   map[string]struct{}
	last    Search

	rng         *rand.Rand
	exploration float64
	budget      int
}

func NewAgent(roster Roster, options ...Option) *Agent {
	a := &Agent{
		groupA:      roster.GroupA(),
		groupB:      roster.GroupB(),
		index:       make(map[game.Player]int, 2*roster.Size()),
		inGroup:     make(map[game.Player]game.Group, 2*roster.Size()),
		roster:      roster,
		beliefs:     NewBeliefs(roster.Size()),
		tried:       make(map[string]struct{}),
		rng:         rand.New(rand.NewSource(1)),
		exploration: meta.EXPLORATION,
		budget:      meta.CONSISTENCY_BUDGET,
	}
	if len(a.groupA) != len(a.groupB) {
		panic("groups must have the same size")
	}
	for i := range a.groupA {
		a.index[a.groupA[i]] = i
		a.index[a.groupB[i]] = i
		a.inGroup[a.groupA[i]] = game.GroupA
		a.inGroup[a.groupB[i]] = game.GroupB
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *Agent) Size() int {
	return len(a.groupA)
}

// Beliefs returns the current posterior over pairs.
func (a *Agent) Beliefs() game.Matrix {
	return a.beliefs.Posterior()
}

func (a *Agent) PositiveBeliefs() game.Matrix {
	return a.beliefs.Positive.Copy()
}

func (a *Agent) NegativeBeliefs() game.Matrix {
	return a.beliefs.Negative.Copy()
}

func (a *Agent) Memory() []Experience {
	return slices.Clone(a.memory)
}

func (a *Agent) LastSearch() Search {
	return a.last
}

// GetMatchUp proposes the next round's match-up given the game's
// possible-matches observation. The result is always a complete bijection
// between the groups, oriented so the current choosers choose.
func (a *Agent) GetMatchUp(observation game.Matrix) (*game.MatchUp, error) {
	n := a.Size()
	if observation.Size() != n {
		return nil, fmt.Errorf("%w: observation has %d rows, want %d", game.ErrLengthMismatch, observation.Size(), n)
	}

	weights := a.weights(observation)
	perm := Assign(weights)
	perm, a.last = a.search(perm)

	log.Debug().Msgf("agent proposes %v with weight %.3f after %d search steps", perm, Weight(weights, perm), a.last.Steps)

	return a.orient(perm)
}

// Observe records the feedback of a round the agent played.
func (a *Agent) Observe(mu *game.MatchUp, step game.Step) error {
	beams, ok := step.Info.Int(game.InfoBeams)
	if !ok {
		return fmt.Errorf("step info carries no %q entry", game.InfoBeams)
	}
	pairs, err := a.pairs(mu)
	if err != nil {
		return err
	}

	e := Experience{Pairs: pairs, Beams: beams}
	a.memory = append(a.memory, e)
	a.beliefs.Update(e)
	a.tried[key(a.permutation(pairs))] = struct{}{}
	return nil
}

func (a *Agent) weights(observation game.Matrix) game.Matrix {
	n := a.Size()
	policy := newUCT(a.exploration, len(a.memory))
	weights := game.NewMatrix(n, 0)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if a.beliefs.Rejected(i, j) {
				continue
			}
			weights[i][j] = observation[i][j] * policy.evaluate(a.beliefs.Probability(i, j), a.beliefs.Proposed[i][j])
		}
	}
	return weights
}

// search walks permutations in lexicographic order from the optimum until one
// agrees with every recorded beam count. Failing that within budget, it picks
// the first permutation not yet played.
func (a *Agent) search(optimum []int) ([]int, Search) {
	if len(a.memory) == 0 || a.budget == 0 {
		return optimum, Search{Consistent: true}
	}

	perm := slices.Clone(optimum)
	var untried []int
	steps := 0
	for ; steps < a.budget; steps++ {
		if a.consistent(perm) {
			return perm, Search{Steps: steps, Consistent: true}
		}
		if _, ok := a.tried[key(perm)]; !ok && untried == nil {
			untried = slices.Clone(perm)
		}
		utils.NextPermutation(perm)
		if slices.Equal(perm, optimum) { // Every permutation checked
			steps++
			break
		}
	}

	if untried != nil {
		return untried, Search{Steps: steps}
	}
	return optimum, Search{Steps: steps}
}

// consistent reports whether perm would have scored every recorded round's
// beam count had it been the hidden matching.
func (a *Agent) consistent(perm []int) bool {
	for _, e := range a.memory {
		hits := 0
		for _, p := range e.Pairs {
			if perm[p.I] == p.J {
				hits++
			}
		}
		if hits != e.Beams {
			return false
		}
	}
	return true
}

// orient turns a row -> column permutation into a match-up whose choosers are
// the current choosing group, in a random playing order.
func (a *Agent) orient(perm []int) (*game.MatchUp, error) {
	n := a.Size()
	choosersA := true
	if choosers := a.roster.Choosers(); len(choosers) > 0 {
		choosersA = a.inGroup[choosers[0]] == game.GroupA
	}

	mu := &game.MatchUp{}
	if choosersA {
		for i, j := range perm {
			if err := mu.Add(a.groupA[i], a.groupB[j]); err != nil {
				return nil, err
			}
		}
	} else {
		inverse := make([]int, n)
		for i, j := range perm {
			inverse[j] = i
		}
		for j, i := range inverse {
			if err := mu.Add(a.groupB[j], a.groupA[i]); err != nil {
				return nil, err
			}
		}
	}
	return mu.Shuffle(a.rng), nil
}

// pairs maps a match-up onto (group A, group B) indices.
func (a *Agent) pairs(mu *game.MatchUp) ([]Pair, error) {
	if mu == nil {
		return nil, fmt.Errorf("%w: no match-up", game.ErrIncompleteMatchUp)
	}
	pairs := make([]Pair, 0, mu.Len())
	for _, m := range mu.Matches() {
		groupA, okA := a.inGroup[m.A]
		groupB, okB := a.inGroup[m.B]
		if !okA || !okB {
			return nil, fmt.Errorf("%w: %v", game.ErrUnknownPlayer, m)
		}
		if groupA == groupB {
			return nil, fmt.Errorf("%w: %v pairs two players of group %s", game.ErrConstraintViolation, m, groupA)
		}
		if groupA == game.GroupB {
			m = m.Reverse()
		}
		pairs = append(pairs, Pair{I: a.index[m.A], J: a.index[m.B]})
	}
	return pairs, nil
}

// permutation lays pairs out as a row -> column slice; unpaired rows get -1.
func (a *Agent) permutation(pairs []Pair) []int {
	perm := make([]int, a.Size())
	for i := range perm {
		perm[i] = -1
	}
	for _, p := range pairs {
		perm[p.I] = p.J
	}
	return perm
}

func key(perm []int) string {
	parts := make([]string, len(perm))
	for i, j := range perm {
		parts[i] = strconv.Itoa(j)
	}
	return strings.Join(parts, ",")
}
