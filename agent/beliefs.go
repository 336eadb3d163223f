package agent

import "ayto/game"

// Pair indexes a (group A, group B) pair of the belief matrices.
type Pair struct {
	I int
	J int
}

// Experience is one round of feedback: the proposed pairs and how many of
// them were correct.
type Experience struct {
	Pairs []Pair
	Beams int
}

// Beliefs accumulates evidence per pair. Each pair starts from one unit of
// positive and one unit of negative evidence; its belief is the share of
// positive evidence.
//
// Only the beam count of a round is observed, so credit is assigned
// heuristically. For a round proposing n pairs with b beams, where p is the
// current belief of a pair and E the sum of p over the round:
//
//   - b == 0: every proposed pair is wrong. Positive evidence drops to zero,
//     which rejects the pair for good, and negative evidence grows by one.
//   - otherwise: a pair gains b·p/E positive evidence and (n−b)·(1−p)/(n−E)
//     negative evidence. Uniform shares are used when E or n−E is zero.
//
// Outside blackouts, a round with at least one unrejected pair adds exactly b
// positive and n−b negative evidence in total.
type Beliefs struct {
	Positive game.Matrix
	Negative game.Matrix
	Proposed game.Matrix // Times each pair was proposed
}

func NewBeliefs(n int) *Beliefs {
	return &Beliefs{
		Positive: game.NewMatrix(n, 1),
		Negative: game.NewMatrix(n, 1),
		Proposed: game.NewMatrix(n, 0),
	}
}

func (b *Beliefs) Size() int {
	return b.Positive.Size()
}

// Probability is the believed chance that (i, j) is a hidden pair.
func (b *Beliefs) Probability(i, j int) float64 {
	total := b.Positive[i][j] + b.Negative[i][j]
	if total == 0 {
		return 0
	}
	return b.Positive[i][j] / total
}

// Rejected reports whether a blackout ruled out (i, j).
func (b *Beliefs) Rejected(i, j int) bool {
	return b.Positive[i][j] == 0
}

// Posterior returns the matrix of pair probabilities.
func (b *Beliefs) Posterior() game.Matrix {
	n := b.Size()
	posterior := game.NewMatrix(n, 0)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			posterior[i][j] = b.Probability(i, j)
		}
	}
	return posterior
}

// Update folds one round of feedback into the accumulators.
func (b *Beliefs) Update(e Experience) {
	n := len(e.Pairs)
	if n == 0 {
		return
	}

	for _, p := range e.Pairs {
		b.Proposed[p.I][p.J]++
	}

	if e.Beams == 0 {
		for _, p := range e.Pairs {
			b.Positive[p.I][p.J] = 0
			b.Negative[p.I][p.J]++
		}
		return
	}

	// Beliefs before this round
	probs := make([]float64, n)
	expected, open := 0.0, 0
	for k, p := range e.Pairs {
		probs[k] = b.Probability(p.I, p.J)
		expected += probs[k]
		if !b.Rejected(p.I, p.J) {
			open++
		}
	}

	beams := float64(e.Beams)
	misses := float64(n - e.Beams)
	for k, p := range e.Pairs {
		switch {
		case expected > 0:
			b.Positive[p.I][p.J] += beams * probs[k] / expected
		case open > 0 && !b.Rejected(p.I, p.J):
			b.Positive[p.I][p.J] += beams / float64(open)
		}

		if doubt := float64(n) - expected; doubt > 0 {
			b.Negative[p.I][p.J] += misses * (1 - probs[k]) / doubt
		} else {
			b.Negative[p.I][p.J] += misses / float64(n)
		}
	}
}

// GetBeliefs replays the experiences into fresh n×n beliefs and returns the
// resulting posterior.
func GetBeliefs(n int, experiences []Experience) game.Matrix {
	b := NewBeliefs(n)
	for _, e := range experiences {
		b.Update(e)
	}
	return b.Posterior()
}
