package agent

import "math"

// uct scores pairs by belief plus an exploration bonus that shrinks the more
// often a pair has been proposed.
type uct struct {
	numerator float64
}

func newUCT(cSquared float64, rounds int) uct {
	if rounds < 0 {
		panic("rounds cannot be negative")
	}
	return uct{numerator: cSquared * math.Log1p(float64(rounds))}
}

// evaluate = p + sqrt(c^2*ln(1+N)/(1+n))
func (u uct) evaluate(p float64, proposed float64) float64 {
	return p + math.Sqrt(u.numerator/(1+proposed))
}
