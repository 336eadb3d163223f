package agent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with negative rounds", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(0.5, -1)
		}, "Should panic when rounds is negative")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		policy := newUCT(2.0, 9)
		got := policy.evaluate(0.4, 4)

		expected := 0.4 + math.Sqrt(2.0*math.Log(10)/5.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute p + sqrt(c^2*ln(1+N)/(1+n))")
	})

	t.Run("no bonus before the first round", func(t *testing.T) {
		policy := newUCT(2.0, 0)

		require.Equal(t, 0.3, policy.evaluate(0.3, 0))
	})

	t.Run("no bonus without exploration", func(t *testing.T) {
		policy := newUCT(0, 100)

		require.Equal(t, 0.3, policy.evaluate(0.3, 2))
	})

	t.Run("exploration term decreases with proposals", func(t *testing.T) {
		policy := newUCT(2.0, 100)

		require.Greater(t, policy.evaluate(0.5, 1), policy.evaluate(0.5, 5),
			"More proposals should decrease exploration term")
	})

	t.Run("exploration term increases with rounds", func(t *testing.T) {
		require.Greater(t, newUCT(2.0, 50).evaluate(0.5, 3), newUCT(2.0, 5).evaluate(0.5, 3),
			"More rounds should increase exploration term")
	})
}
