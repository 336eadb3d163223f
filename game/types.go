package game

import "fmt"

// Player identifies a contestant. Identifiers are opaque; a player belongs to
// exactly one of the two groups of a game.
type Player int

// Match pairs a player of group A with a player of group B.
type Match struct {
	A Player `json:"a"`
	B Player `json:"b"`
}

// Reverse swaps the orientation of the match.
func (m Match) Reverse() Match {
	return Match{A: m.B, B: m.A}
}

// Same reports whether both matches pair the same two players, in either
// orientation.
func (m Match) Same(other Match) bool {
	return m == other || m == other.Reverse()
}

func (m Match) String() string {
	return fmt.Sprintf("(%d, %d)", m.A, m.B)
}

// Member is either a Player or a Match; it is the argument of MatchUp.Contains.
type Member interface {
	member()
}

func (Player) member() {}
func (Match) member()  {}

// Group names one side of the game.
type Group int

const (
	GroupA Group = iota
	GroupB
)

func (g Group) Other() Group {
	if g == GroupA {
		return GroupB
	}
	return GroupA
}

func (g Group) String() string {
	if g == GroupA {
		return "A"
	}
	return "B"
}

// Info carries auxiliary per-round data returned by Step.
type Info map[string]any

const (
	InfoBeams            = "beams"
	InfoBlackout         = "blackout"
	InfoRound            = "round"
	InfoRemainingPrize   = "remaining_prize"
	InfoRemainingGuesses = "remaining_guesses"
)

// Int reads an integer entry. Values decoded from JSON arrive as float64.
func (i Info) Int(key string) (int, bool) {
	switch v := i[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Step is the outcome of one round.
type Step struct {
	Observation Matrix
	Reward      float64
	Success     bool
	Terminated  bool
	Info        Info
}
