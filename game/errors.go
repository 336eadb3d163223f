package game

import "errors"

var (
	// ErrConstraintViolation is returned when a player would get a second
	// partner, or a pair breaks the group rules.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrLengthMismatch is returned when choosers and chosen differ in length.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrIncompleteMatchUp is returned when a match-up submitted to Step is
	// not a complete bijection between the groups.
	ErrIncompleteMatchUp = errors.New("incomplete match-up")

	// ErrTypeMismatch is returned by Contains for a member that is neither a
	// Player nor a Match.
	ErrTypeMismatch = errors.New("not a player or a match")

	ErrUnknownPlayer = errors.New("unknown player")
	ErrGameOver      = errors.New("game is over")
)
