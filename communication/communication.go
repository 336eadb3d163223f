// Package communication defines the JSON messages exchanged with the game
// service.
package communication

import (
	"ayto/game"
	"ayto/gamemaster"

	"github.com/google/uuid"
)

type CreateGameRequest = gamemaster.Setup

type GameView struct {
	ID               uuid.UUID     `json:"id"`
	Size             int           `json:"size"`
	GroupA           []game.Player `json:"group_a"`
	GroupB           []game.Player `json:"group_b"`
	Choosers         []game.Player `json:"choosers"`
	Round            int           `json:"round"`
	RemainingGuesses int           `json:"remaining_guesses"`
	RemainingPrize   float64       `json:"remaining_prize"`
	TotalPrize       float64       `json:"total_prize"`
	Terminated       bool          `json:"terminated"`
	Observation      game.Matrix   `json:"observation"`
}

func NewGameView(s gamemaster.Snapshot) GameView {
	return GameView{
		ID:               s.ID,
		Size:             s.Size,
		GroupA:           s.GroupA,
		GroupB:           s.GroupB,
		Choosers:         s.Choosers,
		Round:            s.Round,
		RemainingGuesses: s.RemainingGuesses,
		RemainingPrize:   s.RemainingPrize,
		TotalPrize:       s.TotalPrize,
		Terminated:       s.Terminated,
		Observation:      s.Observation,
	}
}

// MatchUpRequest pairs Choosers[i] with Chosen[i].
type MatchUpRequest struct {
	Choosers []game.Player `json:"choosers"`
	Chosen   []game.Player `json:"chosen"`
}

func NewMatchUpRequest(mu *game.MatchUp) MatchUpRequest {
	return MatchUpRequest{Choosers: mu.Choosers(), Chosen: mu.Chosen()}
}

func (r MatchUpRequest) MatchUp() (*game.MatchUp, error) {
	return game.NewMatchUp(r.Choosers, r.Chosen)
}

type StepResponse struct {
	Observation game.Matrix `json:"observation"`
	Reward      float64     `json:"reward"`
	Success     bool        `json:"success"`
	Terminated  bool        `json:"terminated"`
	Info        game.Info   `json:"info"`
}

func NewStepResponse(step game.Step) StepResponse {
	return StepResponse{
		Observation: step.Observation,
		Reward:      step.Reward,
		Success:     step.Success,
		Terminated:  step.Terminated,
		Info:        step.Info,
	}
}

func (r StepResponse) Step() game.Step {
	return game.Step{
		Observation: r.Observation,
		Reward:      r.Reward,
		Success:     r.Success,
		Terminated:  r.Terminated,
		Info:        r.Info,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}
