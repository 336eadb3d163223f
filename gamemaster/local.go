package gamemaster

import (
	"errors"
	"sync"

	"ayto/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrUnknownGame = errors.New("unknown game")

// Snapshot is the public state of a hosted game.
type Snapshot struct {
	ID               uuid.UUID
	Size             int
	GroupA           []game.Player
	GroupB           []game.Player
	Choosers         []game.Player
	Round            int
	RemainingGuesses int
	RemainingPrize   float64
	TotalPrize       float64
	Terminated       bool
	Observation      game.Matrix
}

type hosted struct {
	sync.Mutex
	game *game.AreYouTheOne
}

// Registry hosts independent games by id. Each game is stepped under its own
// lock.
type Registry struct {
	mutex sync.RWMutex
	games map[uuid.UUID]*hosted
}

func NewRegistry() *Registry {
	return &Registry{games: make(map[uuid.UUID]*hosted)}
}

func (r *Registry) Create(setup Setup) (Snapshot, error) {
	g, err := NewGame(setup)
	if err != nil {
		return Snapshot{}, err
	}
	id := uuid.New()

	r.mutex.Lock()
	r.games[id] = &hosted{game: g}
	r.mutex.Unlock()

	log.Info().Msgf("hosting game %s with %d pairs", id, g.Size())
	return snapshot(id, g), nil
}

func (r *Registry) Get(id uuid.UUID) (Snapshot, error) {
	h, err := r.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	h.Lock()
	defer h.Unlock()
	return snapshot(id, h.game), nil
}

// Step resolves one round of the hosted game.
func (r *Registry) Step(id uuid.UUID, mu *game.MatchUp) (game.Step, error) {
	h, err := r.lookup(id)
	if err != nil {
		return game.Step{}, err
	}
	h.Lock()
	defer h.Unlock()
	return h.game.Step(mu)
}

func (r *Registry) Delete(id uuid.UUID) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.games, id)
}

func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.games)
}

func (r *Registry) lookup(id uuid.UUID) (*hosted, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	h, ok := r.games[id]
	if !ok {
		return nil, ErrUnknownGame
	}
	return h, nil
}

func snapshot(id uuid.UUID, g *game.AreYouTheOne) Snapshot {
	return Snapshot{
		ID:               id,
		Size:             g.Size(),
		GroupA:           g.GroupA(),
		GroupB:           g.GroupB(),
		Choosers:         g.Choosers(),
		Round:            g.Round(),
		RemainingGuesses: g.RemainingGuesses(),
		RemainingPrize:   g.RemainingPrize(),
		TotalPrize:       g.TotalPrize(),
		Terminated:       g.Terminated(),
		Observation:      g.Observation(),
	}
}
