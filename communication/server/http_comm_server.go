package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"ayto/communication"
	"ayto/game"
	"ayto/gamemaster"
	"ayto/meta"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Server exposes hosted games over HTTP.
type Server struct {
	registry *gamemaster.Registry
}

func NewServer(registry *gamemaster.Registry) *Server {
	if registry == nil {
		registry = gamemaster.NewRegistry()
	}
	return &Server{registry: registry}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(meta.MAX_REQUEST_BYTES))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleCreateGame)
		r.Get("/{id}", s.handleGetGame)
		r.Post("/{id}/step", s.handleStep)
	})
	return r
}

// Start serves until the listener fails.
func (s *Server) Start(addr string) error {
	log.Info().Msgf("game service listening on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req communication.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, decodeStatus(err), err)
		return
	}
	snapshot, err := s.registry.Create(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusCreated, communication.NewGameView(snapshot))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	snapshot, err := s.registry.Get(id)
	if err != nil {
		writeError(w, status(err), err)
		return
	}
	writeJSON(w, http.StatusOK, communication.NewGameView(snapshot))
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	var req communication.MatchUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, decodeStatus(err), err)
		return
	}
	mu, err := req.MatchUp()
	if err != nil {
		writeError(w, status(err), err)
		return
	}
	step, err := s.registry.Step(id, mu)
	if err != nil {
		writeError(w, status(err), err)
		return
	}
	writeJSON(w, http.StatusOK, communication.NewStepResponse(step))
}

func gameID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

func decodeStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// status maps game errors onto HTTP status codes.
func status(err error) int {
	switch {
	case errors.Is(err, gamemaster.ErrUnknownGame):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, game.ErrConstraintViolation),
		errors.Is(err, game.ErrLengthMismatch),
		errors.Is(err, game.ErrIncompleteMatchUp),
		errors.Is(err, game.ErrUnknownPlayer),
		errors.Is(err, game.ErrTypeMismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, code, communication.ErrorResponse{Error: err.Error()})
}
