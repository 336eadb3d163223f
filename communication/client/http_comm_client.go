package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"ayto/communication"
	"ayto/game"
	"ayto/gamemaster"
)

var ErrRejected = errors.New("match-up rejected")

// Client plays a game hosted by the game service. It implements
// engine.Environment.
type Client struct {
	serverURL string
	http      *http.Client
	view      communication.GameView
}

// Create starts a new game on the server.
func Create(ctx context.Context, serverURL string, setup gamemaster.Setup) (*Client, error) {
	c := newClient(serverURL)
	if err := c.do(ctx, http.MethodPost, "/games", setup, &c.view); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return c, nil
}

// Attach joins a game that already exists on the server.
func Attach(ctx context.Context, serverURL, id string) (*Client, error) {
	c := newClient(serverURL)
	if err := c.do(ctx, http.MethodGet, "/games/"+id, nil, &c.view); err != nil {
		return nil, fmt.Errorf("failed to attach to game %s: %w", id, err)
	}
	return c, nil
}

func newClient(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) ID() string {
	return c.view.ID.String()
}

func (c *Client) Size() int {
	return c.view.Size
}

func (c *Client) GroupA() []game.Player {
	return slices.Clone(c.view.GroupA)
}

func (c *Client) GroupB() []game.Player {
	return slices.Clone(c.view.GroupB)
}

func (c *Client) Choosers() []game.Player {
	return slices.Clone(c.view.Choosers)
}

func (c *Client) Terminated() bool {
	return c.view.Terminated
}

// Observation refreshes the game view from the server.
func (c *Client) Observation(ctx context.Context) (game.Matrix, error) {
	var view communication.GameView
	if err := c.do(ctx, http.MethodGet, "/games/"+c.ID(), nil, &view); err != nil {
		return nil, err
	}
	c.view = view
	return view.Observation.Copy(), nil
}

func (c *Client) Step(ctx context.Context, mu *game.MatchUp) (game.Step, error) {
	var resp communication.StepResponse
	err := c.do(ctx, http.MethodPost, "/games/"+c.ID()+"/step", communication.NewMatchUpRequest(mu), &resp)
	if err != nil {
		return game.Step{}, err
	}

	step := resp.Step()
	c.view.Observation = step.Observation
	c.view.Terminated = step.Terminated
	if round, ok := step.Info.Int(game.InfoRound); ok {
		c.view.Round = round
	}
	if guesses, ok := step.Info.Int(game.InfoRemainingGuesses); ok {
		c.view.RemainingGuesses = guesses
	}
	if prize, ok := step.Info[game.InfoRemainingPrize].(float64); ok {
		c.view.RemainingPrize = prize
	}
	// Roles alternate every round.
	if c.view.Round%2 == 0 {
		c.view.Choosers = c.view.GroupA
	} else {
		c.view.Choosers = c.view.GroupB
	}
	return step, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var e communication.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%w: %s", statusError(resp.StatusCode), e.Error)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(code int) error {
	switch code {
	case http.StatusNotFound:
		return gamemaster.ErrUnknownGame
	case http.StatusConflict:
		return game.ErrGameOver
	case http.StatusUnprocessableEntity:
		return ErrRejected
	default:
		return fmt.Errorf("server returned status %d", code)
	}
}
