// File: internal/harness/harness.go
// Description: The host driver for one agent playing one game. It owns the
// observe/decide/submit loop and composes the frame-arrival subscribers
// (history tracking, frame recording) around the decision engine.

package harness

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/gridpilot/api/schemas"
	"github.com/xkilldash9x/gridpilot/internal/agent"
)

const defaultMaxActions = 80

// GameClient executes one action against the game backend and returns the
// resulting frame. Implementations own all transport and session concerns.
type GameClient interface {
	Execute(ctx context.Context, action schemas.Action) (schemas.Frame, error)
}

// Result summarizes one finished run of the decision loop.
type Result struct {
	Actions    int
	Frames     int
	FinalScore int
	FinalState schemas.GameState
	Won        bool
}

// Harness drives a single session: one agent, one client, sequential frames.
type Harness struct {
	agent      *agent.Agent
	client     GameClient
	observers  []agent.FrameObserver
	limiter    *rate.Limiter
	maxActions int
	logger     *zap.Logger
	seq        int
}

// Option configures a Harness.
type Option func(*Harness)

// WithObservers registers additional frame-arrival subscribers. The agent's
// history tracking is always the first subscriber; extras (such as the frame
// recorder) are notified after it, in registration order.
func WithObservers(observers ...agent.FrameObserver) Option {
	return func(h *Harness) { h.observers = append(h.observers, observers...) }
}

// WithMaxActions bounds how many actions the run may submit.
func WithMaxActions(n int) Option {
	return func(h *Harness) { h.maxActions = n }
}

// WithActionRate paces submissions to at most perSecond actions per second.
// Zero disables pacing.
func WithActionRate(perSecond float64) Option {
	return func(h *Harness) {
		if perSecond > 0 {
			h.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithLogger attaches a logger; a nop logger is used otherwise.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Harness) { h.logger = logger.Named("harness") }
}

// New creates a Harness for one session.
func New(a *agent.Agent, client GameClient, opts ...Option) (*Harness, error) {
	if a == nil || client == nil {
		return nil, fmt.Errorf("cannot create harness with nil agent or client")
	}
	h := &Harness{
		agent:      a,
		client:     client,
		observers:  []agent.FrameObserver{a},
		limiter:    rate.NewLimiter(rate.Inf, 0),
		maxActions: defaultMaxActions,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Run executes the decision loop until the agent reports done, the action
// budget runs out, or the context is cancelled. Decision-path and transport
// errors abort the run; subscriber side effects never do.
func (h *Harness) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	// Synthetic pre-first frame: empty payload, session not yet played. It
	// drives the first ChooseAction to RESET and is never persisted.
	latest := schemas.Frame{GameID: h.agent.GameID(), State: schemas.StateNotPlayed}

	h.logger.Info("Starting session",
		zap.String("game_id", h.agent.GameID()),
		zap.Int("max_actions", h.maxActions),
	)

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if h.agent.IsDone(h.agent.Frames(), latest) {
			result.Won = latest.State == schemas.StateWin
			h.logger.Info("Session finished",
				zap.String("game_id", h.agent.GameID()),
				zap.String("state", string(latest.State)),
				zap.Int("score", latest.Score),
				zap.Int("actions", result.Actions),
			)
			return result, nil
		}

		if result.Actions >= h.maxActions {
			h.logger.Warn("Action budget exhausted",
				zap.String("game_id", h.agent.GameID()),
				zap.Int("max_actions", h.maxActions),
			)
			return result, nil
		}

		action, err := h.agent.ChooseAction(h.agent.Frames(), latest)
		if err != nil {
			return result, fmt.Errorf("decision failure: %w", err)
		}

		if err := h.limiter.Wait(ctx); err != nil {
			return result, err
		}

		frame, err := h.client.Execute(ctx, action)
		if err != nil {
			return result, fmt.Errorf("backend rejected action %s: %w", action.Kind, err)
		}
		result.Actions++

		h.publish(frame)
		result.Frames = h.seq
		result.FinalScore = frame.Score
		result.FinalState = frame.State
		latest = frame
	}
}

// publish fans one received frame out to every subscriber with its sequence
// number. Delivery order matches arrival order; the sequence number is the
// frame's index in the session history.
func (h *Harness) publish(frame schemas.Frame) {
	seq := h.seq
	for _, obs := range h.observers {
		obs.OnFrame(frame, seq)
	}
	h.seq++
}
