// File: internal/agent/agent.go
// Description: The decision engine for one game session. Pure given the frame
// history and the latest frame; the harness owns all I/O around it.

package agent

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/gridpilot/api/schemas"
)

// FrameObserver is notified once per frame received from the backend, with
// the frame's position in the session history. The harness fans each arrival
// out to every registered observer in order; history tracking and frame
// persistence are independent subscribers of this event.
type FrameObserver interface {
	OnFrame(frame schemas.Frame, seq int)
}

// Agent is the decision engine for a single session. It owns the append-only
// frame history for its game_id and decides, per frame, whether play is over
// and which action to submit next. Action selection for active games is
// delegated to the injected Policy.
type Agent struct {
	gameID         string
	policy         Policy
	doneOnGameOver bool
	frames         []schemas.Frame
	logger         *zap.Logger
}

// Statically assert that the Agent's history tracking is a frame subscriber.
var _ FrameObserver = (*Agent)(nil)

// Option configures an Agent.
type Option func(*Agent)

// WithDoneOnGameOver makes GAME_OVER a terminal verdict. The default keeps
// GAME_OVER non-terminal so the next ChooseAction resets and retries.
func WithDoneOnGameOver(done bool) Option {
	return func(a *Agent) { a.doneOnGameOver = done }
}

// WithLogger attaches a logger; a nop logger is used otherwise.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Agent) { a.logger = logger.Named("agent") }
}

// New creates an Agent bound to one game session for its whole lifetime.
func New(gameID string, policy Policy, opts ...Option) (*Agent, error) {
	if gameID == "" {
		return nil, fmt.Errorf("cannot create agent without a game id")
	}
	if policy == nil {
		return nil, fmt.Errorf("cannot create agent without a policy")
	}
	a := &Agent{
		gameID: gameID,
		policy: policy,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// GameID returns the session identifier fixed at construction.
func (a *Agent) GameID() string { return a.gameID }

// Frames returns the session history in arrival order. The returned slice is
// shared with the agent; callers must treat it as read-only.
func (a *Agent) Frames() []schemas.Frame { return a.frames }

// OnFrame appends the frame to the session history. Arrival order is history
// order; the history is never truncated or reordered.
func (a *Agent) OnFrame(frame schemas.Frame, seq int) {
	a.frames = append(a.frames, frame)
	if len(a.frames)-1 != seq {
		// The harness is the only writer, so a mismatch means frames were
		// dropped or delivered out of order upstream.
		a.logger.Warn("Frame sequence mismatch",
			zap.Int("expected", len(a.frames)-1),
			zap.Int("received", seq),
			zap.String("guid", frame.GUID),
		)
	}
}

// IsDone reports the termination verdict for the session. WIN is always
// terminal. GAME_OVER is terminal only when configured via
// WithDoneOnGameOver; otherwise the session restarts through ChooseAction's
// RESET branch. Pure; never fails, even on an empty history.
func (a *Agent) IsDone(_ []schemas.Frame, latest schemas.Frame) bool {
	switch latest.State {
	case schemas.StateWin:
		return true
	case schemas.StateGameOver:
		return a.doneOnGameOver
	default:
		return false
	}
}

// ChooseAction decides the next action to submit. A session that has not
// started (NOT_PLAYED, or the synthetic pre-first frame) or has ended
// (GAME_OVER) gets RESET unconditionally; otherwise the policy picks a
// playable action, which is validated against its kind's schema before being
// handed to the driver. An invalid action is a hard failure: gameplay must
// not proceed on it.
func (a *Agent) ChooseAction(history []schemas.Frame, latest schemas.Frame) (schemas.Action, error) {
	switch latest.State {
	case schemas.StateNotPlayed, schemas.StateGameOver, "":
		return schemas.NewReset(fmt.Sprintf("game in state %q, starting over", latest.State)), nil
	}

	action, err := a.policy.ChooseAction(history, latest)
	if err != nil {
		return schemas.Action{}, fmt.Errorf("policy failed to choose an action: %w", err)
	}
	if action.Kind == schemas.ActionReset {
		return schemas.Action{}, fmt.Errorf("policy returned RESET for an active game")
	}
	if err := action.Validate(); err != nil {
		return schemas.Action{}, fmt.Errorf("policy returned an invalid action: %w", err)
	}

	a.logger.Debug("Action chosen",
		zap.String("kind", string(action.Kind)),
		zap.Int("history_len", len(history)),
	)
	return action, nil
}
