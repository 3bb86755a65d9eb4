// File: internal/sim/sim.go
// Description: An in-process game backend implementing the same
// action-in/frame-out contract as a remote game service. It exists so the
// CLI and the harness tests can run a full decision loop without any
// network transport.

package sim

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/xkilldash9x/gridpilot/api/schemas"
)

const (
	defaultWinScore = 3
	defaultMoveCap  = 40
)

// Game is a deterministic single-session target-hunt game. A hidden target
// cell is derived from the game id. Clicking its exact cell wins outright;
// clicking its row or column scores a point, and enough points win. The
// session ends in GAME_OVER once the move cap runs out.
type Game struct {
	gameID   string
	target   schemas.Coordinates
	winScore int
	moveCap  int

	state schemas.GameState
	score int
	moves int
}

// Option configures a Game.
type Option func(*Game)

// WithTarget fixes the hidden target cell instead of deriving it from the
// game id.
func WithTarget(x, y int) Option {
	return func(g *Game) { g.target = schemas.Coordinates{X: x, Y: y} }
}

// WithWinScore sets how many row/column hits win the game.
func WithWinScore(n int) Option {
	return func(g *Game) { g.winScore = n }
}

// WithMoveCap sets how many actions a run may take before GAME_OVER.
func WithMoveCap(n int) Option {
	return func(g *Game) { g.moveCap = n }
}

// New creates a game session. The session starts in NOT_PLAYED and accepts
// nothing but RESET until reset.
func New(gameID string, opts ...Option) *Game {
	g := &Game{
		gameID:   gameID,
		target:   deriveTarget(gameID),
		winScore: defaultWinScore,
		moveCap:  defaultMoveCap,
		state:    schemas.StateNotPlayed,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// deriveTarget hashes the game id onto a grid cell so every game id plays
// the same hunt every time.
func deriveTarget(gameID string) schemas.Coordinates {
	h := fnv.New32a()
	h.Write([]byte(gameID))
	sum := h.Sum32()
	return schemas.Coordinates{
		X: int(sum % (schemas.GridMax + 1)),
		Y: int((sum / (schemas.GridMax + 1)) % (schemas.GridMax + 1)),
	}
}

// Execute applies one action and returns the resulting frame. Submitting a
// gameplay action to a session that is not active is a protocol error.
func (g *Game) Execute(ctx context.Context, action schemas.Action) (schemas.Frame, error) {
	if err := ctx.Err(); err != nil {
		return schemas.Frame{}, err
	}
	if err := action.Validate(); err != nil {
		return schemas.Frame{}, fmt.Errorf("rejected by backend: %w", err)
	}

	if action.Kind == schemas.ActionReset {
		g.state = schemas.StateNotFinished
		g.score = 0
		g.moves = 0
		return g.frame(true), nil
	}

	if g.state != schemas.StateNotFinished {
		return schemas.Frame{}, fmt.Errorf("game %s is in state %s: only RESET is accepted", g.gameID, g.state)
	}

	g.moves++
	if action.Kind.IsComplex() {
		g.applyClick(*action.Coordinates)
	}

	if g.score >= g.winScore {
		g.state = schemas.StateWin
	} else if g.moves >= g.moveCap {
		g.state = schemas.StateGameOver
	}
	return g.frame(false), nil
}

func (g *Game) applyClick(c schemas.Coordinates) {
	switch {
	case c == g.target:
		// Direct hit ends the hunt immediately.
		g.score = g.winScore
	case c.X == g.target.X || c.Y == g.target.Y:
		g.score++
	}
}

// frame renders the current session state as a backend frame. The payload is
// a single 8x8 layer summarizing progress; its contents are opaque to the
// agent.
func (g *Game) frame(fullReset bool) schemas.Frame {
	layer := make([][]int, 8)
	for i := range layer {
		layer[i] = make([]int, 8)
	}
	layer[0][0] = g.moves
	layer[0][1] = g.score
	layer[g.target.X%8][g.target.Y%8] = -1

	return schemas.Frame{
		GameID:           g.gameID,
		Frame:            [][][]int{layer},
		State:            g.state,
		Score:            g.score,
		GUID:             uuid.NewString(),
		FullReset:        fullReset,
		AvailableActions: g.availableActions(),
	}
}

func (g *Game) availableActions() []schemas.ActionKind {
	if g.state != schemas.StateNotFinished {
		return []schemas.ActionKind{schemas.ActionReset}
	}
	return append([]schemas.ActionKind{schemas.ActionReset}, schemas.PlayableKinds()...)
}
