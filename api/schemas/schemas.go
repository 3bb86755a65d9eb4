// File: api/schemas/schemas.go
package schemas

// GameState is the lifecycle state of a game session as reported by the backend.
type GameState string

const (
	// StateNotPlayed means no RESET has been issued yet for this session.
	StateNotPlayed GameState = "NOT_PLAYED"
	// StateNotFinished means the game is active and accepting gameplay actions.
	StateNotFinished GameState = "NOT_FINISHED"
	// StateGameOver means the session ended without reaching the win condition.
	StateGameOver GameState = "GAME_OVER"
	// StateWin means the win condition was reached.
	StateWin GameState = "WIN"
)

// Frame is one immutable snapshot of game state and score returned by the
// backend after every executed action. The grid payload is opaque to the
// agent: layers x rows x columns of cell values.
type Frame struct {
	GameID           string       `json:"game_id"`
	Frame            [][][]int    `json:"frame"`
	State            GameState    `json:"state"`
	Score            int          `json:"score"`
	GUID             string       `json:"guid"`
	FullReset        bool         `json:"full_reset"`
	AvailableActions []ActionKind `json:"available_actions"`
}

// IsEmpty reports whether the frame carries no grid payload. The driver uses
// a synthetic empty frame before the first backend response arrives; such
// frames are never persisted.
func (f Frame) IsEmpty() bool {
	return len(f.Frame) == 0
}
