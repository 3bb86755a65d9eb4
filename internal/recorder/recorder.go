// File: internal/recorder/recorder.go
// Description: Best-effort persistence of every non-empty frame to one JSON
// file per frame. Failures here are logged and contained; they never reach
// the decision loop.

package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/gridpilot/api/schemas"
	"github.com/xkilldash9x/gridpilot/internal/agent"
)

// Record is the persisted shape of one frame snapshot.
type Record struct {
	FrameNumber      int       `json:"frame_number"`
	Timestamp        int64     `json:"timestamp"`
	GameID           string    `json:"game_id"`
	Frame            [][][]int `json:"frame"`
	State            string    `json:"state"`
	Score            int       `json:"score"`
	GUID             string    `json:"guid"`
	FullReset        bool      `json:"full_reset"`
	AvailableActions []string  `json:"available_actions"`
}

// Recorder writes one file per frame under a directory namespaced by game id.
type Recorder struct {
	dir    string
	logger *zap.Logger
	// now is injectable so tests can force timestamp collisions.
	now func() time.Time
}

// Statically assert that the Recorder subscribes to frame arrivals.
var _ agent.FrameObserver = (*Recorder)(nil)

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the capture timestamp source. Tests only.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// New creates a Recorder for one session. Records land in baseDir/<gameID>/.
func New(baseDir, gameID string, logger *zap.Logger, opts ...Option) *Recorder {
	r := &Recorder{
		dir:    filepath.Join(baseDir, gameID),
		logger: logger.Named("recorder"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnFrame satisfies the frame-arrival subscription; seq is the frame's index
// in the session history.
func (r *Recorder) OnFrame(frame schemas.Frame, seq int) {
	r.Record(frame, seq)
}

// Record persists one frame snapshot. Empty frames are skipped silently.
// The filename carries the zero-padded sequence number and a millisecond
// timestamp, so records within one session sort chronologically and two
// captures in the same millisecond still get distinct names.
func (r *Recorder) Record(frame schemas.Frame, seq int) {
	if frame.IsEmpty() {
		return
	}

	// Recreate the directory every attempt: a failure on frame k must not
	// doom frame k+1.
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		r.logger.Warn("Failed to create frame directory",
			zap.String("dir", r.dir), zap.Error(err))
		return
	}

	timestamp := r.now().UnixMilli()
	rec := Record{
		FrameNumber:      seq,
		Timestamp:        timestamp,
		GameID:           frame.GameID,
		Frame:            frame.Frame,
		State:            string(frame.State),
		Score:            frame.Score,
		GUID:             frame.GUID,
		FullReset:        frame.FullReset,
		AvailableActions: kindNames(frame.AvailableActions),
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		r.logger.Warn("Failed to serialize frame record",
			zap.Int("frame_number", seq), zap.Error(err))
		return
	}

	path := filepath.Join(r.dir, fmt.Sprintf("frame_%04d_%d.json", seq, timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		r.logger.Warn("Failed to write frame record",
			zap.Int("frame_number", seq), zap.String("path", path), zap.Error(err))
		return
	}

	r.logger.Debug("Saved frame record",
		zap.Int("frame_number", seq), zap.String("path", path))
}

func kindNames(kinds []schemas.ActionKind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}
