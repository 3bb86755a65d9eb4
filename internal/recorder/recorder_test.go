package recorder_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/gridpilot/api/schemas"
	"github.com/xkilldash9x/gridpilot/internal/recorder"
)

func sampleFrame() schemas.Frame {
	return schemas.Frame{
		GameID:    "rec-game-01",
		Frame:     [][][]int{{{1, 2}, {3, 4}}},
		State:     schemas.StateNotFinished,
		Score:     7,
		GUID:      "frame-guid-1",
		FullReset: false,
		AvailableActions: []schemas.ActionKind{
			schemas.ActionReset, schemas.ActionUp, schemas.ActionClick,
		},
	}
}

func listRecords(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRecordRoundTrip(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	rec := recorder.New(base, "rec-game-01", zap.NewNop())
	frame := sampleFrame()

	rec.Record(frame, 3)

	gameDir := filepath.Join(base, "rec-game-01")
	names := listRecords(t, gameDir)
	require.Len(t, names, 1, "exactly one record per frame")

	data, err := os.ReadFile(filepath.Join(gameDir, names[0]))
	require.NoError(t, err)

	var got recorder.Record
	require.NoError(t, json.Unmarshal(data, &got))

	want := recorder.Record{
		FrameNumber:      3,
		Timestamp:        got.Timestamp, // capture time, checked separately
		GameID:           "rec-game-01",
		Frame:            [][][]int{{{1, 2}, {3, 4}}},
		State:            "NOT_FINISHED",
		Score:            7,
		GUID:             "frame-guid-1",
		FullReset:        false,
		AvailableActions: []string{"RESET", "ACTION1", "ACTION6"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Positive(t, got.Timestamp)
}

func TestRecordSkipsEmptyFrames(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	rec := recorder.New(base, "rec-game-02", zap.NewNop())

	rec.Record(schemas.Frame{GameID: "rec-game-02", State: schemas.StateNotPlayed}, 0)

	assert.Empty(t, listRecords(t, filepath.Join(base, "rec-game-02")),
		"empty frames must not produce records")
}

func TestRecordSameTickNoCollision(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	frozen := time.UnixMilli(1756600000000)
	rec := recorder.New(base, "rec-game-03", zap.NewNop(),
		recorder.WithClock(func() time.Time { return frozen }))

	frame := sampleFrame()
	frame.GameID = "rec-game-03"
	rec.Record(frame, 0)
	rec.Record(frame, 1)

	names := listRecords(t, filepath.Join(base, "rec-game-03"))
	require.Len(t, names, 2,
		"two frames in the same millisecond must yield two distinct records")
	assert.NotEqual(t, names[0], names[1])
}

func TestRecordFilenameEncodesSequence(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	rec := recorder.New(base, "rec-game-04", zap.NewNop(),
		recorder.WithClock(func() time.Time { return time.UnixMilli(42) }))

	frame := sampleFrame()
	frame.GameID = "rec-game-04"
	rec.Record(frame, 12)

	names := listRecords(t, filepath.Join(base, "rec-game-04"))
	require.Len(t, names, 1)
	assert.Equal(t, "frame_0012_42.json", names[0],
		"sequence number must be zero-padded for sortable ordering")
}

func TestRecordFailureIsContained(t *testing.T) {
	t.Parallel()

	// Make the game directory path unusable by placing a regular file there.
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "rec-game-05"), []byte("in the way"), 0644))

	rec := recorder.New(base, "rec-game-05", zap.NewNop())

	// Must neither panic nor return an error; persistence is best-effort.
	rec.Record(sampleFrame(), 0)
}

func TestOnFrameDelegatesToRecord(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	rec := recorder.New(base, "rec-game-06", zap.NewNop())

	frame := sampleFrame()
	frame.GameID = "rec-game-06"
	rec.OnFrame(frame, 0)

	assert.Len(t, listRecords(t, filepath.Join(base, "rec-game-06")), 1)
}
