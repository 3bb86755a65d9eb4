package observability_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/gridpilot/internal/config"
	"github.com/xkilldash9x/gridpilot/internal/observability"
)

// syncBuffer adapts bytes.Buffer to zapcore.WriteSyncer for capturing output.
type syncBuffer struct {
	bytes.Buffer
}

func (s *syncBuffer) Sync() error { return nil }

func TestInitializeWritesStructuredJSON(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	var buf syncBuffer
	observability.Initialize(config.LoggerConfig{
		Level:       "debug",
		Format:      "json",
		ServiceName: "gridpilot-test",
	}, zapcore.Lock(&buf))

	logger := observability.GetLogger()
	require.NotNil(t, logger)
	logger.Info("frame recorded")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, `"msg":"frame recorded"`)
	assert.Contains(t, out, `"INFO"`)
	assert.Contains(t, out, "gridpilot-test")
}

func TestInitializeRespectsLevel(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	var buf syncBuffer
	observability.Initialize(config.LoggerConfig{
		Level:       "warn",
		Format:      "json",
		ServiceName: "gridpilot-test",
	}, zapcore.Lock(&buf))

	logger := observability.GetLogger()
	logger.Debug("too quiet to appear")
	logger.Warn("loud enough")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "too quiet to appear")
	assert.Contains(t, out, "loud enough")
}

func TestInitializeRunsOnce(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	var first, second syncBuffer
	observability.Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "one"}, zapcore.Lock(&first))
	observability.Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "two"}, zapcore.Lock(&second))

	observability.GetLogger().Info("routed to the first core")
	assert.Contains(t, first.String(), "routed to the first core")
	assert.Empty(t, second.String())
}

func TestGetLoggerFallback(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	// Without initialization a usable fallback logger is still returned.
	assert.NotNil(t, observability.GetLogger())
}
