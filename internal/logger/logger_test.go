package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/workwayco/workway-validate/internal/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel(" INFO "))
	assert.Equal(t, zapcore.WarnLevel, logger.ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, logger.ParseLevel("error"))
	assert.Equal(t, zapcore.WarnLevel, logger.ParseLevel("verbose"))
}

func TestResolveLevel(t *testing.T) {
	t.Setenv(logger.EnvLevel, "debug")
	assert.Equal(t, "error", logger.ResolveLevel("error"))
	assert.Equal(t, "debug", logger.ResolveLevel(""))

	t.Setenv(logger.EnvLevel, "")
	assert.Equal(t, "warn", logger.ResolveLevel(""))
}

func TestNewWithWriter_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("warn", logger.FormatJSON, &buf)

	log.Infow("hidden", "file", "a.ts")
	log.Warnw("shown", "file", "b.ts")
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "b.ts", entry["file"])
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("debug", logger.FormatConsole, &buf)
	log.Debugw("validated", "file", "x.ts")
	assert.Contains(t, buf.String(), "validated")
	assert.Contains(t, buf.String(), "x.ts")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Errorw("ignored") })
}
