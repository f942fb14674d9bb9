// Package logger builds the zap loggers used by the CLI and the services.
package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel overrides the default level when --log-level is not set.
const EnvLevel = "WORKWAY_LOG_LEVEL"

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ParseLevel maps a level name to a zap level. Unknown names fall back to warn.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// ResolveLevel picks the flag value, then the environment, then "warn".
func ResolveLevel(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(EnvLevel); env != "" {
		return env
	}
	return "warn"
}

// New writes to stderr so stdout stays clean for --json output.
func New(level, format string) *zap.SugaredLogger {
	return NewWithWriter(level, format, os.Stderr)
}

func NewWithWriter(level, format string, w io.Writer) *zap.SugaredLogger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
	}

	var encoder zapcore.Encoder
	if strings.ToLower(format) == FormatJSON {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.ConsoleSeparator = " | "
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(ParseLevel(level)))
	return zap.New(core).Sugar()
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
