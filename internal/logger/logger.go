// Package logger builds the zap loggers used by the command line tool.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for CLI flag counts.
const (
	VerbosityUser  = 0 // No flags: results and errors only
	VerbosityInfo  = 1 // -v: + progress and written files
	VerbosityDebug = 2 // -vv: + build details and skipped runs
)

// Logger is the global logger. It is a no-op until Initialize is called.
var Logger = zap.NewNop().Sugar()

// Initialize sets up the global logger. JSON output is meant for machine
// consumption, the console output for humans.
func Initialize(jsonOutput bool, verbosity int) error {
	l, err := New(jsonOutput, verbosity)
	if err != nil {
		return err
	}
	Logger = l.Sugar()
	return nil
}

// New returns a logger writing to stderr at the level of the verbosity.
func New(jsonOutput bool, verbosity int) (*zap.Logger, error) {
	level := VerbosityToLevel(verbosity)
	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stderr"}
		return config.Build()
	}
	return zap.New(zapcore.NewCore(
		newConsoleEncoder(),
		zapcore.Lock(os.Stderr),
		level,
	)), nil
}

// newConsoleEncoder returns a minimal encoder: level and message, then the
// structured fields. Timestamps and callers are left out.
func newConsoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.NameKey = ""
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// VerbosityToLevel maps verbosity flags (-v, -vv) to zap log levels.
//
//	0 (none) -> WarnLevel
//	1 (-v)   -> InfoLevel
//	2+ (-vv) -> DebugLevel
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Cleanup flushes any buffered log entries.
func Cleanup() {
	_ = Logger.Sync()
}
