// Package logging builds the zap loggers used by the executables.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv names the environment variable holding the default log level.
const LevelEnv = "LOG_LEVEL"

// New builds a development console logger writing to stderr.
//
// level is a zap level name ("debug", "info", ...). When empty, LOG_LEVEL is
// used, then fallback. An unparsable level falls back to info.
func New(level, fallback string) (*zap.Logger, error) {
	if level == "" {
		level = strings.ToLower(os.Getenv(LevelEnv))
	}
	if level == "" {
		level = fallback
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
