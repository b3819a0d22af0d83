package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		env      string
		fallback string
		want     zapcore.Level
	}{
		{name: "explicit", level: "debug", fallback: "warn", want: zapcore.DebugLevel},
		{name: "from env", env: "error", fallback: "warn", want: zapcore.ErrorLevel},
		{name: "fallback", fallback: "warn", want: zapcore.WarnLevel},
		{name: "invalid", level: "chatty", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(LevelEnv, tt.env)

			logger, err := New(tt.level, tt.fallback)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !logger.Core().Enabled(tt.want) {
				t.Errorf("expected level %v to be enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && logger.Core().Enabled(tt.want-1) {
				t.Errorf("expected level %v to be disabled", tt.want-1)
			}
		})
	}
}
