package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qasetech/ledger-api/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"WARN", slog.LevelWarn, false},
		{"verbose", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetup(t *testing.T) {
	logger, err := Setup(config.ServerConfig{LogLevel: "debug"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	// An invalid level falls back to info instead of failing startup.
	logger, err = Setup(config.ServerConfig{LogLevel: "nonsense"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestContextLogger(t *testing.T) {
	base := slog.Default().With("component", "test")

	ctx := WithLogger(context.Background(), base)
	assert.Equal(t, base, FromContext(ctx))

	// A bare context yields the process default.
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	fallback := slog.Default().With("component", "fallback")
	assert.Equal(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Equal(t, base, FromContextOrDefault(ctx, fallback))

	assert.Panics(t, func() {
		WithLogger(context.Background(), nil)
	})
}
