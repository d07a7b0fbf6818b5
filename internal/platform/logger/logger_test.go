package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantErr, err != nil)
		})
	}
}

func TestCaptureFiltersByLevel(t *testing.T) {
	t.Parallel()

	log, buf := NewCapture(slog.LevelInfo)
	log.Debug("hidden")
	log.Info("shown", slog.String("component", "test"))

	entries := buf.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "test", entries[0]["component"])
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	log, buf := NewCapture(slog.LevelDebug)
	ctx := WithLogger(context.Background(), log.With(slog.String("trace_id", "abc")))

	FromContext(ctx).Info("hello")
	entries := buf.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0]["trace_id"])

	fallback, _ := NewCapture(slog.LevelDebug)
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, FromContext(context.Background()))
}
