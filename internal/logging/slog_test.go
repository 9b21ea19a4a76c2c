package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(t *testing.T, level slog.Level) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		write func(l *SlogLogger)
		want  []string
	}{
		{"debug", func(l *SlogLogger) { l.Debug(ctx, "walk", "parent", 7) }, []string{"level=DEBUG", "msg=walk", "parent=7"}},
		{"info", func(l *SlogLogger) { l.Info(ctx, "entry created", "id", 3) }, []string{"level=INFO", "msg=\"entry created\"", "id=3"}},
		{"warn", func(l *SlogLogger) { l.Warn(ctx, "cache slow") }, []string{"level=WARN", "msg=\"cache slow\""}},
		{"error", func(l *SlogLogger) { l.Error(ctx, "blob write", "error", "disk full") }, []string{"level=ERROR", "msg=\"blob write\"", "error=\"disk full\""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newTestLogger(t, slog.LevelDebug)
			tt.write(l)
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestSlogLogger_WithKeepsParentUntouched(t *testing.T) {
	l, buf := newTestLogger(t, slog.LevelDebug)
	ctx := context.Background()

	l.With("request_id", "abc", "user", 42).Info(ctx, "served")
	l.Info(ctx, "plain")

	out := buf.String()
	assert.Contains(t, out, "msg=served request_id=abc user=42")
	assert.Contains(t, out, "msg=plain\n")
}

func TestSlogLogger_Enabled(t *testing.T) {
	l, buf := newTestLogger(t, slog.LevelWarn)
	ctx := context.Background()

	assert.False(t, l.Enabled(ctx, slog.LevelInfo))
	assert.True(t, l.Enabled(ctx, slog.LevelError))

	l.Info(ctx, "dropped")
	assert.Empty(t, buf.String())
}

func TestContextRoundTrip(t *testing.T) {
	l, buf := newTestLogger(t, slog.LevelInfo)

	ctx := IntoContext(context.Background(), l.With("request_id", "r1"))
	FromContext(ctx).Info(ctx, "inside handler")

	assert.Contains(t, buf.String(), "request_id=r1")
}

func TestFromContext_DefaultsToDiscard(t *testing.T) {
	got := FromContext(context.Background())
	assert.Equal(t, Discard, got)

	// must be safe to call on the zero path
	got.With("k", "v").Error(context.Background(), "nothing")
}
