package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceHandler_Threshold(t *testing.T) {
	tests := []struct {
		name       string
		from       slog.Level
		level      slog.Level
		wantSource bool
	}{
		{"info below warn threshold", slog.LevelWarn, slog.LevelInfo, false},
		{"warn at threshold", slog.LevelWarn, slog.LevelWarn, true},
		{"error above threshold", slog.LevelWarn, slog.LevelError, true},
		{"debug mode shows info source", slog.LevelDebug, slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			log := slog.New(NewSourceHandler(base, tt.from))

			log.Log(context.Background(), tt.level, "reservation checked in")

			assert.Equal(t, tt.wantSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
		})
	}
}

func TestSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	log := slog.New(NewSourceHandler(base, slog.LevelError)).
		With("reservation_id", "r-1").
		WithGroup("request")

	log.Info("checkin attempt", "path", "/api/reservations/checkin")

	out := buf.String()
	assert.NotContains(t, out, "source=")
	assert.Contains(t, out, "reservation_id=r-1")
	assert.Contains(t, out, "request.path=/api/reservations/checkin")
}

func TestSourceHandler_DelegatesEnabled(t *testing.T) {
	base := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	h := NewSourceHandler(base, slog.LevelError)

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestInterface_SourcePointsAtCaller(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	log := NewLoggerWithSlog(slog.New(NewSourceHandler(base, slog.LevelWarn))).Named("checkin")

	log.Warnw("secret code mismatch", "reservation_id", "r-1")

	out := buf.String()
	assert.Contains(t, out, "sourcehandler_test.go")
	assert.Contains(t, out, "component=checkin")
	assert.Contains(t, out, "reservation_id=r-1")
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().With("k", "v").Errorw("discarded")
	})
}
