package lottie

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/lottie/backend/recording"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		assert.False(t, h.Enabled(context.Background(), level), "level %v", level)
	}
	assert.NoError(t, h.Handle(context.Background(), slog.Record{}))
	assert.IsType(t, nopHandler{}, h.WithAttrs([]slog.Attr{slog.String("key", "val")}))
	assert.IsType(t, nopHandler{}, h.WithGroup("group"))
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		assert.False(t, l.Enabled(context.Background(), level), "level %v", level)
	}
}

// captureLogs installs a debug text logger for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestSetLogger(t *testing.T) {
	buf := captureLogs(t)
	Logger().Info("test message", "key", "value")
	assert.Contains(t, buf.String(), "test message")
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	l := Logger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

type loggingRecorder struct {
	*recording.Recorder
	logger *slog.Logger
}

func (r *loggingRecorder) SetLogger(l *slog.Logger) { r.logger = l }

func TestRenderFramePropagatesLogger(t *testing.T) {
	captureLogs(t)
	b := &loggingRecorder{Recorder: recording.NewRecorder(100, 100)}

	require.NoError(t, NewPlayer(testAnimation()).RenderFrame(b, 0))
	assert.Same(t, Logger(), b.logger)
}

func TestUnsupportedFeatureLoggedOncePerLayer(t *testing.T) {
	buf := captureLogs(t)
	a := testAnimation(
		&Layer{Name: "caption", Index: 1, Kind: LayerText, OutPoint: 60, Transform: DefaultTransform()},
		&Layer{Name: "title", Index: 2, Kind: LayerText, OutPoint: 60, Transform: DefaultTransform()},
	)
	p := NewPlayer(a)
	rec := recording.NewRecorder(100, 100)
	for frame := range 3 {
		require.NoError(t, p.RenderFrame(rec, float64(frame)))
	}

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "unsupported feature skipped"), out)
	assert.Contains(t, out, "layer=caption")
	assert.Contains(t, out, "layer=title")
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 100
	for range goroutines {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("concurrent read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "key", "value")
	}
}
