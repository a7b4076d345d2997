package lottie

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/lottie/backend"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with rendering on any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for lottie and its sub-packages.
// By default, lottie produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent
// default.
//
// Log levels used by lottie:
//   - [slog.LevelDebug]: per-frame diagnostics (skipped frames, mattes
//     without a source, offscreen targets)
//   - [slog.LevelInfo]: lifecycle events (document decoded, segment changes)
//   - [slog.LevelWarn]: unsupported features skipped, once per layer
//
// Example:
//
//	lottie.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages (bodymovin,
// cmd/lottierender) call this to share the configuration without
// introducing import cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by backends that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the current logger to b if it implements the
// loggerSetter interface. Players call it whenever they see a new backend.
func propagateLogger(b backend.Backend) {
	if ls, ok := b.(loggerSetter); ok {
		ls.SetLogger(Logger())
	}
}
