package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards all records. Enabled returns
// false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the engine's logger. By default the engine logs
// nothing; pass nil to restore that.
//
// Log levels used:
//   - [slog.LevelDebug]: mode transitions, dropped events, timers
//   - [slog.LevelInfo]: page changes and dismiss
//   - [slog.LevelWarn]: pages the host failed to decode
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the engine's logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
