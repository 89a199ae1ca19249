package vram

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so no attributes
// are formatted.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the logger shared by the session and the window.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// LevelNotice is for user feedback that is shown even without -v, such as
// saved frames. It sits between Info and Warn.
const LevelNotice = slog.LevelInfo + 2

// SetLogger configures the logger for vram and every pool created after
// the call. By default, vram produces no log output.
//
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by vram:
//   - [slog.LevelDebug]: GPU details (adapter, row pitch, staging sizes)
//   - [slog.LevelInfo]: lifecycle and verbose progress (buffer allocation,
//     displayed buffer, saved frame paths)
//   - [LevelNotice]: a frame is being saved
//   - [slog.LevelWarn]: non-fatal runtime failures (readback, file write)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by vram.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by pools that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a pool if it implements
// the loggerSetter interface.
func propagateLogger(p Pool, l *slog.Logger) {
	if ls, ok := p.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
