package gpu

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops device and pool records until SetLogger is called.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// slogger returns the logger for device selection and pool allocation.
func slogger() *slog.Logger { return loggerPtr.Load() }

// SetLogger sets the logger used by the gpu package. Call it before Open
// so device selection and buffer allocation are logged too.
func SetLogger(l *slog.Logger) { setLogger(l) }

// setLogger updates the package-level logger.
func setLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}
