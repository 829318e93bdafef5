package testwait

import (
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lmittmann/tint"
)

// logger holds a logger set with SetLogger. Nil means Logger falls back to
// the cached default.
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches slog.Default() with the component attribute. It is
// derived on first use, so a later slog.SetDefault is only picked up after
// SetLogger(nil).
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the logger testwait writes debug output to. It is safe for
// concurrent use.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := slog.Default().With("component", "testwait")
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// SetLogger replaces the package logger. Passing nil restores the default,
// slog.Default() with a "component" attribute, re-derived on the next call to
// Logger.
//
// SetLogger is safe to call concurrently, but calls made while tests run may
// briefly be observed with the previous logger. Call it from TestMain before
// m.Run for deterministic behavior.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}

// NewTestLogger returns a debug-level logger that writes through tb.Log, so
// output is attributed to the test and only shown for failing tests or with
// -v. It must not be used after the test has completed.
//
//	testwait.SetLogger(testwait.NewTestLogger(t))
func NewTestLogger(tb testing.TB) *slog.Logger {
	return slog.New(tint.NewHandler(tbWriter{tb: tb}, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}))
}

type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
