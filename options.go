package testwait

import (
	"fmt"
	"log/slog"

	"k8s.io/utils/clock"

	"github.com/giantswarm/testwait/internal/process"
)

// requireNonNil panics if v is nil with a descriptive message.
func requireNonNil[T any](name string, v *T) {
	if v == nil {
		panic(fmt.Sprintf("testwait: %s must not be nil", name))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("testwait: %s must not be empty", name))
	}
}

// requireClock panics if c is nil.
func requireClock(c clock.Clock) {
	if c == nil {
		panic("testwait: clock must not be nil")
	}
}

// AssertOption configures a single AssertEventually call.
//
// Options panic on invalid input: their arguments are almost always
// constants, so a bad value is a programming error.
type AssertOption func(*assertConfig)

// WithFailFast makes the final failure of a timed-out assertion end the test
// through t.Fatalf instead of t.Errorf. A check that reports a failure
// directly through the Collector also stops there. Fail-fast never applies
// while the assertion is still being retried.
//
// Default: the value of TESTWAIT_FAIL_FAST, false when unset.
func WithFailFast(enabled bool) AssertOption {
	return func(c *assertConfig) {
		c.failFast = enabled
	}
}

// WithAssertClock sets the clock used for the deadline and backoff sleeps.
// Tests of code built on AssertEventually can pass a fake clock.
// Panics if clk is nil.
func WithAssertClock(clk clock.Clock) AssertOption {
	requireClock(clk)
	return func(c *assertConfig) {
		c.clock = clk
	}
}

// WithAssertLogger sets the logger receiving retry details.
// Default: Logger(). Panics if l is nil.
func WithAssertLogger(l *slog.Logger) AssertOption {
	requireNonNil("logger", l)
	return func(c *assertConfig) {
		c.logger = l
	}
}

// Runner executes an external command and returns its standard output.
type Runner = process.Runner

// RunnerFunc adapts a function to Runner.
type RunnerFunc = process.RunnerFunc

// BindOption configures a single bind discovery.
type BindOption func(*bindConfig)

// WithRunner sets how lsof and which are executed. Default: os/exec.
// Panics if r is nil.
func WithRunner(r Runner) BindOption {
	if r == nil {
		panic("testwait: runner must not be nil")
	}
	return func(c *bindConfig) {
		c.runner = r
	}
}

// WithSearchPaths replaces the directories probed for lsof before PATH.
// Calling it without arguments searches PATH only.
// Default: DefaultSearchPaths().
func WithSearchPaths(dirs ...string) BindOption {
	paths := append([]string{}, dirs...)
	return func(c *bindConfig) {
		c.searchPaths = paths
	}
}

// WithLsofBinary sets the lsof binary name or path.
// Default: DefaultLsofBinary. Panics if binary is empty.
func WithLsofBinary(binary string) BindOption {
	requireNonEmpty("lsof binary", binary)
	return func(c *bindConfig) {
		c.lsofBinary = binary
	}
}

// WithBindClock sets the clock used for the deadline and backoff sleeps.
// Panics if clk is nil.
func WithBindClock(clk clock.Clock) BindOption {
	requireClock(clk)
	return func(c *bindConfig) {
		c.clock = clk
	}
}

// WithBindLogger sets the logger receiving discovery details.
// Default: Logger(). Panics if l is nil.
func WithBindLogger(l *slog.Logger) BindOption {
	requireNonNil("logger", l)
	return func(c *bindConfig) {
		c.logger = l
	}
}
