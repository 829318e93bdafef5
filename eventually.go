package testwait

import (
	"testing"
	"time"

	"github.com/giantswarm/testwait/internal/eventually"
)

// Collector records the failures of one attempt of an AssertEventually
// check. It implements require.TestingT; pass it to testify assertions in
// place of t. Calling FailNow, directly or through require, ends the current
// attempt only.
type Collector = eventually.Collector

// AssertEventually runs check until an attempt records no failures, and
// reports whether it passed.
//
// Attempts are spaced by min(2^n, 1000) milliseconds for the n-th retry
// (0-based). When timeout elapses, check runs a final time and its failures
// are reported to t as a single error; earlier failures are dropped. Should
// that final attempt pass, t receives a "timed out waiting for assertion to
// pass" error instead. A non-positive timeout runs only the final attempt.
//
// check runs on the calling goroutine. It must not call t.FailNow or
// t.Fatal, and failures it reports on other goroutines are not captured.
func AssertEventually(t testing.TB, check func(c *Collector), timeout time.Duration, opts ...AssertOption) bool {
	t.Helper()
	cfg := newAssertConfig(opts)
	r := eventually.NewReporter(t, cfg.failFast)
	return cfg.poller().Run(r, eventually.Assertions(r, check), timeout) == nil
}

// EventuallyNoError is AssertEventually for a condition expressed as a
// function returning an error: the condition holds once fn returns nil, and
// the error of the final attempt is what t sees on timeout.
func EventuallyNoError(t testing.TB, fn func() error, timeout time.Duration, opts ...AssertOption) bool {
	t.Helper()
	cfg := newAssertConfig(opts)
	r := eventually.NewReporter(t, cfg.failFast)
	return cfg.poller().Run(r, eventually.FromError(fn), timeout) == nil
}
