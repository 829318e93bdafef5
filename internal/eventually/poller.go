package eventually

import (
	"log/slog"
	"time"

	"k8s.io/utils/clock"

	"github.com/giantswarm/testwait/internal/backoff"
)

// Poller retries a check with backoff until it passes or a deadline elapses.
// The zero value uses the real clock, backoff.AssertSchedule and
// slog.Default().
type Poller struct {
	Clock   clock.Clock
	Backoff backoff.Policy
	Logger  *slog.Logger
}

func (p Poller) clock() clock.Clock {
	if p.Clock == nil {
		return clock.RealClock{}
	}
	return p.Clock
}

func (p Poller) backoff() backoff.Policy {
	if p.Backoff == nil {
		return backoff.AssertSchedule()
	}
	return p.Backoff
}

func (p Poller) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// Run invokes check until it returns no failures or timeout elapses. Failures
// of attempts made before the deadline are discarded.
//
// Once the deadline has passed, check runs one final time and whatever it
// raises is sent to r, making that the only failure the test sees. If the
// final attempt unexpectedly passes, r receives a single "timed out" failure
// instead. Run returns nil on success and a *TimeoutError otherwise.
//
// A non-positive timeout skips polling and goes straight to the final attempt.
func (p Poller) Run(r *Reporter, check Check, timeout time.Duration) error {
	clk := p.clock()
	log := p.logger()
	deadline := clk.Now().Add(timeout)

	attempts, passed := p.poll(r, check, deadline)
	if passed {
		log.Debug("assertion passed", "attempts", attempts)
		return nil
	}

	attempts++
	before := r.Reported()
	failures := check()
	if failures.Empty() {
		failures = Failures{ErrTimeout.Error()}
	}
	if r.Reported() == before {
		r.Report(failures)
	}
	log.Debug("assertion timed out", "timeout", timeout, "attempts", attempts)
	return &TimeoutError{Timeout: timeout, Attempts: attempts, Failures: failures}
}

// poll runs the captured attempts with fail-fast suspended. It returns the
// number of attempts made and whether the last one passed.
func (p Poller) poll(r *Reporter, check Check, deadline time.Time) (int, bool) {
	restore := r.SuspendFailFast()
	defer restore()

	clk := p.clock()
	policy := p.backoff()
	log := p.logger()

	attempt := 0
	for ; clk.Now().Before(deadline); attempt++ {
		failures := check()
		if failures.Empty() {
			return attempt + 1, true
		}
		d := policy(attempt)
		log.Debug("assertion failed, retrying", "attempt", attempt, "failures", len(failures), "backoff", d)
		clk.Sleep(d)
	}
	return attempt, false
}
