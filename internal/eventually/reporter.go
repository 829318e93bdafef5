package eventually

// TB is the part of testing.TB a Reporter writes to.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// Reporter forwards failures to a test. In fail-fast mode a reported failure
// ends the test immediately through Fatalf; otherwise Errorf records it and
// the test continues.
//
// A Reporter is not safe for concurrent use. Two Poller.Run calls sharing one
// Reporter from different goroutines race on the fail-fast mode.
type Reporter struct {
	tb       TB
	failFast bool
	reported int
}

// NewReporter returns a Reporter writing to tb. Panics if tb is nil.
func NewReporter(tb TB, failFast bool) *Reporter {
	if tb == nil {
		panic("testwait: reporter requires a non-nil TB")
	}
	return &Reporter{tb: tb, failFast: failFast}
}

// FailFast reports whether the next reported failure ends the test.
func (r *Reporter) FailFast() bool {
	return r.failFast
}

// SuspendFailFast turns fail-fast mode off and returns a function restoring
// the previous mode. Call the restore function from a defer so it also runs
// when the test goroutine exits through FailNow or a panic.
func (r *Reporter) SuspendFailFast() (restore func()) {
	prev := r.failFast
	r.failFast = false
	return func() {
		r.failFast = prev
	}
}

// Report sends f to the test as a single failure. Empty lists are ignored.
func (r *Reporter) Report(f Failures) {
	if f.Empty() {
		return
	}
	r.tb.Helper()
	r.reported++
	if r.failFast {
		r.tb.Fatalf("%s", f)
		return
	}
	r.tb.Errorf("%s", f)
}

// Reported returns how many times Report forwarded failures to the test.
func (r *Reporter) Reported() int {
	return r.reported
}
