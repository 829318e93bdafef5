package eventually

import "fmt"

// failNow is the panic value Collector.FailNow unwinds the check with.
type failNow struct{}

// Collector records assertion failures raised during one attempt. It
// implements require.TestingT, so testify assertions can be pointed at it:
//
//	eventually.Assertions(r, func(c *eventually.Collector) {
//		require.NoError(c, err)
//		assert.Equal(c, want, got)
//	})
//
// FailNow stops only the current attempt; the Poller decides whether to retry.
type Collector struct {
	reporter *Reporter
	failures Failures
}

// Errorf records a failure. When the owning Reporter is in fail-fast mode the
// failure is reported at once and the attempt stops.
func (c *Collector) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.failures = append(c.failures, msg)
	if c.reporter != nil && c.reporter.FailFast() {
		c.reporter.Report(Failures{msg})
		panic(failNow{})
	}
}

// FailNow stops the current attempt. An attempt stopped without a recorded
// message still counts as failed.
func (c *Collector) FailNow() {
	if c.failures.Empty() {
		c.failures = append(c.failures, "FailNow called")
	}
	panic(failNow{})
}

// Helper is a no-op; it lets testify treat Collector like a testing.TB.
func (c *Collector) Helper() {}

// Failed reports whether any failure was recorded.
func (c *Collector) Failed() bool {
	return !c.failures.Empty()
}

// Failures returns the recorded failures.
func (c *Collector) Failures() Failures {
	return c.failures
}

// collect runs fn against c. Panics other than the FailNow signal propagate.
func (c *Collector) collect(fn func(*Collector)) (failures Failures) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(failNow); !ok {
				panic(r)
			}
		}
		failures = c.failures
	}()
	fn(c)
	return c.failures
}

// Assertions adapts fn into a Check. Every invocation gets a fresh Collector
// bound to r, so fail-fast escalation follows r's current mode.
func Assertions(r *Reporter, fn func(c *Collector)) Check {
	return func() Failures {
		c := &Collector{reporter: r}
		return c.collect(fn)
	}
}
