package eventually

import (
	"fmt"
	"strings"
	"time"

	"github.com/giantswarm/testwait/internal/sentinel"
)

// ErrTimeout matches every *TimeoutError.
const ErrTimeout = sentinel.Error("timed out waiting for assertion to pass")

// Failures is the ordered list of failure messages raised by one invocation
// of a check. An empty list means the check passed.
type Failures []string

// Empty reports whether the check passed.
func (f Failures) Empty() bool {
	return len(f) == 0
}

// String joins the messages with newlines.
func (f Failures) String() string {
	return strings.Join(f, "\n")
}

// Check evaluates a condition once and returns the failures it observed.
type Check func() Failures

// FromError adapts fn into a Check that fails with fn's error message.
func FromError(fn func() error) Check {
	return func() Failures {
		if err := fn(); err != nil {
			return Failures{err.Error()}
		}
		return nil
	}
}

// TimeoutError is returned by Poller.Run when the check did not pass before
// the deadline. Failures holds what the final attempt raised, or the
// synthetic timeout message when the final attempt passed.
type TimeoutError struct {
	Timeout  time.Duration
	Attempts int
	Failures Failures
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s after %s (%d attempts)", ErrTimeout, e.Timeout, e.Attempts)
}

// Is reports ErrTimeout as a match.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}
