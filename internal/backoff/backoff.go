package backoff

import (
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// Policy maps an attempt number to the duration to sleep after that attempt.
// Whether attempts are counted from 0 or 1 is up to the caller and is
// documented on each constructor.
type Policy func(attempt int) time.Duration

// Exponential returns a Policy that doubles initial on every attempt, starting
// from attempt 0, and never exceeds maxDelay. The schedule matches
// wait.Backoff stepped attempt+1 times with Factor 2 and Cap maxDelay.
// Negative attempts are treated as 0.
//
// Panics if initial or maxDelay is not positive.
func Exponential(initial, maxDelay time.Duration) Policy {
	if initial <= 0 || maxDelay <= 0 {
		panic("testwait: exponential backoff requires positive initial and max delays")
	}
	return func(attempt int) time.Duration {
		attempt = max(attempt, 0)
		b := wait.Backoff{
			Duration: initial,
			Factor:   2,
			Cap:      maxDelay,
			Steps:    attempt + 1,
		}
		var d time.Duration
		for range attempt + 1 {
			d = b.Step()
			if d >= maxDelay {
				return maxDelay
			}
		}
		return d
	}
}

// Linear returns a Policy that sleeps attempt*step. Attempts are counted from
// 1; attempts below 1 yield zero.
func Linear(step time.Duration) Policy {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			return 0
		}
		return time.Duration(attempt) * step
	}
}

// AssertSchedule is the schedule between failed assertion attempts:
// min(2^attempt, 1000) milliseconds for 0-based attempts.
func AssertSchedule() Policy {
	return Exponential(time.Millisecond, time.Second)
}

// BindSchedule is the schedule between failed lsof invocations:
// attempt*10 milliseconds for 1-based attempts.
func BindSchedule() Policy {
	return Linear(10 * time.Millisecond)
}
