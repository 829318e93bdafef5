package eventually

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"
)

// fakeTB records what a Reporter sends to the test.
type fakeTB struct {
	errors      []string
	fatals      []string
	exitOnFatal bool
}

func (f *fakeTB) Helper() {}

func (f *fakeTB) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeTB) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
	if f.exitOnFatal {
		runtime.Goexit()
	}
}

// sleepRecorder is a fake clock that remembers every Sleep.
type sleepRecorder struct {
	*clocktesting.FakeClock
	sleeps []time.Duration
}

func newSleepRecorder() *sleepRecorder {
	return &sleepRecorder{FakeClock: clocktesting.NewFakeClock(time.Unix(1_700_000_000, 0))}
}

func (c *sleepRecorder) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.FakeClock.Sleep(d)
}

func millis(ms ...int) []time.Duration {
	out := make([]time.Duration, len(ms))
	for i, m := range ms {
		out[i] = time.Duration(m) * time.Millisecond
	}
	return out
}

// failingFor returns a Check failing on its first n calls, and a call counter.
func failingFor(n int) (Check, *int) {
	calls := 0
	return func() Failures {
		calls++
		if calls <= n {
			return Failures{fmt.Sprintf("attempt %d failed", calls)}
		}
		return nil
	}, &calls
}

func TestPoller_Run(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		failFirst   int
		timeout     time.Duration
		wantCalls   int
		wantSleeps  []time.Duration
		wantErrors  []string
		wantTimeout bool
	}{
		"passes on first attempt": {
			failFirst: 0,
			timeout:   time.Second,
			wantCalls: 1,
		},
		"passes after retries": {
			failFirst:  3,
			timeout:    time.Second,
			wantCalls:  4,
			wantSleeps: millis(1, 2, 4),
		},
		"never passes": {
			failFirst:   1000,
			timeout:     100 * time.Millisecond,
			wantCalls:   8,
			wantSleeps:  millis(1, 2, 4, 8, 16, 32, 64),
			wantErrors:  []string{"attempt 8 failed"},
			wantTimeout: true,
		},
		"final attempt passes": {
			failFirst:   7,
			timeout:     100 * time.Millisecond,
			wantCalls:   8,
			wantSleeps:  millis(1, 2, 4, 8, 16, 32, 64),
			wantErrors:  []string{"timed out waiting for assertion to pass"},
			wantTimeout: true,
		},
		"zero timeout goes to final attempt": {
			failFirst:   1000,
			timeout:     0,
			wantCalls:   1,
			wantErrors:  []string{"attempt 1 failed"},
			wantTimeout: true,
		},
		"negative timeout goes to final attempt": {
			failFirst:   1000,
			timeout:     -time.Second,
			wantCalls:   1,
			wantErrors:  []string{"attempt 1 failed"},
			wantTimeout: true,
		},
		"never failing check ignores zero timeout": {
			failFirst: 0,
			timeout:   0,
			wantCalls: 1,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			clk := newSleepRecorder()
			tb := &fakeTB{}
			check, calls := failingFor(tc.failFirst)

			err := Poller{Clock: clk}.Run(NewReporter(tb, false), check, tc.timeout)

			assert.Equal(t, tc.wantCalls, *calls, "check invocations")
			assert.Equal(t, tc.wantSleeps, clk.sleeps, "backoff sleeps")
			assert.Equal(t, tc.wantErrors, tb.errors, "reported failures")
			assert.Empty(t, tb.fatals)

			if !tc.wantTimeout {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrTimeout)
			var timeoutErr *TimeoutError
			require.ErrorAs(t, err, &timeoutErr)
			assert.Equal(t, tc.wantCalls, timeoutErr.Attempts)
			assert.Equal(t, Failures(tc.wantErrors), timeoutErr.Failures)
		})
	}
}

// The 0-based attempt i sleeps min(2^i, 1000) milliseconds.
func TestPoller_BackoffIsCapped(t *testing.T) {
	t.Parallel()

	clk := newSleepRecorder()
	check, _ := failingFor(1000)

	_ = Poller{Clock: clk}.Run(NewReporter(&fakeTB{}, false), check, 5*time.Second)

	want := millis(1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1000, 1000, 1000, 1000)
	if !slices.Equal(clk.sleeps, want) {
		t.Fatalf("sleeps = %v, want %v", clk.sleeps, want)
	}
}

func TestPoller_PassesOnceConditionHolds(t *testing.T) {
	t.Parallel()

	clk := newSleepRecorder()
	start := clk.Now()
	calls := 0
	check := func() Failures {
		calls++
		if clk.Since(start) < 50*time.Millisecond {
			return Failures{"not yet"}
		}
		return nil
	}

	tb := &fakeTB{}
	require.NoError(t, Poller{Clock: clk}.Run(NewReporter(tb, false), check, 10*time.Second))
	assert.LessOrEqual(t, calls, 8)
	assert.Empty(t, tb.errors)
}

func TestPoller_CustomBackoff(t *testing.T) {
	t.Parallel()

	clk := newSleepRecorder()
	check, _ := failingFor(2)
	p := Poller{
		Clock:   clk,
		Backoff: func(int) time.Duration { return 7 * time.Millisecond },
	}

	require.NoError(t, p.Run(NewReporter(&fakeTB{}, false), check, time.Second))
	assert.Equal(t, millis(7, 7), clk.sleeps)
}

func TestPoller_FailFastSuspendedWhilePolling(t *testing.T) {
	t.Parallel()

	clk := newSleepRecorder()
	tb := &fakeTB{}
	r := NewReporter(tb, true)

	var modes []bool
	calls := 0
	check := func() Failures {
		calls++
		modes = append(modes, r.FailFast())
		if calls < 3 {
			return Failures{"not yet"}
		}
		return nil
	}

	require.NoError(t, Poller{Clock: clk}.Run(r, check, time.Second))
	assert.Equal(t, []bool{false, false, false}, modes)
	assert.True(t, r.FailFast(), "fail-fast must be restored after success")
	assert.Empty(t, tb.fatals)
}

func TestPoller_FailFastFinalAttemptIsFatal(t *testing.T) {
	t.Parallel()

	clk := newSleepRecorder()
	tb := &fakeTB{}
	r := NewReporter(tb, true)
	check, _ := failingFor(1000)

	err := Poller{Clock: clk}.Run(r, check, 10*time.Millisecond)

	require.ErrorIs(t, err, ErrTimeout)
	assert.True(t, r.FailFast(), "fail-fast must be restored after timeout")
	assert.Empty(t, tb.errors)
	require.Len(t, tb.fatals, 1)
	assert.True(t, strings.HasPrefix(tb.fatals[0], "attempt "), tb.fatals[0])
}

func TestPoller_FailFastRestoredOnPanic(t *testing.T) {
	t.Parallel()

	r := NewReporter(&fakeTB{}, true)
	check := func() Failures { panic("boom") }

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected the check's panic to propagate")
			}
		}()
		_ = Poller{Clock: newSleepRecorder()}.Run(r, check, time.Second)
	}()

	if !r.FailFast() {
		t.Fatal("fail-fast was not restored after panic")
	}
}

func TestPoller_FailFastRestoredOnGoexit(t *testing.T) {
	t.Parallel()

	r := NewReporter(&fakeTB{}, true)
	done := make(chan struct{})
	go func() {
		defer close(done)
		// Mimics t.FailNow on the outer test from inside the check.
		_ = Poller{Clock: newSleepRecorder()}.Run(r, func() Failures {
			runtime.Goexit()
			return nil
		}, time.Second)
	}()
	<-done

	if !r.FailFast() {
		t.Fatal("fail-fast was not restored after Goexit")
	}
}

func TestPoller_AssertionsExactlyOneVisibleFailure(t *testing.T) {
	t.Parallel()

	clk := newSleepRecorder()
	tb := &fakeTB{}
	r := NewReporter(tb, false)

	value := 0
	check := Assertions(r, func(c *Collector) {
		value++
		assert.Equal(c, -1, value, "value")
		assert.True(c, false, "second failure")
	})

	err := Poller{Clock: clk}.Run(r, check, 20*time.Millisecond)
	require.ErrorIs(t, err, ErrTimeout)
	require.Len(t, tb.errors, 1, "only the final attempt may be visible")
	assert.Contains(t, tb.errors[0], "value")
	assert.Contains(t, tb.errors[0], "second failure")
}

func TestPoller_AssertionsFailFastEscalatesOnce(t *testing.T) {
	t.Parallel()

	tb := &fakeTB{}
	r := NewReporter(tb, true)
	check := Assertions(r, func(c *Collector) {
		assert.Fail(c, "first")
		assert.Fail(c, "second")
	})

	err := Poller{Clock: newSleepRecorder()}.Run(r, check, 5*time.Millisecond)
	require.ErrorIs(t, err, ErrTimeout)
	require.Len(t, tb.fatals, 1)
	assert.Contains(t, tb.fatals[0], "first")
	assert.NotContains(t, tb.fatals[0], "second")
	assert.Empty(t, tb.errors)
}

func TestPoller_FromError(t *testing.T) {
	t.Parallel()

	calls := 0
	check := FromError(func() error {
		calls++
		if calls < 2 {
			return errors.New("connection refused")
		}
		return nil
	})

	tb := &fakeTB{}
	require.NoError(t, Poller{Clock: newSleepRecorder()}.Run(NewReporter(tb, false), check, time.Second))
	assert.Equal(t, 2, calls)
	assert.Empty(t, tb.errors)
}
