package testwait_test

import (
	"testing"

	"github.com/giantswarm/testwait"
)

func TestParseBool(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in        string
		wantValue bool
		wantOK    bool
	}{
		"empty":       {in: "", wantOK: true},
		"false":       {in: "false", wantOK: true},
		"zero":        {in: "0", wantOK: true},
		"no":          {in: "NO", wantOK: true},
		"true":        {in: "true", wantValue: true, wantOK: true},
		"one":         {in: "1", wantValue: true, wantOK: true},
		"yes":         {in: " Yes ", wantValue: true, wantOK: true},
		"unknown":     {in: "maybe"},
		"typo of one": {in: "l"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			value, ok := testwait.ParseBoolForTesting(tc.in)
			if value != tc.wantValue || ok != tc.wantOK {
				t.Errorf("parseBool(%q) = (%v, %v), want (%v, %v)", tc.in, value, ok, tc.wantValue, tc.wantOK)
			}
		})
	}
}

func TestAllowSlowTests(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv(testwait.EnvAllowSlowTests, "")
		if testwait.AllowSlowTests() {
			t.Error("AllowSlowTests() = true with empty value")
		}
	})

	t.Run("enabled", func(t *testing.T) {
		t.Setenv(testwait.EnvAllowSlowTests, "1")
		if !testwait.AllowSlowTests() {
			t.Error("AllowSlowTests() = false with value 1")
		}
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv(testwait.EnvAllowSlowTests, "sometimes")
		requirePanics(t, true,
			`testwait: unrecognized value for TESTWAIT_ALLOW_SLOW_TESTS: "sometimes"`,
			func() { testwait.AllowSlowTests() })
	})
}

func TestSkipUnlessSlowTestsAllowed(t *testing.T) {
	t.Setenv(testwait.EnvAllowSlowTests, "no")

	tb := &skipRecorder{}
	testwait.SkipUnlessSlowTestsAllowed(tb)
	if !tb.skipped {
		t.Error("test was not skipped")
	}

	t.Setenv(testwait.EnvAllowSlowTests, "yes")
	tb = &skipRecorder{}
	testwait.SkipUnlessSlowTestsAllowed(tb)
	if tb.skipped {
		t.Error("test was skipped")
	}
}

type skipRecorder struct {
	skipped bool
}

func (s *skipRecorder) Helper() {}

func (s *skipRecorder) Skipf(string, ...any) { s.skipped = true }
