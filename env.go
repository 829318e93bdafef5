package testwait

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables read by testwait.
const (
	// EnvAllowSlowTests enables tests guarded by AllowSlowTests.
	EnvAllowSlowTests = "TESTWAIT_ALLOW_SLOW_TESTS"

	// EnvFailFast sets the default of WithFailFast.
	EnvFailFast = "TESTWAIT_FAIL_FAST"

	// EnvLeaveFiles selects what DataDir does with its directory when the
	// test ends: "always", "on_failure" or "never".
	EnvLeaveFiles = "TESTWAIT_LEAVE_FILES"

	// EnvDataDir overrides the base directory DataDir creates directories in.
	EnvDataDir = "TESTWAIT_DATA_DIR"
)

// AllowSlowTests reports whether slow tests should run, as set by
// TESTWAIT_ALLOW_SLOW_TESTS. Unset, empty, "false", "0" and "no" disable
// them; "true", "1" and "yes" enable them (case-insensitively).
//
// Panics on any other value, since a typo would otherwise silently skip tests.
func AllowSlowTests() bool {
	return mustEnvBool(EnvAllowSlowTests, false)
}

// parseBool parses the boolean spellings accepted in testwait environment
// variables. The second result is false for unrecognized values.
func parseBool(v string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "0", "no":
		return false, true
	case "true", "1", "yes":
		return true, true
	default:
		return false, false
	}
}

// mustEnvBool reads a boolean environment variable, returning def when unset.
func mustEnvBool(name string, def bool) bool {
	v, set := os.LookupEnv(name)
	if !set {
		return def
	}
	b, ok := parseBool(v)
	if !ok {
		panic(fmt.Sprintf("testwait: unrecognized value for %s: %q", name, v))
	}
	return b
}

// SkipUnlessSlowTestsAllowed skips tb unless AllowSlowTests reports true.
func SkipUnlessSlowTestsAllowed(tb interface {
	Helper()
	Skipf(format string, args ...any)
}) {
	tb.Helper()
	if !AllowSlowTests() {
		tb.Skipf("skipping slow test; set %s=1 to run it", EnvAllowSlowTests)
	}
}
