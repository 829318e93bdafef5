// Package testwait helps integration tests observe state that changes
// asynchronously and outside the test's control.
//
// # Retrying assertions
//
// AssertEventually runs a check until it passes or a timeout elapses. The
// check receives a *Collector, which testify's assert and require packages
// accept in place of *testing.T:
//
//	testwait.AssertEventually(t, func(c *testwait.Collector) {
//	    resp, err := http.Get(url)
//	    require.NoError(c, err)
//	    assert.Equal(c, http.StatusOK, resp.StatusCode)
//	}, 10*time.Second)
//
// Failures from attempts made before the deadline are discarded. Attempts are
// spaced by min(2^n, 1000) milliseconds. After the deadline the check runs once
// more, and only the failures of that last attempt are reported to t.
//
// # Discovering bound ports
//
// A child process started with port 0 does not tell its parent which port the
// kernel assigned. WaitForTCPBind and WaitForUDPBind poll lsof until the child
// has bound a socket on the wildcard address and return its port:
//
//	cmd := exec.Command(serverBinary, "--port=0")
//	if err := cmd.Start(); err != nil {
//	    t.Fatal(err)
//	}
//	port, err := testwait.WaitForTCPBind(ctx, cmd.Process.Pid, 30*time.Second)
//
// lsof must be installed. It is looked up in /sbin and /usr/sbin first, then
// on PATH; ErrToolNotFound is returned when it is missing.
//
// # Test environment helpers
//
// DataDir gives each test a scratch directory that outlives the test when it
// fails (see TESTWAIT_LEAVE_FILES). AllowSlowTests and
// SkipUnlessSlowTestsAllowed gate expensive tests behind
// TESTWAIT_ALLOW_SLOW_TESTS. CountOpenFDs helps spot descriptor leaks.
package testwait
