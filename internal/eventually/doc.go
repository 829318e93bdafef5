// Package eventually retries a check until it passes or a deadline elapses.
//
// A check reports failures by returning them rather than by failing the test
// directly: intermediate attempts are expected to fail, and only the outcome
// of the last attempt may reach the test. Collector adapts testify-style
// assertion code (anything accepting require.TestingT) to this model.
//
// Poller.Run drives the loop. While it polls, the Reporter's fail-fast mode is
// suspended so a captured failure cannot end the test early; the previous mode
// is restored on every exit path before the final, reported attempt.
package eventually
