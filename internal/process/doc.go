// Package process runs short-lived external commands synchronously and locates
// executables.
//
// Runner is the seam the polling helpers use to shell out; ExecRunner is the
// os/exec implementation. FindExecutable resolves a binary by probing a list
// of directories before falling back to `which`.
package process
