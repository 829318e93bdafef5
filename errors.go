package testwait

import (
	"github.com/giantswarm/testwait/internal/eventually"
	"github.com/giantswarm/testwait/internal/lsof"
	"github.com/giantswarm/testwait/internal/netutil"
	"github.com/giantswarm/testwait/internal/process"
)

// Sentinel errors for inspection with errors.Is.
const (
	// ErrTimeout matches the *TimeoutError describing an assertion that did
	// not pass before its deadline.
	ErrTimeout = eventually.ErrTimeout

	// ErrToolNotFound is returned when lsof, or a binary passed to
	// FindExecutable, is neither in the search directories nor on PATH.
	ErrToolNotFound = process.ErrNotFound

	// ErrCommandFailed matches the *CommandError returned when lsof kept
	// failing until the deadline.
	ErrCommandFailed = process.ErrCommandFailed

	// ErrMalformedOutput matches the *MalformedOutputError returned when lsof
	// output does not describe exactly one socket bound to the wildcard
	// address.
	ErrMalformedOutput = lsof.ErrMalformedOutput

	// ErrUnknownProtocol is returned for a Protocol other than TCP or UDP.
	ErrUnknownProtocol = netutil.ErrUnknownProtocol
)

// CommandError describes an external command that failed. Use errors.As to
// read its exit code and standard error.
type CommandError = process.CommandError

// MalformedOutputError carries the raw lsof output that could not be decoded.
type MalformedOutputError = lsof.MalformedOutputError

// TimeoutError describes a retried assertion that timed out.
type TimeoutError = eventually.TimeoutError
