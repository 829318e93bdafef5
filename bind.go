package testwait

import (
	"context"
	"fmt"
	"time"

	"github.com/giantswarm/testwait/internal/netutil"
	"github.com/giantswarm/testwait/internal/process"
)

// Protocol selects the sockets bind discovery looks at.
type Protocol = netutil.Protocol

const (
	// TCP selects IPv4 TCP sockets.
	TCP = netutil.TCP
	// UDP selects IPv4 UDP sockets.
	UDP = netutil.UDP
)

// ParseProtocol parses "tcp" or "udp".
func ParseProtocol(s string) (Protocol, error) {
	return netutil.ParseProtocol(s)
}

// WaitForTCPBind waits until process pid has bound an IPv4 TCP port on the
// wildcard address and returns it. See WaitForBind.
func WaitForTCPBind(ctx context.Context, pid int, timeout time.Duration, opts ...BindOption) (int, error) {
	return WaitForBind(ctx, pid, TCP, timeout, opts...)
}

// WaitForUDPBind waits until process pid has bound an IPv4 UDP port on the
// wildcard address and returns it. See WaitForBind.
func WaitForUDPBind(ctx context.Context, pid int, timeout time.Duration, opts ...BindOption) (int, error) {
	return WaitForBind(ctx, pid, UDP, timeout, opts...)
}

// WaitForBind polls lsof until process pid has bound a port for protocol p,
// and returns the port.
//
// lsof is run repeatedly, sleeping 10ms longer after each failure, until it
// lists a socket. Errors:
//   - ErrToolNotFound if lsof cannot be located; nothing is retried.
//   - ErrCommandFailed (a *CommandError) if lsof still fails once timeout has
//     elapsed. This is the error of the last run.
//   - ErrMalformedOutput (a *MalformedOutputError) if lsof lists anything
//     other than exactly one socket on the wildcard address, e.g. because the
//     process bound several ports.
//
// ctx is checked between runs; a run or sleep in progress is not interrupted.
//
// WaitForBind panics if lsof reports a port above 65535.
func WaitForBind(ctx context.Context, pid int, p Protocol, timeout time.Duration, opts ...BindOption) (int, error) {
	cfg := newBindConfig(opts)
	if err := cfg.Validate(); err != nil {
		return 0, fmt.Errorf("wait for bind: invalid configuration: %w", err)
	}
	return cfg.discoverer().WaitForBind(ctx, pid, p, timeout)
}

// FindExecutable returns the path of binary. The directories in search are
// probed first, in order; otherwise `which` is consulted. Returns
// ErrToolNotFound when binary is in neither place.
func FindExecutable(ctx context.Context, binary string, search ...string) (string, error) {
	return process.FindExecutable(ctx, process.ExecRunner{Logger: Logger()}, binary, search)
}
