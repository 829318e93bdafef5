package netutil

import (
	"fmt"
	"strings"

	"github.com/giantswarm/testwait/internal/sentinel"
)

// ErrUnknownProtocol is returned by ParseProtocol for names other than tcp and udp.
const ErrUnknownProtocol = sentinel.Error("unknown protocol")

// Protocol is the transport a process binds a port on.
type Protocol int

const (
	// TCP selects IPv4 TCP sockets.
	TCP Protocol = iota
	// UDP selects IPv4 UDP sockets.
	UDP
)

// IsValid reports whether p is TCP or UDP.
func (p Protocol) IsValid() bool {
	return p == TCP || p == UDP
}

// String returns "tcp" or "udp".
func (p Protocol) String() string {
	switch p {
	case TCP:
		return "tcp"
	case UDP:
		return "udp"
	default:
		return fmt.Sprintf("Protocol(%d)", int(p))
	}
}

// Network returns the IPv4 network name understood by the net package.
func (p Protocol) Network() string {
	return p.String() + "4"
}

// ParseProtocol parses "tcp" or "udp", ignoring case.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tcp":
		return TCP, nil
	case "udp":
		return UDP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownProtocol, s)
	}
}
