package netutil

import (
	"fmt"
	"io"
	"net"
)

// BindEphemeral binds a kernel-assigned port on 0.0.0.0 for p and returns the
// open socket together with the port. The caller owns the socket and must
// close it.
func BindEphemeral(p Protocol) (io.Closer, int, error) {
	switch p {
	case TCP:
		l, err := net.Listen(p.Network(), "0.0.0.0:0")
		if err != nil {
			return nil, 0, fmt.Errorf("listen on %s: %w", p, err)
		}
		addr, ok := l.Addr().(*net.TCPAddr)
		if !ok {
			_ = l.Close()
			return nil, 0, fmt.Errorf("unexpected address type: %T", l.Addr())
		}
		return l, addr.Port, nil
	case UDP:
		c, err := net.ListenPacket(p.Network(), "0.0.0.0:0")
		if err != nil {
			return nil, 0, fmt.Errorf("listen on %s: %w", p, err)
		}
		addr, ok := c.LocalAddr().(*net.UDPAddr)
		if !ok {
			_ = c.Close()
			return nil, 0, fmt.Errorf("unexpected address type: %T", c.LocalAddr())
		}
		return c, addr.Port, nil
	default:
		return nil, 0, fmt.Errorf("bind: %w: %v", ErrUnknownProtocol, p)
	}
}
