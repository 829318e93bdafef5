// Package netutil defines the transport protocols a bound port can be
// discovered for, and a helper that binds a kernel-assigned port on the IPv4
// wildcard address the way a freshly spawned test server does.
package netutil
