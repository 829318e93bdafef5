package lsof

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/giantswarm/testwait/internal/netutil"
	"github.com/giantswarm/testwait/internal/sentinel"
)

// ErrMalformedOutput matches every *MalformedOutputError.
const ErrMalformedOutput = sentinel.Error("unexpected lsof output")

// wildcardPrefix is the name-field prefix of a socket bound to every address.
const wildcardPrefix = "n*:"

// maxPort is the exclusive upper bound of a valid port.
const maxPort = 1 << 16

// Filter returns the -i argument selecting IPv4 sockets of p.
func Filter(p netutil.Protocol) string {
	switch p {
	case netutil.TCP:
		return "4TCP"
	case netutil.UDP:
		return "4UDP"
	default:
		panic(fmt.Sprintf("testwait: no lsof filter for %v", p))
	}
}

// Args returns the argv that makes lsof at path list the sockets of pid
// matching p in field format. The flags disable blocking kernel calls (-b),
// warnings (-w), and host and port name lookups (-n, -P).
func Args(path string, pid int, p netutil.Protocol) []string {
	return []string{
		path, "-wbnP", "-Ffn",
		"-p", strconv.Itoa(pid),
		"-a", "-i", Filter(p),
	}
}

// Record is one decoded lsof report.
type Record struct {
	PID  int
	FD   string
	Port int
}

// MalformedOutputError is returned by Decode when output does not follow the
// three-line grammar. Output holds the text that was decoded.
type MalformedOutputError struct {
	Output string
	Reason string
}

// Error implements the error interface.
func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("%s (%s): %q", ErrMalformedOutput, e.Reason, e.Output)
}

// Is reports ErrMalformedOutput as a match.
func (e *MalformedOutputError) Is(target error) bool {
	return target == ErrMalformedOutput
}

// Trim removes the trailing whitespace lsof terminates its report with.
func Trim(out string) string {
	return strings.TrimRightFunc(out, unicode.IsSpace)
}

// Decode parses a trimmed lsof report into a Record.
//
// The report must have exactly three lines: "p<pid>", "f<fd>" and
// "n*:<port>", where port is a base-10 integer greater than zero. Any other
// shape yields a *MalformedOutputError.
//
// A port of 65536 or more cannot come from a real socket. Decode panics on it
// rather than returning an error, since it means lsof itself is misbehaving.
func Decode(out string) (Record, error) {
	malformed := func(reason string) (Record, error) {
		return Record{}, &MalformedOutputError{Output: out, Reason: reason}
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		return malformed(fmt.Sprintf("want 3 lines, got %d", len(lines)))
	}

	pidField, ok := strings.CutPrefix(lines[0], "p")
	if !ok {
		return malformed("first line is not a process id")
	}
	pid, err := strconv.Atoi(pidField)
	if err != nil || pid <= 0 {
		return malformed("invalid process id")
	}

	fd, ok := strings.CutPrefix(lines[1], "f")
	if !ok || fd == "" {
		return malformed("second line is not a file descriptor")
	}

	portField, ok := strings.CutPrefix(lines[2], wildcardPrefix)
	if !ok {
		return malformed("third line does not bind the wildcard address")
	}
	port, err := strconv.ParseInt(portField, 10, 32)
	if err != nil || port <= 0 {
		return malformed("invalid port")
	}
	if port >= maxPort {
		panic(fmt.Sprintf("testwait: parsed invalid port: %d", port))
	}

	return Record{PID: pid, FD: fd, Port: int(port)}, nil
}
