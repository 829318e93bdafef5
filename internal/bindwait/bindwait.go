package bindwait

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"k8s.io/utils/clock"

	"github.com/giantswarm/testwait/internal/backoff"
	"github.com/giantswarm/testwait/internal/lsof"
	"github.com/giantswarm/testwait/internal/netutil"
	"github.com/giantswarm/testwait/internal/process"
)

// DefaultBinary is the name lsof is looked up by.
const DefaultBinary = "lsof"

// DefaultSearchPaths are probed for lsof before PATH; on many systems it
// lives in an sbin directory that is not on an unprivileged PATH.
var DefaultSearchPaths = []string{"/sbin", "/usr/sbin"}

// Discoverer finds bound ports with lsof. The zero value uses
// process.ExecRunner, the real clock, backoff.BindSchedule, DefaultBinary,
// DefaultSearchPaths and slog.Default().
type Discoverer struct {
	Runner      process.Runner
	Clock       clock.Clock
	Backoff     backoff.Policy
	Binary      string
	SearchPaths []string
	Logger      *slog.Logger
}

func (d Discoverer) withDefaults() Discoverer {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Runner == nil {
		d.Runner = process.ExecRunner{Logger: d.Logger}
	}
	if d.Clock == nil {
		d.Clock = clock.RealClock{}
	}
	if d.Backoff == nil {
		d.Backoff = backoff.BindSchedule()
	}
	if d.Binary == "" {
		d.Binary = DefaultBinary
	}
	if d.SearchPaths == nil {
		d.SearchPaths = DefaultSearchPaths
	}
	return d
}

// WaitForBind returns the port pid has bound for protocol p.
//
// lsof is resolved once; if it cannot be found the error matches
// process.ErrNotFound and nothing is retried. lsof is then run until it
// succeeds, sleeping attempt*10ms between failures. When a run fails after
// timeout has elapsed, that run's error is returned; it matches
// process.ErrCommandFailed. ctx is checked between attempts only, so a
// started lsof run or backoff sleep always completes.
//
// The first successful output is decoded with lsof.Decode. Output of any other
// shape yields an error matching lsof.ErrMalformedOutput.
func (d Discoverer) WaitForBind(ctx context.Context, pid int, p netutil.Protocol, timeout time.Duration) (int, error) {
	if !p.IsValid() {
		return 0, fmt.Errorf("wait for bind: %w: %v", netutil.ErrUnknownProtocol, p)
	}
	d = d.withDefaults()
	log := d.Logger.With("pid", pid, "protocol", p)

	path, err := process.FindExecutable(ctx, d.Runner, d.Binary, d.SearchPaths)
	if err != nil {
		return 0, fmt.Errorf("wait for %s bind of pid %d: %w", p, pid, err)
	}
	argv := lsof.Args(path, pid, p)

	deadline := d.Clock.Now().Add(timeout)
	var out string
	for attempt := 1; ; attempt++ {
		out, err = d.Runner.Run(ctx, argv, "")
		if err == nil {
			out = lsof.Trim(out)
			break
		}
		if !d.Clock.Now().Before(deadline) {
			log.Debug("lsof did not report a bound port before the deadline", "attempts", attempt, "error", err)
			return 0, fmt.Errorf("wait for %s bind of pid %d: %w", p, pid, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, fmt.Errorf("wait for %s bind of pid %d: %w", p, pid, ctxErr)
		}
		d.Clock.Sleep(d.Backoff(attempt))
	}

	rec, err := lsof.Decode(out)
	if err != nil {
		return 0, fmt.Errorf("wait for %s bind of pid %d: %w", p, pid, err)
	}
	log.Debug("determined bound port", "port", rec.Port)
	return rec.Port, nil
}
