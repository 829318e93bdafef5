package testwait

import (
	"errors"
	"log/slog"

	"k8s.io/utils/clock"

	"github.com/giantswarm/testwait/internal/bindwait"
	"github.com/giantswarm/testwait/internal/eventually"
	"github.com/giantswarm/testwait/internal/process"
)

// assertConfig holds the settings of one AssertEventually call.
type assertConfig struct {
	failFast bool
	clock    clock.Clock
	logger   *slog.Logger
}

// defaultAssertConfig reads TESTWAIT_FAIL_FAST and otherwise uses the real
// clock and the package logger.
func defaultAssertConfig() assertConfig {
	return assertConfig{
		failFast: mustEnvBool(EnvFailFast, false),
		clock:    clock.RealClock{},
		logger:   Logger(),
	}
}

func newAssertConfig(opts []AssertOption) assertConfig {
	cfg := defaultAssertConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c assertConfig) poller() eventually.Poller {
	return eventually.Poller{Clock: c.clock, Logger: c.logger}
}

// bindConfig holds the settings of one bind discovery.
type bindConfig struct {
	runner      process.Runner
	clock       clock.Clock
	logger      *slog.Logger
	lsofBinary  string
	searchPaths []string
}

func defaultBindConfig() bindConfig {
	return bindConfig{
		clock:       clock.RealClock{},
		logger:      Logger(),
		lsofBinary:  DefaultLsofBinary,
		searchPaths: DefaultSearchPaths(),
	}
}

func newBindConfig(opts []BindOption) bindConfig {
	cfg := defaultBindConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.runner == nil {
		cfg.runner = process.ExecRunner{Logger: cfg.logger}
	}
	return cfg
}

// Validate reports every invalid setting at once.
func (c bindConfig) Validate() error {
	var errs []error
	if c.runner == nil {
		errs = append(errs, errors.New("command runner must not be nil"))
	}
	if c.clock == nil {
		errs = append(errs, errors.New("clock must not be nil"))
	}
	if c.logger == nil {
		errs = append(errs, errors.New("logger must not be nil"))
	}
	if c.lsofBinary == "" {
		errs = append(errs, errors.New("lsof binary must not be empty"))
	}
	return errors.Join(errs...)
}

func (c bindConfig) discoverer() bindwait.Discoverer {
	return bindwait.Discoverer{
		Runner:      c.runner,
		Clock:       c.clock,
		Binary:      c.lsofBinary,
		SearchPaths: c.searchPaths,
		Logger:      c.logger,
	}
}
