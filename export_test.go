package testwait

import "time"

// AssertConfigSnapshot holds a copy of assertConfig fields for test
// assertions.
type AssertConfigSnapshot struct {
	FailFast   bool
	HasClock   bool
	HasLogger  bool
	ClockNowMs int64
}

// ApplyAssertOptionsForTesting applies opts to a default assertConfig and
// returns a snapshot of the result.
func ApplyAssertOptionsForTesting(opts ...AssertOption) AssertConfigSnapshot {
	cfg := newAssertConfig(opts)
	return AssertConfigSnapshot{
		FailFast:   cfg.failFast,
		HasClock:   cfg.clock != nil,
		HasLogger:  cfg.logger != nil,
		ClockNowMs: cfg.clock.Now().UnixMilli(),
	}
}

// BindConfigSnapshot holds a copy of bindConfig fields for test assertions.
type BindConfigSnapshot struct {
	LsofBinary  string
	SearchPaths []string
	HasRunner   bool
	ValidateErr error
}

// ApplyBindOptionsForTesting applies opts to a default bindConfig and returns
// a snapshot of the result.
func ApplyBindOptionsForTesting(opts ...BindOption) BindConfigSnapshot {
	cfg := newBindConfig(opts)
	return BindConfigSnapshot{
		LsofBinary:  cfg.lsofBinary,
		SearchPaths: cfg.searchPaths,
		HasRunner:   cfg.runner != nil,
		ValidateErr: cfg.Validate(),
	}
}

// LeaveFilesFromEnvForTesting exposes leaveFilesFromEnv.
func LeaveFilesFromEnvForTesting() LeaveFiles { return leaveFilesFromEnv() }

// ParseBoolForTesting exposes parseBool.
func ParseBoolForTesting(v string) (value, ok bool) { return parseBool(v) }

// StartedAtForTesting returns the process start time used in DataDir names.
func StartedAtForTesting() time.Time { return startedAt }
