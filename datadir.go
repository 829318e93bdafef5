package testwait

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/giantswarm/testwait/internal/fileutil"
)

// LeaveFiles decides whether DataDir removes its directory when the test ends.
type LeaveFiles string

const (
	// LeaveFilesAlways keeps every data directory.
	LeaveFilesAlways LeaveFiles = "always"
	// LeaveFilesOnFailure keeps the directories of failed tests.
	LeaveFilesOnFailure LeaveFiles = "on_failure"
	// LeaveFilesNever removes every data directory.
	LeaveFilesNever LeaveFiles = "never"
)

// IsValid reports whether l is a recognized policy.
func (l LeaveFiles) IsValid() bool {
	switch l {
	case LeaveFilesAlways, LeaveFilesOnFailure, LeaveFilesNever:
		return true
	default:
		return false
	}
}

// keep reports whether a directory should survive a test that ended with
// the given outcome.
func (l LeaveFiles) keep(failed bool) bool {
	return l == LeaveFilesAlways || (l == LeaveFilesOnFailure && failed)
}

// leaveFilesFromEnv reads TESTWAIT_LEAVE_FILES. Panics on unknown values.
func leaveFilesFromEnv() LeaveFiles {
	v, ok := os.LookupEnv(EnvLeaveFiles)
	if !ok || v == "" {
		return DefaultLeaveFiles
	}
	l := LeaveFiles(strings.ToLower(v))
	if !l.IsValid() {
		panic(fmt.Sprintf("testwait: unrecognized value for %s: %q", EnvLeaveFiles, v))
	}
	return l
}

// baseDataDir returns TESTWAIT_DATA_DIR or os.TempDir()/testwait.
func baseDataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), DefaultBaseDataDirName)
}

// startedAt disambiguates directories of successive runs of the same binary.
var startedAt = time.Now()

// DataDir creates and returns a data directory for tb named
//
//	<program>.<test name>.<start time in µs>-<pid>
//
// under TESTWAIT_DATA_DIR (default os.TempDir()/testwait). A newly created
// directory gets a test_metadata file recording PID, PPID and, when set, the
// CI BUILD_ID. Calling DataDir again from the same test returns the same
// directory.
//
// When the test ends the directory is removed, unless TESTWAIT_LEAVE_FILES
// says to keep it: "always", or "on_failure" (the default) for a failed test.
func DataDir(tb testing.TB) string {
	tb.Helper()

	base := baseDataDir()
	if err := fileutil.EnsureDir(base); err != nil {
		tb.Fatalf("testwait: %v", err)
	}

	name := fmt.Sprintf("%s.%s.%d-%d",
		sanitize(filepath.Base(os.Args[0])),
		sanitize(tb.Name()),
		startedAt.UnixMicro(),
		os.Getpid(),
	)
	dir := filepath.Join(base, name)

	created, err := fileutil.CreateDir(dir)
	if err != nil {
		tb.Fatalf("testwait: %v", err)
	}
	if !created {
		return dir
	}

	if err := fileutil.WriteFile(filepath.Join(dir, "test_metadata"), []byte(metadata()), 0o644); err != nil {
		tb.Fatalf("testwait: write test metadata: %v", err)
	}

	policy := leaveFilesFromEnv()
	tb.Cleanup(func() {
		if policy.keep(tb.Failed()) {
			Logger().Info("leaving test files", "dir", dir, "policy", string(policy))
			return
		}
		if err := os.RemoveAll(dir); err != nil {
			Logger().Warn("could not remove test files", "dir", dir, "error", err)
		}
	})
	return dir
}

func metadata() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PID=%d\n", os.Getpid())
	fmt.Fprintf(&b, "PPID=%d\n", os.Getppid())
	if id := os.Getenv("BUILD_ID"); id != "" {
		fmt.Fprintf(&b, "BUILD_ID=%s\n", id)
	}
	return b.String()
}

// sanitize keeps subtest names from introducing path separators.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "/", "_")
}
