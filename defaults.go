package testwait

import "time"

// Default configuration values. They are exported so callers can derive
// their own values from them (e.g. 2 * DefaultBindTimeout).
const (
	// DefaultAssertTimeout is a reasonable timeout for AssertEventually when
	// the caller has no better estimate.
	DefaultAssertTimeout = 30 * time.Second

	// DefaultBindTimeout is a reasonable timeout for WaitForTCPBind and
	// WaitForUDPBind. lsof itself can take a while to initialize.
	DefaultBindTimeout = 30 * time.Second

	// DefaultLsofBinary is the name lsof is looked up by.
	DefaultLsofBinary = "lsof"

	// DefaultBaseDataDirName is the directory under os.TempDir() that holds
	// per-test data directories created by DataDir.
	DefaultBaseDataDirName = "testwait"

	// DefaultLeaveFiles is the policy DataDir applies when
	// TESTWAIT_LEAVE_FILES is unset.
	DefaultLeaveFiles = LeaveFilesOnFailure
)

// DefaultSearchPaths returns the directories probed for lsof before PATH.
// Each call returns a fresh slice.
func DefaultSearchPaths() []string {
	return []string{"/sbin", "/usr/sbin"}
}
