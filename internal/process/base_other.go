//go:build !linux

package process

import "os/exec"

// configureSysProcAttr is a no-op: Pdeathsig only exists on Linux.
func configureSysProcAttr(_ *exec.Cmd) {}
