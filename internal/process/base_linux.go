//go:build linux

package process

import (
	"os/exec"
	"syscall"
)

// configureSysProcAttr makes the kernel send SIGTERM to cmd when the test
// binary dies, so a hung lsof does not outlive it.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Pdeathsig: syscall.SIGTERM,
	}
}
