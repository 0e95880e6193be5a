//go:build unix

package render

import (
	"os/exec"
	"syscall"
)

// killProcessGroup runs the converter in its own process group and kills the whole group
// on cancellation. soffice is a wrapper that forks soffice.bin, which would otherwise
// outlive the timeout and keep the output pipes open.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
