//go:build !unix

package render

import "os/exec"

// killProcessGroup is a no-op where process groups are not available; WaitDelay still
// bounds the wait.
func killProcessGroup(*exec.Cmd) {}
