//go:build !windows

package runner

import (
	"os"
	"syscall"
)

// sendInterrupt re-raises SIGINT after raw mode swallowed Ctrl+C.
func sendInterrupt() {
	_ = syscall.Kill(os.Getpid(), syscall.SIGINT)
}
