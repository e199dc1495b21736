//go:build windows

package runner

import "syscall"

var (
	kernel32                     = syscall.NewLazyDLL("kernel32.dll")
	procGenerateConsoleCtrlEvent = kernel32.NewProc("GenerateConsoleCtrlEvent")
)

// sendInterrupt raises CTRL_C_EVENT for the current process group.
func sendInterrupt() {
	procGenerateConsoleCtrlEvent.Call(0, 0)
}
