//go:build windows

package runner

// fixOutputProcessing is a no-op; the Windows console keeps translating
// newlines in raw input mode.
func fixOutputProcessing(fd int) {}
