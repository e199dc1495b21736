package config

import "time"

// Defaults for a paramfuzz scan.
const (
	DefaultThreads       = 10
	DefaultTimeout       = 5 * time.Second
	DefaultSentinel      = "PARAMFUZZVALUE"
	DefaultSizeThreshold = 0.10
)

// Options holds all configuration for a paramfuzz scan.
type Options struct {
	// Target
	URL          string
	WordlistPath string

	// Performance
	Threads int
	Timeout time.Duration

	// Detection
	Sentinel      string
	SizeThreshold float64 // relative change, 0.10 = 10%

	// Output
	Quiet   bool
	NoColor bool

	// HTTP
	Headers     map[string]string
	UserAgent   string
	Proxy       string
	Insecure    bool
	NoRedirects bool

	// Hooks
	OnResultCmd string
}
