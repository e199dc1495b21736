package wordlist

import (
	"fmt"
	"os"
	"strings"
)

// Load reads a parameter wordlist and returns one candidate per non-blank
// line, trimmed of surrounding whitespace. Order is preserved and duplicates
// are kept, so every line is probed.
func Load(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("no wordlist specified")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading wordlist %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Parse splits raw wordlist content into candidates.
func Parse(raw string) []string {
	lines := strings.Split(raw, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		result = append(result, line)
	}
	return result
}
