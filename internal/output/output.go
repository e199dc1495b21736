package output

import "time"

// Stats holds aggregate scan counters.
type Stats struct {
	Total    int
	Tested   int
	Found    int
	Failed   int
	Duration time.Duration
}
