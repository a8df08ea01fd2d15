package search

import "time"

// Timer measures elapsed wall-clock seconds from a Set call, the same
// minimal shape as the original searcher's chrono-based timer.
type Timer struct {
	start time.Time
}

// Set (re)starts the timer at the current instant.
func (t *Timer) Set() {
	t.start = time.Now()
}

// Get returns the elapsed time in seconds since the last Set.
func (t *Timer) Get() float64 {
	return time.Since(t.start).Seconds()
}
