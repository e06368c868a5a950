package clock

import "time"

// Manual is a Source driven by hand. Tests and replays use it to feed
// deterministic frame times into the loop.
type Manual struct {
	now time.Time
}

// NewManual creates a manual source starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// Add moves the manual time forward by d.
func (m *Manual) Add(d time.Duration) {
	m.now = m.now.Add(d)
}

// Set replaces the manual time.
func (m *Manual) Set(t time.Time) {
	m.now = t
}
