package sim

import "time"

// Clock is the run countdown. It measures wall-clock time since the run started.
type Clock struct {
	start    time.Time
	duration time.Duration
}

// NewClock starts a countdown of the given duration at start.
func NewClock(start time.Time, duration time.Duration) *Clock {
	return &Clock{start: start, duration: duration}
}

// Reset restarts the countdown at now.
func (c *Clock) Reset(now time.Time) {
	c.start = now
}

// Elapsed returns the run time at now.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	return now.Sub(c.start)
}

// Remaining returns the time left at now, never negative.
func (c *Clock) Remaining(now time.Time) time.Duration {
	left := c.duration - c.Elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the full run duration has elapsed at now.
func (c *Clock) Expired(now time.Time) bool {
	return c.Elapsed(now) >= c.duration
}
