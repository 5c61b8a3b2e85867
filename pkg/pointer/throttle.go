package pointer

import "time"

// DefaultInterval is the minimum spacing between processed samples.
const DefaultInterval = 32 * time.Millisecond

// Throttle admits at most one event per interval. The first event of a burst
// passes immediately; later events inside the window are dropped.
type Throttle struct {
	Interval time.Duration

	last  time.Time
	fired bool
}

// NewThrottle returns a throttle with the given interval. A non-positive
// interval selects DefaultInterval.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Throttle{Interval: interval}
}

// Allow reports whether an event at now may be processed, and if so starts a
// new window.
func (t *Throttle) Allow(now time.Time) bool {
	if t.fired && now.Sub(t.last) < t.Interval {
		return false
	}
	t.last = now
	t.fired = true
	return true
}

// Reset forgets the current window.
func (t *Throttle) Reset() { t.fired = false }
