// Package testfixtures provides in-memory stores and a controllable clock for tests.
package testfixtures

import (
	"sync"
	"time"
)

// Seoul fixed +09:00 zone used by fixtures, so tests do not depend on tzdata
var Seoul = time.FixedZone("KST", 9*60*60)

// Clock provides a controllable time source for tests.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock initialised to start.
func NewClock(start time.Time) *Clock {
	return &Clock{current: start}
}

// At returns a clock set to the given wall-clock time in Seoul.
func At(year int, month time.Month, day, hour, minute int) *Clock {
	return NewClock(time.Date(year, month, day, hour, minute, 0, 0, Seoul))
}

// Now returns the current instant tracked by the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Set updates the clock to the provided time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward and returns the updated time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
	return c.current
}

// Date returns the calendar day (UTC midnight) for a booking date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
