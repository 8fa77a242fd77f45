package diorama

import "time"

// Clock yields monotonic elapsed time since program start. Mode
// choreography is a pure function of this value, which is what lets the
// tests drive the whole machine on simulated time.
type Clock interface {
	Now() time.Duration
}

type wallClock struct {
	start time.Time
}

func NewWallClock() Clock {
	return &wallClock{start: time.Now()}
}

func (c *wallClock) Now() time.Duration {
	return time.Since(c.start)
}
