package platform

import "time"

// maxFrameDelta caps dt after stalls such as window drags.
const maxFrameDelta = 250 * time.Millisecond

// Clock measures the time between frames.
type Clock struct {
	Time time.Time
	Dt   time.Duration

	now func() time.Time
}

func NewClock() *Clock {
	c := &Clock{now: time.Now}
	c.Time = c.now()
	return c
}

// Tick advances the clock and returns the elapsed frame time in seconds.
func (c *Clock) Tick() float32 {
	now := c.now()
	c.Dt = now.Sub(c.Time)
	if c.Dt > maxFrameDelta {
		c.Dt = maxFrameDelta
	}
	if c.Dt < 0 {
		c.Dt = 0
	}
	c.Time = now
	return float32(c.Dt.Seconds())
}
