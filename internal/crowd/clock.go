package crowd

// Stepper is the part of a Simulator a Clock drives.
type Stepper interface {
	Advance(now float64)
	Tick(now float64)
}

// Clock gates a Stepper so it ticks at most once per interval.
// There is no catch-up: a late poll runs a single tick.
type Clock struct {
	target   Stepper
	interval float64
	last     float64
}

// NewClock creates a clock that ticks target every interval seconds.
func NewClock(target Stepper, interval float64) *Clock {
	return &Clock{target: target, interval: interval}
}

// ClockFor creates a clock using the simulator's configured interval.
func ClockFor(s *Simulator) *Clock {
	return NewClock(s, s.cfg.TickInterval)
}

// Poll observes now and runs one tick if more than an interval has passed
// since the last one. It reports whether a tick ran.
func (c *Clock) Poll(now float64) bool {
	c.target.Advance(now)
	if now-c.last <= c.interval {
		return false
	}
	c.last = now
	c.target.Tick(now)
	return true
}

// LastTick returns the time of the most recent tick.
func (c *Clock) LastTick() float64 { return c.last }

// Reset rewinds the clock to time zero.
func (c *Clock) Reset() { c.last = 0 }
