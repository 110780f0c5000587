package kernel

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	US uint64
}

// NowUS implements hal.Clock.
func (c *ManualClock) NowUS() uint64 { return c.US }

// Advance moves the clock forward by us microseconds.
func (c *ManualClock) Advance(us uint64) { c.US += us }

// Set moves the clock to us.
func (c *ManualClock) Set(us uint64) { c.US = us }
