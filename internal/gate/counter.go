package gate

import "sync"

// DayCounter is the daily application cap, shared by every source processed
// that day. The run controller owns it; the scheduler calls Reset at day
// boundaries.
type DayCounter struct {
	mu      sync.Mutex
	applied int
}

func (c *DayCounter) Inc() {
	c.mu.Lock()
	c.applied++
	c.mu.Unlock()
}

func (c *DayCounter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied
}

// AtCap reports whether the daily limit is reached; once true, every further
// posting is rejected regardless of score until Reset.
func (c *DayCounter) AtCap(max int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied >= max
}

func (c *DayCounter) Reset() {
	c.mu.Lock()
	c.applied = 0
	c.mu.Unlock()
}
