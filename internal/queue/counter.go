package queue

// Counter hands out insertion seq numbers for a single queue.
//
// It starts at 0 and only moves forward: every Next call returns a value
// no earlier call returned. A Counter belongs to exactly one PrintQueue, so
// independent queues never share seq numbers or state.
type Counter struct {
	seq int64
}

// Next returns the current value and advances the counter.
func (c *Counter) Next() int64 {
	n := c.seq
	c.seq++
	return n
}

// Current returns the value the next call to Next will hand out.
func (c *Counter) Current() int64 {
	return c.seq
}
