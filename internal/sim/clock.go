package sim

// TimeSlice is the minimum number of milliseconds between ticks at the
// default rate.
const TimeSlice = 1000 / DefaultFPS

// DefaultFPS is the logical tick rate cap.
const DefaultFPS = 60

// Clock gates a stream of elapsed-time samples down to a capped tick rate.
// Samples arriving before a full slice has passed since the last accepted
// tick are dropped and their time is not carried over.
type Clock struct {
	slice    int64
	lastTick int64
}

// NewClock returns a clock capped at fps ticks per second. Non-positive fps
// falls back to DefaultFPS.
func NewClock(fps int) *Clock {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Clock{slice: int64(1000 / fps)}
}

// Offer feeds a sample of milliseconds elapsed since start. It reports the
// time since the last tick and whether the sample was accepted as a tick.
func (c *Clock) Offer(elapsed int64) (int64, bool) {
	delta := elapsed - c.lastTick
	if delta < c.slice {
		return delta, false
	}
	c.lastTick = elapsed
	return delta, true
}

// LastTick returns the elapsed time of the last accepted tick.
func (c *Clock) LastTick() int64 { return c.lastTick }

// Slice returns the minimum tick spacing in milliseconds.
func (c *Clock) Slice() int64 { return c.slice }
