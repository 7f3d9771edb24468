package sim

import (
	"context"
	"time"
)

// FrameSlot holds at most one pending frame callback. Hosts that already own
// a per-refresh hook (a game loop, a ticker) fire it from there.
type FrameSlot struct {
	fn func(int64)
}

func (s *FrameSlot) RequestFrame(fn func(elapsed int64)) {
	s.fn = fn
}

// Pending reports whether a callback is waiting to be fired.
func (s *FrameSlot) Pending() bool {
	return s.fn != nil
}

// Fire runs the pending callback with elapsed and clears the slot first, so
// the callback may re-arm it. It reports false if nothing was pending.
func (s *FrameSlot) Fire(elapsed int64) bool {
	fn := s.fn
	if fn == nil {
		return false
	}
	s.fn = nil
	fn(elapsed)
	return true
}

// TickerDriver fires frames from a time.Ticker, standing in for a display
// refresh when there is no window.
type TickerDriver struct {
	slot     FrameSlot
	interval time.Duration
}

// NewTickerDriver returns a driver that fires at hz frames per second.
func NewTickerDriver(hz int) *TickerDriver {
	if hz <= 0 {
		hz = DefaultFPS
	}
	return &TickerDriver{interval: time.Second / time.Duration(hz)}
}

func (d *TickerDriver) RequestFrame(fn func(elapsed int64)) {
	d.slot.RequestFrame(fn)
}

// Run fires pending frames until ctx is done or nothing re-arms the driver.
func (d *TickerDriver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if !d.slot.Fire(now.Sub(start).Milliseconds()) {
				return nil
			}
		}
	}
}

// FixedViewport is a ViewportProvider that never changes.
type FixedViewport Viewport

func (v FixedViewport) Viewport() Viewport { return Viewport(v) }

// PaletteImages is an ImageProvider whose handles are the colors themselves.
type PaletteImages struct{}

func (PaletteImages) ImageFor(c Color) Color { return c }

// DrawCall is one recorded Draw.
type DrawCall struct {
	Color Color
	Pos   Position
	Size  Size
}

// Recorder is a Renderer that keeps the last frame drawn and counts passes.
type Recorder struct {
	Clears int
	Frame  []DrawCall
}

func (r *Recorder) Clear() {
	r.Clears++
	r.Frame = r.Frame[:0]
}

func (r *Recorder) Draw(c Color, pos Position, size Size) {
	r.Frame = append(r.Frame, DrawCall{Color: c, Pos: pos, Size: size})
}
