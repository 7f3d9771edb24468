package sim

import "sync/atomic"

// ViewportProvider reports the current drawable area. It may change between
// calls without notice.
type ViewportProvider interface {
	Viewport() Viewport
}

// ImageProvider maps every palette color to a renderable image handle.
type ImageProvider[H any] interface {
	ImageFor(c Color) H
}

// Renderer paints one frame: Clear once, then Draw for every sprite.
type Renderer[H any] interface {
	Clear()
	Draw(img H, pos Position, size Size)
}

// FrameDriver schedules a single future call of fn with the milliseconds
// elapsed since start. Each call must be re-requested to keep running.
type FrameDriver interface {
	RequestFrame(fn func(elapsed int64))
}

// Stats counts loop activity since start.
type Stats struct {
	Samples  uint64
	Ticks    uint64
	Dropped  uint64
	Recycles uint64
	Draws    uint64
	LastTick int64
}

// Loop ties a World to its collaborators and drives it one frame at a time.
// All methods except Stop and Stats must be called from the driver's
// goroutine.
type Loop[H any] struct {
	world    *World
	clock    *Clock
	viewport ViewportProvider
	images   ImageProvider[H]
	renderer Renderer[H]
	driver   FrameDriver

	stopped atomic.Bool

	samples  atomic.Uint64
	ticks    atomic.Uint64
	dropped  atomic.Uint64
	recycles atomic.Uint64
	draws    atomic.Uint64
	lastTick atomic.Int64
}

func NewLoop[H any](
	world *World,
	clock *Clock,
	viewport ViewportProvider,
	images ImageProvider[H],
	renderer Renderer[H],
	driver FrameDriver,
) *Loop[H] {
	return &Loop[H]{
		world:    world,
		clock:    clock,
		viewport: viewport,
		images:   images,
		renderer: renderer,
		driver:   driver,
	}
}

// Start feeds an initial zero sample, which arms the driver.
func (l *Loop[H]) Start() {
	l.Frame(0)
}

// Frame handles one elapsed-time sample: tick and render if a slice has
// passed, then request the next frame unless stopped.
func (l *Loop[H]) Frame(elapsed int64) {
	l.samples.Add(1)

	if delta, ok := l.clock.Offer(elapsed); ok {
		l.lastTick.Store(elapsed)
		l.ticks.Add(1)

		vp := l.viewport.Viewport()
		n := l.world.Advance(vp, float64(delta)/1000)
		l.recycles.Add(uint64(n))
		l.render()
	} else {
		l.dropped.Add(1)
	}

	if l.stopped.Load() {
		return
	}
	l.driver.RequestFrame(l.Frame)
}

func (l *Loop[H]) render() {
	l.renderer.Clear()
	for _, s := range l.world.sprites {
		l.renderer.Draw(l.images.ImageFor(s.color), s.position, s.size)
	}
	l.draws.Add(uint64(len(l.world.sprites)))
}

// Stop ends the frame chain after the current callback. Safe from any
// goroutine.
func (l *Loop[H]) Stop() {
	l.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (l *Loop[H]) Stopped() bool {
	return l.stopped.Load()
}

func (l *Loop[H]) World() *World { return l.world }

// Stats returns a snapshot of the loop counters.
func (l *Loop[H]) Stats() Stats {
	return Stats{
		Samples:  l.samples.Load(),
		Ticks:    l.ticks.Load(),
		Dropped:  l.dropped.Load(),
		Recycles: l.recycles.Load(),
		Draws:    l.draws.Load(),
		LastTick: l.lastTick.Load(),
	}
}
