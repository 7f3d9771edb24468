// Package game hosts the simulation in an ebiten window. ebiten's Update is
// the per-refresh frame driver, Layout reports the viewport and the render
// pass paints into an offscreen canvas that Draw presents.
package game

import (
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/iburimskiy/logo-drift/internal/sim"
)

// Options configures a Screensaver.
type Options struct {
	Sprites       int
	Speed         float64
	FPS           int
	Rand          *rand.Rand
	Debug         bool
	StatsInterval time.Duration
}

// Screensaver implements ebiten.Game.
type Screensaver struct {
	opts   Options
	images sim.ImageProvider[*ebiten.Image]

	loop     *sim.Loop[*ebiten.Image]
	slot     sim.FrameSlot
	canvas   *canvas
	viewport sim.Viewport

	now       func() time.Time
	start     time.Time
	lastStats time.Time

	stopRequested atomic.Bool
}

func New(images sim.ImageProvider[*ebiten.Image], opts Options) *Screensaver {
	g := &Screensaver{
		opts:   opts,
		images: images,
		now:    time.Now,
	}
	g.canvas = &canvas{source: g}
	return g
}

// Viewport returns the size reported by the most recent Layout.
func (g *Screensaver) Viewport() sim.Viewport {
	return g.viewport
}

// Stop ends the animation at the next frame and the game then exits. Safe
// from any goroutine.
func (g *Screensaver) Stop() {
	g.stopRequested.Store(true)
}

// Stats returns the loop counters, zero before the first frame.
func (g *Screensaver) Stats() sim.Stats {
	if g.loop == nil {
		return sim.Stats{}
	}
	return g.loop.Stats()
}

func (g *Screensaver) Update() error {
	if g.stopRequested.Load() {
		if g.loop == nil {
			return ebiten.Termination
		}
		g.loop.Stop()
	}

	if g.loop == nil {
		// First frame: Layout has run, so the viewport is real.
		g.startLoop()
		return nil
	}

	g.slot.Fire(g.now().Sub(g.start).Milliseconds())

	if g.opts.Debug {
		g.logStats()
	}
	if g.loop.Stopped() && !g.slot.Pending() {
		return ebiten.Termination
	}
	return nil
}

func (g *Screensaver) startLoop() {
	world := sim.NewWorld(g.opts.Rand, g.viewport, g.opts.Sprites, g.opts.Speed)
	g.canvas.resize(g.viewport)
	g.loop = sim.NewLoop[*ebiten.Image](world, sim.NewClock(g.opts.FPS), g, g.images, g.canvas, &g.slot)

	g.start = g.now()
	g.lastStats = g.start
	log.Printf("started: %d sprites, speed %.2f, viewport %dx%d", g.opts.Sprites, g.opts.Speed, g.viewport.Width, g.viewport.Height)
	g.loop.Start()
}

func (g *Screensaver) logStats() {
	if g.opts.StatsInterval <= 0 {
		return
	}
	now := g.now()
	if now.Sub(g.lastStats) < g.opts.StatsInterval {
		return
	}
	g.lastStats = now
	log.Print(statsLine(g.loop.Stats(), ebiten.ActualTPS(), ebiten.ActualFPS()))
}

func (g *Screensaver) Draw(screen *ebiten.Image) {
	g.canvas.present(screen)

	if g.opts.Debug {
		ebitenutil.DebugPrintAt(screen, statsLine(g.Stats(), ebiten.ActualTPS(), ebiten.ActualFPS()), 8, 8)
	}
}

// Layout makes the canvas follow the window, in device pixels.
func (g *Screensaver) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	g.viewport = deviceViewport(outsideWidth, outsideHeight, scale)
	return int(g.viewport.Width), int(g.viewport.Height)
}

func deviceViewport(w, h int, scale float64) sim.Viewport {
	if scale <= 0 {
		scale = 1
	}
	vw := int(float64(w) * scale)
	vh := int(float64(h) * scale)
	// ebiten rejects a zero sized screen
	if vw < 1 {
		vw = 1
	}
	if vh < 1 {
		vh = 1
	}
	return sim.Viewport{Width: uint(vw), Height: uint(vh)}
}

func statsLine(st sim.Stats, tps, fps float64) string {
	return fmt.Sprintf("tps %.1f fps %.1f | ticks %d dropped %d recycles %d",
		tps, fps, st.Ticks, st.Dropped, st.Recycles)
}
