package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/logo-drift/internal/sim"
)

var background = color.RGBA{A: 0xff}

// canvas is the offscreen target of the render pass. It keeps the last
// accepted frame so refreshes without a tick show the same picture.
type canvas struct {
	source sim.ViewportProvider
	img    *ebiten.Image
	vp     sim.Viewport
}

func (c *canvas) resize(vp sim.Viewport) {
	if c.img != nil && c.vp == vp {
		return
	}
	if c.img != nil {
		c.img.Deallocate()
	}
	c.vp = vp
	c.img = ebiten.NewImage(int(vp.Width), int(vp.Height))
}

// Clear paints the background, resizing first if the window changed.
func (c *canvas) Clear() {
	c.resize(c.source.Viewport())
	c.img.Fill(background)
}

func (c *canvas) Draw(img *ebiten.Image, pos sim.Position, size sim.Size) {
	if img == nil {
		return
	}
	b := img.Bounds()
	geo, ok := placement(b.Dx(), b.Dy(), pos, size)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: geo}
	op.Filter = ebiten.FilterLinear
	c.img.DrawImage(img, op)
}

func (c *canvas) present(screen *ebiten.Image) {
	if c.img == nil {
		screen.Fill(background)
		return
	}
	screen.DrawImage(c.img, nil)
}

// placement scales a w x h image to size with its top-left corner at pos.
// It reports false when there is nothing to draw.
func placement(w, h int, pos sim.Position, size sim.Size) (ebiten.GeoM, bool) {
	var geo ebiten.GeoM
	if w <= 0 || h <= 0 || size.Width <= 0 || size.Height <= 0 {
		return geo, false
	}
	geo.Scale(size.Width/float64(w), size.Height/float64(h))
	geo.Translate(pos.X, pos.Y)
	return geo, true
}
