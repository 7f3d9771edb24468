package sim

import (
	"math"
	"math/rand"
)

// SizeFactor is the ratio between a sprite's distance from the center and
// its rendered extent.
const SizeFactor = 0.22

// World owns a fixed set of sprites. The set never grows or shrinks.
type World struct {
	sprites []*Sprite
	rng     *rand.Rand
}

// NewWorld creates count sprites spread over vp, all moving at speed.
func NewWorld(rng *rand.Rand, vp Viewport, count int, speed float64) *World {
	w := &World{
		sprites: make([]*Sprite, 0, count),
		rng:     rng,
	}
	for i := 0; i < count; i++ {
		w.sprites = append(w.sprites, NewRandomSprite(rng, vp, speed))
	}
	return w
}

// Sprites returns the sprites in update and draw order.
func (w *World) Sprites() []*Sprite {
	return w.sprites
}

// Advance moves every sprite dt seconds away from the center of vp and
// recycles the ones that left it. It returns the number recycled.
func (w *World) Advance(vp Viewport, dt float64) int {
	c := vp.Center()
	recycled := 0

	for _, s := range w.sprites {
		dx := s.position.X - c.X
		dy := s.position.Y - c.Y

		// size follows the displacement shown on the previous frame
		s.position = Position{
			X: s.position.X + dx*s.speed*dt,
			Y: s.position.Y + dy*s.speed*dt,
		}
		s.size = Size{
			Width:  SizeFactor * math.Abs(dx),
			Height: SizeFactor * math.Abs(dy),
		}

		if s.outOfBounds(vp) {
			s.Recycle(w.rng, vp)
			recycled++
		}
	}

	return recycled
}
