package sim

import "math/rand"

// Viewport is a snapshot of the drawable area in device pixels.
type Viewport struct {
	Width  uint
	Height uint
}

// Center returns the midpoint of the viewport.
func (v Viewport) Center() Position {
	return Position{X: float64(v.Width) / 2, Y: float64(v.Height) / 2}
}

type Position struct {
	X, Y float64
}

// Size is the rendered extent of a sprite.
type Size struct {
	Width, Height float64
}

// Sprite is one drifting logo. Speed is fixed at construction; position,
// size and color change every tick or on recycle.
type Sprite struct {
	position Position
	size     Size
	speed    float64
	color    Color
}

// NewRandomSprite creates a sprite with the given speed and a randomized
// starting position and color.
func NewRandomSprite(rng *rand.Rand, vp Viewport, speed float64) *Sprite {
	s := &Sprite{speed: speed, color: White}
	s.Recycle(rng, vp)
	return s
}

// Recycle respawns the sprite in place: a new random color, and a new
// position that lands in the middle half of the viewport one time in three
// and anywhere in the viewport otherwise. Size is zeroed until the next tick.
func (s *Sprite) Recycle(rng *rand.Rand, vp Viewport) {
	s.color = Palette[rng.Intn(len(Palette))]

	maxX := float64(vp.Width)
	maxY := float64(vp.Height)

	if rng.Intn(3) == 0 {
		// bias toward the center so the middle doesn't look empty
		fourthX := maxX / 4
		fourthY := maxY / 4
		s.position = Position{
			X: fourthX + rng.Float64()*(maxX-2*fourthX),
			Y: fourthY + rng.Float64()*(maxY-2*fourthY),
		}
	} else {
		s.position = Position{
			X: rng.Float64() * maxX,
			Y: rng.Float64() * maxY,
		}
	}

	s.size = Size{}
}

func (s *Sprite) Position() Position { return s.position }
func (s *Sprite) Size() Size         { return s.size }
func (s *Sprite) Speed() float64     { return s.speed }
func (s *Sprite) Color() Color       { return s.color }

// outOfBounds reports whether the sprite, including its extent, has left vp.
func (s *Sprite) outOfBounds(vp Viewport) bool {
	p, sz := s.position, s.size
	return p.X > float64(vp.Width)+sz.Width ||
		p.X < -sz.Width ||
		p.Y > float64(vp.Height)+sz.Height ||
		p.Y < -sz.Height
}
