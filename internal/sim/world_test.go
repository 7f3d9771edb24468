package sim

import (
	"math"
	"testing"
)

func TestAdvance_ScenarioRecyclesSameTick(t *testing.T) {
	vp := Viewport{Width: 100, Height: 100}
	s := &Sprite{position: Position{X: 150, Y: 50}, speed: 1.0, color: Red}
	w := &World{sprites: []*Sprite{s}, rng: newTestRand(10)}

	recycled := w.Advance(vp, 1.0)

	if recycled != 1 {
		t.Fatalf("expected 1 recycle, got %d", recycled)
	}
	p := s.Position()
	if p == (Position{X: 250, Y: 50}) {
		t.Fatal("sprite kept its out-of-bounds position")
	}
	if p.X < 0 || p.X >= 100 || p.Y < 0 || p.Y >= 100 {
		t.Fatalf("recycled sprite outside viewport: %+v", p)
	}
	if s.Size() != (Size{}) {
		t.Fatalf("recycled sprite should have zero size, got %+v", s.Size())
	}
}

func TestAdvance_IntegratesAndDerivesSize(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 800}
	s := &Sprite{position: Position{X: 600, Y: 300}, speed: 2.0}
	w := &World{sprites: []*Sprite{s}, rng: newTestRand(11)}

	w.Advance(vp, 0.1)

	// center (500,400), displacement (100,-100)
	want := Position{X: 600 + 100*2.0*0.1, Y: 300 - 100*2.0*0.1}
	if s.Position() != want {
		t.Fatalf("position = %+v, want %+v", s.Position(), want)
	}
	d := 100.0
	wantSize := Size{Width: SizeFactor * d, Height: SizeFactor * d}
	if s.Size() != wantSize {
		t.Fatalf("size = %+v, want %+v", s.Size(), wantSize)
	}
}

func TestAdvance_SizeTracksPreUpdateDisplacement(t *testing.T) {
	rng := newTestRand(12)
	vp := Viewport{Width: 1280, Height: 720}
	w := NewWorld(rng, vp, 50, 1.2)
	c := vp.Center()

	for tick := 0; tick < 600; tick++ {
		before := make([]Position, len(w.Sprites()))
		for i, s := range w.Sprites() {
			before[i] = s.Position()
		}

		w.Advance(vp, 1.0/60)

		for i, s := range w.Sprites() {
			if s.Size() == (Size{}) {
				continue // recycled this tick
			}
			wantW := SizeFactor * math.Abs(before[i].X-c.X)
			wantH := SizeFactor * math.Abs(before[i].Y-c.Y)
			if s.Size().Width != wantW || s.Size().Height != wantH {
				t.Fatalf("tick %d sprite %d: size %+v, want {%f %f}", tick, i, s.Size(), wantW, wantH)
			}
		}
	}
}

func TestAdvance_NoSpriteLeftOutOfBounds(t *testing.T) {
	rng := newTestRand(13)
	vp := Viewport{Width: 320, Height: 240}
	w := NewWorld(rng, vp, 40, 3.0)

	total := 0
	for tick := 0; tick < 1000; tick++ {
		total += w.Advance(vp, 0.05)
		for i, s := range w.Sprites() {
			if s.outOfBounds(vp) {
				t.Fatalf("tick %d: sprite %d out of bounds at %+v", tick, i, s.Position())
			}
		}
	}
	if total == 0 {
		t.Fatal("expected some sprites to be recycled")
	}
}

func TestAdvance_SpeedNeverChanges(t *testing.T) {
	rng := newTestRand(14)
	vp := Viewport{Width: 200, Height: 200}
	w := NewWorld(rng, vp, 20, 1.2)

	for tick := 0; tick < 2000; tick++ {
		w.Advance(vp, 0.1)
	}
	for i, s := range w.Sprites() {
		if s.Speed() != 1.2 {
			t.Fatalf("sprite %d speed drifted to %f", i, s.Speed())
		}
	}
}

func TestAdvance_CenterIsStable(t *testing.T) {
	vp := Viewport{Width: 100, Height: 60}
	s := &Sprite{position: Position{X: 50, Y: 30}, speed: 5}
	w := &World{sprites: []*Sprite{s}, rng: newTestRand(15)}

	for tick := 0; tick < 100; tick++ {
		if n := w.Advance(vp, 1.0); n != 0 {
			t.Fatalf("centered sprite recycled on tick %d", tick)
		}
		if s.Position() != (Position{X: 50, Y: 30}) {
			t.Fatalf("centered sprite moved to %+v", s.Position())
		}
		if s.Size() != (Size{}) {
			t.Fatalf("centered sprite has size %+v", s.Size())
		}
	}
}

func TestAdvance_ZeroViewportFreezes(t *testing.T) {
	rng := newTestRand(16)
	vp := Viewport{}
	w := NewWorld(rng, vp, 5, 1.2)

	for tick := 0; tick < 50; tick++ {
		if n := w.Advance(vp, 0.5); n != 0 {
			t.Fatalf("tick %d: %d recycles in zero viewport", tick, n)
		}
	}
	for _, s := range w.Sprites() {
		if s.Position() != (Position{}) {
			t.Fatalf("sprite left origin: %+v", s.Position())
		}
	}
}

func TestAdvance_FollowsResize(t *testing.T) {
	s := &Sprite{position: Position{X: 100, Y: 100}, speed: 1}
	w := &World{sprites: []*Sprite{s}, rng: newTestRand(17)}

	// centered for 200x200, so no motion
	w.Advance(Viewport{Width: 200, Height: 200}, 1)
	if s.Position() != (Position{X: 100, Y: 100}) {
		t.Fatalf("unexpected move: %+v", s.Position())
	}

	// window grows: center moves to (200,200), sprite drifts up-left
	w.Advance(Viewport{Width: 400, Height: 400}, 0.5)
	if s.Position() != (Position{X: 50, Y: 50}) {
		t.Fatalf("expected (50,50) after resize, got %+v", s.Position())
	}
}

func TestNewWorld_FixedCount(t *testing.T) {
	rng := newTestRand(18)
	vp := Viewport{Width: 100, Height: 100}
	w := NewWorld(rng, vp, 20, 1.2)

	for tick := 0; tick < 500; tick++ {
		w.Advance(vp, 0.2)
	}
	if got := len(w.Sprites()); got != 20 {
		t.Fatalf("sprite count changed to %d", got)
	}
}
