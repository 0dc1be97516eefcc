package geometry

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestScreenCanvasRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		screen := Pt(r.Float64()*4000-2000, r.Float64()*4000-2000)
		origin := Pt(r.Float64()*300, r.Float64()*300)
		pan := Pt(r.Float64()*1000-500, r.Float64()*1000-500)
		zoom := 0.01 + r.Float64()*5

		back := CanvasToScreen(ScreenToCanvas(screen, origin, pan, zoom), origin, pan, zoom)
		assert.True(t, back.ApproxEqual(screen, 1e-6), "screen %v came back as %v (zoom %v)", screen, back, zoom)
	}
}

func TestScreenToCanvas(t *testing.T) {
	got := ScreenToCanvas(Pt(300, 250), Pt(100, 50), Pt(20, 0), 2)
	assert.Equal(t, Pt(90, 100), got)
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	tests := []struct {
		name   string
		anchor Point
		pan    Point
		zoom   float64
		delta  float64
	}{
		{"zoom in at origin", Pt(0, 0), Pt(0, 0), 1, 0.1},
		{"zoom in off centre", Pt(400, 300), Pt(-120, 40), 1, 0.5},
		{"zoom out", Pt(640, 360), Pt(35, -80), 1.5, -0.7},
		{"to max", Pt(12, 900), Pt(0, 0), 1.8, 0.2},
		{"to min", Pt(250, 250), Pt(100, 100), 0.6, -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := ScreenToCanvas(tt.anchor, Point{}, tt.pan, tt.zoom)
			pan, zoom := ZoomAt(tt.anchor, tt.delta, tt.pan, tt.zoom)
			after := ScreenToCanvas(tt.anchor, Point{}, pan, zoom)

			assert.InDelta(t, tt.zoom+tt.delta, zoom, eps)
			assert.True(t, before.ApproxEqual(after, 1e-6), "anchor moved from %v to %v", before, after)
		})
	}
}

func TestZoomAtClamps(t *testing.T) {
	_, zoom := ZoomAt(Pt(10, 10), 5, Point{}, 1)
	assert.Equal(t, MaxZoom, zoom)

	_, zoom = ZoomAt(Pt(10, 10), -5, Point{}, 1)
	assert.Equal(t, MinZoom, zoom)

	// Clamped changes still keep the anchor.
	pan, zoom := ZoomAt(Pt(200, 120), 3, Pt(15, 15), 1.2)
	before := ScreenToCanvas(Pt(200, 120), Point{}, Pt(15, 15), 1.2)
	after := ScreenToCanvas(Pt(200, 120), Point{}, pan, zoom)
	assert.True(t, before.ApproxEqual(after, 1e-6))
}

func TestBoundsClamp(t *testing.T) {
	b := Bounds{CanvasW: 3000, CanvasH: 2000, NodeW: 200, NodeH: 100}

	assert.Equal(t, Pt(0, 0), b.Clamp(Pt(-40, -1)))
	assert.Equal(t, Pt(2800, 1900), b.Clamp(Pt(5000, 5000)))
	assert.Equal(t, Pt(120, 340), b.Clamp(Pt(120, 340)), "in-bounds position must not move")

	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 200; i++ {
		p := Pt(r.Float64()*8000-4000, r.Float64()*8000-4000)
		once := b.Clamp(p)
		assert.Equal(t, once, b.Clamp(once))
	}
}

func TestRectContains(t *testing.T) {
	b := Bounds{CanvasW: 1000, CanvasH: 1000, NodeW: 100, NodeH: 50}
	r := b.NodeRect(Pt(10, 20))

	assert.True(t, r.Contains(Pt(10, 20)))
	assert.True(t, r.Contains(Pt(110, 70)))
	assert.False(t, r.Contains(Pt(111, 40)))
	assert.Equal(t, Pt(60, 45), r.Center())
	assert.Equal(t, Pt(10, 45), b.Handle(Pt(10, 20), true))
	assert.Equal(t, Pt(110, 45), b.Handle(Pt(10, 20), false))
}
