// Package geometry maps between screen space (pointer pixels) and canvas
// space (where node positions are stored) for a given pan offset and zoom.
package geometry

import "math"

const (
	MinZoom = 0.5
	MaxZoom = 2.0
)

// Point is a 2D coordinate. Whether it is in screen or canvas space depends on
// where it came from.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// ApproxEqual reports whether both coordinates differ by less than eps.
func (p Point) ApproxEqual(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) < eps && math.Abs(p.Y-q.Y) < eps
}

// ScreenToCanvas converts a screen point to canvas space. origin is the screen
// offset of the host surface itself. zoom must be > 0.
func ScreenToCanvas(screen, origin, pan Point, zoom float64) Point {
	return screen.Sub(origin).Sub(pan).Scale(1 / zoom)
}

// CanvasToScreen is the inverse of ScreenToCanvas.
func CanvasToScreen(canvas, origin, pan Point, zoom float64) Point {
	return canvas.Scale(zoom).Add(pan).Add(origin)
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	return clamp(z, MinZoom, MaxZoom)
}

// ZoomAt applies a zoom delta while keeping the canvas point under anchor
// fixed on screen. anchor is surface-local (origin already subtracted).
func ZoomAt(anchor Point, delta float64, pan Point, zoom float64) (Point, float64) {
	next := ClampZoom(zoom + delta)
	under := anchor.Sub(pan).Scale(1 / zoom)
	return anchor.Sub(under.Scale(next)), next
}

// Rect is an axis-aligned rectangle; Min is the top-left corner.
type Rect struct {
	Min  Point
	W, H float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Min.X+r.W &&
		p.Y >= r.Min.Y && p.Y <= r.Min.Y+r.H
}

func (r Rect) Center() Point {
	return Point{X: r.Min.X + r.W/2, Y: r.Min.Y + r.H/2}
}

// Bounds holds the canvas and node dimensions that limit node placement.
type Bounds struct {
	CanvasW, CanvasH float64
	NodeW, NodeH     float64
}

// Clamp pulls a node's top-left corner into
// [0, CanvasW-NodeW] x [0, CanvasH-NodeH].
func (b Bounds) Clamp(p Point) Point {
	return Point{
		X: clamp(p.X, 0, math.Max(0, b.CanvasW-b.NodeW)),
		Y: clamp(p.Y, 0, math.Max(0, b.CanvasH-b.NodeH)),
	}
}

// NodeRect is the body of a node whose top-left corner is at pos.
func (b Bounds) NodeRect(pos Point) Rect {
	return Rect{Min: pos, W: b.NodeW, H: b.NodeH}
}

// Handle returns the centre of the connector handle on the given side of a
// node at pos. left is true for the input side.
func (b Bounds) Handle(pos Point, left bool) Point {
	y := pos.Y + b.NodeH/2
	if left {
		return Point{X: pos.X, Y: y}
	}
	return Point{X: pos.X + b.NodeW, Y: y}
}

// Distance is the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
