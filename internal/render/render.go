// Package render paints a whiteboard snapshot onto a grid of terminal cells.
package render

import (
	"fmt"
	"math"
	"strings"

	"mineflow/internal/geometry"
	"mineflow/internal/graph"
	"mineflow/internal/whiteboard"
)

// Renderer maps screen pixels to terminal cells. One cell covers CellW x
// CellH screen pixels; screen space starts at the top-left cell.
type Renderer struct {
	bounds       geometry.Bounds
	cellW, cellH float64
}

func New(b geometry.Bounds, cellW, cellH float64) *Renderer {
	return &Renderer{bounds: b, cellW: cellW, cellH: cellH}
}

// CellSize returns the pixel size of one cell.
func (r *Renderer) CellSize() (w, h float64) {
	return r.cellW, r.cellH
}

// Cell returns the cell covering screen point p.
func (r *Renderer) Cell(p geometry.Point) (col, row int) {
	return int(math.Floor(p.X / r.cellW)), int(math.Floor(p.Y / r.cellH))
}

// Pixel returns the screen point at the centre of a cell.
func (r *Renderer) Pixel(col, row int) geometry.Point {
	return geometry.Pt((float64(col)+0.5)*r.cellW, (float64(row)+0.5)*r.cellH)
}

// Render draws s into cols x rows cells and returns one string per row.
// Edges go underneath nodes; the pending connection goes on top of edges.
func (r *Renderer) Render(s whiteboard.Snapshot, cols, rows int) []string {
	g := newGrid(cols, rows)

	nodes := make(map[string]graph.Node, len(s.Nodes))
	for _, n := range s.Nodes {
		nodes[n.ID] = n
	}

	for _, e := range s.Edges {
		from, ok1 := nodes[e.From]
		to, ok2 := nodes[e.To]
		if !ok1 || !ok2 {
			continue
		}
		fx, fy := r.handleCell(s.Viewport, from, e.FromSide)
		tx, ty := r.handleCell(s.Viewport, to, e.ToSide)
		g.route(fx, fy, tx, ty, solid)
		g.edgeLabel(fx, fy, tx, edgeText(e))
	}

	if p := s.Pending; p != nil {
		if src, ok := nodes[p.Source]; ok {
			fx, fy := r.handleCell(s.Viewport, src, p.Side)
			cx, cy := r.Cell(r.screen(s.Viewport, p.Cursor))
			g.route(fx, fy, cx, cy, dotted)
			g.set(cx, cy, '*')
		}
	}

	for _, n := range s.Nodes {
		r.drawNode(g, s.Viewport, n, n.ID == s.Selection)
	}

	if p := s.Pending; p != nil {
		if src, ok := nodes[p.Source]; ok {
			x, y := r.handleCell(s.Viewport, src, p.Side)
			g.set(x, y, '@')
		}
	}

	return g.lines()
}

func (r *Renderer) screen(v whiteboard.Viewport, p geometry.Point) geometry.Point {
	return geometry.CanvasToScreen(p, geometry.Point{}, v.Pan, v.Zoom)
}

func (r *Renderer) handleCell(v whiteboard.Viewport, n graph.Node, side graph.Side) (int, int) {
	return r.Cell(r.screen(v, r.bounds.Handle(n.Position, side == graph.SideLeft)))
}

// nodeBox returns the inclusive cell rectangle a node occupies. Handles sit
// on its left and right borders.
func (r *Renderer) nodeBox(v whiteboard.Viewport, n graph.Node) (x0, y0, x1, y1 int) {
	x0, y0 = r.Cell(r.screen(v, n.Position))
	x1, y1 = r.Cell(r.screen(v, n.Position.Add(geometry.Pt(r.bounds.NodeW, r.bounds.NodeH))))
	if x1 < x0+2 {
		x1 = x0 + 2
	}
	if y1 < y0+2 {
		y1 = y0 + 2
	}
	return x0, y0, x1, y1
}

func (r *Renderer) drawNode(g grid, v whiteboard.Viewport, n graph.Node, selected bool) {
	x0, y0, x1, y1 := r.nodeBox(v, n)

	corner, horizontal, vertical := '+', '-', '|'
	if selected {
		corner, horizontal, vertical = '#', '#', '#'
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			switch {
			case (y == y0 || y == y1) && (x == x0 || x == x1):
				g.set(x, y, corner)
			case y == y0 || y == y1:
				g.set(x, y, horizontal)
			case x == x0 || x == x1:
				g.set(x, y, vertical)
			default:
				g.set(x, y, ' ')
			}
		}
	}

	_, hy := r.handleCell(v, n, graph.SideLeft)
	g.set(x0, hy, 'o')
	g.set(x1, hy, 'o')

	lines := []string{
		n.Label,
		n.Category,
		"in: " + strings.Join(n.Inputs, ", "),
		"out: " + strings.Join(n.Outputs, ", "),
		fmt.Sprintf("impact %.0f", n.ImpactScore),
	}
	width := x1 - x0 - 1
	for i, line := range lines {
		y := y0 + 1 + i
		if y >= y1 {
			break
		}
		g.text(x0+1, y, truncate(line, width))
	}
}

func edgeText(e graph.Edge) string {
	return fmt.Sprintf("%s %g %s", e.Material, e.Quantity, e.Unit)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(rs[:n-1]) + "…"
}
