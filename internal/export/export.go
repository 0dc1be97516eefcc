// Package export writes a whiteboard diagram to PNG or plain text.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"mineflow/internal/geometry"
	"mineflow/internal/render"
	"mineflow/internal/whiteboard"
)

// ErrEmpty is returned when there are no nodes to export.
var ErrEmpty = errors.New("nothing to export")

// padding around the diagram, in canvas pixels.
const padding = 40.0

// frame returns the padded canvas-space rectangle covering every node.
func frame(s whiteboard.Snapshot, b geometry.Bounds) (geometry.Rect, error) {
	if len(s.Nodes) == 0 {
		return geometry.Rect{}, ErrEmpty
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range s.Nodes {
		minX = math.Min(minX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxX = math.Max(maxX, n.Position.X+b.NodeW)
		maxY = math.Max(maxY, n.Position.Y+b.NodeH)
	}

	return geometry.Rect{
		Min: geometry.Pt(minX-padding, minY-padding),
		W:   maxX - minX + 2*padding,
		H:   maxY - minY + 2*padding,
	}, nil
}

// Text writes the whole diagram as terminal-style text at zoom 1, framed to
// its content. Selection and any pending connection are left out.
func Text(w io.Writer, s whiteboard.Snapshot, b geometry.Bounds, cellW, cellH float64) error {
	f, err := frame(s, b)
	if err != nil {
		return err
	}

	s.Viewport = whiteboard.Viewport{Zoom: 1, Pan: f.Min.Scale(-1)}
	s.Selection = ""
	s.Pending = nil

	cols := int(math.Ceil(f.W/cellW)) + 1
	rows := int(math.Ceil(f.H/cellH)) + 1
	for _, line := range render.New(b, cellW, cellH).Render(s, cols, rows) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// TextFile writes Text output to filename.
func TextFile(filename string, s whiteboard.Snapshot, b geometry.Bounds, cellW, cellH float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return Text(file, s, b, cellW, cellH)
}
