package export

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"mineflow/internal/geometry"
	"mineflow/internal/graph"
	"mineflow/internal/palette"
	"mineflow/internal/whiteboard"
)

const (
	headerHeight = 24.0
	lineHeight   = 16.0
	handleSize   = 4.0
)

var (
	inkColor    = color.RGBA{0x1f, 0x29, 0x37, 0xff}
	edgeColor   = color.RGBA{0x4b, 0x55, 0x63, 0xff}
	paperColor  = color.White
	defaultTone = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
)

// tones maps catalog colour tokens to header colours.
var tones = map[string]color.RGBA{
	"amber":  {0xf5, 0x9e, 0x0b, 0xff},
	"blue":   {0x3b, 0x82, 0xf6, 0xff},
	"gray":   {0x9c, 0xa3, 0xaf, 0xff},
	"green":  {0x22, 0xc5, 0x5e, 0xff},
	"red":    {0xef, 0x44, 0x44, 0xff},
	"yellow": {0xea, 0xb3, 0x08, 0xff},
}

// Tone returns the colour for a catalog colour token.
func Tone(token string) color.RGBA {
	if c, ok := tones[token]; ok {
		return c
	}
	return defaultTone
}

// impactTone grades an impact score from green to red.
func impactTone(score float64) color.RGBA {
	switch {
	case score < 34:
		return tones["green"]
	case score < 67:
		return tones["amber"]
	default:
		return tones["red"]
	}
}

// Image draws the diagram at canvas scale, framed to its content. catalog
// supplies node colours and may be nil.
func Image(s whiteboard.Snapshot, b geometry.Bounds, catalog *palette.Catalog) (image.Image, error) {
	f, err := frame(s, b)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(int(math.Ceil(f.W)), int(math.Ceil(f.H)))
	dc.SetColor(paperColor)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	dc.Translate(-f.Min.X, -f.Min.Y)

	nodes := make(map[string]graph.Node, len(s.Nodes))
	for _, n := range s.Nodes {
		nodes[n.ID] = n
	}

	// Edges first so nodes paint over their ends.
	for _, e := range s.Edges {
		from, ok1 := nodes[e.From]
		to, ok2 := nodes[e.To]
		if !ok1 || !ok2 {
			continue
		}
		drawEdgePNG(dc, b, from, to, e)
	}

	for _, n := range s.Nodes {
		tone := defaultTone
		if catalog != nil {
			if d, _, ok := catalog.Lookup(n.Type); ok {
				tone = Tone(d.ColorToken)
			}
		}
		drawNodePNG(dc, b, n, tone)
	}

	return dc.Image(), nil
}

// PNG renders the diagram and saves it to filename.
func PNG(filename string, s whiteboard.Snapshot, b geometry.Bounds, catalog *palette.Catalog) error {
	img, err := Image(s, b, catalog)
	if err != nil {
		return err
	}
	return gg.SavePNG(filename, img)
}

func drawNodePNG(dc *gg.Context, b geometry.Bounds, n graph.Node, tone color.RGBA) {
	x, y := n.Position.X, n.Position.Y
	w, h := b.NodeW, b.NodeH

	dc.SetColor(paperColor)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()

	dc.SetColor(tone)
	dc.DrawRectangle(x, y, w, headerHeight)
	dc.Fill()

	// impact bar along the bottom edge
	dc.SetColor(impactTone(n.ImpactScore))
	dc.DrawRectangle(x, y+h-4, w*n.ImpactScore/100, 4)
	dc.Fill()

	dc.SetLineWidth(1.5)
	dc.SetColor(inkColor)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()

	dc.DrawString(n.Label, x+8, y+17)
	lines := []string{
		n.Category + fmt.Sprintf("  impact %.0f", n.ImpactScore),
		"in:  " + strings.Join(n.Inputs, ", "),
		"out: " + strings.Join(n.Outputs, ", "),
	}
	for i, line := range lines {
		ty := y + headerHeight + lineHeight*float64(i+1)
		if ty > y+h-6 {
			break
		}
		dc.DrawString(fitString(dc, line, w-16), x+8, ty)
	}

	for _, left := range []bool{true, false} {
		p := b.Handle(n.Position, left)
		dc.DrawCircle(p.X, p.Y, handleSize)
		dc.Fill()
	}
}

// drawEdgePNG draws a flow as a cubic curve leaving and entering each handle
// horizontally, with an arrowhead and its material label.
func drawEdgePNG(dc *gg.Context, b geometry.Bounds, from, to graph.Node, e graph.Edge) {
	p0 := b.Handle(from.Position, e.FromSide == graph.SideLeft)
	p3 := b.Handle(to.Position, e.ToSide == graph.SideLeft)

	reach := math.Max(40, math.Abs(p3.X-p0.X)/2)
	c1 := p0.Add(geometry.Pt(sideDir(e.FromSide)*reach, 0))
	c2 := p3.Add(geometry.Pt(sideDir(e.ToSide)*reach, 0))

	dc.SetLineWidth(2)
	dc.SetColor(edgeColor)
	dc.MoveTo(p0.X, p0.Y)
	dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p3.X, p3.Y)
	dc.Stroke()

	drawArrowPNG(dc, c2, p3)

	mid := p0.Scale(0.125).Add(c1.Scale(0.375)).Add(c2.Scale(0.375)).Add(p3.Scale(0.125))
	dc.SetColor(inkColor)
	dc.DrawStringAnchored(fmt.Sprintf("%s %g %s", e.Material, e.Quantity, e.Unit), mid.X, mid.Y-10, 0.5, 0.5)
}

func sideDir(s graph.Side) float64 {
	if s == graph.SideLeft {
		return -1
	}
	return 1
}

func drawArrowPNG(dc *gg.Context, from, to geometry.Point) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	const (
		arrowSize  = 10.0
		arrowAngle = 0.5
	)

	dc.MoveTo(to.X, to.Y)
	dc.LineTo(to.X-arrowSize*dx+arrowSize*dy*arrowAngle, to.Y-arrowSize*dy-arrowSize*dx*arrowAngle)
	dc.LineTo(to.X-arrowSize*dx-arrowSize*dy*arrowAngle, to.Y-arrowSize*dy+arrowSize*dx*arrowAngle)
	dc.ClosePath()
	dc.Fill()
}

// fitString trims s with an ellipsis until it fits in width pixels.
func fitString(dc *gg.Context, s string, width float64) string {
	if w, _ := dc.MeasureString(s); w <= width {
		return s
	}
	rs := []rune(s)
	for len(rs) > 0 {
		rs = rs[:len(rs)-1]
		out := string(rs) + "…"
		if w, _ := dc.MeasureString(out); w <= width {
			return out
		}
	}
	return ""
}
