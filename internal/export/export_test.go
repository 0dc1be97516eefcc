package export

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mineflow/internal/geometry"
	"mineflow/internal/graph"
	"mineflow/internal/palette"
	"mineflow/internal/whiteboard"
)

var testBounds = geometry.Bounds{CanvasW: 3000, CanvasH: 2000, NodeW: 200, NodeH: 120}

func seedSnapshot() whiteboard.Snapshot {
	seed := graph.DefaultSeed()
	return whiteboard.Snapshot{
		Nodes:    seed.Nodes,
		Edges:    seed.Edges,
		Viewport: whiteboard.DefaultViewport(),
	}
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestFrame(t *testing.T) {
	f, err := frame(seedSnapshot(), testBounds)
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{Min: geometry.Pt(60, 160), W: 980, H: 200}, f)

	_, err = frame(whiteboard.Snapshot{}, testBounds)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestText(t *testing.T) {
	s := seedSnapshot()
	s.Selection = "1"
	s.Pending = &whiteboard.PendingEdge{Source: "1", Side: graph.SideRight, Cursor: geometry.Pt(500, 500)}
	s.Viewport = whiteboard.Viewport{Zoom: 2, Pan: geometry.Pt(-900, 300)}

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, s, testBounds, 10, 20))

	out := buf.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 11)
	assert.True(t, strings.HasPrefix(lines[2], "    +-------------------+"), lines[2])
	assert.Contains(t, out, "|Bauxite Mining")
	assert.Contains(t, out, "|Alumina Refining")
	assert.Contains(t, out, "|Aluminum Smelting")
	assert.Equal(t, 2, strings.Count(out, "▶"))
	assert.NotContains(t, out, "#", "selection is not exported")
	assert.NotContains(t, out, "@", "pending connection is not exported")
	for _, l := range lines {
		assert.Equal(t, strings.TrimRight(l, " "), l)
	}
}

func TestTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Text(&buf, whiteboard.Snapshot{}, testBounds, 10, 20), ErrEmpty)
	assert.Zero(t, buf.Len())
}

func TestTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagram.txt")
	require.NoError(t, TextFile(path, seedSnapshot(), testBounds, 10, 20))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Bauxite Mining")
}

func TestImage(t *testing.T) {
	catalog, err := palette.Default()
	require.NoError(t, err)

	img, err := Image(seedSnapshot(), testBounds, catalog)
	require.NoError(t, err)

	assert.Equal(t, 980, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	assert.Equal(t, rgba(color.White), rgba(img.At(2, 2)))
	// node 1 header, canvas (104,202)
	assert.Equal(t, Tone("amber"), rgba(img.At(44, 42)))
	// node 1 impact bar, score 72
	assert.Equal(t, Tone("red"), rgba(img.At(50, 158)))
}

func TestImageWithoutCatalog(t *testing.T) {
	img, err := Image(seedSnapshot(), testBounds, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultTone, rgba(img.At(44, 42)))
}

func TestPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagram.png")
	require.NoError(t, PNG(path, seedSnapshot(), testBounds, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 980, img.Bounds().Dx())

	assert.ErrorIs(t, PNG(path, whiteboard.Snapshot{}, testBounds, nil), ErrEmpty)
}

func TestTone(t *testing.T) {
	assert.Equal(t, color.RGBA{0x3b, 0x82, 0xf6, 0xff}, Tone("blue"))
	assert.Equal(t, defaultTone, Tone("ultraviolet"))
	assert.Equal(t, Tone("green"), impactTone(10))
	assert.Equal(t, Tone("amber"), impactTone(50))
	assert.Equal(t, Tone("red"), impactTone(90))
}
