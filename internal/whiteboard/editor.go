// Package whiteboard is the interactive diagram editor: it owns the viewport,
// the selection and the pointer state machine, and routes every change to the
// graph store. A host feeds it pointer, wheel and key-driven calls and paints
// whatever Snapshot returns.
//
// The editor is single-threaded. Each call runs to completion before the next
// one starts, so it does no locking.
package whiteboard

import (
	"fmt"

	"go.uber.org/zap"

	"mineflow/internal/geometry"
	"mineflow/internal/graph"
)

const (
	defaultHandleRadius = 8
	defaultZoomStep     = 0.1
)

// Viewport maps canvas space to screen space.
type Viewport struct {
	Zoom float64        `json:"zoom"`
	Pan  geometry.Point `json:"panOffset"`
}

// DefaultViewport is the viewport a new or reset editor uses.
func DefaultViewport() Viewport {
	return Viewport{Zoom: 1}
}

// Editor is one whiteboard instance.
type Editor struct {
	store *graph.Store
	log   *zap.Logger

	handleRadius float64 // screen pixels
	zoomStep     float64

	viewport Viewport
	origin   geometry.Point // screen offset of the host surface
	size     geometry.Point // width and height of the host surface

	selected    string
	state       State
	connectMode bool
}

// Option customises an Editor.
type Option func(*Editor)

func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithHandleRadius sets the hit radius of connector handles in screen pixels.
func WithHandleRadius(r float64) Option {
	return func(e *Editor) { e.handleRadius = r }
}

// WithZoomStep sets the zoom delta applied per wheel notch and per
// ZoomIn/ZoomOut call.
func WithZoomStep(step float64) Option {
	return func(e *Editor) { e.zoomStep = step }
}

// New creates an editor over store. The store is reset to its seed graph.
func New(store *graph.Store, opts ...Option) *Editor {
	e := &Editor{
		store:        store,
		log:          zap.NewNop(),
		handleRadius: defaultHandleRadius,
		zoomStep:     defaultZoomStep,
		viewport:     DefaultViewport(),
		state:        Idle{},
	}
	for _, opt := range opts {
		opt(e)
	}
	store.Reset()
	return e
}

// Store exposes the underlying graph store for read access.
func (e *Editor) Store() *graph.Store {
	return e.store
}

func (e *Editor) Bounds() geometry.Bounds {
	return e.store.Bounds()
}

// SetSurface records where the host surface sits on screen and how large it
// is. The origin feeds the screen/canvas transform; the size locates the
// centre used by ZoomIn, ZoomOut and AddNodeAtCenter.
func (e *Editor) SetSurface(origin, size geometry.Point) {
	e.origin = origin
	e.size = size
}

func (e *Editor) Viewport() Viewport {
	return e.viewport
}

// ToCanvas converts a screen point to canvas space under the current viewport.
func (e *Editor) ToCanvas(screen geometry.Point) geometry.Point {
	return geometry.ScreenToCanvas(screen, e.origin, e.viewport.Pan, e.viewport.Zoom)
}

// ToScreen converts a canvas point to screen space under the current viewport.
func (e *Editor) ToScreen(canvas geometry.Point) geometry.Point {
	return geometry.CanvasToScreen(canvas, e.origin, e.viewport.Pan, e.viewport.Zoom)
}

// Pan shifts the viewport by a screen-space delta.
func (e *Editor) Pan(dx, dy float64) {
	e.viewport.Pan = e.viewport.Pan.Add(geometry.Pt(dx, dy))
}

// Zoom changes the zoom by delta, keeping the canvas point under anchor (a
// screen point) in place.
func (e *Editor) Zoom(delta float64, anchor geometry.Point) {
	e.viewport.Pan, e.viewport.Zoom = geometry.ZoomAt(anchor.Sub(e.origin), delta, e.viewport.Pan, e.viewport.Zoom)
}

func (e *Editor) ZoomIn() {
	e.Zoom(e.zoomStep, e.center())
}

func (e *Editor) ZoomOut() {
	e.Zoom(-e.zoomStep, e.center())
}

func (e *Editor) center() geometry.Point {
	return e.origin.Add(e.size.Scale(0.5))
}

// AddNode instantiates a palette type with its top-left corner at pos in
// canvas space.
func (e *Editor) AddNode(typ string, pos geometry.Point) (string, error) {
	id, err := e.store.AddNode(typ, pos)
	if err != nil {
		return "", e.reject("add node", err)
	}
	e.log.Debug("node added", zap.String("node", id), zap.String("type", typ))
	return id, nil
}

// DropNode places a palette type dropped at a screen point.
func (e *Editor) DropNode(typ string, screen geometry.Point) (string, error) {
	return e.AddNode(typ, e.ToCanvas(screen))
}

// AddNodeAtCenter places a palette type centred in the visible surface.
func (e *Editor) AddNodeAtCenter(typ string) (string, error) {
	b := e.Bounds()
	pos := e.ToCanvas(e.center()).Sub(geometry.Pt(b.NodeW/2, b.NodeH/2))
	return e.AddNode(typ, pos)
}

func (e *Editor) UpdateNode(id string, patch graph.Patch) error {
	if err := e.store.UpdateNode(id, patch); err != nil {
		return e.reject("update node", err)
	}
	return nil
}

// DeleteNode removes a user-created node and its edges. A selection or
// gesture that referred to the node is dropped with it.
func (e *Editor) DeleteNode(id string) error {
	if err := e.store.DeleteNode(id); err != nil {
		return e.reject("delete node", err)
	}
	if e.selected == id {
		e.selected = ""
	}
	switch s := e.state.(type) {
	case Dragging:
		if s.NodeID == id {
			e.state = Idle{}
		}
	case Connecting:
		if s.Source == id {
			e.state = Idle{}
		}
	case Panning:
		if s.Resume != nil && s.Resume.Source == id {
			s.Resume = nil
			e.state = s
		}
	}
	e.log.Debug("node deleted", zap.String("node", id))
	return nil
}

func (e *Editor) AddEdge(from, to string, fromSide, toSide graph.Side) (string, error) {
	id, err := e.store.AddEdge(from, to, fromSide, toSide)
	if err != nil {
		return "", e.reject("add edge", err)
	}
	e.log.Debug("edge added", zap.String("edge", id), zap.String("from", from), zap.String("to", to))
	return id, nil
}

func (e *Editor) DeleteEdge(id string) error {
	if err := e.store.DeleteEdge(id); err != nil {
		return e.reject("delete edge", err)
	}
	return nil
}

// Select makes id the single selected node.
func (e *Editor) Select(id string) error {
	if _, ok := e.store.Node(id); !ok {
		return e.reject("select", fmt.Errorf("select %q: %w", id, graph.ErrNodeNotFound))
	}
	e.selected = id
	return nil
}

func (e *Editor) ClearSelection() {
	e.selected = ""
}

// Selected returns the selected node id, if any.
func (e *Editor) Selected() (string, bool) {
	return e.selected, e.selected != ""
}

// SelectedNode returns a copy of the selected node for an inspector panel.
func (e *Editor) SelectedNode() (graph.Node, bool) {
	if e.selected == "" {
		return graph.Node{}, false
	}
	return e.store.Node(e.selected)
}

// Reset restores the seed graph and the default viewport together, clears the
// selection and abandons any gesture.
func (e *Editor) Reset() {
	e.store.Reset()
	e.viewport = DefaultViewport()
	e.selected = ""
	e.state = Idle{}
	e.connectMode = false
	e.log.Debug("whiteboard reset")
}

// reject logs a refused mutation and hands the error back. The UI treats it
// as a no-op.
func (e *Editor) reject(op string, err error) error {
	e.log.Debug("rejected", zap.String("op", op), zap.Error(err))
	return err
}
