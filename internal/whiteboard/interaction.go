package whiteboard

import (
	"errors"

	"go.uber.org/zap"

	"mineflow/internal/geometry"
	"mineflow/internal/graph"
)

// State is the interaction state. Exactly one of Idle, Panning, Dragging or
// Connecting is active.
type State interface {
	Name() string
	isState()
}

// Idle waits for the next pointer-down.
type Idle struct{}

// Panning follows the pointer and shifts the viewport. Resume holds a
// connection that was armed when the pan started; it is restored on release.
type Panning struct {
	Last   geometry.Point // screen
	Resume *Connecting
}

// Dragging moves NodeID so that it keeps Grab, the canvas offset between the
// pointer and the node's top-left corner at grab time.
type Dragging struct {
	NodeID string
	Grab   geometry.Point
}

// Connecting has a source picked and waits for a click on a target. Cursor
// is the last pointer position in canvas space for rubber-band feedback.
type Connecting struct {
	Source string
	Side   graph.Side
	Cursor geometry.Point
}

func (Idle) Name() string       { return "idle" }
func (Panning) Name() string    { return "panning" }
func (Dragging) Name() string   { return "dragging" }
func (Connecting) Name() string { return "connecting" }

func (Idle) isState()       {}
func (Panning) isState()    {}
func (Dragging) isState()   {}
func (Connecting) isState() {}

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// PointerEvent is a pointer press in screen coordinates.
type PointerEvent struct {
	Pos    geometry.Point
	Button Button
}

func (e *Editor) State() State {
	return e.state
}

func (e *Editor) ConnectMode() bool {
	return e.connectMode
}

// ToggleConnectMode flips connect mode. Turning it off abandons an armed
// connection.
func (e *Editor) ToggleConnectMode() {
	if !e.connectMode {
		e.connectMode = true
		return
	}
	e.CancelConnection()
}

// CancelConnection leaves connect mode and abandons an armed connection,
// including one held across a pan.
func (e *Editor) CancelConnection() {
	e.connectMode = false
	switch s := e.state.(type) {
	case Connecting:
		e.state = Idle{}
	case Panning:
		s.Resume = nil
		e.state = s
	}
}

// PointerDown starts a gesture. A press while a pan or drag is already in
// progress is ignored.
func (e *Editor) PointerDown(ev PointerEvent) {
	switch e.state.(type) {
	case Panning, Dragging:
		return
	}

	if ev.Button == ButtonMiddle {
		e.startPan(ev.Pos)
		return
	}
	if ev.Button != ButtonLeft {
		return
	}

	at := e.ToCanvas(ev.Pos)
	hit := e.HitTest(at)
	_, armed := e.state.(Connecting)

	switch {
	case hit.Kind == HitNone:
		e.startPan(ev.Pos)
	case hit.Kind == HitHandle:
		e.ConnectClick(hit.NodeID, hit.Side)
	case e.connectMode || armed:
		side := graph.SideRight
		if armed {
			side = graph.SideLeft
		}
		e.ConnectClick(hit.NodeID, side)
	default:
		e.startDrag(hit.NodeID, at)
	}
	e.trackCursor(at)
}

// PointerMove advances the active gesture. Without a pan or drag in progress
// it only updates the rubber-band cursor of an armed connection.
func (e *Editor) PointerMove(pos geometry.Point) {
	switch s := e.state.(type) {
	case Panning:
		e.viewport.Pan = e.viewport.Pan.Add(pos.Sub(s.Last))
		s.Last = pos
		e.state = s
	case Dragging:
		if _, ok := e.store.Node(s.NodeID); !ok {
			e.log.Debug("drag target vanished", zap.String("node", s.NodeID))
			e.state = Idle{}
			return
		}
		p := e.ToCanvas(pos).Sub(s.Grab)
		_ = e.UpdateNode(s.NodeID, graph.Patch{Position: &p})
		return
	}
	e.trackCursor(e.ToCanvas(pos))
}

// PointerUp ends a pan or drag. An armed connection stays armed.
func (e *Editor) PointerUp(geometry.Point) {
	e.release()
}

// PointerLeave behaves like PointerUp.
func (e *Editor) PointerLeave() {
	e.release()
}

// Wheel zooms by one step around the pointer: negative deltaY zooms in,
// positive zooms out.
func (e *Editor) Wheel(pos geometry.Point, deltaY float64) {
	switch {
	case deltaY < 0:
		e.Zoom(e.zoomStep, pos)
	case deltaY > 0:
		e.Zoom(-e.zoomStep, pos)
	}
}

// ConnectClick is one click of the two-click connect gesture on node id. The
// first click arms a connection from id; a click on another node commits the
// edge and leaves connect mode. Clicking the source again does nothing. If
// either end no longer exists the connection is abandoned.
func (e *Editor) ConnectClick(id string, side graph.Side) {
	c, armed := e.state.(Connecting)
	if !armed {
		if _, ok := e.store.Node(id); !ok {
			e.log.Debug("connect source missing", zap.String("node", id))
			return
		}
		e.state = Connecting{Source: id, Side: side}
		return
	}
	if id == c.Source {
		return
	}

	_, err := e.AddEdge(c.Source, id, c.Side, side)
	if err != nil && !errors.Is(err, graph.ErrNodeNotFound) {
		return
	}
	e.state = Idle{}
	e.connectMode = false
}

func (e *Editor) startPan(pos geometry.Point) {
	p := Panning{Last: pos}
	if c, ok := e.state.(Connecting); ok {
		p.Resume = &c
	}
	e.state = p
}

func (e *Editor) startDrag(id string, at geometry.Point) {
	n, ok := e.store.Node(id)
	if !ok {
		return
	}
	e.selected = id
	e.state = Dragging{NodeID: id, Grab: at.Sub(n.Position)}
}

func (e *Editor) release() {
	switch s := e.state.(type) {
	case Panning:
		if s.Resume != nil {
			e.state = *s.Resume
			return
		}
		e.state = Idle{}
	case Dragging:
		e.state = Idle{}
	}
}

func (e *Editor) trackCursor(at geometry.Point) {
	switch s := e.state.(type) {
	case Connecting:
		s.Cursor = at
		e.state = s
	case Panning:
		if s.Resume != nil {
			r := *s.Resume
			r.Cursor = at
			s.Resume = &r
			e.state = s
		}
	}
}
