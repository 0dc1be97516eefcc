package whiteboard

import (
	"mineflow/internal/geometry"
	"mineflow/internal/graph"
)

// PendingEdge is an armed connection, for drawing the rubber band from the
// source handle to the cursor.
type PendingEdge struct {
	Source string         `json:"source"`
	Side   graph.Side     `json:"side"`
	Cursor geometry.Point `json:"cursor"`
}

// Snapshot is the read model a renderer paints from. It shares no memory
// with the editor.
type Snapshot struct {
	Nodes       []graph.Node `json:"nodes"`
	Edges       []graph.Edge `json:"edges"`
	Viewport    Viewport     `json:"viewport"`
	Selection   string       `json:"selection,omitempty"`
	State       string       `json:"state"`
	ConnectMode bool         `json:"connectMode"`
	Pending     *PendingEdge `json:"pending,omitempty"`
}

func (e *Editor) Snapshot() Snapshot {
	s := Snapshot{
		Nodes:       e.store.Nodes(),
		Edges:       e.store.Edges(),
		Viewport:    e.viewport,
		Selection:   e.selected,
		State:       e.state.Name(),
		ConnectMode: e.connectMode,
	}

	var c *Connecting
	switch st := e.state.(type) {
	case Connecting:
		c = &st
	case Panning:
		c = st.Resume
	}
	if c != nil {
		s.Pending = &PendingEdge{Source: c.Source, Side: c.Side, Cursor: c.Cursor}
	}
	return s
}

// Node returns the snapshot's copy of node id.
func (s Snapshot) Node(id string) (graph.Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return graph.Node{}, false
}
