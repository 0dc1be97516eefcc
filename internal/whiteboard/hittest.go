package whiteboard

import (
	"mineflow/internal/geometry"
	"mineflow/internal/graph"
)

type HitKind int

const (
	HitNone HitKind = iota
	HitBody
	HitHandle
)

// Hit is what lies under a canvas point.
type Hit struct {
	Kind   HitKind
	NodeID string
	Side   graph.Side // set for HitHandle
}

// HitTest finds the topmost node under a canvas point. A node's connector
// handles win over its body, and handles keep a constant on-screen radius
// whatever the zoom.
func (e *Editor) HitTest(at geometry.Point) Hit {
	b := e.Bounds()
	radius := e.handleRadius / e.viewport.Zoom

	nodes := e.store.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if geometry.Distance(at, b.Handle(n.Position, true)) <= radius {
			return Hit{Kind: HitHandle, NodeID: n.ID, Side: graph.SideLeft}
		}
		if geometry.Distance(at, b.Handle(n.Position, false)) <= radius {
			return Hit{Kind: HitHandle, NodeID: n.ID, Side: graph.SideRight}
		}
		if b.NodeRect(n.Position).Contains(at) {
			return Hit{Kind: HitBody, NodeID: n.ID}
		}
	}
	return Hit{}
}
