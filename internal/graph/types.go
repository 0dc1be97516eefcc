package graph

import "mineflow/internal/geometry"

// Side is the side of a node an edge leaves or enters. It is a hint for the
// renderer only.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Node is a process step placed on the canvas. Position is the top-left
// corner in canvas space. Category is copied from the palette when the node
// is created and does not follow later catalog changes.
type Node struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Label       string         `json:"label"`
	Position    geometry.Point `json:"position"`
	Inputs      []string       `json:"inputs"`
	Outputs     []string       `json:"outputs"`
	ImpactScore float64        `json:"impactScore"`
	Category    string         `json:"category"`
}

func (n Node) clone() Node {
	n.Inputs = append([]string{}, n.Inputs...)
	n.Outputs = append([]string{}, n.Outputs...)
	return n
}

// Edge is a directed material or energy flow between two nodes.
type Edge struct {
	ID       string  `json:"id"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	FromSide Side    `json:"fromSide"`
	ToSide   Side    `json:"toSide"`
	Material string  `json:"material"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Touches reports whether the edge starts or ends at node id.
func (e Edge) Touches(id string) bool {
	return e.From == id || e.To == id
}

// EdgeSpec describes an edge to create. Empty payload fields and a nil
// Quantity get the defaults used for edges drawn by hand.
type EdgeSpec struct {
	From, To         string
	FromSide, ToSide Side
	Material         string
	Quantity         *float64
	Unit             string
}

// Patch is a partial node update. Nil fields are left alone; a non-nil empty
// slice clears Inputs or Outputs.
type Patch struct {
	Label    *string
	Position *geometry.Point
	Inputs   []string
	Outputs  []string
	Category *string
}

// Graph is a deep copy of the store's nodes and edges.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
