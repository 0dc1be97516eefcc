// Package graph is the authoritative store of whiteboard nodes and edges.
//
// The store keeps two structural invariants: no edge references a missing
// node, and seed nodes and edges survive everything except Reset. Rejected
// operations return an error and leave the store untouched.
package graph

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"mineflow/internal/geometry"
	"mineflow/internal/palette"
)

const (
	defaultInput    = "Input 1"
	defaultOutput   = "Output 1"
	defaultMaterial = "Material flow"
	defaultQuantity = 1
	defaultUnit     = "t"

	maxIDAttempts = 64
)

// Store owns the node and edge collections. It is not safe for concurrent
// use; the editor drives it from a single event loop.
type Store struct {
	catalog *palette.Catalog
	bounds  geometry.Bounds

	nodes []Node // slice order is paint order, last on top
	edges []Edge

	seed      Graph
	seedNodes map[string]bool
	seedEdges map[string]bool

	newID  func() string
	impact func() float64
}

// Option customises a Store.
type Option func(*Store)

// WithSeed replaces the default seed graph.
func WithSeed(g Graph) Option {
	return func(s *Store) { s.seed = g.Clone() }
}

// WithIDs sets the id generator for user-created nodes and edges.
func WithIDs(next func() string) Option {
	return func(s *Store) { s.newID = next }
}

// WithImpact sets the impact score generator for new nodes. Values are
// clamped to [0, 100].
func WithImpact(next func() float64) Option {
	return func(s *Store) { s.impact = next }
}

// NewStore creates a store populated with the seed graph.
func NewStore(catalog *palette.Catalog, bounds geometry.Bounds, opts ...Option) *Store {
	s := &Store{
		catalog: catalog,
		bounds:  bounds,
		seed:    DefaultSeed(),
		newID:   uuid.NewString,
		impact:  func() float64 { return float64(rand.IntN(101)) },
	}
	for _, opt := range opts {
		opt(s)
	}

	s.seedNodes = make(map[string]bool, len(s.seed.Nodes))
	for _, n := range s.seed.Nodes {
		s.seedNodes[n.ID] = true
	}
	s.seedEdges = make(map[string]bool, len(s.seed.Edges))
	for _, e := range s.seed.Edges {
		s.seedEdges[e.ID] = true
	}

	s.Reset()
	return s
}

// Bounds returns the placement bounds positions are clamped to.
func (s *Store) Bounds() geometry.Bounds {
	return s.bounds
}

// Catalog returns the palette the store instantiates nodes from.
func (s *Store) Catalog() *palette.Catalog {
	return s.catalog
}

// AddNode instantiates a palette type at pos and returns the new node's id.
func (s *Store) AddNode(typ string, pos geometry.Point) (string, error) {
	desc, category, ok := s.catalog.Lookup(typ)
	if !ok {
		return "", fmt.Errorf("add node %q: %w", typ, ErrUnknownNodeType)
	}

	score := s.impact()
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	node := Node{
		ID:          s.freshID(),
		Type:        desc.Type,
		Label:       desc.Label,
		Position:    s.bounds.Clamp(pos),
		Inputs:      []string{defaultInput},
		Outputs:     []string{defaultOutput},
		ImpactScore: score,
		Category:    category,
	}
	s.nodes = append(s.nodes, node)
	return node.ID, nil
}

// UpdateNode applies a partial update. Positions are clamped.
func (s *Store) UpdateNode(id string, patch Patch) error {
	i := s.nodeIndex(id)
	if i < 0 {
		return fmt.Errorf("update node %q: %w", id, ErrNodeNotFound)
	}

	node := &s.nodes[i]
	if patch.Label != nil {
		node.Label = *patch.Label
	}
	if patch.Position != nil {
		node.Position = s.bounds.Clamp(*patch.Position)
	}
	if patch.Inputs != nil {
		node.Inputs = append([]string{}, patch.Inputs...)
	}
	if patch.Outputs != nil {
		node.Outputs = append([]string{}, patch.Outputs...)
	}
	if patch.Category != nil {
		node.Category = *patch.Category
	}
	return nil
}

// DeleteNode removes a user-created node together with every edge that
// starts or ends at it.
func (s *Store) DeleteNode(id string) error {
	if s.seedNodes[id] {
		return fmt.Errorf("delete node %q: %w", id, ErrProtectedNode)
	}
	i := s.nodeIndex(id)
	if i < 0 {
		return fmt.Errorf("delete node %q: %w", id, ErrNodeNotFound)
	}

	s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)

	remaining := make([]Edge, 0, len(s.edges))
	for _, e := range s.edges {
		if !e.Touches(id) {
			remaining = append(remaining, e)
		}
	}
	s.edges = remaining
	return nil
}

// AddEdge connects from -> to with the default flow payload. Duplicate edges
// between the same pair are allowed.
func (s *Store) AddEdge(from, to string, fromSide, toSide Side) (string, error) {
	return s.AddEdgeWith(EdgeSpec{From: from, To: to, FromSide: fromSide, ToSide: toSide})
}

// AddEdgeWith creates an edge with an explicit payload.
func (s *Store) AddEdgeWith(spec EdgeSpec) (string, error) {
	if spec.From == spec.To {
		return "", fmt.Errorf("add edge %q -> %q: %w", spec.From, spec.To, ErrSelfConnection)
	}
	for _, id := range []string{spec.From, spec.To} {
		if s.nodeIndex(id) < 0 {
			return "", fmt.Errorf("add edge %q -> %q: endpoint %q: %w", spec.From, spec.To, id, ErrNodeNotFound)
		}
	}

	edge := Edge{
		ID:       s.freshID(),
		From:     spec.From,
		To:       spec.To,
		FromSide: spec.FromSide,
		ToSide:   spec.ToSide,
		Material: spec.Material,
		Quantity: defaultQuantity,
		Unit:     spec.Unit,
	}
	if edge.FromSide == "" {
		edge.FromSide = SideRight
	}
	if edge.ToSide == "" {
		edge.ToSide = SideLeft
	}
	if edge.Material == "" {
		edge.Material = defaultMaterial
	}
	if spec.Quantity != nil {
		edge.Quantity = *spec.Quantity
	}
	if edge.Unit == "" {
		edge.Unit = defaultUnit
	}

	s.edges = append(s.edges, edge)
	return edge.ID, nil
}

// DeleteEdge removes a user-created edge.
func (s *Store) DeleteEdge(id string) error {
	if s.seedEdges[id] {
		return fmt.Errorf("delete edge %q: %w", id, ErrProtectedEdge)
	}
	for i, e := range s.edges {
		if e.ID == id {
			s.edges = append(s.edges[:i], s.edges[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete edge %q: %w", id, ErrEdgeNotFound)
}

// Reset replaces everything with a fresh copy of the seed graph.
func (s *Store) Reset() {
	g := s.seed.Clone()
	s.nodes = g.Nodes
	s.edges = g.Edges
}

// Seed returns a copy of the seed snapshot.
func (s *Store) Seed() Graph {
	return s.seed.Clone()
}

func (s *Store) IsSeedNode(id string) bool {
	return s.seedNodes[id]
}

func (s *Store) IsSeedEdge(id string) bool {
	return s.seedEdges[id]
}

// Node returns a copy of the node with the given id.
func (s *Store) Node(id string) (Node, bool) {
	i := s.nodeIndex(id)
	if i < 0 {
		return Node{}, false
	}
	return s.nodes[i].clone(), true
}

// Nodes returns copies of all nodes in paint order.
func (s *Store) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = n.clone()
	}
	return out
}

// Edges returns a copy of all edges in creation order.
func (s *Store) Edges() []Edge {
	return append([]Edge{}, s.edges...)
}

// EdgesOf returns the edges that start or end at node id.
func (s *Store) EdgesOf(id string) []Edge {
	var out []Edge
	for _, e := range s.edges {
		if e.Touches(id) {
			out = append(out, e)
		}
	}
	return out
}

// Graph returns a deep copy of the current nodes and edges.
func (s *Store) Graph() Graph {
	return Graph{Nodes: s.Nodes(), Edges: s.Edges()}
}

func (s *Store) nodeIndex(id string) int {
	for i := range s.nodes {
		if s.nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// freshID draws ids until one collides with no live or seed element. A
// generator that keeps returning taken ids is abandoned for random UUIDs.
func (s *Store) freshID() string {
	next := s.newID
	for i := 0; ; i++ {
		if i == maxIDAttempts {
			next = uuid.NewString
		}
		id := next()
		if id != "" && !s.seedNodes[id] && !s.seedEdges[id] && s.nodeIndex(id) < 0 && !s.hasEdge(id) {
			return id
		}
	}
}

func (s *Store) hasEdge(id string) bool {
	for _, e := range s.edges {
		if e.ID == id {
			return true
		}
	}
	return false
}
