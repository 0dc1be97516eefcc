package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mineflow/internal/geometry"
	"mineflow/internal/palette"
)

var testBounds = geometry.Bounds{CanvasW: 3000, CanvasH: 2000, NodeW: 200, NodeH: 120}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	catalog, err := palette.Default()
	require.NoError(t, err)

	n := 0
	base := []Option{
		WithIDs(func() string {
			n++
			return fmt.Sprintf("u%d", n)
		}),
		WithImpact(func() float64 { return 42 }),
	}
	return NewStore(catalog, testBounds, append(base, opts...)...)
}

func TestNewStoreStartsFromSeed(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, DefaultSeed(), s.Graph())
	assert.Len(t, s.Nodes(), 3)
	assert.Len(t, s.Edges(), 2)
	assert.True(t, s.IsSeedNode("1"))
	assert.True(t, s.IsSeedEdge("e2"))
	assert.False(t, s.IsSeedNode("e1"))
}

func TestAddNode(t *testing.T) {
	s := newTestStore(t)

	id, err := s.AddNode("grid_electricity", geometry.Pt(1000, 1000))
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	n, ok := s.Node(id)
	require.True(t, ok)
	assert.Equal(t, "grid_electricity", n.Type)
	assert.Equal(t, "Grid Electricity", n.Label)
	assert.Equal(t, "Energy", n.Category)
	assert.Equal(t, []string{"Input 1"}, n.Inputs)
	assert.Equal(t, []string{"Output 1"}, n.Outputs)
	assert.Equal(t, 42.0, n.ImpactScore)
	assert.Equal(t, geometry.Pt(1000, 1000), n.Position)
}

func TestAddNodeClampsPositionAndScore(t *testing.T) {
	s := newTestStore(t, WithImpact(func() float64 { return 140 }))

	id, err := s.AddNode("truck", geometry.Pt(-50, 99999))
	require.NoError(t, err)

	n, _ := s.Node(id)
	assert.Equal(t, geometry.Pt(0, 1880), n.Position)
	assert.Equal(t, 100.0, n.ImpactScore)
}

func TestAddNodeDefaultImpactInRange(t *testing.T) {
	catalog, err := palette.Default()
	require.NoError(t, err)
	s := NewStore(catalog, testBounds)

	for i := 0; i < 50; i++ {
		id, err := s.AddNode("rail", geometry.Pt(10, 10))
		require.NoError(t, err)
		n, _ := s.Node(id)
		assert.GreaterOrEqual(t, n.ImpactScore, 0.0)
		assert.LessOrEqual(t, n.ImpactScore, 100.0)
	}
}

func TestAddNodeUnknownType(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddNode("warp_drive", geometry.Pt(0, 0))
	assert.ErrorIs(t, err, ErrUnknownNodeType)
	assert.Len(t, s.Nodes(), 3)
}

func TestUpdateNode(t *testing.T) {
	s := newTestStore(t)

	label := "Bayer Process"
	category := "Refining"
	pos := geometry.Pt(5000, -3)
	err := s.UpdateNode("2", Patch{
		Label:    &label,
		Position: &pos,
		Inputs:   []string{"Bauxite Ore"},
		Category: &category,
	})
	require.NoError(t, err)

	n, _ := s.Node("2")
	assert.Equal(t, "Bayer Process", n.Label)
	assert.Equal(t, geometry.Pt(2800, 0), n.Position)
	assert.Equal(t, []string{"Bauxite Ore"}, n.Inputs)
	assert.Equal(t, []string{"Alumina", "Red Mud"}, n.Outputs, "outputs were not patched")
	assert.Equal(t, "Refining", n.Category)

	require.NoError(t, s.UpdateNode("2", Patch{Outputs: []string{}}))
	n, _ = s.Node("2")
	assert.Empty(t, n.Outputs)
}

func TestUpdateNodeMissing(t *testing.T) {
	s := newTestStore(t)
	label := "x"

	err := s.UpdateNode("nope", Patch{Label: &label})
	assert.ErrorIs(t, err, ErrNodeNotFound)
	assert.Equal(t, DefaultSeed(), s.Graph())
}

func TestUpdateNodeDoesNotAliasPatch(t *testing.T) {
	s := newTestStore(t)
	inputs := []string{"a", "b"}
	require.NoError(t, s.UpdateNode("1", Patch{Inputs: inputs}))

	inputs[0] = "mutated"
	n, _ := s.Node("1")
	assert.Equal(t, []string{"a", "b"}, n.Inputs)
}

func TestReadersReturnCopies(t *testing.T) {
	s := newTestStore(t)

	n, _ := s.Node("1")
	n.Inputs[0] = "changed"
	nodes := s.Nodes()
	nodes[0].Outputs[0] = "changed"

	assert.Equal(t, DefaultSeed(), s.Graph())
}

func TestDeleteNodeCascades(t *testing.T) {
	s := newTestStore(t)

	a, _ := s.AddNode("diesel", geometry.Pt(0, 0))
	b, _ := s.AddNode("truck", geometry.Pt(300, 0))
	toA, _ := s.AddEdge("1", a, SideRight, SideLeft)
	fromA, _ := s.AddEdge(a, b, SideRight, SideLeft)
	keep, _ := s.AddEdge(b, "3", SideRight, SideLeft)

	require.NoError(t, s.DeleteNode(a))

	_, ok := s.Node(a)
	assert.False(t, ok)

	var ids []string
	for _, e := range s.Edges() {
		ids = append(ids, e.ID)
		assert.False(t, e.Touches(a))
	}
	assert.ElementsMatch(t, []string{"e1", "e2", keep}, ids)
	assert.NotContains(t, ids, toA)
	assert.NotContains(t, ids, fromA)
}

func TestDeleteSeedNodeIsRejected(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []string{"1", "2", "3"} {
		err := s.DeleteNode(id)
		assert.ErrorIs(t, err, ErrProtectedNode)
	}
	assert.Equal(t, DefaultSeed(), s.Graph())
}

func TestDeleteMissingNode(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.DeleteNode("ghost"), ErrNodeNotFound)
	assert.Equal(t, DefaultSeed(), s.Graph())
}

func TestAddEdge(t *testing.T) {
	s := newTestStore(t)

	id, err := s.AddEdge("1", "3", SideRight, SideLeft)
	require.NoError(t, err)

	edges := s.Edges()
	require.Len(t, edges, 3)
	e := edges[2]
	assert.Equal(t, id, e.ID)
	assert.Equal(t, "1", e.From)
	assert.Equal(t, "3", e.To)
	assert.Equal(t, "Material flow", e.Material)
	assert.Equal(t, 1.0, e.Quantity)
	assert.Equal(t, "t", e.Unit)
}

func TestAddEdgeWithPayload(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddEdgeWith(EdgeSpec{From: "3", To: "1", Material: "Scrap", Quantity: quantity(0.2), Unit: "kg"})
	require.NoError(t, err)

	e := s.Edges()[2]
	assert.Equal(t, SideRight, e.FromSide)
	assert.Equal(t, SideLeft, e.ToSide)
	assert.Equal(t, "Scrap", e.Material)
	assert.Equal(t, 0.2, e.Quantity)
	assert.Equal(t, "kg", e.Unit)
}

func TestAddEdgeWithZeroQuantity(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddEdgeWith(EdgeSpec{From: "1", To: "3", Material: "Tailings", Quantity: quantity(0)})
	require.NoError(t, err)
	_, err = s.AddEdgeWith(EdgeSpec{From: "1", To: "3"})
	require.NoError(t, err)

	edges := s.Edges()
	assert.Equal(t, 0.0, edges[2].Quantity)
	assert.Equal(t, 1.0, edges[3].Quantity)
}

func quantity(v float64) *float64 {
	return &v
}

func TestAddEdgeRejections(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddEdge("2", "2", SideRight, SideLeft)
	assert.ErrorIs(t, err, ErrSelfConnection)

	_, err = s.AddEdge("2", "missing", SideRight, SideLeft)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	_, err = s.AddEdge("missing", "2", SideRight, SideLeft)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	assert.Len(t, s.Edges(), 2)
}

func TestDuplicateEdgesAllowed(t *testing.T) {
	s := newTestStore(t)

	first, err := s.AddEdge("1", "2", SideRight, SideLeft)
	require.NoError(t, err)
	second, err := s.AddEdge("1", "2", SideRight, SideLeft)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, s.Edges(), 4)
}

func TestDeleteEdge(t *testing.T) {
	s := newTestStore(t)

	id, _ := s.AddEdge("1", "3", SideRight, SideLeft)
	require.NoError(t, s.DeleteEdge(id))
	assert.Len(t, s.Edges(), 2)

	assert.ErrorIs(t, s.DeleteEdge(id), ErrEdgeNotFound)
	assert.ErrorIs(t, s.DeleteEdge("e1"), ErrProtectedEdge)
	assert.Len(t, s.Edges(), 2)
}

func TestFreshIDSkipsTakenIDs(t *testing.T) {
	ids := []string{"1", "e2", "", "n9"}
	s := newTestStore(t, WithIDs(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	id, err := s.AddNode("slag", geometry.Pt(0, 0))
	require.NoError(t, err)
	assert.Equal(t, "n9", id)
}

func TestFreshIDGivesUpOnStuckGenerator(t *testing.T) {
	calls := 0
	s := newTestStore(t, WithIDs(func() string {
		calls++
		return "1"
	}))

	id, err := s.AddNode("slag", geometry.Pt(0, 0))
	require.NoError(t, err)
	assert.NotEqual(t, "1", id)
	assert.NotEmpty(t, id)
	assert.Equal(t, maxIDAttempts, calls)
}

func TestResetRestoresSeed(t *testing.T) {
	s := newTestStore(t)

	id, _ := s.AddNode("flotation", geometry.Pt(10, 10))
	_, _ = s.AddEdge(id, "1", SideRight, SideLeft)
	label := "renamed"
	_ = s.UpdateNode("1", Patch{Label: &label, Inputs: []string{}})

	s.Reset()
	assert.Equal(t, DefaultSeed(), s.Graph())

	// A second reset after mutating the returned copy must still be clean.
	g := s.Graph()
	g.Nodes[0].Inputs[0] = "tampered"
	s.Reset()
	assert.Equal(t, DefaultSeed(), s.Graph())
}

func TestAddConnectDeleteReturnsToSeed(t *testing.T) {
	s := newTestStore(t)

	id, err := s.AddNode("grid_electricity", geometry.Pt(1000, 1000))
	require.NoError(t, err)
	_, err = s.AddEdge(id, "3", SideRight, SideLeft)
	require.NoError(t, err)
	assert.Len(t, s.Nodes(), 4)
	assert.Len(t, s.Edges(), 3)

	require.NoError(t, s.DeleteNode(id))
	assert.Equal(t, s.Seed(), s.Graph())
}

func TestEdgesOf(t *testing.T) {
	s := newTestStore(t)

	assert.Len(t, s.EdgesOf("2"), 2)
	assert.Len(t, s.EdgesOf("1"), 1)
	assert.Empty(t, s.EdgesOf("nobody"))
}

func TestWithSeed(t *testing.T) {
	seed := Graph{
		Nodes: []Node{{ID: "a", Type: "truck", Label: "A"}, {ID: "b", Type: "rail", Label: "B"}},
		Edges: []Edge{{ID: "ab", From: "a", To: "b"}},
	}
	s := newTestStore(t, WithSeed(seed))

	assert.True(t, s.IsSeedNode("a"))
	assert.True(t, s.IsSeedEdge("ab"))
	assert.False(t, s.IsSeedNode("1"))
	assert.ErrorIs(t, s.DeleteNode("b"), ErrProtectedNode)
	assert.Len(t, s.Edges(), 1)
}
