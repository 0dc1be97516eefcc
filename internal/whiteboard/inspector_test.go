package whiteboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mineflow/internal/geometry"
	"mineflow/internal/graph"
)

func TestInspectorRename(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.Select("2"))

	require.NoError(t, e.Rename("2", "Bayer Refinery"))

	n, ok := e.SelectedNode()
	require.True(t, ok)
	assert.Equal(t, "Bayer Refinery", n.Label)
	assert.Equal(t, "alumina_refining", n.Type, "renaming keeps the type")
}

func TestInspectorPorts(t *testing.T) {
	e := newEditor(t)

	require.NoError(t, e.AddPort("1", Inputs, "Electricity"))
	require.NoError(t, e.SetPort("1", Inputs, 1, "ANFO"))
	require.NoError(t, e.RemovePort("1", Inputs, 0))
	require.NoError(t, e.AddPort("1", Outputs, "Dust"))

	n, _ := e.Store().Node("1")
	assert.Equal(t, []string{"ANFO", "Water", "Electricity"}, n.Inputs)
	assert.Equal(t, []string{"Bauxite Ore", "Overburden", "Dust"}, n.Outputs)

	seed := graph.DefaultSeed()
	assert.Equal(t, []string{"Diesel", "Explosives", "Water"}, seed.Nodes[0].Inputs)
}

func TestInspectorRemoveLastPortLeavesEmptyList(t *testing.T) {
	e := newEditor(t)
	id, err := e.AddNode("truck", geometry.Pt(1200, 800))
	require.NoError(t, err)

	require.NoError(t, e.RemovePort(id, Outputs, 0))

	n, _ := e.Store().Node(id)
	assert.NotNil(t, n.Outputs)
	assert.Empty(t, n.Outputs)
	assert.Equal(t, []string{"Input 1"}, n.Inputs)
}

func TestInspectorRejects(t *testing.T) {
	e := newEditor(t)

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"set past end", func() error { return e.SetPort("1", Inputs, 3, "x") }, ErrPortIndex},
		{"set negative", func() error { return e.SetPort("1", Outputs, -1, "x") }, ErrPortIndex},
		{"remove past end", func() error { return e.RemovePort("3", Outputs, 2) }, ErrPortIndex},
		{"missing node port", func() error { return e.AddPort("nope", Inputs, "x") }, graph.ErrNodeNotFound},
		{"missing node rename", func() error { return e.Rename("nope", "x") }, graph.ErrNodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.want)
		})
	}

	assert.Equal(t, graph.DefaultSeed(), e.Store().Graph(), "rejected edits change nothing")
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "input", Inputs.String())
	assert.Equal(t, "output", Outputs.String())
}
