package graph

import "mineflow/internal/geometry"

// DefaultSeed is the bauxite-to-aluminium chain every whiteboard starts from.
// Each call returns fresh slices.
func DefaultSeed() Graph {
	return Graph{
		Nodes: []Node{
			{
				ID:          "1",
				Type:        "bauxite_mining",
				Label:       "Bauxite Mining",
				Position:    geometry.Pt(100, 200),
				Inputs:      []string{"Diesel", "Explosives", "Water"},
				Outputs:     []string{"Bauxite Ore", "Overburden"},
				ImpactScore: 72,
				Category:    "Extraction",
			},
			{
				ID:          "2",
				Type:        "alumina_refining",
				Label:       "Alumina Refining",
				Position:    geometry.Pt(450, 200),
				Inputs:      []string{"Bauxite Ore", "Caustic Soda", "Natural Gas"},
				Outputs:     []string{"Alumina", "Red Mud"},
				ImpactScore: 65,
				Category:    "Processing",
			},
			{
				ID:          "3",
				Type:        "aluminum_smelting",
				Label:       "Aluminum Smelting",
				Position:    geometry.Pt(800, 200),
				Inputs:      []string{"Alumina", "Electricity", "Carbon Anodes"},
				Outputs:     []string{"Primary Aluminum", "PFC Emissions"},
				ImpactScore: 88,
				Category:    "Processing",
			},
		},
		Edges: []Edge{
			{ID: "e1", From: "1", To: "2", FromSide: SideRight, ToSide: SideLeft, Material: "Bauxite Ore", Quantity: 4.5, Unit: "t"},
			{ID: "e2", From: "2", To: "3", FromSide: SideRight, ToSide: SideLeft, Material: "Alumina", Quantity: 1.9, Unit: "t"},
		},
	}
}

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: append([]Edge{}, g.Edges...),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = n.clone()
	}
	return out
}
