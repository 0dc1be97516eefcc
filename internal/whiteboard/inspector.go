package whiteboard

import (
	"errors"
	"fmt"

	"mineflow/internal/graph"
)

// ErrPortIndex is returned when an inspector edit names an input or output
// slot that does not exist.
var ErrPortIndex = errors.New("port index out of range")

// Direction picks a node's inputs or outputs.
type Direction int

const (
	Inputs Direction = iota
	Outputs
)

func (d Direction) String() string {
	if d == Outputs {
		return "output"
	}
	return "input"
}

// Rename sets a node's label.
func (e *Editor) Rename(id, label string) error {
	return e.UpdateNode(id, graph.Patch{Label: &label})
}

// AddPort appends a flow name to a node's inputs or outputs.
func (e *Editor) AddPort(id string, dir Direction, name string) error {
	return e.editPorts(id, dir, func(ports []string) ([]string, error) {
		return append(ports, name), nil
	})
}

// SetPort renames the flow at index i.
func (e *Editor) SetPort(id string, dir Direction, i int, name string) error {
	return e.editPorts(id, dir, func(ports []string) ([]string, error) {
		if i < 0 || i >= len(ports) {
			return nil, fmt.Errorf("set %s %d of %q: %w", dir, i, id, ErrPortIndex)
		}
		ports[i] = name
		return ports, nil
	})
}

// RemovePort deletes the flow at index i, keeping the order of the rest.
func (e *Editor) RemovePort(id string, dir Direction, i int) error {
	return e.editPorts(id, dir, func(ports []string) ([]string, error) {
		if i < 0 || i >= len(ports) {
			return nil, fmt.Errorf("remove %s %d of %q: %w", dir, i, id, ErrPortIndex)
		}
		return append(ports[:i], ports[i+1:]...), nil
	})
}

// editPorts reads the node's current list, edits the copy and writes it back
// through UpdateNode.
func (e *Editor) editPorts(id string, dir Direction, edit func([]string) ([]string, error)) error {
	n, ok := e.store.Node(id)
	if !ok {
		return e.reject("edit ports", fmt.Errorf("edit %ss of %q: %w", dir, id, graph.ErrNodeNotFound))
	}

	ports := n.Inputs
	if dir == Outputs {
		ports = n.Outputs
	}
	ports, err := edit(ports)
	if err != nil {
		return e.reject("edit ports", err)
	}
	if ports == nil {
		ports = []string{}
	}

	if dir == Outputs {
		return e.UpdateNode(id, graph.Patch{Outputs: ports})
	}
	return e.UpdateNode(id, graph.Patch{Inputs: ports})
}
