package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"mineflow/internal/graph"
	"mineflow/internal/whiteboard"
)

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		if m.cfg.UI.Confirmations && key == "q" {
			return m.askConfirm(ConfirmQuit), nil
		}
		return m, tea.Quit

	case "?":
		m.help = true
		m.helpScroll = 0
		return m, nil

	case "esc":
		m.editor.CancelConnection()
		m.editor.ClearSelection()
		m.clearMessages()
		return m, nil

	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		return m.handlePan(key, getMoveSpeed(key)), nil

	case "+", "=":
		m.editor.ZoomIn()
		return m, nil
	case "-", "_":
		m.editor.ZoomOut()
		return m, nil

	case "c":
		m.editor.ToggleConnectMode()
		return m, nil

	case "tab", "shift+tab":
		if len(m.types) == 0 {
			return m, nil
		}
		step := 1
		if key == "shift+tab" {
			step = len(m.types) - 1
		}
		m.typeIdx = (m.typeIdx + step) % len(m.types)
		return m, nil
	case "t":
		m.mode = ModePalette
		m.paletteCursor = m.typeIdx
		return m, nil

	case "n":
		id, err := m.editor.AddNodeAtCenter(m.currentType())
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.editor.Select(id)
		m.portCursor = 0
		m.successMessage = "Added " + m.typeLabel(m.currentType())
		return m, nil

	case "R":
		if m.cfg.UI.Confirmations {
			return m.askConfirm(ConfirmReset), nil
		}
		m.reset()
		return m, nil

	case "S":
		return m.startInput(InputExport, ""), nil
	}

	node, ok := m.editor.SelectedNode()
	if !ok {
		return m, nil
	}

	switch key {
	case "d", "delete":
		if m.editor.Store().IsSeedNode(node.ID) {
			m.fail(fmt.Errorf("%q: %w", node.Label, graph.ErrProtectedNode))
			return m, nil
		}
		if m.cfg.UI.Confirmations {
			return m.askConfirm(ConfirmDeleteNode), nil
		}
		m.deleteSelected()

	case "D":
		edges := m.editor.Store().EdgesOf(node.ID)
		if len(edges) == 0 {
			m.fail(fmt.Errorf("%q has no flows", node.Label))
			return m, nil
		}
		edge := edges[len(edges)-1]
		if m.editor.Store().IsSeedEdge(edge.ID) {
			m.fail(fmt.Errorf("flow %s: %w", edge.Material, graph.ErrProtectedEdge))
			return m, nil
		}
		m.confirmEdge = edge.ID
		if m.cfg.UI.Confirmations {
			return m.askConfirm(ConfirmDeleteEdge), nil
		}
		m.deleteEdge()

	case "e":
		return m.startInput(InputLabel, node.Label), nil
	case "i":
		return m.startInput(InputAddInput, ""), nil
	case "o":
		return m.startInput(InputAddOutput, ""), nil

	case "[":
		if m.portCursor > 0 {
			m.portCursor--
		}
	case "]":
		if m.portCursor < len(node.Inputs)+len(node.Outputs)-1 {
			m.portCursor++
		}
	case "r":
		if _, _, name, ok := portAt(node, m.portCursor); ok {
			return m.startInput(InputRenamePort, name), nil
		}
	case "x":
		if dir, i, _, ok := portAt(node, m.portCursor); ok {
			if err := m.editor.RemovePort(node.ID, dir, i); err != nil {
				m.fail(err)
			}
			if n, ok := m.editor.SelectedNode(); ok && m.portCursor >= len(n.Inputs)+len(n.Outputs) && m.portCursor > 0 {
				m.portCursor--
			}
		}

	case "y":
		if err := copyNode(node); err != nil {
			m.fail(err)
			return m, nil
		}
		m.successMessage = "Copied " + node.Label
	case "p":
		label, err := readClipboardText()
		if err != nil {
			m.fail(err)
			return m, nil
		}
		if label = firstLine(cleanClipboardText(label)); label == "" {
			m.fail(fmt.Errorf("clipboard is empty"))
			return m, nil
		}
		if err := m.editor.Rename(node.ID, label); err != nil {
			m.fail(err)
		}
	}
	return m, nil
}

func (m Model) handlePan(key string, speed int) Model {
	w, h := m.renderer.CellSize()
	dx := w * panCells * float64(speed)
	dy := h * panCells / 2 * float64(speed)
	switch key {
	case "h", "left", "H", "shift+left":
		m.editor.Pan(dx, 0)
	case "l", "right", "L", "shift+right":
		m.editor.Pan(-dx, 0)
	case "k", "up", "K", "shift+up":
		m.editor.Pan(0, dy)
	case "j", "down", "J", "shift+down":
		m.editor.Pan(0, -dy)
	}
	return m
}

func getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.types) == 0 {
		m.mode = ModeNormal
		return m, nil
	}
	switch msg.String() {
	case "esc", "t", "q":
		m.mode = ModeNormal
	case "j", "down", "tab":
		m.paletteCursor = (m.paletteCursor + 1) % len(m.types)
	case "k", "up", "shift+tab":
		m.paletteCursor = (m.paletteCursor - 1 + len(m.types)) % len(m.types)
	case "enter", " ":
		m.typeIdx = m.paletteCursor
		m.mode = ModeNormal
	case "n":
		m.typeIdx = m.paletteCursor
		m.mode = ModeNormal
		id, err := m.editor.AddNodeAtCenter(m.currentType())
		if err != nil {
			m.fail(err)
			break
		}
		m.editor.Select(id)
		m.portCursor = 0
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		maxScroll := len(helpLines) - m.canvasRows()
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func (m Model) askConfirm(action ConfirmAction) Model {
	m.mode = ModeConfirm
	m.confirmAction = action
	return m
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmReset:
			m.reset()
		case ConfirmDeleteNode:
			m.deleteSelected()
		case ConfirmDeleteEdge:
			m.deleteEdge()
		case ConfirmOverwriteFile:
			m.export(m.exportPath)
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.confirmEdge = ""
	}
	return m, nil
}

func (m *Model) reset() {
	m.editor.Reset()
	m.portCursor = 0
	m.clearMessages()
	m.successMessage = "Whiteboard reset"
}

func (m *Model) deleteSelected() {
	id, ok := m.editor.Selected()
	if !ok {
		return
	}
	if err := m.editor.DeleteNode(id); err != nil {
		m.fail(err)
		return
	}
	m.portCursor = 0
	m.successMessage = "Node deleted"
}

func (m *Model) deleteEdge() {
	id := m.confirmEdge
	m.confirmEdge = ""
	if err := m.editor.DeleteEdge(id); err != nil {
		m.fail(err)
		return
	}
	m.successMessage = "Flow deleted"
}

func (m Model) typeLabel(typ string) string {
	if d, _, ok := m.catalog.Lookup(typ); ok {
		return d.Label
	}
	return typ
}

// portAt maps a cursor over a node's inputs followed by its outputs to a
// direction and index.
func portAt(n graph.Node, cursor int) (whiteboard.Direction, int, string, bool) {
	switch {
	case cursor < 0:
		return 0, 0, "", false
	case cursor < len(n.Inputs):
		return whiteboard.Inputs, cursor, n.Inputs[cursor], true
	case cursor < len(n.Inputs)+len(n.Outputs):
		i := cursor - len(n.Inputs)
		return whiteboard.Outputs, i, n.Outputs[i], true
	}
	return 0, 0, "", false
}
