package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"mineflow/internal/geometry"
	"mineflow/internal/whiteboard"
)

// handleMouse feeds terminal mouse events to the editor. A cell stands for
// the screen point at its centre. The status line and side panel are off the
// surface: moving onto them mid-gesture counts as leaving it.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.help || m.mode != ModeNormal {
		return m, nil
	}

	inside := m.onCanvas(msg.X, msg.Y)
	pos := m.renderer.Pixel(msg.X, msg.Y)

	switch msg.Type {
	case tea.MouseLeft, tea.MouseMiddle:
		// Some terminals repeat the press while the button is held.
		if m.pressed {
			m.move(inside, pos)
			return m, nil
		}
		if !inside {
			return m, nil
		}
		button := whiteboard.ButtonLeft
		if msg.Type == tea.MouseMiddle {
			button = whiteboard.ButtonMiddle
		}
		before, _ := m.editor.Selected()
		m.editor.PointerDown(whiteboard.PointerEvent{Pos: pos, Button: button})
		if after, _ := m.editor.Selected(); after != before {
			m.portCursor = 0
		}
		m.pressed = true
		m.clearMessages()

	case tea.MouseRight:
		if inside {
			m.dropNode(pos)
		}

	case tea.MouseRelease:
		if !m.pressed {
			return m, nil
		}
		m.pressed = false
		if inside {
			m.editor.PointerUp(pos)
		} else {
			m.editor.PointerLeave()
		}

	case tea.MouseMotion:
		m.move(inside, pos)

	case tea.MouseWheelUp:
		if inside {
			m.editor.Wheel(pos, -1)
		}

	case tea.MouseWheelDown:
		if inside {
			m.editor.Wheel(pos, 1)
		}
	}
	return m, nil
}

func (m *Model) move(inside bool, pos geometry.Point) {
	if inside {
		m.editor.PointerMove(pos)
		return
	}
	if m.pressed {
		m.pressed = false
		m.editor.PointerLeave()
	}
}

// dropNode places the current palette type with its top-left corner under
// the pointer.
func (m *Model) dropNode(pos geometry.Point) {
	typ := m.currentType()
	id, err := m.editor.DropNode(typ, pos)
	if err != nil {
		m.fail(err)
		return
	}
	m.editor.Select(id)
	m.portCursor = 0
	m.successMessage = "Added " + m.typeLabel(typ)
}
