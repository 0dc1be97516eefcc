package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"mineflow/internal/export"
	"mineflow/internal/whiteboard"
)

func (m Model) startInput(kind InputKind, initial string) Model {
	m.mode = ModeInput
	m.inputKind = kind
	m.input = initial
	m.clearMessages()
	return m
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.input = ""
	case tea.KeyEnter:
		m.mode = ModeNormal
		text := strings.TrimSpace(m.input)
		m.input = ""
		return m.commitInput(text), nil
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		m.input = ""
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m Model) commitInput(text string) Model {
	if m.inputKind == InputExport {
		if text == "" {
			text = defaultExportName
		}
		path, err := m.cfg.ExportPath(text)
		if err != nil {
			m.fail(err)
			return m
		}
		if filepath.Ext(path) == "" {
			path += ".txt"
		}
		if _, err := os.Stat(path); err == nil && m.cfg.UI.Confirmations {
			m.exportPath = path
			return m.askConfirm(ConfirmOverwriteFile)
		}
		m.export(path)
		return m
	}

	node, ok := m.editor.SelectedNode()
	if !ok || text == "" {
		return m
	}

	var err error
	switch m.inputKind {
	case InputLabel:
		err = m.editor.Rename(node.ID, text)
	case InputAddInput:
		err = m.editor.AddPort(node.ID, whiteboard.Inputs, text)
		m.portCursor = len(node.Inputs)
	case InputAddOutput:
		err = m.editor.AddPort(node.ID, whiteboard.Outputs, text)
		m.portCursor = len(node.Inputs) + len(node.Outputs)
	case InputRenamePort:
		dir, i, _, ok := portAt(node, m.portCursor)
		if !ok {
			return m
		}
		err = m.editor.SetPort(node.ID, dir, i, text)
	}
	if err != nil {
		m.fail(err)
	}
	return m
}

// export writes the whole diagram, picking the format from the extension.
func (m *Model) export(path string) {
	snap := m.editor.Snapshot()
	bounds := m.editor.Bounds()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = export.PNG(path, snap, bounds, m.catalog)
	case ".txt":
		err = export.TextFile(path, snap, bounds, m.cfg.UI.CellWidth, m.cfg.UI.CellHeight)
	default:
		err = fmt.Errorf("unsupported export format %q", filepath.Ext(path))
	}
	if err != nil {
		m.log.Warn("export failed", zap.String("path", path), zap.Error(err))
		m.fail(err)
		return
	}
	m.log.Info("exported", zap.String("path", path))
	m.successMessage = "Exported to " + path
}
