package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	modeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")).Padding(0, 1)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	panelStyle   = lipgloss.NewStyle().Width(panelWidth - 1).MaxWidth(panelWidth - 1).MaxHeight(1)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
)

func (m Model) View() string {
	if m.help {
		return m.helpView()
	}

	rows := m.canvasRows()
	lines := m.renderer.Render(m.editor.Snapshot(), m.canvasCols(), rows)

	if m.showPanel() {
		var panel []string
		if m.mode == ModePalette {
			panel = m.paletteLines()
		} else {
			panel = m.inspectorLines()
		}
		for i := range lines {
			var text string
			if i < len(panel) {
				text = panel[i]
			}
			lines[i] += "│" + panelStyle.Render(text)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) statusLine() string {
	var parts []string
	switch m.mode {
	case ModeInput:
		parts = append(parts, fmt.Sprintf("%s: %s▏", m.inputKind.prompt(), m.input))
		if m.inputKind == InputExport && m.input == "" {
			parts = append(parts, dimStyle.Render(defaultExportName))
		}
		parts = append(parts, "Enter=confirm, Esc=cancel")
	case ModeConfirm:
		parts = append(parts, m.confirmMessage())
	case ModePalette:
		parts = append(parts, "j/k=choose, Enter=select, n=add, Esc=close")
	default:
		v := m.editor.Viewport()
		parts = append(parts,
			fmt.Sprintf("Zoom: %.0f%%", v.Zoom*100),
			"Palette: "+m.typeLabel(m.currentType()),
		)
		if snap := m.editor.Snapshot(); snap.Pending != nil {
			parts = append(parts, "Connecting from "+m.nodeLabel(snap.Pending.Source)+" (click target)")
		}
		if n, ok := m.editor.SelectedNode(); ok {
			parts = append(parts, "Selected: "+n.Label)
		}
		switch {
		case m.errorMessage != "":
			parts = append(parts, errorStyle.Render("ERROR: "+m.errorMessage))
		case m.successMessage != "":
			parts = append(parts, successStyle.Render(m.successMessage))
		default:
			parts = append(parts, "? for help | q to quit")
		}
	}

	line := modeStyle.Render(m.modeString()) + " " + statusStyle.Render(strings.Join(parts, " | "))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func (m Model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmDeleteNode:
		return "Delete this node and its flows? (y/n)"
	case ConfirmDeleteEdge:
		return "Delete the last flow of this node? (y/n)"
	case ConfirmReset:
		return "Reset the whiteboard? All changes will be lost. (y/n)"
	case ConfirmQuit:
		return "Quit mineflow? (y/n)"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.exportPath)
	}
	return ""
}

func (m Model) nodeLabel(id string) string {
	if n, ok := m.editor.Store().Node(id); ok {
		return n.Label
	}
	return id
}

func (m Model) inspectorLines() []string {
	n, ok := m.editor.SelectedNode()
	if !ok {
		return nil
	}

	icon := ""
	if d, _, ok := m.catalog.Lookup(n.Type); ok {
		icon = d.Icon + " "
	}

	lines := []string{
		titleStyle.Render("Inspector"),
		fit(icon+n.Label, panelWidth-2),
		dimStyle.Render("type    ") + n.Type,
		dimStyle.Render("group   ") + n.Category,
		dimStyle.Render("impact  ") + fmt.Sprintf("%.0f / 100", n.ImpactScore),
		"",
		titleStyle.Render("Inputs"),
	}
	cursor := 0
	port := func(name string) string {
		defer func() { cursor++ }()
		name = fit(name, panelWidth-6)
		if cursor == m.portCursor {
			return " " + cursorStyle.Render("> "+name)
		}
		return "   " + name
	}
	for _, name := range n.Inputs {
		lines = append(lines, port(name))
	}
	lines = append(lines, titleStyle.Render("Outputs"))
	for _, name := range n.Outputs {
		lines = append(lines, port(name))
	}

	if edges := m.editor.Store().EdgesOf(n.ID); len(edges) > 0 {
		lines = append(lines, "", titleStyle.Render("Flows"))
		for _, e := range edges {
			arrow := "→ " + m.nodeLabel(e.To)
			if e.To == n.ID {
				arrow = "← " + m.nodeLabel(e.From)
			}
			lines = append(lines, fit(fmt.Sprintf("   %s %g %s %s", e.Material, e.Quantity, e.Unit, arrow), panelWidth-2))
		}
	}

	lines = append(lines, "",
		dimStyle.Render("e label  i/o add  [ ] pick"),
		dimStyle.Render("r rename  x remove  d delete"),
	)
	return lines
}

func (m Model) paletteLines() []string {
	lines := []string{titleStyle.Render("Palette")}
	i := 0
	for _, c := range m.catalog.Categories() {
		lines = append(lines, dimStyle.Render(c.Name))
		for _, d := range c.Types {
			text := fit(d.Icon+" "+d.Label, panelWidth-6)
			if i == m.paletteCursor {
				lines = append(lines, " "+cursorStyle.Render("> "+text))
			} else {
				lines = append(lines, "   "+text)
			}
			i++
		}
	}

	// keep the cursor on screen
	rows := m.canvasRows()
	if len(lines) > rows {
		start := m.paletteCursor + 1 - rows/2
		if start < 0 {
			start = 0
		}
		if start > len(lines)-rows {
			start = len(lines) - rows
		}
		lines = lines[start:]
	}
	return lines
}

// fit cuts plain text s down to n display cells.
func fit(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > n {
		r = r[:len(r)-1]
	}
	return string(r)
}

var helpLines = []string{
	"mineflow help",
	"=============",
	"",
	"Mouse:",
	"------",
	"  Left drag on empty canvas   Pan the view",
	"  Middle drag                 Pan the view",
	"  Left drag on a node         Move the node (and select it)",
	"  Left click on a handle (o)  Start a flow; click another node to finish",
	"  Right click                 Drop the current palette type here",
	"  Wheel                       Zoom around the pointer",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Pan the view",
	"  Shift+h/j/k/l    Pan 2x faster",
	"  +/-              Zoom in/out around the centre",
	"",
	"Palette:",
	"--------",
	"  Tab/Shift+Tab    Cycle the current type",
	"  t                Open the palette list",
	"  n                Add the current type at the centre",
	"",
	"Flows:",
	"------",
	"  c                Toggle connect mode (click source, then target)",
	"  D                Delete the last flow of the selected node",
	"",
	"Inspector (selected node):",
	"--------------------------",
	"  e                Edit label",
	"  i/o              Add an input/output",
	"  [ ]              Pick an input or output",
	"  r                Rename the picked flow name",
	"  x                Remove the picked flow name",
	"  d                Delete the node",
	"  y                Copy node summary to clipboard",
	"  p                Paste clipboard text as label",
	"",
	"General:",
	"--------",
	"  S                Export as PNG or text",
	"  R                Reset the whiteboard",
	"  Esc              Clear selection/cancel connection",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m Model) helpView() string {
	visible := m.canvasRows()
	start := m.helpScroll
	if start > len(helpLines) {
		start = len(helpLines)
	}
	end := start + visible
	if end > len(helpLines) {
		end = len(helpLines)
	}
	return strings.Join(helpLines[start:end], "\n") + "\n" + dimStyle.Render("j/k to scroll, any other key to close")
}
