// Package tui hosts the whiteboard editor in a terminal with bubbletea.
package tui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"mineflow/internal/config"
	"mineflow/internal/geometry"
	"mineflow/internal/palette"
	"mineflow/internal/render"
	"mineflow/internal/whiteboard"
)

type Model struct {
	cfg      *config.Config
	editor   *whiteboard.Editor
	catalog  *palette.Catalog
	renderer *render.Renderer
	log      *zap.Logger

	width  int
	height int

	mode       Mode
	help       bool
	helpScroll int

	types         []string // palette order
	typeIdx       int
	paletteCursor int

	inputKind InputKind
	input     string

	confirmAction ConfirmAction
	confirmEdge   string
	exportPath    string

	portCursor int
	pressed    bool

	errorMessage   string
	successMessage string
}

// HandleRadius is the handle hit radius for a terminal host. A mouse click
// lands on a cell centre, so the radius must reach from any point of the
// handle's cell.
func HandleRadius(cfg *config.Config) float64 {
	return math.Max(cfg.Node.HandleRadius, math.Hypot(cfg.UI.CellWidth, cfg.UI.CellHeight)/2+1)
}

func New(cfg *config.Config, editor *whiteboard.Editor, catalog *palette.Catalog, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		cfg:      cfg,
		editor:   editor,
		catalog:  catalog,
		renderer: render.New(editor.Bounds(), cfg.UI.CellWidth, cfg.UI.CellHeight),
		log:      log,
		types:    catalog.Types(),
		width:    80,
		height:   24,
	}
}

// Run starts the full-screen program and blocks until it quits.
func Run(cfg *config.Config, editor *whiteboard.Editor, catalog *palette.Catalog, log *zap.Logger) error {
	p := tea.NewProgram(
		New(cfg, editor, catalog, log),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles one message. The side panel comes and goes with the
// selection and the mode, so the editor surface is synced to the visible
// canvas before and after every message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.resizeSurface()
	next, cmd := m.update(msg)
	if nm, ok := next.(Model); ok {
		nm.resizeSurface()
		next = nm
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModePalette:
			return m.handlePaletteKey(msg)
		case ModeInput:
			return m.handleInputKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

// canvasRows leaves the bottom row for the status line.
func (m Model) canvasRows() int {
	if m.height < 2 {
		return 1
	}
	return m.height - 1
}

func (m Model) showPanel() bool {
	if m.width < minPanelCols {
		return false
	}
	if m.mode == ModePalette {
		return true
	}
	_, ok := m.editor.Selected()
	return ok
}

func (m Model) canvasCols() int {
	cols := m.width
	if m.showPanel() {
		cols -= panelWidth
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m Model) onCanvas(col, row int) bool {
	return col >= 0 && row >= 0 && col < m.canvasCols() && row < m.canvasRows()
}

// resizeSurface tells the editor how large the visible canvas is.
func (m Model) resizeSurface() {
	w, h := m.renderer.CellSize()
	m.editor.SetSurface(geometry.Point{}, geometry.Pt(float64(m.canvasCols())*w, float64(m.canvasRows())*h))
}

func (m Model) currentType() string {
	if len(m.types) == 0 {
		return ""
	}
	return m.types[m.typeIdx]
}

func (m *Model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *Model) fail(err error) {
	m.successMessage = ""
	m.errorMessage = err.Error()
}
