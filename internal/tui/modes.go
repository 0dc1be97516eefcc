package tui

type Mode int

const (
	ModeNormal Mode = iota
	ModePalette
	ModeInput
	ModeConfirm
)

// InputKind says what a line typed in ModeInput is for.
type InputKind int

const (
	InputLabel InputKind = iota
	InputAddInput
	InputAddOutput
	InputRenamePort
	InputExport
)

type ConfirmAction int

const (
	ConfirmDeleteNode ConfirmAction = iota
	ConfirmDeleteEdge
	ConfirmReset
	ConfirmQuit
	ConfirmOverwriteFile
)

const (
	panelWidth        = 36
	minPanelCols      = 60 // narrower terminals get no side panel
	panCells          = 4  // cells per pan keystroke
	defaultExportName = "mineflow.png"
)

func (m Model) modeString() string {
	switch m.mode {
	case ModeNormal:
		if m.editor.ConnectMode() {
			return "CONNECT"
		}
		return "NORMAL"
	case ModePalette:
		return "PALETTE"
	case ModeInput:
		return "INPUT"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (k InputKind) prompt() string {
	switch k {
	case InputLabel:
		return "Label"
	case InputAddInput:
		return "New input"
	case InputAddOutput:
		return "New output"
	case InputRenamePort:
		return "Rename flow"
	case InputExport:
		return "Export to (.png or .txt)"
	default:
		return ""
	}
}
