// Package config loads mineflow settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"mineflow/internal/geometry"
)

var validate = validator.New()

// Config holds mineflow configuration.
type Config struct {
	Canvas   CanvasConfig   `toml:"canvas"`
	Node     NodeConfig     `toml:"node"`
	Viewport ViewportConfig `toml:"viewport"`
	Palette  PaletteConfig  `toml:"palette"`
	UI       UIConfig       `toml:"ui"`
	Export   ExportConfig   `toml:"export"`
	Log      LogConfig      `toml:"log"`
}

// CanvasConfig is the size of the canvas nodes can be placed on.
type CanvasConfig struct {
	Width  float64 `toml:"width" validate:"gt=0"`
	Height float64 `toml:"height" validate:"gt=0"`
}

// NodeConfig is the on-canvas size of every node.
type NodeConfig struct {
	Width        float64 `toml:"width" validate:"gt=0"`
	Height       float64 `toml:"height" validate:"gt=0"`
	HandleRadius float64 `toml:"handle_radius" validate:"gte=0"` // screen pixels
}

type ViewportConfig struct {
	ZoomStep float64 `toml:"zoom_step" validate:"gt=0,lte=1.5"`
}

// PaletteConfig points at a custom catalog. Empty means the built-in one.
type PaletteConfig struct {
	File string `toml:"file"`
}

// UIConfig controls the terminal front end. A terminal cell stands for
// CellWidth x CellHeight screen pixels.
type UIConfig struct {
	Confirmations bool    `toml:"confirmations"`
	CellWidth     float64 `toml:"cell_width" validate:"gt=0"`
	CellHeight    float64 `toml:"cell_height" validate:"gt=0"`
}

type ExportConfig struct {
	Directory string `toml:"directory"`
}

// LogConfig controls the debug log. The terminal belongs to the UI, so logs
// only go to a file; no file means no logging.
type LogConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
	File  string `toml:"file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas:   CanvasConfig{Width: 3000, Height: 2000},
		Node:     NodeConfig{Width: 200, Height: 120, HandleRadius: 8},
		Viewport: ViewportConfig{ZoomStep: 0.1},
		UI:       UIConfig{Confirmations: true, CellWidth: 10, CellHeight: 20},
		Log:      LogConfig{Level: "info"},
	}
}

// Dir returns the mineflow config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mineflow")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path, or the default path when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Palette.File = expandPath(cfg.Palette.File)
	cfg.Export.Directory = expandPath(cfg.Export.Directory)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks field ranges and that a node fits on the canvas.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Node.Width > c.Canvas.Width || c.Node.Height > c.Canvas.Height {
		return fmt.Errorf("node %gx%g does not fit on canvas %gx%g",
			c.Node.Width, c.Node.Height, c.Canvas.Width, c.Canvas.Height)
	}
	return nil
}

// Bounds returns the placement bounds for the graph store.
func (c *Config) Bounds() geometry.Bounds {
	return geometry.Bounds{
		CanvasW: c.Canvas.Width,
		CanvasH: c.Canvas.Height,
		NodeW:   c.Node.Width,
		NodeH:   c.Node.Height,
	}
}

// ExportPath places filename in the export directory, if one is set, and
// creates that directory.
func (c *Config) ExportPath(filename string) (string, error) {
	if c.Export.Directory == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.Export.Directory, 0o755); err != nil {
		return "", fmt.Errorf("export directory: %w", err)
	}
	return filepath.Join(c.Export.Directory, filename), nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Namespace())
		field = strings.TrimPrefix(field, "config.")
		switch e.Tag() {
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, e.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}
