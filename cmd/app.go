package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"mineflow/internal/config"
	"mineflow/internal/graph"
	"mineflow/internal/logging"
	"mineflow/internal/palette"
	"mineflow/internal/tui"
	"mineflow/internal/whiteboard"
)

// app is everything a command needs, wired from the config file.
type app struct {
	cfg     *config.Config
	catalog *palette.Catalog
	editor  *whiteboard.Editor
	log     *zap.Logger
	close   func()
}

func setup() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if paletteFile != "" {
		cfg.Palette.File = paletteFile
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		closeLog()
		return nil, err
	}

	store := graph.NewStore(catalog, cfg.Bounds())
	editor := whiteboard.New(store,
		whiteboard.WithLogger(log),
		whiteboard.WithHandleRadius(tui.HandleRadius(cfg)),
		whiteboard.WithZoomStep(cfg.Viewport.ZoomStep),
	)

	log.Info("whiteboard ready",
		zap.String("version", version),
		zap.Int("palette_types", catalog.Len()),
		zap.Float64("canvas_width", cfg.Canvas.Width),
		zap.Float64("canvas_height", cfg.Canvas.Height),
	)

	return &app{cfg: cfg, catalog: catalog, editor: editor, log: log, close: closeLog}, nil
}

func loadCatalog(cfg *config.Config) (*palette.Catalog, error) {
	if cfg.Palette.File == "" {
		return palette.Default()
	}
	catalog, err := palette.LoadFile(cfg.Palette.File)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", cfg.Palette.File, err)
	}
	return catalog, nil
}
