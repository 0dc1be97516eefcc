package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mineflow/internal/export"
)

func exportCmd() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the starting process flow to a PNG or text file",
		Example: `  mineflow export -o flow.png
  mineflow export -o flow --format txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			if format == "" {
				format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
			}
			if format == "" {
				format = "png"
			}
			if filepath.Ext(output) == "" {
				output += "." + format
			}
			path, err := a.cfg.ExportPath(output)
			if err != nil {
				return err
			}

			snap := a.editor.Snapshot()
			switch format {
			case "png":
				err = export.PNG(path, snap, a.cfg.Bounds(), a.catalog)
			case "txt":
				err = export.TextFile(path, snap, a.cfg.Bounds(), a.cfg.UI.CellWidth, a.cfg.UI.CellHeight)
			default:
				return fmt.Errorf("unsupported export format %q (use png or txt)", format)
			}
			if err != nil {
				a.log.Error("export failed", zap.String("path", path), zap.Error(err))
				return err
			}

			a.log.Info("exported", zap.String("path", path), zap.String("format", format))
			good.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "mineflow.png", "file to write")
	cmd.Flags().StringVarP(&format, "format", "f", "", "png or txt (default from the file extension)")
	return cmd
}
