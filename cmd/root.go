package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mineflow/internal/tui"
)

var version = "0.3.0"

var (
	configPath  string
	paletteFile string
)

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	warn   = color.New(color.FgYellow)
	bad    = color.New(color.FgRed)
)

var rootCmd = &cobra.Command{
	Use:   "mineflow",
	Short: "mineflow: sketch mineral process flows in the terminal",
	Long: brand.Sprint("mineflow") + " is a whiteboard for mineral life-cycle process flows\n" +
		subtle.Sprint("Drop process nodes on the canvas and wire material flows between them"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.close()
		return tui.Run(a.cfg, a.editor, a.catalog, a.log)
	},
}

func init() {
	rootCmd.SetVersionTemplate("mineflow {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/mineflow/config.toml)")
	rootCmd.PersistentFlags().StringVar(&paletteFile, "palette", "", "YAML catalog to use instead of the built-in palette")

	rootCmd.AddCommand(
		exportCmd(),
		paletteCmd(),
		configCmd(),
	)
}

// Execute runs the root command and reports a failure in red.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		bad.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
