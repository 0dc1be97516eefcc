package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tones = map[string]*color.Color{
	"amber":  color.New(color.FgHiYellow),
	"yellow": color.New(color.FgYellow),
	"blue":   color.New(color.FgBlue),
	"red":    color.New(color.FgRed),
	"green":  color.New(color.FgGreen),
	"gray":   color.New(color.FgHiBlack),
}

func toneOf(token string) *color.Color {
	if c, ok := tones[token]; ok {
		return c
	}
	return subtle
}

func paletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the node types available on the whiteboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			w := cmd.OutOrStdout()
			width := 0
			for _, typ := range a.catalog.Types() {
				if len(typ) > width {
					width = len(typ)
				}
			}

			for i, c := range a.catalog.Categories() {
				if i > 0 {
					fmt.Fprintln(w)
				}
				brand.Fprintln(w, c.Name)
				subtle.Fprintln(w, strings.Repeat("─", len(c.Name)))
				for _, d := range c.Types {
					fmt.Fprintf(w, "  %s %-*s  %s\n", d.Icon, width, d.Type, toneOf(d.ColorToken).Sprint(d.Label))
				}
			}
			fmt.Fprintln(w)
			subtle.Fprintf(w, "%d types in %d categories\n", a.catalog.Len(), len(a.catalog.Categories()))
			return nil
		},
	}
}
