package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/genotile/genotile/pkg/layout"
)

// levelsCommand creates the levels command, a debug tool that dumps the
// tiling geometry.
func (c *CLI) levelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "Print the tiling hierarchy geometry",
		Long: `Print the tiling hierarchy geometry.

Each row is one nesting level: how many child units it holds (modulo),
how much sequence one unit covers (chunk), the gutter between units
(padding), and the pixel stride between unit origins (thickness).
Levels alternate between the X and Y axis.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := layout.Default()
			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(StyleDim).
				Headers("LEVEL", "AXIS", "MODULO", "CHUNK", "PADDING", "THICKNESS")
			for i, lv := range h {
				axis := "X"
				if h.Axis(i) == layout.AxisY {
					axis = "Y"
				}
				t.Row(lv.Name, axis,
					fmt.Sprintf("%d", lv.Modulo),
					fmt.Sprintf("%d", lv.ChunkSize),
					fmt.Sprintf("%d", lv.Padding),
					fmt.Sprintf("%d", lv.Thickness))
			}
			fmt.Println(t)
			printKeyValue("capacity", fmt.Sprintf("%d bp", h.Capacity()))
			return nil
		},
	}
}
