package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/genotile/genotile/pkg/fasta"
	"github.com/genotile/genotile/pkg/layout"
)

// planCommand creates the plan command for inspecting layout decisions
// without rendering.
func (c *CLI) planCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [input.fa]",
		Short: "Show the layout plan for a FASTA file without rendering",
		Long: `Show the layout plan for a FASTA file without rendering.

For each contig, prints the padding inserted before it (alignment reset
and label reservation), its placed start offset, and its sequence
length. Ends with the total planned length and the resulting canvas
dimensions. Useful for predicting image size before a long render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd, args[0])
		},
	}
}

func (c *CLI) runPlan(cmd *cobra.Command, input string) error {
	ctx := cmd.Context()
	prog := newProgress(c.Logger)
	contigs, err := fasta.ReadContigs(ctx, input)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scanned %d contigs", len(contigs)))

	h := layout.Default()
	lengths := make([]layout.NamedLength, len(contigs))
	for i, r := range contigs {
		lengths[i] = layout.NamedLength{Name: r.Name, Length: r.Length()}
	}
	segments, total := layout.PlanSegments(h, lengths)
	width, height := h.Size(total)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("CONTIG", "START", "LENGTH", "RESET", "TITLE", "TAIL")
	cursor := int64(0)
	for _, s := range segments {
		start := cursor + s.Reset + s.Title
		t.Row(s.Name,
			fmt.Sprintf("%d", start),
			fmt.Sprintf("%d", s.Length),
			fmt.Sprintf("%d", s.Reset),
			fmt.Sprintf("%d", s.Title),
			fmt.Sprintf("%d", s.Tail))
		cursor += s.Extent()
	}
	fmt.Println(t)

	printKeyValue("contigs", fmt.Sprintf("%d", len(segments)))
	printKeyValue("planned", fmt.Sprintf("%d bp", total))
	printKeyValue("canvas", fmt.Sprintf("%d×%d px", width, height))
	printNewline()
	printNextStep("Render it", fmt.Sprintf("genotile render %s", input))
	return nil
}
