package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genotile/genotile/pkg/pipeline"
)

// renderCommand creates the render command, the main entry point.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		pick   bool
		cOpts  cacheOpts
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [input.fa]",
		Short: "Render a FASTA file as a tiled PNG image",
		Long: `Render a FASTA file as a tiled PNG image.

Each nucleotide becomes one pixel. Sequence is laid out in a nested
tiling: 100bp pixel rows stack into 100kbp columns, columns into 1Mbp
rows, and so on, so that features stay visually coherent whether you
are looking at a gene or a whole chromosome.

Input may be plain or gzip-compressed FASTA, or "-" for stdin.
Multi-contig files get a labeled band per contig. Rendered artifacts
are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			if pick {
				name, err := c.pickContig(cmd.Context(), opts.Input)
				if err != nil {
					return err
				}
				if name == "" {
					printInfo("No contig selected")
					return nil
				}
				opts.Contig = name
			}
			return c.runRender(cmd.Context(), opts, output, cOpts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path (default: input name with .png)")
	cmd.Flags().StringVar(&opts.Contig, "contig", "", "render a single contig by name")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose the contig interactively")
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "TOML palette file overriding the default colors")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "contigs painted concurrently (default: CPU count)")
	cmd.Flags().BoolVar(&opts.NoTitles, "no-titles", false, "suppress contig labels")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if a cached artifact exists")
	cmd.Flags().BoolVar(&cOpts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&cOpts.redisAddr, "redis", "", "use a shared Redis artifact cache at this address")

	return cmd
}

// runRender executes the pipeline and writes the artifact.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, cOpts cacheOpts) error {
	runner, err := c.newRunner(ctx, cOpts)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	path := outputPath(opts, output)
	if err := os.WriteFile(path, result.Artifact, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSuccess("Rendered %s", opts.Input)
	if !result.CacheHit {
		printRenderStats(result)
	} else {
		printStats(result.ContigCount, 0, 0, true)
	}
	printFile(path)
	return nil
}

// printRenderStats summarizes a fresh render.
func printRenderStats(r *pipeline.Result) {
	printStats(r.ContigCount, r.Width, r.Height, false)
	if r.Stats.Skipped > 0 {
		printWarning("%d characters fell outside the canvas and were skipped", r.Stats.Skipped)
	}
}

// outputPath derives the output file path from the options.
func outputPath(opts pipeline.Options, output string) string {
	if output != "" {
		return output
	}
	base := filepath.Base(opts.Input)
	if base == "-" {
		base = "stdin"
	}
	base = strings.TrimSuffix(base, ".gz")
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if opts.Contig != "" {
		base += "." + opts.Contig
	}
	return base + ".png"
}
