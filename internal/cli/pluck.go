package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/genotile/genotile/pkg/fasta"
)

// fastaLineWidth is the column width used when writing extracted contigs.
const fastaLineWidth = 70

// pluckCommand creates the pluck command for extracting one contig.
func (c *CLI) pluckCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pluck [input.fa] [contig]",
		Short: "Extract a single contig to a new FASTA file",
		Long: `Extract a single contig to a new FASTA file.

Scans the input (plain or gzip) for the named contig, uppercases the
sequence, and writes it as a standalone FASTA record. Use "-" as the
output for stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, name := args[0], args[1]
			seq, err := fasta.PluckContig(cmd.Context(), input, name)
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			if err := writeFastaRecord(out, name, seq); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if out != os.Stdout {
				printSuccess("Extracted %s (%d bp)", name, len(seq))
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output FASTA path (default: stdout)")
	return cmd
}

// writeFastaRecord writes one wrapped FASTA record.
func writeFastaRecord(f *os.File, name string, seq []byte) error {
	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, ">%s\n", name); err != nil {
		return err
	}
	for len(seq) > 0 {
		n := fastaLineWidth
		if n > len(seq) {
			n = len(seq)
		}
		if _, err := w.Write(seq[:n]); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
		seq = seq[n:]
	}
	return w.Flush()
}
