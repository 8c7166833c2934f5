package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterview/pkg/io"
	"github.com/matzehuels/clusterview/pkg/isoform"
	"github.com/matzehuels/clusterview/pkg/pipeline"
)

// layoutCommand creates the layout command for computing isoform layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		in       inputFlags
		of       optionFlags
		output   string
		fastaDir string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the display layout of a gene's transcripts",
		Long: `Compute the display layout of a gene's transcripts.

The layout command reads a transcript set (annotated transcripts plus
read-derived isoform clusters), merges the exons into blocks, orders the
transcripts by region similarity and groups the read-derived ones for
k = 1..K clusters. The result is written as layout JSON.

Seeded runs (--seed) are cached locally; unseeded runs draw a fresh seed
and are always recomputed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := of.resolve(cmd, c.Config)
			return c.runLayout(cmd.Context(), in, opts, output, fastaDir)
		},
	}

	in.register(cmd)
	of.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<gene>.layout.json)")
	cmd.Flags().StringVar(&fastaDir, "fasta", "", "also write one FASTA file per read cluster to this directory")
	strandCompletion(cmd)

	return cmd
}

// runLayout loads the gene, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, in inputFlags, opts pipeline.Options, output, fastaDir string) error {
	g, err := c.loadGene(ctx, in.input, in.gene)
	if err != nil {
		return err
	}

	result, err := c.execute(ctx, g, opts, in.noCache)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutput(in.input, g.Set.Gene)
	}
	if err := io.ExportLayout(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	if result.Layout.Empty {
		printWarning("No transcripts of %s to lay out", g.Set.Gene)
	} else {
		printSuccess("Layout complete")
	}
	printFile(outputPath)
	printStats(result.Stats.Transcripts, result.Stats.Exons, result.CacheInfo)
	printTotals(g.Totals)

	if fastaDir != "" {
		n, err := writeFASTA(fastaDir, g.Transcripts)
		if err != nil {
			return err
		}
		printSuccess("Wrote %d FASTA files", n)
		printFile(fastaDir)
	}

	printNewline()
	printNextStep("Groups", appName+" cluster -i "+in.input+" -g "+g.Set.Gene)
	return nil
}

// execute runs the layout pipeline for g behind a spinner.
func (c *CLI) execute(ctx context.Context, g *geneInput, opts pipeline.Options, noCache bool) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing layout of %s...", g.Set.Gene))
	spinner.Start()

	result, err := runner.Execute(ctx, g.Set.Gene, g.Transcripts, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return nil, fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	return result, nil
}

// writeFASTA writes one FASTA file per read-derived transcript with bases.
func writeFASTA(dir string, transcripts []*isoform.Transcript) (int, error) {
	n := 0
	for _, t := range isoform.ReadDerived(transcripts) {
		if t.Bases == "" {
			continue
		}
		if _, err := io.WriteFASTA(dir, t); err != nil {
			return n, fmt.Errorf("write FASTA for %s: %w", t.Name, err)
		}
		n++
	}
	return n, nil
}

// defaultOutput derives the layout path from the input path and gene.
func defaultOutput(input, gene string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + gene + ".layout.json"
}
