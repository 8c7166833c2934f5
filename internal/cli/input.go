package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/clusterview/pkg/errors"
	"github.com/matzehuels/clusterview/pkg/io"
	"github.com/matzehuels/clusterview/pkg/isoform"
)

// geneInput is one gene loaded from a transcript set.
type geneInput struct {
	Set         *io.GeneSet
	Transcripts []*isoform.Transcript
	Totals      io.Totals
}

// loadGene reads the transcript set at path and loads one gene from it.
// When gene is empty, a set with a single gene needs no choice; otherwise
// the user picks from a list if stdin is a terminal.
func (c *CLI) loadGene(ctx context.Context, path, gene string) (*geneInput, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	sets, err := io.ImportTranscriptSets(path)
	if err != nil {
		return nil, err
	}
	if len(sets.Genes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s holds no genes", path)
	}

	if gene == "" {
		gene, err = pickGene(sets)
		if err != nil {
			return nil, err
		}
	}

	set, dup, err := io.SelectGene(sets, gene)
	if err != nil {
		return nil, err
	}
	if dup {
		printWarning("Gene %s occurs more than once in %s; using the first", set.Gene, path)
	}

	trs, totals, err := io.Load(set)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", set.Gene, err)
	}
	logger.Debug("loaded gene", "gene", set.Gene, "transcripts", len(trs),
		"clusters", totals.Clusters, "full", totals.Full, "partial", totals.Partial)
	prog.done(fmt.Sprintf("Loaded %d transcripts of %s", len(trs), set.Gene))

	return &geneInput{Set: set, Transcripts: trs, Totals: totals}, nil
}

// pickGene chooses a gene when none was named.
func pickGene(sets *io.TranscriptSets) (string, error) {
	if len(sets.Genes) == 1 {
		return sets.Genes[0].Gene, nil
	}
	if !interactive() {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"input holds %d genes, choose one with --gene: %s", len(sets.Genes), strings.Join(sets.Names(), ", "))
	}

	printInfo("Found %d genes", len(sets.Genes))
	printNewline()
	p := tea.NewProgram(NewGeneListModel(sets.Genes))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	fm, ok := finalModel.(GeneListModel)
	if !ok || fm.Selected == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "no gene selected")
	}
	return fm.Selected.Gene, nil
}

// interactive reports whether stdin is a terminal.
func interactive() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
