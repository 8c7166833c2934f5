package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/clusterview/pkg/errors"
	"github.com/matzehuels/clusterview/pkg/isoform"
)

// ReadTranscriptSets decodes a transcript-set document from r. Both the
// {"genes": [...]} form and a single top-level gene object are accepted.
// ReadTranscriptSets does not close r.
func ReadTranscriptSets(r io.Reader) (*TranscriptSets, error) {
	var doc struct {
		Genes *[]GeneSet `json:"genes"`
		GeneSet
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode transcript set")
	}
	if doc.Genes != nil {
		return &TranscriptSets{Genes: *doc.Genes}, nil
	}
	if doc.Gene == "" && len(doc.Transcripts) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "transcript set has neither genes nor transcripts")
	}
	return &TranscriptSets{Genes: []GeneSet{doc.GeneSet}}, nil
}

// ImportTranscriptSets reads the transcript-set document at path.
func ImportTranscriptSets(path string) (*TranscriptSets, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	sets, err := ReadTranscriptSets(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sets, nil
}

// SelectGene returns the first gene set whose name matches gene, ignoring
// case. dup reports that the gene occurs more than once; the first
// occurrence is returned.
func SelectGene(sets *TranscriptSets, gene string) (set *GeneSet, dup bool, err error) {
	if err := errors.ValidateGeneName(gene); err != nil {
		return nil, false, err
	}
	for i := range sets.Genes {
		if !strings.EqualFold(sets.Genes[i].Gene, gene) {
			continue
		}
		if set == nil {
			set = &sets.Genes[i]
		} else {
			dup = true
		}
	}
	if set == nil {
		return nil, false, errors.New(errors.ErrCodeNotFound, "gene %s is not in the transcript set", gene)
	}
	return set, dup, nil
}

// Totals summarises the read-derived transcripts kept by [Load].
type Totals struct {
	Clusters int
	Full     int
	Partial  int
}

// Load builds the transcripts of set.
//
// Annotated transcripts come first in document order. Read-derived
// transcripts follow, sorted by full-length read count and then partial
// read count, both descending; every read-derived name must end in a
// "/<length>" token. Exons without a name are named "<transcript>/<n>".
// A transcript's start and end default to its exon extent.
func Load(set *GeneSet) ([]*isoform.Transcript, Totals, error) {
	var (
		annotated []*isoform.Transcript
		reads     []*isoform.Transcript
		totals    Totals
	)
	for i := range set.Transcripts {
		rec := &set.Transcripts[i]
		if !rec.Annotated {
			if _, err := ClusterLength(rec.Name); err != nil {
				return nil, Totals{}, err
			}
		}
		t, err := build(rec, set.Chrom)
		if err != nil {
			return nil, Totals{}, err
		}
		if t.Annotated {
			annotated = append(annotated, t)
			continue
		}
		reads = append(reads, t)
		totals.Clusters++
		totals.Full += t.Full
		totals.Partial += t.Partial
	}

	slices.SortStableFunc(reads, func(a, b *isoform.Transcript) int {
		if a.Full != b.Full {
			return b.Full - a.Full
		}
		return b.Partial - a.Partial
	})
	return append(annotated, reads...), totals, nil
}

func build(rec *TranscriptRecord, chrom string) (*isoform.Transcript, error) {
	t := isoform.NewTranscript(rec.Name, rec.Annotated)
	t.ID = rec.ID
	t.Chrom = rec.Chrom
	if t.Chrom == "" {
		t.Chrom = chrom
	}
	t.Score = rec.Score
	t.Full, t.Partial = rec.Full, rec.Partial
	t.Source = rec.Source
	t.Bases = rec.Bases

	for n, er := range rec.Exons {
		strand, ok := isoform.ParseStrand(er.Strand)
		if !ok {
			return nil, errors.DataIntegrity("%s: exon %d has unknown strand %q", rec.Name, n, er.Strand)
		}
		name := er.Name
		if name == "" {
			name = fmt.Sprintf("%s/%d", rec.Name, n)
		}
		e := t.AddExon(name, er.Start, er.End, strand)
		e.QScore = er.QScore
		e.Leading, e.Trailing = er.Leading, er.Trailing
	}

	t.Start, t.End = rec.Start, rec.End
	if t.Start == 0 && t.End == 0 {
		t.Start, t.End, _ = t.Extent()
	}
	return t, nil
}
