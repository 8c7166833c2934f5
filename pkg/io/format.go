package io

import "github.com/matzehuels/clusterview/pkg/isoform"

// TranscriptSets is the decoded form of a transcript-set document.
type TranscriptSets struct {
	Genes []GeneSet `json:"genes"`
}

// GeneSet holds the transcript records of one gene.
type GeneSet struct {
	Gene        string             `json:"gene"`
	Chrom       string             `json:"chrom,omitempty"`
	Transcripts []TranscriptRecord `json:"transcripts"`
}

// TranscriptRecord is one transcript as stored in a transcript set.
type TranscriptRecord struct {
	Name      string         `json:"name"`
	ID        string         `json:"id,omitempty"`
	Annotated bool           `json:"annotated,omitempty"`
	Chrom     string         `json:"chrom,omitempty"`
	Start     int            `json:"start,omitempty"`
	End       int            `json:"end,omitempty"`
	Score     float64        `json:"score,omitempty"`
	Full      int            `json:"full,omitempty"`
	Partial   int            `json:"partial,omitempty"`
	Source    isoform.Source `json:"source"`
	Bases     string         `json:"bases,omitempty"`
	Exons     []ExonRecord   `json:"exons"`
}

// ExonRecord is one exon as stored in a transcript set. Coordinates are
// inclusive.
type ExonRecord struct {
	Name     string  `json:"name,omitempty"`
	Start    int     `json:"start"`
	End      int     `json:"end"`
	Strand   string  `json:"strand"`
	QScore   float64 `json:"qscore,omitempty"`
	Leading  int     `json:"leading,omitempty"`
	Trailing int     `json:"trailing,omitempty"`
}

// Names returns the gene names in document order.
func (s *TranscriptSets) Names() []string {
	names := make([]string, len(s.Genes))
	for i, g := range s.Genes {
		names[i] = g.Gene
	}
	return names
}
