package isoform

import (
	"github.com/biogo/biogo/feat"
)

// Unassigned marks a block ID or display index that has not been computed yet.
const Unassigned = -1

// Strand is the orientation of an exon relative to the reference.
type Strand = feat.Orientation

// Strand values.
const (
	Forward     Strand = feat.Forward
	Reverse     Strand = feat.Reverse
	NotOriented Strand = feat.NotOriented
)

// ParseStrand converts the conventional "+", "-" and "." symbols to a Strand.
// Anything else is reported as not ok.
func ParseStrand(s string) (Strand, bool) {
	switch s {
	case "+":
		return Forward, true
	case "-":
		return Reverse, true
	case ".", "":
		return NotOriented, true
	}
	return NotOriented, false
}

// StrandSymbol returns the "+", "-" or "." symbol for s.
func StrandSymbol(s Strand) string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	}
	return "."
}

// Source identifies the input that supplied a transcript. Index 0 is the
// annotation; read-derived inputs are numbered from 1 in the order given.
type Source struct {
	Index int    `json:"index"`
	Path  string `json:"path,omitempty"`
}

// Transcript is one isoform of the gene, either annotated or read-derived.
type Transcript struct {
	Name      string
	ID        string // stable identifier, set for annotated transcripts
	Annotated bool
	Chrom     string
	Start     int
	End       int
	Score     float64
	Full      int // full-length reads supporting a read-derived transcript
	Partial   int // partial-length reads supporting a read-derived transcript
	Source    Source
	Bases     string // read-cluster sequence, forward-strand sense

	Exons []*Exon

	// DisplayIx is the row assigned by an ordering; Unassigned until set.
	DisplayIx int
	Blocks    IDSet
	Regions   IDSet
}

// NewTranscript creates a transcript with no exons and unassigned indices.
func NewTranscript(name string, annotated bool) *Transcript {
	return &Transcript{
		Name:      name,
		Annotated: annotated,
		DisplayIx: Unassigned,
		Blocks:    IDSet{},
		Regions:   IDSet{},
	}
}

// AddExon appends a new exon to t and returns it. The exon's block is
// Unassigned until a partitioning pass runs.
func (t *Transcript) AddExon(name string, start, end int, strand Strand) *Exon {
	e := &Exon{
		Transcript: t,
		Name:       name,
		Start:      start,
		End:        end,
		Strand:     strand,
		Block:      Unassigned,
	}
	t.Exons = append(t.Exons, e)
	return e
}

// Label returns the display label: the stable ID for annotated transcripts
// (when present), otherwise the name.
func (t *Transcript) Label() string {
	if t.Annotated && t.ID != "" {
		return t.ID
	}
	return t.Name
}

// Extent returns the smallest start and largest end over t's exons.
// ok is false when t has no exons.
func (t *Transcript) Extent() (start, end int, ok bool) {
	if len(t.Exons) == 0 {
		return 0, 0, false
	}
	start, end = t.Exons[0].Start, t.Exons[0].End
	for _, e := range t.Exons[1:] {
		start = min(start, e.Start)
		end = max(end, e.End)
	}
	return start, end, true
}

// Strand returns the strand of t's first exon, or NotOriented without exons.
func (t *Transcript) Strand() Strand {
	if len(t.Exons) == 0 {
		return NotOriented
	}
	return t.Exons[0].Strand
}

// ResetLayout clears block, region and display assignments so a new pass
// can run on t.
func (t *Transcript) ResetLayout() {
	t.DisplayIx = Unassigned
	t.Blocks = IDSet{}
	t.Regions = IDSet{}
	for _, e := range t.Exons {
		e.Block = Unassigned
		e.AdjStart = 0
	}
}

// Exon is a single exon of a transcript.
type Exon struct {
	Transcript *Transcript // owning transcript (non-owning reference)
	Name       string
	Start      int
	End        int
	Strand     Strand
	QScore     float64

	// Block is the block ID assigned by partitioning; Unassigned until then.
	Block int
	// AdjStart is the exon's start in display space.
	AdjStart int

	Leading  int // leading soft-clipped bases (first exon of a read)
	Trailing int // trailing soft-clipped bases (last exon of a read)
}

// Len returns the number of bases covered by e.
func (e *Exon) Len() int { return e.End - e.Start + 1 }

// Annotated reports whether e belongs to an annotated transcript.
func (e *Exon) Annotated() bool { return e.Transcript != nil && e.Transcript.Annotated }

// Block is a maximal genomic span covered by at least one exon, separated
// from its neighbours by sequence with zero coverage.
type Block struct {
	Start int `json:"start"` // genomic start, always <= End
	End   int `json:"end"`
	// Boundary is the block's right-hand edge in display space.
	Boundary  int  `json:"boundary"`
	Annotated bool `json:"annotated"`
}

// Exons flattens the exons of all transcripts, preserving transcript order
// and each transcript's own exon order.
func Exons(transcripts []*Transcript) []*Exon {
	n := 0
	for _, t := range transcripts {
		n += len(t.Exons)
	}
	out := make([]*Exon, 0, n)
	for _, t := range transcripts {
		out = append(out, t.Exons...)
	}
	return out
}

// Annotated returns the annotated subset of transcripts.
func Annotated(transcripts []*Transcript) []*Transcript {
	var out []*Transcript
	for _, t := range transcripts {
		if t.Annotated {
			out = append(out, t)
		}
	}
	return out
}

// ReadDerived returns the non-annotated subset of transcripts.
func ReadDerived(transcripts []*Transcript) []*Transcript {
	var out []*Transcript
	for _, t := range transcripts {
		if !t.Annotated {
			out = append(out, t)
		}
	}
	return out
}
