// Package blocks partitions a gene's exon coordinates into blocks.
//
// A block is a maximal run of sequence covered by at least one exon of any
// transcript. Blocks are laid side by side in display space with the
// intronic gaps between them collapsed to zero width, so every exon gets an
// adjusted start (its offset into the concatenated blocks) alongside its
// genomic coordinates.
//
// The sweep runs in one of two directions. [Forward] scans exons by
// ascending start and numbers blocks from the lowest coordinate; [Reverse]
// scans by descending end and numbers blocks from the highest coordinate, so
// that reverse-strand genes are laid out from their 5' end. Both directions
// share one implementation; the direction only supplies the coordinate
// accessors and comparisons.
//
// [Assign] partitions every exon (annotated and read-derived) and records the
// result on the exons and their transcripts. [Annotation] repeats the merge
// over the annotated exons only, yielding the coarser partition of the
// reference gene structure.
package blocks

import (
	"slices"

	"github.com/matzehuels/clusterview/pkg/errors"
	"github.com/matzehuels/clusterview/pkg/isoform"
)

// Direction selects the scan order of a partitioning sweep.
type Direction int

const (
	// Forward scans by ascending exon start.
	Forward Direction = iota
	// Reverse scans by descending exon end.
	Reverse
)

// DirectionFor returns Reverse for reverse-strand genes and Forward otherwise.
func DirectionFor(s isoform.Strand) Direction {
	if s == isoform.Reverse {
		return Reverse
	}
	return Forward
}

// String returns "forward" or "reverse".
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// lead is the coordinate at which the sweep first meets e.
func (d Direction) lead(e *isoform.Exon) int {
	if d == Reverse {
		return e.End
	}
	return e.Start
}

// trail is the coordinate at which the sweep leaves e.
func (d Direction) trail(e *isoform.Exon) int {
	if d == Reverse {
		return e.Start
	}
	return e.End
}

// within reports whether a lead coordinate still falls inside a block whose
// far edge is blockEnd.
func (d Direction) within(lead, blockEnd int) bool {
	if d == Reverse {
		return lead >= blockEnd
	}
	return lead <= blockEnd
}

// further returns whichever of a and b lies further along the sweep.
func (d Direction) further(a, b int) int {
	if d == Reverse {
		return min(a, b)
	}
	return max(a, b)
}

// distance is the unsigned number of bases from a to b along the sweep.
func (d Direction) distance(from, to int) int {
	if d == Reverse {
		return from - to
	}
	return to - from
}

// Sort returns a copy of exons in scan order for d: ascending start for
// Forward, descending end for Reverse. The sort is stable.
func Sort(exons []*isoform.Exon, d Direction) []*isoform.Exon {
	out := slices.Clone(exons)
	slices.SortStableFunc(out, func(a, b *isoform.Exon) int {
		if d == Reverse {
			return b.End - a.End
		}
		return a.Start - b.Start
	})
	return out
}

// span is one merged block in sweep coordinates.
type span struct {
	first, last int // indices into the scanned exon slice, last exclusive
	start, end  int // sweep coordinates: start is where the block was entered
}

// merge walks exons (already in scan order) and calls visit for each exon
// with the index of the block it falls in. It returns the merged spans.
func merge(exons []*isoform.Exon, d Direction, visit func(block int, e *isoform.Exon)) []span {
	var spans []span
	for ix := 0; ix < len(exons); {
		s := span{first: ix, start: d.lead(exons[ix]), end: d.trail(exons[ix])}
		for ix < len(exons) && d.within(d.lead(exons[ix]), s.end) {
			e := exons[ix]
			s.end = d.further(s.end, d.trail(e))
			if visit != nil {
				visit(len(spans), e)
			}
			ix++
		}
		s.last = ix
		spans = append(spans, s)
	}
	return spans
}

// toBlock converts a sweep span into a genomic block with the given boundary.
func toBlock(s span, boundary int) isoform.Block {
	return isoform.Block{
		Start:    min(s.start, s.end),
		End:      max(s.start, s.end),
		Boundary: boundary,
	}
}

// Assign partitions exons into blocks scanned in direction d.
//
// Each exon is stamped with its block ID and its start in display space, and
// the block ID is added to the owning transcript's block set. Block IDs are
// contiguous from 0 in scan order. Exons within a transcript are not
// reordered; Assign sorts its own copy of the slice.
//
// An empty exon list is a data-integrity error.
func Assign(exons []*isoform.Exon, d Direction) ([]isoform.Block, error) {
	if len(exons) == 0 {
		return nil, errors.DataIntegrity("no exons to partition into blocks")
	}
	sorted := Sort(exons, d)

	annotated := map[int]bool{}
	spans := merge(sorted, d, func(block int, e *isoform.Exon) {
		e.Block = block
		e.Transcript.Blocks.Add(block)
		if e.Annotated() {
			annotated[block] = true
		}
	})

	blocks := make([]isoform.Block, len(spans))
	adjust := 0
	for i, s := range spans {
		for _, e := range sorted[s.first:s.last] {
			e.AdjStart = d.distance(s.start, d.lead(e)) + adjust
		}
		adjust += d.distance(s.start, s.end) + 1
		blocks[i] = toBlock(s, adjust)
		blocks[i].Annotated = annotated[i]
	}
	return blocks, nil
}

// Annotation merges only the exons of annotated transcripts, producing the
// partition of the reference gene structure. It stamps nothing on the exons.
//
// Boundaries continue from the display-space start of the first annotated
// exon in scan order, so [Assign] must have run on the same exons first.
// When no exon is annotated the result is empty; an empty exon list is a
// data-integrity error.
func Annotation(exons []*isoform.Exon, d Direction) ([]isoform.Block, error) {
	if len(exons) == 0 {
		return nil, errors.DataIntegrity("no exons to partition into annotation blocks")
	}

	var annot []*isoform.Exon
	for _, e := range Sort(exons, d) {
		if e.Annotated() {
			annot = append(annot, e)
		}
	}
	if len(annot) == 0 {
		return nil, nil
	}
	if annot[0].Block == isoform.Unassigned {
		return nil, errors.DataIntegrity("annotation blocks require assigned exon blocks")
	}

	spans := merge(annot, d, nil)
	blocks := make([]isoform.Block, len(spans))
	adjust := annot[0].AdjStart
	for i, s := range spans {
		adjust += d.distance(s.start, s.end) + 1
		blocks[i] = toBlock(s, adjust)
		blocks[i].Annotated = true
	}
	return blocks, nil
}

// Span returns the total display-space width of blocks.
func Span(blocks []isoform.Block) int {
	if len(blocks) == 0 {
		return 0
	}
	return blocks[len(blocks)-1].Boundary
}
