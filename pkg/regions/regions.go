// Package regions tags transcripts with the fine-grained regions they cover.
//
// Regions are a finer partition than blocks. A block boundary only occurs
// where exon coverage across all transcripts drops to zero; a region boundary
// occurs at every exon edge, merged with neighbouring edges closer than a
// minimum region size. In the picture below the exons form one block but
// five regions:
//
//	==============
//	       ==============
//	                  ==================
//	|      |     |    | |              |
//
// Region membership is the similarity signal used to order transcripts
// (see pkg/ordering): block occupancy alone is too coarse to separate
// isoforms that differ by an alternative splice site.
package regions

import (
	"slices"

	"github.com/matzehuels/clusterview/pkg/errors"
	"github.com/matzehuels/clusterview/pkg/isoform"
)

// DefaultMinRegionSize is the default minimum region size in bases.
const DefaultMinRegionSize = 50

type eventKind int

const (
	open eventKind = iota
	closing
)

// event is an exon edge owned by the transcript at index tran.
type event struct {
	pos  int
	kind eventKind
	tran int
}

// Find sweeps the exon edges of transcripts and adds the IDs of the regions
// each transcript covers to its Regions set. It returns the number of
// regions found.
//
// A new region starts whenever the next edge lies more than minRegionSize
// bases past the start of the current one; the transcripts with an exon open
// at that point are tagged with the region being closed. Stretches with no
// open exon produce no region. After the last edge, the transcripts covering
// a final region of non-zero width are tagged with one more region so that
// no covered transcript is left untagged. A transcript whose last open exon
// ends exactly on a region's first edge does not cover that region.
//
// Transcripts are identified by their index in the slice; Find does not
// modify exon order or any other field.
func Find(transcripts []*isoform.Transcript, minRegionSize int) (int, error) {
	if minRegionSize < 0 {
		return 0, errors.Configuration("minimum region size must not be negative, got %d", minRegionSize)
	}

	var events []event
	for ix, t := range transcripts {
		for _, e := range t.Exons {
			events = append(events,
				event{pos: e.Start, kind: open, tran: ix},
				event{pos: e.End, kind: closing, tran: ix},
			)
		}
	}
	if len(events) == 0 {
		return 0, nil
	}
	slices.SortStableFunc(events, func(a, b event) int { return a.pos - b.pos })

	var (
		region  int
		curPos  = events[0].pos
		depth   = make(map[int]int)      // open exon count per transcript
		pending = make(map[int]struct{}) // transcripts covering the current region
	)
	tag := func(set map[int]struct{}) {
		for ix := range set {
			transcripts[ix].Regions.Add(region)
		}
		region++
	}

	for _, ev := range events {
		if ev.pos > curPos+minRegionSize {
			if len(depth) > 0 {
				tag(openSet(depth))
			}
			curPos = ev.pos
			clear(pending)
			for ix := range depth {
				pending[ix] = struct{}{}
			}
		}
		switch ev.kind {
		case open:
			depth[ev.tran]++
			pending[ev.tran] = struct{}{}
		case closing:
			if depth[ev.tran]--; depth[ev.tran] <= 0 {
				delete(depth, ev.tran)
				if ev.pos == curPos {
					// Closed on the boundary: not open in the current region.
					delete(pending, ev.tran)
				}
			}
		}
	}

	if last := events[len(events)-1].pos; last > curPos && len(pending) > 0 {
		tag(pending)
	}
	return region, nil
}

func openSet(depth map[int]int) map[int]struct{} {
	set := make(map[int]struct{}, len(depth))
	for ix := range depth {
		set[ix] = struct{}{}
	}
	return set
}
