// Package ordering arranges transcripts so that similar isoforms sit next to
// each other in a display.
//
// The similarity signal is region occupancy (see pkg/regions): the distance
// between two transcripts is the number of regions covered by exactly one of
// them. How many exons fall in a region, or how long they are, is not looked
// at.
//
// [NearestNeighbor] builds the order with a greedy nearest-neighbour tour.
// Finding the order that minimises the summed distance between neighbours is
// a travelling-salesman problem; the greedy tour is O(n²) in the number of
// transcripts, which is small for a single gene.
//
// Orderers return a [Tour] rather than writing display indices as a side
// effect. Callers that want the indices on the transcripts call [Tour.Apply].
package ordering

import (
	"github.com/matzehuels/clusterview/pkg/isoform"
)

// Orderer determines the display order of a gene's transcripts.
type Orderer interface {
	Order(transcripts []*isoform.Transcript) Tour
}

// Tour is a display order over a transcript list.
type Tour struct {
	// Indices lists transcript positions (into the ordered slice) in
	// visiting order.
	Indices []int `json:"indices"`
	// Labels are the display labels in visiting order.
	Labels []string `json:"labels"`
}

// Len returns the number of transcripts in the tour.
func (t Tour) Len() int { return len(t.Indices) }

// DisplayIx returns, for each transcript position, its display index.
func (t Tour) DisplayIx() []int {
	out := make([]int, len(t.Indices))
	for pos, ix := range t.Indices {
		out[ix] = pos
	}
	return out
}

// Apply writes each transcript's display index. transcripts must be the
// slice the tour was computed from.
func (t Tour) Apply(transcripts []*isoform.Transcript) {
	for pos, ix := range t.Indices {
		transcripts[ix].DisplayIx = pos
	}
}

// Distance is the number of regions covered by exactly one of a and b.
func Distance(a, b *isoform.Transcript) int {
	return a.Regions.SymmetricDifference(b.Regions)
}
