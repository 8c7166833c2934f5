package ordering

import (
	"github.com/matzehuels/clusterview/pkg/isoform"
)

// NearestNeighbor orders transcripts with a greedy nearest-neighbour tour
// over region-set distance.
//
// The tour starts at the first transcript. Each step moves to the unvisited
// transcript closest to the current one; ties go to the transcript that
// appears first in the input.
type NearestNeighbor struct {
	// Label overrides the display label of each transcript. When nil,
	// [isoform.Transcript.Label] is used.
	Label func(*isoform.Transcript) string
}

// Order implements [Orderer].
func (o NearestNeighbor) Order(transcripts []*isoform.Transcript) Tour {
	n := len(transcripts)
	tour := Tour{Indices: make([]int, 0, n), Labels: make([]string, 0, n)}
	if n == 0 {
		return tour
	}

	label := o.Label
	if label == nil {
		label = (*isoform.Transcript).Label
	}

	visited := make([]bool, n)
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}

	cur := 0
	for {
		visited[cur] = true
		tour.Indices = append(tour.Indices, cur)
		tour.Labels = append(tour.Labels, label(transcripts[cur]))

		from := transcripts[cur]
		next, ok := Best(positions, func(ix int) (int, bool) {
			if visited[ix] {
				return 0, false
			}
			return Distance(from, transcripts[ix]), true
		}, Lower[int])
		if !ok {
			return tour
		}
		cur = next
	}
}
