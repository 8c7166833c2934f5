package cluster

import (
	"slices"

	"github.com/biogo/store/interval"

	"github.com/matzehuels/clusterview/pkg/isoform"
)

// span is a half-open run of covered bases, relative to a coverage origin.
type span struct {
	start, end int
	id         uintptr
}

func (s span) Overlap(b interval.IntRange) bool { return s.end > b.Start && s.start < b.End }
func (s span) ID() uintptr                      { return s.id }
func (s span) Range() interval.IntRange         { return interval.IntRange{Start: s.start, End: s.end} }

// Coverage is the set of bases covered by a transcript's exons.
type Coverage struct {
	Name  string
	spans []span
	size  int
	tree  interval.IntTree
}

// NewCoverage computes the coverage of t with coordinates measured from
// origin. Exon coordinates are inclusive; overlapping exons are merged so
// each base counts once.
func NewCoverage(t *isoform.Transcript, origin int) (*Coverage, error) {
	c := &Coverage{Name: t.Name}

	raw := make([]span, 0, len(t.Exons))
	for _, e := range t.Exons {
		lo, hi := min(e.Start, e.End), max(e.Start, e.End)
		raw = append(raw, span{start: lo - origin, end: hi - origin + 1})
	}
	slices.SortFunc(raw, func(a, b span) int { return a.start - b.start })

	for _, s := range raw {
		if n := len(c.spans); n > 0 && s.start <= c.spans[n-1].end {
			c.spans[n-1].end = max(c.spans[n-1].end, s.end)
			continue
		}
		c.spans = append(c.spans, s)
	}
	for i := range c.spans {
		c.spans[i].id = uintptr(i)
		c.size += c.spans[i].end - c.spans[i].start
		if err := c.tree.Insert(c.spans[i], true); err != nil {
			return nil, err
		}
	}
	c.tree.AdjustRanges()
	return c, nil
}

// Len returns the number of covered bases.
func (c *Coverage) Len() int { return c.size }

// Overlap returns the number of bases covered by both c and o.
func (c *Coverage) Overlap(o *Coverage) int {
	small, large := c, o
	if len(small.spans) > len(large.spans) {
		small, large = large, small
	}
	total := 0
	for _, q := range small.spans {
		large.tree.DoMatching(func(iv interval.IntInterface) bool {
			r := iv.Range()
			total += min(r.End, q.end) - max(r.Start, q.start)
			return false
		}, q)
	}
	return total
}
