package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/clusterview/pkg/blocks"
	"github.com/matzehuels/clusterview/pkg/cluster"
	"github.com/matzehuels/clusterview/pkg/isoform"
	"github.com/matzehuels/clusterview/pkg/observability"
	"github.com/matzehuels/clusterview/pkg/ordering"
	"github.com/matzehuels/clusterview/pkg/regions"
)

// Layout is the serializable result of the layout pipeline for one gene.
type Layout struct {
	RunID     string `json:"run_id"`
	Gene      string `json:"gene"`
	Chrom     string `json:"chrom,omitempty"`
	Strand    string `json:"strand"`
	Direction string `json:"direction"`

	// Empty is set when there were no transcripts to lay out; every other
	// field except RunID and Gene is then zero.
	Empty bool `json:"empty"`

	Blocks           []isoform.Block `json:"blocks"`
	AnnotationBlocks []isoform.Block `json:"annotation_blocks"`
	Span             int             `json:"span"`
	Regions          int             `json:"regions"`

	Transcripts []Placement   `json:"transcripts"`
	Order       ordering.Tour `json:"order"`

	Groups    *cluster.Groupings `json:"groups,omitempty"`
	Distances [][]float64        `json:"distances,omitempty"`
}

// Placement is one transcript in display space.
type Placement struct {
	Name      string        `json:"name"`
	ID        string        `json:"id,omitempty"`
	Label     string        `json:"label"`
	Annotated bool          `json:"annotated"`
	Full      int           `json:"full,omitempty"`
	Partial   int           `json:"partial,omitempty"`
	DisplayIx int           `json:"display_ix"`
	Blocks    isoform.IDSet `json:"blocks"`
	Regions   isoform.IDSet `json:"regions"`
	Exons     []ExonPlace   `json:"exons"`
}

// ExonPlace is one exon in display space. AdjStart and AdjEnd are
// inclusive display coordinates.
type ExonPlace struct {
	Name     string `json:"name"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Block    int    `json:"block"`
	AdjStart int    `json:"adj_start"`
	AdjEnd   int    `json:"adj_end"`
	Leading  int    `json:"leading,omitempty"`
	Trailing int    `json:"trailing,omitempty"`
}

// Placement returns the placement of the transcript shown at display row
// ix, or false if there is none.
func (l *Layout) Placement(ix int) (Placement, bool) {
	for _, p := range l.Transcripts {
		if p.DisplayIx == ix {
			return p, true
		}
	}
	return Placement{}, false
}

// ComputeLayout runs every stage over transcripts without caching. It
// resets and then rewrites the block, region and display assignments of the
// transcripts it keeps.
func ComputeLayout(ctx context.Context, gene string, transcripts []*isoform.Transcript, opts Options) (*Layout, Stats, error) {
	var stats Stats
	if err := opts.Validate(); err != nil {
		return nil, stats, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	trs := opts.scope(transcripts)
	stats.Transcripts = len(trs)
	if len(trs) == 0 {
		logger.Info("no transcripts to lay out", "gene", gene)
		return &Layout{Gene: gene, Empty: true}, stats, nil
	}
	for _, t := range trs {
		t.ResetLayout()
	}

	dir := opts.direction(trs)
	exons := isoform.Exons(trs)
	stats.Exons = len(exons)
	l := &Layout{
		Gene:      gene,
		Chrom:     trs[0].Chrom,
		Strand:    isoform.StrandSymbol(isoform.NotOriented),
		Direction: dir.String(),
	}
	if t := oriented(trs); t != nil {
		l.Chrom, l.Strand = t.Chrom, isoform.StrandSymbol(t.Strand())
	}

	err := stage(ctx, observability.StagePartition, gene, &stats.PartitionTime, func() error {
		var err error
		if l.Blocks, err = blocks.Assign(exons, dir); err != nil {
			return err
		}
		l.AnnotationBlocks, err = blocks.Annotation(exons, dir)
		return err
	})
	if err != nil {
		return nil, stats, err
	}
	l.Span = blocks.Span(l.Blocks)
	logger.Debug("partitioned exons",
		"exons", len(exons),
		"blocks", len(l.Blocks),
		"annotation_blocks", len(l.AnnotationBlocks),
		"duration", stats.PartitionTime)

	err = stage(ctx, observability.StageRegions, gene, &stats.RegionsTime, func() error {
		var err error
		l.Regions, err = regions.Find(trs, opts.MinRegionSize)
		return err
	})
	if err != nil {
		return nil, stats, err
	}
	logger.Debug("tagged regions", "regions", l.Regions, "duration", stats.RegionsTime)

	err = stage(ctx, observability.StageOrdering, gene, &stats.OrderingTime, func() error {
		l.Order = orderer(opts).Order(trs)
		l.Order.Apply(trs)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	logger.Debug("ordered transcripts", "transcripts", l.Order.Len(), "duration", stats.OrderingTime)

	err = stage(ctx, observability.StageCluster, gene, &stats.ClusterTime, func() error {
		var err error
		l.Groups, err = cluster.Group(trs, cluster.Options{
			MaxClusters: opts.MaxClusters,
			Seed:        opts.Seed,
			Restarts:    opts.Restarts,
		})
		return err
	})
	if err != nil {
		return nil, stats, err
	}
	if l.Groups != nil {
		l.Distances = l.Groups.Distances()
		logger.Debug("clustered reads", "reads", l.Groups.Len(), "k", l.Groups.K(), "duration", stats.ClusterTime)
	} else {
		logger.Debug("no read-derived transcripts to cluster")
	}

	l.Transcripts = placements(trs, l.Order)
	return l, stats, nil
}

// stage runs fn as one pipeline stage: it checks for cancellation, reports
// the stage to the observability hooks, records its duration in d and
// prefixes errors with the stage name.
func stage(ctx context.Context, s observability.Stage, gene string, d *time.Duration, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, s, gene)
	start := time.Now()
	err := fn()
	*d = time.Since(start)
	hooks.OnStageComplete(ctx, s, gene, *d, err)
	if err != nil {
		return fmt.Errorf("%s: %w", s, err)
	}
	return nil
}

func orderer(opts Options) ordering.Orderer {
	if opts.Orderer != nil {
		return opts.Orderer
	}
	if opts.ShortLabels {
		return ordering.NearestNeighbor{Label: func(t *isoform.Transcript) string {
			return ordering.ShortenLabel(t.Label())
		}}
	}
	return ordering.NearestNeighbor{}
}

func placements(trs []*isoform.Transcript, tour ordering.Tour) []Placement {
	out := make([]Placement, len(trs))
	for i, t := range trs {
		p := Placement{
			Name:      t.Name,
			ID:        t.ID,
			Label:     t.Label(),
			Annotated: t.Annotated,
			Full:      t.Full,
			Partial:   t.Partial,
			DisplayIx: t.DisplayIx,
			Blocks:    t.Blocks,
			Regions:   t.Regions,
			Exons:     make([]ExonPlace, len(t.Exons)),
		}
		if t.DisplayIx >= 0 && t.DisplayIx < len(tour.Labels) {
			p.Label = tour.Labels[t.DisplayIx]
		}
		for j, e := range t.Exons {
			p.Exons[j] = ExonPlace{
				Name:     e.Name,
				Start:    e.Start,
				End:      e.End,
				Block:    e.Block,
				AdjStart: e.AdjStart,
				AdjEnd:   e.AdjStart + e.End - e.Start,
				Leading:  e.Leading,
				Trailing: e.Trailing,
			}
		}
		out[i] = p
	}
	return out
}
