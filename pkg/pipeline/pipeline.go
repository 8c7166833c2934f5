// Package pipeline computes the layout of one gene's transcripts.
//
// The layout pipeline runs four stages over the transcripts of a gene:
//
//  1. Partition: merge all exons into blocks (display space) and the
//     annotated exons into annotation blocks
//  2. Regions: tag transcripts with the fine-grained regions they cover
//  3. Ordering: arrange transcripts by region similarity
//  4. Cluster: group read-derived transcripts for k = 1..MaxClusters
//
// Ordering and clustering both read the region and coverage data of the
// earlier stages but not each other's output. Any stage error aborts the
// gene; no partial layout is returned. A gene with no transcripts (after
// scoping) yields a layout marked Empty rather than an error.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Seed = 7
//	result, err := runner.Execute(ctx, "GAPDH", transcripts, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Layout.Order.Labels)
//
// [ComputeLayout] runs the stages without a cache.
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clusterview/pkg/blocks"
	"github.com/matzehuels/clusterview/pkg/cache"
	"github.com/matzehuels/clusterview/pkg/cluster"
	"github.com/matzehuels/clusterview/pkg/errors"
	"github.com/matzehuels/clusterview/pkg/isoform"
	"github.com/matzehuels/clusterview/pkg/ordering"
	"github.com/matzehuels/clusterview/pkg/regions"
)

// Defaults shared by the CLI and library callers.
const (
	DefaultMinRegionSize = regions.DefaultMinRegionSize
	DefaultMaxClusters   = cluster.DefaultMaxClusters
	DefaultRestarts      = cluster.DefaultRestarts
	DefaultStrand        = StrandAuto
)

// Strand modes select the block scan direction.
const (
	StrandAuto    = "auto"
	StrandForward = "forward"
	StrandReverse = "reverse"
)

// ValidStrandModes is the set of accepted strand modes.
var ValidStrandModes = map[string]bool{
	StrandAuto:    true,
	StrandForward: true,
	StrandReverse: true,
}

// ValidateStrand checks a strand mode.
func ValidateStrand(mode string) error {
	if !ValidStrandModes[mode] {
		return errors.Configuration("invalid strand mode: %q (must be one of: auto, forward, reverse)", mode)
	}
	return nil
}

// Options configures a layout run.
type Options struct {
	MinRegionSize int    `json:"min_region_size"`
	MaxClusters   int    `json:"max_clusters"`
	Seed          uint64 `json:"seed,omitempty"` // 0 is unseeded and never cached
	Restarts      int    `json:"restarts,omitempty"`
	Strand        string `json:"strand,omitempty"`

	// ScopeStart and ScopeEnd restrict the layout to transcripts overlapping
	// [ScopeStart, ScopeEnd]. Both zero disables scoping.
	ScopeStart int `json:"scope_start,omitempty"`
	ScopeEnd   int `json:"scope_end,omitempty"`

	ShortLabels bool `json:"short_labels,omitempty"`
	Refresh     bool `json:"refresh,omitempty"` // recompute even on a cache hit

	Logger  *log.Logger      `json:"-"`
	Orderer ordering.Orderer `json:"-"`
}

// DefaultOptions returns options with every default filled in.
func DefaultOptions() Options {
	return Options{
		MinRegionSize: DefaultMinRegionSize,
		MaxClusters:   DefaultMaxClusters,
		Restarts:      DefaultRestarts,
		Strand:        DefaultStrand,
	}
}

// Validate checks o and fills in the defaults that have no meaningful zero
// value (restarts, strand mode, logger). MinRegionSize 0 and MaxClusters
// are taken as given.
func (o *Options) Validate() error {
	if o.MinRegionSize < 0 {
		return errors.Configuration("minimum region size must not be negative, got %d", o.MinRegionSize)
	}
	if o.MaxClusters <= 0 {
		return errors.Configuration("maximum number of clusters must be positive, got %d", o.MaxClusters)
	}
	if o.Restarts < 0 {
		return errors.Configuration("k-means restarts must not be negative, got %d", o.Restarts)
	}
	if o.Restarts == 0 {
		o.Restarts = DefaultRestarts
	}
	if o.Strand == "" {
		o.Strand = DefaultStrand
	}
	if err := ValidateStrand(o.Strand); err != nil {
		return err
	}
	if o.Scoped() && o.ScopeStart > o.ScopeEnd {
		return errors.Configuration("scope start %d is after scope end %d", o.ScopeStart, o.ScopeEnd)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Scoped reports whether a scope window is set.
func (o *Options) Scoped() bool { return o.ScopeStart != 0 || o.ScopeEnd != 0 }

// Cacheable reports whether results for o are reproducible and may be cached.
func (o *Options) Cacheable() bool { return o.Seed != 0 }

// LayoutKeyOpts returns the cache key options for a layout of gene.
func (o *Options) LayoutKeyOpts(gene string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Gene:          gene,
		MinRegionSize: o.MinRegionSize,
		MaxClusters:   o.MaxClusters,
		Seed:          o.Seed,
		Restarts:      o.Restarts,
		Strand:        o.Strand,
		ScopeStart:    o.ScopeStart,
		ScopeEnd:      o.ScopeEnd,
		ShortLabels:   o.ShortLabels,
	}
}

// direction resolves the strand mode for transcripts. Auto follows the
// strand of the first exon.
func (o *Options) direction(transcripts []*isoform.Transcript) blocks.Direction {
	switch o.Strand {
	case StrandForward:
		return blocks.Forward
	case StrandReverse:
		return blocks.Reverse
	}
	if t := oriented(transcripts); t != nil {
		return blocks.DirectionFor(t.Strand())
	}
	return blocks.Forward
}

// oriented returns the first transcript with exons, or nil.
func oriented(transcripts []*isoform.Transcript) *isoform.Transcript {
	for _, t := range transcripts {
		if len(t.Exons) > 0 {
			return t
		}
	}
	return nil
}

// scope returns the transcripts overlapping the scope window, or all of them
// when no window is set. Transcripts without exons are kept.
func (o *Options) scope(transcripts []*isoform.Transcript) []*isoform.Transcript {
	if !o.Scoped() {
		return slices.Clone(transcripts)
	}
	var out []*isoform.Transcript
	for _, t := range transcripts {
		start, end, ok := t.Extent()
		if !ok || (end >= o.ScopeStart && start <= o.ScopeEnd) {
			out = append(out, t)
		}
	}
	return out
}

// Result is the outcome of a [Runner.Execute] call.
type Result struct {
	Layout    *Layout
	InputHash string
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains sizes and stage timings of a run. Timings are zero on a
// cache hit.
type Stats struct {
	Transcripts   int
	Exons         int
	PartitionTime time.Duration
	RegionsTime   time.Duration
	OrderingTime  time.Duration
	ClusterTime   time.Duration
}

// CacheInfo reports how the cache was used.
type CacheInfo struct {
	Cacheable bool // false for unseeded runs
	LayoutHit bool
}
