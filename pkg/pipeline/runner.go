package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/clusterview/pkg/cache"
	"github.com/matzehuels/clusterview/pkg/isoform"
	"github.com/matzehuels/clusterview/pkg/observability"
)

// Runner executes the layout pipeline with result caching.
//
// A Runner holds no per-run state; one Runner may serve several goroutines
// as long as they pass disjoint transcript slices.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer uses
// [cache.DefaultKeyer] and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute lays out the transcripts of gene.
//
// Seeded runs are looked up in and stored to the cache under a key derived
// from the transcripts and the options. Unseeded runs are always computed.
// Every call gets a fresh run ID; on a cache hit the transcripts themselves
// are not modified.
func (r *Runner) Execute(ctx context.Context, gene string, transcripts []*isoform.Transcript, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{InputHash: HashTranscripts(transcripts)}
	result.CacheInfo.Cacheable = opts.Cacheable()
	key := r.Keyer.LayoutKey(result.InputHash, opts.LayoutKeyOpts(gene))

	if result.CacheInfo.Cacheable && !opts.Refresh {
		if l, ok := r.cached(ctx, key); ok {
			l.RunID = uuid.NewString()
			result.Layout = l
			result.CacheInfo.LayoutHit = true
			r.Logger.Debug("layout cache hit", "gene", gene)
			return result, nil
		}
	}

	l, stats, err := ComputeLayout(ctx, gene, transcripts, opts)
	if err != nil {
		return nil, err
	}
	l.RunID = uuid.NewString()
	result.Layout = l
	result.Stats = stats

	r.Logger.Info("computed layout",
		"gene", gene,
		"transcripts", stats.Transcripts,
		"blocks", len(l.Blocks),
		"regions", l.Regions,
		"duration", stats.PartitionTime+stats.RegionsTime+stats.OrderingTime+stats.ClusterTime)

	if result.CacheInfo.Cacheable {
		r.store(ctx, key, l)
	}
	return result, nil
}

func (r *Runner) cached(ctx context.Context, key string) (*Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return &l, true
}

func (r *Runner) store(ctx context.Context, key string, l *Layout) {
	data, err := json.Marshal(l)
	if err != nil {
		r.Logger.Warn("encode layout for cache", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "layout", len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

type exonDigest struct {
	Name     string `json:"m,omitempty"`
	Start    int    `json:"s"`
	End      int    `json:"e"`
	Strand   string `json:"d"`
	Leading  int    `json:"l,omitempty"`
	Trailing int    `json:"t,omitempty"`
}

type transcriptDigest struct {
	Name      string       `json:"n"`
	ID        string       `json:"i,omitempty"`
	Annotated bool         `json:"a,omitempty"`
	Chrom     string       `json:"c,omitempty"`
	Full      int          `json:"f,omitempty"`
	Partial   int          `json:"p,omitempty"`
	Exons     []exonDigest `json:"x"`
}

// HashTranscripts returns a content hash over the fields of transcripts that
// influence or appear in a layout, in slice order.
func HashTranscripts(transcripts []*isoform.Transcript) string {
	digest := make([]transcriptDigest, len(transcripts))
	for i, t := range transcripts {
		d := transcriptDigest{
			Name:      t.Name,
			ID:        t.ID,
			Annotated: t.Annotated,
			Chrom:     t.Chrom,
			Full:      t.Full,
			Partial:   t.Partial,
		}
		for _, e := range t.Exons {
			d.Exons = append(d.Exons, exonDigest{
				Name:     e.Name,
				Start:    e.Start,
				End:      e.End,
				Strand:   isoform.StrandSymbol(e.Strand),
				Leading:  e.Leading,
				Trailing: e.Trailing,
			})
		}
		digest[i] = d
	}
	data, _ := json.Marshal(digest)
	return cache.Hash(data)
}
