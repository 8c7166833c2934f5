package pipeline

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/clusterview/pkg/cache"
	"github.com/matzehuels/clusterview/pkg/errors"
	"github.com/matzehuels/clusterview/pkg/isoform"
	"github.com/matzehuels/clusterview/pkg/observability"
)

func tr(name string, annotated bool, strand isoform.Strand, spans ...[2]int) *isoform.Transcript {
	t := isoform.NewTranscript(name, annotated)
	for i, sp := range spans {
		t.AddExon(name+"/"+string(rune('0'+i)), sp[0], sp[1], strand)
	}
	t.Start, t.End, _ = t.Extent()
	return t
}

func gene(strand isoform.Strand) []*isoform.Transcript {
	ref := tr("GENE-201", true, strand, [2]int{1000, 1200}, [2]int{2000, 2100}, [2]int{3000, 3300})
	ref.ID = "ENST0001"
	return []*isoform.Transcript{
		ref,
		tr("c1/f10p2/600", false, strand, [2]int{1000, 1200}, [2]int{2000, 2100}, [2]int{3000, 3300}),
		tr("c2/f5p1/400", false, strand, [2]int{1050, 1200}, [2]int{3000, 3300}),
		tr("c3/f2p0/300", false, strand, [2]int{2000, 2100}, [2]int{3000, 3250}),
		tr("c4/f1p0/200", false, strand, [2]int{5000, 5200}),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		want   errors.Code
	}{
		{"defaults", func(*Options) {}, ""},
		{"zero region size", func(o *Options) { o.MinRegionSize = 0 }, ""},
		{"negative region size", func(o *Options) { o.MinRegionSize = -1 }, errors.ErrCodeConfiguration},
		{"zero clusters", func(o *Options) { o.MaxClusters = 0 }, errors.ErrCodeConfiguration},
		{"negative restarts", func(o *Options) { o.Restarts = -2 }, errors.ErrCodeConfiguration},
		{"bad strand", func(o *Options) { o.Strand = "sideways" }, errors.ErrCodeConfiguration},
		{"inverted scope", func(o *Options) { o.ScopeStart, o.ScopeEnd = 500, 100 }, errors.ErrCodeConfiguration},
		{"scope", func(o *Options) { o.ScopeStart, o.ScopeEnd = 100, 500 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("Validate() code = %q, want %q (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	opts := Options{MaxClusters: 3}
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}
	if opts.Restarts != DefaultRestarts || opts.Strand != StrandAuto || opts.Logger == nil {
		t.Errorf("defaults not applied: %+v", opts)
	}
}

func TestComputeLayout(t *testing.T) {
	trs := gene(isoform.Forward)
	opts := DefaultOptions()
	opts.Seed = 3

	l, stats, err := ComputeLayout(context.Background(), "GENE", trs, opts)
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	if l.Empty {
		t.Fatal("layout should not be empty")
	}
	if l.Direction != "forward" || l.Strand != "+" {
		t.Errorf("direction = %s, strand = %s", l.Direction, l.Strand)
	}
	if len(l.Blocks) != 4 {
		t.Errorf("blocks = %d, want 4", len(l.Blocks))
	}
	if len(l.AnnotationBlocks) != 3 {
		t.Errorf("annotation blocks = %d, want 3", len(l.AnnotationBlocks))
	}
	if l.Regions == 0 {
		t.Error("expected regions")
	}
	if stats.Transcripts != 5 || stats.Exons != 11 {
		t.Errorf("stats = %+v", stats)
	}

	// The ordering is a permutation starting at the first transcript.
	if l.Order.Len() != len(trs) || l.Order.Indices[0] != 0 {
		t.Fatalf("order = %v", l.Order.Indices)
	}
	ix := make([]int, 0, len(trs))
	for _, t := range trs {
		ix = append(ix, t.DisplayIx)
	}
	slices.Sort(ix)
	if !slices.Equal(ix, []int{0, 1, 2, 3, 4}) {
		t.Errorf("display indices = %v", ix)
	}
	if l.Order.Labels[0] != "ENST0001" {
		t.Errorf("annotated label = %s, want its ID", l.Order.Labels[0])
	}

	if l.Groups == nil {
		t.Fatal("expected groupings")
	}
	if l.Groups.Len() != 4 || l.Groups.K() != 4 {
		t.Errorf("groups: len %d, k %d", l.Groups.Len(), l.Groups.K())
	}
	if len(l.Distances) != 4 {
		t.Errorf("distances rows = %d", len(l.Distances))
	}

	if len(l.Transcripts) != len(trs) {
		t.Fatalf("placements = %d", len(l.Transcripts))
	}
	p := l.Transcripts[1]
	if p.Exons[0].AdjStart != 0 || p.Exons[0].AdjEnd != 200 {
		t.Errorf("first exon placed at [%d, %d]", p.Exons[0].AdjStart, p.Exons[0].AdjEnd)
	}
	if got, ok := l.Placement(0); !ok || got.Name != "GENE-201" {
		t.Errorf("Placement(0) = %v, %v", got.Name, ok)
	}
}

func TestComputeLayoutReverseAuto(t *testing.T) {
	l, _, err := ComputeLayout(context.Background(), "GENE", gene(isoform.Reverse), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if l.Direction != "reverse" || l.Strand != "-" {
		t.Errorf("direction = %s, strand = %s", l.Direction, l.Strand)
	}
	if l.Blocks[0].Start != 5000 {
		t.Errorf("reverse layout should start at the high-coordinate block, got %+v", l.Blocks[0])
	}

	opts := DefaultOptions()
	opts.Strand = StrandForward
	l, _, err = ComputeLayout(context.Background(), "GENE", gene(isoform.Reverse), opts)
	if err != nil {
		t.Fatal(err)
	}
	if l.Direction != "forward" || l.Blocks[0].Start != 1000 {
		t.Errorf("forced forward: direction %s, first block %+v", l.Direction, l.Blocks[0])
	}
}

func TestComputeLayoutStrandSkipsExonlessTranscripts(t *testing.T) {
	blank := isoform.NewTranscript("GENE-202", true)
	trs := append([]*isoform.Transcript{blank}, gene(isoform.Reverse)...)
	trs[1].Chrom = "chr12"

	l, _, err := ComputeLayout(context.Background(), "GENE", trs, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if l.Strand != "-" || l.Direction != "reverse" {
		t.Errorf("strand = %s, direction = %s, want - and reverse", l.Strand, l.Direction)
	}
	if l.Chrom != "chr12" {
		t.Errorf("chrom = %q, want chr12", l.Chrom)
	}
}

func TestComputeLayoutEmpty(t *testing.T) {
	l, _, err := ComputeLayout(context.Background(), "NONE", nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !l.Empty || l.Gene != "NONE" {
		t.Errorf("layout = %+v, want empty", l)
	}

	opts := DefaultOptions()
	opts.ScopeStart, opts.ScopeEnd = 100000, 200000
	l, _, err = ComputeLayout(context.Background(), "GENE", gene(isoform.Forward), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !l.Empty {
		t.Error("scope outside the gene should yield an empty layout")
	}
}

func TestComputeLayoutScope(t *testing.T) {
	opts := DefaultOptions()
	opts.ScopeStart, opts.ScopeEnd = 4000, 6000
	l, _, err := ComputeLayout(context.Background(), "GENE", gene(isoform.Forward), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Transcripts) != 1 || l.Transcripts[0].Name != "c4/f1p0/200" {
		t.Errorf("scoped transcripts = %+v", l.Transcripts)
	}
}

func TestComputeLayoutAnnotationOnly(t *testing.T) {
	trs := gene(isoform.Forward)[:1]
	l, _, err := ComputeLayout(context.Background(), "GENE", trs, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if l.Groups != nil {
		t.Error("no read-derived transcripts should yield no groupings")
	}
}

func TestComputeLayoutErrors(t *testing.T) {
	noExons := []*isoform.Transcript{isoform.NewTranscript("c1/f1p0/10", false)}
	_, _, err := ComputeLayout(context.Background(), "GENE", noExons, DefaultOptions())
	if !errors.Is(err, errors.ErrCodeDataIntegrity) {
		t.Errorf("err = %v, want DATA_INTEGRITY", err)
	}

	opts := DefaultOptions()
	opts.MaxClusters = 0
	_, _, err = ComputeLayout(context.Background(), "GENE", gene(isoform.Forward), opts)
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("err = %v, want CONFIGURATION", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = ComputeLayout(ctx, "GENE", gene(isoform.Forward), DefaultOptions())
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestComputeLayoutReportsStages(t *testing.T) {
	hooks := &stageRecorder{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	if _, _, err := ComputeLayout(context.Background(), "GENE", gene(isoform.Forward), DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	want := []observability.Stage{
		observability.StagePartition,
		observability.StageRegions,
		observability.StageOrdering,
		observability.StageCluster,
	}
	if !slices.Equal(hooks.completed, want) {
		t.Errorf("stages = %v, want %v", hooks.completed, want)
	}
}

func TestRunnerCachesSeededRuns(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := DefaultOptions()
	opts.Seed = 11

	first, err := r.Execute(ctx, "GENE", gene(isoform.Forward), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || !first.CacheInfo.Cacheable {
		t.Errorf("first run cache info = %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, "GENE", gene(isoform.Forward), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second seeded run should hit the cache")
	}
	if first.InputHash != second.InputHash {
		t.Error("identical inputs should hash identically")
	}
	if first.Layout.RunID == second.Layout.RunID || second.Layout.RunID == "" {
		t.Error("every run should get a fresh run ID")
	}
	if !slices.Equal(first.Layout.Order.Indices, second.Layout.Order.Indices) {
		t.Error("cached layout should match the computed one")
	}
	if !slices.Equal(first.Layout.Groups.Labels[1], second.Layout.Groups.Labels[1]) {
		t.Error("cached labels should match the computed ones")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, "GENE", gene(isoform.Forward), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerSkipsCacheWhenUnseeded(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	for range 2 {
		res, err := r.Execute(ctx, "GENE", gene(isoform.Forward), DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheInfo.Cacheable || res.CacheInfo.LayoutHit {
			t.Errorf("unseeded run cache info = %+v", res.CacheInfo)
		}
	}
}

func TestHashTranscripts(t *testing.T) {
	a := HashTranscripts(gene(isoform.Forward))
	if a != HashTranscripts(gene(isoform.Forward)) {
		t.Error("hash should be deterministic")
	}
	if a == HashTranscripts(gene(isoform.Reverse)) {
		t.Error("strand should change the hash")
	}

	mutations := map[string]func([]*isoform.Transcript){
		"leading clip":  func(trs []*isoform.Transcript) { trs[1].Exons[0].Leading = 3 },
		"trailing clip": func(trs []*isoform.Transcript) { trs[1].Exons[2].Trailing = 7 },
		"exon name":     func(trs []*isoform.Transcript) { trs[0].Exons[1].Name = "exon-2b" },
		"chrom":         func(trs []*isoform.Transcript) { trs[0].Chrom = "chr12" },
	}
	for name, mutate := range mutations {
		trs := gene(isoform.Forward)
		mutate(trs)
		if HashTranscripts(trs) == a {
			t.Errorf("%s should change the hash", name)
		}
	}
}

func TestRunnerMissesOnChangedSoftClip(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := DefaultOptions()
	opts.Seed = 5

	run := func(leading int) *Result {
		trs := gene(isoform.Forward)
		trs[1].Exons[0].Leading = leading
		res, err := r.Execute(ctx, "GENE", trs, opts)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	run(3)
	res := run(99)
	if res.CacheInfo.LayoutHit {
		t.Error("changed soft clip should not hit the cache")
	}
	if got := res.Layout.Transcripts[1].Exons[0].Leading; got != 99 {
		t.Errorf("leading = %d, want 99", got)
	}
}

type stageRecorder struct{ completed []observability.Stage }

func (s *stageRecorder) OnStageStart(context.Context, observability.Stage, string) {}
func (s *stageRecorder) OnStageComplete(_ context.Context, st observability.Stage, _ string, _ time.Duration, _ error) {
	s.completed = append(s.completed, st)
}
