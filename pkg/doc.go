// Package pkg provides the core libraries of clusterview.
//
// # Overview
//
// clusterview lays out the isoforms of a gene for side-by-side display.
// Its input is a transcript set per gene: annotated reference transcripts
// plus read-derived isoform clusters from long-read sequencing. Its output
// is a layout: exons merged into blocks with the introns collapsed,
// transcripts ordered so that similar isoforms sit next to each other, and
// read-derived transcripts grouped by exon coverage for every cluster count
// from 1 to K.
//
// # Architecture
//
// The data flow through clusterview:
//
//	transcript-set JSON
//	         ↓
//	    [io] (decode, select gene, load transcripts)
//	         ↓
//	    [blocks] (partition exons into display blocks)
//	         ↓
//	    [regions] (tag transcripts with fine-grained regions)
//	         ↓
//	    [ordering]          [cluster]
//	    (display order)     (k-means groups per k)
//	         ↓
//	    [pipeline].Layout → layout JSON, FASTA per cluster
//
// # Quick Start
//
//	sets, _ := io.ImportTranscriptSets("matches.json")
//	set, _, _ := io.SelectGene(sets, "GAPDH")
//	transcripts, _, _ := io.Load(set)
//
//	opts := pipeline.DefaultOptions()
//	opts.Seed = 7
//	layout, _, err := pipeline.ComputeLayout(ctx, set.Gene, transcripts, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(layout.Order.Labels)
//
// # Main Packages
//
// [isoform] - Transcript, exon and block types shared by every stage.
//
// [blocks] - Forward and reverse partition of exons into blocks, with
// display-space coordinates.
//
// [regions] - Region sweep over exon edges; the similarity signal for
// ordering.
//
// [ordering] - Greedy nearest-neighbour tour over region sets, and label
// shortening.
//
// [cluster] - Coverage overlap, the pairwise distance matrix and seeded
// k-means.
//
// [pipeline] - Stage orchestration with caching ([pipeline.Runner]).
//
// [cache] - Layout caches: file, Redis, and a null cache.
//
// [io] - Transcript-set and layout JSON, cluster names, FASTA export.
//
// [errors] - Coded errors shared by all packages.
//
// [observability] - Stage and cache hooks.
//
// # Testing
//
//	go test ./pkg/...
//	go test -run Example ./pkg/...
//
// [isoform]: https://pkg.go.dev/github.com/matzehuels/clusterview/pkg/isoform
// [blocks]: https://pkg.go.dev/github.com/matzehuels/clusterview/pkg/blocks
// [regions]: https://pkg.go.dev/github.com/matzehuels/clusterview/pkg/regions
// [ordering]: https://pkg.go.dev/github.com/matzehuels/clusterview/pkg/ordering
// [cluster]: https://pkg.go.dev/github.com/matzehuels/clusterview/pkg/cluster
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/clusterview/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/clusterview/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/clusterview/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/clusterview/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/clusterview/pkg/observability
package pkg
