// Package isoform defines the transcript data model shared by the layout
// algorithms.
//
// A gene is described by a flat list of [Transcript] values. Each transcript
// exclusively owns an ordered list of [Exon] values; the exon keeps a
// non-owning back-reference to its transcript so that algorithms working on a
// flattened exon list (see [Exons]) can record per-transcript membership.
//
// Transcripts come from two sources:
//   - annotated reference transcripts (Annotated = true), typically loaded
//     from a gene annotation
//   - read-derived transcripts (clusters of long reads matched to the gene),
//     which may carry full/partial read counts, soft-clip counts and bases
//
// # Lifecycle
//
// Records are created by a loader (see pkg/io), mutated in place by the
// partitioning passes (block and region membership, adjusted coordinates),
// and discarded once the layout has been exported. Nothing here is safe for
// concurrent mutation.
//
// # Coordinates
//
// Exon coordinates are 1-based and inclusive: an exon with Start 100 and End
// 200 covers 101 bases. Display-space coordinates (AdjStart, Block.Boundary)
// collapse the gaps between blocks to zero width and carry no biological
// meaning.
package isoform
