// Package cluster groups read-derived transcripts by structural similarity.
//
// Each transcript is reduced to its coverage: the set of bases covered by
// at least one of its exons, measured from the smallest start over the
// group. Two coverages of sizes s1 and s2 sharing o bases are at distance
//
//	(s1 + s2 - 2o) / (s1 + s2 - o)
//
// which is 0 for identical coverage and 1 when nothing is shared. The full
// pairwise distance matrix is clustered with k-means for every k from 1 up
// to a maximum, so a display can switch granularity without recomputing.
//
// Annotated transcripts are never clustered. Clustering a set with no
// read-derived transcripts yields a nil [Groupings], not an error.
//
// # Reproducibility
//
// k-means starts from random centers. A non-zero seed makes every run with
// the same input produce the same labels. Seed 0 draws a fresh seed, so
// repeated runs may differ in label identity (and, for ambiguous inputs, in
// the partition itself). Labels are renumbered so that the first transcript
// is always in group 0 and new groups are numbered in order of first
// appearance.
package cluster
