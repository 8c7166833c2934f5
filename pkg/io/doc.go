// Package io reads transcript sets and writes layouts and read sequences.
//
// # Transcript Sets
//
// A transcript set is a JSON document holding, per gene, the annotated and
// read-derived transcripts to lay out:
//
//	{
//	  "genes": [
//	    {
//	      "gene": "GAPDH",
//	      "chrom": "chr12",
//	      "transcripts": [
//	        {"name": "GAPDH-201", "id": "ENST00000229239", "annotated": true,
//	         "exons": [{"start": 6534512, "end": 6534930, "strand": "+"}]},
//	        {"name": "c225/f26p50/6117", "full": 26, "partial": 50,
//	         "source": {"index": 1, "path": "matches.json"},
//	         "bases": "ACGT...",
//	         "exons": [{"start": 6534517, "end": 6534930, "strand": "+", "leading": 3}]}
//	      ]
//	    }
//	  ]
//	}
//
// A document holding a single gene object at the top level is accepted as
// well. Use [ReadTranscriptSets] or [ImportTranscriptSets] to decode one,
// [SelectGene] to pick a gene, and [Load] to build the transcripts.
//
// Read-derived transcript names follow the cluster naming convention
// "c<id>/f<full>p<partial>/<length>". [Load] rejects read-derived names
// without the trailing length token; [WriteFASTA] additionally needs the
// cluster ID.
//
// # Layouts
//
// [WriteLayout] and [ExportLayout] encode a computed [pipeline.Layout] as
// indented JSON; [ReadLayout] and [ImportLayout] decode one.
//
// [pipeline.Layout]: github.com/matzehuels/clusterview/pkg/pipeline.Layout
package io
