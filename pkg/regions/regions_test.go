package regions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/clusterview/pkg/errors"
	"github.com/matzehuels/clusterview/pkg/isoform"
)

func transcript(name string, spans ...[2]int) *isoform.Transcript {
	t := isoform.NewTranscript(name, false)
	for _, sp := range spans {
		t.AddExon(name, sp[0], sp[1], isoform.Forward)
	}
	return t
}

func TestFindSingleExon(t *testing.T) {
	a := transcript("a", [2]int{100, 200})

	n, err := Find([]*isoform.Transcript{a}, DefaultMinRegionSize)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []int{0}, a.Regions.Sorted())
}

func TestFindIdenticalTranscriptsShareRegions(t *testing.T) {
	a := transcript("a", [2]int{100, 200}, [2]int{400, 500})
	b := transcript("b", [2]int{100, 200}, [2]int{400, 500})

	_, err := Find([]*isoform.Transcript{a, b}, DefaultMinRegionSize)
	require.NoError(t, err)
	assert.Equal(t, a.Regions.Sorted(), b.Regions.Sorted())
	assert.Zero(t, a.Regions.SymmetricDifference(b.Regions))
}

func TestFindSkipsUncoveredStretches(t *testing.T) {
	a := transcript("a", [2]int{100, 200})
	b := transcript("b", [2]int{500, 600})

	n, err := Find([]*isoform.Transcript{a, b}, DefaultMinRegionSize)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{0}, a.Regions.Sorted())
	assert.Equal(t, []int{1}, b.Regions.Sorted())
}

func TestFindRegionsFinerThanBlocks(t *testing.T) {
	// One block, but distinct exon edges separate the transcripts.
	a := transcript("a", [2]int{100, 400})
	b := transcript("b", [2]int{200, 600})
	c := transcript("c", [2]int{450, 900})

	n, err := Find([]*isoform.Transcript{a, b, c}, DefaultMinRegionSize)
	require.NoError(t, err)
	assert.Greater(t, n, 1)
	assert.NotEqual(t, a.Regions.Sorted(), c.Regions.Sorted())
	assert.Positive(t, a.Regions.SymmetricDifference(b.Regions))
}

func TestFindMergesCloseEdges(t *testing.T) {
	// Edges 10 bases apart fall in the same region at the default size.
	a := transcript("a", [2]int{100, 300})
	b := transcript("b", [2]int{110, 300})

	_, err := Find([]*isoform.Transcript{a, b}, DefaultMinRegionSize)
	require.NoError(t, err)
	assert.Equal(t, a.Regions.Sorted(), b.Regions.Sorted())

	a.ResetLayout()
	b.ResetLayout()
	_, err = Find([]*isoform.Transcript{a, b}, 0)
	require.NoError(t, err)
	assert.NotEqual(t, a.Regions.Sorted(), b.Regions.Sorted())
}

func TestFindClosesFinalRegion(t *testing.T) {
	// b opens after the last boundary and would otherwise never be tagged.
	a := transcript("a", [2]int{100, 300})
	b := transcript("b", [2]int{290, 310})

	n, err := Find([]*isoform.Transcript{a, b}, DefaultMinRegionSize)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{0, 1}, a.Regions.Sorted())
	assert.Equal(t, []int{1}, b.Regions.Sorted())
}

func TestFindFinalRegionExcludesTranscriptClosedOnBoundary(t *testing.T) {
	// a ends on the edge where b's region starts.
	a := transcript("a", [2]int{100, 200})
	b := transcript("b", [2]int{200, 210})

	n, err := Find([]*isoform.Transcript{a, b}, DefaultMinRegionSize)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{0}, a.Regions.Sorted())
	assert.Equal(t, []int{1}, b.Regions.Sorted())
}

func TestFindOverlappingExonsWithinTranscript(t *testing.T) {
	a := transcript("a", [2]int{100, 300}, [2]int{150, 200}, [2]int{600, 700})

	_, err := Find([]*isoform.Transcript{a}, DefaultMinRegionSize)
	require.NoError(t, err)
	assert.NotZero(t, a.Regions.Len())
}

func TestFindEmpty(t *testing.T) {
	n, err := Find(nil, DefaultMinRegionSize)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = Find([]*isoform.Transcript{isoform.NewTranscript("empty", false)}, DefaultMinRegionSize)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFindNegativeMinRegionSize(t *testing.T) {
	_, err := Find([]*isoform.Transcript{transcript("a", [2]int{1, 2})}, -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))
}
