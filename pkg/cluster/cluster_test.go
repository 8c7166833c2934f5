package cluster

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/clusterview/pkg/errors"
	"github.com/matzehuels/clusterview/pkg/isoform"
)

func read(name string, spans ...[2]int) *isoform.Transcript {
	t := isoform.NewTranscript(name, false)
	for i, sp := range spans {
		t.AddExon(name+"/"+string(rune('0'+i)), sp[0], sp[1], isoform.Forward)
	}
	return t
}

func coverage(t *testing.T, tr *isoform.Transcript) *Coverage {
	t.Helper()
	c, err := NewCoverage(tr, 0)
	require.NoError(t, err)
	return c
}

// bitmap is the per-base coverage of tr over [0, width).
func bitmap(tr *isoform.Transcript, width int) []bool {
	bits := make([]bool, width)
	for _, e := range tr.Exons {
		for p := e.Start; p <= e.End; p++ {
			bits[p] = true
		}
	}
	return bits
}

func TestCoverageMergesOverlappingExons(t *testing.T) {
	c := coverage(t, read("a", [2]int{10, 20}, [2]int{15, 30}, [2]int{31, 40}, [2]int{100, 100}))
	assert.Equal(t, 31+1, c.Len())
}

func TestCoverageOverlapMatchesBitmap(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	const width = 400

	randomRead := func(name string) *isoform.Transcript {
		var spans [][2]int
		for range 1 + rng.IntN(5) {
			s := rng.IntN(width - 40)
			spans = append(spans, [2]int{s, s + rng.IntN(40)})
		}
		return read(name, spans...)
	}

	for i := range 50 {
		a, b := randomRead("a"), randomRead("b")
		ba, bb := bitmap(a, width), bitmap(b, width)
		sa, sb, ov := 0, 0, 0
		for p := range width {
			if ba[p] {
				sa++
			}
			if bb[p] {
				sb++
			}
			if ba[p] && bb[p] {
				ov++
			}
		}
		ca, cb := coverage(t, a), coverage(t, b)
		assert.Equal(t, sa, ca.Len(), "case %d", i)
		assert.Equal(t, sb, cb.Len(), "case %d", i)
		assert.Equal(t, ov, ca.Overlap(cb), "case %d", i)
		assert.Equal(t, ov, cb.Overlap(ca), "case %d", i)
	}
}

func TestDistance(t *testing.T) {
	a := coverage(t, read("a", [2]int{0, 99}))
	b := coverage(t, read("b", [2]int{50, 149}))
	far := coverage(t, read("far", [2]int{1000, 1099}))
	empty := coverage(t, read("empty"))

	// 100 + 100 bases, 50 shared: (200-100)/(200-50).
	assert.InDelta(t, 100.0/150.0, Distance(a, b), 1e-12)
	assert.Equal(t, Distance(a, b), Distance(b, a))
	assert.Zero(t, Distance(a, a))
	assert.Equal(t, 1.0, Distance(a, far))
	assert.Equal(t, 1.0, Distance(a, empty))
	assert.Zero(t, Distance(empty, empty))
}

func TestMatrix(t *testing.T) {
	covs := []*Coverage{
		coverage(t, read("a", [2]int{0, 99})),
		coverage(t, read("b", [2]int{50, 149})),
		coverage(t, read("c", [2]int{500, 599})),
	}
	m := Matrix(covs)
	require.NotNil(t, m)
	n, _ := m.Dims()
	require.Equal(t, 3, n)
	for i := range n {
		assert.Zero(t, m.At(i, i))
		for j := range n {
			assert.Equal(t, m.At(i, j), m.At(j, i))
			assert.GreaterOrEqual(t, m.At(i, j), 0.0)
			assert.LessOrEqual(t, m.At(i, j), 1.0)
		}
	}
	assert.Equal(t, 1.0, m.At(0, 2))
	assert.Nil(t, Matrix(nil))
}

func twoFamilies() []*isoform.Transcript {
	return []*isoform.Transcript{
		read("a1", [2]int{0, 100}, [2]int{200, 300}),
		read("b1", [2]int{5000, 5100}),
		read("a2", [2]int{0, 100}, [2]int{200, 300}),
		read("b2", [2]int{5000, 5100}),
		read("a3", [2]int{0, 100}, [2]int{200, 300}),
	}
}

func TestGroupSeparatesFamilies(t *testing.T) {
	g, err := Group(twoFamilies(), Options{MaxClusters: 2, Seed: 42})
	require.NoError(t, err)
	require.NotNil(t, g)
	require.Equal(t, 2, g.K())

	assert.Equal(t, []int{0, 0, 0, 0, 0}, g.Labels[0])
	assert.Equal(t, []int{0, 1, 0, 1, 0}, g.Labels[1])
	assert.Equal(t, 1, g.Label(1, 2))
}

func TestGroupIdenticalTranscriptsShareLabels(t *testing.T) {
	trs := twoFamilies()
	g, err := Group(trs, Options{MaxClusters: 4, Seed: 9})
	require.NoError(t, err)
	for k := 1; k <= g.K(); k++ {
		assert.Equal(t, g.Label(0, k), g.Label(2, k), "k=%d", k)
		assert.Equal(t, g.Label(0, k), g.Label(4, k), "k=%d", k)
		assert.Equal(t, g.Label(1, k), g.Label(3, k), "k=%d", k)
	}
}

func TestGroupClampsK(t *testing.T) {
	trs := []*isoform.Transcript{read("a", [2]int{0, 10}), read("b", [2]int{100, 110})}
	g, err := Group(trs, Options{MaxClusters: DefaultMaxClusters, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, g.K())
	assert.Equal(t, []int{0, 1}, g.Labels[1])
}

func TestGroupSkipsAnnotated(t *testing.T) {
	ref := isoform.NewTranscript("ref", true)
	ref.AddExon("ref/0", 0, 1000, isoform.Forward)
	trs := []*isoform.Transcript{ref, read("a", [2]int{10, 20}), read("b", [2]int{30, 40})}

	g, err := Group(trs, Options{MaxClusters: 3, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, g.Names)
	assert.Equal(t, 10, g.MinStart)
	assert.Equal(t, 40, g.MaxEnd)

	g, err = Group([]*isoform.Transcript{ref}, Options{MaxClusters: 3})
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestGroupRejectsNonPositiveK(t *testing.T) {
	for _, k := range []int{0, -3} {
		_, err := Group(twoFamilies(), Options{MaxClusters: k})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))
	}
}

func TestGroupSeedIsReproducible(t *testing.T) {
	trs := []*isoform.Transcript{
		read("a", [2]int{0, 100}),
		read("b", [2]int{40, 140}),
		read("c", [2]int{80, 180}),
		read("d", [2]int{120, 220}),
		read("e", [2]int{160, 260}),
		read("f", [2]int{200, 300}),
	}
	first, err := Group(trs, Options{MaxClusters: 4, Seed: 1234})
	require.NoError(t, err)
	second, err := Group(trs, Options{MaxClusters: 4, Seed: 1234})
	require.NoError(t, err)
	assert.Equal(t, first.Labels, second.Labels)
}

func TestKMeansRejectsBadK(t *testing.T) {
	m := Matrix([]*Coverage{coverage(t, read("a", [2]int{0, 1}))})
	_, err := KMeans{K: 2, Seed: 1}.Fit(m)
	assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))
	_, err = KMeans{K: 0, Seed: 1}.Fit(m)
	assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))

	labels, err := KMeans{K: 1}.Fit(m)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, labels)
}

func TestGroupingsTable(t *testing.T) {
	g, err := Group(twoFamilies(), Options{MaxClusters: 2, Seed: 42})
	require.NoError(t, err)

	df := g.Table()
	require.NoError(t, df.Err)
	assert.Equal(t, []string{"name", "group1", "group2"}, df.Names())
	assert.Equal(t, 5, df.Nrow())

	var buf bytes.Buffer
	require.NoError(t, g.WriteCSV(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "name,group1,group2", lines[0])
	assert.Equal(t, "b1,0,1", lines[2])

	rows := g.Distances()
	require.Len(t, rows, 5)
	assert.Equal(t, 1.0, rows[0][1])
	assert.Zero(t, rows[0][2])
}
