package cluster

import (
	"fmt"
	"io"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/clusterview/pkg/errors"
	"github.com/matzehuels/clusterview/pkg/isoform"
)

// DefaultMaxClusters is the default upper bound on k.
const DefaultMaxClusters = 6

// Options configures [Group].
type Options struct {
	// MaxClusters is the largest k to cluster for. It is clamped to the
	// number of read-derived transcripts.
	MaxClusters int
	// Seed makes labels reproducible; 0 draws a fresh seed.
	Seed     uint64
	Restarts int
	MaxIter  int
}

// Groupings holds the clustering of a gene's read-derived transcripts for
// every k from 1 to K.
type Groupings struct {
	Names []string `json:"names"`
	// Labels[k-1][i] is the group of transcript i when clustering into k
	// groups.
	Labels   [][]int       `json:"labels"`
	Matrix   *mat.SymDense `json:"-"`
	MinStart int           `json:"min_start"`
	MaxEnd   int           `json:"max_end"`
}

// Group clusters the read-derived transcripts of transcripts for every k
// from 1 to min(opts.MaxClusters, number of reads). Annotated transcripts
// are skipped. With no read-derived transcripts the result is nil.
func Group(transcripts []*isoform.Transcript, opts Options) (*Groupings, error) {
	if opts.MaxClusters <= 0 {
		return nil, errors.Configuration("maximum number of clusters must be positive, got %d", opts.MaxClusters)
	}
	reads := isoform.ReadDerived(transcripts)
	if len(reads) == 0 {
		return nil, nil
	}

	g := &Groupings{MinStart: math.MaxInt, MaxEnd: math.MinInt}
	for _, t := range reads {
		g.Names = append(g.Names, t.Name)
		if s, e, ok := t.Extent(); ok {
			g.MinStart = min(g.MinStart, s)
			g.MaxEnd = max(g.MaxEnd, e)
		}
	}
	if g.MinStart > g.MaxEnd {
		g.MinStart, g.MaxEnd = 0, 0
	}

	coverages := make([]*Coverage, len(reads))
	for i, t := range reads {
		c, err := NewCoverage(t, g.MinStart)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataIntegrity, err, "coverage of %s", t.Name)
		}
		coverages[i] = c
	}
	g.Matrix = Matrix(coverages)

	rng := newRand(opts.Seed)
	for k := 1; k <= min(opts.MaxClusters, len(reads)); k++ {
		km := KMeans{K: k, Restarts: opts.Restarts, MaxIter: opts.MaxIter}
		labels, err := km.fit(g.Matrix, rng)
		if err != nil {
			return nil, err
		}
		g.Labels = append(g.Labels, labels)
	}
	return g, nil
}

// K returns the largest k clustered for.
func (g *Groupings) K() int { return len(g.Labels) }

// Len returns the number of clustered transcripts.
func (g *Groupings) Len() int { return len(g.Names) }

// Label returns the group of transcript i at granularity k.
func (g *Groupings) Label(i, k int) int { return g.Labels[k-1][i] }

// Distances returns the distance matrix as rows.
func (g *Groupings) Distances() [][]float64 {
	if g.Matrix == nil {
		return nil
	}
	n, _ := g.Matrix.Dims()
	out := make([][]float64, n)
	for i := range out {
		out[i] = mat.Row(nil, i, g.Matrix)
	}
	return out
}

// Table returns the groupings as a data frame with a name column followed
// by one groupK column per k.
func (g *Groupings) Table() dataframe.DataFrame {
	cols := []series.Series{series.New(g.Names, series.String, "name")}
	for k, labels := range g.Labels {
		cols = append(cols, series.New(labels, series.Int, fmt.Sprintf("group%d", k+1)))
	}
	return dataframe.New(cols...)
}

// WriteCSV writes [Groupings.Table] as CSV with a header row.
func (g *Groupings) WriteCSV(w io.Writer) error {
	df := g.Table()
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}
