package cluster

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/clusterview/pkg/errors"
)

// k-means defaults.
const (
	DefaultRestarts = 10
	DefaultMaxIter  = 300
)

// KMeans partitions the rows of a matrix into K groups using k-means++
// seeding and Lloyd iterations. The run with the lowest inertia over
// Restarts independent starts wins.
type KMeans struct {
	K        int
	Seed     uint64 // 0 draws a fresh seed
	Restarts int    // defaults to DefaultRestarts
	MaxIter  int    // defaults to DefaultMaxIter
}

// Fit returns one label per row of x. Labels are renumbered in order of
// first appearance, so row 0 is always labelled 0.
func (km KMeans) Fit(x mat.Matrix) ([]int, error) {
	return km.fit(x, newRand(km.Seed))
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func (km KMeans) fit(x mat.Matrix, rng *rand.Rand) ([]int, error) {
	n, _ := x.Dims()
	if km.K <= 0 {
		return nil, errors.Configuration("number of clusters must be positive, got %d", km.K)
	}
	if km.K > n {
		return nil, errors.Configuration("cannot form %d clusters from %d rows", km.K, n)
	}
	restarts := km.Restarts
	if restarts <= 0 {
		restarts = DefaultRestarts
	}
	maxIter := km.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = mat.Row(nil, i, x)
	}

	var (
		best        []int
		bestInertia = math.Inf(1)
	)
	for range restarts {
		labels, inertia := lloyd(rows, seedCenters(rows, km.K, rng), maxIter)
		if inertia < bestInertia {
			best, bestInertia = labels, inertia
		}
	}
	return canonical(best), nil
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

// seedCenters picks k initial centers with k-means++: each further center is
// drawn with probability proportional to its squared distance from the
// nearest center chosen so far.
func seedCenters(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(rows[rng.IntN(len(rows))]))

	d2 := make([]float64, len(rows))
	for len(centers) < k {
		for i, r := range rows {
			d2[i] = math.Inf(1)
			for _, c := range centers {
				d2[i] = min(d2[i], sqDist(r, c))
			}
		}
		total := floats.Sum(d2)
		if total == 0 {
			centers = append(centers, clone(rows[rng.IntN(len(rows))]))
			continue
		}
		target := rng.Float64() * total
		pick := len(rows) - 1
		for i, w := range d2 {
			if target -= w; target < 0 {
				pick = i
				break
			}
		}
		centers = append(centers, clone(rows[pick]))
	}
	return centers
}

// lloyd alternates recentering and reassignment until assignments stop
// changing or maxIter passes have run. Labels always come from a
// nearest-center assignment, so identical rows share a label. It returns the
// labels and their inertia (summed squared distance to the group mean).
func lloyd(rows, centers [][]float64, maxIter int) ([]int, float64) {
	k := len(centers)
	labels := make([]int, len(rows))
	assign(rows, centers, labels)

	for range maxIter {
		centers = recenter(rows, labels, k)
		if !assign(rows, centers, labels) {
			break
		}
	}

	centers, _ = means(rows, labels, k)
	inertia := 0.0
	for i, r := range rows {
		inertia += sqDist(r, centers[labels[i]])
	}
	return labels, inertia
}

// assign moves every row to its nearest center and reports whether any
// label changed.
func assign(rows, centers [][]float64, labels []int) bool {
	changed := false
	for i, r := range rows {
		if c := nearest(r, centers); c != labels[i] {
			labels[i], changed = c, true
		}
	}
	return changed
}

// recenter returns the group means. An empty group is moved onto the row
// furthest from its current center; when every row sits on its center the
// group stays empty.
func recenter(rows [][]float64, labels []int, k int) [][]float64 {
	centers, counts := means(rows, labels, k)
	for c := range centers {
		if counts[c] > 0 {
			continue
		}
		far, d := farthest(rows, centers, labels)
		if d <= 0 {
			continue
		}
		copy(centers[c], rows[far])
		counts[labels[far]]--
		labels[far] = c
		counts[c] = 1
	}
	return centers
}

// means returns the mean row of every group and the group sizes. Empty
// groups get a zero center.
func means(rows [][]float64, labels []int, k int) ([][]float64, []int) {
	dim := len(rows[0])
	centers := make([][]float64, k)
	for c := range centers {
		centers[c] = make([]float64, dim)
	}
	counts := make([]int, k)
	for i, r := range rows {
		floats.Add(centers[labels[i]], r)
		counts[labels[i]]++
	}
	for c, n := range counts {
		if n > 0 {
			floats.Scale(1/float64(n), centers[c])
		}
	}
	return centers, counts
}

// nearest returns the index of the closest center; ties go to the lowest.
func nearest(r []float64, centers [][]float64) int {
	best, bestD := 0, math.Inf(1)
	for c, center := range centers {
		if d := sqDist(r, center); d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

func farthest(rows, centers [][]float64, labels []int) (int, float64) {
	far, farD := 0, -1.0
	for i, r := range rows {
		if d := sqDist(r, centers[labels[i]]); d > farD {
			far, farD = i, d
		}
	}
	return far, farD
}

// canonical renumbers labels in order of first appearance.
func canonical(labels []int) []int {
	seen := map[int]int{}
	out := make([]int, len(labels))
	for i, l := range labels {
		id, ok := seen[l]
		if !ok {
			id = len(seen)
			seen[l] = id
		}
		out[i] = id
	}
	return out
}

func clone(r []float64) []float64 {
	return append([]float64(nil), r...)
}
