package cluster

import "gonum.org/v1/gonum/mat"

// Distance returns the structural distance between two coverages, in [0, 1].
// Two empty coverages are at distance 0.
func Distance(a, b *Coverage) float64 {
	si, sj := float64(a.Len()), float64(b.Len())
	ov := float64(a.Overlap(b))
	denom := si + sj - ov
	if denom == 0 {
		return 0
	}
	return (si + sj - 2*ov) / denom
}

// Matrix returns the symmetric pairwise distance matrix of coverages with a
// zero diagonal. Only the lower triangle is computed. It returns nil for an
// empty slice.
func Matrix(coverages []*Coverage) *mat.SymDense {
	n := len(coverages)
	if n == 0 {
		return nil
	}
	m := mat.NewSymDense(n, nil)
	for i := 1; i < n; i++ {
		for j := range i {
			m.SetSym(i, j, Distance(coverages[i], coverages[j]))
		}
	}
	return m
}
