package connectivity

// ToDistance converts correlations to dissimilarities for linkage input:
// d = 1 - corr with the diagonal zeroed, negative entries clamped to zero,
// and the result symmetrized as (D + Dᵀ) / 2 to absorb float asymmetry.
func (m Matrix) ToDistance() [][]float64 {
	n := m.Size()
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i == j {
				continue
			}
			d := 1 - m.Data[i][j]
			if d < 0 {
				d = 0
			}
			dist[i][j] = d
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			avg := (dist[i][j] + dist[j][i]) / 2
			dist[i][j] = avg
			dist[j][i] = avg
		}
	}

	return dist
}

// Condensed flattens a square distance matrix to its strict upper triangle in
// row-major order: the pair (i, j) with i < j lands at index
// n*i - i*(i+1)/2 + (j - i - 1). This is the standard condensed form consumed
// by the linkage step.
func Condensed(dist [][]float64) []float64 {
	n := len(dist)
	out := make([]float64, n*(n-1)/2)
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out[k] = dist[i][j]
			k++
		}
	}
	return out
}

// CondensedIndex maps a pair (i, j), i != j, to its condensed-form index for
// an n-point matrix.
func CondensedIndex(n, i, j int) int {
	if i > j {
		i, j = j, i
	}
	return n*i - i*(i+1)/2 + (j - i - 1)
}
