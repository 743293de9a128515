// Package cluster implements agglomerative Ward clustering over condensed
// distance input, flat cluster extraction, and per-cluster correlation
// statistics.
package cluster

import (
	"math"

	"github.com/siddlokray/cortica/pkg/errors"
)

// Step records a single agglomeration: clusters A and B merge at Distance
// into a cluster covering Size leaves. Leaf ids are 0..n-1; the merge at
// position t creates id n+t. A < B always holds.
type Step struct {
	A        int     `json:"a" bson:"a"`
	B        int     `json:"b" bson:"b"`
	Distance float64 `json:"distance" bson:"distance"`
	Size     int     `json:"size" bson:"size"`
}

// Linkage is the complete merge history for N leaves: N-1 steps in
// nondecreasing distance order.
type Linkage struct {
	N     int    `json:"n" bson:"n"`
	Steps []Step `json:"steps" bson:"steps"`
}

// Ward builds the Ward-linkage merge history from condensed distances (strict
// upper triangle, row-major) over n leaves. Successor distances follow the
// Lance-Williams recurrence
//
//	d(k, i∪j)² = ((nᵢ+nₖ)d(k,i)² + (nⱼ+nₖ)d(k,j)² - nₖ·d(i,j)²) / (nᵢ+nⱼ+nₖ)
//
// and each step merges the currently closest pair. Ward is reducible, so the
// greedy merge order yields nondecreasing step distances. Ties resolve to the
// first pair in scan order, which makes the output deterministic for a given
// input.
func Ward(condensed []float64, n int) (Linkage, error) {
	if n < 1 {
		return Linkage{}, errors.New(errors.ErrCodeInvalidInput, "need at least one observation")
	}
	if len(condensed) != n*(n-1)/2 {
		return Linkage{}, errors.New(errors.ErrCodeInvalidInput,
			"condensed length %d does not match %d observations (want %d)",
			len(condensed), n, n*(n-1)/2)
	}
	for i, d := range condensed {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return Linkage{}, errors.New(errors.ErrCodeInvalidInput,
				"condensed[%d] = %g is not a valid distance", i, d)
		}
	}

	if n == 1 {
		return Linkage{N: 1}, nil
	}

	// Active clusters live in slots 0..m-1. Merging reuses the first slot and
	// swap-removes the second, so the distance table shrinks in place.
	type slot struct {
		id   int
		size int
	}
	slots := make([]slot, n)
	for i := range slots {
		slots[i] = slot{id: i, size: 1}
	}

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist[i][j] = condensed[k]
			dist[j][i] = condensed[k]
			k++
		}
	}

	steps := make([]Step, 0, n-1)
	m := n

	for t := 0; t < n-1; t++ {
		bi, bj := 0, 1
		best := dist[0][1]
		for i := 0; i < m; i++ {
			for j := i + 1; j < m; j++ {
				if dist[i][j] < best {
					best = dist[i][j]
					bi, bj = i, j
				}
			}
		}

		a, b := slots[bi].id, slots[bj].id
		if a > b {
			a, b = b, a
		}
		newSize := slots[bi].size + slots[bj].size
		steps = append(steps, Step{A: a, B: b, Distance: best, Size: newSize})

		si, sj := float64(slots[bi].size), float64(slots[bj].size)
		for q := 0; q < m; q++ {
			if q == bi || q == bj {
				continue
			}
			sq := float64(slots[q].size)
			d2 := ((si+sq)*dist[q][bi]*dist[q][bi] +
				(sj+sq)*dist[q][bj]*dist[q][bj] -
				sq*best*best) / (si + sj + sq)
			if d2 < 0 {
				d2 = 0
			}
			nd := math.Sqrt(d2)
			dist[q][bi] = nd
			dist[bi][q] = nd
		}

		slots[bi] = slot{id: n + t, size: newSize}

		last := m - 1
		if bj != last {
			slots[bj] = slots[last]
			for q := 0; q < m; q++ {
				dist[bj][q] = dist[last][q]
				dist[q][bj] = dist[q][last]
			}
			dist[bj][bj] = 0
		}
		m--
	}

	return Linkage{N: n, Steps: steps}, nil
}
