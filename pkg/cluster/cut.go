package cluster

import (
	"sort"

	"github.com/siddlokray/cortica/pkg/errors"
)

// AutoK picks a cluster count for n regions: n/4 bounded to [3, 8]. The
// bounds keep small parcellations from degenerating into singletons and
// large ones from producing unreadably many groups.
func AutoK(n int) int {
	k := n / 4
	if k < 3 {
		k = 3
	}
	if k > 8 {
		k = 8
	}
	return k
}

// CutMaxClust flattens a linkage into at most k clusters and returns one
// label per leaf, numbered 1..k' in order of first appearance over the leaf
// indices. The cut applies merges in distance order until k' groups remain;
// merges tied at the cut height are applied together, matching a cophenetic
// distance threshold, so ties can yield fewer than k groups.
func CutMaxClust(l Linkage, k int) ([]int, error) {
	n := l.N
	if n < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "linkage has no observations")
	}
	if len(l.Steps) != n-1 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"linkage has %d steps for %d observations (want %d)", len(l.Steps), n, n-1)
	}
	if k < 1 {
		return nil, errors.New(errors.ErrCodeInvalidClusters, "cluster count must be >= 1, got %d", k)
	}
	if k > n {
		k = n
	}

	s := n - k
	for s > 0 && s < len(l.Steps) && l.Steps[s].Distance == l.Steps[s-1].Distance {
		s++
	}

	parent := make([]int, n+s)
	for i := range parent {
		parent[i] = i
	}
	var find func(x int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	for t := 0; t < s; t++ {
		st := l.Steps[t]
		if st.A < 0 || st.B < 0 || st.A >= n+t || st.B >= n+t {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"step %d references cluster ids (%d, %d) out of range", t, st.A, st.B)
		}
		parent[find(st.A)] = n + t
		parent[find(st.B)] = n + t
	}

	labels := make([]int, n)
	labelOf := make(map[int]int)
	next := 1
	for i := 0; i < n; i++ {
		root := find(i)
		label, ok := labelOf[root]
		if !ok {
			label = next
			labelOf[root] = label
			next++
		}
		labels[i] = label
	}

	return labels, nil
}

// Order returns the permutation that stably sorts leaves by cluster label:
// position p of the reordered sequence holds input index Order(labels)[p].
// Stability preserves the input order inside each cluster.
func Order(labels []int) []int {
	perm := make([]int, len(labels))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return labels[perm[a]] < labels[perm[b]]
	})
	return perm
}

// Reorder applies a permutation produced by Order to a parallel slice.
func Reorder[T any](values []T, perm []int) []T {
	out := make([]T, len(perm))
	for i, p := range perm {
		out[i] = values[p]
	}
	return out
}

// Boundaries returns the positions in a label-sorted sequence where the
// cluster label changes. Heatmap separators are drawn half a cell before
// each returned index.
func Boundaries(sortedLabels []int) []int {
	var out []int
	for i := 1; i < len(sortedLabels); i++ {
		if sortedLabels[i] != sortedLabels[i-1] {
			out = append(out, i)
		}
	}
	return out
}
