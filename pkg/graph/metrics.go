package graph

import (
	"math"
	"sort"
)

// =============================================================================
// Network Metrics
// =============================================================================

// Degrees returns the degree of every node keyed by region id. Isolated
// nodes appear with degree 0.
func (g *Graph) Degrees() map[string]int {
	deg := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		deg[n.ID] = 0
	}
	for _, e := range g.Edges {
		deg[e.From]++
		deg[e.To]++
	}
	return deg
}

// MaxDegree returns the largest node degree, 0 for an edgeless graph.
func (g *Graph) MaxDegree() int {
	max := 0
	for _, d := range g.Degrees() {
		if d > max {
			max = d
		}
	}
	return max
}

// Density returns 2m / n(n-1), the fraction of possible edges present.
// Graphs with fewer than two nodes have density 0.
func (g *Graph) Density() float64 {
	n := len(g.Nodes)
	if n < 2 {
		return 0
	}
	return 2 * float64(len(g.Edges)) / float64(n*(n-1))
}

// AvgClustering returns the mean local clustering coefficient over all
// nodes. A node's coefficient is the fraction of its neighbor pairs that are
// themselves connected; nodes with degree < 2 contribute 0.
func (g *Graph) AvgClustering() float64 {
	if len(g.Nodes) == 0 {
		return 0
	}

	adj := g.adjacency()
	link := make(map[[2]string]bool, 2*len(g.Edges))
	for _, e := range g.Edges {
		link[[2]string{e.From, e.To}] = true
		link[[2]string{e.To, e.From}] = true
	}

	var total float64
	for _, n := range g.Nodes {
		nbrs := adj[n.ID]
		k := len(nbrs)
		if k < 2 {
			continue
		}
		tri := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if link[[2]string{nbrs[i], nbrs[j]}] {
					tri++
				}
			}
		}
		total += 2 * float64(tri) / float64(k*(k-1))
	}

	return total / float64(len(g.Nodes))
}

// Betweenness returns normalized betweenness centrality per node using
// Brandes' algorithm over unweighted shortest paths. Values are scaled by
// 1/((n-1)(n-2)); graphs with fewer than three nodes score 0 everywhere.
func (g *Graph) Betweenness() map[string]float64 {
	ids := g.NodeIDs()
	bc := make(map[string]float64, len(ids))
	for _, id := range ids {
		bc[id] = 0
	}

	adj := g.adjacency()

	for _, s := range ids {
		stack := make([]string, 0, len(ids))
		pred := make(map[string][]string, len(ids))
		sigma := make(map[string]float64, len(ids))
		dist := make(map[string]int, len(ids))
		for _, v := range ids {
			dist[v] = -1
		}
		sigma[s] = 1
		dist[s] = 0

		queue := []string{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range adj[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					pred[w] = append(pred[w], v)
				}
			}
		}

		delta := make(map[string]float64, len(ids))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				bc[w] += delta[w]
			}
		}
	}

	n := len(ids)
	if n > 2 {
		scale := 1 / float64((n-1)*(n-2))
		for v := range bc {
			bc[v] *= scale
		}
	}

	return bc
}

// Percentile returns the q-th percentile (0-100) of values using linear
// interpolation between closest ranks. Returns 0 for empty input.
func Percentile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := q / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	frac := rank - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
