package graph

import (
	"math"
	"testing"
)

// testGraph builds a graph literal from an edge list. Weights are
// irrelevant for the topology metrics under test.
func testGraph(ids []string, edges [][2]string) *Graph {
	g := &Graph{Threshold: 0.5}
	for _, id := range ids {
		g.Nodes = append(g.Nodes, Node{ID: id, Cluster: 1})
	}
	for _, e := range edges {
		g.Edges = append(g.Edges, Edge{From: e[0], To: e[1], Weight: 0.9, Correlation: 0.9})
	}
	g.PossiblePairs = len(ids) * (len(ids) - 1) / 2
	return g
}

func TestDegrees(t *testing.T) {
	g := testGraph(
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"a", "c"}, {"a", "d"}},
	)

	deg := g.Degrees()
	want := map[string]int{"a": 3, "b": 1, "c": 1, "d": 1}
	for id, w := range want {
		if deg[id] != w {
			t.Errorf("degree(%s) = %d, want %d", id, deg[id], w)
		}
	}
	if g.MaxDegree() != 3 {
		t.Errorf("MaxDegree = %d, want 3", g.MaxDegree())
	}
}

func TestDegreesIsolated(t *testing.T) {
	g := testGraph([]string{"a", "b"}, nil)
	deg := g.Degrees()
	if deg["a"] != 0 || deg["b"] != 0 {
		t.Errorf("degrees = %v, want all zero", deg)
	}
	if g.MaxDegree() != 0 {
		t.Errorf("MaxDegree = %d, want 0", g.MaxDegree())
	}
}

func TestDensity(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  float64
	}{
		{"Path3", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}}, 2.0 / 3.0},
		{"Triangle", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}}, 1.0},
		{"NoEdges", []string{"a", "b", "c"}, nil, 0},
		{"SingleNode", []string{"a"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGraph(tt.ids, tt.edges)
			if got := g.Density(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Density = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvgClustering(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  float64
	}{
		{
			name:  "Triangle",
			ids:   []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}},
			want:  1.0,
		},
		{
			name:  "Path",
			ids:   []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}},
			want:  0,
		},
		{
			// a-b-c triangle with pendant d on a: coefficients are
			// a=1/3, b=1, c=1, d=0.
			name:  "TriangleWithPendant",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"a", "d"}},
			want:  7.0 / 12.0,
		},
		{
			name: "Empty",
			ids:  []string{"a", "b"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGraph(tt.ids, tt.edges)
			if got := g.AvgClustering(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("AvgClustering = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBetweenness(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  map[string]float64
	}{
		{
			name:  "Path3",
			ids:   []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}},
			want:  map[string]float64{"a": 0, "b": 1.0, "c": 0},
		},
		{
			name:  "Path4",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}},
			want:  map[string]float64{"a": 0, "b": 2.0 / 3.0, "c": 2.0 / 3.0, "d": 0},
		},
		{
			name:  "Star",
			ids:   []string{"hub", "x", "y", "z"},
			edges: [][2]string{{"hub", "x"}, {"hub", "y"}, {"hub", "z"}},
			want:  map[string]float64{"hub": 1.0, "x": 0, "y": 0, "z": 0},
		},
		{
			name:  "Triangle",
			ids:   []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}},
			want:  map[string]float64{"a": 0, "b": 0, "c": 0},
		},
		{
			// Two shortest paths between opposite corners split the
			// dependency between the intermediates.
			name:  "Cycle4",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}},
			want:  map[string]float64{"a": 1.0 / 6.0, "b": 1.0 / 6.0, "c": 1.0 / 6.0, "d": 1.0 / 6.0},
		},
		{
			name:  "TwoNodes",
			ids:   []string{"a", "b"},
			edges: [][2]string{{"a", "b"}},
			want:  map[string]float64{"a": 0, "b": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGraph(tt.ids, tt.edges)
			got := g.Betweenness()
			for id, w := range tt.want {
				if math.Abs(got[id]-w) > 1e-12 {
					t.Errorf("betweenness(%s) = %v, want %v", id, got[id], w)
				}
			}
		})
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{"Interpolated", []float64{1, 2, 3, 4}, 80, 3.4},
		{"Median", []float64{1, 2, 3, 4, 5}, 50, 3},
		{"Decile", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 80, 8.2},
		{"Single", []float64{5}, 80, 5},
		{"Empty", nil, 80, 0},
		{"Zero", []float64{3, 1, 2}, 0, 1},
		{"Hundred", []float64{3, 1, 2}, 100, 3},
		{"Unsorted", []float64{4, 1, 3, 2}, 50, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentile(tt.values, tt.q); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.values, tt.q, got, tt.want)
			}
		})
	}
}
