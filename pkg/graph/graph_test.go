package graph

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/siddlokray/cortica/pkg/connectivity"
)

func buildFixture(t *testing.T, threshold float64) *Graph {
	t.Helper()
	m := connectivity.Matrix{
		Regions: []string{"a", "b", "c", "d"},
		Data: [][]float64{
			{1.0, 0.8, 0.2, -0.6},
			{0.8, 1.0, 0.5, 0.1},
			{0.2, 0.5, 1.0, 0.1},
			{-0.6, 0.1, 0.1, 1.0},
		},
	}
	g, err := Build(m, []int{1, 1, 2, 2}, threshold)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestBuild(t *testing.T) {
	g := buildFixture(t, 0.5)

	if len(g.Nodes) != 4 {
		t.Errorf("nodes = %d, want 4", len(g.Nodes))
	}
	if g.PossiblePairs != 6 {
		t.Errorf("PossiblePairs = %d, want 6", g.PossiblePairs)
	}

	// |0.8| and |-0.6| clear 0.5; 0.5 itself does not (strict comparison).
	if len(g.Edges) != 2 {
		t.Fatalf("edges = %d, want 2: %+v", len(g.Edges), g.Edges)
	}

	e := g.Edges[0]
	if e.From != "a" || e.To != "b" || e.Weight != 0.8 || e.Correlation != 0.8 {
		t.Errorf("Edges[0] = %+v, want a-b weight 0.8", e)
	}

	e = g.Edges[1]
	if e.From != "a" || e.To != "d" {
		t.Errorf("Edges[1] = %+v, want a-d", e)
	}
	if e.Weight != 0.6 {
		t.Errorf("Edges[1].Weight = %v, want 0.6 (magnitude)", e.Weight)
	}
	if e.Correlation != -0.6 {
		t.Errorf("Edges[1].Correlation = %v, want -0.6 (sign kept)", e.Correlation)
	}

	// Node c falls below the threshold everywhere but must stay in the graph.
	found := false
	for _, n := range g.Nodes {
		if n.ID == "c" {
			found = true
			if n.Cluster != 2 {
				t.Errorf("node c cluster = %d, want 2", n.Cluster)
			}
		}
	}
	if !found {
		t.Error("isolated node c missing from graph")
	}
}

func TestBuildThresholdZero(t *testing.T) {
	g := buildFixture(t, 0)
	// Every off-diagonal entry in the fixture has |corr| > 0.
	if len(g.Edges) != 6 {
		t.Errorf("edges = %d, want 6", len(g.Edges))
	}
}

func TestBuildErrors(t *testing.T) {
	m := connectivity.Matrix{
		Regions: []string{"a", "b"},
		Data:    [][]float64{{1, 0.5}, {0.5, 1}},
	}

	if _, err := Build(connectivity.Matrix{}, nil, 0.5); err == nil {
		t.Error("expected error for empty matrix")
	}
	if _, err := Build(m, []int{1}, 0.5); err == nil {
		t.Error("expected error for label count mismatch")
	}
}

func TestNumClusters(t *testing.T) {
	g := buildFixture(t, 0.5)
	if got := g.NumClusters(); got != 2 {
		t.Errorf("NumClusters = %d, want 2", got)
	}
}

func TestGraphRoundTrip(t *testing.T) {
	g := buildFixture(t, 0.5)

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}

	parsed, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}

	if len(parsed.Nodes) != len(g.Nodes) || len(parsed.Edges) != len(g.Edges) {
		t.Errorf("round trip changed sizes: %d/%d nodes, %d/%d edges",
			len(parsed.Nodes), len(g.Nodes), len(parsed.Edges), len(g.Edges))
	}
	if parsed.Threshold != g.Threshold {
		t.Errorf("threshold = %v, want %v", parsed.Threshold, g.Threshold)
	}
	if math.Abs(parsed.Edges[1].Correlation-(-0.6)) > 1e-12 {
		t.Errorf("correlation = %v, want -0.6", parsed.Edges[1].Correlation)
	}
}

func TestUnmarshalGraphValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"NoNodes", `{"nodes": [], "edges": []}`},
		{"EmptyID", `{"nodes": [{"id": ""}], "edges": []}`},
		{"DuplicateID", `{"nodes": [{"id": "a"}, {"id": "a"}], "edges": []}`},
		{"UnknownEdgeFrom", `{"nodes": [{"id": "a"}], "edges": [{"from": "x", "to": "a"}]}`},
		{"UnknownEdgeTo", `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "x"}]}`},
		{"Invalid", `{invalid json}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalGraph([]byte(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	g := buildFixture(t, 0.5)
	path := filepath.Join(t.TempDir(), "network.json")

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("written file is empty")
	}

	parsed, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if len(parsed.Nodes) != 4 {
		t.Errorf("nodes = %d, want 4", len(parsed.Nodes))
	}
}

func TestReadGraphFileNotFound(t *testing.T) {
	_, err := ReadGraphFile("nonexistent.json")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}
