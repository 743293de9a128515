package pipeline

import (
	"math"
	"testing"

	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/errors"
)

// testMatrix returns six regions in two tight blocks: strong correlation
// inside each block, weak correlation across. Within-block values are all
// distinct so the merge order does not depend on tie-breaking.
func testMatrix() connectivity.Matrix {
	regions := []string{"lh_a", "lh_b", "lh_c", "rh_a", "rh_b", "rh_c"}
	n := len(regions)
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, n)
		data[i][i] = 1.0
	}
	set := func(i, j int, v float64) {
		data[i][j] = v
		data[j][i] = v
	}
	set(0, 1, 0.85)
	set(0, 2, 0.80)
	set(1, 2, 0.75)
	set(3, 4, 0.82)
	set(3, 5, 0.78)
	set(4, 5, 0.74)
	for i := 0; i < 3; i++ {
		for j := 3; j < 6; j++ {
			set(i, j, 0.1)
		}
	}
	return connectivity.Matrix{Regions: regions, Data: data}
}

func TestClusterTwoBlocks(t *testing.T) {
	a, err := Cluster(testMatrix(), Options{Clusters: 2})
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}

	if a.Clusters != 2 {
		t.Errorf("Clusters = %d, want 2", a.Clusters)
	}
	if len(a.Labels) != 6 {
		t.Fatalf("Labels length = %d, want 6", len(a.Labels))
	}

	// Labels are numbered by first appearance, so the block containing the
	// first region is cluster 1.
	for i := 0; i < 3; i++ {
		if a.Labels[i] != 1 {
			t.Errorf("Labels[%d] = %d, want 1", i, a.Labels[i])
		}
	}
	for i := 3; i < 6; i++ {
		if a.Labels[i] != 2 {
			t.Errorf("Labels[%d] = %d, want 2", i, a.Labels[i])
		}
	}
}

func TestClusterOrderAndBoundaries(t *testing.T) {
	a, err := Cluster(testMatrix(), Options{Clusters: 2})
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}

	if len(a.Order) != 6 {
		t.Fatalf("Order length = %d, want 6", len(a.Order))
	}

	// Order must be a permutation of 0..5.
	seen := make(map[int]bool)
	for _, p := range a.Order {
		if p < 0 || p >= 6 || seen[p] {
			t.Fatalf("Order = %v is not a permutation", a.Order)
		}
		seen[p] = true
	}

	// Two equal-size clusters split the sorted order at position 3.
	if len(a.Boundaries) != 1 || a.Boundaries[0] != 3 {
		t.Errorf("Boundaries = %v, want [3]", a.Boundaries)
	}
}

func TestClusterStats(t *testing.T) {
	a, err := Cluster(testMatrix(), Options{Clusters: 2})
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}

	if len(a.Stats) != 2 {
		t.Fatalf("Stats length = %d, want 2", len(a.Stats))
	}

	// Stats come back in ascending label order, so the first entry is the
	// left-hemisphere block.
	first := a.Stats[0]
	if first.Size != 3 {
		t.Errorf("cluster 1 size = %d, want 3", first.Size)
	}
	if math.Abs(first.Mean-0.8) > 1e-9 {
		t.Errorf("cluster 1 mean = %g, want 0.8", first.Mean)
	}
	if first.Min != 0.75 || first.Max != 0.85 {
		t.Errorf("cluster 1 min/max = %g/%g, want 0.75/0.85", first.Min, first.Max)
	}

	second := a.Stats[1]
	if math.Abs(second.Mean-0.78) > 1e-9 {
		t.Errorf("cluster 2 mean = %g, want 0.78", second.Mean)
	}
	if second.Min != 0.74 || second.Max != 0.82 {
		t.Errorf("cluster 2 min/max = %g/%g, want 0.74/0.82", second.Min, second.Max)
	}
}

func TestClusterAutoCount(t *testing.T) {
	// Zero cluster count falls back to the region-count heuristic, which
	// floors at three groups.
	a, err := Cluster(testMatrix(), Options{})
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}
	if a.Clusters != 3 {
		t.Errorf("Clusters = %d, want 3 for six regions", a.Clusters)
	}
	if len(a.Boundaries) != 2 {
		t.Errorf("Boundaries = %v, want two separators for three clusters", a.Boundaries)
	}
}

func TestClusterInvalidMatrix(t *testing.T) {
	m := connectivity.Matrix{
		Regions: []string{"a", "b"},
		Data:    [][]float64{{1.0, 0.5}},
	}
	_, err := Cluster(m, Options{})
	if err == nil {
		t.Fatal("Ragged matrix should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidMatrix) {
		t.Errorf("Error code = %v, want ErrCodeInvalidMatrix", errors.GetCode(err))
	}
}

func TestClusterNegativeCount(t *testing.T) {
	_, err := Cluster(testMatrix(), Options{Clusters: -2})
	if err == nil {
		t.Fatal("Negative cluster count should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidClusters) {
		t.Errorf("Error code = %v, want ErrCodeInvalidClusters", errors.GetCode(err))
	}
}
