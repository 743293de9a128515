package cluster

import (
	"fmt"
	"testing"

	"github.com/siddlokray/cortica/pkg/connectivity"
)

func TestAutoK(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{2, 3},
		{4, 3},
		{10, 3},
		{12, 3},
		{16, 4},
		{20, 5},
		{32, 8},
		{100, 8},
	}

	for _, tt := range tests {
		if got := AutoK(tt.n); got != tt.want {
			t.Errorf("AutoK(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestCutMaxClust(t *testing.T) {
	l, err := Ward(twoBlockCondensed(), 4)
	if err != nil {
		t.Fatalf("Ward() error = %v", err)
	}

	tests := []struct {
		name string
		k    int
		want []int
	}{
		{"two clusters", 2, []int{1, 1, 2, 2}},
		{"one cluster", 1, []int{1, 1, 1, 1}},
		{"all singletons", 4, []int{1, 2, 3, 4}},
		{"k above n clamps", 10, []int{1, 2, 3, 4}},
		{"three clusters", 3, []int{1, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CutMaxClust(l, tt.k)
			if err != nil {
				t.Fatalf("CutMaxClust() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("labels = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestCutMaxClustTies(t *testing.T) {
	// Both merges happen at the same height. Cutting for 2 clusters cannot
	// split them, so everything collapses into one.
	l := Linkage{
		N: 3,
		Steps: []Step{
			{A: 0, B: 1, Distance: 0.5, Size: 2},
			{A: 2, B: 3, Distance: 0.5, Size: 3},
		},
	}

	labels, err := CutMaxClust(l, 2)
	if err != nil {
		t.Fatalf("CutMaxClust() error = %v", err)
	}

	for i, label := range labels {
		if label != 1 {
			t.Errorf("labels[%d] = %d, want 1 (tied merges collapse)", i, label)
		}
	}
}

func TestCutMaxClustErrors(t *testing.T) {
	l, _ := Ward(twoBlockCondensed(), 4)

	if _, err := CutMaxClust(l, 0); err == nil {
		t.Error("CutMaxClust(l, 0) error = nil, want error")
	}

	bad := Linkage{N: 3, Steps: []Step{{A: 0, B: 1, Distance: 1, Size: 2}}}
	if _, err := CutMaxClust(bad, 2); err == nil {
		t.Error("CutMaxClust() with truncated steps: error = nil, want error")
	}

	badRef := Linkage{
		N: 3,
		Steps: []Step{
			{A: 0, B: 9, Distance: 1, Size: 2},
			{A: 1, B: 2, Distance: 2, Size: 3},
		},
	}
	if _, err := CutMaxClust(badRef, 1); err == nil {
		t.Error("CutMaxClust() with out-of-range id: error = nil, want error")
	}
}

func TestCutFromCorrelationMatrix(t *testing.T) {
	// Two strongly intra-correlated blocks with weak cross links must
	// separate cleanly at k=2.
	m := connectivity.Matrix{
		Regions: []string{"lh_a", "lh_b", "rh_c", "rh_d"},
		Data: [][]float64{
			{1.0, 0.9, 0.1, 0.1},
			{0.9, 1.0, 0.1, 0.1},
			{0.1, 0.1, 1.0, 0.9},
			{0.1, 0.1, 0.9, 1.0},
		},
	}

	l, err := Ward(connectivity.Condensed(m.ToDistance()), m.Size())
	if err != nil {
		t.Fatalf("Ward() error = %v", err)
	}

	labels, err := CutMaxClust(l, 2)
	if err != nil {
		t.Fatalf("CutMaxClust() error = %v", err)
	}

	want := []int{1, 1, 2, 2}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels = %v, want %v", labels, want)
		}
	}
}

func TestOrder(t *testing.T) {
	labels := []int{2, 1, 2, 1, 3}

	perm := Order(labels)
	want := []int{1, 3, 0, 2, 4}
	for i := range want {
		if perm[i] != want[i] {
			t.Fatalf("Order() = %v, want %v", perm, want)
		}
	}

	sorted := Reorder(labels, perm)
	wantSorted := []int{1, 1, 2, 2, 3}
	for i := range wantSorted {
		if sorted[i] != wantSorted[i] {
			t.Fatalf("Reorder() = %v, want %v", sorted, wantSorted)
		}
	}
}

func TestReorderStrings(t *testing.T) {
	names := []string{"c", "a", "d", "b"}
	perm := []int{1, 3, 0, 2}

	got := Reorder(names, perm)
	want := []string{"a", "b", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Reorder() = %v, want %v", got, want)
		}
	}
}

func TestBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		labels []int
		want   []int
	}{
		{"three groups", []int{1, 1, 2, 2, 3}, []int{2, 4}},
		{"single group", []int{1, 1, 1}, nil},
		{"all distinct", []int{1, 2, 3}, []int{1, 2}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Boundaries(tt.labels)
			if len(got) != len(tt.want) {
				t.Fatalf("Boundaries() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("Boundaries() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func ExampleCutMaxClust() {
	condensed := []float64{0.1, 1.0, 1.0, 1.0, 1.0, 0.2}
	l, _ := Ward(condensed, 4)
	labels, _ := CutMaxClust(l, 2)
	fmt.Println(labels)
	// Output: [1 1 2 2]
}
