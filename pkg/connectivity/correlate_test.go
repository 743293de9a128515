package connectivity

import (
	"context"
	"math"
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Method
		wantErr bool
	}{
		{"kendall", "kendall", MethodKendall, false},
		{"pearson", "pearson", MethodPearson, false},
		{"spearman", "spearman", MethodSpearman, false},
		{"empty defaults to kendall", "", MethodKendall, false},
		{"unknown", "cosine", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMethod(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMethodString(t *testing.T) {
	tests := []struct {
		method Method
		want   string
	}{
		{MethodKendall, "kendall"},
		{MethodPearson, "pearson"},
		{MethodSpearman, "spearman"},
		{Method(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.method.String(); got != tt.want {
			t.Errorf("Method(%d).String() = %q, want %q", tt.method, got, tt.want)
		}
	}
}

func TestKendallTau(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{
			name: "perfect agreement",
			x:    []float64{1, 2, 3, 4, 5},
			y:    []float64{10, 20, 30, 40, 50},
			want: 1,
		},
		{
			name: "perfect disagreement",
			x:    []float64{1, 2, 3, 4, 5},
			y:    []float64{50, 40, 30, 20, 10},
			want: -1,
		},
		{
			name: "ties in x",
			x:    []float64{1, 2, 2, 3},
			y:    []float64{1, 2, 3, 4},
			// 5 concordant pairs, 0 discordant, one tied pair in x:
			// tau-b = 5 / sqrt(5 * 6).
			want: 5 / math.Sqrt(30),
		},
		{
			name: "constant series",
			x:    []float64{2, 2, 2, 2},
			y:    []float64{1, 2, 3, 4},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kendallTau(tt.x, tt.y)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("kendallTau() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRanks(t *testing.T) {
	got := ranks([]float64{3, 1, 4, 1, 5})
	want := []float64{3, 1.5, 4, 1.5, 5}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ranks()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFromSeries(t *testing.T) {
	regions := []string{"a", "b", "c"}
	series := [][]float64{
		{1, 2, 3, 4, 5},
		{2, 4, 6, 8, 10},  // identical ordering to a
		{5, 4, 3, 2, 1.5}, // reversed ordering
	}

	m, err := FromSeries(context.Background(), regions, series, MethodKendall)
	if err != nil {
		t.Fatalf("FromSeries() error = %v", err)
	}

	if err := m.Validate(); err != nil {
		t.Fatalf("result fails Validate(): %v", err)
	}

	for i := range m.Data {
		if m.Data[i][i] != 1 {
			t.Errorf("diagonal [%d] = %v, want 1", i, m.Data[i][i])
		}
	}

	if got := m.Data[0][1]; math.Abs(got-1) > 1e-12 {
		t.Errorf("corr(a, b) = %v, want 1", got)
	}
	if got := m.Data[0][2]; math.Abs(got+1) > 1e-12 {
		t.Errorf("corr(a, c) = %v, want -1", got)
	}
	if m.Data[1][2] != m.Data[2][1] {
		t.Error("result is not symmetric")
	}
}

func TestFromSeriesPearson(t *testing.T) {
	regions := []string{"a", "b"}
	series := [][]float64{
		{1, 2, 3, 4},
		{3, 5, 7, 9}, // y = 2x + 1
	}

	m, err := FromSeries(context.Background(), regions, series, MethodPearson)
	if err != nil {
		t.Fatalf("FromSeries() error = %v", err)
	}

	if got := m.Data[0][1]; math.Abs(got-1) > 1e-9 {
		t.Errorf("pearson corr = %v, want 1", got)
	}
}

func TestFromSeriesSpearman(t *testing.T) {
	regions := []string{"a", "b"}
	// Monotone but nonlinear: spearman sees rank agreement, so exactly 1.
	series := [][]float64{
		{1, 2, 3, 4, 5},
		{1, 4, 9, 16, 25},
	}

	m, err := FromSeries(context.Background(), regions, series, MethodSpearman)
	if err != nil {
		t.Fatalf("FromSeries() error = %v", err)
	}

	if got := m.Data[0][1]; math.Abs(got-1) > 1e-9 {
		t.Errorf("spearman corr = %v, want 1", got)
	}
}

func TestFromSeriesErrors(t *testing.T) {
	tests := []struct {
		name    string
		regions []string
		series  [][]float64
	}{
		{
			name:    "series count mismatch",
			regions: []string{"a", "b"},
			series:  [][]float64{{1, 2, 3}},
		},
		{
			name:    "ragged series",
			regions: []string{"a", "b"},
			series:  [][]float64{{1, 2, 3}, {1, 2}},
		},
		{
			name:    "too few samples",
			regions: []string{"a", "b"},
			series:  [][]float64{{1}, {2}},
		},
		{
			name:    "non-finite sample",
			regions: []string{"a", "b"},
			series:  [][]float64{{1, 2, math.NaN()}, {1, 2, 3}},
		},
		{
			name:    "empty regions",
			regions: nil,
			series:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromSeries(context.Background(), tt.regions, tt.series, MethodKendall); err == nil {
				t.Error("FromSeries() error = nil, want error")
			}
		})
	}
}

func TestFromSeriesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	regions := []string{"a", "b"}
	series := [][]float64{{1, 2, 3}, {3, 2, 1}}

	if _, err := FromSeries(ctx, regions, series, MethodKendall); err == nil {
		t.Error("FromSeries() with cancelled context: error = nil, want error")
	}
}
