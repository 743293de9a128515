package netplot

import (
	"testing"

	"github.com/siddlokray/cortica/pkg/errors"
	"github.com/siddlokray/cortica/pkg/graph"
)

// laidOutDOT mimics the attributed DOT a Graphviz engine writes back:
// multi-line attribute lists, tab indentation, and an edge spline.
const laidOutDOT = `graph G {
	graph [bb="0,0,198.69,123.13",
		start="42"
	];
	node [label="\N",
		shape=point,
		width=0.3
	];
	edge [len=1.5];
	"lh_insula"	[height=0.30556,
		pos="27.324,95.812",
		width=0.30556];
	"rh_insula"	[height=0.30556,
		pos="171.37,27.324",
		width=0.30556];
	thalamus	[height=0.30556,
		pos="99.5,-61.5",
		width=0.30556];
	"lh_insula" -- "rh_insula"	[pos="44.188,86.655 58.919,78.665 79.557,67.47 97.324,57.5"];
}
`

func TestParsePositions(t *testing.T) {
	positions, err := parsePositions(laidOutDOT)
	if err != nil {
		t.Fatalf("parsePositions() error = %v", err)
	}

	if len(positions) != 3 {
		t.Fatalf("parsePositions() returned %d positions, want 3", len(positions))
	}

	tests := []struct {
		id   string
		want graph.Position
	}{
		{"lh_insula", graph.Position{X: 27.324, Y: 95.812}},
		{"rh_insula", graph.Position{X: 171.37, Y: 27.324}},
		{"thalamus", graph.Position{X: 99.5, Y: -61.5}},
	}
	for _, tt := range tests {
		got, ok := positions[tt.id]
		if !ok {
			t.Errorf("parsePositions() missing %q", tt.id)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePositions()[%q] = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestParsePositionsSkipsKeywords(t *testing.T) {
	positions, err := parsePositions(laidOutDOT)
	if err != nil {
		t.Fatalf("parsePositions() error = %v", err)
	}
	for _, kw := range []string{"graph", "node", "edge"} {
		if _, ok := positions[kw]; ok {
			t.Errorf("parsePositions() treated keyword %q as a node", kw)
		}
	}
}

func TestParsePositionsScientificNotation(t *testing.T) {
	out := `graph G {
	big	[pos="1.2e+02,-3.5e-01"];
}
`
	positions, err := parsePositions(out)
	if err != nil {
		t.Fatalf("parsePositions() error = %v", err)
	}
	got := positions["big"]
	if got.X != 120 || got.Y != -0.35 {
		t.Errorf("parsePositions()[big] = %v, want {120 -0.35}", got)
	}
}

func TestParsePositionsEscapedID(t *testing.T) {
	out := `graph G {
	"he said \"hi\""	[pos="1,2"];
}
`
	positions, err := parsePositions(out)
	if err != nil {
		t.Fatalf("parsePositions() error = %v", err)
	}
	if _, ok := positions[`he said "hi"`]; !ok {
		t.Errorf("parsePositions() did not unescape quoted id, got keys %v", keys(positions))
	}
}

func TestParsePositionsNoPositions(t *testing.T) {
	// Unlaid DOT carries no pos attributes.
	_, err := parsePositions(ToDOT(testGraph(), DOTOptions{Seed: 42}))
	if err == nil {
		t.Fatal("expected error for output without positions")
	}
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInternal)
	}
}

func TestUnquoteID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`"quoted"`, "quoted"},
		{`"with \"escape\""`, `with "escape"`},
		{`"back\\slash"`, `back\slash`},
		{``, ""},
	}
	for _, tt := range tests {
		if got := unquoteID(tt.in); got != tt.want {
			t.Errorf("unquoteID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func keys(m map[string]graph.Position) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
