package summary

import (
	"fmt"
	"strings"
	"testing"

	"github.com/siddlokray/cortica/pkg/cluster"
)

func TestLines(t *testing.T) {
	stats := []cluster.Stat{
		{Label: 1, Regions: []string{"insula", "precuneus"}, Size: 2},
		{Label: 2, Regions: []string{"cuneus"}, Size: 1},
	}

	got := Lines(stats)
	want := []string{
		"Cluster Assignments:",
		"",
		"Cluster 1 (2 regions):",
		"  • insula",
		"  • precuneus",
		"",
		"Cluster 2 (1 regions):",
		"  • cuneus",
		"",
	}

	if len(got) != len(want) {
		t.Fatalf("lines = %d, want %d:\n%q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLinesColumns(t *testing.T) {
	regions := make([]string, 11)
	for i := range regions {
		regions[i] = fmt.Sprintf("r%d", i)
	}
	stats := []cluster.Stat{{Label: 1, Regions: regions, Size: 11}}

	got := Lines(stats)

	// Eleven members over three columns of four rows, filled column-first.
	pad := func(name string) string {
		return "• " + name + strings.Repeat(" ", 25-len(name))
	}
	want := []string{
		"Cluster Assignments:",
		"",
		"Cluster 1 (11 regions):",
		strings.TrimRight("  "+pad("r0")+pad("r4")+pad("r8"), " "),
		strings.TrimRight("  "+pad("r1")+pad("r5")+pad("r9"), " "),
		strings.TrimRight("  "+pad("r2")+pad("r6")+pad("r10"), " "),
		strings.TrimRight("  "+pad("r3")+pad("r7"), " "),
		"",
	}

	if len(got) != len(want) {
		t.Fatalf("lines = %d, want %d:\n%q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRender(t *testing.T) {
	stats := []cluster.Stat{
		{Label: 1, Regions: []string{"insula"}, Size: 1},
	}

	svg := string(Render(stats))

	if !strings.Contains(svg, `viewBox="0 0 1000.0 1200.0"`) {
		t.Error("default canvas is not 1000x1200")
	}
	if !strings.Contains(svg, "Cluster Assignments:") {
		t.Error("header missing")
	}
	if !strings.Contains(svg, "• insula") {
		t.Error("member bullet missing")
	}
	if !strings.Contains(svg, `fill="#d3d3d3"`) {
		t.Error("backing box missing")
	}
	if !strings.Contains(svg, `xml:space="preserve"`) {
		t.Error("text must preserve spacing for column alignment")
	}
	if !strings.Contains(svg, "Menlo, Consolas, monospace") {
		t.Error("monospace stack missing")
	}
}

func TestRenderCustomSize(t *testing.T) {
	svg := string(Render(nil, WithSize(8, 6)))

	if !strings.Contains(svg, `viewBox="0 0 800.0 600.0"`) {
		t.Error("custom canvas size not applied")
	}
}
