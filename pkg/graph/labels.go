package graph

import (
	"sort"
	"strings"

	"github.com/siddlokray/cortica/pkg/errors"
)

// =============================================================================
// Label Selection and Display Names
// =============================================================================

// Selection thresholds for label modes.
const (
	selectivePercentile = 80 // degree percentile for "selective"
	hubCount            = 10 // top-N nodes for "hubs"
)

// HasBothHemispheres reports whether the region set carries both lh_ and rh_
// prefixes. Hemisphere markers only appear in labels when both sides are
// present; otherwise the prefix is noise and gets stripped.
func HasBothHemispheres(regions []string) bool {
	var left, right bool
	for _, r := range regions {
		if strings.HasPrefix(r, prefixLeft) {
			left = true
		}
		if strings.HasPrefix(r, prefixRight) {
			right = true
		}
	}
	return left && right
}

// DisplayName cleans a region id for display: hemisphere prefixes become
// "L-"/"R-" markers when showHemisphere is set and are dropped otherwise,
// and underscores become spaces.
func DisplayName(id string, showHemisphere bool) string {
	if showHemisphere {
		switch {
		case strings.HasPrefix(id, prefixLeft):
			return "L-" + strings.ReplaceAll(id[len(prefixLeft):], "_", " ")
		case strings.HasPrefix(id, prefixRight):
			return "R-" + strings.ReplaceAll(id[len(prefixRight):], "_", " ")
		default:
			return strings.ReplaceAll(id, "_", " ")
		}
	}

	clean := strings.ReplaceAll(id, prefixLeft, "")
	clean = strings.ReplaceAll(clean, prefixRight, "")
	return strings.ReplaceAll(clean, "_", " ")
}

// abbreviate shortens a display name for dense all-labels rendering: names
// up to 12 characters pass through, single words truncate to 10 plus "..",
// two words keep 6 characters each, longer phrases keep the first and last
// word at 5 characters each.
func abbreviate(clean string) string {
	if len([]rune(clean)) <= 12 {
		return clean
	}

	words := strings.Fields(clean)
	switch len(words) {
	case 1:
		return truncate(clean, 10) + ".."
	case 2:
		return truncate(words[0], 6) + " " + truncate(words[1], 6)
	default:
		return truncate(words[0], 5) + " " + truncate(words[len(words)-1], 5)
	}
}

// abbreviateLong shortens a display name for sparse label modes: names over
// 15 characters truncate to 12 plus "...".
func abbreviateLong(clean string) string {
	if len([]rune(clean)) > 15 {
		return truncate(clean, 12) + "..."
	}
	return clean
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// SelectLabels returns the region id → display label map for a label mode:
// "all" labels every node with aggressive abbreviation, "selective" labels
// nodes at or above the 80th degree percentile, "hubs" labels the ten
// highest-degree nodes, "none" labels nothing.
func (g *Graph) SelectLabels(mode string) (map[string]string, error) {
	show := HasBothHemispheres(g.NodeIDs())
	labels := make(map[string]string)

	switch mode {
	case LabelsAll:
		for _, n := range g.Nodes {
			labels[n.ID] = abbreviate(DisplayName(n.ID, show))
		}

	case LabelsSelective:
		deg := g.Degrees()
		values := make([]float64, 0, len(deg))
		for _, n := range g.Nodes {
			values = append(values, float64(deg[n.ID]))
		}
		cutoff := Percentile(values, selectivePercentile)
		for _, n := range g.Nodes {
			if float64(deg[n.ID]) >= cutoff {
				labels[n.ID] = abbreviateLong(DisplayName(n.ID, show))
			}
		}

	case LabelsHubs:
		deg := g.Degrees()
		order := make([]string, len(g.Nodes))
		for i, n := range g.Nodes {
			order[i] = n.ID
		}
		// Stable sort keeps region order among equal degrees.
		sort.SliceStable(order, func(a, b int) bool {
			return deg[order[a]] > deg[order[b]]
		})
		top := order
		if len(top) > hubCount {
			top = top[:hubCount]
		}
		for _, id := range top {
			labels[id] = abbreviateLong(DisplayName(id, show))
		}

	case LabelsNone:

	default:
		return nil, errors.New(errors.ErrCodeInvalidLabelMode, "unknown label mode: %q", mode)
	}

	return labels, nil
}
