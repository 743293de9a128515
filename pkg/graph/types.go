package graph

import (
	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Layout algorithms.
const (
	LayoutSpring      = "spring"
	LayoutCircular    = "circular"
	LayoutKamadaKawai = "kamada_kawai"
	LayoutForceAtlas  = "force_atlas"
)

// Label display modes.
const (
	LabelsAll       = "all"
	LabelsSelective = "selective"
	LabelsHubs      = "hubs"
	LabelsNone      = "none"
)

// Node coloring modes.
const (
	ColorByCluster     = "cluster"
	ColorByCustom      = "custom"
	ColorByDegree      = "degree"
	ColorByBetweenness = "betweenness"
)

// Cleanliness presets. Each bundles a threshold and label mode; minimal and
// labeled also change the canvas size.
const (
	PresetLight   = "light"
	PresetMedium  = "medium"
	PresetHeavy   = "heavy"
	PresetMinimal = "minimal"
	PresetLabeled = "labeled"
)

// Orientations.
const (
	OrientationHorizontal = "horizontal"
	OrientationVertical   = "vertical"
)

// Hemisphere prefixes on region ids.
const (
	prefixLeft  = "lh_"
	prefixRight = "rh_"
)

// =============================================================================
// Graph - Thresholded Connectivity Network
// =============================================================================

// Graph is a thresholded connectivity network: one node per region and one
// undirected edge per region pair whose correlation magnitude exceeds the
// threshold. Isolated nodes are kept so the region set stays complete.
type Graph struct {
	Threshold     float64 `json:"threshold" bson:"threshold"`
	Nodes         []Node  `json:"nodes" bson:"nodes"`
	Edges         []Edge  `json:"edges" bson:"edges"`
	PossiblePairs int     `json:"possible_pairs" bson:"possible_pairs"`
}

// Node is one brain region with its cluster assignment.
type Node struct {
	ID      string `json:"id" bson:"id"`
	Cluster int    `json:"cluster" bson:"cluster"`
}

// Edge is an undirected link between two regions. Weight is the correlation
// magnitude; Correlation keeps the sign for coloring.
type Edge struct {
	From        string  `json:"from" bson:"from"`
	To          string  `json:"to" bson:"to"`
	Weight      float64 `json:"weight" bson:"weight"`
	Correlation float64 `json:"correlation" bson:"correlation"`
}

// =============================================================================
// Building
// =============================================================================

// Build constructs the network from a correlation matrix and one cluster
// label per region. An edge appears where |corr| is strictly above the
// threshold. Node order follows region order, edge order follows upper
// triangle scan order, so output is deterministic.
func Build(m connectivity.Matrix, labels []int, threshold float64) (*Graph, error) {
	n := m.Size()
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMatrix, "matrix cannot be empty")
	}
	if len(labels) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"label count (%d) does not match region count (%d)", len(labels), n)
	}

	g := &Graph{
		Threshold:     threshold,
		Nodes:         make([]Node, n),
		PossiblePairs: n * (n - 1) / 2,
	}
	for i, region := range m.Regions {
		g.Nodes[i] = Node{ID: region, Cluster: labels[i]}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			corr := m.At(i, j)
			if abs(corr) > threshold {
				g.Edges = append(g.Edges, Edge{
					From:        m.Regions[i],
					To:          m.Regions[j],
					Weight:      abs(corr),
					Correlation: corr,
				})
			}
		}
	}

	return g, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// NumClusters returns the count of distinct cluster labels on the nodes.
func (g *Graph) NumClusters() int {
	seen := make(map[int]struct{})
	for _, n := range g.Nodes {
		seen[n.Cluster] = struct{}{}
	}
	return len(seen)
}

// NodeIDs returns region ids in node order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// adjacency returns the neighbor list per node id, in edge insertion order.
func (g *Graph) adjacency() map[string][]string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, n := range g.Nodes {
		adj[n.ID] = nil
	}
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	return adj
}
