package pipeline

import (
	"github.com/siddlokray/cortica/pkg/cluster"
	"github.com/siddlokray/cortica/pkg/connectivity"
)

// Analysis is the clustering stage output: one cluster label per region in
// matrix order, the label-sorted permutation with its cluster boundaries,
// and the per-cluster statistics.
type Analysis struct {
	// Clusters is the number of groups actually produced. Ties at the cut
	// height can merge groups, so this may be below the requested count.
	Clusters int `json:"clusters" bson:"clusters"`

	// Labels holds one cluster label per region, in matrix order.
	Labels []int `json:"labels" bson:"labels"`

	// Order is the permutation that sorts regions by cluster label.
	Order []int `json:"order" bson:"order"`

	// Boundaries are the positions in the sorted order where the cluster
	// changes, for heatmap separator lines.
	Boundaries []int `json:"boundaries" bson:"boundaries"`

	// Stats summarizes within-cluster correlations per cluster.
	Stats []cluster.Stat `json:"stats" bson:"stats"`
}

// Cluster groups the regions of a correlation matrix by Ward linkage over
// correlation distance. A zero opts.Clusters picks the group count
// heuristically from the region count.
func Cluster(m connectivity.Matrix, opts Options) (Analysis, error) {
	if err := opts.ValidateForCluster(); err != nil {
		return Analysis{}, err
	}
	if err := m.Validate(); err != nil {
		return Analysis{}, err
	}

	k := opts.Clusters
	if k == 0 {
		k = cluster.AutoK(m.Size())
	}

	linkage, err := cluster.Ward(connectivity.Condensed(m.ToDistance()), m.Size())
	if err != nil {
		return Analysis{}, err
	}
	labels, err := cluster.CutMaxClust(linkage, k)
	if err != nil {
		return Analysis{}, err
	}

	order := cluster.Order(labels)
	stats, err := cluster.Analyze(m, labels)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		Clusters:   len(stats),
		Labels:     labels,
		Order:      order,
		Boundaries: cluster.Boundaries(cluster.Reorder(labels, order)),
		Stats:      stats,
	}, nil
}
