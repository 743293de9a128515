package cluster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/errors"
)

// Stat summarizes one cluster: its members and the distribution of pairwise
// correlations between them. Mean, Std, Min, and Max cover every distinct
// member pair and are meaningful only when Size > 1. Std is the population
// standard deviation.
type Stat struct {
	Label   int      `json:"label" bson:"label"`
	Regions []string `json:"regions" bson:"regions"`
	Size    int      `json:"size" bson:"size"`
	Mean    float64  `json:"mean_corr" bson:"mean_corr"`
	Std     float64  `json:"std_corr" bson:"std_corr"`
	Min     float64  `json:"min_corr" bson:"min_corr"`
	Max     float64  `json:"max_corr" bson:"max_corr"`
}

// Analyze computes per-cluster statistics from a correlation matrix and a
// label per region. Stats are returned in ascending label order.
func Analyze(m connectivity.Matrix, labels []int) ([]Stat, error) {
	n := m.Size()
	if len(labels) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"label count (%d) does not match region count (%d)", len(labels), n)
	}

	members := make(map[int][]int)
	for i, label := range labels {
		members[label] = append(members[label], i)
	}

	order := make([]int, 0, len(members))
	for label := range members {
		order = append(order, label)
	}
	sort.Ints(order)

	out := make([]Stat, 0, len(order))
	for _, label := range order {
		idx := members[label]
		stat := Stat{
			Label:   label,
			Regions: make([]string, len(idx)),
			Size:    len(idx),
		}
		for i, p := range idx {
			stat.Regions[i] = m.Regions[p]
		}

		if len(idx) > 1 {
			vals := make(stats.Float64Data, 0, len(idx)*(len(idx)-1)/2)
			for i := 0; i < len(idx); i++ {
				for j := i + 1; j < len(idx); j++ {
					vals = append(vals, m.Data[idx[i]][idx[j]])
				}
			}

			var err error
			if stat.Mean, err = stats.Mean(vals); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "cluster %d mean", label)
			}
			if stat.Std, err = stats.StandardDeviationPopulation(vals); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "cluster %d std", label)
			}
			if stat.Min, err = stats.Min(vals); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "cluster %d min", label)
			}
			if stat.Max, err = stats.Max(vals); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "cluster %d max", label)
			}
		}

		out = append(out, stat)
	}

	return out, nil
}

// Report renders cluster statistics as a plain-text block for terminal and
// API text output.
func Report(statList []Stat) string {
	var b strings.Builder
	b.WriteString("=== CLUSTER ANALYSIS ===\n\n")

	for _, st := range statList {
		fmt.Fprintf(&b, "CLUSTER %d (%d regions):\n", st.Label, st.Size)
		fmt.Fprintf(&b, "Regions: %s\n", strings.Join(st.Regions, ", "))

		if st.Size > 1 {
			b.WriteString("Within-cluster correlations:\n")
			fmt.Fprintf(&b, "  Mean: %.3f\n", st.Mean)
			fmt.Fprintf(&b, "  Std:  %.3f\n", st.Std)
			fmt.Fprintf(&b, "  Range: [%.3f, %.3f]\n", st.Min, st.Max)
		} else {
			b.WriteString("Single region cluster - no within-cluster correlations\n")
		}

		b.WriteString(strings.Repeat("-", 50) + "\n")
	}

	return b.String()
}
