package connectivity

import (
	"context"
	"math"
	"runtime"
	"sort"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/siddlokray/cortica/pkg/errors"
)

// Method selects the correlation estimator used by FromSeries.
type Method int

// Supported correlation methods. Kendall is the default: rank-based and
// robust to outliers, which suits noisy regional time series.
const (
	MethodKendall Method = iota
	MethodPearson
	MethodSpearman
)

// String returns the method name as used in CLI flags and options.
func (m Method) String() string {
	switch m {
	case MethodKendall:
		return "kendall"
	case MethodPearson:
		return "pearson"
	case MethodSpearman:
		return "spearman"
	default:
		return "unknown"
	}
}

// ParseMethod converts a method name to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "kendall", "":
		return MethodKendall, nil
	case "pearson":
		return MethodPearson, nil
	case "spearman":
		return MethodSpearman, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "unknown correlation method: %q", s)
	}
}

// FromSeries builds a correlation matrix from per-region sample series.
// series[i] holds the observations for regions[i]; all series must have the
// same length with at least two samples. Pairs are computed concurrently on
// a bounded worker pool. Constant series correlate as 0 with everything.
func FromSeries(ctx context.Context, regions []string, series [][]float64, method Method) (Matrix, error) {
	if err := errors.ValidateRegionNames(regions); err != nil {
		return Matrix{}, err
	}

	n := len(regions)
	if len(series) != n {
		return Matrix{}, errors.New(errors.ErrCodeInvalidInput,
			"series count (%d) does not match region count (%d)", len(series), n)
	}

	samples := len(series[0])
	if samples < 2 {
		return Matrix{}, errors.New(errors.ErrCodeInvalidInput,
			"need at least 2 samples per region, got %d", samples)
	}
	for i, s := range series {
		if len(s) != samples {
			return Matrix{}, errors.New(errors.ErrCodeInvalidInput,
				"series %d has %d samples, want %d", i, len(s), samples)
		}
		for k, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Matrix{}, errors.New(errors.ErrCodeInvalidInput,
					"series %d sample %d is not finite", i, k)
			}
		}
	}

	m := Matrix{
		Regions: append([]string(nil), regions...),
		Data:    make([][]float64, n),
	}
	for i := range m.Data {
		m.Data[i] = make([]float64, n)
		m.Data[i][i] = 1
	}

	// Spearman is Pearson over ranks: transform once, not once per pair.
	input := series
	if method == MethodSpearman {
		input = make([][]float64, n)
		for i, s := range series {
			input[i] = ranks(s)
		}
	}

	// Each worker owns one row of the upper triangle, so writes never overlap.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < n; i++ {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			for j := i + 1; j < n; j++ {
				r, err := correlate(input[i], input[j], method)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err,
						"correlating %s with %s", m.Regions[i], m.Regions[j])
				}
				m.Data[i][j] = r
				m.Data[j][i] = r
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Matrix{}, err
	}

	return m, nil
}

func correlate(x, y []float64, method Method) (float64, error) {
	switch method {
	case MethodKendall:
		return kendallTau(x, y), nil
	case MethodPearson, MethodSpearman:
		return stats.Correlation(x, y)
	default:
		return 0, errors.New(errors.ErrCodeUnsupported, "correlation method %d", method)
	}
}

// kendallTau computes the tau-b rank correlation with tie correction:
// (concordant - discordant) / sqrt((n0 - tiesX) * (n0 - tiesY)) where
// n0 = n(n-1)/2. Returns 0 when either series is fully tied.
func kendallTau(x, y []float64) float64 {
	n := len(x)
	var concordant, discordant float64
	for s := 0; s < n; s++ {
		for t := s + 1; t < n; t++ {
			prod := (x[s] - x[t]) * (y[s] - y[t])
			switch {
			case prod > 0:
				concordant++
			case prod < 0:
				discordant++
			}
		}
	}

	n0 := float64(n*(n-1)) / 2
	denom := math.Sqrt((n0 - tieCorrection(x)) * (n0 - tieCorrection(y)))
	if denom == 0 {
		return 0
	}
	return (concordant - discordant) / denom
}

// tieCorrection returns sum over tied groups of t*(t-1)/2.
func tieCorrection(v []float64) float64 {
	counts := make(map[float64]int, len(v))
	for _, x := range v {
		counts[x]++
	}
	var t float64
	for _, c := range counts {
		if c > 1 {
			t += float64(c*(c-1)) / 2
		}
	}
	return t
}

// ranks assigns 1-based ranks with ties sharing their average rank.
func ranks(v []float64) []float64 {
	idx := make([]int, len(v))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return v[idx[a]] < v[idx[b]] })

	r := make([]float64, len(v))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && v[idx[j+1]] == v[idx[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			r[idx[k]] = avg
		}
		i = j + 1
	}
	return r
}
