package colormap

import (
	"math/rand/v2"
	"strings"

	"github.com/siddlokray/cortica/pkg/errors"
)

// =============================================================================
// Label Color Schemes
// =============================================================================

// Label color schemes for heatmap axis labels.
const (
	SchemeNetwork     = "network"
	SchemeRandom      = "random"
	SchemeGradient    = "gradient"
	SchemeCategorical = "categorical"
)

// randomSchemeSeed fixes the random scheme so repeated renders agree.
const randomSchemeSeed = 42

// categoricalColors is the eight-color cycle for the categorical scheme.
var categoricalColors = []string{
	"#ff0000", // red
	"#0000ff", // blue
	"#008000", // green
	"#ffa500", // orange
	"#800080", // purple
	"#a52a2a", // brown
	"#ffc0cb", // pink
	"#808080", // gray
}

// networkColor assigns a lobe color by substring match on the region name.
func networkColor(region string) string {
	lower := strings.ToLower(region)
	switch {
	case strings.Contains(lower, "front"):
		return "#ff0000" // red
	case strings.Contains(lower, "parietal"):
		return "#0000ff" // blue
	case strings.Contains(lower, "temporal"):
		return "#008000" // green
	case strings.Contains(lower, "occipital"):
		return "#ffa500" // orange
	case strings.Contains(lower, "cingulate"):
		return "#800080" // purple
	default:
		return "#000000" // black
	}
}

// SchemeColors returns one hex color per region for a named scheme:
// "network" colors regions by lobe keywords, "random" draws deterministic
// tab20 colors, "gradient" spreads viridis across the region order, and
// "categorical" cycles eight distinct colors.
func SchemeColors(regions []string, scheme string) ([]string, error) {
	n := len(regions)
	out := make([]string, n)

	switch scheme {
	case SchemeNetwork:
		for i, r := range regions {
			out[i] = networkColor(r)
		}

	case SchemeRandom:
		rng := rand.New(rand.NewPCG(randomSchemeSeed, randomSchemeSeed^0xdeadbeef))
		for i := range out {
			out[i] = Tab20.Hex(rng.Float64())
		}

	case SchemeGradient:
		for i := range out {
			t := 0.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			out[i] = Viridis.Hex(t)
		}

	case SchemeCategorical:
		for i := range out {
			out[i] = categoricalColors[i%len(categoricalColors)]
		}

	default:
		return nil, errors.New(errors.ErrCodeInvalidColorMode,
			"unknown label color scheme: %q", scheme)
	}

	return out, nil
}
