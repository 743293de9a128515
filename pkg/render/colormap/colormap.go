// Package colormap provides the color scales used by the heatmap and
// network renderers: continuous scales that interpolate between anchor
// colors, and discrete palettes with float-index binning.
package colormap

import (
	"fmt"
	"math"
)

// =============================================================================
// Color Type
// =============================================================================

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// hexes parses "#rrggbb" literals. Panics on malformed input; only the
// anchor tables below call it.
func hexes(ss ...string) []RGB {
	out := make([]RGB, len(ss))
	for i, s := range ss {
		var c RGB
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			panic(fmt.Sprintf("colormap: bad hex literal %q: %v", s, err))
		}
		out[i] = c
	}
	return out
}

// =============================================================================
// Continuous Scales
// =============================================================================

// Scale is a continuous colormap: evenly spaced anchor colors with linear
// interpolation between them. Inputs outside [0,1] clamp to the ends.
type Scale struct {
	name    string
	anchors []RGB
}

// At returns the interpolated color at t.
func (s Scale) At(t float64) RGB {
	n := len(s.anchors)
	if n == 0 {
		return RGB{}
	}
	if t <= 0 || n == 1 {
		return s.anchors[0]
	}
	if t >= 1 {
		return s.anchors[n-1]
	}

	pos := t * float64(n-1)
	i := int(pos)
	frac := pos - float64(i)

	a, b := s.anchors[i], s.anchors[i+1]
	return RGB{
		R: lerpChannel(a.R, b.R, frac),
		G: lerpChannel(a.G, b.G, frac),
		B: lerpChannel(a.B, b.B, frac),
	}
}

// Hex returns the interpolated color at t as "#rrggbb".
func (s Scale) Hex(t float64) string { return s.At(t).Hex() }

// Stops returns the anchor colors in order, for building SVG gradients.
func (s Scale) Stops() []RGB {
	out := make([]RGB, len(s.anchors))
	copy(out, s.anchors)
	return out
}

func (s Scale) String() string { return s.name }

func lerpChannel(a, b uint8, frac float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*frac))
}

// BlueRed is the diverging scale for signed correlations: strong negative
// values map to deep blue, zero to near-white, strong positive to deep red.
// Anchors follow the ColorBrewer RdBu palette, reversed.
var BlueRed = Scale{name: "blue-red", anchors: hexes(
	"#053061", "#2166ac", "#4393c3", "#92c5de", "#d1e5f0", "#f7f7f7",
	"#fddbc7", "#f4a582", "#d6604d", "#b2182b", "#67001f",
)}

// Viridis is the dark-purple-to-yellow scale used for degree coloring and
// the gradient label scheme.
var Viridis = Scale{name: "viridis", anchors: hexes(
	"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
)}

// Plasma is the dark-blue-to-yellow scale used for betweenness coloring.
var Plasma = Scale{name: "plasma", anchors: hexes(
	"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
	"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921",
)}

// =============================================================================
// Discrete Palettes
// =============================================================================

// Listed is a discrete palette. At bins a [0,1] input onto the entries,
// index floor(t*N) with the top edge folded onto the last color, so evenly
// spaced inputs spread across the palette without interpolation.
type Listed struct {
	name   string
	colors []RGB
}

// At returns the palette color binned from t.
func (p Listed) At(t float64) RGB {
	n := len(p.colors)
	if n == 0 {
		return RGB{}
	}
	if t < 0 {
		t = 0
	}
	i := int(t * float64(n))
	if i >= n {
		i = n - 1
	}
	return p.colors[i]
}

// Index returns the i-th palette color, wrapping past the end.
func (p Listed) Index(i int) RGB {
	n := len(p.colors)
	if n == 0 {
		return RGB{}
	}
	return p.colors[((i%n)+n)%n]
}

// Hex returns the binned color at t as "#rrggbb".
func (p Listed) Hex(t float64) string { return p.At(t).Hex() }

// Len returns the palette size.
func (p Listed) Len() int { return len(p.colors) }

func (p Listed) String() string { return p.name }

// Set3 is the 12-color pastel palette used for cluster colors.
var Set3 = Listed{name: "set3", colors: hexes(
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
)}

// Tab20 is the 20-color categorical palette used by the random label scheme.
var Tab20 = Listed{name: "tab20", colors: hexes(
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c", "#98df8a",
	"#d62728", "#ff9896", "#9467bd", "#c5b0d5", "#8c564b", "#c49c94",
	"#e377c2", "#f7b6d2", "#7f7f7f", "#c7c7c7", "#bcbd22", "#dbdb8d",
	"#17becf", "#9edae5",
)}

// ClusterColors returns k evenly spaced Set3 colors, one per cluster label
// 1..k in order.
func ClusterColors(k int) []string {
	if k < 1 {
		return nil
	}
	out := make([]string, k)
	for i := range out {
		t := 0.0
		if k > 1 {
			t = float64(i) / float64(k-1)
		}
		out[i] = Set3.Hex(t)
	}
	return out
}
