package netplot

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/siddlokray/cortica/pkg/graph"
	"github.com/siddlokray/cortica/pkg/render"
	"github.com/siddlokray/cortica/pkg/render/colormap"
)

// =============================================================================
// SVG Rendering
// =============================================================================

// Canvas geometry and drawing constants. The right margin holds the
// legend, the top margin the two-line title.
const (
	marginTop    = 110.0
	marginLeft   = 40.0
	marginBottom = 40.0
	marginRight  = 290.0
	plotPad      = 45.0

	titleFontPt  = 16.0
	legendFontPt = 10.0
	statsFontPt  = 10.0

	// Node area in pt^2 grows linearly with degree.
	nodeBaseArea  = 200.0
	nodeAreaScale = 20.0

	nodeAlpha = 0.8
	edgeAlpha = 0.6

	positiveEdgeColor = "#2c3e50"
	negativeEdgeColor = "#e74c3c"
)

type svgRenderer struct {
	colorMode    string
	labelMode    string
	customByName map[string]string
	customList   []string
}

// SVGOption configures network rendering.
type SVGOption func(*svgRenderer)

// WithColorMode sets the node coloring: cluster, custom, degree, or
// betweenness.
func WithColorMode(mode string) SVGOption {
	return func(r *svgRenderer) { r.colorMode = mode }
}

// WithLabelMode sets which nodes get labels: all, selective, hubs, or none.
func WithLabelMode(mode string) SVGOption {
	return func(r *svgRenderer) { r.labelMode = mode }
}

// WithCustomColors sets per-region hex colors for the custom color mode.
// Regions without an entry fall back to their cluster color.
func WithCustomColors(byName map[string]string) SVGOption {
	return func(r *svgRenderer) { r.customByName = byName }
}

// WithCustomColorList sets one hex color per node in region order for the
// custom color mode. A list of the wrong length falls back to cluster
// coloring.
func WithCustomColorList(colors []string) SVGOption {
	return func(r *svgRenderer) { r.customList = colors }
}

// RenderSVG draws the positioned network. Edges render under nodes, labels
// over them, with the legend outside the plot on the right and network
// statistics boxed in the top-left corner.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{
		colorMode: graph.ColorByCluster,
		labelMode: graph.LabelsSelective,
	}
	for _, opt := range opts {
		opt(&r)
	}

	g := &l.Graph
	mode := effectiveColorMode(g, &r)

	w := l.Width * render.PxPerInch
	h := l.Height * render.PxPerInch
	plotW := w - marginLeft - marginRight
	plotH := h - marginTop - marginBottom

	pts := projectPositions(l, plotW, plotH)
	fills := nodeFills(g, &r, mode)
	deg := g.Degrees()

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")

	writeEdges(&buf, g, pts)
	writeNodes(&buf, g, pts, fills, deg)
	writeLabels(&buf, g, pts, r.labelMode)
	writeLegend(&buf, g, mode, w, plotH)
	writeStats(&buf, g, deg)
	writeNetTitle(&buf, g, w)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// effectiveColorMode resolves the custom mode's fallbacks: no custom
// colors at all, or a color list of the wrong length, degrade to cluster
// coloring.
func effectiveColorMode(g *graph.Graph, r *svgRenderer) string {
	if r.colorMode != graph.ColorByCustom {
		return r.colorMode
	}
	if r.customByName != nil {
		return graph.ColorByCustom
	}
	if r.customList != nil && len(r.customList) == len(g.Nodes) {
		return graph.ColorByCustom
	}
	return graph.ColorByCluster
}

// projectPositions maps layout coordinates onto the plot rectangle. The
// vertical axis flips because SVG y grows downward.
func projectPositions(l graph.Layout, plotW, plotH float64) map[string]graph.Position {
	min, max := l.Bounds()
	spanX := max.X - min.X
	spanY := max.Y - min.Y

	innerW := plotW - 2*plotPad
	innerH := plotH - 2*plotPad

	pts := make(map[string]graph.Position, len(l.Positions))
	for id, p := range l.Positions {
		tx, ty := 0.5, 0.5
		if spanX > 0 {
			tx = (p.X - min.X) / spanX
		}
		if spanY > 0 {
			ty = (p.Y - min.Y) / spanY
		}
		pts[id] = graph.Position{
			X: marginLeft + plotPad + tx*innerW,
			Y: marginTop + plotPad + (1-ty)*innerH,
		}
	}
	return pts
}

func nodeFills(g *graph.Graph, r *svgRenderer, mode string) []string {
	n := len(g.Nodes)
	fills := make([]string, n)

	switch mode {
	case graph.ColorByCustom:
		if r.customByName != nil {
			fallback := clusterFills(g)
			for i, node := range g.Nodes {
				if c, ok := r.customByName[node.ID]; ok {
					fills[i] = c
				} else {
					fills[i] = fallback[i]
				}
			}
			return fills
		}
		copy(fills, r.customList)
		return fills

	case graph.ColorByDegree:
		deg := g.Degrees()
		maxDeg := g.MaxDegree()
		for i, node := range g.Nodes {
			t := 0.0
			if maxDeg > 0 {
				t = float64(deg[node.ID]) / float64(maxDeg)
			}
			fills[i] = colormap.Viridis.Hex(t)
		}
		return fills

	case graph.ColorByBetweenness:
		bc := g.Betweenness()
		maxBc := 0.0
		for _, v := range bc {
			if v > maxBc {
				maxBc = v
			}
		}
		for i, node := range g.Nodes {
			t := 0.0
			if maxBc > 0 {
				t = bc[node.ID] / maxBc
			}
			fills[i] = colormap.Plasma.Hex(t)
		}
		return fills

	default:
		return clusterFills(g)
	}
}

func clusterFills(g *graph.Graph) []string {
	palette := colormap.ClusterColors(g.NumClusters())
	fills := make([]string, len(g.Nodes))
	for i, node := range g.Nodes {
		idx := node.Cluster - 1
		if n := len(palette); idx < 0 || idx >= n {
			idx = ((idx % n) + n) % n
		}
		fills[i] = palette[idx]
	}
	return fills
}

func nodeRadius(degree int) float64 {
	area := nodeBaseArea + nodeAreaScale*float64(degree)
	return render.PtPx(math.Sqrt(area) / 2)
}

func writeEdges(buf *bytes.Buffer, g *graph.Graph, pts map[string]graph.Position) {
	for _, e := range g.Edges {
		from, to := pts[e.From], pts[e.To]

		color := positiveEdgeColor
		if e.Correlation < 0 {
			color = negativeEdgeColor
		}
		widthPt := math.Max(0.5, math.Min(3.0, e.Weight*4))

		fmt.Fprintf(buf,
			`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.1f"/>`+"\n",
			from.X, from.Y, to.X, to.Y, color, render.PtPx(widthPt), edgeAlpha)
	}
}

func writeNodes(buf *bytes.Buffer, g *graph.Graph, pts map[string]graph.Position, fills []string, deg map[string]int) {
	strokeW := render.PtPx(1)
	for i, n := range g.Nodes {
		p := pts[n.ID]
		fmt.Fprintf(buf,
			`  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.1f" stroke="white" stroke-width="%.2f"/>`+"\n",
			p.X, p.Y, nodeRadius(deg[n.ID]), fills[i], nodeAlpha, strokeW)
	}
}

type labelStyle struct {
	fontPt   float64
	boxFill  string
	boxAlpha float64
	padEm    float64
}

func labelStyleFor(mode string) labelStyle {
	switch mode {
	case graph.LabelsAll:
		return labelStyle{fontPt: 7, boxFill: "white", boxAlpha: 0.9, padEm: 0.15}
	case graph.LabelsHubs:
		return labelStyle{fontPt: 9, boxFill: "yellow", boxAlpha: 0.7, padEm: 0.3}
	default:
		return labelStyle{fontPt: 8, boxFill: "white", boxAlpha: 0.8, padEm: 0.2}
	}
}

func writeLabels(buf *bytes.Buffer, g *graph.Graph, pts map[string]graph.Position, mode string) {
	// Unknown modes draw nothing, like an unmatched mode upstream.
	labels, err := g.SelectLabels(mode)
	if err != nil || len(labels) == 0 {
		return
	}

	style := labelStyleFor(mode)
	fontPx := render.PtPx(style.fontPt)
	pad := style.padEm * fontPx

	for _, n := range g.Nodes {
		label, ok := labels[n.ID]
		if !ok {
			continue
		}
		p := pts[n.ID]

		textW := float64(len([]rune(label))) * fontPx * 0.58
		boxW := textW + 2*pad
		boxH := fontPx + 2*pad
		fmt.Fprintf(buf,
			`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" fill="%s" fill-opacity="%.1f" stroke="gray" stroke-width="0.5"/>`+"\n",
			p.X-boxW/2, p.Y-boxH/2, boxW, boxH, style.boxFill, style.boxAlpha)
		fmt.Fprintf(buf,
			`  <text x="%.2f" y="%.2f" dy="0.35em" text-anchor="middle" font-family="%s" font-size="%.2f" font-weight="bold">%s</text>`+"\n",
			p.X, p.Y, render.FontSans, fontPx, render.EscapeXML(label))
	}
}

// =============================================================================
// Legend, Statistics, Title
// =============================================================================

type legendEntry struct {
	color string // empty for a blank separator row
	alpha float64
	label string
}

func legendEntries(g *graph.Graph, mode string) []legendEntry {
	var entries []legendEntry

	switch mode {
	case graph.ColorByCustom:
		entries = append(entries, legendEntry{"gray", 1, "Custom colors"})
	case graph.ColorByDegree:
		entries = append(entries,
			legendEntry{colormap.Viridis.Hex(0.2), 1, "Low connectivity"},
			legendEntry{colormap.Viridis.Hex(0.8), 1, "High connectivity"})
	case graph.ColorByBetweenness:
		entries = append(entries,
			legendEntry{colormap.Plasma.Hex(0.2), 1, "Low centrality"},
			legendEntry{colormap.Plasma.Hex(0.8), 1, "High centrality"})
	default:
		for i, c := range colormap.ClusterColors(g.NumClusters()) {
			entries = append(entries, legendEntry{c, 1, fmt.Sprintf("Cluster %d", i+1)})
		}
	}

	entries = append(entries, legendEntry{},
		legendEntry{positiveEdgeColor, 1, "Positive correlation"},
		legendEntry{negativeEdgeColor, 1, "Negative correlation"},
		legendEntry{},
		legendEntry{"gray", 0.5, "Node size ∝ connectivity"})
	return entries
}

func writeLegend(buf *bytes.Buffer, g *graph.Graph, mode string, w, plotH float64) {
	entries := legendEntries(g, mode)
	fontPx := render.PtPx(legendFontPt)

	const (
		rowH     = 26.0
		swatchW  = 22.0
		swatchH  = 14.0
		boxPad   = 14.0
		boxWidth = 230.0
	)

	boxX := w - marginRight + 20
	boxH := float64(len(entries))*rowH + 2*boxPad
	boxY := marginTop + plotH/2 - boxH/2

	fmt.Fprintf(buf,
		`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="white" stroke="#cccccc" stroke-width="1"/>`+"\n",
		boxX, boxY, boxWidth, boxH)

	y := boxY + boxPad
	for _, e := range entries {
		if e.color != "" {
			fmt.Fprintf(buf,
				`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%.1f" stroke="#555555" stroke-width="0.5"/>`+"\n",
				boxX+boxPad, y+(rowH-swatchH)/2, swatchW, swatchH, e.color, e.alpha)
			fmt.Fprintf(buf,
				`  <text x="%.2f" y="%.2f" dy="0.35em" font-family="%s" font-size="%.2f">%s</text>`+"\n",
				boxX+boxPad+swatchW+10, y+rowH/2, render.FontSans, fontPx, render.EscapeXML(e.label))
		}
		y += rowH
	}
}

func writeStats(buf *bytes.Buffer, g *graph.Graph, deg map[string]int) {
	fontPx := render.PtPx(statsFontPt)
	lineStep := fontPx * 1.4
	pad := 0.4 * fontPx

	lines := []string{
		"Network Statistics:",
		fmt.Sprintf("Nodes: %d", len(g.Nodes)),
		fmt.Sprintf("Edges: %d", len(g.Edges)),
		fmt.Sprintf("Density: %.3f", g.Density()),
		fmt.Sprintf("Avg. Clustering: %.3f", g.AvgClustering()),
	}

	maxLen := 0
	for _, l := range lines {
		if n := len(l); n > maxLen {
			maxLen = n
		}
	}

	x := marginLeft + 12
	top := marginTop + 12
	boxW := float64(maxLen)*fontPx*0.55 + 2*pad + 8
	boxH := float64(len(lines))*lineStep + 2*pad

	fmt.Fprintf(buf,
		`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="#d3d3d3" fill-opacity="0.8"/>`+"\n",
		x-pad, top-pad, boxW, boxH)

	y := top + fontPx
	for _, l := range lines {
		fmt.Fprintf(buf,
			`  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.2f">%s</text>`+"\n",
			x, y, render.FontSans, fontPx, render.EscapeXML(l))
		y += lineStep
	}
}

func writeNetTitle(buf *bytes.Buffer, g *graph.Graph, w float64) {
	fontPx := render.PtPx(titleFontPt)
	threshold := strconv.FormatFloat(g.Threshold, 'g', -1, 64)
	sub := fmt.Sprintf("|τ| > %s • %d connections", threshold, len(g.Edges))

	fmt.Fprintf(buf,
		`  <text x="%.2f" y="42" text-anchor="middle" font-family="%s" font-size="%.2f" font-weight="bold">%s</text>`+"\n",
		w/2, render.FontSans, fontPx, "Brain Region Connectivity Network")
	fmt.Fprintf(buf,
		`  <text x="%.2f" y="%.2f" text-anchor="middle" font-family="%s" font-size="%.2f" font-weight="bold">%s</text>`+"\n",
		w/2, 42+fontPx*1.3, render.FontSans, fontPx, render.EscapeXML(sub))
}
