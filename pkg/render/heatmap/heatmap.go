// Package heatmap renders a correlation matrix as an SVG heatmap: one
// colored cell per region pair on the diverging blue-red scale, axis tick
// labels, optional cluster boundary lines, and a labeled colorbar.
package heatmap

import (
	"bytes"
	"fmt"

	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/render"
	"github.com/siddlokray/cortica/pkg/render/colormap"
)

// Standard figure titles.
const TitleOriginal = "Original Correlation Matrix"

// ClusteredTitle returns the title for a cluster-reordered heatmap.
func ClusteredTitle(k int) string {
	return fmt.Sprintf("Clustered Correlation Matrix (%d clusters)", k)
}

// Canvas geometry. Margins hold the title, tick labels, and colorbar
// around the cell grid.
const (
	defaultWidthIn  = 12.0
	defaultHeightIn = 10.0

	marginTop    = 90.0
	marginLeft   = 170.0
	marginBottom = 170.0
	marginRight  = 190.0

	titleFontPt = 16.0
	tickFontPt  = 6.0
	cbarTickPt  = 10.0
	cbarLabelPt = 12.0

	boundaryWidthPt = 2.0
	colorbarShrink  = 0.8
	colorbarWidth   = 26.0
	colorbarGap     = 50.0
)

type svgRenderer struct {
	title       string
	widthIn     float64
	heightIn    float64
	ticks       bool
	interval    int
	labelColors []string
	boundaries  []int
	cbarLabel   string
}

// Option configures heatmap rendering.
type Option func(*svgRenderer)

// WithTitle sets the figure title. An empty title leaves the band blank.
func WithTitle(title string) Option {
	return func(r *svgRenderer) { r.title = title }
}

// WithSize sets the canvas size in inches.
func WithSize(widthIn, heightIn float64) Option {
	return func(r *svgRenderer) { r.widthIn, r.heightIn = widthIn, heightIn }
}

// WithLabelInterval shows every n-th tick label. Intervals below 1 are
// treated as 1.
func WithLabelInterval(n int) Option {
	return func(r *svgRenderer) { r.interval = n }
}

// WithoutLabels suppresses the axis tick labels entirely.
func WithoutLabels() Option {
	return func(r *svgRenderer) { r.ticks = false }
}

// WithLabelColors sets one hex color per region for the tick labels.
// The slice is indexed by region position; missing entries stay black.
func WithLabelColors(colors []string) Option {
	return func(r *svgRenderer) { r.labelColors = colors }
}

// WithBoundaries draws black separator lines before the given cell
// indices. Pass the first index of each cluster after the first.
func WithBoundaries(idx []int) Option {
	return func(r *svgRenderer) { r.boundaries = idx }
}

// WithColorbarLabel overrides the colorbar caption.
func WithColorbarLabel(label string) Option {
	return func(r *svgRenderer) { r.cbarLabel = label }
}

// Render draws the matrix in its given region order. Reorder the matrix
// first (connectivity.Matrix.Permute) for a clustered view.
func Render(m connectivity.Matrix, opts ...Option) []byte {
	r := svgRenderer{
		widthIn:   defaultWidthIn,
		heightIn:  defaultHeightIn,
		ticks:     true,
		interval:  1,
		cbarLabel: "Kendall Tau",
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.interval < 1 {
		r.interval = 1
	}

	n := m.Size()
	w := r.widthIn * render.PxPerInch
	h := r.heightIn * render.PxPerInch
	plotW := w - marginLeft - marginRight
	plotH := h - marginTop - marginBottom

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")
	writeGradientDef(&buf)

	if n > 0 {
		cellW := plotW / float64(n)
		cellH := plotH / float64(n)
		writeCells(&buf, m, cellW, cellH)
		writeBoundaries(&buf, r.boundaries, n, cellW, cellH, plotW, plotH)
		if r.ticks {
			writeTicks(&buf, m.Regions, &r, cellW, cellH, plotH)
		}
	}

	writeColorbar(&buf, r.cbarLabel, plotW, plotH)
	writeTitle(&buf, r.title, w)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeGradientDef(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <linearGradient id="corrscale" x1="0" y1="1" x2="0" y2="0">` + "\n")
	stops := colormap.BlueRed.Stops()
	for i, c := range stops {
		offset := float64(i) / float64(len(stops)-1) * 100
		fmt.Fprintf(buf, `      <stop offset="%.0f%%" stop-color="%s"/>`+"\n", offset, c.Hex())
	}
	buf.WriteString("    </linearGradient>\n")
	buf.WriteString("  </defs>\n")
}

func writeCells(buf *bytes.Buffer, m connectivity.Matrix, cellW, cellH float64) {
	n := m.Size()
	buf.WriteString(`  <g shape-rendering="crispEdges">` + "\n")
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t := (m.At(i, j) + 1) / 2
			fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
				marginLeft+float64(j)*cellW, marginTop+float64(i)*cellH,
				cellW, cellH, colormap.BlueRed.Hex(t))
		}
	}
	buf.WriteString("  </g>\n")
}

func writeBoundaries(buf *bytes.Buffer, boundaries []int, n int, cellW, cellH, plotW, plotH float64) {
	lw := render.PtPx(boundaryWidthPt)
	for _, b := range boundaries {
		if b <= 0 || b >= n {
			continue
		}
		x := marginLeft + float64(b)*cellW
		y := marginTop + float64(b)*cellH
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="%.2f"/>`+"\n",
			x, marginTop, x, marginTop+plotH, lw)
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="%.2f"/>`+"\n",
			marginLeft, y, marginLeft+plotW, y, lw)
	}
}

func writeTicks(buf *bytes.Buffer, regions []string, r *svgRenderer, cellW, cellH, plotH float64) {
	size := render.PtPx(tickFontPt)
	for i := 0; i < len(regions); i += r.interval {
		color := "black"
		if i < len(r.labelColors) && r.labelColors[i] != "" {
			color = r.labelColors[i]
		}
		label := render.EscapeXML(regions[i])

		// Row label, right-aligned against the grid.
		fmt.Fprintf(buf,
			`  <text x="%.2f" y="%.2f" dy="0.35em" text-anchor="end" font-family="%s" font-size="%.2f" fill="%s">%s</text>`+"\n",
			marginLeft-8, marginTop+(float64(i)+0.5)*cellH, render.FontSans, size, color, label)

		// Column label, rotated to read upward toward the axis.
		cx := marginLeft + (float64(i)+0.5)*cellW
		cy := marginTop + plotH + 8
		fmt.Fprintf(buf,
			`  <text x="%.2f" y="%.2f" dy="0.35em" text-anchor="end" transform="rotate(-90 %.2f %.2f)" font-family="%s" font-size="%.2f" fill="%s">%s</text>`+"\n",
			cx, cy, cx, cy, render.FontSans, size, color, label)
	}
}

func writeColorbar(buf *bytes.Buffer, label string, plotW, plotH float64) {
	barH := plotH * colorbarShrink
	barX := marginLeft + plotW + colorbarGap
	barY := marginTop + (plotH-barH)/2

	fmt.Fprintf(buf,
		`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="url(#corrscale)" stroke="black" stroke-width="0.7"/>`+"\n",
		barX, barY, colorbarWidth, barH)

	tickSize := render.PtPx(cbarTickPt)
	for _, v := range []float64{-1, -0.5, 0, 0.5, 1} {
		y := barY + barH*(1-(v+1)/2)
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="0.7"/>`+"\n",
			barX+colorbarWidth, y, barX+colorbarWidth+4, y)
		fmt.Fprintf(buf,
			`  <text x="%.2f" y="%.2f" dy="0.35em" font-family="%s" font-size="%.2f">%.1f</text>`+"\n",
			barX+colorbarWidth+8, y, render.FontSans, tickSize, v)
	}

	if label != "" {
		lx := barX + colorbarWidth + 52
		ly := barY + barH/2
		fmt.Fprintf(buf,
			`  <text x="%.2f" y="%.2f" text-anchor="middle" transform="rotate(-90 %.2f %.2f)" font-family="%s" font-size="%.2f">%s</text>`+"\n",
			lx, ly, lx, ly, render.FontSans, render.PtPx(cbarLabelPt), render.EscapeXML(label))
	}
}

func writeTitle(buf *bytes.Buffer, title string, w float64) {
	if title == "" {
		return
	}
	fmt.Fprintf(buf,
		`  <text x="%.2f" y="45" text-anchor="middle" font-family="%s" font-size="%.2f" font-weight="bold">%s</text>`+"\n",
		w/2, render.FontSans, render.PtPx(titleFontPt), render.EscapeXML(title))
}
