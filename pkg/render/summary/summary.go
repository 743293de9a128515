// Package summary renders the cluster assignment panel: a monospace text
// block listing every cluster and its member regions, boxed on a plain
// canvas. Clusters with more than ten members switch to a three-column
// layout so long membership lists stay readable.
package summary

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/siddlokray/cortica/pkg/cluster"
	"github.com/siddlokray/cortica/pkg/render"
)

const (
	defaultWidthIn  = 10.0
	defaultHeightIn = 12.0

	textFontPt = 8.0
	lineHeight = 1.45 // in font-size units

	// Members per cluster before switching to columns.
	columnThreshold = 10
	columnCount     = 3
	columnPad       = 25
)

type svgRenderer struct {
	widthIn  float64
	heightIn float64
}

// Option configures panel rendering.
type Option func(*svgRenderer)

// WithSize sets the canvas size in inches.
func WithSize(widthIn, heightIn float64) Option {
	return func(r *svgRenderer) { r.widthIn, r.heightIn = widthIn, heightIn }
}

// Lines formats the assignment text: a header, then one block per cluster
// listing its members. Blocks with more than ten members interleave the
// names down three padded columns.
func Lines(stats []cluster.Stat) []string {
	lines := []string{"Cluster Assignments:", ""}

	for _, st := range stats {
		lines = append(lines, fmt.Sprintf("Cluster %d (%d regions):", st.Label, st.Size))

		if st.Size > columnThreshold {
			colSize := (st.Size + columnCount - 1) / columnCount
			for row := 0; row < colSize; row++ {
				var b strings.Builder
				b.WriteString("  ")
				for col := 0; col < columnCount; col++ {
					idx := row + col*colSize
					if idx < st.Size {
						fmt.Fprintf(&b, "• %-*s", columnPad, st.Regions[idx])
					}
				}
				lines = append(lines, strings.TrimRight(b.String(), " "))
			}
		} else {
			for _, r := range st.Regions {
				lines = append(lines, "  • "+r)
			}
		}

		lines = append(lines, "")
	}

	return lines
}

// Render draws the assignment panel as SVG.
func Render(stats []cluster.Stat, opts ...Option) []byte {
	r := svgRenderer{widthIn: defaultWidthIn, heightIn: defaultHeightIn}
	for _, opt := range opts {
		opt(&r)
	}

	w := r.widthIn * render.PxPerInch
	h := r.heightIn * render.PxPerInch
	lines := Lines(stats)

	fontPx := render.PtPx(textFontPt)
	lineStep := fontPx * lineHeight
	textX := w * 0.05
	topY := h * 0.05

	// Size the backing box from the longest line. Monospace glyphs run
	// about 0.6em wide.
	maxLen := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > maxLen {
			maxLen = n
		}
	}
	boxW := float64(maxLen)*fontPx*0.6 + 24
	if boxW > w-2*textX+24 {
		boxW = w - 2*textX + 24
	}
	boxH := float64(len(lines))*lineStep + 20

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")

	fmt.Fprintf(&buf,
		`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="10" fill="#d3d3d3" fill-opacity="0.7" stroke="black" stroke-opacity="0.7" stroke-width="1"/>`+"\n",
		textX-12, topY-12, boxW, boxH)

	y := topY + fontPx
	for _, l := range lines {
		if l != "" {
			fmt.Fprintf(&buf,
				`  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.2f" xml:space="preserve">%s</text>`+"\n",
				textX, y, render.FontMono, fontPx, render.EscapeXML(l))
		}
		y += lineStep
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
