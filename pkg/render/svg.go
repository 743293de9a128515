package render

import (
	"bytes"
	"encoding/xml"
)

// PxPerInch converts figure inches to SVG user units. A 12x10 inch figure
// maps to a 1200x1000 canvas.
const PxPerInch = 100.0

// PtPx converts a point size (fonts, line widths) to SVG user units at the
// canvas density.
func PtPx(pt float64) float64 { return pt * PxPerInch / 72.0 }

// Font stacks for figure text. SVG output carries no embedded fonts, so
// these fall through to whatever the viewer has installed.
const (
	FontSans = "Helvetica, Arial, sans-serif"
	FontMono = "Menlo, Consolas, monospace"
)

// EscapeXML escapes text for inclusion in SVG output.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
