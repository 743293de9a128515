// Package netplot renders the thresholded connectivity network: Graphviz
// computes node positions, then an SVG pass draws weighted edges, degree-
// scaled nodes, labels, a legend, and a statistics box around them.
package netplot

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/siddlokray/cortica/pkg/errors"
	"github.com/siddlokray/cortica/pkg/graph"
)

// DOTOptions configure DOT generation for layout.
type DOTOptions struct {
	// Seed fixes the starting state of the force-directed engines so
	// repeated runs produce the same arrangement.
	Seed uint64

	// Iterations caps the force-directed solver passes. Zero leaves the
	// engine default in place.
	Iterations int
}

// ToDOT converts the network to undirected Graphviz DOT for layout. Nodes
// are points with stable ids; edge weights carry correlation magnitude so
// strongly correlated regions pull together under the force engines.
func ToDOT(g *graph.Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  start=\"%d\";\n", opts.Seed)
	if opts.Iterations > 0 {
		fmt.Fprintf(&buf, "  maxiter=\"%d\";\n", opts.Iterations)
	}
	buf.WriteString("  node [shape=point, width=0.3];\n")
	buf.WriteString("  edge [len=1.5];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q;\n", n.ID)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -- %q [weight=%.4f];\n", e.From, e.To, e.Weight)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// engineFor maps a layout algorithm name to the Graphviz engine that
// computes it: spring and force_atlas run the force-directed engines (the
// latter weighted and multiscale), kamada_kawai runs stress minimization,
// circular arranges nodes on a ring.
func engineFor(algorithm string) (graphviz.Layout, error) {
	switch algorithm {
	case graph.LayoutSpring:
		return graphviz.FDP, nil
	case graph.LayoutForceAtlas:
		return graphviz.SFDP, nil
	case graph.LayoutKamadaKawai:
		return graphviz.NEATO, nil
	case graph.LayoutCircular:
		return graphviz.CIRCO, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidLayout,
			"unknown layout algorithm: %q", algorithm)
	}
}
