package netplot

import (
	"bytes"
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/siddlokray/cortica/pkg/errors"
	"github.com/siddlokray/cortica/pkg/graph"
)

// =============================================================================
// Layout Computation
// =============================================================================

// LayoutOptions configure position computation.
type LayoutOptions struct {
	Algorithm   string  // spring, circular, kamada_kawai, force_atlas
	Orientation string  // horizontal or vertical
	Seed        uint64  // engine start state
	Iterations  int     // force solver pass cap, 0 for engine default
	WidthIn     float64 // canvas width, inches
	HeightIn    float64 // canvas height, inches
}

// ComputeLayout runs the Graphviz engine for the requested algorithm and
// returns the positioned network. Vertical orientation rotates the
// arrangement a quarter turn and swaps the canvas dimensions.
func ComputeLayout(ctx context.Context, g *graph.Graph, opts LayoutOptions) (graph.Layout, error) {
	engine, err := engineFor(opts.Algorithm)
	if err != nil {
		return graph.Layout{}, err
	}

	dot := ToDOT(g, DOTOptions{Seed: opts.Seed, Iterations: opts.Iterations})

	gv, err := graphviz.New(ctx)
	if err != nil {
		return graph.Layout{}, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(engine)

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return graph.Layout{}, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.XDOT, &buf); err != nil {
		return graph.Layout{}, errors.Wrap(errors.ErrCodeInternal, err,
			"compute %s layout", opts.Algorithm)
	}

	positions, err := parsePositions(buf.String())
	if err != nil {
		return graph.Layout{}, err
	}

	l := graph.Layout{
		Algorithm:   opts.Algorithm,
		Engine:      string(engine),
		Orientation: opts.Orientation,
		Seed:        opts.Seed,
		Width:       opts.WidthIn,
		Height:      opts.HeightIn,
		Graph:       *g,
		Positions:   make(map[string]graph.Position, len(g.Nodes)),
	}
	for _, n := range g.Nodes {
		p, ok := positions[n.ID]
		if !ok {
			return graph.Layout{}, errors.New(errors.ErrCodeInternal,
				"layout engine returned no position for %q", n.ID)
		}
		l.Positions[n.ID] = p
	}

	if opts.Orientation == graph.OrientationVertical {
		l.Rotate90()
	}

	return l, nil
}

// =============================================================================
// Position Extraction
// =============================================================================

var (
	// Node statements in laid-out DOT output: an id (possibly quoted) at
	// the start of a line, followed by an attribute list. Edge statements
	// never match because "--" sits between the id and the bracket.
	nodeStmtRe = regexp.MustCompile(`(?ms)^\s*("(?:[^"\\]|\\.)*"|[\w.]+)\s*\[(.*?)\];`)
	posAttrRe  = regexp.MustCompile(`\bpos="(-?[0-9.]+(?:[eE][+-]?[0-9]+)?),(-?[0-9.]+(?:[eE][+-]?[0-9]+)?)"`)
)

// parsePositions extracts node pos attributes from the laid-out DOT text
// the engine writes back.
func parsePositions(out string) (map[string]graph.Position, error) {
	positions := make(map[string]graph.Position)

	for _, m := range nodeStmtRe.FindAllStringSubmatch(out, -1) {
		id := unquoteID(m[1])
		switch id {
		case "graph", "node", "edge":
			continue
		}

		pm := posAttrRe.FindStringSubmatch(m[2])
		if pm == nil {
			continue
		}
		x, errX := strconv.ParseFloat(pm[1], 64)
		y, errY := strconv.ParseFloat(pm[2], 64)
		if errX != nil || errY != nil {
			continue
		}
		positions[id] = graph.Position{X: x, Y: y}
	}

	if len(positions) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "no node positions in layout output")
	}
	return positions, nil
}

func unquoteID(s string) string {
	if len(s) < 2 || s[0] != '"' {
		return s
	}
	body := s[1 : len(s)-1]
	body = strings.ReplaceAll(body, `\"`, `"`)
	return strings.ReplaceAll(body, `\\`, `\`)
}
