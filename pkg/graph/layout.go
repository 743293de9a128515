package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Positioned Network
// =============================================================================

// Position is a node's 2D layout coordinate. Coordinates are abstract layout
// units; the renderer scales them onto the canvas.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Layout pairs a graph with a computed node arrangement, ready to render.
// Algorithm is the requested layout ("spring", "circular", ...), Engine the
// Graphviz engine that produced the positions.
type Layout struct {
	Algorithm   string  `json:"algorithm" bson:"algorithm"`
	Engine      string  `json:"engine,omitempty" bson:"engine,omitempty"`
	Orientation string  `json:"orientation,omitempty" bson:"orientation,omitempty"`
	Seed        uint64  `json:"seed,omitempty" bson:"seed,omitempty"`
	Width       float64 `json:"width" bson:"width"`   // canvas width, inches
	Height      float64 `json:"height" bson:"height"` // canvas height, inches

	Graph     Graph               `json:"graph" bson:"graph"`
	Positions map[string]Position `json:"positions" bson:"positions"`
}

// Rotate90 rotates every position a quarter turn counterclockwise,
// (x, y) → (-y, x), for vertical orientation. Canvas dimensions swap with it.
func (l *Layout) Rotate90() {
	for id, p := range l.Positions {
		l.Positions[id] = Position{X: -p.Y, Y: p.X}
	}
	l.Width, l.Height = l.Height, l.Width
}

// Bounds returns the min and max corner of the positioned nodes. A layout
// with no positions reports zero bounds.
func (l *Layout) Bounds() (min, max Position) {
	first := true
	for _, p := range l.Positions {
		if first {
			min, max = p, p
			first = false
			continue
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that every graph node has a position.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if err := validateGraph(&l.Graph); err != nil {
		return Layout{}, fmt.Errorf("layout graph: %w", err)
	}
	for _, n := range l.Graph.Nodes {
		if _, ok := l.Positions[n.ID]; !ok {
			return Layout{}, fmt.Errorf("layout missing position for node %q", n.ID)
		}
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
