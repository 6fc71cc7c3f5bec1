// Package layout computes node positions for rendering a directed graph.
//
// Three methods are available, all producing coordinates in the unit
// square:
//
//   - dot: hierarchical placement via Graphviz (pure Go, WASM build)
//   - eades: force-directed placement via gonum
//   - isomap: distance-preserving placement via gonum (connected graphs only)
//
// Passing "auto" (or an empty method) to [Compute] tries each method in
// that order and falls through to the next on failure, logging a warning.
// Positions are deterministic for a fixed graph, method, and seed.
package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// Point is a node position in the unit square. The renderer scales points
// to the target canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout holds computed positions for every node of a graph, together with
// the method and canvas the positions were computed for.
type Layout struct {
	// Method is the layout method that produced the positions. For "auto"
	// requests this is the method that actually succeeded.
	Method string `json:"method"`

	// Width and Height are the intended canvas dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Seed is the random seed used by stochastic methods.
	Seed int64 `json:"seed"`

	// Positions maps node IDs to unit-square coordinates.
	Positions map[string]Point `json:"positions"`
}

// Marshal serializes a Layout to pretty-printed JSON bytes. The output is
// deterministic: object keys are emitted in sorted order.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Method == "" {
		return Layout{}, fmt.Errorf("layout must name its method")
	}
	return l, nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
