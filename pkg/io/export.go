package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sccmap/pkg/digraph"
)

type graphDoc struct {
	Nodes []nodeDoc `json:"nodes"`
	Edges []edgeDoc `json:"edges"`
}

type nodeDoc struct {
	ID        string `json:"id"`
	Label     string `json:"label,omitempty"`
	Component string `json:"component,omitempty"`
}

type edgeDoc struct {
	Tail string `json:"tail"`
	Head string `json:"head"`
}

func docFromGraph(g *digraph.Graph) graphDoc {
	nodes := g.Nodes()
	edges := g.Edges()
	out := graphDoc{
		Nodes: make([]nodeDoc, len(nodes)),
		Edges: make([]edgeDoc, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = nodeDoc{ID: n.ID, Label: n.Label, Component: n.Component}
	}
	for i, e := range edges {
		out.Edges[i] = edgeDoc{Tail: e.Tail, Head: e.Head}
	}
	return out
}

// WriteJSON encodes a graph as JSON and writes it to w.
// The output lists nodes and edges in insertion order; empty labels and
// component tags are omitted. This format can be re-imported with [ReadJSON]
// for round-trip processing.
func WriteJSON(g *digraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docFromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal returns the JSON encoding of g as produced by [WriteJSON].
func Marshal(g *digraph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *digraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
