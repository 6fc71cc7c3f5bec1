package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sccmap/pkg/digraph"
)

// ReadJSON decodes a JSON graph from r into a directed graph.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"tail": "a", "head": "b"}]
//	}
//
// Each node must have an "id" field. Optional fields:
//   - label: display label, empty when omitted
//   - component: component tag from a previous decomposition
//
// Each edge must have "tail" and "head" fields. IDs not declared in the
// nodes array are created implicitly with an empty label, matching
// [digraph.Graph.AddEdge].
//
// ReadJSON returns an error if the JSON is malformed or a node has an
// empty id. The returned graph is independent of r and can be modified
// safely after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*digraph.Graph, error) {
	var data graphDoc
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := digraph.New()
	tags := make(map[string]string)
	for i, n := range data.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node %d: missing id", i)
		}
		g.AddNode(n.ID, n.Label)
		if n.Component != "" {
			tags[n.ID] = n.Component
		}
	}
	for i, e := range data.Edges {
		if e.Tail == "" || e.Head == "" {
			return nil, fmt.Errorf("edge %d: missing tail or head", i)
		}
		g.AddEdge(e.Tail, e.Head)
	}
	if len(tags) > 0 {
		g.SetComponentTags(tags)
	}

	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. If the file cannot be opened, or if decoding fails, ImportJSON
// returns an error describing the failure. The error wraps the underlying
// cause with the file path for context.
func ImportJSON(path string) (*digraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
