// Package io provides JSON import and export for directed graphs.
//
// # Overview
//
// This package enables serialization of directed graphs to and from a simple
// JSON format. The format is designed for:
//
//   - Exchange of any directed graph, cycles included
//   - Integration with external tools that produce or consume graph data
//   - Caching of ingested graph data for faster re-processing
//   - Round-trip preservation: import, decompose, export, and re-import identically
//
// # JSON Format
//
// The format has two required top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "a", "label": "alpha"},
//	    {"id": "b", "label": "beta", "component": "C0"}
//	  ],
//	  "edges": [
//	    {"tail": "a", "head": "b"},
//	    {"tail": "b", "head": "a"}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//
// Optional:
//   - label: Display label, empty when omitted
//   - component: Component tag assigned by a previous decomposition
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	g, err := io.ImportJSON("graph.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Nodes referenced only by edges are created implicitly with an empty
// label. Duplicate edges are dropped, matching [digraph.Graph.AddEdge].
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer:
//
//	err := io.ExportJSON(g, "out.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The export includes all node and edge data in insertion order, including
// component tags when present. This enables full round-trip fidelity: import
// a graph, decompose it, export the result, and re-import identically.
//
// # Concurrency
//
// All functions in this package are safe to call concurrently with other
// readers of the same graph, but not with concurrent modifications. The
// [ReadJSON] and [ImportJSON] functions create independent graph instances
// that can be used and modified freely after import.
package io
