// Package digraph provides a directed graph keyed by string node IDs and its
// decomposition into strongly connected components.
//
// # Overview
//
// sccmap partitions a directed graph into strongly connected components
// (SCCs): maximal groups of nodes that can all reach each other along
// directed paths. This package holds the graph itself and the decomposition
// algorithm; naming the discovered components and assembling the registry
// live in the naming and components packages.
//
// Nodes are stored in an insertion-ordered arena and addressed internally by
// integer slot, with adjacency kept as slot-index lists. That representation
// keeps iteration order deterministic (maps never drive output) and lets the
// decomposition run without recursion on graphs of any depth.
//
// # Basic Usage
//
// Create a graph with [New], declare nodes with [Graph.AddNode], and connect
// them with [Graph.AddEdge]. Edges may reference undeclared IDs; the missing
// endpoints are created with an empty label:
//
//	g := digraph.New()
//	g.AddNode("a", "alpha")
//	g.AddNode("b", "beta")
//	g.AddEdge("a", "b")
//	g.AddEdge("b", "c") // c is auto-created
//
// [Graph.Components] returns the SCC partition. Component tags written with
// [Graph.SetComponentTags] are visible to every downstream consumer and are
// reported back by [Graph.ExistingComponentTags] once complete.
//
// # Determinism
//
// All iteration follows arena insertion order: Nodes and Edges report in the
// order first seen, Components seeds its traversals slot by slot, and each
// component lists its members by ascending slot. Two identical build
// sequences always produce identical output.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. A decomposition run must
// own the graph exclusively until tagging completes; afterwards read-only
// access can be shared freely.
package digraph
