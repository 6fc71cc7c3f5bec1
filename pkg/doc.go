// Package pkg provides the core libraries for sccmap graph decomposition.
//
// # Overview
//
// sccmap partitions a directed graph into strongly connected components
// (SCCs) and assigns each component a deterministic, human-readable name.
// The pkg directory is organized into four main areas:
//
//  1. [digraph] + [components] + [naming] - Domain logic (graph store, SCC engine, naming)
//  2. [cache] + [archive] - Infrastructure (result caching, tag archival)
//  3. [ingest] + [gexf] + [io] + [layout] + [render] - I/O and presentation collaborators
//  4. [pipeline] - Orchestration (ingest → decompose → layout → render)
//
// # Architecture
//
// The typical data flow through sccmap:
//
//	CSV files / TOML manifest
//	         ↓
//	    [ingest] package (build the graph store)
//	         ↓
//	    [digraph] package (SCC decomposition)
//	         ↓
//	    [components] + [naming] packages (registry + display names)
//	         ↓
//	    [layout] + [render] packages (positions + charts)
//	         ↓
//	    SVG/PNG/PDF/JSON/GEXF output
//
// # Quick Start
//
// Decompose a graph and read its components:
//
//	import (
//	    "sccmap/pkg/components"
//	    "sccmap/pkg/digraph"
//	    "sccmap/pkg/naming"
//	)
//
//	// 1. Build the graph
//	g := digraph.New()
//	g.AddNode("a", "Alpha")
//	g.AddEdge("a", "b")
//	g.AddEdge("b", "a")
//
//	// 2. Decompose and name
//	reg, _ := components.Build(g, naming.MethodCardinal)
//
//	// 3. Read the registry
//	for _, comp := range reg.Components() {
//	    fmt.Printf("%s: %v\n", comp.Name, comp.Members)
//	}
//
// # Main Packages
//
// ## Core Domain Logic
//
// [digraph] - Directed graph store with insertion-ordered nodes and an
// iterative Tarjan SCC engine emitting components in reverse topological
// order of the condensation.
//
// [naming] - Deterministic component naming strategies (string, initials,
// cardinal, ordinal).
//
// [components] - The component registry: ordered name → members mapping,
// built by decomposition or re-materialized from existing tags.
//
// ## Infrastructure
//
// [cache] - Content-addressed result caching with file, Redis, and null
// backends.
//
// [archive] - Cross-run tag archival with file, MongoDB, and null backends.
// A graph decomposed once keeps its component names on later runs.
//
// [observability] - Optional hooks for pipeline, cache, and archive events.
//
// ## I/O and Presentation
//
// [ingest] - CSV node/link readers and the TOML graph manifest.
//
// [gexf] - GEXF 1.2draft serialization for Gephi and friends.
//
// [io] - JSON graph import/export used by cache entries and the HTTP API.
//
// [layout] - Node positioning: graphviz DOT or gonum force-directed and
// distance-embedding methods.
//
// [render] - Chart rendering to SVG with PNG/PDF conversion.
//
// ## Orchestration
//
// [pipeline] - Complete decomposition pipeline used by the CLI and the HTTP
// server. Ensures consistent behavior across all entry points.
//
// ## Supporting Packages
//
// [apperr] - Structured error codes shared across the pipeline.
//
// [config] - Layered configuration: defaults < sccmap.toml < environment <
// flags.
//
// [watch] - Debounced file watching for serve --watch rebuilds.
//
// [buildinfo] - Build-time version information.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/digraph/...    # Specific package
//	go test -run Example         # Examples only
//
// [digraph]: https://pkg.go.dev/sccmap/pkg/digraph
// [naming]: https://pkg.go.dev/sccmap/pkg/naming
// [components]: https://pkg.go.dev/sccmap/pkg/components
// [cache]: https://pkg.go.dev/sccmap/pkg/cache
// [archive]: https://pkg.go.dev/sccmap/pkg/archive
// [observability]: https://pkg.go.dev/sccmap/pkg/observability
// [ingest]: https://pkg.go.dev/sccmap/pkg/ingest
// [gexf]: https://pkg.go.dev/sccmap/pkg/gexf
// [io]: https://pkg.go.dev/sccmap/pkg/io
// [layout]: https://pkg.go.dev/sccmap/pkg/layout
// [render]: https://pkg.go.dev/sccmap/pkg/render
// [pipeline]: https://pkg.go.dev/sccmap/pkg/pipeline
// [apperr]: https://pkg.go.dev/sccmap/pkg/apperr
// [config]: https://pkg.go.dev/sccmap/pkg/config
// [watch]: https://pkg.go.dev/sccmap/pkg/watch
// [buildinfo]: https://pkg.go.dev/sccmap/pkg/buildinfo
package pkg
