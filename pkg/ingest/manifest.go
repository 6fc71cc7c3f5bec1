package ingest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"sccmap/pkg/digraph"
)

// manifestFile is the TOML graph manifest shape. Component tags are
// optional; when every node carries one, the decomposition is bypassed in
// favor of the recorded assignment.
type manifestFile struct {
	Nodes []manifestNode `toml:"node"`
	Edges []manifestEdge `toml:"edge"`
}

type manifestNode struct {
	ID        string `toml:"id"`
	Label     string `toml:"label"`
	Component string `toml:"component"`
}

type manifestEdge struct {
	Tail string `toml:"tail"`
	Head string `toml:"head"`
}

// LoadManifest builds a graph from a TOML manifest of [[node]] and [[edge]]
// tables. Nodes need an id; label and component are optional. Edges need
// tail and head and may reference undeclared ids (auto-creation applies).
// Component tags present in the manifest are written onto the graph.
func LoadManifest(path string, opts Options) (*digraph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data, path, opts)
}

// ParseManifest is LoadManifest for manifest bytes already in memory. name
// labels the source in error messages.
func ParseManifest(data []byte, name string, opts Options) (*digraph.Graph, error) {
	var mf manifestFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	g := digraph.New()
	tags := make(map[string]string)

	for i, n := range mf.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%s: node %d: id is required", name, i)
		}
		label := n.Label
		if opts.AppendID && label != "" {
			label = fmt.Sprintf("%s (%s)", label, n.ID)
		}
		g.AddNode(n.ID, label)
		if n.Component != "" {
			tags[n.ID] = n.Component
		}
	}

	for i, e := range mf.Edges {
		if e.Tail == "" || e.Head == "" {
			return nil, fmt.Errorf("%s: edge %d: tail and head are required", name, i)
		}
		g.AddEdge(e.Tail, e.Head)
	}

	if len(tags) > 0 {
		g.SetComponentTags(tags)
	}
	return g, nil
}
