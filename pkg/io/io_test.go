package io

import (
	"path/filepath"
	"strings"
	"testing"

	"sccmap/pkg/digraph"
)

func buildGraph() *digraph.Graph {
	g := digraph.New()
	g.AddNode("a", "alpha")
	g.AddNode("b", "beta")
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")
	g.AddEdge("b", "c") // auto-created node
	return g
}

func TestWriteJSON(t *testing.T) {
	g := buildGraph()
	g.SetComponentTags(map[string]string{"a": "C0", "b": "C0", "c": "C1"})

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`"id": "a"`,
		`"label": "alpha"`,
		`"component": "C0"`,
		`"tail": "b"`,
		`"head": "c"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}

	// Auto-created node c has no label and must not emit one.
	if strings.Contains(out, `"label": ""`) {
		t.Errorf("empty label should be omitted:\n%s", out)
	}
}

func TestReadJSON(t *testing.T) {
	input := `{
	  "nodes": [
	    {"id": "a", "label": "alpha", "component": "C0"},
	    {"id": "b", "label": "beta", "component": "C0"}
	  ],
	  "edges": [
	    {"tail": "a", "head": "b"},
	    {"tail": "b", "head": "c"}
	  ]
	}`

	g, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}

	a, ok := g.Node("a")
	if !ok {
		t.Fatal("node a not found")
	}
	if a.Label != "alpha" {
		t.Errorf("Label = %q, want %q", a.Label, "alpha")
	}
	if a.Component != "C0" {
		t.Errorf("Component = %q, want %q", a.Component, "C0")
	}

	// c was auto-created by an edge: no label, no tag.
	c, ok := g.Node("c")
	if !ok {
		t.Fatal("node c not found")
	}
	if c.Label != "" || c.Component != "" {
		t.Errorf("auto-created node = %+v, want empty label and component", c)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"nodes": [`},
		{"missing node id", `{"nodes": [{"label": "x"}], "edges": []}`},
		{"missing edge head", `{"nodes": [], "edges": [{"tail": "a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadJSON() error = nil, want error")
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	g := buildGraph()
	g.SetComponentTags(map[string]string{"a": "C0", "b": "C0", "c": "C1"})

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}

	wantNodes := g.Nodes()
	gotNodes := got.Nodes()
	if len(gotNodes) != len(wantNodes) {
		t.Fatalf("round trip nodes = %d, want %d", len(gotNodes), len(wantNodes))
	}
	for i := range wantNodes {
		if gotNodes[i] != wantNodes[i] {
			t.Errorf("node %d = %+v, want %+v", i, gotNodes[i], wantNodes[i])
		}
	}

	wantEdges := g.Edges()
	gotEdges := got.Edges()
	if len(gotEdges) != len(wantEdges) {
		t.Fatalf("round trip edges = %d, want %d", len(gotEdges), len(wantEdges))
	}
	for i := range wantEdges {
		if gotEdges[i] != wantEdges[i] {
			t.Errorf("edge %d = %+v, want %+v", i, gotEdges[i], wantEdges[i])
		}
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("ImportJSON() error = nil, want error")
	}
}
