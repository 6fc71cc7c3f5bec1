package pipeline

import (
	"strings"
	"testing"

	"sccmap/pkg/digraph"
	"sccmap/pkg/layout"
)

func taggedPair() (*digraph.Graph, layout.Layout) {
	g := digraph.New()
	g.AddNode("a", "Alpha")
	g.AddNode("b", "Beta")
	g.AddNode("d", "Delta")
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")
	g.SetComponentTags(map[string]string{"a": "C0", "b": "C0", "d": "C1"})

	l := layout.Layout{
		Method: "eades",
		Width:  800,
		Height: 600,
		Positions: map[string]layout.Point{
			"a": {X: 0, Y: 0},
			"b": {X: 1, Y: 0},
			"d": {X: 0.5, Y: 1},
		},
	}
	return g, l
}

func TestRenderArtifacts(t *testing.T) {
	g, l := taggedPair()

	artifacts, err := RenderArtifacts(g, l, Options{Formats: []string{"svg", "json", "gexf"}})
	if err != nil {
		t.Fatalf("RenderArtifacts failed: %v", err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("got %d artifacts, want 3", len(artifacts))
	}

	svg := string(artifacts["svg"])
	if !strings.Contains(svg, "<svg") {
		t.Error("svg artifact should contain an <svg> root")
	}
	// First-sighting tag order assigns palette colors: C0 then C1.
	if !strings.Contains(svg, "#1f77b4") {
		t.Error("first component should use the first palette color")
	}
	if !strings.Contains(svg, "#ff7f0e") {
		t.Error("second component should use the second palette color")
	}

	if !strings.Contains(string(artifacts["json"]), `"component": "C0"`) {
		t.Error("json artifact should carry component tags")
	}
	if !strings.Contains(string(artifacts["gexf"]), `value="C0"`) {
		t.Error("gexf artifact should carry component attvalues")
	}
}

func TestRenderArtifactsUntagged(t *testing.T) {
	g := digraph.New()
	g.AddNode("a", "")

	l := layout.Layout{
		Width:     800,
		Height:    600,
		Positions: map[string]layout.Point{"a": {X: 0.5, Y: 0.5}},
	}

	artifacts, err := RenderArtifacts(g, l, Options{Formats: []string{"svg"}})
	if err != nil {
		t.Fatalf("RenderArtifacts failed: %v", err)
	}
	if !strings.Contains(string(artifacts["svg"]), "#999999") {
		t.Error("untagged nodes should render in the neutral color")
	}
}

func TestRenderArtifactsDuplicateFormats(t *testing.T) {
	g, l := taggedPair()

	artifacts, err := RenderArtifacts(g, l, Options{Formats: []string{"json", "json"}})
	if err != nil {
		t.Fatalf("RenderArtifacts failed: %v", err)
	}
	if len(artifacts) != 1 {
		t.Errorf("duplicate formats should render once, got %d artifacts", len(artifacts))
	}
}
