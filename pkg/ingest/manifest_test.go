package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleManifest = `
[[node]]
id = "a"
label = "alpha"

[[node]]
id = "b"
label = "beta"

[[edge]]
tail = "a"
head = "b"

[[edge]]
tail = "b"
head = "c"
`

func TestLoadManifest_BuildsGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.toml")
	if err := writeFile(path, sampleManifest); err != nil {
		t.Fatal(err)
	}

	g, err := LoadManifest(path, Options{})
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3 (c auto-created)", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if _, ok := g.ExistingComponentTags(); ok {
		t.Error("untagged manifest reported tags present")
	}
}

const taggedManifest = `
[[node]]
id = "a"
label = "alpha"
component = "C0"

[[node]]
id = "b"
label = "beta"
component = "C0"

[[edge]]
tail = "a"
head = "b"
`

func TestLoadManifest_CarriesComponentTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.toml")
	if err := writeFile(path, taggedManifest); err != nil {
		t.Fatal(err)
	}

	g, err := LoadManifest(path, Options{})
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	tags, ok := g.ExistingComponentTags()
	if !ok {
		t.Fatal("fully tagged manifest reported tags absent")
	}
	if tags["a"] != "C0" || tags["b"] != "C0" {
		t.Errorf("tags = %v, want a and b in C0", tags)
	}
}

func TestLoadManifest_MissingNodeID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.toml")
	if err := writeFile(path, "[[node]]\nlabel = \"orphan\"\n"); err != nil {
		t.Fatal(err)
	}

	_, err := LoadManifest(path, Options{})
	if err == nil || !strings.Contains(err.Error(), "id is required") {
		t.Errorf("LoadManifest() error = %v, want id-required failure", err)
	}
}

func TestLoadManifest_AppendID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.toml")
	if err := writeFile(path, "[[node]]\nid = \"a\"\nlabel = \"alpha\"\n"); err != nil {
		t.Fatal(err)
	}

	g, err := LoadManifest(path, Options{AppendID: true})
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	n, _ := g.Node("a")
	if n.Label != "alpha (a)" {
		t.Errorf("label = %q, want %q", n.Label, "alpha (a)")
	}
}
