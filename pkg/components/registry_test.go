package components

import (
	"errors"
	"maps"
	"slices"
	"testing"

	"sccmap/pkg/digraph"
	"sccmap/pkg/naming"
)

func triangleWithIsolate() *digraph.Graph {
	g := digraph.New()
	for _, id := range []string{"A", "B", "C", "D"} {
		g.AddNode(id, "")
	}
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "A")
	return g
}

func TestBuild_ComputePathTagsGraph(t *testing.T) {
	g := triangleWithIsolate()

	r, err := Build(g, naming.MethodString)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	members, ok := r.Members("C0")
	if !ok || !slices.Equal(members, []string{"A", "B", "C"}) {
		t.Errorf("Members(C0) = %v, %v, want [A B C], true", members, ok)
	}
	members, ok = r.Members("C1")
	if !ok || !slices.Equal(members, []string{"D"}) {
		t.Errorf("Members(C1) = %v, %v, want [D], true", members, ok)
	}

	// Tags must now be visible on the graph, all-or-nothing.
	tags, ok := g.ExistingComponentTags()
	if !ok {
		t.Fatal("graph untagged after compute path")
	}
	if tags["A"] != "C0" || tags["D"] != "C1" {
		t.Errorf("graph tags = %v", tags)
	}
}

func TestBuild_MemoizedPathBypassesEngine(t *testing.T) {
	g := digraph.New()
	g.AddNode("A", "")
	g.AddNode("B", "")
	g.AddEdge("A", "B") // not mutually reachable

	// Externally supplied tags claim one shared component; the memoized
	// path must trust them rather than recompute.
	g.SetComponentTags(map[string]string{"A": "ext", "B": "ext"})

	r, err := Build(g, naming.MethodString)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (tags are authoritative)", r.Len())
	}
	members, _ := r.Members("ext")
	if !slices.Equal(members, []string{"A", "B"}) {
		t.Errorf("Members(ext) = %v, want [A B]", members)
	}

	// The memoized path must not rewrite tags.
	n, _ := g.Node("A")
	if n.Component != "ext" {
		t.Errorf("tag after memoized build = %q, want ext", n.Component)
	}
}

func TestBuild_Idempotence(t *testing.T) {
	g := triangleWithIsolate()

	first, err := Build(g, naming.MethodString)
	if err != nil {
		t.Fatalf("first Build() error = %v", err)
	}
	second, err := Build(g, naming.MethodString)
	if err != nil {
		t.Fatalf("second Build() error = %v", err)
	}

	if !maps.Equal(first.Tags(), second.Tags()) {
		t.Errorf("re-materialized tags differ:\nfirst  = %v\nsecond = %v",
			first.Tags(), second.Tags())
	}
	for _, name := range first.Names() {
		a, _ := first.Members(name)
		b, ok := second.Members(name)
		if !ok || !slices.Equal(a, b) {
			t.Errorf("Members(%s) = %v vs %v", name, a, b)
		}
	}
}

func TestBuild_EmptyGraph(t *testing.T) {
	r, err := Build(digraph.New(), naming.MethodString)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestBuild_UnknownMethod(t *testing.T) {
	g := digraph.New()
	g.AddNode("A", "")
	if _, err := Build(g, naming.Method("bogus")); !errors.Is(err, naming.ErrUnknownMethod) {
		t.Errorf("Build() error = %v, want ErrUnknownMethod", err)
	}
}

func TestBuild_InitialsFallBackToID(t *testing.T) {
	g := digraph.New()
	g.AddNode("A", "alpha")
	g.AddEdge("A", "X") // X auto-created without label
	g.AddEdge("X", "A")

	r, err := Build(g, naming.MethodInitials)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, ok := r.Members("aX"); !ok {
		t.Errorf("Names() = %v, want entry aX (label initial + id fallback)", r.Names())
	}
}

func TestBuild_InitialsCollisionMerges(t *testing.T) {
	g := digraph.New()
	g.AddNode("1", "apple")
	g.AddNode("2", "apricot")

	r, err := Build(g, naming.MethodInitials)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 merged entry", r.Len())
	}
	members, _ := r.Members("a")
	if !slices.Equal(members, []string{"1", "2"}) {
		t.Errorf("Members(a) = %v, want [1 2]", members)
	}
}

func TestBuild_OrdinalNames(t *testing.T) {
	g := digraph.New()
	g.AddNode("X", "")
	g.AddNode("Y", "")

	r, err := Build(g, naming.MethodOrdinal)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []string{"first", "second"}
	if !slices.Equal(r.Names(), want) {
		t.Errorf("Names() = %v, want %v", r.Names(), want)
	}
}
