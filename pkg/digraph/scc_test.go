package digraph

import (
	"fmt"
	"slices"
	"testing"
)

func TestComponents_EmptyGraph(t *testing.T) {
	g := New()
	if comps := g.Components(); comps != nil {
		t.Errorf("Components() = %v, want nil", comps)
	}
}

func TestComponents_TriangleWithIsolate(t *testing.T) {
	g := New()
	for _, id := range []string{"A", "B", "C", "D"} {
		g.AddNode(id, "")
	}
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "A")

	comps := g.Components()
	if len(comps) != 2 {
		t.Fatalf("Components() returned %d components, want 2", len(comps))
	}
	if want := []string{"A", "B", "C"}; !slices.Equal(comps[0], want) {
		t.Errorf("comps[0] = %v, want %v", comps[0], want)
	}
	if want := []string{"D"}; !slices.Equal(comps[1], want) {
		t.Errorf("comps[1] = %v, want %v", comps[1], want)
	}
}

func TestComponents_NoEdges(t *testing.T) {
	g := New()
	g.AddNode("X", "")
	g.AddNode("Y", "")
	g.AddNode("Z", "")

	comps := g.Components()
	if len(comps) != 3 {
		t.Fatalf("Components() returned %d components, want 3 singletons", len(comps))
	}
	for i, want := range []string{"X", "Y", "Z"} {
		if len(comps[i]) != 1 || comps[i][0] != want {
			t.Errorf("comps[%d] = %v, want [%s]", i, comps[i], want)
		}
	}
}

func TestComponents_SelfLoopStaysSingleton(t *testing.T) {
	g := New()
	g.AddNode("A", "")
	g.AddEdge("A", "A")

	comps := g.Components()
	if len(comps) != 1 {
		t.Fatalf("Components() returned %d components, want 1", len(comps))
	}
	if want := []string{"A"}; !slices.Equal(comps[0], want) {
		t.Errorf("comps[0] = %v, want %v", comps[0], want)
	}
}

func TestComponents_AutoCreatedNodeIsCovered(t *testing.T) {
	g := New()
	g.AddNode("A", "alpha")
	g.AddNode("B", "beta")
	g.AddEdge("B", "C")

	comps := g.Components()
	var found bool
	for _, c := range comps {
		if slices.Contains(c, "C") {
			found = true
		}
	}
	if !found {
		t.Error("auto-created node C missing from all components")
	}
	n, _ := g.Node("C")
	if n.Label != "" {
		t.Errorf("auto-created node label = %q, want empty", n.Label)
	}
}

func TestComponents_ReverseTopologicalOrder(t *testing.T) {
	// Two 2-cycles with a bridge: {a,b} -> {c,d}. The downstream component
	// must close first.
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")
	g.AddEdge("c", "d")
	g.AddEdge("d", "c")
	g.AddEdge("b", "c")

	comps := g.Components()
	if len(comps) != 2 {
		t.Fatalf("Components() returned %d components, want 2", len(comps))
	}
	if want := []string{"c", "d"}; !slices.Equal(comps[0], want) {
		t.Errorf("comps[0] = %v, want %v (downstream closes first)", comps[0], want)
	}
	if want := []string{"a", "b"}; !slices.Equal(comps[1], want) {
		t.Errorf("comps[1] = %v, want %v", comps[1], want)
	}
}

func TestComponents_PartitionLaw(t *testing.T) {
	g := New()
	edges := [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"}, // 3-cycle
		{"c", "d"}, {"d", "e"}, {"e", "d"}, // 2-cycle downstream
		{"f", "a"}, // feeder into the 3-cycle
	}
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	g.AddNode("lonely", "")

	comps := g.Components()

	seen := make(map[string]int)
	for _, c := range comps {
		if len(c) == 0 {
			t.Fatal("empty component emitted")
		}
		for _, id := range c {
			seen[id]++
		}
	}
	for _, n := range g.Nodes() {
		switch seen[n.ID] {
		case 0:
			t.Errorf("node %s missing from partition", n.ID)
		case 1:
		default:
			t.Errorf("node %s appears in %d components", n.ID, seen[n.ID])
		}
	}
	if len(seen) != g.NodeCount() {
		t.Errorf("partition covers %d nodes, want %d", len(seen), g.NodeCount())
	}
}

func TestComponents_MutualReachabilityLaw(t *testing.T) {
	g := New()
	edges := [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"},
		{"c", "d"}, {"d", "e"}, {"e", "d"},
		{"f", "a"},
	}
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}

	compOf := make(map[string]int)
	for i, c := range g.Components() {
		for _, id := range c {
			compOf[id] = i
		}
	}

	nodes := g.Nodes()
	for _, u := range nodes {
		for _, v := range nodes {
			same := compOf[u.ID] == compOf[v.ID]
			mutual := reaches(g, u.ID, v.ID) && reaches(g, v.ID, u.ID)
			if same != mutual {
				t.Errorf("nodes %s,%s: same component = %v, mutual reachability = %v",
					u.ID, v.ID, same, mutual)
			}
		}
	}
}

// reaches reports whether a directed path leads from src to dst.
func reaches(g *Graph, src, dst string) bool {
	if src == dst {
		return true
	}
	visited := map[string]bool{src: true}
	queue := []string{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.Successors(cur) {
			if next == dst {
				return true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

func TestComponents_LongChainWithoutRecursion(t *testing.T) {
	g := New()
	const n = 10000
	for i := 0; i < n-1; i++ {
		g.AddEdge(fmt.Sprintf("n%05d", i), fmt.Sprintf("n%05d", i+1))
	}

	comps := g.Components()
	if len(comps) != n {
		t.Fatalf("Components() returned %d components, want %d singletons", len(comps), n)
	}
	// Reverse topological order: the chain's tail closes first.
	if comps[0][0] != fmt.Sprintf("n%05d", n-1) {
		t.Errorf("comps[0] = %v, want the chain tail", comps[0])
	}
	if comps[n-1][0] != "n00000" {
		t.Errorf("comps[%d] = %v, want the chain head", n-1, comps[n-1])
	}
}

func TestComponents_Deterministic(t *testing.T) {
	build := func() *Graph {
		g := New()
		g.AddEdge("m", "n")
		g.AddEdge("n", "m")
		g.AddEdge("n", "o")
		g.AddNode("p", "")
		return g
	}

	first := build().Components()
	second := build().Components()
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !slices.Equal(first[i], second[i]) {
			t.Errorf("comps[%d] differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}
