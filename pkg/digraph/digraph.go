package digraph

import "slices"

// Node is a vertex in the graph. Component holds the assigned component name
// and is empty until a decomposition run (or externally supplied tags) fills
// it in via [Graph.SetComponentTags].
type Node struct {
	ID        string // Unique identifier
	Label     string // Display label, may be empty
	Component string // Assigned component name, empty until tagged
}

// Edge is a directed connection between two nodes, identified by their IDs.
type Edge struct {
	Tail string // Source node ID
	Head string // Target node ID
}

// Graph is a directed graph with insertion-ordered nodes. Node IDs are
// unique; re-adding an ID overwrites its label (last write wins). Edges are
// deduplicated: adding the same (tail, head) pair twice has no further
// effect. Self-loops are legal.
//
// The zero value is not usable - use New.
type Graph struct {
	nodes []Node          // arena in insertion order
	index map[string]int  // node ID -> arena slot
	succ  [][]int         // arena slot -> successor slots
	edges []Edge          // unique edges in insertion order
	seen  map[[2]int]bool // (tail, head) slots already inserted
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		seen:  make(map[[2]int]bool),
	}
}

// AddNode inserts a node or, if the ID is already present, overwrites its
// label. Overwriting is silent: the last write wins, even when the new label
// is empty. The component tag of an existing node is left untouched.
func (g *Graph) AddNode(id, label string) {
	if i, ok := g.index[id]; ok {
		g.nodes[i].Label = label
		return
	}
	g.insert(id, label)
}

// AddEdge inserts the directed edge tail→head. Endpoints that have not been
// declared with AddNode are created with an empty label; this auto-creation
// is observable (such nodes render unlabeled downstream). Duplicate edges
// are ignored.
func (g *Graph) AddEdge(tail, head string) {
	t := g.ensure(tail)
	h := g.ensure(head)
	if g.seen[[2]int{t, h}] {
		return
	}
	g.seen[[2]int{t, h}] = true
	g.succ[t] = append(g.succ[t], h)
	g.edges = append(g.edges, Edge{Tail: tail, Head: head})
}

// insert appends a fresh node to the arena and returns its slot.
func (g *Graph) insert(id, label string) int {
	slot := len(g.nodes)
	g.index[id] = slot
	g.nodes = append(g.nodes, Node{ID: id, Label: label})
	g.succ = append(g.succ, nil)
	return slot
}

// ensure returns the slot for id, inserting an empty-labeled node if needed.
func (g *Graph) ensure(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	return g.insert(id, "")
}

// Node returns a copy of the node with the given ID and true, or the zero
// Node and false if not found.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Nodes returns a copy of all nodes in insertion order.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns a copy of all unique edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes, including auto-created ones.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of unique edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Successors returns the IDs of nodes reachable from id over a single edge,
// in edge insertion order. Returns nil if the node has no outgoing edges or
// does not exist.
func (g *Graph) Successors(id string) []string {
	i, ok := g.index[id]
	if !ok || len(g.succ[i]) == 0 {
		return nil
	}
	out := make([]string, len(g.succ[i]))
	for k, s := range g.succ[i] {
		out[k] = g.nodes[s].ID
	}
	return out
}

// ExistingComponentTags returns the node ID to component name mapping and
// true iff every node in the graph carries a non-empty component tag.
// Partial tagging counts as absent: the result is (nil, false) unless the
// tags cover the whole node set. An empty graph has no tags.
func (g *Graph) ExistingComponentTags() (map[string]string, bool) {
	if len(g.nodes) == 0 {
		return nil, false
	}
	tags := make(map[string]string, len(g.nodes))
	for _, n := range g.nodes {
		if n.Component == "" {
			return nil, false
		}
		tags[n.ID] = n.Component
	}
	return tags, true
}

// SetComponentTags writes a component name onto each listed node. IDs not
// present in the graph are ignored. Tags are visible to all downstream
// consumers (serializers, renderers) through Node and Nodes.
func (g *Graph) SetComponentTags(tags map[string]string) {
	for id, name := range tags {
		if i, ok := g.index[id]; ok {
			g.nodes[i].Component = name
		}
	}
}
