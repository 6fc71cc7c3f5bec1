package layout

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"sccmap/pkg/digraph"
)

// buildDOT renders the graph as DOT with numeric node names (arena slots).
// Numeric names sidestep quoting issues when parsing positions back out of
// the Graphviz output.
func buildDOT(g *digraph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=circle, width=0.5, fixedsize=true];\n")

	nodes := g.Nodes()
	slot := make(map[string]int, len(nodes))
	for i, n := range nodes {
		slot[n.ID] = i
		fmt.Fprintf(&buf, "  %d;\n", i)
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -> %d;\n", slot[e.Tail], slot[e.Head])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotPositions computes hierarchical positions with Graphviz. The graph is
// round-tripped through the xdot output format, which carries a pos
// attribute per node.
func dotPositions(ctx context.Context, g *digraph.Graph, opts Options) (map[string]Point, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(buildDOT(g)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.XDOT, &buf); err != nil {
		return nil, fmt.Errorf("compute positions: %w", err)
	}

	return parsePositions(buf.Bytes(), g.Nodes())
}

var (
	nodeStmtRe = regexp.MustCompile(`(?m)^\s*"?(\d+)"?\s*\[([^\]]*)\]`)
	posAttrRe  = regexp.MustCompile(`pos="([0-9eE+.-]+),([0-9eE+.-]+)"`)
)

// parsePositions extracts node centers from Graphviz xdot output. Graphviz
// puts the origin at the bottom left; the y axis is flipped here so ranks
// read top to bottom on screen.
func parsePositions(xdot []byte, nodes []digraph.Node) (map[string]Point, error) {
	out := make(map[string]Point, len(nodes))
	for _, m := range nodeStmtRe.FindAllSubmatch(xdot, -1) {
		slot, err := strconv.Atoi(string(m[1]))
		if err != nil || slot < 0 || slot >= len(nodes) {
			continue
		}
		pm := posAttrRe.FindSubmatch(m[2])
		if pm == nil {
			continue
		}
		x, errX := strconv.ParseFloat(string(pm[1]), 64)
		y, errY := strconv.ParseFloat(string(pm[2]), 64)
		if errX != nil || errY != nil {
			continue
		}
		out[nodes[slot].ID] = Point{X: x, Y: -y}
	}
	if len(out) != len(nodes) {
		return nil, fmt.Errorf("positions missing for %d of %d nodes", len(nodes)-len(out), len(nodes))
	}
	return out, nil
}
