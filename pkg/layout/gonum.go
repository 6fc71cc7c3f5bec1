package layout

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	glayout "gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"sccmap/pkg/digraph"
)

// eadesUpdates is the iteration budget for the force simulation.
const eadesUpdates = 100

// gonumGraph converts the node arena into an undirected gonum graph. Arena
// slots become gonum node IDs. Placement ignores edge direction, so the
// reverse of an existing edge collapses into it, and self-loops are dropped:
// gonum rejects them and they exert no placement force anyway.
func gonumGraph(g *digraph.Graph) (*simple.UndirectedGraph, []digraph.Node) {
	nodes := g.Nodes()
	slot := make(map[string]int64, len(nodes))
	sg := simple.NewUndirectedGraph()
	for i, n := range nodes {
		slot[n.ID] = int64(i)
		sg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.Edges() {
		t, h := slot[e.Tail], slot[e.Head]
		if t == h {
			continue
		}
		sg.SetEdge(sg.NewEdge(simple.Node(t), simple.Node(h)))
	}
	return sg, nodes
}

// eadesPositions runs the Eades force-directed simulation. The seed fixes
// the initial jitter, so positions are reproducible.
func eadesPositions(ctx context.Context, g *digraph.Graph, opts Options) (map[string]Point, error) {
	sg, nodes := gonumGraph(g)

	seed := uint64(opts.Seed)
	eades := glayout.EadesR2{
		Updates:   eadesUpdates,
		Repulsion: 1,
		Rate:      0.05,
		Theta:     0.15,
		Src:       rand.NewPCG(seed, seed),
	}
	o := glayout.NewOptimizerR2(sg, eades.Update)
	for o.Update() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	out := make(map[string]Point, len(nodes))
	for i, n := range nodes {
		v := o.Coord2(int64(i))
		if math.IsNaN(v.X) || math.IsNaN(v.Y) {
			return nil, fmt.Errorf("force simulation diverged")
		}
		out[n.ID] = Point{X: v.X, Y: v.Y}
	}
	return out, nil
}

// isomapPositions places nodes by classical scaling over shortest-path
// distances. Disconnected graphs have infinite distances and are rejected.
func isomapPositions(ctx context.Context, g *digraph.Graph, opts Options) (map[string]Point, error) {
	sg, nodes := gonumGraph(g)

	iso := glayout.IsomapR2{}
	o := glayout.NewOptimizerR2(sg, iso.Update)
	for o.Update() {
	}

	out := make(map[string]Point, len(nodes))
	for i, n := range nodes {
		v := o.Coord2(int64(i))
		if math.IsNaN(v.X) || math.IsNaN(v.Y) {
			return nil, fmt.Errorf("isomap requires a connected graph")
		}
		out[n.ID] = Point{X: v.X, Y: v.Y}
	}
	return out, nil
}
