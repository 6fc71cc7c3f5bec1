package digraph

import "slices"

// Components partitions the graph into strongly connected components using
// Tarjan's single-pass algorithm in iterative form: recursion is replaced by
// an explicit frame stack so arbitrarily deep graphs cannot overflow the
// goroutine stack.
//
// Components are emitted in reverse topological order of the condensation
// graph - a component is closed only after everything reachable from it has
// been closed - and this emission order is the positional index used for
// naming. Members within a component are listed by ascending arena slot,
// which is their insertion order.
//
// Every node is covered: unvisited nodes seed new traversals in insertion
// order, so disconnected subgraphs, isolated nodes, and self-loops all land
// in exactly one component. An empty graph yields nil. The decomposition
// cannot fail.
func (g *Graph) Components() [][]string {
	n := len(g.nodes)
	if n == 0 {
		return nil
	}

	const unvisited = -1
	disc := make([]int, n) // discovery index, -1 until visited
	low := make([]int, n)  // smallest discovery index reachable
	for i := range disc {
		disc[i] = unvisited
	}
	onPath := make([]bool, n)
	path := make([]int, 0, n) // nodes awaiting component assignment
	next := 0                 // next discovery index

	// frame simulates one recursive call: v is the arena slot, edge the
	// offset of the next successor to examine.
	type frame struct {
		v    int
		edge int
	}
	var calls []frame
	var comps [][]string

	for root := 0; root < n; root++ {
		if disc[root] != unvisited {
			continue
		}
		calls = append(calls[:0], frame{v: root})

		for len(calls) > 0 {
			f := &calls[len(calls)-1]
			v := f.v

			if f.edge == 0 {
				disc[v] = next
				low[v] = next
				next++
				path = append(path, v)
				onPath[v] = true
			}

			descended := false
			for f.edge < len(g.succ[v]) {
				w := g.succ[v][f.edge]
				f.edge++
				if disc[w] == unvisited {
					calls = append(calls, frame{v: w})
					descended = true
					break
				}
				if onPath[w] && disc[w] < low[v] {
					low[v] = disc[w]
				}
			}
			if descended {
				continue
			}

			calls = calls[:len(calls)-1]
			if len(calls) > 0 {
				parent := &calls[len(calls)-1]
				if low[v] < low[parent.v] {
					low[parent.v] = low[v]
				}
			}

			// v roots a component: pop the path down to and including v.
			if low[v] == disc[v] {
				var members []int
				for {
					w := path[len(path)-1]
					path = path[:len(path)-1]
					onPath[w] = false
					members = append(members, w)
					if w == v {
						break
					}
				}
				slices.Sort(members)
				ids := make([]string, len(members))
				for i, m := range members {
					ids[i] = g.nodes[m].ID
				}
				comps = append(comps, ids)
			}
		}
	}
	return comps
}
