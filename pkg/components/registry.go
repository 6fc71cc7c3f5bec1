// Package components assembles the component registry: the mapping from
// component display name to member node IDs, plus the component tags written
// back onto the graph for downstream serializers and renderers.
package components

import (
	"slices"

	"sccmap/pkg/digraph"
	"sccmap/pkg/naming"
)

// Component pairs a display name with its ordered member node IDs.
type Component struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Registry is the component table for one graph. Entries follow emission
// order when freshly computed and first-sighting order (over node insertion
// order) when re-materialized from existing tags; the name to members
// mapping is identical either way. Distinct components that end up with the
// same display name (possible under initials naming) merge into a single
// entry, mirroring how identical tags are indistinguishable on the graph.
type Registry struct {
	comps  []Component
	byName map[string]int
}

// Build assembles the registry for g. If the graph already carries a
// complete set of component tags, the registry is re-materialized from them
// without touching the graph (memoized path). Otherwise the graph is
// decomposed, every component is named under the given method, and the tags
// are written back in one all-or-nothing update.
//
// The only failure mode is an unrecognized naming method.
func Build(g *digraph.Graph, method naming.Method) (*Registry, error) {
	if tags, ok := g.ExistingComponentTags(); ok {
		return FromTags(g, tags), nil
	}
	return compute(g, method)
}

// FromTags re-materializes a registry from a node ID to component name
// mapping, grouping nodes by tag in first-sighting order over the graph's
// node order. The graph is not modified.
func FromTags(g *digraph.Graph, tags map[string]string) *Registry {
	r := &Registry{byName: make(map[string]int)}
	for _, n := range g.Nodes() {
		r.append(tags[n.ID], n.ID)
	}
	return r
}

func compute(g *digraph.Graph, method naming.Method) (*Registry, error) {
	comps := g.Components()
	r := &Registry{byName: make(map[string]int, len(comps))}
	tags := make(map[string]string, g.NodeCount())

	for i, members := range comps {
		labels := make([]string, len(members))
		for k, id := range members {
			n, _ := g.Node(id)
			labels[k] = n.Label
			if labels[k] == "" {
				labels[k] = n.ID
			}
		}
		name, err := naming.Name(method, i, labels)
		if err != nil {
			return nil, err
		}
		for _, id := range members {
			r.append(name, id)
			tags[id] = name
		}
	}

	g.SetComponentTags(tags)
	return r, nil
}

// append adds one member to the named entry, creating the entry on first
// sighting.
func (r *Registry) append(name, id string) {
	i, ok := r.byName[name]
	if !ok {
		i = len(r.comps)
		r.byName[name] = i
		r.comps = append(r.comps, Component{Name: name})
	}
	r.comps[i].Members = append(r.comps[i].Members, id)
}

// Components returns a copy of the registry entries in registry order.
func (r *Registry) Components() []Component {
	out := make([]Component, len(r.comps))
	for i, c := range r.comps {
		out[i] = Component{Name: c.Name, Members: slices.Clone(c.Members)}
	}
	return out
}

// Len returns the number of registry entries.
func (r *Registry) Len() int { return len(r.comps) }

// Members returns the member IDs of the named component and true, or nil
// and false if the name is not in the registry.
func (r *Registry) Members(name string) ([]string, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(r.comps[i].Members), true
}

// Names returns the component names in registry order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.comps))
	for i, c := range r.comps {
		out[i] = c.Name
	}
	return out
}

// Tags returns the node ID to component name mapping covering every member.
func (r *Registry) Tags() map[string]string {
	tags := make(map[string]string)
	for _, c := range r.comps {
		for _, id := range c.Members {
			tags[id] = c.Name
		}
	}
	return tags
}
