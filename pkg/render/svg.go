package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"sccmap/pkg/digraph"
	"sccmap/pkg/layout"
)

const (
	nodeRadius = 12.0
	fontSize   = 11.0
	edgeColor  = "#666666"
	strokeGray = "#333333"
	textColor  = "#1a1a1a"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	colors func(component string) string
	labels bool
}

// WithColors sets the component color lookup, see [Colors]. Without it
// every node is drawn in a neutral gray.
func WithColors(colors func(component string) string) SVGOption {
	return func(r *svgRenderer) { r.colors = colors }
}

// WithoutLabels suppresses node labels. Useful for dense graphs where text
// would overlap.
func WithoutLabels() SVGOption {
	return func(r *svgRenderer) { r.labels = false }
}

// RenderSVG draws the graph at the positions in l and returns a
// self-contained SVG document. Nodes missing from l.Positions are drawn at
// the canvas center. Output is deterministic: nodes and edges are emitted
// in graph insertion order.
func RenderSVG(g *digraph.Graph, l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	w, h := float64(l.Width), float64(l.Height)
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	margin := nodeRadius*2 + 8

	at := func(id string) (float64, float64) {
		p, ok := l.Positions[id]
		if !ok {
			p = layout.Point{X: 0.5, Y: 0.5}
		}
		return margin + p.X*(w-2*margin), margin + p.Y*(h-2*margin)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	renderDefs(&buf)

	for _, e := range g.Edges() {
		renderEdge(&buf, at, e)
	}
	for _, n := range g.Nodes() {
		r.renderNode(&buf, at, n)
	}
	if r.labels {
		for _, n := range g.Nodes() {
			renderLabel(&buf, at, n)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto"><path d="M 0 1 L 9 5 L 0 9 z" fill="%s"/></marker>`+"\n", edgeColor)
	buf.WriteString("  </defs>\n")
}

func renderEdge(buf *bytes.Buffer, at func(string) (float64, float64), e digraph.Edge) {
	x1, y1 := at(e.Tail)
	x2, y2 := at(e.Head)

	if e.Tail == e.Head {
		// Self-loop: a small circle tangent to the node's upper right.
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="1.2"/>`+"\n",
			x1+nodeRadius*0.9, y1-nodeRadius*0.9, nodeRadius*0.55, edgeColor)
		return
	}

	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	// Trim both ends to the node boundary so the arrowhead touches the
	// target circle instead of its center.
	ux, uy := dx/dist, dy/dist
	sx, sy := x1+ux*nodeRadius, y1+uy*nodeRadius
	tx, ty := x2-ux*(nodeRadius+2), y2-uy*(nodeRadius+2)

	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.2" marker-end="url(#arrow)"/>`+"\n",
		sx, sy, tx, ty, edgeColor)
}

func (r *svgRenderer) renderNode(buf *bytes.Buffer, at func(string) (float64, float64), n digraph.Node) {
	x, y := at(n.ID)

	fill := neutralColor
	if r.colors != nil {
		fill = r.colors(n.Component)
	}

	title := displayLabel(n)
	if n.Component != "" {
		title += " [" + n.Component + "]"
	}

	buf.WriteString("  <g>\n")
	fmt.Fprintf(buf, "    <title>%s</title>\n", xmlEscape(title))
	fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		x, y, nodeRadius, fill, strokeGray)
	buf.WriteString("  </g>\n")
}

func renderLabel(buf *bytes.Buffer, at func(string) (float64, float64), n digraph.Node) {
	x, y := at(n.ID)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" fill="%s">%s</text>`+"\n",
		x, y+nodeRadius+fontSize, fontSize, textColor, xmlEscape(displayLabel(n)))
}

// displayLabel falls back to the node ID when the label is empty, matching
// how auto-created nodes are shown everywhere else.
func displayLabel(n digraph.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
