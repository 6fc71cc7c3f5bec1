// Package render draws a positioned graph as SVG and converts the result
// to PNG or PDF.
//
// # Overview
//
// Rendering separates position computation from drawing: [RenderSVG] takes
// a graph plus a [layout.Layout] and emits a self-contained SVG document.
// Nodes are circles colored by component, edges are arrows, and each node
// carries a hover title with its label and component.
//
// Component colors come from a fixed ten-color palette cycled by component
// index, so color assignment is deterministic for a fixed component order:
//
//	colors := render.Colors(registry.Names())
//	svg := render.RenderSVG(g, l, render.WithColors(colors))
//
// # Raster and print output
//
// The [ToPDF] and [ToPNG] functions convert SVG bytes to other formats
// using the external rsvg-convert tool (from librsvg):
//
//	svg := render.RenderSVG(g, l)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [layout.Layout]: sccmap/pkg/layout.Layout
package render
