package pipeline

import (
	"bytes"

	"sccmap/pkg/apperr"
	"sccmap/pkg/components"
	"sccmap/pkg/digraph"
	"sccmap/pkg/gexf"
	graphio "sccmap/pkg/io"
	"sccmap/pkg/layout"
	"sccmap/pkg/render"
)

// gexfCreator is stamped into GEXF document metadata.
const gexfCreator = "sccmap"

// pngScale is the rasterization factor for PNG output, a 2x export of the
// SVG frame.
const pngScale = 2.0

// RenderArtifacts renders every requested format. Formats that draw from
// positions (svg, png, pdf) use the layout; json and gexf serialize the
// tagged graph directly and ignore it.
func RenderArtifacts(g *digraph.Graph, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))

	// The chart is rendered at most once and shared by svg, png, and pdf.
	var chartSVG []byte
	chart := func() []byte {
		if chartSVG == nil {
			chartSVG = render.RenderSVG(g, l, render.WithColors(componentColors(g)))
		}
		return chartSVG
	}

	for _, format := range opts.Formats {
		if _, ok := artifacts[format]; ok {
			continue
		}
		switch format {
		case FormatSVG:
			artifacts[format] = chart()
		case FormatPNG:
			data, err := render.ToPNG(chart(), pngScale)
			if err != nil {
				return nil, apperr.Wrap(apperr.ErrCodeRenderFailed, err, "convert chart to png")
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := render.ToPDF(chart())
			if err != nil {
				return nil, apperr.Wrap(apperr.ErrCodeRenderFailed, err, "convert chart to pdf")
			}
			artifacts[format] = data
		case FormatJSON:
			data, err := graphio.Marshal(g)
			if err != nil {
				return nil, apperr.Wrap(apperr.ErrCodeRenderFailed, err, "serialize graph to json")
			}
			artifacts[format] = data
		case FormatGEXF:
			var buf bytes.Buffer
			if err := gexf.Encode(&buf, g, gexf.Options{Creator: gexfCreator}); err != nil {
				return nil, apperr.Wrap(apperr.ErrCodeRenderFailed, err, "serialize graph to gexf")
			}
			artifacts[format] = buf.Bytes()
		default:
			return nil, apperr.New(apperr.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}

	return artifacts, nil
}

// componentColors derives the chart color assignment from the graph's own
// tags in first-sighting order over node order, so the same tagged graph
// colors the same way no matter which path produced the tags. Untagged
// graphs render in the neutral color.
func componentColors(g *digraph.Graph) func(string) string {
	tags, ok := g.ExistingComponentTags()
	if !ok {
		return render.Colors(nil)
	}
	return render.Colors(components.FromTags(g, tags).Names())
}
