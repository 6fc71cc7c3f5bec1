// Package pipeline provides the core decomposition pipeline for sccmap.
//
// This package implements the complete ingest → decompose → layout → render
// flow shared by the CLI and the HTTP server. Centralizing it here keeps
// validation, caching, and tag archival identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Ingest: build a graph from CSV node/link files or a TOML manifest
//  2. Decompose: partition into strongly connected components and tag nodes
//  3. Layout: compute node positions when a requested format needs them
//  4. Render: generate output in various formats (SVG, PNG, PDF, JSON, GEXF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	opts := pipeline.Options{
//	    Nodes:   "nodes.csv",
//	    Links:   "links.csv",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Ingest only
//	g, err := runner.Ingest(ctx, opts)
//
//	// Decompose an existing graph
//	reg, err := runner.Decompose(ctx, g, opts)
//
//	// Layout an already-tagged graph
//	l, err := runner.Layout(ctx, g, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"sccmap/pkg/apperr"
	"sccmap/pkg/cache"
	"sccmap/pkg/components"
	"sccmap/pkg/digraph"
	"sccmap/pkg/layout"
	"sccmap/pkg/naming"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600

	// DefaultSeed is the default random seed for stochastic layouts.
	DefaultSeed = int64(42)
)

// DefaultNaming is the default component naming method.
const DefaultNaming = string(naming.MethodString)

// DefaultLayout is the default layout method.
const DefaultLayout = layout.MethodAuto

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatGEXF = "gexf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatGEXF: true,
}

// ValidLayouts is the set of supported layout methods.
var ValidLayouts = map[string]bool{
	layout.MethodAuto:   true,
	layout.MethodDot:    true,
	layout.MethodEades:  true,
	layout.MethodIsomap: true,
}

// positional records which formats are drawn from node positions. JSON and
// GEXF serialize the graph itself and never trigger the layout stage.
var positional = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// NeedsPositions reports whether rendering the format requires a layout.
func NeedsPositions(format string) bool {
	return positional[format]
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the decomposition pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Ingest options
	Nodes    string `json:"nodes,omitempty"`
	Links    string `json:"links,omitempty"`
	Manifest string `json:"manifest,omitempty"`
	AppendID bool   `json:"append_id,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`

	// Decompose options
	Naming string `json:"naming,omitempty"`

	// Layout options
	Layout string `json:"layout,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Seed   int64  `json:"seed,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the decomposition run that produced the component
	// tags. Archive hits carry the recorded run's id.
	RunID string

	// Graph is the ingested graph with component tags applied.
	Graph *digraph.Graph

	// Registry is the component table for the graph.
	Registry *components.Registry

	// GraphHash is the content hash of the tagged graph.
	GraphHash string

	// Layout holds node positions when a requested format needed them.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache or archive.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount      int
	EdgeCount      int
	ComponentCount int
	IngestTime     time.Duration
	DecomposeTime  time.Duration
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	IngestHit  bool // Whether the graph came from cache
	ArchiveHit bool // Whether component tags came from the archive
	LayoutHit  bool // Whether layout positions came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperr.New(apperr.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, gexf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateNaming checks that a naming method (or one of its aliases) is valid.
func ValidateNaming(method string) error {
	if _, err := naming.ParseMethod(method); err != nil {
		return apperr.New(apperr.ErrCodeInvalidNaming,
			"invalid naming method: %q (must be one of: %s)",
			method, strings.Join(naming.Methods(), ", "))
	}
	return nil
}

// ValidateLayout checks that a layout method is valid.
func ValidateLayout(method string) error {
	if !ValidLayouts[method] {
		return apperr.New(apperr.ErrCodeInvalidLayout,
			"invalid layout method: %q (must be one of: auto, %s)",
			method, strings.Join(layout.Methods(), ", "))
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForIngest(); err != nil {
		return err
	}
	if err := o.ValidateForDecompose(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForIngest checks required fields for graph ingestion.
func (o *Options) ValidateForIngest() error {
	if o.Nodes == "" && o.Links == "" && o.Manifest == "" {
		return apperr.New(apperr.ErrCodeInvalidInput, "nodes, links, or manifest is required")
	}
	if o.Manifest != "" && (o.Nodes != "" || o.Links != "") {
		return apperr.New(apperr.ErrCodeInvalidInput, "manifest cannot be combined with nodes or links")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}

	return nil
}

// SetDecomposeDefaults sets default values for decomposition.
func (o *Options) SetDecomposeDefaults() {
	if o.Naming == "" {
		o.Naming = DefaultNaming
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForDecompose validates and sets defaults for decomposition.
func (o *Options) ValidateForDecompose() error {
	o.SetDecomposeDefaults()
	return ValidateNaming(o.Naming)
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateLayout(o.Layout)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatGEXF}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// NeedsLayout reports whether any requested format requires node positions.
func (o *Options) NeedsLayout() bool {
	for _, f := range o.Formats {
		if NeedsPositions(f) {
			return true
		}
	}
	return false
}

// NamingMethod returns the parsed naming method, applying the default when
// unset.
func (o *Options) NamingMethod() (naming.Method, error) {
	if o.Naming == "" {
		return naming.MethodString, nil
	}
	return naming.ParseMethod(o.Naming)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Method: o.Layout,
		Width:  o.Width,
		Height: o.Height,
		Seed:   o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered artifact.
// layoutHash must be empty for formats that do not draw from positions.
func (o *Options) ArtifactKeyOpts(format, layoutHash string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		LayoutHash: layoutHash,
	}
}
