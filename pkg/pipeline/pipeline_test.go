package pipeline

import (
	"testing"

	"sccmap/pkg/naming"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"gexf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "gexf"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateNaming(t *testing.T) {
	tests := []struct {
		method  string
		wantErr bool
	}{
		{"string", false},
		{"initials", false},
		{"cardinal", false},
		{"ordinal", false},
		{"str", false}, // alias
		{"ORD", false}, // case-insensitive
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateNaming(tt.method)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateNaming(%q) error = %v, wantErr %v", tt.method, err, tt.wantErr)
		}
	}
}

func TestValidateLayout(t *testing.T) {
	tests := []struct {
		method  string
		wantErr bool
	}{
		{"auto", false},
		{"dot", false},
		{"eades", false},
		{"isomap", false},
		{"invalid", true},
		{"DOT", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateLayout(tt.method)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLayout(%q) error = %v, wantErr %v", tt.method, err, tt.wantErr)
		}
	}
}

func TestNeedsPositions(t *testing.T) {
	tests := []struct {
		format string
		want   bool
	}{
		{"svg", true},
		{"png", true},
		{"pdf", true},
		{"json", false},
		{"gexf", false},
	}

	for _, tt := range tests {
		if got := NeedsPositions(tt.format); got != tt.want {
			t.Errorf("NeedsPositions(%q) = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestOptionsNeedsLayout(t *testing.T) {
	opts := Options{Formats: []string{"json", "gexf"}}
	if opts.NeedsLayout() {
		t.Error("json+gexf should not need a layout")
	}

	opts.Formats = append(opts.Formats, "svg")
	if !opts.NeedsLayout() {
		t.Error("svg should need a layout")
	}
}

func TestOptionsValidateForIngest(t *testing.T) {
	// Missing all inputs
	opts := Options{}
	if err := opts.ValidateForIngest(); err == nil {
		t.Error("Missing inputs should fail")
	}

	// Manifest combined with nodes
	opts = Options{Manifest: "graph.toml", Nodes: "nodes.csv"}
	if err := opts.ValidateForIngest(); err == nil {
		t.Error("Manifest combined with nodes should fail")
	}

	// Links alone is valid: all nodes auto-created
	opts = Options{Links: "links.csv"}
	if err := opts.ValidateForIngest(); err != nil {
		t.Errorf("Links-only options should pass: %v", err)
	}

	// Manifest alone is valid
	opts = Options{Manifest: "graph.toml"}
	if err := opts.ValidateForIngest(); err != nil {
		t.Errorf("Manifest-only options should pass: %v", err)
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Layout != DefaultLayout {
		t.Errorf("Layout should be %s, got %s", DefaultLayout, opts.Layout)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %d, got %d", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %d, got %d", DefaultHeight, opts.Height)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatGEXF {
		t.Errorf("Formats should be [gexf], got %v", opts.Formats)
	}
}

func TestSetDecomposeDefaults(t *testing.T) {
	opts := Options{}
	opts.SetDecomposeDefaults()

	if opts.Naming != DefaultNaming {
		t.Errorf("Naming should be %s, got %s", DefaultNaming, opts.Naming)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Nodes: "nodes.csv"}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalNaming := opts.Naming
	originalLayout := opts.Layout
	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Naming != originalNaming {
		t.Error("Naming changed on second call")
	}
	if opts.Layout != originalLayout {
		t.Error("Layout changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestOptionsNamingMethod(t *testing.T) {
	opts := Options{}
	m, err := opts.NamingMethod()
	if err != nil {
		t.Fatalf("Default naming method failed: %v", err)
	}
	if m != naming.MethodString {
		t.Errorf("Default method should be %s, got %s", naming.MethodString, m)
	}

	opts.Naming = "ord"
	m, err = opts.NamingMethod()
	if err != nil {
		t.Fatalf("Alias naming method failed: %v", err)
	}
	if m != naming.MethodOrdinal {
		t.Errorf("ord should resolve to %s, got %s", naming.MethodOrdinal, m)
	}

	opts.Naming = "nope"
	if _, err := opts.NamingMethod(); err == nil {
		t.Error("Unknown naming method should fail")
	}
}

func TestOptionsLayoutKeyOpts(t *testing.T) {
	opts := Options{Layout: "eades", Width: 640, Height: 480, Seed: 7}
	ko := opts.LayoutKeyOpts()

	if ko.Method != "eades" || ko.Width != 640 || ko.Height != 480 || ko.Seed != 7 {
		t.Errorf("LayoutKeyOpts mismatch: %+v", ko)
	}
}

func TestOptionsArtifactKeyOpts(t *testing.T) {
	opts := Options{}
	ko := opts.ArtifactKeyOpts("svg", "abc123")

	if ko.Format != "svg" || ko.LayoutHash != "abc123" {
		t.Errorf("ArtifactKeyOpts mismatch: %+v", ko)
	}
}
