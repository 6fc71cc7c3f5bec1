package cache

// Keyer generates cache keys for pipeline stages. Implementations must be
// deterministic: the same inputs always produce the same key.
type Keyer interface {
	// GraphKey generates a key for the ingested graph.
	GraphKey(opts GraphKeyOpts) string

	// LayoutKey generates a key for computed node positions.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for rendered output bytes.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts captures everything that changes the ingested graph.
// The hashes are content hashes of the input files; an empty string means
// the input was not given.
type GraphKeyOpts struct {
	NodesHash    string `json:"nodes_hash"`
	LinksHash    string `json:"links_hash"`
	ManifestHash string `json:"manifest_hash"`
	AppendID     bool   `json:"append_id"`
}

// LayoutKeyOpts captures everything that changes computed positions for a
// fixed graph.
type LayoutKeyOpts struct {
	Method string `json:"method"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   int64  `json:"seed"`
}

// ArtifactKeyOpts captures everything that changes rendered bytes for a
// fixed tagged graph. LayoutHash is empty for formats that need no
// positions.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	LayoutHash string `json:"layout_hash"`
}

// DefaultKeyer is the standard key generator. Keys have the form
// prefix:sha256(inputs), so backends see flat opaque strings.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for the ingested graph.
func (k *DefaultKeyer) GraphKey(opts GraphKeyOpts) string {
	return hashKey("graph", opts)
}

// LayoutKey generates a key for computed node positions.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for rendered output bytes.
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
