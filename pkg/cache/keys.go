package cache

import "fmt"

// Keyer generates cache keys for pipeline stages. Implementations must be
// deterministic: the same inputs always map to the same key, across
// processes and across the CLI/API boundary.
type Keyer interface {
	// HTTPKey generates a key for a cached HTTP response.
	HTTPKey(namespace, key string) string

	// ClusterKey generates a key for a clustering result, derived from
	// the correlation matrix content hash and the clustering options.
	ClusterKey(matrixHash string, opts ClusterKeyOpts) string

	// LayoutKey generates a key for computed node positions, derived
	// from the thresholded graph content hash and the layout options.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, derived from
	// the combined input hash and the render options.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// ClusterKeyOpts are the options that change a clustering result.
type ClusterKeyOpts struct {
	Clusters int `json:"clusters"`
}

// LayoutKeyOpts are the options that change computed positions.
type LayoutKeyOpts struct {
	Algorithm   string  `json:"algorithm"`
	Orientation string  `json:"orientation"`
	Seed        uint64  `json:"seed"`
	Iterations  int     `json:"iterations"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Kind          string            `json:"kind"` // heatmap, heatmap_clustered, summary, network
	Format        string            `json:"format"`
	ColorBy       string            `json:"color_by"`
	Labels        string            `json:"labels"`
	ColorScheme   string            `json:"color_scheme"`
	ColorbarLabel string            `json:"colorbar_label"`
	LabelInterval int               `json:"label_interval"`
	HideLabels    bool              `json:"hide_labels"`
	CustomColors  map[string]string `json:"custom_colors,omitempty"`
}

// DefaultKeyer is the standard key scheme. Stage keys hash their inputs
// with SHA-256 under a stage prefix; HTTP keys stay readable because the
// HTTP cache hashes paths itself.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// ClusterKey generates a key for a clustering result.
func (k *DefaultKeyer) ClusterKey(matrixHash string, opts ClusterKeyOpts) string {
	return hashKey("cluster", matrixHash, opts)
}

// LayoutKey generates a key for computed positions.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
