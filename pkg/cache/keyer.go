package cache

// Keyer generates cache keys for the visualization pipeline.
// Implementations must be deterministic so cached projections and rendered
// artifacts can be shared across runs and across processes.
type Keyer interface {
	// GraphKey generates a key for a projected graph from the hash of the
	// canonical automaton encoding.
	GraphKey(specHash string) string

	// ArtifactKey generates a key for a rendered artifact from the hash of
	// the DOT source it was rendered from.
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts captures the rendering options that change output bytes.
// The DOT hash already covers the diagram itself, so only the target format
// participates here.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// GraphKey generates a key for a projected graph.
func (k *DefaultKeyer) GraphKey(specHash string) string {
	return "graph:" + specHash
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dotHash, opts)
}
