package cache

// ScopedKeyer wraps a Keyer with a prefix so callers sharing one backend
// stay in separate namespaces. The HTTP server scopes its keys away from
// CLI runs pointed at the same cache directory or Redis database.
//
// Example usage:
//
//	// Server-side keys, isolated from local CLI runs.
//	apiKeyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to every generated key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for a projected graph.
func (k *ScopedKeyer) GraphKey(specHash string) string {
	return k.prefix + k.inner.GraphKey(specHash)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dotHash, opts)
}
