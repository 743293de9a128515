package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// A shared Redis behind the HTTP API needs separate namespaces per
// deployment or per user so one tenant's runs never surface for another.
//
// Example usage:
//
//	// Per-user keys on a shared backend
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Unscoped keys for a single-tenant CLI cache
//	keyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// ClusterKey generates a prefixed key for clustering results.
func (k *ScopedKeyer) ClusterKey(matrixHash string, opts ClusterKeyOpts) string {
	return k.prefix + k.inner.ClusterKey(matrixHash, opts)
}

// LayoutKey generates a prefixed key for computed positions.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
