package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Render services sharing one Redis instance give each tenant its own
// namespace so [RedisCache] entries never collide.
//
// Example usage:
//
//	// Per-tenant keys
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:acme:")
//
//	// Shared keys
//	globalKeyer := NewDefaultKeyer()
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}
