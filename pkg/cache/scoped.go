package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants or environments
// can share one backend without seeing each other's entries.
//
// Example usage:
//
//	// Plans computed by the staging API
//	staging := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// PlanKey generates a prefixed key for plan caching.
func (k *ScopedKeyer) PlanKey(docHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(docHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planHash, opts)
}

// PlanIDKey generates a prefixed key for plan lookup by id.
func (k *ScopedKeyer) PlanIDKey(id string) string {
	return k.prefix + k.inner.PlanIDKey(id)
}
