package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one backend without reading each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// FontKey generates a prefixed key for font bytes.
func (k *ScopedKeyer) FontKey(source string) string {
	return k.prefix + k.inner.FontKey(source)
}
