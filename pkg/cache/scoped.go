package cache

import "github.com/matzehuels/flexgrid/pkg/grid"

// ScopedKeyer wraps a Keyer with a prefix so several deployments or tenants
// can share one backend without seeing each other's entries.
//
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

// GridKey generates a prefixed grid key.
func (k *ScopedKeyer) GridKey(itemCount int, spec grid.Spec, opts GridKeyOpts) string {
	return k.prefix + k.inner.GridKey(itemCount, spec, opts)
}

// ScreenKey generates a prefixed screen key.
func (k *ScopedKeyer) ScreenKey(definitionHash string, opts ScreenKeyOpts) string {
	return k.prefix + k.inner.ScreenKey(definitionHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeHash, opts)
}
