package storage

import "context"

// Scoped wraps a Store with a key prefix so several profiles can share one
// backend.
//
// Example usage:
//
//	work := NewScoped(store, "profile:work:")
//	home := NewScoped(store, "profile:home:")
type Scoped struct {
	inner  Store
	prefix string
}

// NewScoped creates a store whose keys are prefixed with prefix.
// A nil inner store is replaced with an empty Memory store.
func NewScoped(inner Store, prefix string) *Scoped {
	if inner == nil {
		inner = NewMemory()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key string, data []byte) error {
	return s.inner.Set(ctx, s.prefix+key, data)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *Scoped) Close() error {
	return s.inner.Close()
}

// Prefix returns the key prefix.
func (s *Scoped) Prefix() string { return s.prefix }

var _ Store = (*Scoped)(nil)
