package storage

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
)

// Fallback serves from a primary store and falls back to a secondary one
// whenever the primary fails. A miss on the primary is a miss; only errors
// trigger the fallback.
type Fallback struct {
	primary  Store
	fallback Store
	logger   *log.Logger
}

// NewFallback chains primary and fallback. A nil logger uses log.Default().
func NewFallback(primary, fallback Store, logger *log.Logger) *Fallback {
	if logger == nil {
		logger = log.Default()
	}
	return &Fallback{primary: primary, fallback: fallback, logger: logger}
}

// Get reads from the primary, or from the fallback when the primary fails.
func (f *Fallback) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := f.primary.Get(ctx, key)
	if err == nil {
		return data, ok, nil
	}
	if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}
	f.logger.Warn("primary store unavailable, reading fallback", "key", key, "err", err)
	return f.fallback.Get(ctx, key)
}

// Set writes to the primary, or to the fallback when the primary fails.
func (f *Fallback) Set(ctx context.Context, key string, data []byte) error {
	err := f.primary.Set(ctx, key, data)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	f.logger.Warn("primary store unavailable, writing fallback", "key", key, "err", err)
	return f.fallback.Set(ctx, key, data)
}

// Delete removes key from both stores.
func (f *Fallback) Delete(ctx context.Context, key string) error {
	return errors.Join(f.primary.Delete(ctx, key), f.fallback.Delete(ctx, key))
}

// Close closes both stores.
func (f *Fallback) Close() error {
	return errors.Join(f.primary.Close(), f.fallback.Close())
}

var _ Store = (*Fallback)(nil)
