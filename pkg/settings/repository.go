package settings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/observability"
	"github.com/matzehuels/pixelgrid/pkg/storage"
)

// Repository persists GridSettings as JSON in a storage.Store.
type Repository struct {
	store  storage.Store
	key    string
	logger *log.Logger
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithKey overrides the storage key (default StorageKey).
func WithKey(key string) RepositoryOption {
	return func(r *Repository) { r.key = key }
}

// WithLogger sets the logger used for recoverable problems such as corrupt
// stored payloads.
func WithLogger(l *log.Logger) RepositoryOption {
	return func(r *Repository) { r.logger = l }
}

// NewRepository creates a repository over store.
func NewRepository(store storage.Store, opts ...RepositoryOption) *Repository {
	r := &Repository{store: store, key: StorageKey, logger: log.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the storage key.
func (r *Repository) Key() string { return r.key }

// Load returns the stored settings merged onto the defaults. A missing or
// unreadable payload yields the defaults; only store failures are errors.
func (r *Repository) Load(ctx context.Context) (GridSettings, error) {
	start := time.Now()

	var (
		data  []byte
		found bool
	)
	err := storage.RetryWithBackoff(ctx, func() error {
		var err error
		data, found, err = r.store.Get(ctx, r.key)
		return err
	})
	observability.Storage().OnLoad(ctx, r.key, found, time.Since(start), err)
	if err != nil {
		return Default(), pgerrors.Wrap(pgerrors.ErrCodeStorageUnavailable, err, "load settings")
	}
	if !found {
		return Default(), nil
	}

	s, err := Decode(FormatJSON, data)
	if err != nil {
		r.logger.Warn("stored settings unreadable, using defaults", "key", r.key, "err", err)
		return Default(), nil
	}
	return s, nil
}

// Save validates s and replaces the stored record.
func (r *Repository) Save(ctx context.Context, s GridSettings) error {
	if err := Validate(s); err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return pgerrors.Wrap(pgerrors.ErrCodeInternal, err, "encode settings")
	}

	start := time.Now()
	err = storage.RetryWithBackoff(ctx, func() error {
		return r.store.Set(ctx, r.key, data)
	})
	observability.Storage().OnSave(ctx, r.key, len(data), time.Since(start), err)
	if err != nil {
		return pgerrors.Wrap(pgerrors.ErrCodeStorageUnavailable, err, "save settings")
	}
	r.logger.Debug("settings saved", "key", r.key, "bytes", len(data))
	return nil
}

// Update loads the current settings, applies fn and saves the result.
func (r *Repository) Update(ctx context.Context, fn func(GridSettings) GridSettings) (GridSettings, error) {
	cur, err := r.Load(ctx)
	if err != nil {
		return cur, err
	}
	next := fn(cur)
	if err := r.Save(ctx, next); err != nil {
		return cur, err
	}
	return next, nil
}

// Reset stores the reset record (defaults, visible) and returns it.
func (r *Repository) Reset(ctx context.Context) (GridSettings, error) {
	s := Reset()
	if err := r.Save(ctx, s); err != nil {
		return Default(), err
	}
	return s, nil
}
