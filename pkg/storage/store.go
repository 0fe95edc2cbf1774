package storage

import (
	"context"
	"errors"
	"time"
)

// Store is a key-value store for opaque payloads.
// Implementations are safe for concurrent use.
type Store interface {
	// Get returns the payload stored under key. ok is false when the key is
	// absent; that is not an error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set replaces the payload stored under key.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting an absent key succeeds.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Sentinel errors for storage operations.
var (
	// ErrUnavailable is returned when a backend cannot be reached.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrClosed is returned when a store is used after Close.
	ErrClosed = errors.New("storage closed")
)

// RetryableError marks a backend failure that may clear up on its own, such
// as a dropped connection.
type RetryableError struct{ Err error }

// Retryable marks err as worth retrying. It returns nil for nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Backoff is a retry schedule: Attempts tries, waiting Initial after the
// first failure and doubling up to Max.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// DefaultBackoff is used by RetryWithBackoff.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 200 * time.Millisecond, Max: 2 * time.Second}

// Retry calls fn until it succeeds, fails with an error not marked Retryable,
// or the attempts run out. The last error is returned. Waiting stops early
// with ctx.Err() when ctx ends.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	return b.RetryIf(ctx, IsRetryable, fn)
}

// RetryIf is Retry with a caller-supplied test for retryable errors. A zero
// Max leaves the delay uncapped.
func (b Backoff) RetryIf(ctx context.Context, retryable func(error) bool, fn func() error) error {
	delay := b.Initial
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !retryable(err) || attempt >= b.Attempts {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		if delay = 2 * delay; b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
}

// RetryWithBackoff retries fn on DefaultBackoff.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Retry(ctx, fn)
}
