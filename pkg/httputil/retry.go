package httputil

import (
	"context"
	"errors"
	"net/http"
	"time"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/storage"
)

// RetryableError marks a client failure that is worth another attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry calls fn at most attempts times. It waits delay after the first
// retryable failure and doubles the wait each time. Errors that are not
// retryable end the loop at once; so does ctx, with ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	b := storage.Backoff{Attempts: attempts, Initial: delay}
	return b.RetryIf(ctx, IsRetryable, fn)
}

// IsRetryable reports whether err is a RetryableError or carries a transient
// pixelgrid code.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError)) || pgerrors.IsTransient(err)
}

// RetryableStatus reports whether a response status should be retried.
func RetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
