// Package httputil provides the small HTTP helpers shared by the pixelgrid
// API server and its clients.
//
// # Responses
//
// [WriteJSON] and [WriteError] produce the JSON bodies of the API. Errors
// carrying a pixelgrid error code are mapped to a status with [StatusFor]:
//
//   - INVALID_*: 400 Bad Request
//   - NOT_FOUND: 404 Not Found
//   - STORAGE_UNAVAILABLE: 503 Service Unavailable
//   - TIMEOUT: 504 Gateway Timeout
//   - anything else: 500 Internal Server Error
//
// # Requests
//
// [DecodeJSON] reads a bounded request body into a value and reports malformed
// input as INVALID_FORMAT.
//
// # Retry
//
// [Retry] re-runs a client call with exponential backoff. Only failures
// wrapped in [RetryableError] (network errors, 5xx responses) are retried:
//
//	err := httputil.Retry(ctx, 3, 250*time.Millisecond, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
package httputil
