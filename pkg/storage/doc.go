// Package storage provides the key-value stores that persist grid settings.
//
// # Backends
//
//   - [Memory]: in-process map, the page-local fallback and the test double
//   - [FileStore]: JSON files under a directory, the default for the CLI
//   - [RedisStore]: shared storage for several panels and pages
//   - [MongoStore]: document storage, one document per key
//
// [Fallback] chains a primary store with a fallback, serving reads and writes
// from the fallback while the primary is unavailable. [Scoped] prefixes keys
// so several profiles can share a backend.
//
// # Errors
//
// Network failures from remote backends are wrapped with [Retryable] and can
// be retried with [RetryWithBackoff]. A missing key is not an error: Get
// reports it through its boolean result.
package storage
