// Package settings defines GridSettings, the one record that is persisted and
// sent between the settings panel and the page.
//
// # Value Semantics
//
// GridSettings is a plain value. Every change produces a new record through
// the With* methods or [GridSettings.Apply]; nothing mutates a record in place.
// The record is the unit of persistence and of transmission.
//
// # Defaults and Merging
//
// Incoming payloads may be partial. [Decode] and [Merge] lay whatever fields
// are present over [Default], so a payload carrying only {"visible": true}
// yields a complete record.
//
// # Validation
//
// [Validate] checks the length fields with the unit validator (registered as
// the "cssunit" tag for go-playground/validator) and bounds alpha to 0–100.
// The grid engine never needs validated input; validation guards what is
// committed to storage.
//
// # Persistence
//
// [Repository] stores the record as JSON under [StorageKey] in any
// [storage.Store].
//
// [storage.Store]: github.com/matzehuels/pixelgrid/pkg/storage.Store
package settings
