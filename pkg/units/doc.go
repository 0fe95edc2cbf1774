// Package units parses and validates CSS length strings.
//
// # Overview
//
// Grid settings carry lengths as CSS strings ("8px", "1.5em", "100%"). The grid
// engine needs their numeric magnitude, and the settings panel needs to know
// whether an input may be committed. Both questions are answered here without
// errors: parsing returns 0 for anything it does not understand, and validation
// is a plain boolean.
//
// # Units
//
// Nine units are recognized: px, em, ex, %, in, cm, mm, pt and pc. The unit is
// discarded by [ParseValue]; callers that mix units must normalize themselves.
//
// # Zero Sentinel
//
// [ParseValue] returns 0 for bare numbers ("16"), unit-only strings ("px") and
// garbage. Zero means "no usable geometry", not "parse failure". Consumers such
// as the geometry package guard divisions against it.
package units
