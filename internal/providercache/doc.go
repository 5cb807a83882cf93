// Package providercache persists per-title streaming availability in SQLite.
//
// Each record is keyed by the title's external identifier and carries the
// resolved TMDB id (null until a lookup succeeds) plus a region-to-entry map
// of provider names with their last-updated date. Two encodings are accepted
// on read: a legacy bare list of names (undated, always considered stale) and
// the structured dated form. Writes always emit the dated form, so the legacy
// shape migrates away one record at a time.
//
// Treat this package as the single source of truth for cache semantics; when
// the record shape changes, update schema.sql and bump schemaVersion.
package providercache
