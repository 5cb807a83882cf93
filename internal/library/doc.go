// Package library manages the on-disk watchlist collection.
//
// Uploaded watchlists are stored as CSV files in a single directory with a
// JSON metadata sidecar per watchlist recording which regions were last
// refreshed and when. The package also provides a file lock so concurrent
// streamsift invocations serialize their read-modify-write cycles against the
// library and cache.
package library
