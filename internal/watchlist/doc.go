// Package watchlist parses IMDb-style watchlist CSV exports into structured
// title entries.
//
// Rows without an identifier are silently dropped; numeric fields that fail
// to parse become nil rather than aborting the row. Source row order is
// preserved so lists render in the order the export was written.
package watchlist
