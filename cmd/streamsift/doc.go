// Command streamsift manages uploaded IMDb watchlist exports and reports
// regional streaming availability for the titles on them.
package main
