// Package config loads, normalizes, and validates streamsift configuration.
//
// Configuration lives in a TOML file resolved from an explicit path, then
// ~/.config/streamsift/config.toml, then ./streamsift.toml. Defaults cover
// everything except the TMDB API key, which may also come from the
// TMDB_API_KEY environment variable.
package config
