// Package tmdb provides the minimal TMDB API client used for availability
// resolution.
//
// It exposes external-id lookups (IMDb id to TMDB id) and per-region watch
// provider queries, extracting the subscription tier of providers. Responses
// are strongly typed so the resolver can apply its own precedence rules.
// Options allow tests to supply custom HTTP clients without modifying
// production code.
package tmdb
