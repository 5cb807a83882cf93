// Package resolver is the availability engine: it decides, per title and
// region, whether cached provider data is fresh enough to reuse or must be
// re-fetched from the catalog, applies the per-watchlist refresh policy, and
// reconciles cache records when watchlists are overwritten or deleted.
//
// The resolution date is always an explicit parameter so the engine never
// reads the ambient clock; a region refreshed today is authoritative and is
// never re-fetched the same day. Lookup failures degrade to null ids and
// empty provider lists, store failures abort the enclosing operation.
package resolver
