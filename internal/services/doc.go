// Package services defines the shared error taxonomy for streamsift
// operations.
//
// Sentinel errors classify failures so callers can decide whether to degrade
// (lookup failures yield empty availability), abort (store failures leave the
// cache in an unknown state), or surface the problem to the user (missing
// watchlists, bad input). Wrap tags an error with one of the sentinels while
// prefixing component and operation context.
package services
