package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse marks malformed watchlist content. Individual bad rows are
	// skipped by the parser; ErrParse covers input that cannot be read at all.
	ErrParse = errors.New("parse error")
	// ErrLookup marks an external catalog call that returned nothing usable.
	// Resolution degrades to a null id or empty provider list instead of
	// returning this upward.
	ErrLookup = errors.New("lookup failure")
	// ErrStore marks a cache persistence failure. These are fatal to the
	// enclosing operation because cache consistency cannot be guaranteed
	// past this point.
	ErrStore = errors.New("store error")
	// ErrNotFound marks a missing watchlist or content file.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks rejected user input.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrStore
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
