package resolver

import (
	"context"
	"fmt"

	"streamsift/internal/logging"
	"streamsift/internal/services"
)

// ReconcileDelete removes a watchlist and the cache records that belonged
// only to it. Identifiers appearing on any other stored watchlist survive.
func (s *Service) ReconcileDelete(ctx context.Context, name string) error {
	if !s.lib.Exists(name) {
		return services.Wrap(services.ErrNotFound, "service", "delete", fmt.Sprintf("watchlist %s", name), nil)
	}

	targetIDs := s.identifiersOf(name)

	others, err := s.lib.List()
	if err != nil {
		return err
	}
	elsewhere := make(map[string]struct{})
	for _, other := range others {
		if other == name {
			continue
		}
		for _, id := range s.identifiersOf(other) {
			elsewhere[id] = struct{}{}
		}
	}

	if err := s.lib.Remove(name); err != nil {
		return err
	}

	removed := 0
	for _, id := range targetIDs {
		if _, ok := elsewhere[id]; ok {
			continue
		}
		if err := s.store.Delete(ctx, id); err != nil {
			return err
		}
		removed++
	}
	s.logger.Info("removed watchlist", logging.Args(
		logging.String(logging.FieldWatchlist, name),
		logging.Int("removed_cache_records", removed),
		logging.Int("shared_cache_records", len(targetIDs)-removed),
	)...)
	return nil
}

// PurgeAll deletes every stored watchlist, every metadata sidecar, and the
// entire provider cache.
func (s *Service) PurgeAll(ctx context.Context) error {
	if err := s.lib.PurgeAll(); err != nil {
		return err
	}
	if err := s.store.DeleteAll(ctx); err != nil {
		return err
	}
	s.logger.Info("purged all watchlists and cache records")
	return nil
}
