package resolver

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"streamsift/internal/catalog/tmdb"
	"streamsift/internal/library"
	"streamsift/internal/logging"
	"streamsift/internal/providercache"
	"streamsift/internal/services"
	"streamsift/internal/watchlist"
)

// Service ties the watchlist library, provider cache, and resolver together
// into the operations the command surface exposes.
type Service struct {
	lib      *library.Library
	store    *providercache.Store
	resolver *Resolver
	logger   *slog.Logger
}

// NewService wires a Service over the given library, store, and catalog.
func NewService(lib *library.Library, store *providercache.Store, catalog tmdb.Catalog, logger *slog.Logger) *Service {
	return &Service{
		lib:      lib,
		store:    store,
		resolver: NewResolver(store, catalog, logger),
		logger:   logging.NewComponentLogger(logger, "service"),
	}
}

// Library exposes the underlying watchlist library.
func (s *Service) Library() *library.Library {
	return s.lib
}

// Store exposes the underlying provider cache store.
func (s *Service) Store() *providercache.Store {
	return s.store
}

// ProcessRequest describes one processing run. Upload, when non-nil, is new
// watchlist content saved under Name before resolution; a nil Upload
// processes the already-stored watchlist. Name must be normalized. Today is
// the resolution date in ISO form.
type ProcessRequest struct {
	Name    string
	Upload  io.Reader
	Regions []string
	Mode    Mode
	Today   string
}

// TitleResult is one watchlist entry with its resolved availability.
type TitleResult struct {
	watchlist.Entry
	TMDBID    *int64
	Providers map[string][]string
}

// ProcessResult summarizes a processing run.
type ProcessResult struct {
	Watchlist string
	RunID     string
	Regions   []string
	Refreshed []string
	Cached    []string
	Titles    []TitleResult
}

// Process resolves availability for every title in a watchlist. A new upload
// refreshes all requested regions and reconciles cache entries orphaned by
// the overwrite; otherwise the stored content is processed under the refresh
// policy. Per-title lookup failures degrade to empty provider lists and the
// run continues; store failures abort it.
func (s *Service) Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error) {
	runID := uuid.NewString()
	logger := s.logger.With(logging.Args(
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldWatchlist, req.Name),
	)...)

	newUpload := req.Upload != nil
	var (
		entries []watchlist.Entry
		meta    library.Meta
		err     error
	)
	if newUpload {
		entries, err = s.saveUpload(ctx, req.Name, req.Upload, logger)
		if err != nil {
			return nil, err
		}
		meta = library.NewMeta(req.Name)
	} else {
		entries, err = s.readEntries(req.Name)
		if err != nil {
			return nil, err
		}
		meta, err = s.lib.LoadMeta(req.Name)
		if err != nil {
			return nil, err
		}
	}

	plan := BuildPlan(meta, req.Regions, req.Mode, newUpload)
	logger.Info("processing watchlist", logging.Args(
		logging.Int("titles", len(entries)),
		logging.Any("refresh_regions", plan.Refresh),
		logging.Any("cached_regions", plan.Cached),
	)...)

	result := &ProcessResult{
		Watchlist: req.Name,
		RunID:     runID,
		Regions:   req.Regions,
		Refreshed: plan.Refresh,
		Cached:    plan.Cached,
		Titles:    make([]TitleResult, 0, len(entries)),
	}

	for _, entry := range entries {
		title := TitleResult{
			Entry:     entry,
			Providers: make(map[string][]string, len(req.Regions)),
		}

		if len(plan.Refresh) > 0 {
			avail, err := s.resolver.Resolve(ctx, entry.ID, entry.Kind, plan.Refresh, req.Today)
			if err != nil {
				if errors.Is(err, services.ErrStore) {
					return nil, err
				}
				logger.Warn("title resolution failed", logging.Args(
					logging.String(logging.FieldIMDbID, entry.ID),
					logging.Error(err),
				)...)
			} else {
				title.TMDBID = avail.TMDBID
				for region, names := range avail.Providers {
					title.Providers[region] = names
				}
			}
		}
		if len(plan.Cached) > 0 {
			avail, err := s.resolver.ResolveCached(ctx, entry.ID, plan.Cached)
			if err != nil {
				return nil, err
			}
			if title.TMDBID == nil {
				title.TMDBID = avail.TMDBID
			}
			for region, names := range avail.Providers {
				title.Providers[region] = names
			}
		}
		for _, region := range req.Regions {
			if title.Providers[region] == nil {
				title.Providers[region] = []string{}
			}
		}
		result.Titles = append(result.Titles, title)
	}

	if len(plan.Refresh) > 0 {
		for _, region := range plan.Refresh {
			meta.Regions[region] = req.Today
		}
		if err := s.lib.SaveMeta(req.Name, meta); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// saveUpload stores new watchlist content, then removes cache records whose
// identifiers were dropped by the overwrite and appear on no other watchlist.
// The metadata sidecar is reset since refresh dates describe the old content.
func (s *Service) saveUpload(ctx context.Context, name string, content io.Reader, logger *slog.Logger) ([]watchlist.Entry, error) {
	var oldIDs []string
	shared := make(map[string]struct{})
	if s.lib.Exists(name) {
		oldIDs = s.identifiersOf(name)
		others, err := s.lib.List()
		if err != nil {
			return nil, err
		}
		for _, other := range others {
			if other == name {
				continue
			}
			for _, id := range s.identifiersOf(other) {
				shared[id] = struct{}{}
			}
		}
	}

	if err := s.lib.Save(name, content); err != nil {
		return nil, err
	}
	entries, err := s.readEntries(name)
	if err != nil {
		return nil, err
	}

	kept := watchlist.Identifiers(entries)
	removed := 0
	for _, id := range oldIDs {
		if _, ok := kept[id]; ok {
			continue
		}
		if _, ok := shared[id]; ok {
			continue
		}
		if err := s.store.Delete(ctx, id); err != nil {
			return nil, err
		}
		removed++
	}
	if removed > 0 {
		logger.Info("reconciled overwritten watchlist", logging.Args(
			logging.Int("removed_cache_records", removed),
		)...)
	}

	if err := s.lib.SaveMeta(name, library.NewMeta(name)); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) readEntries(name string) ([]watchlist.Entry, error) {
	rc, err := s.lib.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return watchlist.Parse(rc)
}

// identifiersOf returns the identifiers on a stored watchlist in order.
// Unreadable or malformed content yields an empty list so reconciliation
// over the remaining watchlists can proceed.
func (s *Service) identifiersOf(name string) []string {
	rc, err := s.lib.Open(name)
	if err != nil {
		return nil
	}
	defer rc.Close()

	entries, err := watchlist.Parse(rc)
	if err != nil {
		s.logger.Warn("skipping unparseable watchlist during reconciliation", logging.Args(
			logging.String(logging.FieldWatchlist, name),
			logging.Error(err),
		)...)
		return nil
	}

	seen := make(map[string]struct{}, len(entries))
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.ID]; ok {
			continue
		}
		seen[entry.ID] = struct{}{}
		ids = append(ids, entry.ID)
	}
	return ids
}
