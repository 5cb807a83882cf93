package resolver

import (
	"context"
	"log/slog"

	"streamsift/internal/catalog/tmdb"
	"streamsift/internal/logging"
	"streamsift/internal/providercache"
)

// Availability is the resolved provider state for one title across the
// requested regions. TMDBID is nil when no catalog match is known.
type Availability struct {
	TMDBID    *int64
	Providers map[string][]string
}

// Resolver answers per-title availability questions against the cache,
// falling back to the catalog for stale regions.
type Resolver struct {
	store   *providercache.Store
	catalog tmdb.Catalog
	logger  *slog.Logger
}

// NewResolver creates a resolver over the given cache store and catalog.
func NewResolver(store *providercache.Store, catalog tmdb.Catalog, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:   store,
		catalog: catalog,
		logger:  logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve returns provider availability for every requested region, fetching
// from the catalog only for regions whose cached entry was not refreshed on
// the given date. Regions already fresh are answered from the cache without
// any network traffic. Lookup failures degrade: the region resolves to an
// empty list dated today, so it is not retried until the next day. Store
// failures are returned to the caller.
func (r *Resolver) Resolve(ctx context.Context, imdbID, kind string, regions []string, today string) (Availability, error) {
	record, err := r.store.Get(ctx, imdbID)
	if err != nil {
		return Availability{}, err
	}
	if record == nil {
		record = providercache.NewRecord()
	}

	stale := false
	for _, region := range regions {
		entry, ok := record.Entry(region)
		if !ok || !entry.Fresh(today) {
			stale = true
			break
		}
	}

	if stale && record.TMDBID == nil {
		resp, err := r.catalog.FindByExternalID(ctx, imdbID)
		if err != nil {
			r.logger.Warn("catalog lookup failed", logging.Args(
				logging.String(logging.FieldIMDbID, imdbID),
				logging.Error(err),
			)...)
		} else if id, ok := resp.FirstMatch(); ok {
			record.TMDBID = &id
		}
	}

	mediaType := MediaType(kind)
	result := Availability{
		TMDBID:    record.TMDBID,
		Providers: make(map[string][]string, len(regions)),
	}

	dirty := false
	for _, region := range regions {
		entry, ok := record.Entry(region)
		if ok && entry.Fresh(today) {
			result.Providers[region] = namesOrEmpty(entry.Names)
			continue
		}

		var names []string
		if record.TMDBID != nil {
			names, err = r.catalog.WatchProviders(ctx, *record.TMDBID, mediaType, region)
			if err != nil {
				r.logger.Warn("provider fetch failed", logging.Args(
					logging.String(logging.FieldIMDbID, imdbID),
					logging.String(logging.FieldRegion, region),
					logging.Error(err),
				)...)
				names = nil
			}
		}
		names = namesOrEmpty(names)
		record.SetEntry(region, providercache.RegionEntry{LastUpdated: today, Names: names})
		result.Providers[region] = names
		dirty = true
	}

	if dirty {
		if err := r.store.Put(ctx, imdbID, record); err != nil {
			return Availability{}, err
		}
	}
	return result, nil
}

// ResolveCached answers from the cache only: absent titles or regions resolve
// to empty lists and no catalog call is ever made.
func (r *Resolver) ResolveCached(ctx context.Context, imdbID string, regions []string) (Availability, error) {
	record, err := r.store.Get(ctx, imdbID)
	if err != nil {
		return Availability{}, err
	}

	result := Availability{Providers: make(map[string][]string, len(regions))}
	if record != nil {
		result.TMDBID = record.TMDBID
	}
	for _, region := range regions {
		entry, _ := record.Entry(region)
		result.Providers[region] = namesOrEmpty(entry.Names)
	}
	return result, nil
}

func namesOrEmpty(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
