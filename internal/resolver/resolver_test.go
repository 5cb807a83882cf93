package resolver_test

import (
	"context"
	"errors"
	"testing"

	"streamsift/internal/catalog/tmdb"
	"streamsift/internal/logging"
	"streamsift/internal/providercache"
	"streamsift/internal/resolver"
	"streamsift/internal/testsupport"
)

type fakeCatalog struct {
	find  func(ctx context.Context, imdbID string) (*tmdb.FindResponse, error)
	watch func(ctx context.Context, tmdbID int64, mediaType, region string) ([]string, error)
}

func (f *fakeCatalog) FindByExternalID(ctx context.Context, imdbID string) (*tmdb.FindResponse, error) {
	if f.find == nil {
		return nil, errors.New("unexpected find call")
	}
	return f.find(ctx, imdbID)
}

func (f *fakeCatalog) WatchProviders(ctx context.Context, tmdbID int64, mediaType, region string) ([]string, error) {
	if f.watch == nil {
		return nil, errors.New("unexpected watch providers call")
	}
	return f.watch(ctx, tmdbID, mediaType, region)
}

func movieMatch(id int64) *tmdb.FindResponse {
	return &tmdb.FindResponse{MovieResults: []tmdb.Match{{ID: id}}}
}

func TestResolveFetchesStaleRegions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	catalog := &fakeCatalog{
		find: func(_ context.Context, imdbID string) (*tmdb.FindResponse, error) {
			if imdbID != "tt0111161" {
				t.Fatalf("unexpected imdb id %q", imdbID)
			}
			return movieMatch(278), nil
		},
		watch: func(_ context.Context, tmdbID int64, mediaType, region string) ([]string, error) {
			if tmdbID != 278 || mediaType != "movie" {
				t.Fatalf("unexpected fetch %d/%s", tmdbID, mediaType)
			}
			if region == "GB" {
				return []string{"Netflix"}, nil
			}
			return []string{}, nil
		},
	}

	r := resolver.NewResolver(store, catalog, logging.NewNop())
	avail, err := r.Resolve(context.Background(), "tt0111161", "movie", []string{"GB", "US"}, "2026-08-31")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if avail.TMDBID == nil || *avail.TMDBID != 278 {
		t.Fatalf("tmdb id = %v, want 278", avail.TMDBID)
	}
	if got := avail.Providers["GB"]; len(got) != 1 || got[0] != "Netflix" {
		t.Errorf("GB providers = %v, want [Netflix]", got)
	}
	if got := avail.Providers["US"]; len(got) != 0 {
		t.Errorf("US providers = %v, want empty", got)
	}

	record, err := store.Get(context.Background(), "tt0111161")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if record == nil {
		t.Fatal("expected persisted record")
	}
	entry, ok := record.Entry("GB")
	if !ok || entry.LastUpdated != "2026-08-31" {
		t.Errorf("GB entry = %+v, want dated today", entry)
	}
}

func TestResolveFreshRegionSkipsCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	tmdbID := int64(278)
	record := providercache.NewRecord()
	record.TMDBID = &tmdbID
	record.SetEntry("GB", providercache.RegionEntry{LastUpdated: "2026-08-31", Names: []string{"Netflix"}})
	record.SetEntry("US", providercache.RegionEntry{LastUpdated: "2026-08-20", Names: []string{"Hulu"}})
	if err := store.Put(context.Background(), "tt0111161", record); err != nil {
		t.Fatalf("Put: %v", err)
	}

	catalog := &fakeCatalog{
		watch: func(_ context.Context, _ int64, _, region string) ([]string, error) {
			if region != "US" {
				t.Fatalf("fetched fresh region %q", region)
			}
			return []string{"Max"}, nil
		},
	}

	r := resolver.NewResolver(store, catalog, logging.NewNop())
	avail, err := r.Resolve(context.Background(), "tt0111161", "movie", []string{"GB", "US"}, "2026-08-31")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := avail.Providers["GB"]; len(got) != 1 || got[0] != "Netflix" {
		t.Errorf("GB providers = %v, want cached [Netflix]", got)
	}
	if got := avail.Providers["US"]; len(got) != 1 || got[0] != "Max" {
		t.Errorf("US providers = %v, want refreshed [Max]", got)
	}

	updated, err := store.Get(context.Background(), "tt0111161")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	entry, _ := updated.Entry("US")
	if entry.LastUpdated != "2026-08-31" {
		t.Errorf("US entry date = %q, want re-dated", entry.LastUpdated)
	}
}

func TestResolveAllFreshNeverTouchesCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	record := providercache.NewRecord()
	record.SetEntry("GB", providercache.RegionEntry{LastUpdated: "2026-08-31", Names: []string{"Netflix"}})
	if err := store.Put(context.Background(), "tt0111161", record); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Both funcs nil: any catalog call errors the resolve.
	r := resolver.NewResolver(store, &fakeCatalog{}, logging.NewNop())
	avail, err := r.Resolve(context.Background(), "tt0111161", "movie", []string{"GB"}, "2026-08-31")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := avail.Providers["GB"]; len(got) != 1 || got[0] != "Netflix" {
		t.Errorf("GB providers = %v, want [Netflix]", got)
	}
	if avail.TMDBID != nil {
		t.Errorf("tmdb id = %v, want nil (lookup skipped)", *avail.TMDBID)
	}
}

func TestResolveLegacyEntryIsStale(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	tmdbID := int64(603)
	record := providercache.NewRecord()
	record.TMDBID = &tmdbID
	record.SetEntry("GB", providercache.RegionEntry{Names: []string{"Old Service"}})
	if err := store.Put(context.Background(), "tt0133093", record); err != nil {
		t.Fatalf("Put: %v", err)
	}

	catalog := &fakeCatalog{
		watch: func(_ context.Context, _ int64, _, _ string) ([]string, error) {
			return []string{"Netflix"}, nil
		},
	}

	r := resolver.NewResolver(store, catalog, logging.NewNop())
	avail, err := r.Resolve(context.Background(), "tt0133093", "movie", []string{"GB"}, "2026-08-31")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := avail.Providers["GB"]; len(got) != 1 || got[0] != "Netflix" {
		t.Errorf("GB providers = %v, want refreshed [Netflix]", got)
	}

	updated, err := store.Get(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	entry, _ := updated.Entry("GB")
	if entry.LastUpdated != "2026-08-31" {
		t.Errorf("entry date = %q, want upgraded to dated form", entry.LastUpdated)
	}
}

func TestResolveLookupFailureDegrades(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	catalog := &fakeCatalog{
		find: func(_ context.Context, _ string) (*tmdb.FindResponse, error) {
			return nil, errors.New("tmdb find returned 500")
		},
	}

	r := resolver.NewResolver(store, catalog, logging.NewNop())
	avail, err := r.Resolve(context.Background(), "tt0000000", "movie", []string{"GB"}, "2026-08-31")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if avail.TMDBID != nil {
		t.Errorf("tmdb id = %v, want nil after failed lookup", *avail.TMDBID)
	}
	if got := avail.Providers["GB"]; got == nil || len(got) != 0 {
		t.Errorf("GB providers = %v, want empty list", got)
	}

	record, err := store.Get(context.Background(), "tt0000000")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if record == nil {
		t.Fatal("expected record cached despite failed lookup")
	}
	if record.TMDBID != nil {
		t.Errorf("cached tmdb id = %v, want nil so the lookup retries", *record.TMDBID)
	}
}

func TestResolveUnmatchedTitleCachesEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	catalog := &fakeCatalog{
		find: func(_ context.Context, _ string) (*tmdb.FindResponse, error) {
			return &tmdb.FindResponse{}, nil
		},
	}

	r := resolver.NewResolver(store, catalog, logging.NewNop())
	avail, err := r.Resolve(context.Background(), "tt9999999", "tvSeries", []string{"GB", "US"}, "2026-08-31")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for _, region := range []string{"GB", "US"} {
		if got := avail.Providers[region]; got == nil || len(got) != 0 {
			t.Errorf("%s providers = %v, want empty list", region, got)
		}
	}
}

func TestResolveCached(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	tmdbID := int64(278)
	record := providercache.NewRecord()
	record.TMDBID = &tmdbID
	record.SetEntry("GB", providercache.RegionEntry{LastUpdated: "2026-08-01", Names: []string{"Netflix"}})
	if err := store.Put(context.Background(), "tt0111161", record); err != nil {
		t.Fatalf("Put: %v", err)
	}

	r := resolver.NewResolver(store, &fakeCatalog{}, logging.NewNop())
	avail, err := r.ResolveCached(context.Background(), "tt0111161", []string{"GB", "US"})
	if err != nil {
		t.Fatalf("ResolveCached: %v", err)
	}
	if got := avail.Providers["GB"]; len(got) != 1 || got[0] != "Netflix" {
		t.Errorf("GB providers = %v, want [Netflix]", got)
	}
	if got := avail.Providers["US"]; got == nil || len(got) != 0 {
		t.Errorf("US providers = %v, want empty list", got)
	}

	// Absent titles answer empty without error.
	avail, err = r.ResolveCached(context.Background(), "tt7777777", []string{"GB"})
	if err != nil {
		t.Fatalf("ResolveCached absent: %v", err)
	}
	if avail.TMDBID != nil {
		t.Errorf("tmdb id = %v, want nil", *avail.TMDBID)
	}
	if got := avail.Providers["GB"]; got == nil || len(got) != 0 {
		t.Errorf("GB providers = %v, want empty list", got)
	}
}
