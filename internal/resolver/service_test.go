package resolver_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"streamsift/internal/catalog/tmdb"
	"streamsift/internal/library"
	"streamsift/internal/logging"
	"streamsift/internal/providercache"
	"streamsift/internal/resolver"
	"streamsift/internal/services"
	"streamsift/internal/testsupport"
)

const today = "2026-08-31"

func catalogByID(ids map[string]int64, providers map[string][]string) *fakeCatalog {
	return &fakeCatalog{
		find: func(_ context.Context, imdbID string) (*tmdb.FindResponse, error) {
			id, ok := ids[imdbID]
			if !ok {
				return &tmdb.FindResponse{}, nil
			}
			return movieMatch(id), nil
		},
		watch: func(_ context.Context, _ int64, _, region string) ([]string, error) {
			return providers[region], nil
		},
	}
}

func mustFatalCatalog(t *testing.T) *fakeCatalog {
	return &fakeCatalog{
		find: func(_ context.Context, imdbID string) (*tmdb.FindResponse, error) {
			t.Fatalf("unexpected catalog lookup for %s", imdbID)
			return nil, nil
		},
		watch: func(_ context.Context, _ int64, _, region string) ([]string, error) {
			t.Fatalf("unexpected provider fetch for %s", region)
			return nil, nil
		},
	}
}

func seedRecord(t *testing.T, store *providercache.Store, imdbID string, tmdbID int64) {
	t.Helper()
	record := providercache.NewRecord()
	record.TMDBID = &tmdbID
	record.SetEntry("GB", providercache.RegionEntry{LastUpdated: "2026-08-01", Names: []string{"Netflix"}})
	if err := store.Put(context.Background(), imdbID, record); err != nil {
		t.Fatalf("seed %s: %v", imdbID, err)
	}
}

func TestProcessNewUpload(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	lib := library.New(cfg)

	catalog := catalogByID(
		map[string]int64{"tt0111161": 278, "tt0903747": 1396},
		map[string][]string{"GB": {"Netflix"}},
	)
	svc := resolver.NewService(lib, store, catalog, logging.NewNop())

	csv := testsupport.WatchlistCSV(
		[3]string{"tt0111161", "The Shawshank Redemption", "Movie"},
		[3]string{"tt0903747", "Breaking Bad", "TV Series"},
	)
	result, err := svc.Process(context.Background(), resolver.ProcessRequest{
		Name:    "films.csv",
		Upload:  strings.NewReader(csv),
		Regions: []string{"GB"},
		Mode:    resolver.ModeAuto,
		Today:   today,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(result.Titles) != 2 {
		t.Fatalf("got %d titles, want 2", len(result.Titles))
	}
	first := result.Titles[0]
	if first.ID != "tt0111161" || first.Title != "The Shawshank Redemption" {
		t.Errorf("unexpected first title %+v", first.Entry)
	}
	if first.TMDBID == nil || *first.TMDBID != 278 {
		t.Errorf("first tmdb id = %v, want 278", first.TMDBID)
	}
	if got := first.Providers["GB"]; len(got) != 1 || got[0] != "Netflix" {
		t.Errorf("GB providers = %v, want [Netflix]", got)
	}
	if len(result.Refreshed) != 1 || result.Refreshed[0] != "GB" {
		t.Errorf("Refreshed = %v, want [GB]", result.Refreshed)
	}

	meta, err := lib.LoadMeta("films.csv")
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if meta.Regions["GB"] != today {
		t.Errorf("meta GB date = %q, want %q", meta.Regions["GB"], today)
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("cache count = %d, want 2", count)
	}
}

func TestProcessSameDayAnswersFromCache(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	lib := library.New(cfg)

	catalog := catalogByID(
		map[string]int64{"tt0111161": 278},
		map[string][]string{"GB": {"Netflix"}},
	)
	svc := resolver.NewService(lib, store, catalog, logging.NewNop())

	csv := testsupport.WatchlistCSV([3]string{"tt0111161", "The Shawshank Redemption", "Movie"})
	if _, err := svc.Process(context.Background(), resolver.ProcessRequest{
		Name:    "films.csv",
		Upload:  strings.NewReader(csv),
		Regions: []string{"GB"},
		Mode:    resolver.ModeAuto,
		Today:   today,
	}); err != nil {
		t.Fatalf("first Process: %v", err)
	}

	// Second run the same day must not touch the catalog at all.
	svc = resolver.NewService(lib, store, mustFatalCatalog(t), logging.NewNop())
	result, err := svc.Process(context.Background(), resolver.ProcessRequest{
		Name:    "films.csv",
		Regions: []string{"GB"},
		Mode:    resolver.ModeAuto,
		Today:   today,
	})
	if err != nil {
		t.Fatalf("second Process: %v", err)
	}
	if len(result.Cached) != 1 || result.Cached[0] != "GB" {
		t.Errorf("Cached = %v, want [GB]", result.Cached)
	}
	if got := result.Titles[0].Providers["GB"]; len(got) != 1 || got[0] != "Netflix" {
		t.Errorf("GB providers = %v, want cached [Netflix]", got)
	}
}

func TestProcessMissingWatchlist(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	svc := resolver.NewService(library.New(cfg), store, &fakeCatalog{}, logging.NewNop())

	_, err := svc.Process(context.Background(), resolver.ProcessRequest{
		Name:    "missing.csv",
		Regions: []string{"GB"},
		Mode:    resolver.ModeAuto,
		Today:   today,
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want not-found", err)
	}
}

func TestProcessOverwriteReconciliation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	lib := library.New(cfg)

	testsupport.WriteWatchlist(t, cfg, "films.csv", testsupport.WatchlistCSV(
		[3]string{"tt0000001", "Dropped Unique", "Movie"},
		[3]string{"tt0000002", "Dropped Shared", "Movie"},
	))
	testsupport.WriteWatchlist(t, cfg, "other.csv", testsupport.WatchlistCSV(
		[3]string{"tt0000002", "Dropped Shared", "Movie"},
	))
	seedRecord(t, store, "tt0000001", 1)
	seedRecord(t, store, "tt0000002", 2)

	oldMeta := library.NewMeta("films.csv")
	oldMeta.Regions["US"] = "2026-08-01"
	if err := lib.SaveMeta("films.csv", oldMeta); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}

	catalog := catalogByID(
		map[string]int64{"tt0000004": 4},
		map[string][]string{"GB": {"Disney Plus"}},
	)
	svc := resolver.NewService(lib, store, catalog, logging.NewNop())

	replacement := testsupport.WatchlistCSV([3]string{"tt0000004", "New Title", "Movie"})
	if _, err := svc.Process(context.Background(), resolver.ProcessRequest{
		Name:    "films.csv",
		Upload:  strings.NewReader(replacement),
		Regions: []string{"GB"},
		Mode:    resolver.ModeAuto,
		Today:   today,
	}); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if record, _ := store.Get(context.Background(), "tt0000001"); record != nil {
		t.Error("unique dropped identifier should be removed from cache")
	}
	if record, _ := store.Get(context.Background(), "tt0000002"); record == nil {
		t.Error("identifier shared with another watchlist must survive")
	}
	if record, _ := store.Get(context.Background(), "tt0000004"); record == nil {
		t.Error("expected cache record for new identifier")
	}

	meta, err := lib.LoadMeta("films.csv")
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if _, ok := meta.Regions["US"]; ok {
		t.Error("overwrite must discard old region dates")
	}
	if meta.Regions["GB"] != today {
		t.Errorf("meta GB date = %q, want %q", meta.Regions["GB"], today)
	}
}

func TestProcessOverwriteIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	lib := library.New(cfg)

	catalog := catalogByID(
		map[string]int64{"tt0111161": 278},
		map[string][]string{"GB": {"Netflix"}},
	)
	svc := resolver.NewService(lib, store, catalog, logging.NewNop())

	csv := testsupport.WatchlistCSV([3]string{"tt0111161", "The Shawshank Redemption", "Movie"})
	for i := 0; i < 2; i++ {
		if _, err := svc.Process(context.Background(), resolver.ProcessRequest{
			Name:    "films.csv",
			Upload:  strings.NewReader(csv),
			Regions: []string{"GB"},
			Mode:    resolver.ModeAuto,
			Today:   today,
		}); err != nil {
			t.Fatalf("Process %d: %v", i, err)
		}
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("cache count = %d, want 1 after identical re-upload", count)
	}
}
