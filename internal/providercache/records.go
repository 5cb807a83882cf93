package providercache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"streamsift/internal/services"
)

// Get loads the cache record for an identifier. A missing record returns
// (nil, nil).
func (s *Store) Get(ctx context.Context, imdbID string) (*Record, error) {
	ctx = ensureContext(ctx)

	var (
		tmdbID        sql.NullInt64
		providersJSON string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT tmdb_id, providers_json FROM title_cache WHERE imdb_id = ?",
		imdbID,
	).Scan(&tmdbID, &providersJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "providercache", "get", imdbID, err)
	}

	record := NewRecord()
	if tmdbID.Valid {
		record.TMDBID = &tmdbID.Int64
	}
	if providersJSON != "" {
		if err := json.Unmarshal([]byte(providersJSON), &record.Regions); err != nil {
			return nil, services.Wrap(services.ErrStore, "providercache", "get", fmt.Sprintf("decode providers for %s", imdbID), err)
		}
	}
	return record, nil
}

// Put inserts or replaces the cache record for an identifier.
func (s *Store) Put(ctx context.Context, imdbID string, record *Record) error {
	if imdbID == "" {
		return services.Wrap(services.ErrValidation, "providercache", "put", "imdb id required", nil)
	}
	if record == nil {
		record = NewRecord()
	}

	providersJSON, err := json.Marshal(record.Regions)
	if err != nil {
		return services.Wrap(services.ErrStore, "providercache", "put", "encode providers", err)
	}

	var tmdbID any
	if record.TMDBID != nil {
		tmdbID = *record.TMDBID
	}

	if err := s.execWithRetry(ctx,
		"INSERT OR REPLACE INTO title_cache (imdb_id, tmdb_id, providers_json) VALUES (?, ?, ?)",
		imdbID, tmdbID, string(providersJSON),
	); err != nil {
		return services.Wrap(services.ErrStore, "providercache", "put", imdbID, err)
	}
	return nil
}

// Delete removes the cache record for an identifier. Deleting an absent
// record is not an error.
func (s *Store) Delete(ctx context.Context, imdbID string) error {
	if err := s.execWithRetry(ctx, "DELETE FROM title_cache WHERE imdb_id = ?", imdbID); err != nil {
		return services.Wrap(services.ErrStore, "providercache", "delete", imdbID, err)
	}
	return nil
}

// DeleteAll clears the cache table.
func (s *Store) DeleteAll(ctx context.Context) error {
	if err := s.execWithRetry(ctx, "DELETE FROM title_cache"); err != nil {
		return services.Wrap(services.ErrStore, "providercache", "delete all", "", err)
	}
	return nil
}

// Count returns the number of cached records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM title_cache").Scan(&count); err != nil {
		return 0, services.Wrap(services.ErrStore, "providercache", "count", "", err)
	}
	return count, nil
}
