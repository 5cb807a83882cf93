package providercache

import (
	"encoding/json"
	"fmt"
)

// RegionEntry holds one region's cached provider names and the date they were
// fetched. An empty LastUpdated marks a legacy (undated) entry, which is
// always considered stale.
type RegionEntry struct {
	LastUpdated string
	Names       []string
}

// Fresh reports whether the entry was refreshed on the given date.
func (e RegionEntry) Fresh(today string) bool {
	return e.LastUpdated != "" && e.LastUpdated == today
}

type datedEntry struct {
	LastUpdated string   `json:"last_updated"`
	Names       []string `json:"names"`
}

// UnmarshalJSON accepts both the legacy bare list of names and the structured
// dated form.
func (e *RegionEntry) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*e = RegionEntry{Names: names}
		return nil
	}

	var dated datedEntry
	if err := json.Unmarshal(data, &dated); err != nil {
		return fmt.Errorf("region entry: unrecognized shape: %w", err)
	}
	*e = RegionEntry{LastUpdated: dated.LastUpdated, Names: dated.Names}
	return nil
}

// MarshalJSON always emits the dated structured form, never the legacy list.
func (e RegionEntry) MarshalJSON() ([]byte, error) {
	names := e.Names
	if names == nil {
		names = []string{}
	}
	return json.Marshal(datedEntry{LastUpdated: e.LastUpdated, Names: names})
}

// Record is the cached availability state for one external identifier. TMDBID
// is nil until a lookup succeeds; a failed lookup stays nil and is retried on
// the next stale-region resolution.
type Record struct {
	TMDBID  *int64
	Regions map[string]RegionEntry
}

// NewRecord returns an empty record with an initialized region map.
func NewRecord() *Record {
	return &Record{Regions: make(map[string]RegionEntry)}
}

// Entry returns the cached entry for a region, if present.
func (r *Record) Entry(region string) (RegionEntry, bool) {
	if r == nil || r.Regions == nil {
		return RegionEntry{}, false
	}
	entry, ok := r.Regions[region]
	return entry, ok
}

// SetEntry stores a region entry, initializing the map if needed.
func (r *Record) SetEntry(region string, entry RegionEntry) {
	if r.Regions == nil {
		r.Regions = make(map[string]RegionEntry)
	}
	r.Regions[region] = entry
}
