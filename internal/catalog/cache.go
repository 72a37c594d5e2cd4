package catalog

import (
	"hash/fnv"
	"slices"
	"strconv"
	"time"
)

// SchemaVersion is the current on-disk cache schema. Files carrying a
// different version are discarded at load time rather than migrated.
const SchemaVersion = 1

// DescriptionFallback is the sentinel used when the storefront has no short
// description for a game.
const DescriptionFallback = "No description available."

// Entry is one game's cached metadata record.
type Entry struct {
	AppID         int64     `json:"appid"`
	Name          string    `json:"name"`
	Genres        []string  `json:"genres"`
	Description   string    `json:"description"`
	LastUpdated   time.Time `json:"last_updated"`
	FetchFailed   bool      `json:"fetch_failed,omitempty"`
	FetchAttempts int       `json:"fetch_attempts,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
}

// NeedsDetails reports whether a refresh should re-fetch storefront details
// for this entry: never fetched, previously failed, or older than staleAfter.
func (e Entry) NeedsDetails(staleAfter time.Duration, now time.Time) bool {
	if e.FetchFailed {
		return true
	}
	if len(e.Genres) == 0 && e.Description == "" {
		return true
	}
	if e.LastUpdated.IsZero() {
		return true
	}
	return now.Sub(e.LastUpdated) > staleAfter
}

// Signature is a cheap fingerprint of the owned-game list, used to detect
// library changes without fetching per-game details.
type Signature struct {
	Count int    `json:"count"`
	Hash  uint64 `json:"hash"`
}

// ComputeSignature builds a Signature from a set of appids. Order of the
// input does not matter.
func ComputeSignature(appIDs []int64) Signature {
	sorted := slices.Clone(appIDs)
	slices.Sort(sorted)

	h := fnv.New64a()
	for _, id := range sorted {
		_, _ = h.Write([]byte(strconv.FormatInt(id, 10)))
		_, _ = h.Write([]byte{','})
	}
	return Signature{Count: len(sorted), Hash: h.Sum64()}
}

// Cache is the whole-catalog container persisted to disk.
type Cache struct {
	SchemaVersion    int             `json:"schema_version"`
	GeneratedAt      time.Time       `json:"generated_at"`
	LibrarySignature Signature       `json:"library_signature"`
	Games            map[int64]Entry `json:"games"`
}

// NewCache returns an empty cache at the current schema version.
func NewCache() *Cache {
	return &Cache{
		SchemaVersion: SchemaVersion,
		Games:         make(map[int64]Entry),
	}
}

// Age returns how long ago the cache was last refreshed. A cache that was
// never refreshed reports an effectively infinite age.
func (c *Cache) Age(now time.Time) time.Duration {
	if c.GeneratedAt.IsZero() {
		return time.Duration(1<<63 - 1)
	}
	return now.Sub(c.GeneratedAt)
}

// Count returns the number of cached games.
func (c *Cache) Count() int {
	return len(c.Games)
}

// Entries returns all entries sorted by name for deterministic listings.
func (c *Cache) Entries() []Entry {
	entries := make([]Entry, 0, len(c.Games))
	for _, entry := range c.Games {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		case a.AppID < b.AppID:
			return -1
		case a.AppID > b.AppID:
			return 1
		default:
			return 0
		}
	})
	return entries
}
