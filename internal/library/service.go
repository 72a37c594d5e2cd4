package library

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"gamebot/internal/catalog"
	"gamebot/internal/logging"
	"gamebot/internal/steam"
)

// Options configures a Service.
type Options struct {
	RefreshInterval      time.Duration
	MaxConcurrentFetches int
}

// Service keeps the game catalog cache reasonably fresh and answers lookups,
// including the miss fallback against the live storefront search.
//
// The in-memory cache is the one shared mutable resource: all mutations are
// serialized through mu even though the upstream fetches that produce the
// data to merge run concurrently.
type Service struct {
	store  *catalog.Store
	client steam.API
	logger *slog.Logger

	refreshInterval time.Duration
	maxFetches      int

	mu    sync.RWMutex
	cache *catalog.Cache

	// lookups deduplicates concurrent fallback fetches per missing name.
	lookups singleflight.Group
}

// New constructs a Service and loads the persisted cache into memory.
func New(store *catalog.Store, client steam.API, logger *slog.Logger, opts Options) *Service {
	logger = logging.NewComponentLogger(logger, "library")

	interval := opts.RefreshInterval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	maxFetches := opts.MaxConcurrentFetches
	if maxFetches <= 0 {
		maxFetches = 4
	}

	return &Service{
		store:           store,
		client:          client,
		logger:          logger,
		refreshInterval: interval,
		maxFetches:      maxFetches,
		cache:           store.Load(),
	}
}

// Count returns the number of cached games.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Count()
}

// GeneratedAt returns the timestamp of the last refresh.
func (s *Service) GeneratedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.GeneratedAt
}

// Entries returns all cached entries sorted by name.
func (s *Service) Entries() []catalog.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Entries()
}

// RefreshStats summarizes one refresh run.
type RefreshStats struct {
	Skipped bool
	Total   int
	Fetched int
	Failed  int
}

// Refresh brings the cache up to date with the owned-game library. When the
// cache is fresh and the library signature is unchanged the refresh is
// skipped unless force is set. Per-game detail fetches run on a bounded
// worker pool; a failed fetch marks its entry retry-eligible and never
// aborts the rest of the run. Existing entries are merged additively, never
// discarded.
func (s *Service) Refresh(ctx context.Context, force bool) (RefreshStats, error) {
	refreshID := uuid.NewString()
	logger := s.logger.With(logging.String(logging.FieldRefreshID, refreshID))

	owned, err := s.client.OwnedGames(ctx)
	if err != nil {
		return RefreshStats{}, fmt.Errorf("fetch owned games: %w", err)
	}

	appIDs := make([]int64, 0, len(owned))
	for _, game := range owned {
		appIDs = append(appIDs, game.AppID)
	}
	signature := catalog.ComputeSignature(appIDs)
	now := time.Now().UTC()

	s.mu.RLock()
	fresh := s.cache.Age(now) < s.refreshInterval && s.cache.LibrarySignature == signature
	s.mu.RUnlock()
	if fresh && !force {
		logger.Debug("cache is fresh, skipping refresh",
			logging.Int("entry_count", s.Count()))
		return RefreshStats{Skipped: true, Total: len(owned)}, nil
	}

	if err := s.store.Backup(); err != nil {
		return RefreshStats{}, fmt.Errorf("backup cache: %w", err)
	}

	// Create missing entries and pick the ones whose details need a fetch.
	toFetch := make([]steam.OwnedGame, 0, len(owned))
	s.mu.Lock()
	for _, game := range owned {
		entry, ok := s.cache.Games[game.AppID]
		if !ok {
			entry = catalog.Entry{AppID: game.AppID, Name: game.Name}
		} else {
			entry.Name = game.Name
		}
		s.cache.Games[game.AppID] = entry
		if force || entry.NeedsDetails(s.refreshInterval, now) {
			toFetch = append(toFetch, game)
		}
	}
	s.mu.Unlock()

	logger.Info("refreshing game details",
		logging.Int("library_count", len(owned)),
		logging.Int("fetch_count", len(toFetch)))

	var failed int // guarded by mu

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.maxFetches)
	for _, game := range toFetch {
		game := game
		group.Go(func() error {
			details, err := s.client.AppDetails(groupCtx, game.AppID)
			s.mu.Lock()
			defer s.mu.Unlock()

			entry := s.cache.Games[game.AppID]
			switch {
			case err == nil:
				entry = mergeDetails(entry, details, now)
			case steam.IsNotFound(err):
				// Storefront has no page for this app (delisted). There is
				// nothing more to fetch; record the sentinel so the entry is
				// not retried every cycle.
				entry.Description = catalog.DescriptionFallback
				entry.LastUpdated = laterOf(entry.LastUpdated, now)
				entry.FetchFailed = false
				entry.LastError = ""
				logger.Debug("no storefront page for app",
					logging.Int64(logging.FieldAppID, game.AppID),
					logging.String(logging.FieldGame, game.Name))
			default:
				entry.FetchFailed = true
				entry.FetchAttempts++
				entry.LastError = err.Error()
				failed++
				logger.Warn("failed to fetch game details",
					logging.Int64(logging.FieldAppID, game.AppID),
					logging.String(logging.FieldGame, game.Name),
					logging.Error(err))
			}
			s.cache.Games[game.AppID] = entry
			return nil // failures are recorded per entry, never fatal
		})
	}
	_ = group.Wait()

	s.mu.Lock()
	s.cache.LibrarySignature = signature
	s.cache.GeneratedAt = now
	saveErr := s.store.Save(s.cache)
	s.mu.Unlock()
	if saveErr != nil {
		return RefreshStats{}, fmt.Errorf("persist cache: %w", saveErr)
	}

	stats := RefreshStats{
		Total:   len(owned),
		Fetched: len(toFetch) - failed,
		Failed:  failed,
	}
	logger.Info("refresh complete",
		logging.Int("library_count", stats.Total),
		logging.Int("fetched", stats.Fetched),
		logging.Int("failed", stats.Failed))
	return stats, nil
}

func mergeDetails(entry catalog.Entry, details *steam.AppDetails, now time.Time) catalog.Entry {
	entry.Genres = details.Genres
	if details.Description != "" {
		entry.Description = details.Description
	} else {
		entry.Description = catalog.DescriptionFallback
	}
	entry.LastUpdated = laterOf(entry.LastUpdated, now)
	entry.FetchFailed = false
	entry.FetchAttempts = 0
	entry.LastError = ""
	return entry
}

// laterOf keeps last_updated monotonically non-decreasing per entry.
func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// Find performs approximate name matching against all cached display names.
// Candidates are ranked most similar first; an empty result is a cache miss.
func (s *Service) Find(query string) []Match {
	s.mu.RLock()
	entries := s.cache.Entries()
	s.mu.RUnlock()
	return rankMatches(query, entries)
}

// ResolveOrFetch is the failsafe path. A cache miss triggers one live
// storefront search per distinct in-flight name; a hit is inserted into the
// cache (backup then save) and returned. A confirmed upstream miss returns
// ErrNotFound and caches nothing.
func (s *Service) ResolveOrFetch(ctx context.Context, query string) (catalog.Entry, error) {
	if matches := s.Find(query); len(matches) > 0 {
		return matches[0].Entry, nil
	}

	key := foldName(query)
	if key == "" {
		return catalog.Entry{}, fmt.Errorf("resolve %q: %w", query, ErrNotFound)
	}

	result, err, _ := s.lookups.Do(key, func() (any, error) {
		// A concurrent caller may have completed the insert while this one
		// waited on the flight group.
		if matches := s.Find(query); len(matches) > 0 {
			return matches[0].Entry, nil
		}
		return s.fetchAndInsert(ctx, query)
	})
	if err != nil {
		return catalog.Entry{}, err
	}
	return result.(catalog.Entry), nil
}

func (s *Service) fetchAndInsert(ctx context.Context, query string) (catalog.Entry, error) {
	results, err := s.client.SearchApps(ctx, query)
	if err != nil {
		if steam.IsNotFound(err) {
			return catalog.Entry{}, fmt.Errorf("resolve %q: %w", query, ErrNotFound)
		}
		return catalog.Entry{}, fmt.Errorf("storefront search %q: %w", query, err)
	}

	// The storefront orders results by relevance; take the top hit.
	best := results[0]
	now := time.Now().UTC()
	entry := catalog.Entry{
		AppID:       best.AppID,
		Name:        best.Name,
		Description: catalog.DescriptionFallback,
		LastUpdated: now,
	}

	// Details are best-effort: a failure here still yields a usable entry.
	if details, detailsErr := s.client.AppDetails(ctx, best.AppID); detailsErr == nil {
		entry = mergeDetails(entry, details, now)
	} else if !steam.IsNotFound(detailsErr) {
		entry.FetchFailed = true
		entry.FetchAttempts = 1
		entry.LastError = detailsErr.Error()
		s.logger.Warn("fallback insert without details",
			logging.Int64(logging.FieldAppID, best.AppID),
			logging.String(logging.FieldGame, best.Name),
			logging.Error(detailsErr))
	}

	if err := s.store.Backup(); err != nil {
		return catalog.Entry{}, fmt.Errorf("backup cache: %w", err)
	}

	s.mu.Lock()
	if existing, ok := s.cache.Games[best.AppID]; ok {
		entry.LastUpdated = laterOf(existing.LastUpdated, entry.LastUpdated)
	}
	s.cache.Games[best.AppID] = entry
	saveErr := s.store.Save(s.cache)
	s.mu.Unlock()
	if saveErr != nil {
		return catalog.Entry{}, fmt.Errorf("persist cache: %w", saveErr)
	}

	s.logger.Info("cached game from fallback lookup",
		logging.Int64(logging.FieldAppID, entry.AppID),
		logging.String(logging.FieldGame, entry.Name))
	return entry, nil
}
