package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"gamebot/internal/logging"
)

// Store provides durable persistence for the game catalog cache: load with
// corrupt-file recovery, atomic save, and a pre-mutation backup. A lock file
// next to the cache serializes writers across processes.
type Store struct {
	path   string
	logger *slog.Logger
	lock   *flock.Flock
}

// NewStore creates a store for the cache file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	logger = logging.NewComponentLogger(logger, "catalog")
	return &Store{
		path:   path,
		logger: logger,
		lock:   flock.New(path + ".lock"),
	}
}

// Path returns the cache file location.
func (s *Store) Path() string {
	return s.path
}

// BackupPath returns the location of the most recent backup.
func (s *Store) BackupPath() string {
	return s.path + ".bak"
}

// Load reads the persisted cache. A missing, unreadable, malformed, or
// structurally invalid file yields an empty cache at the current schema
// version with a logged warning; Load never fails the caller.
func (s *Store) Load() *Cache {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read cache file, starting empty",
				logging.String("path", s.path),
				logging.Error(err))
		}
		return NewCache()
	}

	var cache Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		s.logger.Warn("cache file is corrupted, starting empty",
			logging.String("path", s.path),
			logging.Error(err))
		return NewCache()
	}

	if !s.Validate(&cache) {
		s.logger.Warn("cache file failed validation, starting empty",
			logging.String("path", s.path),
			logging.Int("schema_version", cache.SchemaVersion))
		return NewCache()
	}

	if cache.Games == nil {
		cache.Games = make(map[int64]Entry)
	}

	s.logger.Debug("loaded game cache",
		logging.Int("entry_count", len(cache.Games)),
		logging.String("path", s.path))

	return &cache
}

// Validate checks schema compatibility and structural well-formedness:
// the schema version must match and every map key must agree with its
// entry's appid.
func (s *Store) Validate(cache *Cache) bool {
	if cache == nil {
		return false
	}
	if cache.SchemaVersion != SchemaVersion {
		return false
	}
	for appID, entry := range cache.Games {
		if appID <= 0 || entry.AppID != appID {
			return false
		}
		if entry.Name == "" {
			return false
		}
	}
	return true
}

// Save writes the cache to disk atomically: marshal, write a temp file, then
// rename over the previous version so a crash mid-write cannot corrupt it.
func (s *Store) Save(cache *Cache) error {
	if cache == nil {
		return errors.New("cache must not be nil")
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath) // cleanup on failure
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Backup copies the current on-disk cache to the backup location. A missing
// cache file is a no-op. The most recent backup is always retained.
func (s *Store) Backup() error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache for backup: %w", err)
	}

	if err := os.WriteFile(s.BackupPath(), data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	s.logger.Debug("cache backup created", logging.String("path", s.BackupPath()))
	return nil
}

// Clear backs up and removes the on-disk cache. Used by manual invalidation;
// entries are never removed automatically.
func (s *Store) Clear() error {
	if err := s.Backup(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cache file: %w", err)
	}
	s.logger.Info("cache file cleared", logging.String("path", s.path))
	return nil
}
