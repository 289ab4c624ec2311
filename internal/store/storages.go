package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-configur/internal/config"
	"github.com/MKhiriev/go-configur/internal/logger"
)

// Storages groups the local state of one provider: the fallback bundle cache
// and the in-memory settings store.
type Storages struct {
	// BundleCache is the backend selected by the cache configuration.
	BundleCache BundleCache

	// Settings holds the merged configuration served to the host.
	Settings *SettingsStore

	db *DB
}

// NewStorages initialises the storage layer from the cache configuration:
//   - cache disabled: a cache that always misses;
//   - driver "file": one JSON file per application under cfg.Dir;
//   - driver "sqlite": opens cfg.DSN, runs the goose migrations, and uses the
//     bundle_cache table.
//
// Returns an error if the driver is unknown or the database cannot be
// prepared.
func NewStorages(ctx context.Context, cfg config.Cache, log *logger.Logger) (*Storages, error) {
	s := &Storages{Settings: NewSettingsStore(log)}

	if !cfg.Enabled {
		log.Info().Msg("local bundle cache is disabled")
		s.BundleCache = NewDisabledCache()
		return s, nil
	}

	switch cfg.Driver {
	case "", config.CacheDriverFile:
		log.Info().Str("dir", cfg.Dir).Msg("using file bundle cache")
		s.BundleCache = NewFileCache(cfg.Dir, log)
	case config.CacheDriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		log.Info().Str("dsn", cfg.DSN).Msg("using sqlite bundle cache")
		s.db = db
		s.BundleCache = NewSQLiteCache(db, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCacheDriver, cfg.Driver)
	}

	return s, nil
}

// Close releases the cache database, if one was opened.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
