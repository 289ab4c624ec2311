package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/models"
)

const bundleCacheTable = "bundle_cache"

type sqliteCache struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLiteCache returns a [BundleCache] backed by the bundle_cache table.
// The schema must already be migrated (see [DB.Migrate]).
func NewSQLiteCache(db *DB, log *logger.Logger) BundleCache {
	return &sqliteCache{
		DB:     db,
		logger: log,
		now:    time.Now,
	}
}

func (c *sqliteCache) Save(ctx context.Context, appID string, raw []byte) error {
	if appID == "" {
		return ErrEmptyAppID
	}

	query, args, err := buildUpsertBundleQuery(appID, raw, etagOf(raw), c.now().UTC())
	if err != nil {
		c.logger.Err(err).Str("func", "sqliteCache.Save").Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		c.logger.Err(err).
			Str("func", "sqliteCache.Save").
			Str(logger.AppIDField, appID).
			Msg("failed to upsert cached bundle")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (c *sqliteCache) Load(ctx context.Context, appID string) (models.Bundle, []byte, error) {
	if appID == "" {
		return models.Bundle{}, nil, ErrEmptyAppID
	}

	query, args, err := buildSelectBundleQuery(appID)
	if err != nil {
		return models.Bundle{}, nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var raw []byte
	err = c.DB.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bundle{}, nil, ErrCacheMiss
	}
	if err != nil {
		c.logger.Err(err).
			Str("func", "sqliteCache.Load").
			Str(logger.AppIDField, appID).
			Msg("failed to query cached bundle")
		return models.Bundle{}, nil, fmt.Errorf("%w: %w: %w", ErrCacheMiss, ErrExecutingQuery, err)
	}

	bundle, err := models.ParseBundle(raw)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("func", "sqliteCache.Load").
			Str(logger.AppIDField, appID).
			Msg("cached bundle is unreadable")
		return models.Bundle{}, nil, fmt.Errorf("%w: %w", ErrCacheMiss, err)
	}

	return bundle, raw, nil
}

func buildUpsertBundleQuery(appID string, raw []byte, etag string, savedAt time.Time) (string, []any, error) {
	return sq.Insert(bundleCacheTable).
		Columns("app_id", "raw", "etag", "saved_at").
		Values(appID, raw, etag, savedAt).
		Suffix("ON CONFLICT(app_id) DO UPDATE SET raw = excluded.raw, etag = excluded.etag, saved_at = excluded.saved_at").
		PlaceholderFormat(sq.Question).
		ToSql()
}

func buildSelectBundleQuery(appID string) (string, []any, error) {
	return sq.Select("raw").
		From(bundleCacheTable).
		Where(sq.Eq{"app_id": appID}).
		PlaceholderFormat(sq.Question).
		ToSql()
}

// etagOf extracts the revision for the etag column. The column is
// informational, so an unparsable payload just stores an empty tag.
func etagOf(raw []byte) string {
	b, err := models.ParseBundle(raw)
	if err != nil {
		return ""
	}
	return b.ETag
}
