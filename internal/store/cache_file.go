// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/models"
)

const (
	cacheFilePrefix = "configur_appsettings_"
	cacheFileSuffix = ".json"
)

type fileCache struct {
	dir    string
	logger *logger.Logger
}

// NewFileCache returns a [BundleCache] that keeps each application's raw
// bundle in dir/configur_appsettings_{appId}.json. The bytes are written
// verbatim so the file is exactly what the server returned.
func NewFileCache(dir string, log *logger.Logger) BundleCache {
	if dir == "" {
		dir = "."
	}
	return &fileCache{dir: dir, logger: log}
}

// Save replaces the cached bundle atomically: the payload goes to a temporary
// file in the same directory which is then renamed over the slot.
func (c *fileCache) Save(ctx context.Context, appID string, raw []byte) error {
	path, err := c.path(appID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, cacheFilePrefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(raw); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, 0o600)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp cache file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace cache file: %w", err)
	}

	c.logger.Debug().
		Str("func", "fileCache.Save").
		Str(logger.AppIDField, appID).
		Str("path", path).
		Int("bytes", len(raw)).
		Msg("bundle cached")

	return nil
}

func (c *fileCache) Load(ctx context.Context, appID string) (models.Bundle, []byte, error) {
	path, err := c.path(appID)
	if err != nil {
		return models.Bundle{}, nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Bundle{}, nil, ErrCacheMiss
		}
		return models.Bundle{}, nil, fmt.Errorf("%w: read cache file: %w", ErrCacheMiss, err)
	}

	bundle, err := models.ParseBundle(raw)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("func", "fileCache.Load").
			Str(logger.AppIDField, appID).
			Str("path", path).
			Msg("cached bundle is unreadable")
		return models.Bundle{}, nil, fmt.Errorf("%w: %w", ErrCacheMiss, err)
	}

	return bundle, raw, nil
}

func (c *fileCache) path(appID string) (string, error) {
	name := cacheFileName(appID)
	if name == "" {
		return "", ErrEmptyAppID
	}
	return filepath.Join(c.dir, name), nil
}

// cacheFileName maps an application id to its file name. The id is
// query-escaped: the mapping is reversible, so distinct ids never share a
// slot, and a path separator can never survive into the name.
func cacheFileName(appID string) string {
	if strings.TrimSpace(appID) == "" {
		return ""
	}

	return cacheFilePrefix + url.QueryEscape(appID) + cacheFileSuffix
}
