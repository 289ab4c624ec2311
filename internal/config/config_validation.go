// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"strings"
)

// Validate checks that the merged [StructuredConfig] can drive a sync cycle.
//
// Returns nil if the configuration is valid, or one of the ErrInvalid*
// sentinels (joined with the underlying cause where there is one).
func (cfg *StructuredConfig) Validate() error {
	if _, err := cfg.Identity(); err != nil {
		return errors.Join(ErrInvalidAppConfigs, err)
	}

	if strings.TrimSpace(cfg.Remote.APIHost) == "" || cfg.Remote.RequestTimeout < 0 {
		return ErrInvalidRemoteConfigs
	}

	if !cfg.Remote.IsDevelopment && strings.TrimSpace(cfg.Remote.IdentityAuthority) == "" {
		return ErrInvalidRemoteConfigs
	}

	switch cfg.Remote.APIVersion {
	case "", APIVersionV1, APIVersionV2:
	default:
		return ErrInvalidRemoteConfigs
	}

	if cfg.Cache.Enabled {
		switch cfg.Cache.Driver {
		case CacheDriverFile:
		case CacheDriverSQLite:
			if cfg.Cache.DSN == "" {
				return ErrInvalidCacheConfigs
			}
		default:
			return ErrInvalidCacheConfigs
		}
	}

	if cfg.Sync.RefreshInterval <= 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
