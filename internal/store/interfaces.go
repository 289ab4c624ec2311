// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-configur/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/bundle_cache_mock.go -package=mock

// BundleCache keeps the last good raw bundle per application so the process
// can start while the remote service is unreachable.
//
// There is one slot per application id and Save overwrites it. Load decodes
// the slot with [models.ParseBundle] and returns [ErrCacheMiss] when nothing
// usable is stored.
type BundleCache interface {
	Save(ctx context.Context, appID string, raw []byte) error
	Load(ctx context.Context, appID string) (models.Bundle, []byte, error)
}
