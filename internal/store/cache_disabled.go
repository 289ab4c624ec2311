package store

import (
	"context"

	"github.com/MKhiriev/go-configur/models"
)

type disabledCache struct{}

// NewDisabledCache returns a [BundleCache] that never stores anything.
func NewDisabledCache() BundleCache {
	return disabledCache{}
}

func (disabledCache) Save(context.Context, string, []byte) error {
	return nil
}

func (disabledCache) Load(context.Context, string) (models.Bundle, []byte, error) {
	return models.Bundle{}, nil, ErrCacheMiss
}
