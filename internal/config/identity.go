package config

import (
	"github.com/MKhiriev/go-configur/models"
)

// Identity resolves the application identity from the App group.
//
// The connection string is parsed first (when set) and any discrete ID,
// Secret or Password field overrides the matching part. The result must be
// complete.
func (cfg *StructuredConfig) Identity() (models.Identity, error) {
	var id models.Identity

	if cfg.App.ConnectionString != "" {
		// an incomplete string may still be completed by discrete fields
		id, _ = models.ParseConnectionString(cfg.App.ConnectionString)
	}

	if cfg.App.ID != "" {
		id.AppID = cfg.App.ID
	}
	if cfg.App.Secret != "" {
		id.AppSecret = cfg.App.Secret
	}
	if cfg.App.Password != "" {
		id.AppPassword = cfg.App.Password
	}

	return id, id.Validate()
}
