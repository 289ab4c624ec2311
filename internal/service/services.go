package service

import (
	"github.com/MKhiriev/go-configur/internal/adapter"
	"github.com/MKhiriev/go-configur/internal/config"
	"github.com/MKhiriev/go-configur/internal/crypto"
	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/internal/store"
	"github.com/MKhiriev/go-configur/models"
)

// Services groups the refresh machinery of one application.
type Services struct {
	SyncService SyncService
	SyncJob     SyncJob
}

// NewServices builds the outbound adapters and wires the sync service to its
// scheduler. Push invalidations go through the scheduler so they coalesce with
// other pending refreshes.
func NewServices(cfg *config.StructuredConfig, identity models.Identity, storages *store.Storages, log *logger.Logger) (*Services, error) {
	credentials, err := adapter.NewCredentialExchanger(cfg.Remote, identity, log)
	if err != nil {
		return nil, err
	}

	fetcher, err := adapter.NewHTTPBundleFetcher(cfg.Remote, credentials, log)
	if err != nil {
		return nil, err
	}

	push := NewPushSubscriber(adapter.NewHubConnector(cfg.Remote.RequestTimeout, log), log.ForApp(identity.AppID))

	var job SyncJob
	syncService := NewSyncService(
		SyncDeps{
			Fetcher:   fetcher,
			Cache:     storages.BundleCache,
			Decryptor: crypto.NewDecryptor(),
			Settings:  storages.Settings,
			Push:      push,
		},
		SyncOptions{
			Identity:        identity,
			Remote:          cfg.Remote,
			CacheEnabled:    cfg.Cache.Enabled,
			RefreshInterval: cfg.Sync.RefreshInterval,
			DisablePush:     cfg.Sync.DisablePush,
		},
		func() { job.Invalidate(models.TriggerPush) },
		log,
	)
	job = NewSyncJob(syncService, log.ForApp(identity.AppID))

	return &Services{
		SyncService: syncService,
		SyncJob:     job,
	}, nil
}
