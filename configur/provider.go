package configur

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/internal/service"
	"github.com/MKhiriev/go-configur/internal/store"
	"github.com/MKhiriev/go-configur/models"
)

// Status is a point-in-time view of the refresh state. It never contains
// setting values.
type Status = models.RefreshStatus

// Provider holds the decrypted settings of one application and keeps them
// fresh. It is safe for concurrent use.
type Provider struct {
	storages *store.Storages
	services *service.Services
	refresh  time.Duration

	startOnce sync.Once
	closeOnce sync.Once
	closeErr  error

	logger *logger.Logger
}

// New validates opts and prepares the provider. No network call is made
// until [Provider.Load].
func New(opts Options) (*Provider, error) {
	cfg, err := opts.structuredConfig()
	if err != nil {
		return nil, fmt.Errorf("configur: %w", err)
	}

	identity, err := cfg.Identity()
	if err != nil {
		return nil, fmt.Errorf("configur: %w", err)
	}

	log := logger.Nop()
	if opts.Logger != nil {
		log = &logger.Logger{Logger: *opts.Logger}
	}
	log = log.ForApp(identity.AppID)

	storages, err := store.NewStorages(context.Background(), cfg.Cache, log)
	if err != nil {
		return nil, fmt.Errorf("configur: %w", err)
	}

	services, err := service.NewServices(cfg, identity, storages, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("configur: %w", err)
	}

	return &Provider{
		storages: storages,
		services: services,
		refresh:  cfg.Sync.RefreshInterval,
		logger:   log,
	}, nil
}

// Load runs a refresh cycle and waits for it, then starts background
// refreshes on the first call. A failed cycle is logged and leaves the
// previous settings, if any, in place.
func (p *Provider) Load(ctx context.Context) {
	trigger := models.TriggerManual
	started := false
	p.startOnce.Do(func() {
		trigger = models.TriggerStartup
		started = true
	})

	if err := p.services.SyncService.RunCycle(ctx, trigger); err != nil {
		p.logger.Warn().Err(err).Str("trigger", string(trigger)).Msg("configuration load failed")
	}

	if started {
		// the scheduler lives until Close, not until ctx is done
		p.services.SyncJob.Start(context.WithoutCancel(ctx), p.refresh)
	}
}

// Reload queues a refresh without waiting for it. It returns false when a
// refresh is already queued or running; that refresh covers this request.
func (p *Provider) Reload() bool {
	return p.services.SyncJob.Invalidate(models.TriggerManual)
}

// Get returns the value for key. Keys are case-insensitive.
func (p *Provider) Get(key string) (string, bool) {
	return p.storages.Settings.Get(key)
}

// Keys returns the loaded keys, sorted.
func (p *Provider) Keys() []string {
	return p.storages.Settings.Keys()
}

// Snapshot returns a copy of all loaded settings.
func (p *Provider) Snapshot() map[string]string {
	return p.storages.Settings.Snapshot()
}

func (p *Provider) Status() Status {
	return p.services.SyncService.Status()
}

// Close stops background refreshes, ends the push subscription and releases
// the cache. Settings stay readable after Close.
func (p *Provider) Close() error {
	p.closeOnce.Do(func() {
		p.services.SyncJob.Stop()
		p.services.SyncService.Close()
		p.closeErr = p.storages.Close()
	})
	return p.closeErr
}
