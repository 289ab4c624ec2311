package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-configur/internal/config"
	"github.com/MKhiriev/go-configur/internal/handler"
	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/internal/server"
	"github.com/MKhiriev/go-configur/internal/service"
	"github.com/MKhiriev/go-configur/internal/store"
	"github.com/MKhiriev/go-configur/internal/workers"
	"github.com/MKhiriev/go-configur/models"
)

type App struct {
	storages *store.Storages
	services *service.Services
	workers  *workers.Workers

	logger *logger.Logger
}

// NewApp builds the agent from a validated configuration. The admin API is
// created only when an admin address is configured.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	identity, err := cfg.Identity()
	if err != nil {
		return nil, err
	}
	log = log.ForApp(identity.AppID)

	storages, err := store.NewStorages(ctx, cfg.Cache, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	services, err := service.NewServices(cfg, identity, storages, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create services: %w", err)
	}

	background := []workers.Worker{
		&syncWorker{job: services.SyncJob, interval: cfg.Sync.RefreshInterval},
	}

	handlers, err := handler.NewHandlers(services, storages.Settings, cfg.Admin, buildInfo.Version, log)
	switch {
	case errors.Is(err, handler.ErrAdminDisabled):
		log.Info().Msg("admin API disabled")
	case err != nil:
		_ = storages.Close()
		return nil, err
	default:
		srv, err := server.NewServer(handlers, cfg.Admin, log)
		if err != nil {
			_ = storages.Close()
			return nil, err
		}
		background = append(background, &serverWorker{server: srv})
	}

	return &App{
		storages: storages,
		services: services,
		workers:  workers.New(background...),
		logger:   log,
	}, nil
}

// Run implements [Client]. The startup cycle may fail; the agent keeps
// running with an empty store and retries on the schedule.
func (a *App) Run(ctx context.Context) error {
	if err := a.services.SyncService.RunCycle(ctx, models.TriggerStartup); err != nil {
		a.logger.Warn().Err(err).Msg("startup refresh failed, continuing with scheduled refreshes")
	}

	a.workers.Start(ctx)
	a.logger.Info().Msg("configur agent started")

	<-ctx.Done()

	a.logger.Info().Msg("stopping configur agent")
	a.workers.Stop()
	a.services.SyncService.Close()

	return a.storages.Close()
}
