package handler

import (
	"github.com/MKhiriev/go-configur/internal/config"
	"github.com/MKhiriev/go-configur/internal/handler/http"
	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, settings http.KeyLister, cfg config.Admin, version string, logger *logger.Logger) (*Handlers, error) {
	if cfg.HTTPAddress == "" {
		return nil, ErrAdminDisabled
	}

	logger.Info().Msg("creating admin handlers...")

	return &Handlers{
		HTTP: http.NewHandler(services, settings, version, logger),
	}, nil
}
