package http

import (
	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/internal/service"
)

// KeyLister lists the names of the loaded settings.
type KeyLister interface {
	Keys() []string
}

type Handler struct {
	services *service.Services
	settings KeyLister
	version  string

	logger *logger.Logger
}

func NewHandler(services *service.Services, settings KeyLister, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("admin http handler created")
	return &Handler{
		services: services,
		settings: settings,
		version:  version,
		logger:   logger,
	}
}
