package server

import (
	"github.com/MKhiriev/go-configur/internal/config"
	"github.com/MKhiriev/go-configur/internal/handler"
	"github.com/MKhiriev/go-configur/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer builds the admin server from handlers. It fails when there is
// nothing to serve.
func NewServer(handlers *handler.Handlers, cfg config.Admin, logger *logger.Logger) (Server, error) {
	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	logger.Info().Str("address", cfg.HTTPAddress).Msg("creating admin server...")

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg.HTTPAddress, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	s.logger.Info().Msg("launching admin HTTP server")
	s.httpServer.RunServer()
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
	s.logger.Info().Msg("admin server shut down gracefully")
}
