package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the admin router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	router.Get("/healthz", h.health)

	router.Get("/api/status", h.status)
	router.Get("/api/settings/keys", h.keys)
	router.Post("/api/reload", h.reload)
	router.Get("/api/version", h.getVersion)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
