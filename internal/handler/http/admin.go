// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/internal/utils"
	"github.com/MKhiriev/go-configur/models"
)

type healthResponse struct {
	Status string `json:"status"`
}

type keysResponse struct {
	Keys []string `json:"keys"`
}

type reloadResponse struct {
	Queued bool `json:"queued"`
}

// health answers 200 once a cycle has succeeded and 503 before that.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	st := h.services.SyncService.Status()

	resp, code := healthResponse{Status: "ok"}, http.StatusOK
	if st.LastSuccessAt.IsZero() {
		resp, code = healthResponse{Status: "starting"}, http.StatusServiceUnavailable
	}

	if _, err := utils.WriteJSON(w, resp, code); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing health failed")
	}
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, h.services.SyncService.Status(), http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing status failed")
	}
}

func (h *Handler) keys(w http.ResponseWriter, r *http.Request) {
	keys := h.settings.Keys()

	if _, err := utils.WriteJSON(w, keysResponse{Keys: keys}, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing keys failed")
	}
}

// reload queues a manual cycle. A request that lands while another refresh is
// pending is accepted but reported as not queued.
func (h *Handler) reload(w http.ResponseWriter, r *http.Request) {
	queued := h.services.SyncJob.Invalidate(models.TriggerManual)

	logger.FromRequest(r).Info().Bool("queued", queued).Msg("manual reload requested")
	if _, err := utils.WriteJSON(w, reloadResponse{Queued: queued}, http.StatusAccepted); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing reload result failed")
	}
}
