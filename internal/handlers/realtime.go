package handlers

import (
	"errors"
	"net/http"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/metrics"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/upstream"
)

// RealtimeToken requests an ephemeral voice-session token from the
// realtime provider and relays its JSON response to the browser, which
// uses it to open a WebRTC connection directly.
func (h *Handler) RealtimeToken(w http.ResponseWriter, r *http.Request) {
	data, err := h.ai.CreateRealtimeSession(r.Context())
	if err != nil {
		if errors.Is(err, upstream.ErrNotConfigured) {
			metrics.UpstreamErrors.WithLabelValues("not_configured").Inc()
			h.logger.Error().Err(err).Msg("realtime provider is not configured")
			h.Error(w, http.StatusInternalServerError, "Server configuration error")
			return
		}
		metrics.UpstreamErrors.WithLabelValues("realtime").Inc()
		h.logger.Error().Err(err).Msg("failed to create realtime session")
		h.Error(w, http.StatusInternalServerError, "Failed to create realtime session")
		return
	}

	metrics.RealtimeSessions.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
