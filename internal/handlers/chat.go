package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/api/middleware"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/metrics"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/upstream"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/validate"
)

// ChatRequest is the chat endpoint request body.
type ChatRequest struct {
	Messages json.RawMessage `json:"messages"`
}

// Chat validates the conversation history and forwards it to the AI
// gateway, passing the SSE token stream back to the caller unchanged.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	result := validate.Messages(req.Messages)
	if !result.OK {
		metrics.ValidationFailures.WithLabelValues("chat").Inc()
		h.logger.Info().Str("reason", result.Reason).Msg("chat validation failed")
		h.Error(w, http.StatusBadRequest, result.Reason)
		return
	}

	h.logger.Info().
		Int("messages", len(result.Messages)).
		Str("ip", middleware.RealIP(r)).
		Msg("processing chat request")

	stream, err := h.ai.StreamChat(r.Context(), result.Messages)
	if err != nil {
		switch {
		case errors.Is(err, upstream.ErrNotConfigured):
			metrics.UpstreamErrors.WithLabelValues("not_configured").Inc()
			h.logger.Error().Err(err).Msg("AI gateway is not configured")
			h.Error(w, http.StatusInternalServerError, "Server configuration error")
		case errors.Is(err, upstream.ErrRateLimited):
			metrics.UpstreamErrors.WithLabelValues("rate_limited").Inc()
			h.Error(w, http.StatusTooManyRequests, "Rate limits exceeded, please try again later.")
		case errors.Is(err, upstream.ErrQuotaExhausted):
			metrics.UpstreamErrors.WithLabelValues("quota_exhausted").Inc()
			h.Error(w, http.StatusPaymentRequired, "Service temporarily unavailable, please try again later.")
		default:
			metrics.UpstreamErrors.WithLabelValues("gateway").Inc()
			h.logger.Error().Err(err).Msg("AI gateway error")
			h.Error(w, http.StatusInternalServerError, "AI service error")
		}
		return
	}
	defer stream.Close()

	metrics.ChatRequests.Inc()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 4096)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				// Client went away; the deferred Close aborts upstream.
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			// EOF, or upstream closed without [DONE]; either way the
			// stream is over and the client treats it as completion.
			return
		}
	}
}
