package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/api/middleware"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/metrics"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/models"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/validate"
)

// contactFields is the validation spec for the contact form. Limits match
// what the site has always enforced.
var contactFields = []validate.Field{
	{Name: "name", Label: "Name", MaxLen: 100},
	{Name: "email", Label: "Email", MaxLen: 255, Format: validate.Email(), FormatMsg: "Invalid email format", Lowercase: true},
	{Name: "subject", Label: "Subject", MaxLen: 200},
	{Name: "message", Label: "Message", MaxLen: 2000},
}

// antiAutomationMsg is deliberately vague: it never tells an automated
// caller which check it tripped.
const antiAutomationMsg = "Submission failed. Please try again."

// Contact handles contact-form submissions: anti-automation checks, then
// schema validation, then persistence. Rate limiting happens upstream in
// the middleware chain.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	clientIP := middleware.RealIP(r)

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.Error(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if reason := h.checkAntiAutomation(payload); reason != "" {
		metrics.AntiAutomationRejections.Inc()
		h.logger.Warn().
			Str("type", "security").
			Str("event", "antiautomation_rejected").
			Str("ip", clientIP).
			Str("reason", reason).
			Msg("contact submission rejected")
		h.Error(w, http.StatusBadRequest, antiAutomationMsg)
		return
	}

	result := validate.Object(payload, contactFields)
	if !result.OK {
		metrics.ValidationFailures.WithLabelValues("contact").Inc()
		h.logger.Info().
			Str("field", result.Field).
			Str("reason", result.Reason).
			Msg("contact validation failed")
		h.Error(w, http.StatusBadRequest, result.Reason)
		return
	}

	sub := &models.ContactSubmission{
		ID:        ulid.Make().String(),
		Name:      result.Values["name"],
		Email:     result.Values["email"],
		Subject:   result.Values["subject"],
		Message:   result.Values["message"],
		ClientIP:  clientIP,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.SaveSubmission(r.Context(), sub); err != nil {
		h.logger.Error().Err(err).Msg("failed to save contact submission")
		h.Error(w, http.StatusInternalServerError, "Failed to save submission")
		return
	}

	metrics.ContactSubmissions.Inc()
	h.logger.Info().
		Str("id", sub.ID).
		Str("ip", clientIP).
		Str("email", sub.Email).
		Msg("contact submission saved")

	h.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Submission received successfully",
	})
}

// checkAntiAutomation runs the honeypot and minimum-elapsed-time checks.
// It returns an internal reason string on failure, empty on pass. Callers
// must map any failure to the same generic user-facing message.
func (h *Handler) checkAntiAutomation(payload map[string]any) string {
	// The "website" field is hidden from human visitors; anything in it
	// came from a bot filling every input.
	if honeypot, _ := payload["website"].(string); strings.TrimSpace(honeypot) != "" {
		return "honeypot filled"
	}

	startedAt, ok := payload["form_started_at"].(float64)
	if !ok {
		return "missing form timestamp"
	}
	elapsed := time.Since(time.UnixMilli(int64(startedAt)))
	if elapsed < h.cfg.MinFormTime {
		return "submitted too quickly"
	}

	return ""
}
