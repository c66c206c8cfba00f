package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/config"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/store"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/upstream"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	store  store.DataStore
	ai     *upstream.Client
	cfg    *config.Config
	logger zerolog.Logger
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(dataStore store.DataStore, ai *upstream.Client, cfg *config.Config, logger zerolog.Logger) *Handler {
	return &Handler{store: dataStore, ai: ai, cfg: cfg, logger: logger}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
