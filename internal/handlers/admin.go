package handlers

import (
	"net/http"
	"strconv"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/models"
)

// SubmissionsResponse is the admin submissions listing.
type SubmissionsResponse struct {
	Submissions []models.ContactSubmission `json:"submissions"`
	Total       int                        `json:"total"`
	Limit       int                        `json:"limit"`
	Offset      int                        `json:"offset"`
}

// ListSubmissions returns stored contact submissions, newest first, for
// the admin dashboard.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	subs, total, err := h.store.ListSubmissions(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list submissions")
		h.Error(w, http.StatusInternalServerError, "database error")
		return
	}
	if subs == nil {
		subs = []models.ContactSubmission{}
	}

	h.JSON(w, http.StatusOK, SubmissionsResponse{
		Submissions: subs,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	})
}

func queryInt(r *http.Request, name string, defaultValue int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
