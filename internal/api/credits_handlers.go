package api

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// handleCredits returns the sanitized credential-pool snapshot. Passing
// refresh=true forces an eager refresh instead of the lazy TTL policy.
func (h *Handler) handleCredits(w http.ResponseWriter, r *http.Request) {
	if h.credits == nil {
		writeError(w, http.StatusInternalServerError, errCodeConfiguration, ErrCreditsNotConfigured.Error())
		return
	}

	forceRefresh := r.URL.Query().Get("refresh") == "true"

	snapshot, err := h.credits.Snapshot(r.Context(), forceRefresh)
	if err != nil {
		log.Error().Err(err).Msg("credential snapshot failed")
		writeError(w, http.StatusInternalServerError, errCodeInternal, "credential status is unavailable")

		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
