package handler

import (
	"net/http"

	"github.com/campushub/eventline/internal/handler/dto"
)

// handleTriggerStatusUpdate runs one status reconciliation pass immediately.
// @Summary Trigger a status update pass
// @Description Runs one event-status reconciliation pass. Returns 409 if a pass is already in flight.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.UpdateSummaryResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/status-updates [post]
func (h *Handler) handleTriggerStatusUpdate(w http.ResponseWriter, r *http.Request) {
	summary, err := h.statusUpdater.TriggerUpdate(r.Context())
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUpdateSummaryResponse(summary))
}

// handleStatusUpdaterStatus reports the updater's current state.
// @Summary Status updater introspection
// @Tags admin
// @Produce json
// @Success 200 {object} dto.UpdaterStatusResponse
// @Security BearerAuth
// @Router /admin/status-updates [get]
func (h *Handler) handleStatusUpdaterStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.ToUpdaterStatusResponse(h.statusUpdater.Status()))
}
