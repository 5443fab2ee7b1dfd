package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/campushub/eventline/internal/handler/dto"
	"github.com/campushub/eventline/internal/middleware"
	"github.com/campushub/eventline/internal/service"
)

// handleCreateEvent creates a new event.
// @Summary Create an event
// @Description Creates an event in upcoming status, owned by the caller.
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event creation request"
// @Success 201 {object} dto.EventResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /events [post]
func (h *Handler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req dto.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if title := strings.TrimSpace(req.Title); title == "" || len(title) > 200 {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title must be between 1 and 200 characters")
		return
	}
	if req.ScheduledAt.IsZero() {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "scheduled_at is required")
		return
	}

	event, err := h.eventService.CreateEvent(ctx, service.CreateEventParams{
		OrganizerID: user.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToEventResponse(event))
}

// handleGetEvent retrieves event details.
// @Summary Get event details
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [get]
func (h *Handler) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	event, err := h.eventRepo.GetByID(r.Context(), eventID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToEventResponse(event))
}

// handleUpdateEvent edits event details.
// @Summary Update an event
// @Description Edits details; rescheduling is rejected once the event has completed or been cancelled.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event update request"
// @Success 200 {object} dto.EventResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [patch]
func (h *Handler) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	eventID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Title != nil {
		if title := strings.TrimSpace(*req.Title); title == "" || len(title) > 200 {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title must be between 1 and 200 characters")
			return
		}
	}

	event, err := h.eventService.UpdateEvent(ctx, eventID, user, service.UpdateEventParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToEventResponse(event))
}

// handleCancelEvent cancels an event.
// @Summary Cancel an event
// @Description Cancels an upcoming or ongoing event. Cancelled is terminal.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /events/{id}/cancel [post]
func (h *Handler) handleCancelEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	eventID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	if err := h.eventService.CancelEvent(ctx, eventID, user); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	event, err := h.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToEventResponse(event))
}
