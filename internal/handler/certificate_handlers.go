package handler

import (
	"encoding/json"
	"net/http"

	"github.com/campushub/eventline/internal/handler/dto"
	"github.com/campushub/eventline/internal/middleware"
	"github.com/google/uuid"
)

// handleIssueCertificate records a certificate for an enrolled participant.
// @Summary Issue a certificate
// @Description Records a certificate for an enrolled participant of a completed event.
// @Tags certificates
// @Accept json
// @Produce json
// @Param request body dto.IssueCertificateRequest true "Issuance request"
// @Success 201 {object} dto.CertificateResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /certificates [post]
func (h *Handler) handleIssueCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req dto.IssueCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if _, err := uuid.Parse(req.EventID); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "event_id must be a valid UUID")
		return
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "user_id must be a valid UUID")
		return
	}

	cert, err := h.certService.IssueCertificate(ctx, req.EventID, req.UserID, user)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToCertificateResponse(cert))
}

// handleGetCertificate retrieves a certificate record.
// @Summary Get a certificate record
// @Tags certificates
// @Produce json
// @Param id path string true "Certificate ID"
// @Success 200 {object} dto.CertificateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /certificates/{id} [get]
func (h *Handler) handleGetCertificate(w http.ResponseWriter, r *http.Request) {
	certID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	cert, err := h.certService.GetCertificate(r.Context(), certID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToCertificateResponse(cert))
}
