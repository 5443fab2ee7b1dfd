package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/campushub/eventline/internal/handler/dto"
)

// handleSignup registers a local account.
// @Summary Sign up
// @Description Registers a local account and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup request"
// @Success 201 {object} dto.AuthResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /auth/signup [post]
func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "password must be at least 8 characters")
		return
	}
	if strings.TrimSpace(req.FullName) == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "full_name is required")
		return
	}

	user, session, err := h.authService.Signup(r.Context(), req.Email, req.Password, strings.TrimSpace(req.FullName))
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToAuthResponse(user, session))
}

// handleLogin authenticates a local account.
// @Summary Log in
// @Description Verifies credentials and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, session, err := h.authService.Login(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToAuthResponse(user, session))
}

// handleFederatedLogin authenticates through an identity provider.
// @Summary Federated log in
// @Description Verifies a provider token, creating the account on first login.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.FederatedLoginRequest true "Federated login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/federated [post]
func (h *Handler) handleFederatedLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.FederatedLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Provider == "" || req.Token == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "provider and token are required")
		return
	}

	user, session, err := h.authService.FederatedLogin(r.Context(), req.Provider, req.Token)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToAuthResponse(user, session))
}
