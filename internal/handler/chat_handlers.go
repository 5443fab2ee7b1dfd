package handler

import (
	"encoding/json"
	"net/http"

	"github.com/campushub/eventline/internal/handler/dto"
	"github.com/campushub/eventline/internal/middleware"
)

// handleChat sends a message to the assistant.
// @Summary Chat with the assistant
// @Description Stores the message, obtains an assistant reply and returns both turns.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat request"
// @Success 200 {object} dto.ChatResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /chat [post]
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	userMsg, reply, err := h.chatService.SendMessage(ctx, user.ID, req.Message)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ChatResponse{
		Message: dto.ToChatMessageResponse(userMsg),
		Reply:   dto.ToChatMessageResponse(reply),
	})
}
