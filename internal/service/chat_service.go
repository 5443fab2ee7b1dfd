package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/campushub/eventline/internal/chat"
	"github.com/campushub/eventline/internal/domain"
	"github.com/campushub/eventline/internal/repository"
)

// chatHistoryLimit bounds the conversation window sent to the completer.
const chatHistoryLimit = 20

// ChatService persists assistant conversations and obtains replies from the
// configured completion provider.
type ChatService struct {
	messageRepo *repository.ChatMessageRepository
	completer   chat.Completer
}

// NewChatService creates a new ChatService.
func NewChatService(messageRepo *repository.ChatMessageRepository, completer chat.Completer) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		completer:   completer,
	}
}

// SendMessage stores the user's message, asks the completer for a reply and
// stores that too. Both turns are returned.
func (s *ChatService) SendMessage(ctx context.Context, userID, content string) (*domain.ChatMessage, *domain.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil, domain.ErrEmptyMessage
	}

	userMsg, err := s.messageRepo.Create(ctx, &domain.ChatMessage{
		UserID:  userID,
		Role:    domain.ChatRoleUser,
		Content: content,
	})
	if err != nil {
		return nil, nil, err
	}

	history, err := s.messageRepo.GetRecentByUser(ctx, userID, chatHistoryLimit)
	if err != nil {
		return nil, nil, err
	}

	reply, err := s.completer.Complete(ctx, history)
	if err != nil {
		return nil, nil, err
	}

	assistantMsg, err := s.messageRepo.Create(ctx, &domain.ChatMessage{
		UserID:  userID,
		Role:    domain.ChatRoleAssistant,
		Content: reply,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("chat turn completed", "user_id", userID, "history_len", len(history))

	return userMsg, assistantMsg, nil
}
