package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/campushub/eventline/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatMessageRepository handles database operations for assistant messages.
type ChatMessageRepository struct {
	pool *pgxpool.Pool
}

// NewChatMessageRepository creates a new ChatMessageRepository.
func NewChatMessageRepository(pool *pgxpool.Pool) *ChatMessageRepository {
	return &ChatMessageRepository{pool: pool}
}

// Create stores one chat turn.
func (r *ChatMessageRepository) Create(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	query, args, err := psql.
		Insert("chat_messages").
		Columns("user_id", "role", "content").
		Values(msg.UserID, msg.Role, msg.Content).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for chat message: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create chat message: %w", err)
	}

	return msg, nil
}

// GetRecentByUser returns the user's most recent messages, oldest first.
func (r *ChatMessageRepository) GetRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error) {
	query, args, err := psql.
		Select("id", "user_id", "role", "content", "created_at").
		From("chat_messages").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetRecentByUser query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chat messages: %w", err)
	}
	defer rows.Close()

	var messages []*domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		err := rows.Scan(&msg.ID, &msg.UserID, &msg.Role, &msg.Content, &msg.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	// Reverse into chronological order for the completer.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
