package repository

import (
	"context"
	"fmt"

	"github.com/campushub/eventline/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RequestLogRepository handles database operations for request audit records.
type RequestLogRepository struct {
	pool *pgxpool.Pool
}

// NewRequestLogRepository creates a new RequestLogRepository.
func NewRequestLogRepository(pool *pgxpool.Pool) *RequestLogRepository {
	return &RequestLogRepository{pool: pool}
}

// Create stores one request record.
func (r *RequestLogRepository) Create(ctx context.Context, entry *domain.RequestLog) error {
	query, args, err := psql.
		Insert("request_logs").
		Columns("method", "path", "status_code", "duration_ms", "user_id").
		Values(entry.Method, entry.Path, entry.StatusCode, entry.DurationMS, entry.UserID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query for request log: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create request log: %w", err)
	}

	return nil
}
