package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/campushub/eventline/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnrollmentRepository handles database operations for enrollment records.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Create records a participant's enrollment in an event.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	query, args, err := psql.
		Insert("enrollments").
		Columns("event_id", "user_id").
		Values(enrollment.EventID, enrollment.UserID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for enrollment: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&enrollment.ID, &enrollment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	return enrollment, nil
}

// Get retrieves the enrollment of a user in an event.
func (r *EnrollmentRepository) Get(ctx context.Context, eventID, userID string) (*domain.Enrollment, error) {
	query, args, err := psql.
		Select("id", "event_id", "user_id", "created_at").
		From("enrollments").
		Where(sq.Eq{"event_id": eventID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Get query for enrollment: %w", err)
	}

	var enrollment domain.Enrollment
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&enrollment.ID,
		&enrollment.EventID,
		&enrollment.UserID,
		&enrollment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotEnrolled
		}
		return nil, fmt.Errorf("query enrollment: %w", err)
	}

	return &enrollment, nil
}
