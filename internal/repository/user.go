package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/campushub/eventline/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var userColumns = []string{
	"id", "email", "password_hash", "full_name", "role",
	"provider", "provider_id", "created_at",
}

// UserRepository handles database operations for users and sessions.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Role,
		&user.Provider,
		&user.ProviderID,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for user: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByEmail query for user: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// GetByProvider retrieves a federated user by provider and provider-side ID.
func (r *UserRepository) GetByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"provider": provider, "provider_id": providerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByProvider query for user: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// Create creates a new user. The returned user has ID and CreatedAt populated.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Role == "" {
		user.Role = domain.UserRoleParticipant
	}

	query, args, err := psql.
		Insert("users").
		Columns("email", "password_hash", "full_name", "role", "provider", "provider_id").
		Values(user.Email, user.PasswordHash, user.FullName, user.Role, user.Provider, user.ProviderID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for user: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// CreateSession creates a login session for the user, valid until expiresAt.
func (r *UserRepository) CreateSession(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error) {
	query, args, err := psql.
		Insert("sessions").
		Columns("user_id", "expires_at").
		Values(userID, expiresAt).
		Suffix("RETURNING token, created_at, expires_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build CreateSession query: %w", err)
	}

	session := domain.Session{UserID: userID}
	err = r.pool.QueryRow(ctx, query, args...).Scan(&session.Token, &session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &session, nil
}

// GetUserByToken resolves a session token to its user.
// Returns ErrInvalidToken for unknown tokens and ErrSessionExpired for
// expired ones.
func (r *UserRepository) GetUserByToken(ctx context.Context, token string) (*domain.User, error) {
	query, args, err := psql.
		Select(
			"u.id", "u.email", "u.password_hash", "u.full_name", "u.role",
			"u.provider", "u.provider_id", "u.created_at", "s.expires_at",
		).
		From("sessions s").
		Join("users u ON u.id = s.user_id").
		Where(sq.Eq{"s.token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetUserByToken query: %w", err)
	}

	var user domain.User
	var expiresAt time.Time
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Role,
		&user.Provider,
		&user.ProviderID,
		&user.CreatedAt,
		&expiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("query session user: %w", err)
	}

	if time.Now().After(expiresAt) {
		return nil, domain.ErrSessionExpired
	}

	return &user, nil
}
