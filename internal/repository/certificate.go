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

// CertificateRepository handles database operations for certificate records.
type CertificateRepository struct {
	pool *pgxpool.Pool
}

// NewCertificateRepository creates a new CertificateRepository.
func NewCertificateRepository(pool *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{pool: pool}
}

// Create stores a certificate issuance record.
func (r *CertificateRepository) Create(ctx context.Context, cert *domain.Certificate) (*domain.Certificate, error) {
	query, args, err := psql.
		Insert("certificates").
		Columns("event_id", "user_id", "serial").
		Values(cert.EventID, cert.UserID, cert.Serial).
		Suffix("RETURNING id, issued_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for certificate: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&cert.ID, &cert.IssuedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCertificateDuplicate
		}
		return nil, fmt.Errorf("create certificate: %w", err)
	}

	return cert, nil
}

// GetByID retrieves a certificate record by ID.
func (r *CertificateRepository) GetByID(ctx context.Context, certID string) (*domain.Certificate, error) {
	query, args, err := psql.
		Select("id", "event_id", "user_id", "serial", "issued_at").
		From("certificates").
		Where(sq.Eq{"id": certID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for certificate: %w", err)
	}

	var cert domain.Certificate
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&cert.ID,
		&cert.EventID,
		&cert.UserID,
		&cert.Serial,
		&cert.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("query certificate: %w", err)
	}

	return &cert, nil
}
