package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campushub/eventline/internal/domain"
	"github.com/campushub/eventline/internal/repository"
	"github.com/google/uuid"
)

// CertificateService issues digital-certificate records for completed events.
type CertificateService struct {
	certRepo       *repository.CertificateRepository
	eventRepo      *repository.EventRepository
	enrollmentRepo *repository.EnrollmentRepository
}

// NewCertificateService creates a new CertificateService.
func NewCertificateService(
	certRepo *repository.CertificateRepository,
	eventRepo *repository.EventRepository,
	enrollmentRepo *repository.EnrollmentRepository,
) *CertificateService {
	return &CertificateService{
		certRepo:       certRepo,
		eventRepo:      eventRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// IssueCertificate records a certificate for an enrolled participant of a
// completed event. Only the owning organizer or an admin may issue.
func (s *CertificateService) IssueCertificate(ctx context.Context, eventID, userID string, actor *domain.User) (*domain.Certificate, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !event.IsOwnedBy(actor.ID) && actor.Role != domain.UserRoleAdmin {
		return nil, domain.ErrNotEventOwner
	}

	if event.Status != domain.EventStatusCompleted {
		return nil, domain.ErrEventNotEnded
	}

	if _, err := s.enrollmentRepo.Get(ctx, eventID, userID); err != nil {
		return nil, err
	}

	cert, err := s.certRepo.Create(ctx, &domain.Certificate{
		EventID: eventID,
		UserID:  userID,
		Serial:  newCertificateSerial(),
	})
	if err != nil {
		return nil, err
	}

	slog.Info("certificate issued",
		"certificate_id", cert.ID,
		"event_id", eventID,
		"user_id", userID,
		"serial", cert.Serial,
	)

	return cert, nil
}

// GetCertificate retrieves a certificate record by ID.
func (s *CertificateService) GetCertificate(ctx context.Context, certID string) (*domain.Certificate, error) {
	return s.certRepo.GetByID(ctx, certID)
}

// newCertificateSerial builds a human-readable unique serial.
func newCertificateSerial() string {
	return fmt.Sprintf("CERT-%d-%s", time.Now().Year(), uuid.NewString()[:8])
}
