package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")
	ErrEventFinished = errors.New("event already completed or cancelled")
	ErrNotEventOwner = errors.New("not event organizer")
	ErrEventNotEnded = errors.New("event has not completed yet")

	// Status updater errors
	ErrUpdateInProgress = errors.New("status update already running")

	// Account errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrSessionExpired     = errors.New("session expired")
	ErrPermissionDenied   = errors.New("permission denied")

	// Enrollment/certificate errors
	ErrNotEnrolled          = errors.New("user is not enrolled in event")
	ErrCertificateNotFound  = errors.New("certificate not found")
	ErrCertificateDuplicate = errors.New("certificate already issued for this enrollment")

	// Validation errors
	ErrInvalidStatus   = errors.New("invalid event status")
	ErrInvalidRole     = errors.New("invalid user role")
	ErrEmptyMessage    = errors.New("message is required")
	ErrInvalidSchedule = errors.New("scheduled_at is required")
)
