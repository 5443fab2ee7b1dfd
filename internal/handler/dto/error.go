package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/campushub/eventline/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Event errors
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, "EVENT_NOT_FOUND", message
	case errors.Is(err, domain.ErrEventFinished):
		return http.StatusConflict, "EVENT_FINISHED", message
	case errors.Is(err, domain.ErrEventNotEnded):
		return http.StatusConflict, "EVENT_NOT_ENDED", message
	case errors.Is(err, domain.ErrNotEventOwner):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message

	// Status updater errors
	case errors.Is(err, domain.ErrUpdateInProgress):
		return http.StatusConflict, "UPDATE_IN_PROGRESS", message

	// Account errors
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "EMAIL_TAKEN", message
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", message
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", message
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "SESSION_EXPIRED", message
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "USER_NOT_FOUND", message
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message

	// Enrollment/certificate errors
	case errors.Is(err, domain.ErrNotEnrolled):
		return http.StatusConflict, "NOT_ENROLLED", message
	case errors.Is(err, domain.ErrCertificateNotFound):
		return http.StatusNotFound, "CERTIFICATE_NOT_FOUND", message
	case errors.Is(err, domain.ErrCertificateDuplicate):
		return http.StatusConflict, "CERTIFICATE_DUPLICATE", message

	// Validation errors
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrInvalidSchedule):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	// Default: internal server error
	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
