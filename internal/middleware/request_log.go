package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/campushub/eventline/internal/domain"
	"github.com/campushub/eventline/internal/repository"
)

// RequestLogMiddleware records every handled request into the request_logs
// table. Insert failures are logged and never surfaced to the client.
type RequestLogMiddleware struct {
	logRepo *repository.RequestLogRepository
}

// NewRequestLogMiddleware creates a new RequestLogMiddleware.
func NewRequestLogMiddleware(logRepo *repository.RequestLogRepository) *RequestLogMiddleware {
	return &RequestLogMiddleware{logRepo: logRepo}
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Log wraps a handler and persists an audit record after the response is
// written.
func (m *RequestLogMiddleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		entry := &domain.RequestLog{
			Method:     r.Method,
			Path:       r.URL.Path,
			StatusCode: recorder.status,
			DurationMS: time.Since(start).Milliseconds(),
		}
		if user, err := GetUserFromContext(r.Context()); err == nil {
			entry.UserID = &user.ID
		}

		// Detached from the request context: the write must survive the
		// client going away.
		go func() {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 5*time.Second)
			defer cancel()
			if err := m.logRepo.Create(ctx, entry); err != nil {
				slog.Error("failed to persist request log",
					"method", entry.Method,
					"path", entry.Path,
					"error", err,
				)
			}
		}()
	})
}
