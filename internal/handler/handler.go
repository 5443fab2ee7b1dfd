package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/campushub/eventline/docs" // Import generated docs
	"github.com/campushub/eventline/internal/chat"
	"github.com/campushub/eventline/internal/domain"
	"github.com/campushub/eventline/internal/handler/dto"
	"github.com/campushub/eventline/internal/identity"
	"github.com/campushub/eventline/internal/middleware"
	"github.com/campushub/eventline/internal/repository"
	"github.com/campushub/eventline/internal/service"
	"github.com/campushub/eventline/internal/static"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Config holds handler-level configuration.
type Config struct {
	SessionTTL     time.Duration
	StatusInterval time.Duration
	StatusEnabled  bool
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool           *pgxpool.Pool
	authService    *service.AuthService
	eventService   *service.EventService
	certService    *service.CertificateService
	chatService    *service.ChatService
	statusUpdater  *service.StatusUpdater
	eventRepo      *repository.EventRepository
	authMiddleware *middleware.AuthMiddleware
	requestLog     *middleware.RequestLogMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool, cfg Config) *Handler {
	// Create repositories
	eventRepo := repository.NewEventRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	certRepo := repository.NewCertificateRepository(pool)
	chatRepo := repository.NewChatMessageRepository(pool)
	logRepo := repository.NewRequestLogRepository(pool)

	// Create services
	authService := service.NewAuthService(userRepo, identity.NewInsecureVerifier(), cfg.SessionTTL)
	eventService := service.NewEventService(eventRepo)
	certService := service.NewCertificateService(certRepo, eventRepo, enrollmentRepo)
	chatService := service.NewChatService(chatRepo, chat.NewStaticCompleter())
	statusUpdater := service.NewStatusUpdater(eventRepo, service.StatusUpdaterConfig{
		UpdateInterval: cfg.StatusInterval,
		Enabled:        cfg.StatusEnabled,
	})

	return &Handler{
		pool:           pool,
		authService:    authService,
		eventService:   eventService,
		certService:    certService,
		chatService:    chatService,
		statusUpdater:  statusUpdater,
		eventRepo:      eventRepo,
		authMiddleware: middleware.NewAuthMiddleware(userRepo),
		requestLog:     middleware.NewRequestLogMiddleware(logRepo),
	}
}

// StatusUpdater exposes the updater so cmd can start and stop it.
func (h *Handler) StatusUpdater() *service.StatusUpdater {
	return h.statusUpdater
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Landing page
	mux.HandleFunc("GET /{$}", h.handleIndex)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Public auth routes
	mux.Handle("POST /api/v1/auth/signup", h.public(h.handleSignup))
	mux.Handle("POST /api/v1/auth/login", h.public(h.handleLogin))
	mux.Handle("POST /api/v1/auth/federated", h.public(h.handleFederatedLogin))

	// Event routes
	mux.Handle("GET /api/v1/events/{id}", h.authed(h.handleGetEvent))
	mux.Handle("POST /api/v1/events", h.roled(h.handleCreateEvent, domain.UserRoleOrganizer, domain.UserRoleAdmin))
	mux.Handle("PATCH /api/v1/events/{id}", h.roled(h.handleUpdateEvent, domain.UserRoleOrganizer, domain.UserRoleAdmin))
	mux.Handle("POST /api/v1/events/{id}/cancel", h.roled(h.handleCancelEvent, domain.UserRoleOrganizer, domain.UserRoleAdmin))

	// Certificate routes
	mux.Handle("POST /api/v1/certificates", h.roled(h.handleIssueCertificate, domain.UserRoleOrganizer, domain.UserRoleAdmin))
	mux.Handle("GET /api/v1/certificates/{id}", h.authed(h.handleGetCertificate))

	// Assistant
	mux.Handle("POST /api/v1/chat", h.authed(h.handleChat))

	// Operator surface for the status updater
	mux.Handle("POST /api/v1/admin/status-updates", h.roled(h.handleTriggerStatusUpdate, domain.UserRoleAdmin))
	mux.Handle("GET /api/v1/admin/status-updates", h.roled(h.handleStatusUpdaterStatus, domain.UserRoleAdmin))
}

// public wraps an open endpoint with request logging.
func (h *Handler) public(fn http.HandlerFunc) http.Handler {
	return h.requestLog.Log(fn)
}

// authed wraps an endpoint with authentication and request logging. Logging
// sits inside authentication so the audit record carries the user.
func (h *Handler) authed(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(h.requestLog.Log(fn))
}

// roled is authed with an additional role gate.
func (h *Handler) roled(fn http.HandlerFunc, roles ...domain.UserRole) http.Handler {
	return h.authMiddleware.RequireRole(h.requestLog.Log(fn), roles...)
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleIndex serves the embedded landing page.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.IndexHTML))
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// extractPathID extracts and validates a UUID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to
// client).
func extractPathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "id is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "id must be a valid UUID")
		return "", false
	}

	return id, true
}
