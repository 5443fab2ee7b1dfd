package dto

import (
	"time"

	"github.com/campushub/eventline/internal/domain"
	"github.com/campushub/eventline/internal/service"
)

// UserResponse represents an account in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Provider  *string   `json:"provider,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned from the signup/login endpoints.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID                string     `json:"id"`
	OrganizerID       string     `json:"organizer_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Location          string     `json:"location"`
	ScheduledAt       time.Time  `json:"scheduled_at"`
	Status            string     `json:"status"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	LastStatusUpdate  *time.Time `json:"last_status_update,omitempty"`
	StatusUpdateCount int        `json:"status_update_count"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// CertificateResponse represents a certificate issuance record.
type CertificateResponse struct {
	ID       string    `json:"id"`
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	Serial   string    `json:"serial"`
	IssuedAt time.Time `json:"issued_at"`
}

// ChatMessageResponse represents one chat turn.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatResponse is returned from POST /chat.
type ChatResponse struct {
	Message ChatMessageResponse `json:"message"`
	Reply   ChatMessageResponse `json:"reply"`
}

// UpdateSummaryResponse is returned from the manual status-update trigger.
type UpdateSummaryResponse struct {
	Scanned        int            `json:"scanned"`
	Updated        int            `json:"updated"`
	Failed         int            `json:"failed"`
	Transitions    map[string]int `json:"transitions"`
	CountsByStatus map[string]int `json:"counts_by_status"`
	RanAt          time.Time      `json:"ran_at"`
}

// UpdaterStatusResponse is returned from the status introspection endpoint.
type UpdaterStatusResponse struct {
	IsRunning      bool       `json:"is_running"`
	Enabled        bool       `json:"enabled"`
	UpdateInterval string     `json:"update_interval"`
	LastRun        *time.Time `json:"last_run,omitempty"`
	NextRun        *time.Time `json:"next_run,omitempty"`
}

// ToUserResponse converts domain.User to UserResponse.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Provider:  user.Provider,
		CreatedAt: user.CreatedAt,
	}
}

// ToAuthResponse converts a user and its session to AuthResponse.
func ToAuthResponse(user *domain.User, session *domain.Session) AuthResponse {
	return AuthResponse{
		User:      ToUserResponse(user),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}
}

// ToEventResponse converts domain.Event to EventResponse.
func ToEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:                event.ID,
		OrganizerID:       event.OrganizerID,
		Title:             event.Title,
		Description:       event.Description,
		Location:          event.Location,
		ScheduledAt:       event.ScheduledAt,
		Status:            string(event.Status),
		CompletedAt:       event.CompletedAt,
		LastStatusUpdate:  event.LastStatusUpdate,
		StatusUpdateCount: event.StatusUpdateCount,
		CreatedAt:         event.CreatedAt,
		UpdatedAt:         event.UpdatedAt,
	}
}

// ToCertificateResponse converts domain.Certificate to CertificateResponse.
func ToCertificateResponse(cert *domain.Certificate) CertificateResponse {
	return CertificateResponse{
		ID:       cert.ID,
		EventID:  cert.EventID,
		UserID:   cert.UserID,
		Serial:   cert.Serial,
		IssuedAt: cert.IssuedAt,
	}
}

// ToChatMessageResponse converts domain.ChatMessage to ChatMessageResponse.
func ToChatMessageResponse(msg *domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        msg.ID,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

// ToUpdateSummaryResponse converts service.UpdateSummary to its response form.
func ToUpdateSummaryResponse(summary *service.UpdateSummary) UpdateSummaryResponse {
	transitions := make(map[string]int, len(summary.Transitions))
	for status, count := range summary.Transitions {
		transitions[string(status)] = count
	}
	counts := make(map[string]int, len(summary.CountsByStatus))
	for status, count := range summary.CountsByStatus {
		counts[string(status)] = count
	}
	return UpdateSummaryResponse{
		Scanned:        summary.Scanned,
		Updated:        summary.Updated,
		Failed:         summary.Failed,
		Transitions:    transitions,
		CountsByStatus: counts,
		RanAt:          summary.RanAt,
	}
}

// ToUpdaterStatusResponse converts service.UpdaterStatus to its response form.
func ToUpdaterStatusResponse(status service.UpdaterStatus) UpdaterStatusResponse {
	return UpdaterStatusResponse{
		IsRunning:      status.IsRunning,
		Enabled:        status.Enabled,
		UpdateInterval: status.UpdateInterval.String(),
		LastRun:        status.LastRun,
		NextRun:        status.NextRun,
	}
}
