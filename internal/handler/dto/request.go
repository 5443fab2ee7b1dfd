package dto

import "time"

// SignupRequest represents the request body for POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest represents the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FederatedLoginRequest represents the request body for POST /auth/federated.
type FederatedLoginRequest struct {
	Provider string `json:"provider"`
	Token    string `json:"token"`
}

// CreateEventRequest represents the request body for POST /events.
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// UpdateEventRequest represents the request body for PATCH /events/:id.
// Omitted fields are left unchanged.
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// IssueCertificateRequest represents the request body for POST /certificates.
type IssueCertificateRequest struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

// ChatRequest represents the request body for POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}
