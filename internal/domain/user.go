package domain

import "time"

// UserRole represents the access level of an account.
type UserRole string

const (
	UserRoleParticipant UserRole = "participant"
	UserRoleOrganizer   UserRole = "organizer"
	UserRoleAdmin       UserRole = "admin"
)

// IsValid checks if the role is one of the allowed values.
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleParticipant, UserRoleOrganizer, UserRoleAdmin:
		return true
	default:
		return false
	}
}

// CanManageEvents returns true for roles allowed to create and edit events.
func (r UserRole) CanManageEvents() bool {
	return r == UserRoleOrganizer || r == UserRoleAdmin
}

// User represents a registered account, local or federated.
type User struct {
	ID           string
	Email        string
	PasswordHash *string // nil for federated accounts
	FullName     string
	Role         UserRole
	Provider     *string // federated identity provider, nil for local accounts
	ProviderID   *string
	CreatedAt    time.Time
}

// IsFederated returns true if the account was created via an identity provider.
func (u *User) IsFederated() bool {
	return u.Provider != nil
}

// Session represents a login session identified by its bearer token.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired checks the session against the given instant.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
