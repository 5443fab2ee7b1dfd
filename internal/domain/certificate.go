package domain

import "time"

// Enrollment marks a participant as registered for an event.
type Enrollment struct {
	ID        string
	EventID   string
	UserID    string
	CreatedAt time.Time
}

// Certificate is a digital-certificate issuance record for a completed event.
type Certificate struct {
	ID       string
	EventID  string
	UserID   string
	Serial   string
	IssuedAt time.Time
}
