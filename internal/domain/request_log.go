package domain

import "time"

// RequestLog is an audit record of a handled HTTP request.
type RequestLog struct {
	ID         string
	Method     string
	Path       string
	StatusCode int
	DurationMS int64
	UserID     *string // nil for unauthenticated requests
	CreatedAt  time.Time
}
