package domain

import "time"

// EventStatus represents where an event sits in its lifecycle.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// IsTerminal returns true if the status is terminal for the status updater.
// Cancelled events are never touched again by the background reconciliation.
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusCancelled
}

// IsValid checks if the status is one of the allowed values.
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	default:
		return false
	}
}

// Event represents a university event.
type Event struct {
	ID                string
	OrganizerID       string
	Title             string
	Description       string
	Location          string
	ScheduledAt       time.Time
	Status            EventStatus
	CompletedAt       *time.Time
	LastStatusUpdate  *time.Time
	StatusUpdateCount int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsOwnedBy checks if the event belongs to the given organizer.
func (e *Event) IsOwnedBy(userID string) bool {
	return e.OrganizerID == userID
}

// IsReschedulable returns true if scheduled_at may still be edited.
func (e *Event) IsReschedulable() bool {
	return e.Status == EventStatusUpcoming || e.Status == EventStatusOngoing
}

// EventStatusFields is the set of fields the status updater writes per record.
type EventStatusFields struct {
	Status            EventStatus
	CompletedAt       *time.Time
	LastStatusUpdate  time.Time
	StatusUpdateCount int
}
